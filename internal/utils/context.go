// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, id generation,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key used to store the authenticated mailbox user name in
// the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserCtxKey, "alice")
var UserCtxKey = contextKey("user")

// TraceIDCtxKey is the key used to store the request trace id in the context.
var TraceIDCtxKey = contextKey("traceID")

// GetUserFromContext retrieves the authenticated user name from the context.
//
// Returns the user name and an ok flag:
//   - ok == true : value is found, is a string and is not empty
//   - ok == false: value is missing, empty or has an unexpected type
func GetUserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(UserCtxKey).(string)
	return user, ok && user != ""
}

// GetTraceIDFromContext retrieves the trace id from the context, or "" when
// none was attached.
func GetTraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDCtxKey).(string)
	return traceID
}
