// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when reading the
// "Authorization" header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header uses an
	// unknown scheme or cannot be parsed.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidCredentials is returned when basic credentials do not match.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrBearerDisabled is returned for bearer tokens when no sign key is
	// configured.
	ErrBearerDisabled = errors.New("bearer authentication is disabled")

	// ErrTokenExpired is returned for a bearer token past its exp claim.
	ErrTokenExpired = errors.New("token is expired")
)

// Request-level errors of the command endpoint.
var (
	errUnsupportedCommand = errors.New("unsupported command")
	errUnsupportedVersion = errors.New("unsupported protocol version")
	errBadContentType     = errors.New("unexpected content type")
	errEmptyBody          = errors.New("empty request body")
)
