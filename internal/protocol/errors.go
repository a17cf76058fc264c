// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrMalformedResponse is returned when a response decodes as WBXML but
	// its content breaks the command's rules: missing required elements, a
	// Count that disagrees with the changes, overlapping change sets.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrMalformedRequest is the server-side counterpart of ErrMalformedResponse.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrInvalidQuery is returned by BuildSearchRequest for queries that
	// cannot be put on the wire.
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrRejected is matched by every *RejectedError.
	ErrRejected = errors.New("rejected by server")
)

// RejectedError is a non-success status returned by the server for a
// command. It is a protocol outcome, not a transport failure.
type RejectedError struct {
	Command string
	// Code is the numeric status as sent; -1 when it was not a number.
	Code int
	// Status is the symbolic status name.
	Status string
	// Retryable is true when the same request may succeed later.
	Retryable bool
	// NeedsFolderSync is true when the server asks for a folder hierarchy
	// sync before the command is retried.
	NeedsFolderSync bool
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected with status %d (%s)", e.Command, e.Code, e.Status)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

func wireCode(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}

func malformedRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRequest, fmt.Sprintf(format, args...))
}
