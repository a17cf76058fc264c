// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrTransport is matched by every *TransportError.
var ErrTransport = errors.New("transport error")

// Causes carried by a *TransportError.
var (
	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("client unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrProvisioningRequired = errors.New("device provisioning required")
	ErrInternalServerError  = errors.New("internal server error")
	ErrServiceUnavailable   = errors.New("service unavailable")
	ErrTooManyRedirects     = errors.New("too many redirects")
	ErrTokenExpired         = errors.New("access token expired")
	ErrUnexpectedContent    = errors.New("unexpected response content type")
)

// Capability errors returned by Connect.
var (
	ErrUnsupportedVersion = errors.New("no common protocol version")
	ErrUnsupportedCommand = errors.New("command not supported by server")
)

// TransportError reports a failed exchange. StatusCode is zero when no HTTP
// response was received.
type TransportError struct {
	Command    string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: %s: http %d: %v", e.Command, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport: %s: %v", e.Command, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes every TransportError match ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// mapHTTPError translates a non-2xx response into a *TransportError.
func mapHTTPError(command string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	var cause error
	switch code {
	case http.StatusBadRequest:
		cause = ErrBadRequest
	case http.StatusUnauthorized:
		cause = ErrUnauthorized
	case http.StatusForbidden:
		cause = ErrForbidden
	case http.StatusNotFound:
		cause = ErrNotFound
	case 449:
		cause = ErrProvisioningRequired
	case http.StatusInternalServerError:
		cause = ErrInternalServerError
	case http.StatusServiceUnavailable:
		cause = ErrServiceUnavailable
	default:
		return &TransportError{Command: command, StatusCode: code, Err: errors.New(body)}
	}

	return &TransportError{Command: command, StatusCode: code, Err: fmt.Errorf("%w: %s", cause, body)}
}
