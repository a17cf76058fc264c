// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// an ActiveSync server.
//
// The service layer depends on the narrow [Transport] interface; the full
// [ServerAdapter] adds capability discovery and credential management. The
// package ships an HTTP implementation ([NewHTTPServerAdapter]) built on resty.
//
// Every failure to complete an exchange is returned as a *[TransportError],
// which matches [ErrTransport] under [errors.Is] and unwraps to the sentinel
// describing the cause (for example [ErrUnauthorized] for HTTP 401). Protocol
// level statuses carried inside a successful response are not transport
// errors and are left to the protocol package.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-mail-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// Transport delivers one encoded command to the server and returns the raw
// response body.
type Transport interface {
	// Post sends body as the payload of command and returns the response
	// body. contentType is sent as the Content-Type header. An empty body in
	// a 2xx response is returned as an empty slice without error.
	//
	// Returns a *TransportError when the exchange could not be completed or
	// the server answered with a non-2xx HTTP status.
	Post(ctx context.Context, command string, body []byte, contentType string) ([]byte, error)
}

// ServerAdapter is the full client-side view of the server connection.
type ServerAdapter interface {
	Transport

	// Options asks the server which protocol versions and commands it
	// supports.
	Options(ctx context.Context) (models.ServerOptions, error)

	// Connect runs Options, selects the protocol version used by subsequent
	// requests and verifies the server supports every command in required.
	// The configured version is kept when the server lists it; otherwise the
	// highest version both sides know is chosen.
	//
	// Returns ErrUnsupportedVersion or ErrUnsupportedCommand (wrapped) when
	// the server cannot serve this client.
	Connect(ctx context.Context, required ...string) (string, error)

	// ProtocolVersion returns the version sent in MS-ASProtocolVersion.
	ProtocolVersion() string

	// SetToken switches the adapter to bearer authentication with token. An
	// empty token switches back to basic authentication.
	SetToken(token string)
}
