// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	// ErrUnknownCommand is returned for a subcommand the client does not know.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned when a subcommand gets the wrong arguments.
	ErrUsage = errors.New("invalid arguments")
)
