// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// ServerOptions is what the server advertises in response to OPTIONS.
type ServerOptions struct {
	Versions []string
	Commands []string
}

// SupportsCommand reports whether the server lists command.
func (o ServerOptions) SupportsCommand(command string) bool {
	return slices.Contains(o.Commands, command)
}

// SupportsVersion reports whether the server lists version.
func (o ServerOptions) SupportsVersion(version string) bool {
	return slices.Contains(o.Versions, version)
}
