// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the development server.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts down.
	RunServer()

	// Run serves until ctx is done. It returns nil after a clean shutdown,
	// so a Server can be run as a workers.Worker.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
