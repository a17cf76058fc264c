// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived background loops of a binary, such as
// the periodic folder sync and the development HTTP server, as one unit.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is done or the worker
// fails; a nil error means a clean shutdown.
//
// Example implementation:
//
//	type ticker struct{}
//
//	func (t *ticker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to Worker.
type WorkerFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
