// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
}

// New groups workers. Nil entries are skipped.
func New(workers ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker and blocks until all of them have returned. The
// first failure cancels the context of the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		worker := worker
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}
	return g.Wait()
}

// Len returns the number of workers.
func (w *Workers) Len() int {
	return len(w.workers)
}
