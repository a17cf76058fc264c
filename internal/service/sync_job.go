// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"golang.org/x/sync/errgroup"
)

const defaultSyncInterval = 5 * time.Minute

type syncJob struct {
	syncService FolderSyncService
	collections []string
	concurrency int
	interval    time.Duration
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob that calls syncService.Sync for every
// collection. At most concurrency collections are synced at once; zero or
// less means no limit. interval is used by Run. The job is idle until Start
// or Run is called.
func NewSyncJob(syncService FolderSyncService, collections []string, concurrency int, interval time.Duration, log *logger.Logger) SyncJob {
	return &syncJob{
		syncService: syncService,
		collections: collections,
		concurrency: concurrency,
		interval:    interval,
		logger:      log,
	}
}

func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		j.loop(jobCtx, interval)
	}()
}

func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Run syncs once right away, then on every tick until ctx is done.
func (j *syncJob) Run(ctx context.Context) error {
	interval := j.interval
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	if err := j.RunOnce(ctx); err != nil {
		j.logger.Err(err).Msg("initial folder sync had failures")
	}
	j.loop(ctx, interval)
	return nil
}

func (j *syncJob) loop(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := j.RunOnce(ctx); err != nil {
				j.logger.Err(err).Msg("periodic folder sync had failures")
			}
		}
	}
}

func (j *syncJob) RunOnce(ctx context.Context) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	if j.concurrency > 0 {
		g.SetLimit(j.concurrency)
	}

	for _, id := range j.collections {
		id := id
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			// one collection failing must not cancel the others
			if _, err := j.syncService.Sync(ctx, id); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("collection %s: %w", id, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
