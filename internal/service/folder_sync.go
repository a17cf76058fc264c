// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/internal/store"
	"github.com/MKhiriev/go-mail-sync/models"
)

type folderSyncService struct {
	exchanger
	repo  store.HierarchyRepository
	guard *inflightGuard

	mu     sync.Mutex
	states map[string]models.SyncState
}

// NewFolderSyncService creates a FolderSyncService that talks to the server
// through transport and persists hierarchies in repo.
func NewFolderSyncService(tbl *codepage.Table, transport adapter.Transport, repo store.HierarchyRepository, log *logger.Logger) FolderSyncService {
	return newFolderSyncService(tbl, transport, repo, newInflightGuard(), log)
}

func newFolderSyncService(tbl *codepage.Table, transport adapter.Transport, repo store.HierarchyRepository, guard *inflightGuard, log *logger.Logger) *folderSyncService {
	return &folderSyncService{
		exchanger: exchanger{tbl: tbl, transport: transport, logger: log},
		repo:      repo,
		guard:     guard,
		states:    make(map[string]models.SyncState),
	}
}

func (s *folderSyncService) State(collectionID string) models.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[collectionID]
}

func (s *folderSyncService) setState(collectionID string, st models.SyncState) {
	s.mu.Lock()
	s.states[collectionID] = st
	s.mu.Unlock()
}

func (s *folderSyncService) begin(collectionID string) (func(), error) {
	if collectionID == "" {
		return nil, ErrNoCollectionID
	}
	release, ok := s.guard.acquire(folderKeyPrefix + collectionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSyncInProgress, collectionID)
	}
	return release, nil
}

func (s *folderSyncService) Folders(ctx context.Context, collectionID string) (models.Hierarchy, error) {
	if collectionID == "" {
		return models.Hierarchy{}, ErrNoCollectionID
	}
	h, err := s.repo.LoadHierarchy(ctx, collectionID)
	if err != nil {
		return models.Hierarchy{}, fmt.Errorf("load hierarchy: %w", err)
	}
	return h, nil
}

func (s *folderSyncService) Sync(ctx context.Context, collectionID string) (models.SyncOutcome, error) {
	release, err := s.begin(collectionID)
	if err != nil {
		return models.SyncOutcome{}, err
	}
	defer release()

	log := s.logger.ForCollection(collectionID)

	outcome, err := s.sync(ctx, collectionID, log)
	if err != nil {
		s.setState(collectionID, models.SyncStateFailed)
		log.Err(err).Str(logger.FieldSyncKey, outcome.Token.String()).Msg("folder sync failed")
		return outcome, err
	}

	s.setState(collectionID, models.SyncStateIdle)
	log.Info().
		Str(logger.FieldSyncKey, outcome.Token.String()).
		Bool("applied", outcome.Applied).
		Bool("recovered", outcome.Recovered).
		Int("changes", outcome.Delta.Len()).
		Msg("folder sync done")
	return outcome, nil
}

func (s *folderSyncService) sync(ctx context.Context, collectionID string, log *logger.Logger) (models.SyncOutcome, error) {
	current, err := s.repo.LoadHierarchy(ctx, collectionID)
	if err != nil {
		return models.SyncOutcome{}, fmt.Errorf("load hierarchy: %w", err)
	}

	recovered := false
	for {
		s.setState(collectionID, models.SyncStateRequesting)
		req, err := protocol.BuildFolderSyncRequest(s.tbl, current.Token)
		if err != nil {
			return models.SyncOutcome{Token: current.Token}, fmt.Errorf("build folder sync request: %w", err)
		}

		s.setState(collectionID, models.SyncStateAwaitingResponse)
		root, err := s.roundTrip(ctx, protocol.CmdFolderSync, req)
		if err != nil {
			return models.SyncOutcome{Token: current.Token, Recovered: recovered}, err
		}
		resp, err := protocol.ParseFolderSyncResponse(s.tbl, root)
		if err != nil {
			return models.SyncOutcome{Token: current.Token, Recovered: recovered}, err
		}

		switch protocol.ClassifyFolderStatus(resp.Status) {
		case protocol.DispositionSuccess:
			s.setState(collectionID, models.SyncStateApplying)
			outcome, err := s.apply(ctx, current, resp)
			outcome.Recovered = recovered
			return outcome, err

		case protocol.DispositionResync:
			if recovered {
				rej := protocol.FolderRejection(protocol.CmdFolderSync, resp.RawStatus, resp.Status)
				rej.NeedsFolderSync = true
				return models.SyncOutcome{Status: resp.Status, Token: models.InitialSyncToken, Recovered: true}, rej
			}

			s.setState(collectionID, models.SyncStateRetrying)
			log.Warn().Str(logger.FieldSyncKey, current.Token.String()).Msg("server rejected sync key, resyncing from scratch")
			if err := s.resetToken(ctx, current); err != nil {
				return models.SyncOutcome{Status: resp.Status, Token: current.Token}, err
			}
			current.Token = models.InitialSyncToken
			recovered = true

		default:
			return models.SyncOutcome{Status: resp.Status, Token: current.Token, Recovered: recovered},
				s.reject(log, protocol.CmdFolderSync, resp.RawStatus, resp.Status)
		}
	}
}

// apply commits a successful FolderSync response against current.
func (s *folderSyncService) apply(ctx context.Context, current models.Hierarchy, resp protocol.FolderSyncResponse) (models.SyncOutcome, error) {
	outcome := models.SyncOutcome{Status: resp.Status, Token: current.Token}

	// the server answered a key we already hold: a replay of a committed response
	if resp.SyncKey == current.Token && !current.Token.IsInitial() {
		return outcome, nil
	}

	delta := resp.Delta
	if current.Token.IsInitial() {
		delta = current.Folders.SnapshotDelta(delta)
	}

	next, err := current.Folders.Apply(delta)
	if err != nil {
		return outcome, fmt.Errorf("%w: %w", protocol.ErrMalformedResponse, err)
	}

	if err := s.commit(ctx, current, models.Hierarchy{
		CollectionID: current.CollectionID,
		Token:        resp.SyncKey,
		Folders:      next,
	}); err != nil {
		return outcome, err
	}

	outcome.Token = resp.SyncKey
	outcome.Delta = delta
	outcome.Applied = true
	return outcome, nil
}

func (s *folderSyncService) commit(ctx context.Context, expected, next models.Hierarchy) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.repo.CommitHierarchy(ctx, expected, next)
	if errors.Is(err, store.ErrTokenMismatch) {
		return fmt.Errorf("%w: %w", ErrStaleResponse, err)
	}
	if err != nil {
		return fmt.Errorf("commit hierarchy: %w", err)
	}
	return nil
}

func (s *folderSyncService) resetToken(ctx context.Context, current models.Hierarchy) error {
	err := s.repo.ResetSyncToken(ctx, current.CollectionID, current.Token)
	if errors.Is(err, store.ErrTokenMismatch) {
		return fmt.Errorf("%w: %w", ErrStaleResponse, err)
	}
	if err != nil {
		return fmt.Errorf("reset sync key: %w", err)
	}
	return nil
}

func (s *folderSyncService) reject(log *logger.Logger, command, raw string, status models.FolderStatus) error {
	rej := protocol.FolderRejection(command, raw, status)
	ev := log.Warn()
	if status == models.FolderStatusMalformedRequest {
		ev = log.Error()
	}
	ev.Str(logger.FieldCommand, command).
		Str(logger.FieldStatus, status.String()).
		Bool("retryable", rej.Retryable).
		Msg("server rejected request")
	return rej
}
