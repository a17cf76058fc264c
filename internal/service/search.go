// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/models"
)

type searchService struct {
	exchanger
	account string
	guard   *inflightGuard
}

// NewSearchService creates a SearchService for account. Searches of one
// account run one at a time; they never block folder syncs.
func NewSearchService(tbl *codepage.Table, transport adapter.Transport, account string, log *logger.Logger) SearchService {
	return newSearchService(tbl, transport, account, newInflightGuard(), log)
}

func newSearchService(tbl *codepage.Table, transport adapter.Transport, account string, guard *inflightGuard, log *logger.Logger) *searchService {
	return &searchService{
		exchanger: exchanger{tbl: tbl, transport: transport, logger: log},
		account:   account,
		guard:     guard,
	}
}

func (s *searchService) begin() (func(), error) {
	release, ok := s.guard.acquire(searchKeyPrefix + s.account)
	if !ok {
		return nil, fmt.Errorf("%w: search for %s", ErrSyncInProgress, s.account)
	}
	return release, nil
}

func (s *searchService) Search(ctx context.Context, q models.SearchQuery) (models.SearchResult, error) {
	release, err := s.begin()
	if err != nil {
		return models.SearchResult{}, err
	}
	defer release()

	return s.page(ctx, q)
}

func (s *searchService) SearchAll(ctx context.Context, q models.SearchQuery, limit int) ([]models.SearchMatch, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", ErrInvalidArguments, limit)
	}
	release, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		matches []models.SearchMatch
		seen    = make(map[string]struct{})
		pages   int
	)
	for {
		res, err := s.page(ctx, q)
		if err != nil {
			return matches, err
		}
		pages++

		for _, m := range res.Matches {
			key := m.LongID
			if key != "" {
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			matches = append(matches, m)
		}
		if limit > 0 && len(matches) >= limit {
			matches = matches[:limit]
			break
		}

		next, more := protocol.NextPage(q, res)
		// a server that does not move the window forward would loop forever
		if !more || next.Range.Offset <= q.Range.Offset {
			break
		}
		q = next
	}

	s.logger.Debug().
		Str("store", q.Store).
		Int("pages", pages).
		Int("matches", len(matches)).
		Msg("search finished")
	return matches, nil
}

// page sends one Search request. EndOfRange is a normal, empty result.
func (s *searchService) page(ctx context.Context, q models.SearchQuery) (models.SearchResult, error) {
	req, err := protocol.BuildSearchRequest(s.tbl, q)
	if err != nil {
		return models.SearchResult{}, err
	}
	root, err := s.roundTrip(ctx, protocol.CmdSearch, req)
	if err != nil {
		return models.SearchResult{}, err
	}
	res, err := protocol.ParseSearchResponse(s.tbl, root)
	if err != nil {
		return models.SearchResult{}, err
	}

	switch protocol.ClassifySearchStatus(res.Status) {
	case protocol.DispositionSuccess, protocol.DispositionComplete:
		return res, nil
	}

	rej := protocol.SearchRejection(res.Status)
	s.logger.Warn().
		Str(logger.FieldCommand, protocol.CmdSearch).
		Str(logger.FieldStatus, res.Status.String()).
		Bool("retryable", rej.Retryable).
		Bool("needs_folder_sync", rej.NeedsFolderSync).
		Msg("search rejected")
	return res, rej
}
