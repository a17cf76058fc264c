// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mail-sync/models"
)

// FolderSyncService keeps the local folder hierarchy of a collection in step
// with the server. Every method works on the committed (SyncToken, folder set)
// pair held by the repository; nothing is committed unless the whole response
// was valid and applied.
//
// Only one request may be in flight per collection. A call made while another
// one is outstanding for the same collection fails with ErrSyncInProgress.
type FolderSyncService interface {
	// Sync runs one FolderSync cycle for collectionID. An InvalidSyncKey
	// status resets the stored token and is retried once as a full snapshot
	// within the same call. Any other non-success status is returned as a
	// *protocol.RejectedError and leaves the committed state untouched.
	Sync(ctx context.Context, collectionID string) (models.SyncOutcome, error)

	// CreateFolder creates a folder named name under parentID. An empty
	// parentID means the hierarchy root. The created folder and the new
	// SyncKey are committed together.
	CreateFolder(ctx context.Context, collectionID, parentID, name string, typ models.FolderType) (models.Folder, error)

	// DeleteFolder deletes serverID and everything below it.
	DeleteFolder(ctx context.Context, collectionID, serverID string) error

	// UpdateFolder renames serverID and moves it under parentID. The folder
	// must be known locally.
	UpdateFolder(ctx context.Context, collectionID, serverID, parentID, name string) (models.Folder, error)

	// Folders returns the committed hierarchy of collectionID.
	Folders(ctx context.Context, collectionID string) (models.Hierarchy, error)

	// State returns the state machine position of collectionID.
	State(collectionID string) models.SyncState
}

// SearchService runs server-side searches.
type SearchService interface {
	// Search fetches the single page of results described by q.
	Search(ctx context.Context, q models.SearchQuery) (models.SearchResult, error)

	// SearchAll pages through the result set starting at q.Range until the
	// server reports the end, de-duplicating matches by LongID. A limit
	// greater than zero stops paging once that many matches were collected.
	SearchAll(ctx context.Context, q models.SearchQuery, limit int) ([]models.SearchMatch, error)
}

// SyncJob runs FolderSync for a set of collections in the background.
type SyncJob interface {
	// Start launches a goroutine that syncs every collection each interval.
	// A running job is stopped first. If interval is zero or negative it
	// defaults to 5 minutes.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the background goroutine and waits for it to exit. It is
	// safe to call when the job is not running.
	Stop()

	// RunOnce syncs every collection once, concurrently, and returns the
	// joined errors of the collections that failed.
	RunOnce(ctx context.Context) error

	// Run blocks, syncing on the configured interval, until ctx is done.
	Run(ctx context.Context) error
}
