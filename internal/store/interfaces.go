// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists the committed folder hierarchy of every collection:
// the current sync key together with the folder set it describes.
//
// Both halves are written in one SQL transaction guarded by a
// compare-and-swap on the stored sync key, so a reader never observes a new
// key with an old folder set or the other way round. SQLite
// (mattn/go-sqlite3) and PostgreSQL (pgx) are supported; the backend is
// chosen from the DSN by [NewConnect].
package store

import (
	"context"

	"github.com/MKhiriev/go-mail-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/hierarchy_repository_mock.go -package=mock

// HierarchyRepository stores the committed (sync key, folder set) pair.
type HierarchyRepository interface {
	// LoadHierarchy returns the committed hierarchy of collectionID. A
	// collection that was never committed yields models.NewHierarchy.
	LoadHierarchy(ctx context.Context, collectionID string) (models.Hierarchy, error)

	// CommitHierarchy atomically replaces expected with next. The stored
	// sync key must still equal expected.Token, otherwise ErrTokenMismatch
	// is returned and nothing is written. Only the folders that differ
	// between expected and next are touched.
	CommitHierarchy(ctx context.Context, expected, next models.Hierarchy) error

	// ResetSyncToken sets the stored sync key of collectionID back to the
	// initial token, leaving folders untouched. The stored key must equal
	// expected, otherwise ErrTokenMismatch is returned.
	ResetSyncToken(ctx context.Context, collectionID string, expected models.SyncToken) error
}
