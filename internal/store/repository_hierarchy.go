// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/models"
)

type hierarchyRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewHierarchyRepository returns a [HierarchyRepository] backed by db.
func NewHierarchyRepository(db *DB, logger *logger.Logger) HierarchyRepository {
	return &hierarchyRepository{db: db, logger: logger}
}

// LoadHierarchy implements [HierarchyRepository]. The key and the folders are
// read in one transaction.
func (r *hierarchyRepository) LoadHierarchy(ctx context.Context, collectionID string) (models.Hierarchy, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Hierarchy{}, r.db.wrap("load hierarchy", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := r.db.queries.selectSyncKey(collectionID)
	if err != nil {
		return models.Hierarchy{}, fmt.Errorf("load hierarchy: %w: %w", ErrBuildingSQLQuery, err)
	}

	var syncKey string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&syncKey)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewHierarchy(collectionID), nil
	}
	if err != nil {
		return models.Hierarchy{}, r.db.wrap("load hierarchy", ErrExecutingQuery, err)
	}

	folders, err := r.loadFolders(ctx, tx, collectionID)
	if err != nil {
		return models.Hierarchy{}, err
	}

	return models.Hierarchy{
		CollectionID: collectionID,
		Token:        models.SyncToken(syncKey),
		Folders:      models.NewFolderSet(folders...),
	}, nil
}

func (r *hierarchyRepository) loadFolders(ctx context.Context, tx *sql.Tx, collectionID string) ([]models.Folder, error) {
	query, args, err := r.db.queries.selectFolders(collectionID)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.db.wrap("load folders", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		var folderType string
		if err = rows.Scan(&f.ServerID, &f.ParentID, &f.DisplayName, &folderType); err != nil {
			return nil, fmt.Errorf("load folders: %w: %w", ErrScanningRows, err)
		}
		f.Type = models.ParseFolderType(folderType)
		folders = append(folders, f)
	}
	if err = rows.Err(); err != nil {
		return nil, r.db.wrap("load folders", ErrScanningRows, err)
	}

	return folders, nil
}

// CommitHierarchy implements [HierarchyRepository].
func (r *hierarchyRepository) CommitHierarchy(ctx context.Context, expected, next models.Hierarchy) error {
	if expected.CollectionID != next.CollectionID {
		return ErrCollectionMismatch
	}
	collectionID := next.CollectionID
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return r.db.wrap("commit hierarchy", ErrBeginningTransaction, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err = r.swapSyncKey(ctx, tx, collectionID, expected.Token, next.Token); err != nil {
		return err
	}

	delta := expected.Folders.Diff(next.Folders)
	if upserts := append(append(slices.Grow([]models.Folder(nil), len(delta.Added)+len(delta.Updated)), delta.Added...), delta.Updated...); len(upserts) > 0 {
		if err = r.exec(ctx, tx, "upsert folders", func() (string, []any, error) {
			return r.db.queries.upsertFolders(collectionID, upserts)
		}); err != nil {
			return err
		}
	}
	if len(delta.Deleted) > 0 {
		if err = r.exec(ctx, tx, "delete folders", func() (string, []any, error) {
			return r.db.queries.deleteFolders(collectionID, delta.Deleted)
		}); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return r.db.wrap("commit hierarchy", ErrCommitingTransaction, err)
	}
	committed = true

	log.Debug().
		Str(logger.FieldCollectionID, collectionID).
		Str(logger.FieldSyncKey, next.Token.String()).
		Int("added", len(delta.Added)).
		Int("updated", len(delta.Updated)).
		Int("deleted", len(delta.Deleted)).
		Msg("hierarchy committed")
	return nil
}

func (r *hierarchyRepository) swapSyncKey(ctx context.Context, tx *sql.Tx, collectionID string, expected, next models.SyncToken) error {
	if err := r.exec(ctx, tx, "ensure collection", func() (string, []any, error) {
		return r.db.queries.ensureCollection(collectionID)
	}); err != nil {
		return err
	}

	query, args, err := r.db.queries.swapSyncKey(collectionID, expected, next)
	if err != nil {
		return fmt.Errorf("swap sync key: %w: %w", ErrBuildingSQLQuery, err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return r.db.wrap("swap sync key", ErrExecutingStatement, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.db.wrap("swap sync key", ErrExecutingStatement, err)
	}
	if n == 0 {
		return fmt.Errorf("swap sync key for %s: %w", collectionID, ErrTokenMismatch)
	}
	return nil
}

func (r *hierarchyRepository) exec(ctx context.Context, tx *sql.Tx, op string, build func() (string, []any, error)) error {
	query, args, err := build()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return r.db.wrap(op, ErrExecutingStatement, err)
	}
	return nil
}

// ResetSyncToken implements [HierarchyRepository].
func (r *hierarchyRepository) ResetSyncToken(ctx context.Context, collectionID string, expected models.SyncToken) error {
	query, args, err := r.db.queries.swapSyncKey(collectionID, expected, models.InitialSyncToken)
	if err != nil {
		return fmt.Errorf("reset sync key: %w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.db.wrap("reset sync key", ErrExecutingStatement, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.db.wrap("reset sync key", ErrExecutingStatement, err)
	}
	if n == 0 && !expected.IsInitial() {
		return fmt.Errorf("reset sync key for %s: %w", collectionID, ErrTokenMismatch)
	}

	logger.FromContext(ctx).Info().
		Str(logger.FieldCollectionID, collectionID).
		Str(logger.FieldSyncKey, expected.String()).
		Msg("sync key reset")
	return nil
}
