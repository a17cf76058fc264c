// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mail-sync/models"
)

const (
	tableCollections = "collections"
	tableFolders     = "folders"

	upsertFolderSuffix = "ON CONFLICT (collection_id, server_id) DO UPDATE SET " +
		"parent_id = excluded.parent_id, " +
		"display_name = excluded.display_name, " +
		"folder_type = excluded.folder_type"
)

// queries builds the statements of the repository for one dialect.
type queries struct {
	sb sq.StatementBuilderType
}

func newQueries(dialect Dialect) queries {
	format := sq.PlaceholderFormat(sq.Question)
	if dialect == DialectPostgres {
		format = sq.Dollar
	}
	return queries{sb: sq.StatementBuilder.PlaceholderFormat(format)}
}

func (q queries) selectSyncKey(collectionID string) (string, []any, error) {
	return q.sb.
		Select("sync_key").
		From(tableCollections).
		Where(sq.Eq{"collection_id": collectionID}).
		ToSql()
}

func (q queries) selectFolders(collectionID string) (string, []any, error) {
	return q.sb.
		Select("server_id", "parent_id", "display_name", "folder_type").
		From(tableFolders).
		Where(sq.Eq{"collection_id": collectionID}).
		OrderBy("server_id").
		ToSql()
}

func (q queries) ensureCollection(collectionID string) (string, []any, error) {
	return q.sb.
		Insert(tableCollections).
		Columns("collection_id", "sync_key").
		Values(collectionID, string(models.InitialSyncToken)).
		Suffix("ON CONFLICT (collection_id) DO NOTHING").
		ToSql()
}

// swapSyncKey sets the sync key to next only where it still equals expected.
func (q queries) swapSyncKey(collectionID string, expected, next models.SyncToken) (string, []any, error) {
	return q.sb.
		Update(tableCollections).
		Set("sync_key", string(next)).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"collection_id": collectionID, "sync_key": string(expected)}).
		ToSql()
}

func (q queries) upsertFolders(collectionID string, folders []models.Folder) (string, []any, error) {
	insert := q.sb.
		Insert(tableFolders).
		Columns("collection_id", "server_id", "parent_id", "display_name", "folder_type")
	for _, f := range folders {
		insert = insert.Values(collectionID, f.ServerID, f.ParentID, f.DisplayName, f.Type.Wire())
	}
	return insert.Suffix(upsertFolderSuffix).ToSql()
}

func (q queries) deleteFolders(collectionID string, serverIDs []string) (string, []any, error) {
	return q.sb.
		Delete(tableFolders).
		Where(sq.Eq{"collection_id": collectionID, "server_id": serverIDs}).
		ToSql()
}
