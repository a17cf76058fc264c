// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-mail-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_Placeholders(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		want    string
		notWant string
	}{
		{"sqlite uses question marks", DialectSQLite, "?", "$1"},
		{"postgres uses dollars", DialectPostgres, "$1", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := newQueries(tt.dialect).swapSyncKey("inbox", "k1", "k2")
			require.NoError(t, err)
			assert.Contains(t, query, tt.want)
			assert.NotContains(t, query, tt.notWant)
			assert.Equal(t, []any{"k2", "inbox", "k1"}, args)
		})
	}
}

func TestQueries_UpsertFolders(t *testing.T) {
	folders := []models.Folder{
		{ServerID: "1", ParentID: "0", DisplayName: "Inbox", Type: models.TypeOf(models.FolderKindDefaultInbox)},
		{ServerID: "2", ParentID: "1", DisplayName: "Odd", Type: models.ParseFolderType("77")},
	}

	query, args, err := newQueries(DialectPostgres).upsertFolders("c", folders)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO folders"))
	assert.Contains(t, query, "ON CONFLICT (collection_id, server_id) DO UPDATE")
	assert.Contains(t, query, "$10")
	assert.Equal(t, []any{"c", "1", "0", "Inbox", "2", "c", "2", "1", "Odd", "77"}, args)
}

func TestQueries_DeleteFolders(t *testing.T) {
	query, args, err := newQueries(DialectSQLite).deleteFolders("c", []string{"a", "b"})
	require.NoError(t, err)

	assert.Contains(t, query, "server_id IN (?,?)")
	assert.Equal(t, []any{"c", "a", "b"}, args)
}

func TestQueries_EnsureCollection(t *testing.T) {
	query, args, err := newQueries(DialectSQLite).ensureCollection("c")
	require.NoError(t, err)

	assert.Contains(t, query, "ON CONFLICT (collection_id) DO NOTHING")
	assert.Equal(t, []any{"c", "0"}, args)
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres://u:p@localhost/db"))
	assert.Equal(t, DialectPostgres, DialectFor("PostgreSQL://localhost/db"))
	assert.Equal(t, DialectSQLite, DialectFor("sync.db"))
	assert.Equal(t, DialectSQLite, DialectFor("file:sync.db?cache=shared"))
}
