// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ───── Helper ─────

func newTestRepo(t *testing.T, dialect Dialect, classifier ErrorClassificator) (*hierarchyRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := newDB(conn, dialect, classifier, logger.Nop())
	return &hierarchyRepository{db: db, logger: logger.Nop()}, mock
}

func mailFolder(id, parent, name string) models.Folder {
	return models.Folder{ServerID: id, ParentID: parent, DisplayName: name, Type: models.TypeOf(models.FolderKindMail)}
}

var folderColumns = []string{"server_id", "parent_id", "display_name", "folder_type"}

// ── LoadHierarchy ───────────────────────────────────────────────────────────

func TestLoadHierarchy_Success(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, NewSQLiteErrorClassifier())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT sync_key FROM collections").
		WithArgs("inbox").
		WillReturnRows(sqlmock.NewRows([]string{"sync_key"}).AddRow("k7"))
	mock.ExpectQuery("SELECT server_id, parent_id, display_name, folder_type FROM folders").
		WithArgs("inbox").
		WillReturnRows(sqlmock.NewRows(folderColumns).
			AddRow("1", "0", "Inbox", "2").
			AddRow("2", "1", "Odd", "99"))
	mock.ExpectRollback()

	h, err := repo.LoadHierarchy(context.Background(), "inbox")
	require.NoError(t, err)

	assert.Equal(t, "inbox", h.CollectionID)
	assert.Equal(t, models.SyncToken("k7"), h.Token)
	require.Equal(t, 2, h.Folders.Len())

	inbox, ok := h.Folders.Get("1")
	require.True(t, ok)
	assert.Equal(t, models.TypeOf(models.FolderKindDefaultInbox), inbox.Type)

	odd, _ := h.Folders.Get("2")
	assert.True(t, odd.Type.IsUnknown())
	assert.Equal(t, "99", odd.Type.Raw)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadHierarchy_UnknownCollection(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT sync_key FROM collections").
		WithArgs("new").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	h, err := repo.LoadHierarchy(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, models.InitialSyncToken, h.Token)
	assert.Zero(t, h.Folders.Len())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadHierarchy_QueryError(t *testing.T) {
	repo, mock := newTestRepo(t, DialectPostgres, NewPostgresErrorClassifier())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT sync_key FROM collections").
		WithArgs("inbox").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectRollback()

	_, err := repo.LoadHierarchy(context.Background(), "inbox")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, ErrRetryable)
}

func TestLoadHierarchy_BeginError(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, nil)
	mock.ExpectBegin().WillReturnError(errors.New("disk gone"))

	_, err := repo.LoadHierarchy(context.Background(), "inbox")
	assert.ErrorIs(t, err, ErrBeginningTransaction)
	assert.NotErrorIs(t, err, ErrRetryable)
}

// ── CommitHierarchy ─────────────────────────────────────────────────────────

func TestCommitHierarchy_WritesDiff(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, nil)

	expected := models.Hierarchy{
		CollectionID: "inbox",
		Token:        "k1",
		Folders:      models.NewFolderSet(mailFolder("1", "0", "Inbox"), mailFolder("2", "0", "Old")),
	}
	next := models.Hierarchy{
		CollectionID: "inbox",
		Token:        "k2",
		Folders:      models.NewFolderSet(mailFolder("1", "0", "Renamed"), mailFolder("3", "1", "New")),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO collections").
		WithArgs("inbox", "0").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE collections SET sync_key").
		WithArgs("k2", "inbox", "k1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO folders").
		WithArgs(
			"inbox", "3", "1", "New", "12",
			"inbox", "1", "0", "Renamed", "12",
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM folders").
		WithArgs("inbox", "2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CommitHierarchy(context.Background(), expected, next))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitHierarchy_TokenOnly(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, nil)

	folders := models.NewFolderSet(mailFolder("1", "0", "Inbox"))
	expected := models.Hierarchy{CollectionID: "inbox", Token: "k1", Folders: folders}
	next := models.Hierarchy{CollectionID: "inbox", Token: "k2", Folders: folders}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO collections").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE collections").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CommitHierarchy(context.Background(), expected, next))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitHierarchy_TokenMismatch(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, nil)

	expected := models.NewHierarchy("inbox")
	next := models.Hierarchy{CollectionID: "inbox", Token: "k1", Folders: models.NewFolderSet(mailFolder("1", "0", "Inbox"))}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO collections").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE collections").
		WithArgs("k1", "inbox", "0").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CommitHierarchy(context.Background(), expected, next)
	assert.ErrorIs(t, err, ErrTokenMismatch)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitHierarchy_FolderWriteFailsRollsBack(t *testing.T) {
	repo, mock := newTestRepo(t, DialectPostgres, NewPostgresErrorClassifier())

	expected := models.NewHierarchy("inbox")
	next := models.Hierarchy{CollectionID: "inbox", Token: "k1", Folders: models.NewFolderSet(mailFolder("1", "0", "Inbox"))}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO collections").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE collections").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO folders").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})
	mock.ExpectRollback()

	err := repo.CommitHierarchy(context.Background(), expected, next)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrRetryable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitHierarchy_CommitFails(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, nil)

	expected := models.NewHierarchy("inbox")
	next := models.Hierarchy{CollectionID: "inbox", Token: "k1", Folders: models.NewFolderSet()}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO collections").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE collections").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("io error"))

	err := repo.CommitHierarchy(context.Background(), expected, next)
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestCommitHierarchy_CollectionMismatch(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, nil)

	err := repo.CommitHierarchy(context.Background(), models.NewHierarchy("a"), models.NewHierarchy("b"))
	assert.ErrorIs(t, err, ErrCollectionMismatch)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── ResetSyncToken ──────────────────────────────────────────────────────────

func TestResetSyncToken(t *testing.T) {
	repo, mock := newTestRepo(t, DialectPostgres, nil)

	mock.ExpectExec(`UPDATE collections SET sync_key = \$1`).
		WithArgs("0", "inbox", "k9").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ResetSyncToken(context.Background(), "inbox", "k9"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetSyncToken_Mismatch(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, nil)

	mock.ExpectExec("UPDATE collections").
		WithArgs("0", "inbox", "k9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ResetSyncToken(context.Background(), "inbox", "k9")
	assert.ErrorIs(t, err, ErrTokenMismatch)
}

func TestResetSyncToken_AlreadyInitial(t *testing.T) {
	repo, mock := newTestRepo(t, DialectSQLite, nil)

	mock.ExpectExec("UPDATE collections").
		WithArgs("0", "never-synced", "0").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.ResetSyncToken(context.Background(), "never-synced", models.InitialSyncToken))
}
