// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/mock"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/internal/store"
	"github.com/MKhiriev/go-mail-sync/internal/utils"
	"github.com/MKhiriev/go-mail-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testCollection = "c1"

func newTestFolderSync(t *testing.T, repo store.HierarchyRepository) (*folderSyncService, *mock.MockTransport) {
	ctrl := gomock.NewController(t)
	tr := mock.NewMockTransport(ctrl)
	return newFolderSyncService(testTable, tr, repo, newInflightGuard(), logger.Nop()), tr
}

// expectFolderSync makes the transport answer one FolderSync request after
// checking the SyncKey the client presented.
func expectFolderSync(t *testing.T, tr *mock.MockTransport, wantKey models.SyncToken, reply protocol.FolderSyncResponse) *gomock.Call {
	return tr.EXPECT().
		Post(gomock.Any(), protocol.CmdFolderSync, gomock.Any(), utils.WBXMLContentType).
		DoAndReturn(func(_ context.Context, _ string, body []byte, _ string) ([]byte, error) {
			assert.Equal(t, wantKey, sentSyncKey(t, body))
			return folderSyncReply(t, reply), nil
		})
}

func TestSync_FreshCollectionGetsSnapshot(t *testing.T) {
	repo := newMemRepo()
	svc, tr := newTestFolderSync(t, repo)

	expectFolderSync(t, tr, "0", protocol.FolderSyncResponse{
		Status:  models.FolderStatusSuccess,
		SyncKey: "1",
		Delta: models.FolderDelta{Added: []models.Folder{
			{ServerID: "F1", ParentID: "0", DisplayName: "Inbox", Type: models.ParseFolderType("2")},
		}},
	})

	out, err := svc.Sync(context.Background(), testCollection)
	require.NoError(t, err)

	assert.True(t, out.Applied)
	assert.False(t, out.Recovered)
	assert.Equal(t, models.SyncToken("1"), out.Token)
	assert.Equal(t, models.SyncStateIdle, svc.State(testCollection))

	got := repo.get(testCollection)
	assert.Equal(t, models.SyncToken("1"), got.Token)
	require.Equal(t, 1, got.Folders.Len())
	f, ok := got.Folders.Get("F1")
	require.True(t, ok)
	assert.Equal(t, models.FolderKindDefaultInbox, f.Type.Kind)
}

func TestSync_InvalidSyncKeyTwiceResetsTokenOnly(t *testing.T) {
	existing := []models.Folder{
		folder("F1", "0", "Inbox", models.FolderKindDefaultInbox),
		folder("F2", "0", "Sent", models.FolderKindDefaultSent),
	}
	repo := newMemRepo(hierarchy(testCollection, "5", existing...))
	svc, tr := newTestFolderSync(t, repo)

	invalid := protocol.FolderSyncResponse{Status: models.FolderStatusInvalidSyncKey}
	gomock.InOrder(
		expectFolderSync(t, tr, "5", invalid),
		expectFolderSync(t, tr, "0", invalid),
	)

	out, err := svc.Sync(context.Background(), testCollection)
	require.Error(t, err)

	var rej *protocol.RejectedError
	require.ErrorAs(t, err, &rej)
	assert.True(t, errors.Is(err, protocol.ErrRejected))
	assert.Equal(t, 9, rej.Code)
	assert.True(t, rej.NeedsFolderSync)
	assert.True(t, out.Recovered)

	got := repo.get(testCollection)
	assert.Equal(t, models.InitialSyncToken, got.Token)
	assert.Equal(t, existing, got.Folders.All())
	assert.Equal(t, 0, repo.commits)
	assert.Equal(t, models.SyncStateFailed, svc.State(testCollection))
}

func TestSync_InvalidSyncKeyRecoversWithSnapshot(t *testing.T) {
	repo := newMemRepo(hierarchy(testCollection, "5",
		folder("F1", "0", "Inbox", models.FolderKindDefaultInbox),
		folder("F2", "0", "Old", models.FolderKindMail),
		folder("F2a", "F2", "Old child", models.FolderKindMail),
	))
	svc, tr := newTestFolderSync(t, repo)

	gomock.InOrder(
		expectFolderSync(t, tr, "5", protocol.FolderSyncResponse{Status: models.FolderStatusInvalidSyncKey}),
		expectFolderSync(t, tr, "0", protocol.FolderSyncResponse{
			Status:  models.FolderStatusSuccess,
			SyncKey: "1",
			Delta: models.FolderDelta{Added: []models.Folder{
				folder("F1", "0", "Posteingang", models.FolderKindDefaultInbox),
				folder("F3", "0", "Archive", models.FolderKindMail),
			}},
		}),
	)

	out, err := svc.Sync(context.Background(), testCollection)
	require.NoError(t, err)
	assert.True(t, out.Recovered)
	assert.True(t, out.Applied)

	assert.Equal(t, []models.Folder{folder("F3", "0", "Archive", models.FolderKindMail)}, out.Delta.Added)
	assert.Equal(t, []models.Folder{folder("F1", "0", "Posteingang", models.FolderKindDefaultInbox)}, out.Delta.Updated)
	assert.ElementsMatch(t, []string{"F2", "F2a"}, out.Delta.Deleted)

	got := repo.get(testCollection)
	assert.Equal(t, models.SyncToken("1"), got.Token)
	assert.Equal(t, []models.Folder{
		folder("F1", "0", "Posteingang", models.FolderKindDefaultInbox),
		folder("F3", "0", "Archive", models.FolderKindMail),
	}, got.Folders.All())
}

func TestSync_IncrementalDelta(t *testing.T) {
	repo := newMemRepo(hierarchy(testCollection, "1",
		folder("F1", "0", "Inbox", models.FolderKindDefaultInbox),
		folder("F2", "0", "Projects", models.FolderKindMail),
		folder("F3", "F2", "Go", models.FolderKindMail),
	))
	svc, tr := newTestFolderSync(t, repo)

	expectFolderSync(t, tr, "1", protocol.FolderSyncResponse{
		Status:  models.FolderStatusSuccess,
		SyncKey: "2",
		Delta: models.FolderDelta{
			Added:   []models.Folder{folder("F9", "F8", "Child of unknown", models.FolderKindMail)},
			Deleted: []string{"F2"},
			Updated: []models.Folder{folder("F1", "0", "Inbox (1)", models.FolderKindDefaultInbox)},
		},
	})

	out, err := svc.Sync(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Delta.Len())

	got := repo.get(testCollection)
	assert.Equal(t, models.SyncToken("2"), got.Token)
	assert.True(t, got.Folders.Contains("F9"), "parents not known yet are accepted")
	assert.False(t, got.Folders.Contains("F2"))
	assert.False(t, got.Folders.Contains("F3"), "delete cascades to children")
	f1, _ := got.Folders.Get("F1")
	assert.Equal(t, "Inbox (1)", f1.DisplayName)
}

func TestSync_ReplayedResponseIsNoop(t *testing.T) {
	initial := hierarchy(testCollection, "3", folder("F1", "0", "Inbox", models.FolderKindDefaultInbox))
	repo := newMemRepo(initial)
	svc, tr := newTestFolderSync(t, repo)

	expectFolderSync(t, tr, "3", protocol.FolderSyncResponse{
		Status:  models.FolderStatusSuccess,
		SyncKey: "3",
		Delta:   models.FolderDelta{Deleted: []string{"F1"}},
	})

	out, err := svc.Sync(context.Background(), testCollection)
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, 0, repo.commits)
	assert.True(t, repo.get(testCollection).Folders.Contains("F1"))
}

func TestSync_ApplyingSameSnapshotTwiceIsIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc, tr := newTestFolderSync(t, repo)

	snapshot := models.FolderDelta{Added: []models.Folder{
		folder("F1", "0", "Inbox", models.FolderKindDefaultInbox),
		folder("F2", "F1", "Sub", models.FolderKindMail),
	}}
	gomock.InOrder(
		expectFolderSync(t, tr, "0", protocol.FolderSyncResponse{Status: models.FolderStatusSuccess, SyncKey: "1", Delta: snapshot}),
		expectFolderSync(t, tr, "0", protocol.FolderSyncResponse{Status: models.FolderStatusSuccess, SyncKey: "1", Delta: snapshot}),
	)

	_, err := svc.Sync(context.Background(), testCollection)
	require.NoError(t, err)
	first := repo.get(testCollection).Folders

	// force a second full resync against the now populated set
	require.NoError(t, repo.ResetSyncToken(context.Background(), testCollection, "1"))
	out, err := svc.Sync(context.Background(), testCollection)
	require.NoError(t, err)

	assert.True(t, out.Delta.IsEmpty())
	assert.True(t, first.Equal(repo.get(testCollection).Folders))
}

func TestSync_RejectedStatuses(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		retryable bool
		code      int
	}{
		{name: "server error", raw: "6", retryable: true, code: 6},
		{name: "unknown error", raw: "11", retryable: true, code: 11},
		{name: "code unknown", raw: "12", retryable: true, code: 12},
		{name: "reserved 7", raw: "7", retryable: true, code: 7},
		{name: "reserved 8", raw: "8", retryable: true, code: 8},
		{name: "unexpected numeric", raw: "42", retryable: true, code: 42},
		{name: "malformed request", raw: "10", retryable: false, code: 10},
		{name: "folder exists", raw: "2", retryable: false, code: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			initial := hierarchy(testCollection, "4", folder("F1", "0", "Inbox", models.FolderKindDefaultInbox))
			repo := newMemRepo(initial)
			svc, tr := newTestFolderSync(t, repo)

			expectFolderSync(t, tr, "4", protocol.FolderSyncResponse{
				Status:    models.ParseFolderStatus(tt.raw),
				RawStatus: tt.raw,
			})

			_, err := svc.Sync(context.Background(), testCollection)
			var rej *protocol.RejectedError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, tt.code, rej.Code)
			assert.Equal(t, tt.retryable, rej.Retryable)
			assert.Equal(t, protocol.CmdFolderSync, rej.Command)

			assert.Equal(t, initial.Token, repo.get(testCollection).Token)
			assert.Equal(t, 0, repo.commits)
			assert.Equal(t, 0, repo.resets)
			assert.Equal(t, models.SyncStateFailed, svc.State(testCollection))
		})
	}
}

func TestSync_MalformedResponseCommitsNothing(t *testing.T) {
	repo := newMemRepo(hierarchy(testCollection, "1"))
	svc, tr := newTestFolderSync(t, repo)

	root, err := protocol.BuildFolderSyncResponse(testTable, protocol.FolderSyncResponse{
		Status:  models.FolderStatusSuccess,
		SyncKey: "2",
		Delta:   models.FolderDelta{Added: []models.Folder{folder("F1", "0", "Inbox", models.FolderKindDefaultInbox)}},
	})
	require.NoError(t, err)
	countTag, err := testTable.Tag("FolderHierarchy:Count")
	require.NoError(t, err)
	changesTag, err := testTable.Tag("FolderHierarchy:Changes")
	require.NoError(t, err)
	root.Child(changesTag).Child(countTag).Text = "5"

	tr.EXPECT().Post(gomock.Any(), protocol.CmdFolderSync, gomock.Any(), gomock.Any()).
		Return(encodeReply(t, protocol.CmdFolderSync, root), nil)

	_, err = svc.Sync(context.Background(), testCollection)
	require.ErrorIs(t, err, protocol.ErrMalformedResponse)
	assert.Equal(t, 0, repo.commits)
	assert.Equal(t, models.SyncToken("1"), repo.get(testCollection).Token)
}

func TestSync_EmptyBody(t *testing.T) {
	repo := newMemRepo()
	svc, tr := newTestFolderSync(t, repo)

	tr.EXPECT().Post(gomock.Any(), protocol.CmdFolderSync, gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := svc.Sync(context.Background(), testCollection)
	require.ErrorIs(t, err, protocol.ErrMalformedResponse)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestSync_GarbageBody(t *testing.T) {
	repo := newMemRepo()
	svc, tr := newTestFolderSync(t, repo)

	tr.EXPECT().Post(gomock.Any(), protocol.CmdFolderSync, gomock.Any(), gomock.Any()).Return([]byte{0x03, 0x01}, nil)

	_, err := svc.Sync(context.Background(), testCollection)
	require.Error(t, err)
	assert.Equal(t, 0, repo.commits)
}

func TestSync_TransportErrorIsDistinctFromRejection(t *testing.T) {
	repo := newMemRepo()
	svc, tr := newTestFolderSync(t, repo)

	tr.EXPECT().Post(gomock.Any(), protocol.CmdFolderSync, gomock.Any(), gomock.Any()).
		Return(nil, &adapter.TransportError{Command: protocol.CmdFolderSync, StatusCode: 503, Err: adapter.ErrServiceUnavailable})

	_, err := svc.Sync(context.Background(), testCollection)
	require.ErrorIs(t, err, adapter.ErrTransport)
	assert.NotErrorIs(t, err, protocol.ErrRejected)
	assert.Equal(t, models.SyncStateFailed, svc.State(testCollection))
}

func TestSync_StaleResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockHierarchyRepository(ctrl)
	svc, tr := newTestFolderSync(t, repo)

	current := hierarchy(testCollection, "1")
	repo.EXPECT().LoadHierarchy(gomock.Any(), testCollection).Return(current, nil)
	expectFolderSync(t, tr, "1", protocol.FolderSyncResponse{Status: models.FolderStatusSuccess, SyncKey: "2"})
	repo.EXPECT().CommitHierarchy(gomock.Any(), current, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, next models.Hierarchy) error {
			assert.Equal(t, models.SyncToken("2"), next.Token)
			return store.ErrTokenMismatch
		})

	_, err := svc.Sync(context.Background(), testCollection)
	require.ErrorIs(t, err, ErrStaleResponse)
	assert.ErrorIs(t, err, store.ErrTokenMismatch)
}

func TestSync_LoadFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockHierarchyRepository(ctrl)
	svc, _ := newTestFolderSync(t, repo)

	repo.EXPECT().LoadHierarchy(gomock.Any(), testCollection).Return(models.Hierarchy{}, store.ErrRetryable)

	_, err := svc.Sync(context.Background(), testCollection)
	require.ErrorIs(t, err, store.ErrRetryable)
}

func TestSync_CancelledBeforeCommit(t *testing.T) {
	repo := newMemRepo()
	svc, tr := newTestFolderSync(t, repo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr.EXPECT().Post(gomock.Any(), protocol.CmdFolderSync, gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, []byte, string) ([]byte, error) {
			cancel()
			return folderSyncReply(t, protocol.FolderSyncResponse{
				Status:  models.FolderStatusSuccess,
				SyncKey: "1",
				Delta:   models.FolderDelta{Added: []models.Folder{folder("F1", "0", "Inbox", models.FolderKindDefaultInbox)}},
			}), nil
		})

	_, err := svc.Sync(ctx, testCollection)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.commits)
	assert.Equal(t, 0, repo.get(testCollection).Folders.Len())
}

func TestSync_SecondCallWhileInFlight(t *testing.T) {
	repo := newMemRepo()
	guard := newInflightGuard()
	ctrl := gomock.NewController(t)
	tr := mock.NewMockTransport(ctrl)
	svc := newFolderSyncService(testTable, tr, repo, guard, logger.Nop())
	search := newSearchService(testTable, tr, "user", guard, logger.Nop())

	entered := make(chan struct{})
	unblock := make(chan struct{})
	tr.EXPECT().Post(gomock.Any(), protocol.CmdFolderSync, gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, []byte, string) ([]byte, error) {
			close(entered)
			<-unblock
			return folderSyncReply(t, protocol.FolderSyncResponse{Status: models.FolderStatusSuccess, SyncKey: "1"}), nil
		})
	tr.EXPECT().Post(gomock.Any(), protocol.CmdSearch, gomock.Any(), gomock.Any()).
		Return(searchReply(t, models.SearchResult{Status: models.SearchStatusSuccess}), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.Sync(context.Background(), testCollection)
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("first sync never reached the transport")
	}

	assert.True(t, svc.State(testCollection).InFlight())

	_, err := svc.Sync(context.Background(), testCollection)
	assert.ErrorIs(t, err, ErrSyncInProgress)
	_, err = svc.CreateFolder(context.Background(), testCollection, "", "New", models.TypeOf(models.FolderKindMail))
	assert.ErrorIs(t, err, ErrSyncInProgress)

	// search has its own key space
	_, err = search.Search(context.Background(), models.SearchQuery{
		Predicate: models.FreeText{Text: "x"},
		Range:     models.SearchRange{Offset: 0, Count: 10},
	})
	assert.NoError(t, err)

	close(unblock)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, models.SyncStateIdle, svc.State(testCollection))
}

func TestSync_OtherCollectionsRunConcurrently(t *testing.T) {
	repo := newMemRepo()
	svc, tr := newTestFolderSync(t, repo)

	entered := make(chan struct{})
	unblock := make(chan struct{})
	tr.EXPECT().Post(gomock.Any(), protocol.CmdFolderSync, gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, []byte, string) ([]byte, error) {
			select {
			case <-entered:
			default:
				close(entered)
				<-unblock
			}
			return folderSyncReply(t, protocol.FolderSyncResponse{Status: models.FolderStatusSuccess, SyncKey: "1"}), nil
		}).Times(2)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Sync(context.Background(), "a")
		done <- err
	}()
	<-entered

	_, err := svc.Sync(context.Background(), "b")
	require.NoError(t, err)

	close(unblock)
	require.NoError(t, <-done)
}

func TestSync_NoCollectionID(t *testing.T) {
	svc, _ := newTestFolderSync(t, newMemRepo())
	_, err := svc.Sync(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoCollectionID)
}

func TestState_UnknownCollectionIsUninitialized(t *testing.T) {
	svc, _ := newTestFolderSync(t, newMemRepo())
	assert.Equal(t, models.SyncStateUninitialized, svc.State("never-synced"))
}

func TestFolders_ReturnsCommittedHierarchy(t *testing.T) {
	h := hierarchy(testCollection, "7", folder("F1", "0", "Inbox", models.FolderKindDefaultInbox))
	svc, _ := newTestFolderSync(t, newMemRepo(h))

	got, err := svc.Folders(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, h.Token, got.Token)
	assert.True(t, h.Folders.Equal(got.Folders))
}
