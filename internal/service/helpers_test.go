// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/internal/store"
	"github.com/MKhiriev/go-mail-sync/internal/wbxml"
	"github.com/MKhiriev/go-mail-sync/models"
	"github.com/stretchr/testify/require"
)

var testTable = codepage.Default()

// memRepo is an in-memory HierarchyRepository with the same compare-and-swap
// semantics as the SQL one.
type memRepo struct {
	mu      sync.Mutex
	h       map[string]models.Hierarchy
	commits int
	resets  int
}

func newMemRepo(hs ...models.Hierarchy) *memRepo {
	r := &memRepo{h: make(map[string]models.Hierarchy)}
	for _, h := range hs {
		r.h[h.CollectionID] = h
	}
	return r
}

func (r *memRepo) LoadHierarchy(_ context.Context, collectionID string) (models.Hierarchy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.h[collectionID]
	if !ok {
		return models.NewHierarchy(collectionID), nil
	}
	return h, nil
}

func (r *memRepo) CommitHierarchy(_ context.Context, expected, next models.Hierarchy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.h[expected.CollectionID]
	if !ok {
		cur = models.NewHierarchy(expected.CollectionID)
	}
	if cur.Token != expected.Token {
		return store.ErrTokenMismatch
	}
	r.h[next.CollectionID] = next
	r.commits++
	return nil
}

func (r *memRepo) ResetSyncToken(_ context.Context, collectionID string, expected models.SyncToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.h[collectionID]
	if !ok {
		cur = models.NewHierarchy(collectionID)
	}
	if cur.Token != expected {
		return store.ErrTokenMismatch
	}
	cur.Token = models.InitialSyncToken
	r.h[collectionID] = cur
	r.resets++
	return nil
}

func (r *memRepo) get(collectionID string) models.Hierarchy {
	h, _ := r.LoadHierarchy(context.Background(), collectionID)
	return h
}

func hierarchy(id string, token models.SyncToken, folders ...models.Folder) models.Hierarchy {
	return models.Hierarchy{CollectionID: id, Token: token, Folders: models.NewFolderSet(folders...)}
}

func folder(id, parent, name string, kind models.FolderKind) models.Folder {
	return models.Folder{ServerID: id, ParentID: parent, DisplayName: name, Type: models.TypeOf(kind)}
}

func encodeReply(t *testing.T, command string, root *wbxml.Node) []byte {
	t.Helper()
	b, err := wbxml.Encode(testTable, root, protocol.InitialPage(command))
	require.NoError(t, err)
	return b
}

func decodeRequest(t *testing.T, command string, body []byte) *wbxml.Node {
	t.Helper()
	root, err := wbxml.Decode(testTable, body, protocol.InitialPage(command))
	require.NoError(t, err)
	return root
}

func folderSyncReply(t *testing.T, resp protocol.FolderSyncResponse) []byte {
	t.Helper()
	root, err := protocol.BuildFolderSyncResponse(testTable, resp)
	require.NoError(t, err)
	return encodeReply(t, protocol.CmdFolderSync, root)
}

func folderOpReply(t *testing.T, resp protocol.FolderOpResponse) []byte {
	t.Helper()
	root, err := protocol.BuildFolderOpResponse(testTable, resp)
	require.NoError(t, err)
	return encodeReply(t, resp.Command, root)
}

func searchReply(t *testing.T, res models.SearchResult) []byte {
	t.Helper()
	root, err := protocol.BuildSearchResponse(testTable, res)
	require.NoError(t, err)
	return encodeReply(t, protocol.CmdSearch, root)
}

func sentSyncKey(t *testing.T, body []byte) models.SyncToken {
	t.Helper()
	token, err := protocol.ParseFolderSyncRequest(testTable, decodeRequest(t, protocol.CmdFolderSync, body))
	require.NoError(t, err)
	return token
}

func sentFolderOp(t *testing.T, command string, body []byte) protocol.FolderOpRequest {
	t.Helper()
	req, err := protocol.ParseFolderOpRequest(testTable, decodeRequest(t, command, body))
	require.NoError(t, err)
	return req
}

func sentSearch(t *testing.T, body []byte) models.SearchQuery {
	t.Helper()
	q, err := protocol.ParseSearchRequest(testTable, decodeRequest(t, protocol.CmdSearch, body))
	require.NoError(t, err)
	return q
}
