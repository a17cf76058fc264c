// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"strconv"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/wbxml"
	"github.com/MKhiriev/go-mail-sync/models"
)

// FolderSyncResponse is a validated FolderSync response.
type FolderSyncResponse struct {
	Status models.FolderStatus
	// RawStatus is the status text as received.
	RawStatus string
	SyncKey   models.SyncToken
	Delta     models.FolderDelta
	// Count is the server-declared number of changes.
	Count int
}

// BuildFolderSyncRequest returns <FolderSync><SyncKey>token</SyncKey></FolderSync>.
// An initial token asks for a full snapshot.
func BuildFolderSyncRequest(tbl *codepage.Table, token models.SyncToken) (*wbxml.Node, error) {
	if token == "" {
		token = models.InitialSyncToken
	}
	r := newResolver(tbl)
	root := wbxml.NewNode(r.fh("FolderSync"),
		wbxml.NewText(r.fh("SyncKey"), token.String()),
	)
	if r.err != nil {
		return nil, r.err
	}
	return root, nil
}

// ParseFolderSyncResponse validates a decoded FolderSync response.
//
// Status is always required. For a Success response SyncKey is required,
// every change entry must carry its mandatory fields, a declared Count must
// match the number of entries and no ServerId may appear twice. Elements
// this client does not know are ignored.
func ParseFolderSyncResponse(tbl *codepage.Table, root *wbxml.Node) (FolderSyncResponse, error) {
	r := newResolver(tbl)
	var (
		tFolderSync = r.fh("FolderSync")
		tStatus     = r.fh("Status")
		tSyncKey    = r.fh("SyncKey")
		tChanges    = r.fh("Changes")
		tCount      = r.fh("Count")
		tAdd        = r.fh("Add")
		tDelete     = r.fh("Delete")
		tUpdate     = r.fh("Update")
		tServerID   = r.fh("ServerId")
	)
	if r.err != nil {
		return FolderSyncResponse{}, r.err
	}

	if root == nil || root.Tag != tFolderSync {
		return FolderSyncResponse{}, malformed("root element is not FolderSync")
	}

	var resp FolderSyncResponse
	raw, ok := root.ChildText(tStatus)
	if !ok || raw == "" {
		return FolderSyncResponse{}, malformed("FolderSync without Status")
	}
	resp.RawStatus = raw
	resp.Status = models.ParseFolderStatus(raw)

	key, _ := root.ChildText(tSyncKey)
	resp.SyncKey = models.SyncToken(key)

	if resp.Status != models.FolderStatusSuccess {
		return resp, nil
	}
	if key == "" {
		return FolderSyncResponse{}, malformed("successful FolderSync without SyncKey")
	}

	changes := root.Child(tChanges)
	if changes == nil {
		return resp, nil
	}

	for _, c := range changes.Children {
		switch c.Tag {
		case tAdd, tUpdate:
			f, err := parseFolder(r, c)
			if err != nil {
				return FolderSyncResponse{}, err
			}
			if c.Tag == tAdd {
				resp.Delta.Added = append(resp.Delta.Added, f)
			} else {
				resp.Delta.Updated = append(resp.Delta.Updated, f)
			}
		case tDelete:
			id, _ := c.ChildText(tServerID)
			if id == "" {
				return FolderSyncResponse{}, malformed("Delete without ServerId")
			}
			resp.Delta.Deleted = append(resp.Delta.Deleted, id)
		}
	}

	resp.Count = resp.Delta.Len()
	if rawCount, ok := changes.ChildText(tCount); ok {
		n, err := strconv.Atoi(rawCount)
		if err != nil || n < 0 {
			return FolderSyncResponse{}, malformed("bad Count %q", rawCount)
		}
		if n != resp.Delta.Len() {
			return FolderSyncResponse{}, malformed("Count %d but %d changes", n, resp.Delta.Len())
		}
		resp.Count = n
	}

	if err := resp.Delta.Validate(); err != nil {
		return FolderSyncResponse{}, malformed("%v", err)
	}
	return resp, nil
}

func parseFolder(r *resolver, n *wbxml.Node) (models.Folder, error) {
	var f models.Folder
	var ok bool
	if f.ServerID, ok = n.ChildText(r.fh("ServerId")); !ok || f.ServerID == "" {
		return models.Folder{}, malformed("folder entry without ServerId")
	}
	if f.ParentID, ok = n.ChildText(r.fh("ParentId")); !ok || f.ParentID == "" {
		return models.Folder{}, malformed("folder %s without ParentId", f.ServerID)
	}
	if f.DisplayName, ok = n.ChildText(r.fh("DisplayName")); !ok {
		return models.Folder{}, malformed("folder %s without DisplayName", f.ServerID)
	}
	rawType, ok := n.ChildText(r.fh("Type"))
	if !ok || rawType == "" {
		return models.Folder{}, malformed("folder %s without Type", f.ServerID)
	}
	f.Type = models.ParseFolderType(rawType)
	return f, nil
}

func folderNode(r *resolver, tag codepage.Tag, f models.Folder) *wbxml.Node {
	return wbxml.NewNode(tag,
		wbxml.NewText(r.fh("ServerId"), f.ServerID),
		wbxml.NewText(r.fh("ParentId"), f.ParentID),
		wbxml.NewText(r.fh("DisplayName"), f.DisplayName),
		wbxml.NewText(r.fh("Type"), f.Type.Wire()),
	)
}

// ParseFolderSyncRequest is the server-side reading of a FolderSync request.
func ParseFolderSyncRequest(tbl *codepage.Table, root *wbxml.Node) (models.SyncToken, error) {
	r := newResolver(tbl)
	tFolderSync, tSyncKey := r.fh("FolderSync"), r.fh("SyncKey")
	if r.err != nil {
		return "", r.err
	}
	if root == nil || root.Tag != tFolderSync {
		return "", malformedRequest("root element is not FolderSync")
	}
	key, ok := root.ChildText(tSyncKey)
	if !ok || key == "" {
		return "", malformedRequest("FolderSync without SyncKey")
	}
	return models.SyncToken(key), nil
}

// BuildFolderSyncResponse is the server-side writer of a FolderSync response.
// RawStatus, when set, is sent instead of Status so that undocumented codes
// can be produced. Changes are only written for a Success status.
func BuildFolderSyncResponse(tbl *codepage.Table, resp FolderSyncResponse) (*wbxml.Node, error) {
	r := newResolver(tbl)
	status := resp.RawStatus
	if status == "" {
		status = resp.Status.Wire()
	}

	root := wbxml.NewNode(r.fh("FolderSync"), wbxml.NewText(r.fh("Status"), status))
	if resp.SyncKey != "" {
		root.Add(wbxml.NewText(r.fh("SyncKey"), resp.SyncKey.String()))
	}
	if models.ParseFolderStatus(status) == models.FolderStatusSuccess {
		changes := wbxml.NewNode(r.fh("Changes"),
			wbxml.NewText(r.fh("Count"), strconv.Itoa(resp.Delta.Len())),
		)
		for _, f := range resp.Delta.Added {
			changes.Add(folderNode(r, r.fh("Add"), f))
		}
		for _, id := range resp.Delta.Deleted {
			changes.Add(wbxml.NewNode(r.fh("Delete"), wbxml.NewText(r.fh("ServerId"), id)))
		}
		for _, f := range resp.Delta.Updated {
			changes.Add(folderNode(r, r.fh("Update"), f))
		}
		root.Add(changes)
	}

	if r.err != nil {
		return nil, r.err
	}
	return root, nil
}
