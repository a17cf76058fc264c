// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"slices"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/wbxml"
	"github.com/MKhiriev/go-mail-sync/models"
)

// FolderOpRequest is a FolderCreate, FolderDelete or FolderUpdate request.
// Fields a command does not use are left empty.
type FolderOpRequest struct {
	Command     string
	SyncKey     models.SyncToken
	ServerID    string
	ParentID    string
	DisplayName string
	Type        models.FolderType
}

// FolderOpResponse is a validated FolderCreate, FolderDelete or FolderUpdate
// response. ServerID is only set by FolderCreate.
type FolderOpResponse struct {
	Command   string
	Status    models.FolderStatus
	RawStatus string
	SyncKey   models.SyncToken
	ServerID  string
}

var folderOps = []string{CmdFolderCreate, CmdFolderDelete, CmdFolderUpdate}

// BuildFolderCreateRequest creates a folder named name under parentID.
func BuildFolderCreateRequest(tbl *codepage.Table, token models.SyncToken, parentID, name string, typ models.FolderType) (*wbxml.Node, error) {
	return buildFolderOp(tbl, FolderOpRequest{
		Command:     CmdFolderCreate,
		SyncKey:     token,
		ParentID:    parentID,
		DisplayName: name,
		Type:        typ,
	})
}

// BuildFolderDeleteRequest deletes serverID and everything below it.
func BuildFolderDeleteRequest(tbl *codepage.Table, token models.SyncToken, serverID string) (*wbxml.Node, error) {
	return buildFolderOp(tbl, FolderOpRequest{
		Command:  CmdFolderDelete,
		SyncKey:  token,
		ServerID: serverID,
	})
}

// BuildFolderUpdateRequest renames serverID and/or moves it under parentID.
func BuildFolderUpdateRequest(tbl *codepage.Table, token models.SyncToken, serverID, parentID, name string) (*wbxml.Node, error) {
	return buildFolderOp(tbl, FolderOpRequest{
		Command:     CmdFolderUpdate,
		SyncKey:     token,
		ServerID:    serverID,
		ParentID:    parentID,
		DisplayName: name,
	})
}

func buildFolderOp(tbl *codepage.Table, req FolderOpRequest) (*wbxml.Node, error) {
	if req.SyncKey == "" {
		req.SyncKey = models.InitialSyncToken
	}
	r := newResolver(tbl)
	root := wbxml.NewNode(r.fh(req.Command), wbxml.NewText(r.fh("SyncKey"), req.SyncKey.String()))

	switch req.Command {
	case CmdFolderCreate:
		root.Add(
			wbxml.NewText(r.fh("ParentId"), req.ParentID),
			wbxml.NewText(r.fh("DisplayName"), req.DisplayName),
			wbxml.NewText(r.fh("Type"), req.Type.Wire()),
		)
	case CmdFolderDelete:
		root.Add(wbxml.NewText(r.fh("ServerId"), req.ServerID))
	case CmdFolderUpdate:
		root.Add(
			wbxml.NewText(r.fh("ServerId"), req.ServerID),
			wbxml.NewText(r.fh("ParentId"), req.ParentID),
			wbxml.NewText(r.fh("DisplayName"), req.DisplayName),
		)
	}

	if r.err != nil {
		return nil, r.err
	}
	return root, nil
}

// ParseFolderOpResponse validates the response to command. A successful
// response must carry a SyncKey, and a successful FolderCreate its ServerId.
func ParseFolderOpResponse(tbl *codepage.Table, command string, root *wbxml.Node) (FolderOpResponse, error) {
	if !slices.Contains(folderOps, command) {
		return FolderOpResponse{}, malformed("unknown folder command %q", command)
	}
	r := newResolver(tbl)
	tRoot, tStatus, tSyncKey, tServerID := r.fh(command), r.fh("Status"), r.fh("SyncKey"), r.fh("ServerId")
	if r.err != nil {
		return FolderOpResponse{}, r.err
	}
	if root == nil || root.Tag != tRoot {
		return FolderOpResponse{}, malformed("root element is not %s", command)
	}

	resp := FolderOpResponse{Command: command}
	raw, ok := root.ChildText(tStatus)
	if !ok || raw == "" {
		return FolderOpResponse{}, malformed("%s without Status", command)
	}
	resp.RawStatus = raw
	resp.Status = models.ParseFolderStatus(raw)

	key, _ := root.ChildText(tSyncKey)
	resp.SyncKey = models.SyncToken(key)
	resp.ServerID, _ = root.ChildText(tServerID)

	if resp.Status != models.FolderStatusSuccess {
		return resp, nil
	}
	if key == "" {
		return FolderOpResponse{}, malformed("successful %s without SyncKey", command)
	}
	if command == CmdFolderCreate && resp.ServerID == "" {
		return FolderOpResponse{}, malformed("successful FolderCreate without ServerId")
	}
	return resp, nil
}

// ParseFolderOpRequest is the server-side reading of a folder operation.
func ParseFolderOpRequest(tbl *codepage.Table, root *wbxml.Node) (FolderOpRequest, error) {
	if root == nil {
		return FolderOpRequest{}, malformedRequest("empty document")
	}
	r := newResolver(tbl)
	var req FolderOpRequest
	for _, cmd := range folderOps {
		if root.Tag == r.fh(cmd) {
			req.Command = cmd
		}
	}
	if r.err != nil {
		return FolderOpRequest{}, r.err
	}
	if req.Command == "" {
		return FolderOpRequest{}, malformedRequest("root element is not a folder operation")
	}

	key, ok := root.ChildText(r.fh("SyncKey"))
	if !ok || key == "" {
		return FolderOpRequest{}, malformedRequest("%s without SyncKey", req.Command)
	}
	req.SyncKey = models.SyncToken(key)
	req.ServerID, _ = root.ChildText(r.fh("ServerId"))
	req.ParentID, _ = root.ChildText(r.fh("ParentId"))
	req.DisplayName, _ = root.ChildText(r.fh("DisplayName"))
	if rawType, ok := root.ChildText(r.fh("Type")); ok {
		req.Type = models.ParseFolderType(rawType)
	}

	switch req.Command {
	case CmdFolderCreate:
		if req.ParentID == "" || req.DisplayName == "" || req.Type.Wire() == "" {
			return FolderOpRequest{}, malformedRequest("FolderCreate needs ParentId, DisplayName and Type")
		}
	case CmdFolderDelete:
		if req.ServerID == "" {
			return FolderOpRequest{}, malformedRequest("FolderDelete without ServerId")
		}
	case CmdFolderUpdate:
		if req.ServerID == "" || req.ParentID == "" || req.DisplayName == "" {
			return FolderOpRequest{}, malformedRequest("FolderUpdate needs ServerId, ParentId and DisplayName")
		}
	}
	return req, nil
}

// BuildFolderOpResponse is the server-side writer of a folder operation
// response.
func BuildFolderOpResponse(tbl *codepage.Table, resp FolderOpResponse) (*wbxml.Node, error) {
	if !slices.Contains(folderOps, resp.Command) {
		return nil, malformedRequest("unknown folder command %q", resp.Command)
	}
	r := newResolver(tbl)
	status := resp.RawStatus
	if status == "" {
		status = resp.Status.Wire()
	}
	root := wbxml.NewNode(r.fh(resp.Command), wbxml.NewText(r.fh("Status"), status))
	if resp.SyncKey != "" {
		root.Add(wbxml.NewText(r.fh("SyncKey"), resp.SyncKey.String()))
	}
	if resp.ServerID != "" {
		root.Add(wbxml.NewText(r.fh("ServerId"), resp.ServerID))
	}
	if r.err != nil {
		return nil, r.err
	}
	return root, nil
}
