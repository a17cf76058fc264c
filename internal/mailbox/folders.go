// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailbox

import (
	"slices"

	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/models"
)

// FolderSync answers a FolderSync request presenting token. The initial
// token gets the whole hierarchy as adds; a known token gets the changes
// made since it was issued; anything else is InvalidSyncKey.
func (mb *Mailbox) FolderSync(token models.SyncToken) protocol.FolderSyncResponse {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if raw, ok := mb.takeInjected(protocol.CmdFolderSync); ok {
		return protocol.FolderSyncResponse{Status: models.ParseFolderStatus(raw), RawStatus: raw}
	}

	base := models.NewFolderSet()
	if !token.IsInitial() {
		var ok bool
		if base, ok = mb.version(token); !ok {
			return protocol.FolderSyncResponse{Status: models.FolderStatusInvalidSyncKey}
		}
	}

	delta := base.Diff(mb.current())
	return protocol.FolderSyncResponse{
		Status:  models.FolderStatusSuccess,
		SyncKey: mb.key(),
		Delta:   delta,
		Count:   delta.Len(),
	}
}

// FolderOp applies a FolderCreate, FolderDelete or FolderUpdate request.
func (mb *Mailbox) FolderOp(req protocol.FolderOpRequest) protocol.FolderOpResponse {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	resp := protocol.FolderOpResponse{Command: req.Command}
	if raw, ok := mb.takeInjected(req.Command); ok {
		resp.Status, resp.RawStatus = models.ParseFolderStatus(raw), raw
		return resp
	}
	if req.SyncKey != mb.key() {
		resp.Status = models.FolderStatusInvalidSyncKey
		return resp
	}

	if req.ParentID == "" {
		req.ParentID = models.RootParentID
	}

	var (
		next   models.FolderSet
		status models.FolderStatus
	)
	switch req.Command {
	case protocol.CmdFolderCreate:
		resp.ServerID = mb.ids.Generate()
		next, status = mb.create(resp.ServerID, req)
	case protocol.CmdFolderDelete:
		next, status = mb.delete(req)
	case protocol.CmdFolderUpdate:
		next, status = mb.update(req)
	default:
		status = models.FolderStatusMalformedRequest
	}

	resp.Status = status
	if status != models.FolderStatusSuccess {
		resp.ServerID = ""
		return resp
	}
	resp.SyncKey = mb.commit(next)
	return resp
}

func (mb *Mailbox) create(id string, req protocol.FolderOpRequest) (models.FolderSet, models.FolderStatus) {
	cur := mb.current()
	if req.DisplayName == "" {
		return cur, models.FolderStatusMalformedRequest
	}
	if !isRootOrKnown(cur, req.ParentID) {
		return cur, models.FolderStatusParentFolderNotFound
	}
	if siblingNamed(cur, req.ParentID, req.DisplayName, "") {
		return cur, models.FolderStatusFolderExists
	}

	typ := req.Type
	if typ == (models.FolderType{}) {
		typ = models.TypeOf(models.FolderKindMail)
	}
	if isSystemType(typ) {
		return cur, models.FolderStatusSystemFolder
	}

	next, err := cur.Apply(models.FolderDelta{Added: []models.Folder{{
		ServerID:    id,
		ParentID:    req.ParentID,
		DisplayName: req.DisplayName,
		Type:        typ,
	}}})
	if err != nil {
		return cur, models.FolderStatusServerError
	}
	return next, models.FolderStatusSuccess
}

func (mb *Mailbox) delete(req protocol.FolderOpRequest) (models.FolderSet, models.FolderStatus) {
	cur := mb.current()
	f, ok := cur.Get(req.ServerID)
	if !ok {
		return cur, models.FolderStatusFolderNotFound
	}
	if isSystemType(f.Type) {
		return cur, models.FolderStatusSystemFolder
	}

	next, err := cur.Apply(models.FolderDelta{Deleted: []string{req.ServerID}})
	if err != nil {
		return cur, models.FolderStatusServerError
	}
	mb.messages = slices.DeleteFunc(mb.messages, func(m Message) bool {
		return !next.Contains(m.CollectionID)
	})
	return next, models.FolderStatusSuccess
}

func (mb *Mailbox) update(req protocol.FolderOpRequest) (models.FolderSet, models.FolderStatus) {
	cur := mb.current()
	f, ok := cur.Get(req.ServerID)
	if !ok {
		return cur, models.FolderStatusFolderNotFound
	}
	if isSystemType(f.Type) {
		return cur, models.FolderStatusSystemFolder
	}
	if req.DisplayName == "" {
		return cur, models.FolderStatusMalformedRequest
	}
	if !isRootOrKnown(cur, req.ParentID) {
		return cur, models.FolderStatusParentFolderNotFound
	}
	if isDescendant(cur, req.ParentID, req.ServerID) {
		return cur, models.FolderStatusMalformedRequest
	}
	if siblingNamed(cur, req.ParentID, req.DisplayName, req.ServerID) {
		return cur, models.FolderStatusFolderExists
	}

	f.ParentID = req.ParentID
	f.DisplayName = req.DisplayName
	next, err := cur.Apply(models.FolderDelta{Updated: []models.Folder{f}})
	if err != nil {
		return cur, models.FolderStatusServerError
	}
	return next, models.FolderStatusSuccess
}

func isRootOrKnown(s models.FolderSet, id string) bool {
	return id == models.RootParentID || s.Contains(id)
}

func siblingNamed(s models.FolderSet, parentID, name, except string) bool {
	for _, f := range s.All() {
		if f.ParentID == parentID && f.DisplayName == name && f.ServerID != except {
			return true
		}
	}
	return false
}

// isDescendant reports whether id is ancestor itself or lies below it.
func isDescendant(s models.FolderSet, id, ancestor string) bool {
	for i := 0; i <= s.Len(); i++ {
		if id == ancestor {
			return true
		}
		f, ok := s.Get(id)
		if !ok || f.IsRoot() {
			return false
		}
		id = f.ParentID
	}
	return false
}

func isSystemType(t models.FolderType) bool {
	switch t.Kind {
	case models.FolderKindDefaultInbox,
		models.FolderKindDefaultDrafts,
		models.FolderKindDefaultDeleted,
		models.FolderKindDefaultSent,
		models.FolderKindDefaultOutbox,
		models.FolderKindDefaultTasks,
		models.FolderKindDefaultCalendar,
		models.FolderKindDefaultContacts,
		models.FolderKindDefaultNotes,
		models.FolderKindDefaultJournal,
		models.FolderKindRecipientInfoCache:
		return true
	}
	return false
}
