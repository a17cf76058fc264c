// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailbox

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/MKhiriev/go-mail-sync/internal/utils"
	"github.com/MKhiriev/go-mail-sync/models"
)

// Mailbox is one account's server-side state.
type Mailbox struct {
	ids utils.IDGenerator

	mu sync.RWMutex
	// versions[n] is the hierarchy as of sync key n; versions[0] is empty.
	versions []models.FolderSet
	messages []Message
	injected map[string][]string
}

// New returns an empty mailbox. ids names created folders and messages.
func New(ids utils.IDGenerator) *Mailbox {
	return &Mailbox{
		ids:      ids,
		versions: []models.FolderSet{models.NewFolderSet()},
		injected: make(map[string][]string),
	}
}

// NewDefault returns a mailbox holding the standard system folders.
func NewDefault(ids utils.IDGenerator) *Mailbox {
	mb := New(ids)
	mb.commit(models.NewFolderSet(DefaultFolders()...))
	return mb
}

// DefaultFolders lists the system folders every account starts with.
func DefaultFolders() []models.Folder {
	return []models.Folder{
		{ServerID: "1", ParentID: models.RootParentID, DisplayName: "Inbox", Type: models.TypeOf(models.FolderKindDefaultInbox)},
		{ServerID: "2", ParentID: models.RootParentID, DisplayName: "Drafts", Type: models.TypeOf(models.FolderKindDefaultDrafts)},
		{ServerID: "3", ParentID: models.RootParentID, DisplayName: "Deleted Items", Type: models.TypeOf(models.FolderKindDefaultDeleted)},
		{ServerID: "4", ParentID: models.RootParentID, DisplayName: "Sent Items", Type: models.TypeOf(models.FolderKindDefaultSent)},
		{ServerID: "5", ParentID: models.RootParentID, DisplayName: "Outbox", Type: models.TypeOf(models.FolderKindDefaultOutbox)},
		{ServerID: "6", ParentID: models.RootParentID, DisplayName: "Junk Email", Type: models.TypeOf(models.FolderKindMail)},
		{ServerID: "7", ParentID: models.RootParentID, DisplayName: "Calendar", Type: models.TypeOf(models.FolderKindDefaultCalendar)},
		{ServerID: "8", ParentID: models.RootParentID, DisplayName: "Contacts", Type: models.TypeOf(models.FolderKindDefaultContacts)},
	}
}

// SyncKey returns the current sync key.
func (mb *Mailbox) SyncKey() models.SyncToken {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	return mb.key()
}

// Folders returns the current hierarchy.
func (mb *Mailbox) Folders() models.FolderSet {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	return mb.current()
}

// InjectStatus makes the next request for command fail with the raw status
// instead of being processed. Statuses queue up in call order.
func (mb *Mailbox) InjectStatus(command, raw string) error {
	if raw == "" || raw == models.FolderStatusSuccess.Wire() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.injected[command] = append(mb.injected[command], raw)
	return nil
}

// takeInjected pops the next injected status for command. Caller holds mu.
func (mb *Mailbox) takeInjected(command string) (string, bool) {
	q := mb.injected[command]
	if len(q) == 0 {
		return "", false
	}
	mb.injected[command] = q[1:]
	return q[0], true
}

func (mb *Mailbox) current() models.FolderSet {
	return mb.versions[len(mb.versions)-1]
}

func (mb *Mailbox) key() models.SyncToken {
	return models.SyncToken(strconv.Itoa(len(mb.versions) - 1))
}

// commit appends next as a new version. Caller holds mu.
func (mb *Mailbox) commit(next models.FolderSet) models.SyncToken {
	mb.versions = append(mb.versions, next)
	return mb.key()
}

// version returns the hierarchy the client holds for token.
func (mb *Mailbox) version(token models.SyncToken) (models.FolderSet, bool) {
	n, err := strconv.Atoi(token.String())
	if err != nil || n < 1 || n >= len(mb.versions) {
		return models.FolderSet{}, false
	}
	return mb.versions[n], true
}
