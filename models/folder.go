// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strconv"
	"strings"
)

// RootParentID is the ParentId the server uses for top-level folders.
const RootParentID = "0"

// FolderKind enumerates the folder types known to this client. The numbering
// follows the FolderHierarchy Type values on the wire.
type FolderKind uint8

const (
	FolderKindUnknown            FolderKind = 0
	FolderKindGeneric            FolderKind = 1
	FolderKindDefaultInbox       FolderKind = 2
	FolderKindDefaultDrafts      FolderKind = 3
	FolderKindDefaultDeleted     FolderKind = 4
	FolderKindDefaultSent        FolderKind = 5
	FolderKindDefaultOutbox      FolderKind = 6
	FolderKindDefaultTasks       FolderKind = 7
	FolderKindDefaultCalendar    FolderKind = 8
	FolderKindDefaultContacts    FolderKind = 9
	FolderKindDefaultNotes       FolderKind = 10
	FolderKindDefaultJournal     FolderKind = 11
	FolderKindMail               FolderKind = 12
	FolderKindCalendar           FolderKind = 13
	FolderKindContacts           FolderKind = 14
	FolderKindTasks              FolderKind = 15
	FolderKindJournal            FolderKind = 16
	FolderKindNotes              FolderKind = 17
	FolderKindServerUnknown      FolderKind = 18
	FolderKindRecipientInfoCache FolderKind = 19
)

var folderKindNames = [...]string{
	FolderKindUnknown:            "Unknown",
	FolderKindGeneric:            "Generic",
	FolderKindDefaultInbox:       "DefaultInbox",
	FolderKindDefaultDrafts:      "DefaultDrafts",
	FolderKindDefaultDeleted:     "DefaultDeleted",
	FolderKindDefaultSent:        "DefaultSent",
	FolderKindDefaultOutbox:      "DefaultOutbox",
	FolderKindDefaultTasks:       "DefaultTasks",
	FolderKindDefaultCalendar:    "DefaultCalendar",
	FolderKindDefaultContacts:    "DefaultContacts",
	FolderKindDefaultNotes:       "DefaultNotes",
	FolderKindDefaultJournal:     "DefaultJournal",
	FolderKindMail:               "Mail",
	FolderKindCalendar:           "Calendar",
	FolderKindContacts:           "Contacts",
	FolderKindTasks:              "Tasks",
	FolderKindJournal:            "Journal",
	FolderKindNotes:              "Notes",
	FolderKindServerUnknown:      "ServerUnknown",
	FolderKindRecipientInfoCache: "RecipientInfoCache",
}

func (k FolderKind) String() string {
	if int(k) < len(folderKindNames) {
		return folderKindNames[k]
	}
	return "FolderKind(" + strconv.Itoa(int(k)) + ")"
}

// FolderType is a closed variant over FolderKind. When the server sends a
// value this client does not know, Kind is FolderKindUnknown and Raw keeps
// the original wire value so it can be stored and sent back untouched.
type FolderType struct {
	Kind FolderKind
	Raw  string
}

// TypeOf returns the FolderType for a known kind.
func TypeOf(kind FolderKind) FolderType {
	return FolderType{Kind: kind}
}

// ParseFolderType maps a wire Type value to a FolderType.
func ParseFolderType(raw string) FolderType {
	n, err := strconv.ParseUint(raw, 10, 8)
	if err != nil || n == 0 || int(n) >= len(folderKindNames) {
		return FolderType{Kind: FolderKindUnknown, Raw: raw}
	}
	return FolderType{Kind: FolderKind(n)}
}

// Wire returns the value to put on the wire for t.
func (t FolderType) Wire() string {
	if t.Kind == FolderKindUnknown {
		return t.Raw
	}
	return strconv.Itoa(int(t.Kind))
}

// IsUnknown reports whether t carries an unrecognised server value.
func (t FolderType) IsUnknown() bool {
	return t.Kind == FolderKindUnknown
}

func (t FolderType) String() string {
	if t.Kind == FolderKindUnknown {
		return "Unknown(" + t.Raw + ")"
	}
	return t.Kind.String()
}

// FolderRole is the client-side role a mail folder plays.
type FolderRole string

const (
	RoleNone   FolderRole = ""
	RoleNormal FolderRole = "normal"
	RoleInbox  FolderRole = "inbox"
	RoleDrafts FolderRole = "drafts"
	RoleTrash  FolderRole = "trash"
	RoleSent   FolderRole = "sent"
	RoleJunk   FolderRole = "junk"
)

var mailRoles = map[FolderKind]FolderRole{
	FolderKindGeneric:        RoleNormal,
	FolderKindDefaultInbox:   RoleInbox,
	FolderKindDefaultDrafts:  RoleDrafts,
	FolderKindDefaultDeleted: RoleTrash,
	FolderKindDefaultSent:    RoleSent,
	FolderKindDefaultOutbox:  RoleNormal,
	FolderKindMail:           RoleNormal,
}

// junkFolderNames lists localized names servers give to spam folders. There
// is no folder type for junk, so it can only be inferred from the name.
var junkFolderNames = []string{
	"bulk mail", "correo no deseado", "courrier indésirable", "istenmeyen",
	"istenmeyen e-posta", "junk", "levélszemét", "nevyžiadaná pošta",
	"nevyžádaná pošta", "no deseado", "posta indesiderata", "pourriel",
	"roskaposti", "skräppost", "spam", "spamowanie", "søppelpost",
	"thư rác", "спам", "דואר זבל", "الرسائل العشوائية", "هرزنامه", "สแปม",
	"垃圾郵件", "垃圾邮件", "垃圾電郵",
}

// Folder is one node of the server folder hierarchy.
type Folder struct {
	ServerID    string
	ParentID    string
	DisplayName string
	Type        FolderType
}

// IsRoot reports whether f sits at the top of the hierarchy.
func (f Folder) IsRoot() bool {
	return f.ParentID == RootParentID || f.ParentID == ""
}

// Role returns the mail role of f given its depth in the hierarchy.
// Non-mail folders have RoleNone. Junk detection only looks at the two
// top levels to avoid matching user folders that happen to be named "spam".
func (f Folder) Role(depth int) FolderRole {
	role, ok := mailRoles[f.Type.Kind]
	if !ok {
		return RoleNone
	}
	if depth < 2 && slices.Contains(junkFolderNames, strings.ToLower(f.DisplayName)) {
		return RoleJunk
	}
	return role
}

// FolderDelta is the add/delete/update triple of one FolderSync response.
// The three sets are disjoint by ServerID.
type FolderDelta struct {
	Added   []Folder
	Deleted []string
	Updated []Folder
}

// IsEmpty reports whether d carries no changes.
func (d FolderDelta) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Deleted) == 0 && len(d.Updated) == 0
}

// Len returns the number of operations in d.
func (d FolderDelta) Len() int {
	return len(d.Added) + len(d.Deleted) + len(d.Updated)
}

// Validate checks that every entry carries a ServerID and that no ServerID
// appears twice across the three sets.
func (d FolderDelta) Validate() error {
	seen := make(map[string]struct{}, d.Len())
	check := func(id string) error {
		if id == "" {
			return ErrFolderWithoutServerID
		}
		if _, dup := seen[id]; dup {
			return &DeltaConflictError{ServerID: id}
		}
		seen[id] = struct{}{}
		return nil
	}

	for _, f := range d.Added {
		if err := check(f.ServerID); err != nil {
			return err
		}
	}
	for _, id := range d.Deleted {
		if err := check(id); err != nil {
			return err
		}
	}
	for _, f := range d.Updated {
		if err := check(f.ServerID); err != nil {
			return err
		}
	}
	return nil
}
