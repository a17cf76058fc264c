// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import "github.com/MKhiriev/go-mail-sync/internal/codepage"

// Command names as used in the Cmd query parameter and as root elements.
const (
	CmdFolderSync   = "FolderSync"
	CmdFolderCreate = "FolderCreate"
	CmdFolderDelete = "FolderDelete"
	CmdFolderUpdate = "FolderUpdate"
	CmdSearch       = "Search"
)

// InitialPage returns the codepage a command's document starts on.
func InitialPage(command string) codepage.Page {
	if command == CmdSearch {
		return codepage.Search
	}
	return codepage.FolderHierarchy
}

// resolver looks up qualified tag names and remembers the first failure so
// tree literals can be built without checking every lookup.
type resolver struct {
	tbl *codepage.Table
	err error
}

func newResolver(tbl *codepage.Table) *resolver {
	return &resolver{tbl: tbl}
}

func (r *resolver) tag(qualified string) codepage.Tag {
	if r.err != nil {
		return 0
	}
	t, err := r.tbl.Tag(qualified)
	if err != nil {
		r.err = err
	}
	return t
}

func (r *resolver) fh(name string) codepage.Tag {
	return r.tag("FolderHierarchy:" + name)
}

func (r *resolver) search(name string) codepage.Tag {
	return r.tag("Search:" + name)
}
