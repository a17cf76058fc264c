// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strings"
)

// FolderSet is the local view of a collection's folder hierarchy, keyed by
// ServerID. Methods never mutate the receiver; Apply returns a new set.
type FolderSet struct {
	folders map[string]Folder
}

// NewFolderSet builds a set from folders. Later duplicates win.
func NewFolderSet(folders ...Folder) FolderSet {
	m := make(map[string]Folder, len(folders))
	for _, f := range folders {
		m[f.ServerID] = f
	}
	return FolderSet{folders: m}
}

// Len returns the number of folders.
func (s FolderSet) Len() int {
	return len(s.folders)
}

// Get returns the folder with serverID.
func (s FolderSet) Get(serverID string) (Folder, bool) {
	f, ok := s.folders[serverID]
	return f, ok
}

// Contains reports whether serverID is in the set.
func (s FolderSet) Contains(serverID string) bool {
	_, ok := s.folders[serverID]
	return ok
}

// All returns the folders ordered by ServerID.
func (s FolderSet) All() []Folder {
	out := make([]Folder, 0, len(s.folders))
	for _, f := range s.folders {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b Folder) int {
		return strings.Compare(a.ServerID, b.ServerID)
	})
	return out
}

// Equal reports whether both sets hold exactly the same folders.
func (s FolderSet) Equal(other FolderSet) bool {
	if len(s.folders) != len(other.folders) {
		return false
	}
	for id, f := range s.folders {
		if o, ok := other.folders[id]; !ok || o != f {
			return false
		}
	}
	return true
}

// Apply returns the set that results from applying d. The receiver is left
// untouched, so a validation failure leaves the caller's state as it was.
//
// Adds and updates are upserts: parents that are not known yet are accepted
// because the server may reference system folders it has not sent. Deleting
// a folder also removes every folder below it.
func (s FolderSet) Apply(d FolderDelta) (FolderSet, error) {
	if err := d.Validate(); err != nil {
		return s, err
	}

	next := make(map[string]Folder, len(s.folders)+len(d.Added))
	for id, f := range s.folders {
		next[id] = f
	}
	for _, f := range d.Added {
		next[f.ServerID] = f
	}
	for _, f := range d.Updated {
		next[f.ServerID] = f
	}

	removed := make(map[string]struct{}, len(d.Deleted))
	for _, id := range d.Deleted {
		removed[id] = struct{}{}
	}
	// a child may be listed before its parent, so repeat until stable
	for changed := len(removed) > 0; changed; {
		changed = false
		for id, f := range next {
			if _, gone := removed[id]; gone {
				continue
			}
			if _, parentGone := removed[f.ParentID]; parentGone {
				removed[id] = struct{}{}
				changed = true
			}
		}
	}
	for id := range removed {
		delete(next, id)
	}

	return FolderSet{folders: next}, nil
}

// SnapshotDelta converts a full-snapshot response into a delta against s:
// snapshot folders already present become updates (or are dropped when
// unchanged), new ones stay adds, and local folders missing from the
// snapshot become deletes.
func (s FolderSet) SnapshotDelta(snapshot FolderDelta) FolderDelta {
	var out FolderDelta
	present := make(map[string]struct{}, len(snapshot.Added)+len(snapshot.Updated))

	for _, f := range append(slices.Clone(snapshot.Added), snapshot.Updated...) {
		present[f.ServerID] = struct{}{}
		cur, ok := s.folders[f.ServerID]
		switch {
		case !ok:
			out.Added = append(out.Added, f)
		case cur != f:
			out.Updated = append(out.Updated, f)
		}
	}

	for _, f := range s.All() {
		if _, ok := present[f.ServerID]; !ok {
			out.Deleted = append(out.Deleted, f.ServerID)
		}
	}
	for _, id := range snapshot.Deleted {
		if _, ok := present[id]; !ok && s.Contains(id) && !slices.Contains(out.Deleted, id) {
			out.Deleted = append(out.Deleted, id)
		}
	}
	return out
}

// Diff returns the delta that turns s into next.
func (s FolderSet) Diff(next FolderSet) FolderDelta {
	return s.SnapshotDelta(FolderDelta{Added: next.All()})
}

// Path returns the slash-joined display-name path of serverID. The second
// result is false when some ancestor is not known locally yet; the path is
// then relative to the deepest known ancestor.
func (s FolderSet) Path(serverID string) (string, bool) {
	f, ok := s.folders[serverID]
	if !ok {
		return "", false
	}

	parts := []string{f.DisplayName}
	complete := true
	// bounded walk: parentage comes from the server and is not cycle-checked
	for i := 0; !f.IsRoot() && i < len(s.folders); i++ {
		parent, ok := s.folders[f.ParentID]
		if !ok {
			complete = false
			break
		}
		parts = append(parts, parent.DisplayName)
		f = parent
	}
	slices.Reverse(parts)
	return strings.Join(parts, "/"), complete
}

// Depth returns the number of known ancestors of serverID.
func (s FolderSet) Depth(serverID string) int {
	f, ok := s.folders[serverID]
	if !ok {
		return 0
	}
	depth := 0
	for ; !f.IsRoot() && depth < len(s.folders); depth++ {
		parent, ok := s.folders[f.ParentID]
		if !ok {
			break
		}
		f = parent
	}
	return depth
}

// FirstWithRole returns the first folder, in ServerID order, playing role.
func (s FolderSet) FirstWithRole(role FolderRole) (Folder, bool) {
	for _, f := range s.All() {
		if f.Role(s.Depth(f.ServerID)) == role {
			return f, true
		}
	}
	return Folder{}, false
}
