// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrFolderWithoutServerID is returned when a delta entry has no ServerID.
	ErrFolderWithoutServerID = errors.New("folder without server id")

	// ErrDeltaNotDisjoint is matched by every *DeltaConflictError.
	ErrDeltaNotDisjoint = errors.New("folder delta sets are not disjoint")

	// ErrInvalidRange is returned for a search range with a non-positive
	// count or a negative offset.
	ErrInvalidRange = errors.New("invalid search range")
)

// DeltaConflictError reports a ServerID that appears more than once in a
// FolderDelta.
type DeltaConflictError struct {
	ServerID string
}

func (e *DeltaConflictError) Error() string {
	return fmt.Sprintf("%s: server id %q listed more than once", ErrDeltaNotDisjoint, e.ServerID)
}

func (e *DeltaConflictError) Is(target error) bool {
	return target == ErrDeltaNotDisjoint
}
