// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncToken is the opaque, server-issued FolderSync cursor. The server
// computes the hierarchy delta relative to the token the client presents.
type SyncToken string

// InitialSyncToken is the distinguished "uninitialized" token. Presenting it
// asks the server for a full hierarchy snapshot.
const InitialSyncToken SyncToken = "0"

// IsInitial reports whether t requests a full resync. An empty token is
// treated the same way so a zero-value Hierarchy starts from scratch.
func (t SyncToken) IsInitial() bool {
	return t == InitialSyncToken || t == ""
}

// String implements fmt.Stringer.
func (t SyncToken) String() string {
	return string(t)
}

// Hierarchy is the committed pair a collection owns: the current SyncToken
// and the folder set that was valid when the token was issued. Both halves
// are only ever replaced together.
type Hierarchy struct {
	CollectionID string
	Token        SyncToken
	Folders      FolderSet
}

// NewHierarchy returns the uninitialized hierarchy for collectionID.
func NewHierarchy(collectionID string) Hierarchy {
	return Hierarchy{
		CollectionID: collectionID,
		Token:        InitialSyncToken,
		Folders:      NewFolderSet(),
	}
}

// SyncState is the observable position of a collection in the FolderSync
// state machine.
type SyncState int

const (
	SyncStateUninitialized SyncState = iota
	SyncStateRequesting
	SyncStateAwaitingResponse
	SyncStateApplying
	SyncStateRetrying
	SyncStateFailed
	SyncStateIdle
)

var syncStateNames = [...]string{
	SyncStateUninitialized:    "uninitialized",
	SyncStateRequesting:       "requesting",
	SyncStateAwaitingResponse: "awaiting_response",
	SyncStateApplying:         "applying",
	SyncStateRetrying:         "retrying",
	SyncStateFailed:           "failed",
	SyncStateIdle:             "idle",
}

func (s SyncState) String() string {
	if s < 0 || int(s) >= len(syncStateNames) {
		return "unknown"
	}
	return syncStateNames[s]
}

// InFlight reports whether a request is outstanding in state s.
func (s SyncState) InFlight() bool {
	switch s {
	case SyncStateRequesting, SyncStateAwaitingResponse, SyncStateApplying, SyncStateRetrying:
		return true
	}
	return false
}

// SyncOutcome describes the result of one FolderSync cycle.
type SyncOutcome struct {
	// Status is the FolderSync status of the last response handled.
	Status FolderStatus

	// Token is the committed token after the cycle.
	Token SyncToken

	// Delta is the change set that was committed. It is empty when the
	// response was a duplicate of the already committed state.
	Delta FolderDelta

	// Applied is false when nothing was committed.
	Applied bool

	// Recovered is true when the cycle went through InvalidSyncKey recovery.
	Recovered bool
}
