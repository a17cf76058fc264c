// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import "github.com/MKhiriev/go-mail-sync/models"

// Disposition is what a caller should do with a response status.
type Disposition int

const (
	// DispositionSuccess means the response may be applied.
	DispositionSuccess Disposition = iota
	// DispositionComplete means the request succeeded and nothing more
	// follows, e.g. a search past its last page.
	DispositionComplete
	// DispositionResync means local sync state must be rebuilt before
	// the request can succeed.
	DispositionResync
	// DispositionRejected means the server refused a mutating operation
	// for a reason that retrying will not change.
	DispositionRejected
	// DispositionRetryable means the same request may succeed later.
	DispositionRetryable
	// DispositionFatal means the request itself is wrong.
	DispositionFatal
)

func (d Disposition) String() string {
	switch d {
	case DispositionSuccess:
		return "success"
	case DispositionComplete:
		return "complete"
	case DispositionResync:
		return "resync"
	case DispositionRejected:
		return "rejected"
	case DispositionRetryable:
		return "retryable"
	case DispositionFatal:
		return "fatal"
	}
	return "unknown"
}

// ClassifyFolderStatus maps a FolderSync/FolderCreate/FolderDelete/
// FolderUpdate status to a disposition. Values outside the documented set
// are retryable.
func ClassifyFolderStatus(s models.FolderStatus) Disposition {
	switch s {
	case models.FolderStatusSuccess:
		return DispositionSuccess
	case models.FolderStatusInvalidSyncKey:
		return DispositionResync
	case models.FolderStatusFolderExists,
		models.FolderStatusSystemFolder,
		models.FolderStatusFolderNotFound,
		models.FolderStatusParentFolderNotFound:
		return DispositionRejected
	case models.FolderStatusMalformedRequest:
		return DispositionFatal
	default:
		return DispositionRetryable
	}
}

// ClassifySearchStatus maps a Search status to a disposition. EndOfRange is
// a normal end of paging. SyncFolders asks for a folder sync first and is
// reported as DispositionResync. Unrecognized values are retryable.
func ClassifySearchStatus(s models.SearchStatus) Disposition {
	switch s {
	case models.SearchStatusSuccess:
		return DispositionSuccess
	case models.SearchStatusEndOfRange:
		return DispositionComplete
	case models.SearchStatusSyncFolders:
		return DispositionResync
	case models.SearchStatusServerError,
		models.SearchStatusConnectionFailure,
		models.SearchStatusTimeout,
		models.SearchStatusUnrecognized:
		return DispositionRetryable
	default:
		return DispositionFatal
	}
}

// FolderRejection builds the error returned for a non-success folder status.
func FolderRejection(command, rawStatus string, s models.FolderStatus) *RejectedError {
	return &RejectedError{
		Command:   command,
		Code:      wireCode(rawStatus),
		Status:    s.String(),
		Retryable: ClassifyFolderStatus(s) == DispositionRetryable,
	}
}

// SearchRejection builds the error returned for a failed search status.
func SearchRejection(s models.SearchStatus) *RejectedError {
	d := ClassifySearchStatus(s)
	return &RejectedError{
		Command:         CmdSearch,
		Code:            int(s),
		Status:          s.String(),
		Retryable:       d == DispositionRetryable || d == DispositionResync,
		NeedsFolderSync: s == models.SearchStatusSyncFolders,
	}
}
