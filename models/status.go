// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strconv"

// FolderStatus is the Status value carried by FolderSync, FolderCreate,
// FolderDelete and FolderUpdate responses. Codes 7 and 8 are reserved and
// never produced by ParseFolderStatus.
type FolderStatus uint8

const (
	FolderStatusSuccess              FolderStatus = 1
	FolderStatusFolderExists         FolderStatus = 2
	FolderStatusSystemFolder         FolderStatus = 3
	FolderStatusFolderNotFound       FolderStatus = 4
	FolderStatusParentFolderNotFound FolderStatus = 5
	FolderStatusServerError          FolderStatus = 6
	FolderStatusInvalidSyncKey       FolderStatus = 9
	FolderStatusMalformedRequest     FolderStatus = 10
	FolderStatusUnknownError         FolderStatus = 11
	FolderStatusCodeUnknown          FolderStatus = 12
)

var folderStatusNames = map[FolderStatus]string{
	FolderStatusSuccess:              "Success",
	FolderStatusFolderExists:         "FolderExists",
	FolderStatusSystemFolder:         "SystemFolder",
	FolderStatusFolderNotFound:       "FolderNotFound",
	FolderStatusParentFolderNotFound: "ParentFolderNotFound",
	FolderStatusServerError:          "ServerError",
	FolderStatusInvalidSyncKey:       "InvalidSyncKey",
	FolderStatusMalformedRequest:     "MalformedRequest",
	FolderStatusUnknownError:         "UnknownError",
	FolderStatusCodeUnknown:          "CodeUnknown",
}

// ParseFolderStatus maps a wire status to a FolderStatus. Anything that is
// not one of the documented codes, including the reserved 7 and 8, becomes
// FolderStatusCodeUnknown.
func ParseFolderStatus(raw string) FolderStatus {
	n, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return FolderStatusCodeUnknown
	}
	s := FolderStatus(n)
	if _, ok := folderStatusNames[s]; !ok {
		return FolderStatusCodeUnknown
	}
	return s
}

func (s FolderStatus) String() string {
	if name, ok := folderStatusNames[s]; ok {
		return name
	}
	return "FolderStatus(" + strconv.Itoa(int(s)) + ")"
}

// Wire returns the decimal wire form of s.
func (s FolderStatus) Wire() string {
	return strconv.Itoa(int(s))
}

// SearchStatus is the Status value carried by Search responses, both at the
// top level and per Store. Code 9 is reserved.
type SearchStatus uint8

const (
	// SearchStatusUnrecognized is never sent by a server; it stands for a
	// status value this client does not know.
	SearchStatusUnrecognized        SearchStatus = 0
	SearchStatusSuccess             SearchStatus = 1
	SearchStatusInvalidRequest      SearchStatus = 2
	SearchStatusServerError         SearchStatus = 3
	SearchStatusBadLink             SearchStatus = 4
	SearchStatusAccessDenied        SearchStatus = 5
	SearchStatusNotFound            SearchStatus = 6
	SearchStatusConnectionFailure   SearchStatus = 7
	SearchStatusTooComplex          SearchStatus = 8
	SearchStatusTimeout             SearchStatus = 10
	SearchStatusSyncFolders         SearchStatus = 11
	SearchStatusEndOfRange          SearchStatus = 12
	SearchStatusAccessBlocked       SearchStatus = 13
	SearchStatusCredentialsRequired SearchStatus = 14
)

var searchStatusNames = map[SearchStatus]string{
	SearchStatusUnrecognized:        "Unrecognized",
	SearchStatusSuccess:             "Success",
	SearchStatusInvalidRequest:      "InvalidRequest",
	SearchStatusServerError:         "ServerError",
	SearchStatusBadLink:             "BadLink",
	SearchStatusAccessDenied:        "AccessDenied",
	SearchStatusNotFound:            "NotFound",
	SearchStatusConnectionFailure:   "ConnectionFailure",
	SearchStatusTooComplex:          "TooComplex",
	SearchStatusTimeout:             "Timeout",
	SearchStatusSyncFolders:         "SyncFolders",
	SearchStatusEndOfRange:          "EndOfRange",
	SearchStatusAccessBlocked:       "AccessBlocked",
	SearchStatusCredentialsRequired: "CredentialsRequired",
}

// ParseSearchStatus maps a wire status to a SearchStatus; unknown values,
// including the reserved 9, become SearchStatusUnrecognized.
func ParseSearchStatus(raw string) SearchStatus {
	n, err := strconv.ParseUint(raw, 10, 8)
	if err != nil || n == 0 {
		return SearchStatusUnrecognized
	}
	s := SearchStatus(n)
	if _, ok := searchStatusNames[s]; !ok {
		return SearchStatusUnrecognized
	}
	return s
}

func (s SearchStatus) String() string {
	if name, ok := searchStatusNames[s]; ok {
		return name
	}
	return "SearchStatus(" + strconv.Itoa(int(s)) + ")"
}

// Wire returns the decimal wire form of s.
func (s SearchStatus) Wire() string {
	return strconv.Itoa(int(s))
}
