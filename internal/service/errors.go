// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrSyncInProgress = errors.New("request already in flight for this collection")
	ErrStaleResponse  = errors.New("response computed for a superseded sync key")

	ErrNoCollectionID   = errors.New("no collection id given")
	ErrNoServerID       = errors.New("no folder server id given")
	ErrNoFolderName     = errors.New("no folder name given")
	ErrUnknownFolder    = errors.New("folder is not known locally")
	ErrEmptyResponse    = errors.New("server returned an empty body")
	ErrInvalidArguments = errors.New("invalid arguments")
)
