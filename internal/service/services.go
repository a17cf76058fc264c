// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/store"
)

type ClientServices struct {
	FolderSyncService FolderSyncService
	SearchService     SearchService
	SyncJob           SyncJob
}

// NewClientServices wires the client services around one transport and one
// repository. Folder syncs and searches share an in-flight registry keyed by
// collection and by account respectively.
func NewClientServices(tbl *codepage.Table, transport adapter.Transport, repo store.HierarchyRepository, cfg *config.ClientConfig, log *logger.Logger) *ClientServices {
	guard := newInflightGuard()
	syncSvc := newFolderSyncService(tbl, transport, repo, guard, log)

	return &ClientServices{
		FolderSyncService: syncSvc,
		SearchService:     newSearchService(tbl, transport, cfg.Account.Username, guard, log),
		SyncJob:           NewSyncJob(syncSvc, cfg.Account.Collections, cfg.Workers.Concurrency, cfg.Workers.SyncInterval, log),
	}
}
