// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/models"
)

// Backend answers decoded ActiveSync commands. *mailbox.Mailbox implements it.
type Backend interface {
	FolderSync(token models.SyncToken) protocol.FolderSyncResponse
	FolderOp(req protocol.FolderOpRequest) protocol.FolderOpResponse
	Search(q models.SearchQuery) models.SearchResult
}

const (
	tokenIssuer   = "go-mail-sync"
	tokenDuration = time.Hour
	maxBodyBytes  = 1 << 20
)

// Handler serves the ActiveSync endpoint on top of a Backend.
type Handler struct {
	backend Backend
	tbl     *codepage.Table
	auth    config.Server

	logger *logger.Logger
}

// NewHandler returns a Handler. cfg supplies the accepted credentials and the
// bearer token sign key.
func NewHandler(backend Backend, tbl *codepage.Table, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		backend: backend,
		tbl:     tbl,
		auth:    cfg,
		logger:  logger,
	}
}
