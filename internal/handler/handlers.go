// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler groups the transport handlers of the development server.
package handler

import (
	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/handler/http"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(backend http.Backend, tbl *codepage.Table, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if backend == nil {
		return nil, errNoBackend
	}

	return &Handlers{HTTP: http.NewHandler(backend, tbl, cfg, logger)}, nil
}
