// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// basic credentials only
	router.Group(func(r chi.Router) {
		r.Use(h.basicAuth)
		r.Post("/api/token", h.issueToken)
	})

	// basic or bearer
	router.Group(func(r chi.Router) {
		r.Use(h.authenticate)
		r.Options(adapter.ActiveSyncPath, h.options)
		r.Post(adapter.ActiveSyncPath, h.command)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
