// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/utils"
)

// issueToken exchanges basic credentials for a bearer token returned in the
// Authorization response header.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.auth.TokenSignKey == "" {
		log.Warn().Msg("token requested but bearer authentication is disabled")
		http.Error(w, ErrBearerDisabled.Error(), http.StatusNotFound)
		return
	}

	user, _ := utils.GetUserFromContext(r.Context())
	token, err := utils.GenerateJWTToken(tokenIssuer, user, tokenDuration, h.auth.TokenSignKey)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("user", user).Msg("token issued")
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token))
	w.WriteHeader(http.StatusOK)
}
