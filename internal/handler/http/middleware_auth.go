// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

const authChallenge = `Basic realm="ActiveSync"`

// authenticate accepts either basic credentials matching the configured
// account or an HS256 bearer token signed with the configured key. The
// authenticated user name is stored in the context under [utils.UserCtxKey].
//
// Rejections are answered with 401 and a WWW-Authenticate challenge.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.unauthorized(w, log, ErrEmptyAuthorizationHeader)
			return
		}

		var (
			user string
			err  error
		)
		switch scheme, _, _ := strings.Cut(authHeader, " "); {
		case strings.EqualFold(scheme, "Basic"):
			user, err = h.checkBasic(r)
		case strings.EqualFold(scheme, "Bearer"):
			user, err = h.checkBearer(authHeader)
		default:
			err = ErrInvalidAuthorizationHeader
		}
		if err != nil {
			h.unauthorized(w, log, err)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// basicAuth is authenticate restricted to basic credentials.
func (h *Handler) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if r.Header.Get("Authorization") == "" {
			h.unauthorized(w, log, ErrEmptyAuthorizationHeader)
			return
		}
		user, err := h.checkBasic(r)
		if err != nil {
			h.unauthorized(w, log, err)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) checkBasic(r *http.Request) (string, error) {
	user, password, ok := r.BasicAuth()
	if !ok {
		return "", ErrInvalidAuthorizationHeader
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(h.auth.Username)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.auth.Password)) == 1
	if !userOK || !passwordOK {
		return "", ErrInvalidCredentials
	}
	return user, nil
}

func (h *Handler) checkBearer(authHeader string) (string, error) {
	if h.auth.TokenSignKey == "" {
		return "", ErrBearerDisabled
	}
	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", errors.Join(ErrInvalidAuthorizationHeader, err)
	}
	subject, err := utils.ValidateJWTToken(token, h.auth.TokenSignKey)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", err
	}
	return subject, nil
}

func (h *Handler) unauthorized(w http.ResponseWriter, log *logger.Logger, err error) {
	log.Warn().Err(err).Msg("request rejected")
	w.Header().Set("WWW-Authenticate", authChallenge)

	msg := http.StatusText(http.StatusUnauthorized)
	if errors.Is(err, ErrTokenExpired) {
		msg = ErrTokenExpired.Error()
	}
	http.Error(w, msg, http.StatusUnauthorized)
}
