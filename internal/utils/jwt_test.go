// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", "alice", time.Hour, "secret-key")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ValidateJWTToken(token, "secret-key")
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name                 string
		issuer, subject, key string
		duration             time.Duration
	}{
		{"no issuer", "", "alice", "k", time.Hour},
		{"no subject", "i", "", "k", time.Hour},
		{"no key", "i", "alice", "", time.Hour},
		{"no duration", "i", "alice", "k", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateJWTToken_Failures(t *testing.T) {
	valid, err := GenerateJWTToken("i", "alice", time.Hour, "right")
	require.NoError(t, err)
	expired, err := GenerateJWTToken("i", "alice", -time.Minute, "right")
	require.NoError(t, err)

	_, err = ValidateJWTToken(valid, "wrong")
	assert.Error(t, err)

	_, err = ValidateJWTToken(expired, "right")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ValidateJWTToken("not.a.token", "right")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(header)
		assert.Error(t, err, header)
	}
}

func TestTokenExpiry(t *testing.T) {
	token, err := GenerateJWTToken("i", "alice", time.Hour, "k")
	require.NoError(t, err)

	exp, ok, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok, err = TokenExpiry(noExp)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = TokenExpiry("garbage")
	assert.Error(t, err)
}
