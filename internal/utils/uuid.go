// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces unique string identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-ordered UUIDs.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random UUIDv4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Compact returns a UUIDv7 without dashes, as used for folder server ids and
// sync keys.
func (g *UUIDGenerator) Compact() string {
	return strings.ReplaceAll(g.Generate(), "-", "")
}
