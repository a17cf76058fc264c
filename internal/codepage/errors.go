// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codepage

import "errors"

var (
	// ErrUnknownSymbol is returned for a page, tag name, tag code or enum
	// value the table does not define. Lookups never fall back to a default.
	ErrUnknownSymbol = errors.New("unknown codepage symbol")

	// ErrInvalidTable is returned by NewTable for inconsistent definitions.
	ErrInvalidTable = errors.New("invalid codepage table")
)
