// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRange_String(t *testing.T) {
	assert.Equal(t, "0-9", SearchRange{Offset: 0, Count: 10}.String())
	assert.Equal(t, "10-19", SearchRange{Offset: 0, Count: 10}.Next().String())
	assert.Equal(t, "5-5", SearchRange{Offset: 5, Count: 1}.String())
}

func TestParseSearchRange(t *testing.T) {
	r, err := ParseSearchRange("20-24")
	require.NoError(t, err)
	assert.Equal(t, SearchRange{Offset: 20, Count: 5}, r)

	for _, raw := range []string{"", "7", "9-3", "a-b", "-1-4"} {
		_, err := ParseSearchRange(raw)
		assert.ErrorIs(t, err, ErrInvalidRange, raw)
	}
}

func TestSearchRange_Validate(t *testing.T) {
	assert.NoError(t, SearchRange{Offset: 0, Count: 1}.Validate())
	assert.ErrorIs(t, SearchRange{Offset: 0, Count: 0}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, SearchRange{Offset: -1, Count: 5}.Validate(), ErrInvalidRange)
}

func TestStatusParsing(t *testing.T) {
	assert.Equal(t, FolderStatusSuccess, ParseFolderStatus("1"))
	assert.Equal(t, FolderStatusInvalidSyncKey, ParseFolderStatus("9"))
	assert.Equal(t, FolderStatusCodeUnknown, ParseFolderStatus("7"))
	assert.Equal(t, FolderStatusCodeUnknown, ParseFolderStatus("8"))
	assert.Equal(t, FolderStatusCodeUnknown, ParseFolderStatus("250"))

	assert.Equal(t, SearchStatusEndOfRange, ParseSearchStatus("12"))
	assert.Equal(t, SearchStatusUnrecognized, ParseSearchStatus("9"))
	assert.Equal(t, SearchStatusUnrecognized, ParseSearchStatus("x"))
}
