// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codepage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default table
// ─────────────────────────────────────────────────────────────────────────────

func TestDefault_KnownCodes(t *testing.T) {
	tbl := Default()

	tests := []struct {
		page Page
		name string
		code byte
	}{
		{FolderHierarchy, "FolderSync", 0x16},
		{FolderHierarchy, "SyncKey", 0x12},
		{FolderHierarchy, "Count", 0x17},
		{Search, "Search", 0x05},
		{Search, "RebuildResults", 0x19},
		{Search, "GreaterThan", 0x1B},
		{AirSync, "CollectionId", 0x12},
		{Email, "DateReceived", 0x0F},
		{AirSyncBase, "Preview", 0x18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := tbl.TagCode(tt.page, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)

			name, err := tbl.Name(tt.page, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestDefault_IsShared(t *testing.T) {
	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for i := range tables {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables[i] = Default()
		}()
	}
	wg.Wait()
	for _, tbl := range tables {
		assert.Same(t, tables[0], tbl)
	}
}

func TestTable_UnknownSymbols(t *testing.T) {
	tbl := Default()

	_, err := tbl.TagCode(FolderHierarchy, "NoSuchTag")
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = tbl.Name(FolderHierarchy, 0x3E)
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = tbl.Name(Page(99), 0x05)
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = tbl.Tag("SyncKey")
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = tbl.Tag("Calendar:Subject")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestTable_QualifiedTags(t *testing.T) {
	tbl := Default()

	tag, err := tbl.Tag("Email:DateReceived")
	require.NoError(t, err)
	assert.Equal(t, Email, tag.Page())
	assert.Equal(t, byte(0x0F), tag.Code())
	assert.True(t, tbl.Known(tag))

	name, err := tbl.TagName(MakeTag(Search, 0x11))
	require.NoError(t, err)
	assert.Equal(t, "Search:EqualTo", name)

	assert.False(t, tbl.Known(MakeTag(Search, 0x16)))
}

func TestTable_Enums(t *testing.T) {
	tbl := Default()

	wire, err := tbl.EnumValue(FolderHierarchy, "Type", "DefaultInbox")
	require.NoError(t, err)
	assert.Equal(t, "2", wire)

	variant, err := tbl.EnumVariant(FolderHierarchy, "Status", "9")
	require.NoError(t, err)
	assert.Equal(t, "InvalidSyncKey", variant)

	variant, err = tbl.EnumVariant(Search, "Status", "12")
	require.NoError(t, err)
	assert.Equal(t, "EndOfRange", variant)

	_, err = tbl.EnumVariant(Search, "Status", "9")
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = tbl.EnumValue(FolderHierarchy, "DisplayName", "x")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

// ─────────────────────────────────────────────────────────────────────────────
// NewTable validation
// ─────────────────────────────────────────────────────────────────────────────

func TestNewTable_Rejects(t *testing.T) {
	tests := []struct {
		name string
		defs []PageDef
	}{
		{
			name: "code below range",
			defs: []PageDef{{ID: 1, Name: "P", Tags: map[string]byte{"A": 0x04}}},
		},
		{
			name: "code above six bits",
			defs: []PageDef{{ID: 1, Name: "P", Tags: map[string]byte{"A": 0x40}}},
		},
		{
			name: "duplicate code",
			defs: []PageDef{{ID: 1, Name: "P", Tags: map[string]byte{"A": 0x05, "B": 0x05}}},
		},
		{
			name: "duplicate page id",
			defs: []PageDef{{ID: 1, Name: "P"}, {ID: 1, Name: "Q"}},
		},
		{
			name: "duplicate page name",
			defs: []PageDef{{ID: 1, Name: "P"}, {ID: 2, Name: "P"}},
		},
		{
			name: "colon in page name",
			defs: []PageDef{{ID: 1, Name: "A:B"}},
		},
		{
			name: "duplicate enum wire value",
			defs: []PageDef{{ID: 1, Name: "P", Enums: map[string]map[string]string{
				"Kind": {"One": "1", "Uno": "1"},
			}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.defs...)
			assert.ErrorIs(t, err, ErrInvalidTable)
			assert.Panics(t, func() { MustNewTable(tt.defs...) })
		})
	}
}

func TestNewTable_CustomPage(t *testing.T) {
	tbl, err := NewTable(PageDef{ID: 3, Name: "Test", Tags: map[string]byte{"Root": 0x05, "Leaf": 0x3F}})
	require.NoError(t, err)

	tag, err := tbl.Tag("Test:Leaf")
	require.NoError(t, err)
	assert.Equal(t, MakeTag(3, 0x3F), tag)
	assert.False(t, tbl.HasPage(FolderHierarchy))
}
