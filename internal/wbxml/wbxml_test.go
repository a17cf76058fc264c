// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

var header = []byte{0x03, 0x01, 0x6A, 0x00}

func tag(t *testing.T, name string) codepage.Tag {
	t.Helper()
	tg, err := codepage.Default().Tag(name)
	require.NoError(t, err)
	return tg
}

func doc(body ...byte) []byte {
	return append(append([]byte{}, header...), body...)
}

// ─────────────────────────────────────────────────────────────────────────────
// Encode
// ─────────────────────────────────────────────────────────────────────────────

func TestEncode_FolderSyncRequest(t *testing.T) {
	tbl := codepage.Default()
	root := NewNode(tag(t, "FolderHierarchy:FolderSync"),
		NewText(tag(t, "FolderHierarchy:SyncKey"), "0"),
	)

	got, err := Encode(tbl, root, codepage.AirSync)
	require.NoError(t, err)

	want := doc(
		0x00, 0x07, // SWITCH_PAGE FolderHierarchy
		0x56,             // FolderSync + content
		0x52,             // SyncKey + content
		0x03, '0', 0x00, // STR_I "0"
		0x01, 0x01,
	)
	assert.Equal(t, want, got)
}

func TestEncode_SwitchesPageOnlyWhenNeeded(t *testing.T) {
	tbl := codepage.Default()
	root := NewNode(tag(t, "Search:Search"),
		NewNode(tag(t, "Search:Store"),
			NewText(tag(t, "Search:Name"), "Mailbox"),
			NewNode(tag(t, "Search:Query"),
				NewNode(tag(t, "Search:EqualTo"),
					NewNode(tag(t, "AirSync:CollectionId")),
					NewText(tag(t, "Search:Value"), "5"),
				),
			),
		),
	)

	got, err := Encode(tbl, root, codepage.Search)
	require.NoError(t, err)

	want := doc(
		0x45,       // Search
		0x47,       // Store
		0x48, 0x03, 'M', 'a', 'i', 'l', 'b', 'o', 'x', 0x00, 0x01,
		0x49,       // Query
		0x51,       // EqualTo
		0x00, 0x00, // SWITCH_PAGE AirSync
		0x12,       // CollectionId, empty
		0x00, 0x0F, // SWITCH_PAGE Search
		0x52, 0x03, '5', 0x00, 0x01, // Value
		0x01, 0x01, 0x01, 0x01,
	)
	assert.Equal(t, want, got)
}

func TestEncode_Opaque(t *testing.T) {
	tbl := codepage.Default()
	got, err := Encode(tbl, NewOpaque(tag(t, "AirSyncBase:Data"), []byte{0xFF, 0x00}), codepage.AirSyncBase)
	require.NoError(t, err)
	assert.Equal(t, doc(0x4B, 0xC3, 0x02, 0xFF, 0x00, 0x01), got)
}

func TestEncode_Rejects(t *testing.T) {
	tbl := codepage.Default()
	syncKey := tag(t, "FolderHierarchy:SyncKey")

	tests := []struct {
		name    string
		root    *Node
		wantErr error
	}{
		{"nil root", nil, ErrInvalidNode},
		{"unknown tag", &Node{Tag: codepage.MakeTag(codepage.FolderHierarchy, 0x3F)}, codepage.ErrUnknownSymbol},
		{"unknown page", &Node{Tag: codepage.MakeTag(99, 0x05)}, codepage.ErrUnknownSymbol},
		{"text with NUL", NewText(syncKey, "a\x00b"), ErrInvalidNode},
		{"invalid utf8", NewText(syncKey, "\xff"), ErrInvalidNode},
		{"mixed content", &Node{Tag: syncKey, Text: "x", Children: []*Node{NewNode(syncKey)}}, ErrInvalidNode},
		{"nil child", NewNode(syncKey, nil), ErrInvalidNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tbl, tt.root, codepage.AirSync)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Round trip
// ─────────────────────────────────────────────────────────────────────────────

func TestRoundTrip(t *testing.T) {
	tbl := codepage.Default()

	trees := map[string]*Node{
		"single empty element": NewNode(tag(t, "FolderHierarchy:FolderSync")),
		"folder sync response": NewNode(tag(t, "FolderHierarchy:FolderSync"),
			NewText(tag(t, "FolderHierarchy:Status"), "1"),
			NewText(tag(t, "FolderHierarchy:SyncKey"), "folders-1"),
			NewNode(tag(t, "FolderHierarchy:Changes"),
				NewText(tag(t, "FolderHierarchy:Count"), "1"),
				NewNode(tag(t, "FolderHierarchy:Add"),
					NewText(tag(t, "FolderHierarchy:ServerId"), "2"),
					NewText(tag(t, "FolderHierarchy:ParentId"), "0"),
					NewText(tag(t, "FolderHierarchy:DisplayName"), "Posteingang ✉"),
					NewText(tag(t, "FolderHierarchy:Type"), "2"),
				),
			),
		),
		"pages interleaved": NewNode(tag(t, "Search:Result"),
			NewText(tag(t, "AirSync:Class"), "Email"),
			NewText(tag(t, "Search:LongId"), "RgAAAA"),
			NewNode(tag(t, "Search:Properties"),
				NewText(tag(t, "Email:Subject"), "hello"),
				NewNode(tag(t, "AirSyncBase:Body"),
					NewText(tag(t, "AirSyncBase:Type"), "1"),
					NewOpaque(tag(t, "AirSyncBase:Data"), []byte("raw")),
				),
				NewNode(tag(t, "Email:Read")),
			),
		),
		"empty opaque": NewOpaque(tag(t, "AirSyncBase:Data"), nil),
	}

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			for _, initial := range []codepage.Page{codepage.AirSync, codepage.FolderHierarchy, codepage.Search} {
				data, err := Encode(tbl, tree, initial)
				require.NoError(t, err)

				got, err := Decode(tbl, data, initial)
				require.NoError(t, err)
				assert.True(t, tree.Equal(got), "decoded tree differs:\n%s\nvs\n%s", Dump(tbl, tree), Dump(tbl, got))
			}
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Decode
// ─────────────────────────────────────────────────────────────────────────────

func TestDecode_StringTableAndEntity(t *testing.T) {
	tbl := codepage.Default()
	data := []byte{
		0x03, 0x01, 0x6A,
		0x04, 'a', 'b', 0x00, 'c', // string table "ab\0c" (last entry unterminated, unused)
		0x00, 0x07,
		0x52, 0x83, 0x00, 0x02, 0x81, 0x69, 0x01, // SyncKey = STR_T[0] + ENTITY é
	}

	got, err := Decode(tbl, data, codepage.AirSync)
	require.NoError(t, err)
	assert.Equal(t, "abé", got.Text)
	assert.Equal(t, tag(t, "FolderHierarchy:SyncKey"), got.Tag)
}

func TestDecode_MalformedStreams(t *testing.T) {
	tbl := codepage.Default()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"header only", doc()},
		{"bad version", []byte{0x09, 0x01, 0x6A, 0x00, 0x05}},
		{"bad charset", []byte{0x03, 0x01, 0x04, 0x00, 0x05}},
		{"string table past end", []byte{0x03, 0x01, 0x6A, 0x10, 'a'}},
		{"unknown page", doc(0x00, 0x33, 0x05)},
		{"unknown tag code", doc(0x00, 0x07, 0x3F)},
		{"literal tag", doc(0x04, 0x00)},
		{"attributes", doc(0x00, 0x07, 0x96, 0x01)},
		{"extension token", doc(0x00, 0x07, 0x56, 0xC0, 0x01)},
		{"processing instruction", doc(0x43)},
		{"truncated element", doc(0x00, 0x07, 0x56, 0x52, 0x03, '0', 0x00, 0x01)},
		{"unterminated string", doc(0x00, 0x07, 0x52, 0x03, '0')},
		{"invalid utf8 string", doc(0x00, 0x07, 0x52, 0x03, 0xFF, 0x00, 0x01)},
		{"mb integer overflow", doc(0x00, 0x11, 0x4B, 0xC3, 0x9F, 0xFF, 0xFF, 0xFF, 0x7F, 0x01)},
		{"mb integer too long", doc(0x00, 0x11, 0x4B, 0xC3, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01, 0x01)},
		{"opaque past end", doc(0x00, 0x11, 0x4B, 0xC3, 0x05, 0x01)},
		{"multiple roots", doc(0x00, 0x07, 0x16, 0x16)},
		{"trailing data", doc(0x00, 0x07, 0x56, 0x01, 0x00)},
		{"end without element", doc(0x01)},
		{"text at document level", doc(0x03, 'x', 0x00)},
		{"mixed content", doc(0x00, 0x07, 0x56, 0x03, 'x', 0x00, 0x12, 0x01)},
		{"string table index out of range", doc(0x00, 0x07, 0x52, 0x83, 0x05, 0x01)},
		{"nul entity", doc(0x00, 0x07, 0x52, 0x02, 0x00, 0x01)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tbl, tt.data, codepage.AirSync)
			assert.ErrorIs(t, err, ErrMalformedStream)
			assert.Nil(t, got)
		})
	}
}

func TestDecode_UnknownTagAlsoMatchesCodepageError(t *testing.T) {
	_, err := Decode(codepage.Default(), doc(0x00, 0x07, 0x3F), codepage.AirSync)
	assert.ErrorIs(t, err, ErrMalformedStream)
	assert.ErrorIs(t, err, codepage.ErrUnknownSymbol)
}

func TestDecode_PageIsPerCall(t *testing.T) {
	tbl := codepage.Default()

	// Leaves FolderHierarchy active at the end of the document.
	first := doc(0x00, 0x07, 0x16)
	_, err := Decode(tbl, first, codepage.AirSync)
	require.NoError(t, err)

	// 0x05 on AirSync is Sync; a leaked page would make it Folders.
	got, err := Decode(tbl, doc(0x05), codepage.AirSync)
	require.NoError(t, err)
	assert.Equal(t, tag(t, "AirSync:Sync"), got.Tag)
}

// ─────────────────────────────────────────────────────────────────────────────
// Multi-byte integers and Dump
// ─────────────────────────────────────────────────────────────────────────────

func TestAppendMbUint32(t *testing.T) {
	assert.Equal(t, []byte{0x00}, appendMbUint32(nil, 0))
	assert.Equal(t, []byte{0x7F}, appendMbUint32(nil, 0x7F))
	assert.Equal(t, []byte{0x81, 0x00}, appendMbUint32(nil, 0x80))
	assert.Equal(t, []byte{0x8F, 0xFF, 0xFF, 0xFF, 0x7F}, appendMbUint32(nil, 0xFFFFFFFF))
}

func TestDump(t *testing.T) {
	tbl := codepage.Default()
	root := NewNode(tag(t, "FolderHierarchy:FolderSync"),
		NewText(tag(t, "FolderHierarchy:Status"), "9"),
		NewNode(tag(t, "FolderHierarchy:Changes")),
	)

	want := "<FolderHierarchy:FolderSync>\n" +
		"  <FolderHierarchy:Status>9 (InvalidSyncKey)</FolderHierarchy:Status>\n" +
		"  <FolderHierarchy:Changes/>\n" +
		"</FolderHierarchy:FolderSync>\n"
	assert.Equal(t, want, Dump(tbl, root))
}
