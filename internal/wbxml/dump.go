// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
)

// Dump renders n as indented pseudo-XML for trace logs. Values of enum
// elements are annotated with their symbolic variant, e.g. "9 (InvalidSyncKey)".
func Dump(tbl *codepage.Table, n *Node) string {
	var sb strings.Builder
	dump(&sb, tbl, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, tbl *codepage.Table, n *Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	name, err := tbl.TagName(n.Tag)
	if err != nil {
		name = fmt.Sprintf("unknown-0x%04X", uint16(n.Tag))
	}

	switch {
	case len(n.Children) > 0:
		fmt.Fprintf(sb, "%s<%s>\n", indent, name)
		for _, c := range n.Children {
			dump(sb, tbl, c, depth+1)
		}
		fmt.Fprintf(sb, "%s</%s>\n", indent, name)
	case n.Opaque != nil:
		fmt.Fprintf(sb, "%s<%s>[%d bytes]</%s>\n", indent, name, len(n.Opaque), name)
	case n.Text != "":
		text := n.Text
		if _, local, ok := strings.Cut(name, ":"); ok {
			if variant, err := tbl.EnumVariant(n.Tag.Page(), local, text); err == nil && variant != text {
				text += " (" + variant + ")"
			}
		}
		fmt.Fprintf(sb, "%s<%s>%s</%s>\n", indent, name, text, name)
	default:
		fmt.Fprintf(sb, "%s<%s/>\n", indent, name)
	}
}
