// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
)

// Encode serializes root. The encoder starts with initialPage active and
// emits SWITCH_PAGE only when an element lives on a different page.
func Encode(tbl *codepage.Table, root *Node, initialPage codepage.Page) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrInvalidNode)
	}

	e := encoder{tbl: tbl, page: initialPage}
	e.buf = append(e.buf, version13)
	e.buf = appendMbUint32(e.buf, publicIDUnkn)
	e.buf = appendMbUint32(e.buf, charsetUTF8)
	e.buf = appendMbUint32(e.buf, 0) // string table length

	if err := e.node(root); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	tbl  *codepage.Table
	page codepage.Page
	buf  []byte
}

func (e *encoder) node(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil child", ErrInvalidNode)
	}
	if !e.tbl.Known(n.Tag) {
		return fmt.Errorf("encode tag 0x%04X: %w", uint16(n.Tag), codepage.ErrUnknownSymbol)
	}

	hasText := n.Text != ""
	hasOpaque := n.Opaque != nil
	hasChildren := len(n.Children) > 0
	if (hasText && hasOpaque) || ((hasText || hasOpaque) && hasChildren) {
		name, _ := e.tbl.TagName(n.Tag)
		return fmt.Errorf("%w: %s mixes children and payload", ErrInvalidNode, name)
	}

	if p := n.Tag.Page(); p != e.page {
		e.buf = append(e.buf, tokSwitchPage, byte(p))
		e.page = p
	}

	tok := n.Tag.Code()
	if !hasText && !hasOpaque && !hasChildren {
		e.buf = append(e.buf, tok)
		return nil
	}
	e.buf = append(e.buf, tok|flagContent)

	switch {
	case hasText:
		if strings.IndexByte(n.Text, 0) >= 0 || !utf8.ValidString(n.Text) {
			name, _ := e.tbl.TagName(n.Tag)
			return fmt.Errorf("%w: %s text is not NUL-free UTF-8", ErrInvalidNode, name)
		}
		e.buf = append(e.buf, tokStrI)
		e.buf = append(e.buf, n.Text...)
		e.buf = append(e.buf, 0)
	case hasOpaque:
		e.buf = append(e.buf, tokOpaque)
		e.buf = appendMbUint32(e.buf, uint32(len(n.Opaque)))
		e.buf = append(e.buf, n.Opaque...)
	default:
		for _, c := range n.Children {
			if err := e.node(c); err != nil {
				return err
			}
		}
	}

	e.buf = append(e.buf, tokEnd)
	return nil
}
