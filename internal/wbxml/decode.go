// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
)

// Decode parses data into a tree. The active page starts at initialPage and
// changes only through SWITCH_PAGE tokens. On any error no tree is returned.
func Decode(tbl *codepage.Table, data []byte, initialPage codepage.Page) (*Node, error) {
	d := decoder{tbl: tbl, data: data, page: initialPage}
	if err := d.header(); err != nil {
		return nil, err
	}
	root, err := d.body()
	if err != nil {
		return nil, err
	}
	return root, nil
}

// decoder is created per call; the active page lives here and nowhere else.
type decoder struct {
	tbl      *codepage.Table
	data     []byte
	pos      int
	page     codepage.Page
	strtbl   []byte
	rootDone bool
}

func (d *decoder) fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrMalformedStream, fmt.Sprintf(format, args...), d.pos)
}

func (d *decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, d.fail("unexpected end of input")
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) mbUint32() (uint32, error) {
	var v uint64
	for i := 0; i < 5; i++ {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		v = v<<7 | uint64(b&0x7F)
		if v > math.MaxUint32 {
			return 0, d.fail("multi-byte integer overflow")
		}
		if b&0x80 == 0 {
			return uint32(v), nil
		}
	}
	return 0, d.fail("multi-byte integer longer than 5 bytes")
}

func (d *decoder) header() error {
	version, err := d.readByte()
	if err != nil {
		return err
	}
	if version < 0x01 || version > version13 {
		return d.fail("unsupported version 0x%02X", version)
	}

	publicID, err := d.mbUint32()
	if err != nil {
		return err
	}
	if publicID == 0 {
		// public id given as a string table index
		if _, err := d.mbUint32(); err != nil {
			return err
		}
	}

	charset, err := d.mbUint32()
	if err != nil {
		return err
	}
	if charset != charsetUTF8 && charset != charsetUnknown {
		return d.fail("unsupported charset %d", charset)
	}

	n, err := d.mbUint32()
	if err != nil {
		return err
	}
	if uint64(n) > uint64(len(d.data)-d.pos) {
		return d.fail("string table length %d exceeds input", n)
	}
	d.strtbl = d.data[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return nil
}

func (d *decoder) body() (*Node, error) {
	var (
		root  *Node
		stack []*Node
	)

	for d.pos < len(d.data) {
		tok, _ := d.readByte()

		if d.rootDone {
			d.pos--
			return nil, d.fail("trailing data after document element")
		}

		switch tok {
		case tokSwitchPage:
			p, err := d.readByte()
			if err != nil {
				return nil, err
			}
			if !d.tbl.HasPage(codepage.Page(p)) {
				return nil, fmt.Errorf("%w: %w", d.fail("switch to page %d", p), codepage.ErrUnknownSymbol)
			}
			d.page = codepage.Page(p)

		case tokEnd:
			if len(stack) == 0 {
				return nil, d.fail("END without open element")
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				d.rootDone = true
			}

		case tokStrI:
			s, err := d.cstring()
			if err != nil {
				return nil, err
			}
			if err := d.appendText(stack, s); err != nil {
				return nil, err
			}

		case tokStrT:
			idx, err := d.mbUint32()
			if err != nil {
				return nil, err
			}
			s, err := d.tableString(idx)
			if err != nil {
				return nil, err
			}
			if err := d.appendText(stack, s); err != nil {
				return nil, err
			}

		case tokEntity:
			cp, err := d.mbUint32()
			if err != nil {
				return nil, err
			}
			r := rune(cp)
			if cp > utf8.MaxRune || !utf8.ValidRune(r) || r == 0 {
				return nil, d.fail("invalid entity %d", cp)
			}
			if err := d.appendText(stack, string(r)); err != nil {
				return nil, err
			}

		case tokOpaque:
			n, err := d.mbUint32()
			if err != nil {
				return nil, err
			}
			if uint64(n) > uint64(len(d.data)-d.pos) {
				return nil, d.fail("opaque length %d exceeds input", n)
			}
			blob := d.data[d.pos : d.pos+int(n)]
			d.pos += int(n)
			if err := d.appendOpaque(stack, blob); err != nil {
				return nil, err
			}

		case tokLiteral, tokLiteralC, tokLiteralA, tokLiteralAC:
			return nil, d.fail("literal tags are not supported")

		case tokExtI0, tokExtI1, tokExtI2, tokExtT0, tokExtT1, tokExtT2, tokExt0, tokExt1, tokExt2:
			return nil, d.fail("extension token 0x%02X is not supported", tok)

		case tokPI:
			return nil, d.fail("processing instructions are not supported")

		default:
			if tok&flagAttributes != 0 {
				return nil, d.fail("attributes are not supported")
			}
			code := tok & codeMask
			if _, err := d.tbl.Name(d.page, code); err != nil {
				return nil, fmt.Errorf("%w: %w", d.fail("tag 0x%02X", code), err)
			}

			n := &Node{Tag: codepage.MakeTag(d.page, code)}
			if len(stack) == 0 {
				if root != nil {
					return nil, d.fail("multiple document elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				if parent.Text != "" || parent.Opaque != nil {
					return nil, d.fail("element mixes text and children")
				}
				parent.Children = append(parent.Children, n)
			}

			if tok&flagContent != 0 {
				stack = append(stack, n)
			} else if len(stack) == 0 {
				d.rootDone = true
			}
		}
	}

	if root == nil {
		return nil, d.fail("no document element")
	}
	if len(stack) > 0 {
		return nil, d.fail("%d unclosed elements", len(stack))
	}
	return root, nil
}

func (d *decoder) cstring() (string, error) {
	end := bytes.IndexByte(d.data[d.pos:], 0)
	if end < 0 {
		return "", d.fail("unterminated inline string")
	}
	s := d.data[d.pos : d.pos+end]
	if !utf8.Valid(s) {
		return "", d.fail("inline string is not UTF-8")
	}
	d.pos += end + 1
	return string(s), nil
}

func (d *decoder) tableString(idx uint32) (string, error) {
	if uint64(idx) >= uint64(len(d.strtbl)) {
		return "", d.fail("string table index %d out of range", idx)
	}
	rest := d.strtbl[idx:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", d.fail("unterminated string table entry %d", idx)
	}
	if !utf8.Valid(rest[:end]) {
		return "", d.fail("string table entry %d is not UTF-8", idx)
	}
	return string(rest[:end]), nil
}

func (d *decoder) appendText(stack []*Node, s string) error {
	if len(stack) == 0 {
		return d.fail("text outside the document element")
	}
	n := stack[len(stack)-1]
	if len(n.Children) > 0 || n.Opaque != nil {
		return d.fail("element mixes text with other content")
	}
	n.Text += s
	return nil
}

func (d *decoder) appendOpaque(stack []*Node, blob []byte) error {
	if len(stack) == 0 {
		return d.fail("opaque data outside the document element")
	}
	n := stack[len(stack)-1]
	if len(n.Children) > 0 || n.Text != "" {
		return d.fail("element mixes opaque data with other content")
	}
	n.Opaque = append(append([]byte{}, n.Opaque...), blob...)
	return nil
}
