// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codepage

import (
	"fmt"
	"strings"
	"sync"
)

// Page identifies a codepage within a Table.
type Page uint8

// Tag is a page-qualified element token: page<<8 | code.
type Tag uint16

// MakeTag combines a page and a 6-bit code.
func MakeTag(page Page, code byte) Tag {
	return Tag(page)<<8 | Tag(code)
}

// Page returns the page half of t.
func (t Tag) Page() Page {
	return Page(t >> 8)
}

// Code returns the code half of t.
func (t Tag) Code() byte {
	return byte(t)
}

const (
	// MinCode is the lowest code a tag may use; 0x00-0x04 are global tokens.
	MinCode byte = 0x05
	// MaxCode is the highest code that fits the 6 bits left by the flags.
	MaxCode byte = 0x3F
)

// PageDef is the declarative form of one codepage handed to NewTable.
type PageDef struct {
	ID   Page
	Name string
	Tags map[string]byte
	// Enums maps an element name to variant -> wire value.
	Enums map[string]map[string]string
}

type enum struct {
	byVariant map[string]string
	byWire    map[string]string
}

type page struct {
	id     Page
	name   string
	byName map[string]byte
	byCode map[byte]string
	enums  map[string]enum
}

// Table is an immutable set of codepages. It is safe for concurrent use.
type Table struct {
	pages  map[Page]*page
	byName map[string]Page
}

// NewTable validates defs and builds a Table. Codes must lie in
// MinCode..MaxCode and be unique within a page; page ids, page names and
// enum wire values must be unique as well.
func NewTable(defs ...PageDef) (*Table, error) {
	t := &Table{
		pages:  make(map[Page]*page, len(defs)),
		byName: make(map[string]Page, len(defs)),
	}

	for _, def := range defs {
		if def.Name == "" || strings.Contains(def.Name, ":") {
			return nil, fmt.Errorf("%w: bad page name %q", ErrInvalidTable, def.Name)
		}
		if _, dup := t.pages[def.ID]; dup {
			return nil, fmt.Errorf("%w: page %d defined twice", ErrInvalidTable, def.ID)
		}
		if _, dup := t.byName[def.Name]; dup {
			return nil, fmt.Errorf("%w: page name %q defined twice", ErrInvalidTable, def.Name)
		}

		p := &page{
			id:     def.ID,
			name:   def.Name,
			byName: make(map[string]byte, len(def.Tags)),
			byCode: make(map[byte]string, len(def.Tags)),
			enums:  make(map[string]enum, len(def.Enums)),
		}
		for name, code := range def.Tags {
			if code < MinCode || code > MaxCode {
				return nil, fmt.Errorf("%w: %s:%s code 0x%02X out of range", ErrInvalidTable, def.Name, name, code)
			}
			if other, dup := p.byCode[code]; dup {
				return nil, fmt.Errorf("%w: %s code 0x%02X used by %s and %s", ErrInvalidTable, def.Name, code, other, name)
			}
			p.byName[name] = code
			p.byCode[code] = name
		}
		for element, variants := range def.Enums {
			e := enum{
				byVariant: make(map[string]string, len(variants)),
				byWire:    make(map[string]string, len(variants)),
			}
			for variant, wire := range variants {
				if other, dup := e.byWire[wire]; dup {
					return nil, fmt.Errorf("%w: %s:%s value %q used by %s and %s", ErrInvalidTable, def.Name, element, wire, other, variant)
				}
				e.byVariant[variant] = wire
				e.byWire[wire] = variant
			}
			p.enums[element] = e
		}

		t.pages[def.ID] = p
		t.byName[def.Name] = def.ID
	}
	return t, nil
}

// MustNewTable is like NewTable but panics on invalid definitions. It is
// meant for package-level tables built from literals.
func MustNewTable(defs ...PageDef) *Table {
	t, err := NewTable(defs...)
	if err != nil {
		panic(err)
	}
	return t
}

// HasPage reports whether the table defines p.
func (t *Table) HasPage(p Page) bool {
	_, ok := t.pages[p]
	return ok
}

// PageName returns the name of p.
func (t *Table) PageName(p Page) (string, error) {
	pg, err := t.page(p)
	if err != nil {
		return "", err
	}
	return pg.name, nil
}

// PageByName returns the id of the page called name.
func (t *Table) PageByName(name string) (Page, error) {
	id, ok := t.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: page %q", ErrUnknownSymbol, name)
	}
	return id, nil
}

// TagCode returns the code of the element name on page p.
func (t *Table) TagCode(p Page, name string) (byte, error) {
	pg, err := t.page(p)
	if err != nil {
		return 0, err
	}
	code, ok := pg.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: tag %s:%s", ErrUnknownSymbol, pg.name, name)
	}
	return code, nil
}

// Name returns the element name of code on page p.
func (t *Table) Name(p Page, code byte) (string, error) {
	pg, err := t.page(p)
	if err != nil {
		return "", err
	}
	name, ok := pg.byCode[code]
	if !ok {
		return "", fmt.Errorf("%w: code 0x%02X on page %s", ErrUnknownSymbol, code, pg.name)
	}
	return name, nil
}

// Tag resolves a qualified "Page:Name" element name.
func (t *Table) Tag(qualified string) (Tag, error) {
	pageName, name, ok := strings.Cut(qualified, ":")
	if !ok {
		return 0, fmt.Errorf("%w: tag %q is not page-qualified", ErrUnknownSymbol, qualified)
	}
	p, err := t.PageByName(pageName)
	if err != nil {
		return 0, err
	}
	code, err := t.TagCode(p, name)
	if err != nil {
		return 0, err
	}
	return MakeTag(p, code), nil
}

// Known reports whether tag is defined by the table.
func (t *Table) Known(tag Tag) bool {
	_, err := t.Name(tag.Page(), tag.Code())
	return err == nil
}

// TagName returns the qualified "Page:Name" of tag.
func (t *Table) TagName(tag Tag) (string, error) {
	pg, err := t.page(tag.Page())
	if err != nil {
		return "", err
	}
	name, ok := pg.byCode[tag.Code()]
	if !ok {
		return "", fmt.Errorf("%w: code 0x%02X on page %s", ErrUnknownSymbol, tag.Code(), pg.name)
	}
	return pg.name + ":" + name, nil
}

// EnumValue returns the wire value of variant in the enum carried by
// element on page p.
func (t *Table) EnumValue(p Page, element, variant string) (string, error) {
	e, err := t.enum(p, element)
	if err != nil {
		return "", err
	}
	wire, ok := e.byVariant[variant]
	if !ok {
		return "", fmt.Errorf("%w: %s variant %q", ErrUnknownSymbol, element, variant)
	}
	return wire, nil
}

// EnumVariant is the inverse of EnumValue.
func (t *Table) EnumVariant(p Page, element, wire string) (string, error) {
	e, err := t.enum(p, element)
	if err != nil {
		return "", err
	}
	variant, ok := e.byWire[wire]
	if !ok {
		return "", fmt.Errorf("%w: %s value %q", ErrUnknownSymbol, element, wire)
	}
	return variant, nil
}

func (t *Table) page(p Page) (*page, error) {
	pg, ok := t.pages[p]
	if !ok {
		return nil, fmt.Errorf("%w: page %d", ErrUnknownSymbol, p)
	}
	return pg, nil
}

func (t *Table) enum(p Page, element string) (enum, error) {
	pg, err := t.page(p)
	if err != nil {
		return enum{}, err
	}
	e, ok := pg.enums[element]
	if !ok {
		return enum{}, fmt.Errorf("%w: no enum on %s:%s", ErrUnknownSymbol, pg.name, element)
	}
	return e, nil
}

var defaultTable = sync.OnceValue(func() *Table {
	return MustNewTable(activeSyncPages()...)
})

// Default returns the ActiveSync table. It is built once and shared.
func Default() *Table {
	return defaultTable()
}
