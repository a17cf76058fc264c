// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Search store names.
const (
	StoreMailbox         = "Mailbox"
	StoreGAL             = "GAL"
	StoreDocumentLibrary = "DocumentLibrary"
)

// Predicate is a node of a search query tree. The set of implementations is
// closed: EqualTo, LessThan, GreaterThan, And, Or and FreeText.
type Predicate interface {
	isPredicate()
}

// EqualTo matches items whose Field equals Value. Field is a qualified tag
// name such as "AirSync:CollectionId".
type EqualTo struct {
	Field string
	Value string
}

// LessThan matches items whose Field sorts before Value.
type LessThan struct {
	Field string
	Value string
}

// GreaterThan matches items whose Field sorts after Value.
type GreaterThan struct {
	Field string
	Value string
}

// And matches items satisfying every term.
type And struct {
	Terms []Predicate
}

// Or matches items satisfying at least one term.
type Or struct {
	Terms []Predicate
}

// FreeText matches items containing Text anywhere the server indexes.
type FreeText struct {
	Text string
}

func (EqualTo) isPredicate()     {}
func (LessThan) isPredicate()    {}
func (GreaterThan) isPredicate() {}
func (And) isPredicate()         {}
func (Or) isPredicate()          {}
func (FreeText) isPredicate()    {}

// SearchRange is a zero-based window over the server's result list.
type SearchRange struct {
	Offset int
	Count  int
}

// Validate rejects empty or negative windows.
func (r SearchRange) Validate() error {
	if r.Offset < 0 || r.Count <= 0 {
		return fmt.Errorf("%w: offset %d count %d", ErrInvalidRange, r.Offset, r.Count)
	}
	return nil
}

// Last returns the index of the last row in the window.
func (r SearchRange) Last() int {
	return r.Offset + r.Count - 1
}

// Next returns the window that follows r with the same size.
func (r SearchRange) Next() SearchRange {
	return SearchRange{Offset: r.Offset + r.Count, Count: r.Count}
}

// String renders the inclusive "first-last" wire form.
func (r SearchRange) String() string {
	return strconv.Itoa(r.Offset) + "-" + strconv.Itoa(r.Last())
}

// ParseSearchRange parses the inclusive "first-last" wire form.
func ParseSearchRange(raw string) (SearchRange, error) {
	first, last, ok := strings.Cut(strings.TrimSpace(raw), "-")
	if !ok {
		return SearchRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, raw)
	}
	a, errA := strconv.Atoi(first)
	b, errB := strconv.Atoi(last)
	if errA != nil || errB != nil || a < 0 || b < a {
		return SearchRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, raw)
	}
	return SearchRange{Offset: a, Count: b - a + 1}, nil
}

// SearchQuery is one Search request against a single store.
type SearchQuery struct {
	Store     string
	Predicate Predicate
	Range     SearchRange

	// RebuildResults asks the server to drop its cached result list. Only
	// the first page of a query may set it.
	RebuildResults bool
	DeepTraversal  bool
}

// SearchMatch is one hit of a search response.
type SearchMatch struct {
	Class        string
	LongID       string
	CollectionID string

	// Properties holds the leaf values of the Properties element keyed by
	// tag name. Nested leaves use a slash path, e.g. "Body/Data".
	Properties map[string]string
}

// SearchResult is the parsed content of one Search response page.
type SearchResult struct {
	Status  SearchStatus
	Matches []SearchMatch

	// Range is the window the server actually returned; HasRange is false
	// when the response carried no Range element.
	Range    SearchRange
	HasRange bool

	// Total is the size of the full result list; HasTotal is false when the
	// server did not report it.
	Total    int
	HasTotal bool
}
