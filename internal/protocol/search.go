// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/wbxml"
	"github.com/MKhiriev/go-mail-sync/models"
)

// BuildSearchRequest returns the Search document for q:
//
//	<Search><Store>
//	  <Name>store</Name>
//	  <Query>predicate</Query>
//	  <Options><Range>a-b</Range>[<RebuildResults/>][<DeepTraversal/>]</Options>
//	</Store></Search>
//
// The predicate tree is mirrored node for node. Field names are qualified
// tag names resolved through tbl.
func BuildSearchRequest(tbl *codepage.Table, q models.SearchQuery) (*wbxml.Node, error) {
	if err := q.Range.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	if q.Store == "" {
		q.Store = models.StoreMailbox
	}

	r := newResolver(tbl)
	pred, err := predicateNode(r, q.Predicate)
	if err != nil {
		return nil, err
	}

	options := wbxml.NewNode(r.search("Options"), wbxml.NewText(r.search("Range"), q.Range.String()))
	if q.RebuildResults {
		options.Add(wbxml.NewNode(r.search("RebuildResults")))
	}
	if q.DeepTraversal {
		options.Add(wbxml.NewNode(r.search("DeepTraversal")))
	}

	root := wbxml.NewNode(r.search("Search"),
		wbxml.NewNode(r.search("Store"),
			wbxml.NewText(r.search("Name"), q.Store),
			wbxml.NewNode(r.search("Query"), pred),
			options,
		),
	)
	if r.err != nil {
		return nil, r.err
	}
	return root, nil
}

func predicateNode(r *resolver, p models.Predicate) (*wbxml.Node, error) {
	comparison := func(op, field, value string) (*wbxml.Node, error) {
		fieldTag, err := r.tbl.Tag(field)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidQuery, field, err)
		}
		return wbxml.NewNode(r.search(op),
			wbxml.NewNode(fieldTag),
			wbxml.NewText(r.search("Value"), value),
		), nil
	}
	group := func(op string, terms []models.Predicate) (*wbxml.Node, error) {
		if len(terms) == 0 {
			return nil, fmt.Errorf("%w: empty %s", ErrInvalidQuery, op)
		}
		n := wbxml.NewNode(r.search(op))
		for _, t := range terms {
			c, err := predicateNode(r, t)
			if err != nil {
				return nil, err
			}
			n.Add(c)
		}
		return n, nil
	}

	switch p := p.(type) {
	case models.EqualTo:
		return comparison("EqualTo", p.Field, p.Value)
	case models.LessThan:
		return comparison("LessThan", p.Field, p.Value)
	case models.GreaterThan:
		return comparison("GreaterThan", p.Field, p.Value)
	case models.And:
		return group("And", p.Terms)
	case models.Or:
		return group("Or", p.Terms)
	case models.FreeText:
		if p.Text == "" {
			return nil, fmt.Errorf("%w: empty FreeText", ErrInvalidQuery)
		}
		return wbxml.NewText(r.search("FreeText"), p.Text), nil
	case nil:
		return nil, fmt.Errorf("%w: no predicate", ErrInvalidQuery)
	default:
		return nil, fmt.Errorf("%w: unsupported predicate %T", ErrInvalidQuery, p)
	}
}

// ParseSearchResponse validates a decoded Search response.
//
// The top-level Status is required. When it is Success, the Store status
// becomes the result status and the matches, Range and Total are read from
// the Store. An empty <Result/> is the server's "no hits" marker and is
// skipped.
func ParseSearchResponse(tbl *codepage.Table, root *wbxml.Node) (models.SearchResult, error) {
	r := newResolver(tbl)
	var (
		tSearch   = r.search("Search")
		tStatus   = r.search("Status")
		tResponse = r.search("Response")
		tStore    = r.search("Store")
		tResult   = r.search("Result")
		tRange    = r.search("Range")
		tTotal    = r.search("Total")
	)
	if r.err != nil {
		return models.SearchResult{}, r.err
	}
	if root == nil || root.Tag != tSearch {
		return models.SearchResult{}, malformed("root element is not Search")
	}

	var res models.SearchResult
	raw, ok := root.ChildText(tStatus)
	if !ok || raw == "" {
		return models.SearchResult{}, malformed("Search without Status")
	}
	res.Status = models.ParseSearchStatus(raw)
	if res.Status != models.SearchStatusSuccess {
		return res, nil
	}

	response := root.Child(tResponse)
	if response == nil {
		return models.SearchResult{}, malformed("successful Search without Response")
	}
	store := response.Child(tStore)
	if store == nil {
		return models.SearchResult{}, malformed("Search Response without Store")
	}
	raw, ok = store.ChildText(tStatus)
	if !ok || raw == "" {
		return models.SearchResult{}, malformed("Store without Status")
	}
	res.Status = models.ParseSearchStatus(raw)

	for _, n := range store.FindAll(tResult) {
		if len(n.Children) == 0 {
			continue
		}
		m, err := parseMatch(r, n)
		if err != nil {
			return models.SearchResult{}, err
		}
		res.Matches = append(res.Matches, m)
	}

	if rawRange, ok := store.ChildText(tRange); ok {
		rng, err := models.ParseSearchRange(rawRange)
		if err != nil {
			return models.SearchResult{}, malformed("%v", err)
		}
		res.Range, res.HasRange = rng, true
	}
	if rawTotal, ok := store.ChildText(tTotal); ok {
		n, err := strconv.Atoi(rawTotal)
		if err != nil || n < 0 {
			return models.SearchResult{}, malformed("bad Total %q", rawTotal)
		}
		res.Total, res.HasTotal = n, true
	}
	if res.HasRange && len(res.Matches) > res.Range.Count {
		return models.SearchResult{}, malformed("%d results for range %s", len(res.Matches), res.Range)
	}
	return res, nil
}

func parseMatch(r *resolver, n *wbxml.Node) (models.SearchMatch, error) {
	var m models.SearchMatch
	m.Class, _ = n.ChildText(r.tag("AirSync:Class"))
	m.CollectionID, _ = n.ChildText(r.tag("AirSync:CollectionId"))
	m.LongID, _ = n.ChildText(r.search("LongId"))
	if r.err != nil {
		return models.SearchMatch{}, r.err
	}
	if m.LongID == "" {
		return models.SearchMatch{}, malformed("Result without LongId")
	}

	if props := n.Child(r.search("Properties")); props != nil {
		m.Properties = make(map[string]string)
		flattenProperties(r.tbl, props, "", m.Properties)
	}
	return m, nil
}

// flattenProperties stores every leaf below n under its local tag name,
// prefixing nested leaves with their parents' names.
func flattenProperties(tbl *codepage.Table, n *wbxml.Node, prefix string, out map[string]string) {
	for _, c := range n.Children {
		name, err := tbl.TagName(c.Tag)
		if err != nil {
			continue
		}
		if _, local, ok := strings.Cut(name, ":"); ok {
			name = local
		}
		key := prefix + name
		if len(c.Children) > 0 {
			flattenProperties(tbl, c, key+"/", out)
			continue
		}
		if _, dup := out[key]; dup {
			continue
		}
		if c.Opaque != nil {
			out[key] = string(c.Opaque)
		} else {
			out[key] = c.Text
		}
	}
}

// NextPage returns the query for the page after res. It reports false when
// the result set is exhausted: the server said EndOfRange, returned no
// matches, reported a non-success status, or the next offset reaches Total.
// The returned query never asks the server to rebuild its results.
func NextPage(q models.SearchQuery, res models.SearchResult) (models.SearchQuery, bool) {
	if res.Status != models.SearchStatusSuccess || len(res.Matches) == 0 {
		return q, false
	}

	next := q.Range.Offset + len(res.Matches)
	if res.HasRange {
		next = res.Range.Offset + res.Range.Count
	}
	if res.HasTotal && next >= res.Total {
		return q, false
	}

	q.Range = models.SearchRange{Offset: next, Count: q.Range.Count}
	q.RebuildResults = false
	return q, true
}

// ParseSearchRequest is the server-side reading of a Search request.
func ParseSearchRequest(tbl *codepage.Table, root *wbxml.Node) (models.SearchQuery, error) {
	r := newResolver(tbl)
	var (
		tSearch  = r.search("Search")
		tStore   = r.search("Store")
		tName    = r.search("Name")
		tQuery   = r.search("Query")
		tOptions = r.search("Options")
		tRange   = r.search("Range")
	)
	if r.err != nil {
		return models.SearchQuery{}, r.err
	}
	if root == nil || root.Tag != tSearch {
		return models.SearchQuery{}, malformedRequest("root element is not Search")
	}
	store := root.Child(tStore)
	if store == nil {
		return models.SearchQuery{}, malformedRequest("Search without Store")
	}

	var q models.SearchQuery
	q.Store, _ = store.ChildText(tName)
	if q.Store == "" {
		return models.SearchQuery{}, malformedRequest("Store without Name")
	}

	query := store.Child(tQuery)
	if query == nil || len(query.Children) != 1 {
		return models.SearchQuery{}, malformedRequest("Query must hold exactly one predicate")
	}
	pred, err := parsePredicate(r, query.Children[0])
	if err != nil {
		return models.SearchQuery{}, err
	}
	q.Predicate = pred

	q.Range = models.SearchRange{Offset: 0, Count: 100}
	if opts := store.Child(tOptions); opts != nil {
		if raw, ok := opts.ChildText(tRange); ok {
			if q.Range, err = models.ParseSearchRange(raw); err != nil {
				return models.SearchQuery{}, malformedRequest("%v", err)
			}
		}
		q.RebuildResults = opts.Child(r.search("RebuildResults")) != nil
		q.DeepTraversal = opts.Child(r.search("DeepTraversal")) != nil
	}
	return q, nil
}

func parsePredicate(r *resolver, n *wbxml.Node) (models.Predicate, error) {
	name, err := r.tbl.TagName(n.Tag)
	if err != nil {
		return nil, malformedRequest("%v", err)
	}

	comparison := func() (field, value string, err error) {
		if len(n.Children) != 2 || n.Children[1].Tag != r.search("Value") {
			return "", "", malformedRequest("%s needs a field and a Value", name)
		}
		if field, err = r.tbl.TagName(n.Children[0].Tag); err != nil {
			return "", "", malformedRequest("%v", err)
		}
		return field, n.Children[1].Text, nil
	}
	group := func() ([]models.Predicate, error) {
		if len(n.Children) == 0 {
			return nil, malformedRequest("empty %s", name)
		}
		terms := make([]models.Predicate, 0, len(n.Children))
		for _, c := range n.Children {
			t, err := parsePredicate(r, c)
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		}
		return terms, nil
	}

	switch name {
	case "Search:EqualTo":
		f, v, err := comparison()
		return models.EqualTo{Field: f, Value: v}, err
	case "Search:LessThan":
		f, v, err := comparison()
		return models.LessThan{Field: f, Value: v}, err
	case "Search:GreaterThan":
		f, v, err := comparison()
		return models.GreaterThan{Field: f, Value: v}, err
	case "Search:And":
		terms, err := group()
		return models.And{Terms: terms}, err
	case "Search:Or":
		terms, err := group()
		return models.Or{Terms: terms}, err
	case "Search:FreeText":
		return models.FreeText{Text: n.Text}, nil
	default:
		return nil, malformedRequest("unsupported predicate %s", name)
	}
}

// topLevelSearchStatuses are reported on the Search element itself rather
// than on the Store.
var topLevelSearchStatuses = map[models.SearchStatus]bool{
	models.SearchStatusInvalidRequest: true,
	models.SearchStatusServerError:    true,
}

// BuildSearchResponse is the server-side writer of a Search response.
func BuildSearchResponse(tbl *codepage.Table, res models.SearchResult) (*wbxml.Node, error) {
	r := newResolver(tbl)
	if topLevelSearchStatuses[res.Status] {
		root := wbxml.NewNode(r.search("Search"), wbxml.NewText(r.search("Status"), res.Status.Wire()))
		if r.err != nil {
			return nil, r.err
		}
		return root, nil
	}

	store := wbxml.NewNode(r.search("Store"), wbxml.NewText(r.search("Status"), res.Status.Wire()))
	if len(res.Matches) == 0 && res.Status == models.SearchStatusSuccess {
		store.Add(wbxml.NewNode(r.search("Result")))
	}
	for _, m := range res.Matches {
		store.Add(matchNode(r, m))
	}
	if res.HasRange {
		store.Add(wbxml.NewText(r.search("Range"), res.Range.String()))
	}
	if res.HasTotal {
		store.Add(wbxml.NewText(r.search("Total"), strconv.Itoa(res.Total)))
	}

	root := wbxml.NewNode(r.search("Search"),
		wbxml.NewText(r.search("Status"), models.SearchStatusSuccess.Wire()),
		wbxml.NewNode(r.search("Response"), store),
	)
	if r.err != nil {
		return nil, r.err
	}
	return root, nil
}

// matchProperties lists the Email properties the development server
// returns, in wire order.
var matchProperties = []string{"Email:To", "Email:From", "Email:Subject", "Email:DateReceived", "Email:Read"}

func matchNode(r *resolver, m models.SearchMatch) *wbxml.Node {
	n := wbxml.NewNode(r.search("Result"))
	if m.Class != "" {
		n.Add(wbxml.NewText(r.tag("AirSync:Class"), m.Class))
	}
	n.Add(wbxml.NewText(r.search("LongId"), m.LongID))
	if m.CollectionID != "" {
		n.Add(wbxml.NewText(r.tag("AirSync:CollectionId"), m.CollectionID))
	}
	if len(m.Properties) > 0 {
		props := wbxml.NewNode(r.search("Properties"))
		for _, qualified := range matchProperties {
			_, local, _ := strings.Cut(qualified, ":")
			if v, ok := m.Properties[local]; ok {
				props.Add(wbxml.NewText(r.tag(qualified), v))
			}
		}
		n.Add(props)
	}
	return n
}
