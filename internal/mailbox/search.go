// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailbox

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/models"
)

var errUnsupportedField = errors.New("field is not searchable")

// AddMessage stores m in the folder m.CollectionID. An empty LongID is
// filled in; the stored message is returned.
func (mb *Mailbox) AddMessage(m Message) (Message, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if !mb.current().Contains(m.CollectionID) {
		return Message{}, fmt.Errorf("%w: %s", ErrUnknownFolder, m.CollectionID)
	}
	if m.LongID == "" {
		m.LongID = mb.ids.Generate()
	}
	if m.Received.IsZero() {
		m.Received = time.Now()
	}
	mb.messages = append(mb.messages, m)
	return m, nil
}

// Search runs q against the messages. Results are ordered newest first and
// windowed by q.Range; a window starting past the last hit is EndOfRange.
func (mb *Mailbox) Search(q models.SearchQuery) models.SearchResult {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if raw, ok := mb.takeInjected(protocol.CmdSearch); ok {
		return models.SearchResult{Status: models.ParseSearchStatus(raw)}
	}
	if q.Store != models.StoreMailbox {
		return models.SearchResult{Status: models.SearchStatusNotFound}
	}
	if q.Range.Validate() != nil {
		return models.SearchResult{Status: models.SearchStatusInvalidRequest}
	}

	folders := mb.current()
	var hits []Message
	for _, m := range mb.messages {
		ok, err := matches(m, q.Predicate, folders, q.DeepTraversal)
		if err != nil {
			return models.SearchResult{Status: models.SearchStatusTooComplex}
		}
		if ok {
			hits = append(hits, m)
		}
	}
	slices.SortStableFunc(hits, func(a, b Message) int {
		return b.Received.Compare(a.Received)
	})

	if q.Range.Offset >= len(hits) {
		if len(hits) == 0 && q.Range.Offset == 0 {
			return models.SearchResult{Status: models.SearchStatusSuccess, Total: 0, HasTotal: true}
		}
		return models.SearchResult{Status: models.SearchStatusEndOfRange}
	}

	end := min(q.Range.Offset+q.Range.Count, len(hits))
	res := models.SearchResult{
		Status:   models.SearchStatusSuccess,
		Range:    models.SearchRange{Offset: q.Range.Offset, Count: end - q.Range.Offset},
		HasRange: true,
		Total:    len(hits),
		HasTotal: true,
	}
	for _, m := range hits[q.Range.Offset:end] {
		res.Matches = append(res.Matches, m.match())
	}
	return res
}

func matches(m Message, p models.Predicate, folders models.FolderSet, deep bool) (bool, error) {
	switch p := p.(type) {
	case models.FreeText:
		return m.containsText(p.Text), nil
	case models.EqualTo:
		if p.Field == "AirSync:CollectionId" && deep {
			return inFolderTree(folders, m.CollectionID, p.Value), nil
		}
		v, err := fieldValue(m, p.Field)
		return strings.EqualFold(v, p.Value), err
	case models.LessThan:
		c, err := compareField(m, p.Field, p.Value)
		return c < 0, err
	case models.GreaterThan:
		c, err := compareField(m, p.Field, p.Value)
		return c > 0, err
	case models.And:
		for _, t := range p.Terms {
			ok, err := matches(m, t, folders, deep)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case models.Or:
		for _, t := range p.Terms {
			ok, err := matches(m, t, folders, deep)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("unsupported predicate %T", p)
}

func fieldValue(m Message, field string) (string, error) {
	v, ok := m.field(field)
	if !ok {
		return "", fmt.Errorf("%w: %s", errUnsupportedField, field)
	}
	return v, nil
}

// compareField orders dates chronologically and everything else by
// case-insensitive text.
func compareField(m Message, field, value string) (int, error) {
	if field == "Email:DateReceived" {
		t, err := parseDate(value)
		if err != nil {
			return 0, err
		}
		return m.Received.Compare(t), nil
	}
	v, err := fieldValue(m, field)
	if err != nil {
		return 0, err
	}
	return strings.Compare(strings.ToLower(v), strings.ToLower(value)), nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{DateFormat, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}

func inFolderTree(folders models.FolderSet, id, root string) bool {
	return isDescendant(folders, id, root)
}
