// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailbox

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-mail-sync/models"
)

// DateFormat is the wire form of Email:DateReceived.
const DateFormat = "2006-01-02T15:04:05.000Z"

// Message is a searchable mail item.
type Message struct {
	LongID       string
	CollectionID string
	From         string
	To           string
	Subject      string
	Received     time.Time
	Read         bool
}

// match converts m to a search hit.
func (m Message) match() models.SearchMatch {
	read := "0"
	if m.Read {
		read = "1"
	}
	return models.SearchMatch{
		Class:        "Email",
		LongID:       m.LongID,
		CollectionID: m.CollectionID,
		Properties: map[string]string{
			"From":         m.From,
			"To":           m.To,
			"Subject":      m.Subject,
			"DateReceived": m.Received.UTC().Format(DateFormat),
			"Read":         read,
		},
	}
}

// field returns the value of a qualified field name, or false when the field
// is not searchable.
func (m Message) field(name string) (string, bool) {
	switch name {
	case "Email:Subject":
		return m.Subject, true
	case "Email:From":
		return m.From, true
	case "Email:To":
		return m.To, true
	case "Email:DateReceived":
		return m.Received.UTC().Format(DateFormat), true
	case "AirSync:CollectionId":
		return m.CollectionID, true
	case "AirSync:Class":
		return "Email", true
	}
	return "", false
}

func (m Message) containsText(text string) bool {
	text = strings.ToLower(text)
	for _, v := range []string{m.Subject, m.From, m.To} {
		if strings.Contains(strings.ToLower(v), text) {
			return true
		}
	}
	return false
}
