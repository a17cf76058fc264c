// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailbox

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-mail-sync/models"
)

var demoSubjects = []string{
	"Invoice %d for October",
	"Weekly report #%d",
	"Re: lunch on day %d?",
	"Your order %d has shipped",
	"Meeting notes %d",
}

// SeedDemo adds n generated messages to the Inbox, one hour apart going back
// from now. It is a no-op when the Inbox does not exist.
func (mb *Mailbox) SeedDemo(n int) error {
	inbox, ok := mb.Folders().FirstWithRole(models.RoleInbox)
	if !ok {
		return nil
	}
	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < n; i++ {
		_, err := mb.AddMessage(Message{
			CollectionID: inbox.ServerID,
			From:         fmt.Sprintf("sender%d@example.com", i%7),
			To:           "user@example.com",
			Subject:      fmt.Sprintf(demoSubjects[i%len(demoSubjects)], i),
			Received:     now.Add(-time.Duration(i) * time.Hour),
			Read:         i%3 == 0,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
