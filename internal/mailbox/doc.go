// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mailbox is the in-memory server side of the development ActiveSync
// endpoint. It owns a folder hierarchy versioned by sync key, a message list
// for Search, and a queue of injected statuses used to exercise client error
// handling.
//
// Every exported method is safe for concurrent use.
package mailbox
