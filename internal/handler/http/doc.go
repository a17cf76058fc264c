// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP face of the development ActiveSync
// server.
//
// It exposes the single command endpoint at adapter.ActiveSyncPath, an
// OPTIONS discovery call and a token endpoint. Authentication, request
// tracing, access logging and response compression are handled here before
// decoded commands reach the mailbox backend.
package http
