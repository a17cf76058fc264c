// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package protocol turns FolderSync, folder operation and Search commands
// into WBXML trees and back.
//
// Everything here is a pure function of its inputs: builders produce a
// *wbxml.Node for a request, parsers validate a decoded response and return
// plain values. Sending, persisting and retrying belong to the callers.
// The package also carries the server-side mirror of each command, used by
// the development server.
package protocol
