// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line sync client.
//
// It negotiates the protocol with the server, then runs one subcommand
// (sync, folders, search, mkdir, rmdir, rename, daemon or version) on top
// of the client services.
package client
