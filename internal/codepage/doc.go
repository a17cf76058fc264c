// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codepage holds the tag dictionaries used by the WBXML codec.
//
// A codepage maps element names to 6-bit token codes within one numbered
// namespace, and optionally maps symbolic enum variants to the string
// values that travel inside elements (folder types, status codes).
// A Table groups the pages a protocol needs. Tables are immutable once
// built; Default returns the shared ActiveSync table and every consumer
// receives it explicitly rather than through package state.
package codepage
