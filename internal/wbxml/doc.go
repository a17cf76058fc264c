// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package wbxml encodes and decodes WBXML 1.3 documents as trees of Node.
//
// Element names are resolved through a codepage.Table passed on every call;
// the codec keeps no state between calls. Only the subset ActiveSync uses is
// accepted: inline and table strings, entities and opaque data. Attributes,
// literal tags, processing instructions and extension tokens make Decode
// fail with ErrMalformedStream.
package wbxml
