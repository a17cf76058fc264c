// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import "errors"

var (
	// ErrMalformedStream is returned by Decode for any input that is not a
	// well-formed document in the supported subset.
	ErrMalformedStream = errors.New("malformed wbxml stream")

	// ErrInvalidNode is returned by Encode for a tree that cannot be
	// represented: mixed content, NUL or invalid UTF-8 in text, nil nodes.
	ErrInvalidNode = errors.New("invalid wbxml node")
)
