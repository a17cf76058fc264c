// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailbox

import "errors"

var (
	ErrUnknownFolder = errors.New("folder does not exist")
	ErrInvalidStatus = errors.New("status cannot be injected")
)
