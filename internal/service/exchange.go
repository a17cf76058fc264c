// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/internal/utils"
	"github.com/MKhiriev/go-mail-sync/internal/wbxml"
	"github.com/rs/zerolog"
)

// exchanger encodes a request tree, posts it and decodes the reply.
type exchanger struct {
	tbl       *codepage.Table
	transport adapter.Transport
	logger    *logger.Logger
}

func (e *exchanger) roundTrip(ctx context.Context, command string, req *wbxml.Node) (*wbxml.Node, error) {
	page := protocol.InitialPage(command)

	body, err := wbxml.Encode(e.tbl, req, page)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", command, err)
	}
	if e.logger.GetLevel() <= zerolog.TraceLevel {
		e.logger.Trace().Str(logger.FieldCommand, command).Msg("request:\n" + wbxml.Dump(e.tbl, req))
	}

	raw, err := e.transport.Post(ctx, command, body, utils.WBXMLContentType)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w: %w", command, protocol.ErrMalformedResponse, ErrEmptyResponse)
	}

	root, err := wbxml.Decode(e.tbl, raw, page)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", command, err)
	}
	if e.logger.GetLevel() <= zerolog.TraceLevel {
		e.logger.Trace().Str(logger.FieldCommand, command).Msg("response:\n" + wbxml.Dump(e.tbl, root))
	}
	return root, nil
}
