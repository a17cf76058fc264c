// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/internal/utils"
	"github.com/MKhiriev/go-mail-sync/internal/wbxml"
	"github.com/MKhiriev/go-mail-sync/models"
	"github.com/rs/zerolog"
)

// SupportedCommands are the commands announced by OPTIONS and accepted by
// the command endpoint.
var SupportedCommands = []string{
	protocol.CmdFolderSync,
	protocol.CmdFolderCreate,
	protocol.CmdFolderDelete,
	protocol.CmdFolderUpdate,
	protocol.CmdSearch,
}

func (h *Handler) options(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(adapter.HeaderProtocolVersions, strings.Join(adapter.KnownVersions, ","))
	w.Header().Set(adapter.HeaderProtocolCommands, strings.Join(SupportedCommands, ","))
	w.WriteHeader(http.StatusOK)
}

// command decodes one WBXML command, hands it to the backend and writes the
// encoded reply. Transport-level problems are answered with HTTP errors;
// requests that decode but break the command's rules get a protocol status
// in a regular 200 reply.
func (h *Handler) command(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	cmd := r.URL.Query().Get("Cmd")
	if !slices.Contains(SupportedCommands, cmd) {
		log.Warn().Str(logger.FieldCommand, cmd).Msg(errUnsupportedCommand.Error())
		http.Error(w, errUnsupportedCommand.Error(), http.StatusNotImplemented)
		return
	}
	log = &logger.Logger{Logger: log.With().Str(logger.FieldCommand, cmd).Logger()}

	if err := checkVersion(r.Header.Get(adapter.HeaderProtocolVersion)); err != nil {
		log.Warn().Err(err).Send()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := checkContentType(r.Header.Get("Content-Type")); err != nil {
		log.Warn().Err(err).Send()
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn().Err(err).Msg("request body too large")
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		log.Err(err).Msg("reading request body failed")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		log.Warn().Err(errEmptyBody).Send()
		http.Error(w, errEmptyBody.Error(), http.StatusBadRequest)
		return
	}

	page := protocol.InitialPage(cmd)
	req, err := wbxml.Decode(h.tbl, body, page)
	if err != nil {
		log.Warn().Err(err).Msg("request is not valid WBXML")
		http.Error(w, "invalid WBXML", http.StatusBadRequest)
		return
	}
	if log.GetLevel() <= zerolog.TraceLevel {
		log.Trace().Str("document", wbxml.Dump(h.tbl, req)).Msg("request")
	}

	reply, err := h.dispatch(log, cmd, req)
	if err != nil {
		log.Err(err).Msg("building reply failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if log.GetLevel() <= zerolog.TraceLevel {
		log.Trace().Str("document", wbxml.Dump(h.tbl, reply)).Msg("reply")
	}

	out, err := wbxml.Encode(h.tbl, reply, page)
	if err != nil {
		log.Err(err).Msg("encoding reply failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if _, err = utils.WriteWBXML(w, out, http.StatusOK); err != nil {
		log.Err(err).Msg("writing reply failed")
	}
}

func (h *Handler) dispatch(log *logger.Logger, cmd string, req *wbxml.Node) (*wbxml.Node, error) {
	switch cmd {
	case protocol.CmdFolderSync:
		return h.folderSync(log, req)
	case protocol.CmdSearch:
		return h.search(log, req)
	default:
		return h.folderOp(log, cmd, req)
	}
}

func (h *Handler) folderSync(log *logger.Logger, req *wbxml.Node) (*wbxml.Node, error) {
	token, err := protocol.ParseFolderSyncRequest(h.tbl, req)
	if err != nil {
		log.Warn().Err(err).Msg("malformed FolderSync")
		return protocol.BuildFolderSyncResponse(h.tbl, protocol.FolderSyncResponse{Status: models.FolderStatusMalformedRequest})
	}

	resp := h.backend.FolderSync(token)
	log.Debug().
		Str(logger.FieldSyncKey, token.String()).
		Str(logger.FieldStatus, resp.Status.String()).
		Int("changes", resp.Delta.Len()).
		Msg("folder sync served")
	return protocol.BuildFolderSyncResponse(h.tbl, resp)
}

func (h *Handler) folderOp(log *logger.Logger, cmd string, req *wbxml.Node) (*wbxml.Node, error) {
	op, err := protocol.ParseFolderOpRequest(h.tbl, req)
	if err == nil && op.Command != cmd {
		err = fmt.Errorf("%w: body is %s", protocol.ErrMalformedRequest, op.Command)
	}
	if err != nil {
		log.Warn().Err(err).Msg("malformed folder operation")
		return protocol.BuildFolderOpResponse(h.tbl, protocol.FolderOpResponse{Command: cmd, Status: models.FolderStatusMalformedRequest})
	}

	resp := h.backend.FolderOp(op)
	log.Debug().
		Str(logger.FieldSyncKey, op.SyncKey.String()).
		Str(logger.FieldStatus, resp.Status.String()).
		Str("server_id", resp.ServerID).
		Msg("folder operation served")
	return protocol.BuildFolderOpResponse(h.tbl, resp)
}

func (h *Handler) search(log *logger.Logger, req *wbxml.Node) (*wbxml.Node, error) {
	q, err := protocol.ParseSearchRequest(h.tbl, req)
	if err != nil {
		log.Warn().Err(err).Msg("malformed Search")
		return protocol.BuildSearchResponse(h.tbl, models.SearchResult{Status: models.SearchStatusInvalidRequest})
	}

	res := h.backend.Search(q)
	log.Debug().
		Str(logger.FieldStatus, res.Status.String()).
		Int("matches", len(res.Matches)).
		Int("total", res.Total).
		Msg("search served")
	return protocol.BuildSearchResponse(h.tbl, res)
}

func checkVersion(version string) error {
	if version == "" || slices.Contains(adapter.KnownVersions, version) {
		return nil
	}
	return fmt.Errorf("%w: %s", errUnsupportedVersion, version)
}

func checkContentType(header string) error {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || mediaType != utils.WBXMLContentType {
		return fmt.Errorf("%w: %q", errBadContentType, header)
	}
	return nil
}
