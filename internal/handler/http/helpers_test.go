// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/codepage"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/mailbox"
	"github.com/MKhiriev/go-mail-sync/internal/protocol"
	"github.com/MKhiriev/go-mail-sync/internal/utils"
	"github.com/MKhiriev/go-mail-sync/internal/wbxml"
	"github.com/stretchr/testify/require"
)

const (
	testUser     = "alice"
	testPassword = "secret"
	testSignKey  = "test-sign-key"
)

var testTable = codepage.Default()

type seqIDs struct{ n int }

func (s *seqIDs) Generate() string {
	s.n++
	return "f" + strconv.Itoa(s.n)
}

func testAuthConfig() config.Server {
	return config.Server{Username: testUser, Password: testPassword, TokenSignKey: testSignKey}
}

func newTestHandler(t *testing.T) (*Handler, *mailbox.Mailbox) {
	t.Helper()
	mb := mailbox.NewDefault(&seqIDs{})
	return NewHandler(mb, testTable, testAuthConfig(), logger.Nop()), mb
}

func commandRequest(t *testing.T, cmd string, root *wbxml.Node) *http.Request {
	t.Helper()
	body, err := wbxml.Encode(testTable, root, protocol.InitialPage(cmd))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, adapter.ActiveSyncPath+"?Cmd="+cmd, bytes.NewReader(body))
	req.Header.Set("Content-Type", utils.WBXMLContentType)
	req.SetBasicAuth(testUser, testPassword)
	return req
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

// exchange posts root as cmd and returns the decoded 200 reply.
func exchange(t *testing.T, h *Handler, cmd string, root *wbxml.Node) *wbxml.Node {
	t.Helper()
	rr := serve(h, commandRequest(t, cmd, root))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, utils.WBXMLContentType, rr.Header().Get("Content-Type"))

	reply, err := wbxml.Decode(testTable, rr.Body.Bytes(), protocol.InitialPage(cmd))
	require.NoError(t, err)
	return reply
}

func tag(t *testing.T, qualified string) codepage.Tag {
	t.Helper()
	tg, err := testTable.Tag(qualified)
	require.NoError(t, err)
	return tg
}

func statusOf(t *testing.T, root *wbxml.Node, page string) string {
	t.Helper()
	status, ok := root.ChildText(tag(t, page+":Status"))
	require.True(t, ok, "reply has no Status")
	return status
}
