// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/utils"
	"github.com/MKhiriev/go-mail-sync/models"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// ActiveSyncPath is the endpoint every command is posted to.
const ActiveSyncPath = "/Microsoft-Server-ActiveSync"

// Protocol headers.
const (
	HeaderProtocolVersion  = "MS-ASProtocolVersion"
	HeaderProtocolVersions = "MS-ASProtocolVersions"
	HeaderProtocolCommands = "MS-ASProtocolCommands"
	HeaderLocation         = "X-MS-Location"
)

// StatusRedirect is the HTTP status an ActiveSync server uses to move a
// mailbox to another endpoint.
const StatusRedirect = 451

// KnownVersions are the protocol versions this client can speak, oldest first.
var KnownVersions = []string{"12.0", "12.1", "14.0", "14.1", "16.0", "16.1"}

type httpServerAdapter struct {
	client  *utils.HTTPClient
	limiter *rate.Limiter

	account      config.Account
	maxRedirects int

	mu      sync.RWMutex
	baseURL string
	version string
	token   string

	now    func() time.Time
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP implementation of [ServerAdapter].
// It normalises and validates the base URL from account.URL, configures the
// underlying HTTP client with the request timeout and user agent, and creates
// the outgoing request limiter.
//
// Returns an error if account.URL is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(account config.Account, adapterCfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(account.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid account url: %w", err)
	}

	limit := rate.Inf
	if adapterCfg.RateLimit > 0 {
		limit = rate.Limit(adapterCfg.RateLimit)
	}
	burst := adapterCfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &httpServerAdapter{
		client:       utils.NewHTTPClient(adapterCfg.RequestTimeout, adapterCfg.UserAgent),
		limiter:      rate.NewLimiter(limit, burst),
		account:      account,
		maxRedirects: adapterCfg.MaxRedirects,
		baseURL:      baseURL,
		version:      account.ProtocolVersion,
		token:        strings.TrimSpace(account.AccessToken),
		now:          time.Now,
		logger:       logger,
	}, nil
}

// normalizeBaseURL accepts "host", "scheme://host[/path]" or a full endpoint
// URL ending in ActiveSyncPath and returns the base without a trailing slash.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}
	u.RawQuery = ""
	u.Fragment = ""

	base := strings.TrimRight(u.String(), "/")
	return strings.TrimSuffix(base, ActiveSyncPath), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// ProtocolVersion implements [ServerAdapter].
func (h *httpServerAdapter) ProtocolVersion() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.version
}

func (h *httpServerAdapter) endpoint() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.baseURL + ActiveSyncPath
}

// Post implements [Transport]. It follows up to maxRedirects HTTP 451
// redirects; the new location is remembered for later requests.
func (h *httpServerAdapter) Post(ctx context.Context, command string, body []byte, contentType string) ([]byte, error) {
	for hop := 0; ; hop++ {
		resp, err := h.send(ctx, command, func(req *resty.Request) (*resty.Response, error) {
			return req.
				SetHeader("Content-Type", contentType).
				SetQueryParams(h.commandParams(command)).
				SetBody(body).
				Post(h.endpoint())
		})
		if err != nil {
			return nil, err
		}

		if resp.StatusCode() == StatusRedirect {
			if hop >= h.maxRedirects {
				return nil, &TransportError{Command: command, StatusCode: StatusRedirect, Err: ErrTooManyRedirects}
			}
			if err = h.redirect(command, resp); err != nil {
				return nil, err
			}
			continue
		}

		if err = mapHTTPError(command, resp); err != nil {
			return nil, err
		}

		payload := resp.Body()
		if len(payload) == 0 {
			return []byte{}, nil
		}
		if err = checkContentType(resp.Header().Get("Content-Type")); err != nil {
			return nil, &TransportError{Command: command, StatusCode: resp.StatusCode(), Err: err}
		}
		return payload, nil
	}
}

// Options implements [ServerAdapter].
func (h *httpServerAdapter) Options(ctx context.Context) (models.ServerOptions, error) {
	const command = "OPTIONS"

	resp, err := h.send(ctx, command, func(req *resty.Request) (*resty.Response, error) {
		return req.Options(h.endpoint())
	})
	if err != nil {
		return models.ServerOptions{}, err
	}
	if err = mapHTTPError(command, resp); err != nil {
		return models.ServerOptions{}, err
	}

	return models.ServerOptions{
		Versions: splitHeaderList(resp.Header().Get(HeaderProtocolVersions)),
		Commands: splitHeaderList(resp.Header().Get(HeaderProtocolCommands)),
	}, nil
}

// Connect implements [ServerAdapter].
func (h *httpServerAdapter) Connect(ctx context.Context, required ...string) (string, error) {
	opts, err := h.Options(ctx)
	if err != nil {
		return "", fmt.Errorf("connect: %w", err)
	}

	version, err := negotiateVersion(h.ProtocolVersion(), opts)
	if err != nil {
		return "", fmt.Errorf("connect: %w", err)
	}
	for _, command := range required {
		if !opts.SupportsCommand(command) {
			return "", fmt.Errorf("connect: %w: %s", ErrUnsupportedCommand, command)
		}
	}

	h.mu.Lock()
	h.version = version
	h.mu.Unlock()

	h.logger.Info().
		Str("protocol_version", version).
		Strs("server_versions", opts.Versions).
		Msg("connected to server")
	return version, nil
}

// send applies rate limiting, authentication and protocol headers, then runs
// do. Errors that prevent a response are returned as *TransportError.
func (h *httpServerAdapter) send(ctx context.Context, command string, do func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Command: command, Err: err}
	}

	req := h.client.R().SetContext(ctx)
	if err := h.authenticate(req); err != nil {
		return nil, &TransportError{Command: command, Err: err}
	}
	if version := h.ProtocolVersion(); version != "" {
		req.SetHeader(HeaderProtocolVersion, version)
	}

	started := h.now()
	resp, err := do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(ctxErr, err)
		}
		return nil, &TransportError{Command: command, Err: err}
	}

	h.logger.Debug().
		Str(logger.FieldCommand, command).
		Int("http_status", resp.StatusCode()).
		Dur("elapsed", h.now().Sub(started)).
		Int("bytes", len(resp.Body())).
		Msg("exchange completed")
	return resp, nil
}

func (h *httpServerAdapter) authenticate(req *resty.Request) error {
	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()

	if token == "" {
		req.SetBasicAuth(h.account.Username, h.account.Password)
		return nil
	}

	exp, ok, err := utils.TokenExpiry(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if ok && !h.now().Before(exp) {
		return ErrTokenExpired
	}
	req.SetAuthToken(token)
	return nil
}

func (h *httpServerAdapter) commandParams(command string) map[string]string {
	return map[string]string{
		"Cmd":        command,
		"User":       h.account.Username,
		"DeviceId":   h.account.DeviceID,
		"DeviceType": h.account.DeviceType,
	}
}

func (h *httpServerAdapter) redirect(command string, resp *resty.Response) error {
	location := resp.Header().Get(HeaderLocation)
	baseURL, err := normalizeBaseURL(location)
	if err != nil {
		return &TransportError{Command: command, StatusCode: StatusRedirect, Err: fmt.Errorf("invalid %s %q: %w", HeaderLocation, location, err)}
	}

	h.mu.Lock()
	h.baseURL = baseURL
	h.mu.Unlock()

	h.logger.Info().Str(logger.FieldCommand, command).Str("location", baseURL).Msg("server redirected mailbox")
	return nil
}

func checkContentType(header string) error {
	if header == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || mediaType != utils.WBXMLContentType {
		return fmt.Errorf("%w: %s", ErrUnexpectedContent, header)
	}
	return nil
}

func splitHeaderList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// negotiateVersion keeps preferred when the server supports it and otherwise
// picks the highest version known to both sides.
func negotiateVersion(preferred string, opts models.ServerOptions) (string, error) {
	if preferred != "" && opts.SupportsVersion(preferred) {
		return preferred, nil
	}

	best := ""
	for _, v := range opts.Versions {
		if !slices.Contains(KnownVersions, v) {
			continue
		}
		if best == "" || compareVersions(v, best) > 0 {
			best = v
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: server offers %v", ErrUnsupportedVersion, opts.Versions)
	}
	return best, nil
}

// compareVersions compares "major.minor" strings numerically.
func compareVersions(a, b string) int {
	amaj, amin := splitVersion(a)
	bmaj, bmin := splitVersion(b)
	if amaj != bmaj {
		return amaj - bmaj
	}
	return amin - bmin
}

func splitVersion(v string) (int, int) {
	major, minor, _ := strings.Cut(v, ".")
	ma, _ := strconv.Atoi(major)
	mi, _ := strconv.Atoi(minor)
	return ma, mi
}

