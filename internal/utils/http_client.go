// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(30*time.Second, "go-mail-sync")
//	resp, err := client.R().Post("https://example.com/Microsoft-Server-ActiveSync")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance. A zero timeout
// leaves resty's default; an empty userAgent sends none.
//
// Automatic redirects are disabled: ActiveSync redirects arrive as HTTP 451
// with an X-MS-Location header and are followed by the caller.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	client := resty.New().
		SetRedirectPolicy(resty.NoRedirectPolicy())
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &HTTPClient{Client: client}
}
