// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"strconv"
)

// WBXMLContentType is the media type of ActiveSync request and response bodies.
const WBXMLContentType = "application/vnd.ms-sync.wbxml"

// WriteWBXML writes an encoded WBXML body to the HTTP response.
//
// It sets the "Content-Type" and "Content-Length" headers and writes the
// provided HTTP status code before sending the body.
//
// Returns the number of bytes written and any write error.
//
// Example usage:
//
//	WriteWBXML(w, body, http.StatusOK)
func WriteWBXML(w http.ResponseWriter, body []byte, statusCode int) (int, error) {
	w.Header().Set("Content-Type", WBXMLContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(statusCode)

	return w.Write(body)
}
