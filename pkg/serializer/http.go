// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Serialize first to detect errors before writing headers
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

// HTTPReaderUserAgent identifies remote reads to vcgend.
const HTTPReaderUserAgent = "vcgen/1.0"

// maxResponseBytes caps a remote body; a full snapshot is a few kilobytes.
const maxResponseBytes = 4 << 20

// HTTPReaderOption defines a configuration option for HTTPReader.
type HTTPReaderOption func(*HTTPReader)

// HTTPReader fetches serialized readings, typically from a remote vcgend.
type HTTPReader struct {
	UserAgent          string
	Client             *http.Client
	InsecureSkipVerify bool
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) HTTPReaderOption {
	return func(r *HTTPReader) {
		if userAgent != "" {
			r.UserAgent = userAgent
		}
	}
}

// WithTotalTimeout bounds each request end to end.
func WithTotalTimeout(timeout time.Duration) HTTPReaderOption {
	return func(r *HTTPReader) {
		if timeout > 0 {
			r.Client.Timeout = timeout
		}
	}
}

// WithInsecureSkipVerify disables TLS verification, for vcgend behind a
// self-signed proxy.
func WithInsecureSkipVerify(skip bool) HTTPReaderOption {
	return func(r *HTTPReader) {
		r.InsecureSkipVerify = skip
		if tr, ok := r.Client.Transport.(*http.Transport); ok && tr.TLSClientConfig != nil {
			tr.TLSClientConfig.InsecureSkipVerify = skip //nolint:gosec // opt-in only
		}
	}
}

// WithClient replaces the HTTP client, e.g. with an httptest server's client.
func WithClient(client *http.Client) HTTPReaderOption {
	return func(r *HTTPReader) {
		if client != nil {
			r.Client = client
		}
	}
}

// NewHTTPReader creates a new HTTPReader with the specified options.
func NewHTTPReader(options ...HTTPReaderOption) *HTTPReader {
	r := &HTTPReader{
		UserAgent: HTTPReaderUserAgent,
		Client: &http.Client{
			Timeout:   defaults.HTTPClientTimeout,
			Transport: newDefaultHTTPTransport(),
		},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,

		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,

		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// Read fetches url and returns the response body. Any status other than
// 200 OK is an error carrying the start of the body.
func (r *HTTPReader) Read(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}
	if r.Client == nil {
		return nil, fmt.Errorf("http client is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	req.Header.Set("User-Agent", r.UserAgent)
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %s: %s", url, resp.Status, truncate(data, 256))
	}

	return data, nil
}

func truncate(b []byte, n int) string {
	b = bytes.TrimSpace(b)
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
