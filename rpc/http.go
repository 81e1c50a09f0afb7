// Copyright 2025 The go-web3 Authors
// This file is part of the go-web3 library.
//
// The go-web3 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-web3 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-web3 library. If not, see <http://www.gnu.org/licenses/>.

package rpc

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

const (
	defaultBodyLimit = 5 * 1024 * 1024    // 默认的响应体大小限制
	contentType      = "application/json" // JSON-RPC 请求的标准内容类型
)

// HTTPTransport posts every request to a fixed URL.
// HTTPTransport 将每个请求以 POST 方式发送到固定 URL。
type HTTPTransport struct {
	client  *http.Client
	url     string
	limiter *rate.Limiter // nil when unlimited
	auth    HTTPAuth

	mu      sync.Mutex // protects headers
	headers http.Header
}

// NewHTTPTransport creates a transport posting to endpoint.
func NewHTTPTransport(endpoint string, options ...ClientOption) *HTTPTransport {
	return newHTTPTransport(endpoint, newClientConfig(options))
}

func newHTTPTransport(endpoint string, cfg *clientConfig) *HTTPTransport {
	headers := make(http.Header, 2+len(cfg.httpHeaders))
	headers.Set("accept", contentType)
	headers.Set("content-type", contentType)
	for key, values := range cfg.httpHeaders {
		headers[key] = values
	}
	client := cfg.httpClient
	if client == nil {
		client = new(http.Client)
	}
	return &HTTPTransport{
		client:  client,
		url:     endpoint,
		limiter: cfg.limiter(),
		auth:    cfg.httpAuth,
		headers: headers,
	}
}

// SetHeader adds a custom HTTP header to the transport.
func (t *HTTPTransport) SetHeader(key, value string) {
	t.mu.Lock()
	t.headers.Set(key, value)
	t.mu.Unlock()
}

// Send posts payload and returns the response body. A status code other than
// 2xx is reported as HTTPError.
func (t *HTTPTransport) Send(ctx context.Context, payload []byte) ([]byte, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, io.NopCloser(bytes.NewReader(payload)))
	if err != nil {
		return nil, err
	}
	req.ContentLength = int64(len(payload))
	req.GetBody = func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(payload)), nil }

	// set headers
	t.mu.Lock()
	req.Header = t.headers.Clone()
	t.mu.Unlock()
	setHeaders(req.Header, headersFromContext(ctx))

	if t.auth != nil {
		if err := t.auth(req.Header); err != nil {
			return nil, err
		}
	}

	// do request
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, defaultBodyLimit))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, HTTPError{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}
