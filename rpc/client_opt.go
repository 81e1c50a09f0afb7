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
	"net/http"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// ClientOption is a configuration option for the transports built by
// DialTransport and the New*Transport constructors.
// ClientOption 是传输层的配置选项。
type ClientOption interface {
	applyOption(*clientConfig)
}

type clientConfig struct {
	// HTTP settings
	httpClient  *http.Client // 用于发送 HTTP 请求的客户端
	httpHeaders http.Header  // 每个请求发送的自定义头部
	httpAuth    HTTPAuth     // 用于处理 HTTP 认证的函数

	// rate limiting, zero means unlimited
	rateLimit rate.Limit
	rateBurst int

	// WebSocket options
	wsDialer           *websocket.Dialer
	wsMessageSizeLimit *int64 // wsMessageSizeLimit nil = default, 0 = no limit
}

func (cfg *clientConfig) initHeaders() {
	if cfg.httpHeaders == nil {
		cfg.httpHeaders = make(http.Header)
	}
}

func newClientConfig(options []ClientOption) *clientConfig {
	cfg := new(clientConfig)
	for _, opt := range options {
		opt.applyOption(cfg)
	}
	return cfg
}

// limiter returns the token bucket for the configured rate, or nil.
func (cfg *clientConfig) limiter() *rate.Limiter {
	if cfg.rateLimit <= 0 {
		return nil
	}
	burst := cfg.rateBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(cfg.rateLimit, burst)
}

type optionFunc func(*clientConfig)

func (fn optionFunc) applyOption(opt *clientConfig) {
	fn(opt)
}

// WithWebsocketDialer configures the websocket.Dialer used by the websocket
// transport.
func WithWebsocketDialer(dialer websocket.Dialer) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.wsDialer = &dialer
	})
}

// WithWebsocketMessageSizeLimit configures the websocket message size limit used by the
// transport. Zero means no limit.
func WithWebsocketMessageSizeLimit(messageSizeLimit int64) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.wsMessageSizeLimit = &messageSizeLimit
	})
}

// WithHeader configures HTTP headers set by the transport. The headers are
// sent with every HTTP request and with the websocket handshake.
func WithHeader(key, value string) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.initHeaders()
		cfg.httpHeaders.Set(key, value)
	})
}

// WithHeaders configures HTTP headers set by the transport.
func WithHeaders(headers http.Header) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.initHeaders()
		for k, vs := range headers {
			cfg.httpHeaders[k] = vs
		}
	})
}

// WithHTTPClient configures the http.Client used by the HTTP transport.
func WithHTTPClient(c *http.Client) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.httpClient = c
	})
}

// WithHTTPAuth configures HTTP request authentication. The given provider will be called
// whenever a request is made. Note that only one authentication provider can be active
// at any time.
// WithHTTPAuth 配置 HTTP 请求认证；每次请求都会调用该提供者。
func WithHTTPAuth(a HTTPAuth) ClientOption {
	if a == nil {
		panic("nil auth")
	}
	return optionFunc(func(cfg *clientConfig) {
		cfg.httpAuth = a
	})
}

// WithRateLimit caps outgoing HTTP requests to rps per second with the given
// burst. Requests wait for a token and fail when their context ends first.
func WithRateLimit(rps float64, burst int) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.rateLimit = rate.Limit(rps)
		cfg.rateBurst = burst
	})
}

// A HTTPAuth function is called by the client whenever a HTTP request is sent.
// The function must be goroutine-safe.
//
// Usually, HTTPAuth functions will call h.Set("authorization", "...") to add
// auth information to the request.
type HTTPAuth func(h http.Header) error
