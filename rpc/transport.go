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
	"context"
	"fmt"
	"net/url"
)

// Transport moves one encoded JSON-RPC request to the node and returns the
// raw response. Send blocks until the round trip completes or fails; the
// manager never retries.
// Transport 负责把一个编码后的 JSON-RPC 请求送达节点并返回原始响应，同步阻塞，不重试。
type Transport interface {
	Send(ctx context.Context, payload []byte) ([]byte, error)
}

// TransportFunc adapts an ordinary function to the Transport interface. It
// serves as the in-process bridge for embedding a node or for tests.
type TransportFunc func(ctx context.Context, payload []byte) ([]byte, error)

// Send calls f(ctx, payload).
func (f TransportFunc) Send(ctx context.Context, payload []byte) ([]byte, error) {
	return f(ctx, payload)
}

// DialTransport creates a transport for the given URL.
//
// The currently supported URL schemes are "http", "https", "ws" and "wss". If rawurl is a
// file name with no URL scheme, a local socket connection is established using UNIX
// domain sockets on supported platforms and named pipes on Windows.
// DialTransport 根据 URL 协议创建传输层：http/https、ws/wss 或本地 IPC。
func DialTransport(ctx context.Context, rawurl string, options ...ClientOption) (Transport, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	cfg := newClientConfig(options)
	switch u.Scheme {
	case "http", "https":
		return newHTTPTransport(rawurl, cfg), nil
	case "ws", "wss":
		return newWebsocketTransport(ctx, rawurl, cfg)
	case "":
		return newIPCTransport(ctx, rawurl)
	default:
		return nil, fmt.Errorf("no known transport for URL scheme %q", u.Scheme)
	}
}
