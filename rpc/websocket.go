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
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsReadBuffer       = 1024             // WebSocket 读取缓冲区大小（字节）
	wsWriteBuffer      = 1024             // WebSocket 写入缓冲区大小（字节）
	wsDefaultReadLimit = 32 * 1024 * 1024 // 默认读取限制为 32 MB
	wsDefaultRWTimeout = 30 * time.Second // used if the context has no deadline
	wsCloseGracePeriod = time.Second
)

var wsBufferPool = new(sync.Pool)

// WebsocketTransport performs one request/response exchange per Send over a
// single websocket connection. Exchanges are serialized.
// WebsocketTransport 在单个 WebSocket 连接上每次 Send 执行一次请求/响应交换，交换是串行的。
type WebsocketTransport struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

type wsHandshakeError struct {
	err    error
	status string
}

func (e wsHandshakeError) Error() string {
	s := e.err.Error()
	if e.status != "" {
		s += " (HTTP status " + e.status + ")"
	}
	return s
}

func (e wsHandshakeError) Unwrap() error {
	return e.err
}

// DialWebsocket dials endpoint and returns the connected transport. The
// origin header is sent when origin is not empty.
func DialWebsocket(ctx context.Context, endpoint, origin string, options ...ClientOption) (*WebsocketTransport, error) {
	cfg := newClientConfig(options)
	if origin != "" {
		cfg.initHeaders()
		cfg.httpHeaders.Set("origin", origin)
	}
	return newWebsocketTransport(ctx, endpoint, cfg)
}

func newWebsocketTransport(ctx context.Context, endpoint string, cfg *clientConfig) (*WebsocketTransport, error) {
	dialer := cfg.wsDialer
	if dialer == nil {
		dialer = &websocket.Dialer{
			ReadBufferSize:  wsReadBuffer,
			WriteBufferSize: wsWriteBuffer,
			WriteBufferPool: wsBufferPool,
			Proxy:           http.ProxyFromEnvironment,
		}
	}
	dialURL, header, err := wsClientHeaders(endpoint, "")
	if err != nil {
		return nil, err
	}
	for key, values := range cfg.httpHeaders {
		header[key] = values
	}
	if cfg.httpAuth != nil {
		if err := cfg.httpAuth(header); err != nil {
			return nil, err
		}
	}
	conn, resp, err := dialer.DialContext(ctx, dialURL, header)
	if err != nil {
		hErr := wsHandshakeError{err: err}
		if resp != nil {
			hErr.status = resp.Status
		}
		return nil, hErr
	}
	messageSizeLimit := int64(wsDefaultReadLimit)
	if cfg.wsMessageSizeLimit != nil && *cfg.wsMessageSizeLimit >= 0 {
		messageSizeLimit = *cfg.wsMessageSizeLimit
	}
	conn.SetReadLimit(messageSizeLimit)
	return &WebsocketTransport{conn: conn}, nil
}

// wsClientHeaders moves basic auth credentials from the URL user info into an
// authorization header.
func wsClientHeaders(endpoint, origin string) (string, http.Header, error) {
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return endpoint, nil, err
	}
	header := make(http.Header)
	if origin != "" {
		header.Add("origin", origin)
	}
	if endpointURL.User != nil {
		b64auth := base64.StdEncoding.EncodeToString([]byte(endpointURL.User.String()))
		header.Add("authorization", "Basic "+b64auth)
		endpointURL.User = nil
	}
	return endpointURL.String(), header, nil
}

// Send writes payload as one text message and returns the first message
// whose id matches the request id.
func (t *WebsocketTransport) Send(ctx context.Context, payload []byte) ([]byte, error) {
	var req struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(wsDefaultRWTimeout)
	}
	t.conn.SetWriteDeadline(deadline)
	t.conn.SetReadDeadline(deadline)
	if err := t.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return nil, err
	}
	for {
		_, msg, err := t.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		var resp struct {
			ID json.RawMessage `json:"id"`
		}
		// Replies carrying another request's id are skipped. Non-object
		// replies and replies without an id are passed up so the manager can
		// report them as malformed.
		if json.Unmarshal(msg, &resp) != nil || len(resp.ID) == 0 || bytes.Equal(resp.ID, req.ID) {
			return msg, nil
		}
	}
}

// Close sends a close frame and closes the connection.
func (t *WebsocketTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(wsCloseGracePeriod))
	return t.conn.Close()
}
