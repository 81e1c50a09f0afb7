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
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestWebsocketTransport(t *testing.T) {
	node := newTestNode()
	node.result("eth_coinbase", "0x0000000000000000000000000000000000000001")
	srv := httptest.NewServer(node)
	defer srv.Close()

	wsURL := "ws://user:secret@" + strings.TrimPrefix(srv.URL, "http://")
	tr, err := DialTransport(context.Background(), wsURL, WithHeader("x-client", "web3"))
	require.NoError(t, err)
	m := NewManager(tr, Config{})
	defer m.Close()

	for i := 0; i < 3; i++ {
		var coinbase string
		require.NoError(t, m.Call(context.Background(), &coinbase, "eth_coinbase"))
		assert.Equal(t, "0x0000000000000000000000000000000000000001", coinbase)
	}
	assert.Equal(t, uint64(3), m.LastID())

	h := node.headers[0]
	assert.Equal(t, "web3", h.Get("x-client"))
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("user:secret")), h.Get("authorization"))
}

func TestWebsocketOrigin(t *testing.T) {
	node := newTestNode()
	srv := httptest.NewServer(node)
	defer srv.Close()

	node.result("eth_listening", true)
	tr, err := DialWebsocket(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), "http://example.com")
	require.NoError(t, err)
	m := NewManager(tr, Config{})
	defer m.Close()

	var listening bool
	require.NoError(t, m.Call(context.Background(), &listening, "eth_listening"))
	assert.True(t, listening)
	assert.Equal(t, "http://example.com", node.headers[0].Get("origin"))
}

func TestWebsocketSkipsOtherReplies(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			// a late reply to an earlier request arrives first
			conn.WriteMessage(websocket.TextMessage, []byte(`{"jsonrpc":"2.0","id":999,"result":"stale"}`))
			conn.WriteMessage(websocket.TextMessage, []byte(`{"jsonrpc":"2.0","id":1,"result":"fresh"}`))
		}
	}))
	defer srv.Close()

	tr, err := DialWebsocket(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), "")
	require.NoError(t, err)
	m := NewManager(tr, Config{})
	defer m.Close()

	var result string
	require.NoError(t, m.Call(context.Background(), &result, "eth_coinbase"))
	assert.Equal(t, "fresh", result)
}

func TestWebsocketHandshakeError(t *testing.T) {
	srv := httptest.NewServer(nil)
	defer srv.Close()

	_, err := DialWebsocket(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestWSClientHeaders(t *testing.T) {
	u, h, err := wsClientHeaders("wss://a:b@node.example/ws", "origin.example")
	require.NoError(t, err)
	assert.Equal(t, "wss://node.example/ws", u)
	assert.Equal(t, "origin.example", h.Get("origin"))
	assert.True(t, strings.HasPrefix(h.Get("authorization"), "Basic "))
}
