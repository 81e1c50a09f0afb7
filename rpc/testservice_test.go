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
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// testHandler answers one method of the fake node.
type testHandler func(params []json.RawMessage) (interface{}, *jsonError)

// testNode is an in-memory JSON-RPC peer. It records every request it
// receives and answers from its handler table.
type testNode struct {
	mu       sync.Mutex
	handlers map[string]testHandler
	requests []jsonrpcMessage
	headers  []http.Header
}

func newTestNode() *testNode {
	return &testNode{handlers: make(map[string]testHandler)}
}

func (n *testNode) handle(method string, h testHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = h
}

// result registers a handler that always returns v.
func (n *testNode) result(method string, v interface{}) {
	n.handle(method, func([]json.RawMessage) (interface{}, *jsonError) { return v, nil })
}

func (n *testNode) methods() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, r := range n.requests {
		out = append(out, r.Method)
	}
	return out
}

func (n *testNode) serve(payload []byte) []byte {
	var req jsonrpcMessage
	if err := json.Unmarshal(payload, &req); err != nil {
		resp, _ := json.Marshal(&jsonrpcMessage{Version: vsn, ID: json.RawMessage("null"), Error: &jsonError{Code: errcodeParse, Message: err.Error()}})
		return resp
	}
	n.mu.Lock()
	n.requests = append(n.requests, req)
	h := n.handlers[req.Method]
	n.mu.Unlock()

	resp := &jsonrpcMessage{Version: vsn, ID: req.ID}
	if h == nil {
		resp.Error = &jsonError{Code: errcodeMethodNotFound, Message: "the method " + req.Method + " does not exist/is not available"}
	} else {
		var params []json.RawMessage
		json.Unmarshal(req.Params, &params)
		result, rpcErr := h(params)
		if rpcErr != nil {
			resp.Error = rpcErr
		} else {
			resp.Result, _ = json.Marshal(result)
		}
	}
	out, _ := json.Marshal(resp)
	return out
}

// transport returns the in-process bridge to the node.
func (n *testNode) transport() Transport {
	return TransportFunc(func(ctx context.Context, payload []byte) ([]byte, error) {
		return n.serve(payload), nil
	})
}

func (n *testNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		n.serveWebsocket(w, r)
		return
	}
	body, _ := io.ReadAll(r.Body)
	n.mu.Lock()
	n.headers = append(n.headers, r.Header.Clone())
	n.mu.Unlock()
	w.Header().Set("content-type", contentType)
	w.Write(n.serve(body))
}

func (n *testNode) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  wsReadBuffer,
		WriteBufferSize: wsWriteBuffer,
		CheckOrigin:     func(*http.Request) bool { return true },
	}
	n.mu.Lock()
	n.headers = append(n.headers, r.Header.Clone())
	n.mu.Unlock()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, n.serve(msg)); err != nil {
			return
		}
	}
}
