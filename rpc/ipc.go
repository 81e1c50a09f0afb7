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
	"net"
	"sync"
	"time"
)

// IPCTransport exchanges requests over a local socket: a UNIX domain socket
// on POSIX systems, a named pipe on Windows. The stream carries one JSON value
// per request and per response.
// IPCTransport 通过本地套接字交换请求（POSIX 为 UNIX 域套接字，Windows 为命名管道）。
type IPCTransport struct {
	mu   sync.Mutex
	conn net.Conn
	dec  *json.Decoder
}

// DialIPC connects to the given endpoint path.
func DialIPC(ctx context.Context, endpoint string) (*IPCTransport, error) {
	return newIPCTransport(ctx, endpoint)
}

func newIPCTransport(ctx context.Context, endpoint string) (*IPCTransport, error) {
	conn, err := newIPCConnection(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return &IPCTransport{conn: conn, dec: json.NewDecoder(conn)}, nil
}

// Send writes payload and decodes the next JSON value from the stream.
func (t *IPCTransport) Send(ctx context.Context, payload []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		t.conn.SetDeadline(deadline)
	} else {
		t.conn.SetDeadline(time.Time{})
	}
	if _, err := t.conn.Write(payload); err != nil {
		return nil, err
	}
	var resp json.RawMessage
	if err := t.dec.Decode(&resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Close closes the underlying connection.
func (t *IPCTransport) Close() error {
	return t.conn.Close()
}
