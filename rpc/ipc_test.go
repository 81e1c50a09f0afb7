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

//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPCTransport(t *testing.T) {
	node := newTestNode()
	node.result("eth_peerCount", 5)

	endpoint := filepath.Join(t.TempDir(), "web3.ipc")
	l, err := net.Listen("unix", endpoint)
	require.NoError(t, err)
	defer l.Close()

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		dec := json.NewDecoder(bufio.NewReader(conn))
		for {
			var req json.RawMessage
			if err := dec.Decode(&req); err != nil {
				return
			}
			conn.Write(node.serve(req))
		}
	}()

	tr, err := DialTransport(context.Background(), endpoint)
	require.NoError(t, err)
	m := NewManager(tr, Config{})
	defer m.Close()

	for i := 0; i < 2; i++ {
		var peers int
		require.NoError(t, m.Call(context.Background(), &peers, "eth_peerCount"))
		assert.Equal(t, 5, peers)
	}
}

func TestIPCDialMissing(t *testing.T) {
	_, err := DialIPC(context.Background(), filepath.Join(t.TempDir(), "missing.ipc"))
	assert.Error(t, err)
}
