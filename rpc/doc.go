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

/*
Package rpc implements the client side of JSON-RPC 2.0 for the web3 library.

A Manager owns the outbound side of a client session. It numbers requests,
hands them to a pluggable Transport and unwraps the response envelope. It also
runs the polling loop that replaces push notifications: filters register a
recurring request, and on every tick the manager sends each registered request
once and hands non-empty list results to the registered callback.

# Transports

A Transport moves one encoded request to the node and returns the raw reply.
HTTP, websocket and IPC (UNIX sockets, named pipes on Windows) transports are
provided and DialTransport picks one by URL scheme:

	tr, err := rpc.DialTransport(ctx, "http://localhost:8080")
	m := rpc.NewManager(tr, rpc.Config{})

	var coinbase string
	err = m.Call(ctx, &coinbase, "eth_coinbase")

TransportFunc and NewInProcTransport attach a manager to code running in the
same process.

# Polling

	m.StartPolling(rpc.Request{Method: "eth_changed", Params: []interface{}{id}}, key, callback)
	go m.Run(ctx)

The loop re-arms its timer only after a tick has finished. Results that are
errors, not lists, or empty lists are dropped: an empty change set is the
normal answer when nothing happened since the last poll.

Package rpc 实现 web3 库的 JSON-RPC 2.0 客户端：Manager 负责请求编号、传输层和轮询循环。
*/
package rpc
