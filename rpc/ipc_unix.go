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

//go:build darwin || dragonfly || freebsd || linux || nacl || netbsd || openbsd || solaris

package rpc

import (
	"context"
	"fmt"
	"net"
	"syscall"
)

const (
	maxPathSize = len(syscall.RawSockaddrUnix{}.Path)
)

// newIPCConnection will connect to a Unix socket on the given endpoint.
// newIPCConnection 连接到给定端点上的 Unix 套接字。
func newIPCConnection(ctx context.Context, endpoint string) (net.Conn, error) {
	if len(endpoint)+1 > maxPathSize {
		return nil, fmt.Errorf("ipc endpoint is longer than %d characters: %s", maxPathSize-1, endpoint)
	}
	return new(net.Dialer).DialContext(ctx, "unix", endpoint)
}
