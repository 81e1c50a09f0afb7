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

package node

import (
	"errors"
	"fmt"
)

var (
	ErrNodeStopped = errors.New("node not started")     // 节点未启动
	ErrNodeRunning = errors.New("node already running") // 节点已在运行
	ErrNodeClosed  = errors.New("node closed")          // 节点已关闭

	errBadJWTSecret = errors.New("invalid JWT secret")
)

// StopError is returned if a Node fails to release any of its filters,
// lifecycles or its transport.
// StopError 是在节点无法释放其过滤器、服务或传输层时返回的错误。
type StopError struct {
	Filters    []error // 卸载过滤器时的错误
	Lifecycles []error // 停止服务时的错误
	Transport  error   // 关闭传输层时的错误
}

// Error generates a textual representation of the stop error.
func (e *StopError) Error() string {
	return fmt.Sprintf("filters: %v, lifecycles: %v, transport: %v", e.Filters, e.Lifecycles, e.Transport)
}

// Unwrap returns every underlying error.
func (e *StopError) Unwrap() []error {
	errs := append(append([]error{}, e.Filters...), e.Lifecycles...)
	if e.Transport != nil {
		errs = append(errs, e.Transport)
	}
	return errs
}
