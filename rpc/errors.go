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
	"errors"
	"fmt"
)

var (
	// ErrTransportUnconfigured is returned by Send when no transport has been
	// attached to the manager.
	// ErrTransportUnconfigured 在管理器尚未配置传输层时由 Send 返回。
	ErrTransportUnconfigured = errors.New("rpc: no transport configured")

	// ErrMalformedResponse is returned when the transport answers with a payload
	// that is not a JSON-RPC response object.
	ErrMalformedResponse = errors.New("rpc: malformed response")
)

// HTTPError is returned by the HTTP transport if a HTTP status code other
// than 2xx was received.
// HTTPError 在 HTTP 传输收到非 2xx 状态码时返回。
type HTTPError struct {
	StatusCode int    // 存储 HTTP 响应的状态码（例如 404, 500）。
	Status     string // 存储 HTTP 响应的状态文本描述（例如 "Not Found"）。
	Body       []byte // 存储 HTTP 响应的响应体内容。
}

func (err HTTPError) Error() string {
	if len(err.Body) == 0 {
		return err.Status
	}
	return fmt.Sprintf("%v: %s", err.Status, err.Body)
}

// Error wraps RPC errors, which contain an error code in addition to the message.
// Error 封装 RPC 错误，除消息外还包含错误代码。
type Error interface {
	Error() string  // returns the message
	ErrorCode() int // returns the code
}

// A DataError contains some data in addition to the error message.
type DataError interface {
	Error() string          // returns the message
	ErrorData() interface{} // returns the error data
}

// Standard JSON-RPC 2.0 error codes.
const (
	errcodeParse          = -32700
	errcodeInvalidRequest = -32600
	errcodeMethodNotFound = -32601
	errcodeInvalidParams  = -32602
	errcodeInternal       = -32603
	errcodeDefault        = -32000
)

var _ Error = new(jsonError)
var _ DataError = new(jsonError)

// IsMethodNotFound reports whether err is an RPC error telling that the
// remote node does not serve the requested method.
func IsMethodNotFound(err error) bool {
	var rpcErr Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == errcodeMethodNotFound
}
