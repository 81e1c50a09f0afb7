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
	"errors"
)

// InProcHandler serves one decoded request inside the calling process.
// Returned errors implementing Error keep their code, DataError keeps its data.
// InProcHandler 在当前进程内处理一个已解码的请求。
type InProcHandler func(ctx context.Context, method string, params []json.RawMessage) (interface{}, error)

// NewInProcTransport attaches the manager directly to an in-process handler,
// bypassing any network stack. It wraps every reply into a JSON-RPC envelope.
// NewInProcTransport 将管理器直接连接到进程内处理函数，绕过网络栈。
func NewInProcTransport(handler InProcHandler) Transport {
	return TransportFunc(func(ctx context.Context, payload []byte) ([]byte, error) {
		var msg jsonrpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return json.Marshal(errorMessage(nil, &jsonError{Code: errcodeParse, Message: err.Error()}))
		}
		var params []json.RawMessage
		if len(msg.Params) > 0 {
			if err := json.Unmarshal(msg.Params, &params); err != nil {
				return json.Marshal(errorMessage(msg.ID, &jsonError{Code: errcodeInvalidParams, Message: err.Error()}))
			}
		}
		result, err := handler(ctx, msg.Method, params)
		if err != nil {
			return json.Marshal(errorMessage(msg.ID, err))
		}
		enc, err := json.Marshal(result)
		if err != nil {
			return json.Marshal(errorMessage(msg.ID, &jsonError{Code: errcodeInternal, Message: err.Error()}))
		}
		return json.Marshal(&jsonrpcMessage{Version: vsn, ID: msg.ID, Result: enc})
	})
}

// errorMessage builds an error response for id, carrying the code and data
// of err when it provides them.
func errorMessage(id json.RawMessage, err error) *jsonrpcMessage {
	if id == nil {
		id = json.RawMessage("null")
	}
	msg := &jsonrpcMessage{Version: vsn, ID: id, Error: &jsonError{
		Code:    errcodeDefault,
		Message: err.Error(),
	}}
	var ec Error
	if errors.As(err, &ec) {
		msg.Error.Code = ec.ErrorCode()
	}
	var de DataError
	if errors.As(err, &de) {
		msg.Error.Data = de.ErrorData()
	}
	return msg
}
