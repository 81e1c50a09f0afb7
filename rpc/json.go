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
	"encoding/json"
	"fmt"
	"strconv"
)

const vsn = "2.0" // 表示协议版本号，遵循 JSON-RPC 2.0 规范。

// A value of this type can a JSON-RPC request, notification, successful response or
// error response. Which one it is depends on the fields.
// 该类型的值可以是 JSON-RPC 请求、成功响应或错误响应，取决于字段。
type jsonrpcMessage struct {
	Version string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Error   *jsonError      `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

func (msg *jsonrpcMessage) String() string {
	b, _ := json.Marshal(msg)
	return string(b)
}

type jsonError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (err *jsonError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("json-rpc error %d", err.Code)
	}
	return err.Message
}

func (err *jsonError) ErrorCode() int {
	return err.Code
}

func (err *jsonError) ErrorData() interface{} {
	return err.Data
}

// Request is a method call template: the method name and its positional
// parameters. The manager assigns the id when the request is sent.
// Request 是方法调用模板；id 在发送时由管理器分配。
type Request struct {
	Method string
	Params []interface{}
}

// newMessage encodes req as a JSON-RPC 2.0 call with the given id.
func newMessage(id uint64, req Request) ([]byte, error) {
	msg := &jsonrpcMessage{
		Version: vsn,
		ID:      strconv.AppendUint(nil, id, 10),
		Method:  req.Method,
	}
	params := req.Params
	if params == nil {
		params = []interface{}{}
	}
	var err error
	if msg.Params, err = json.Marshal(params); err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

// parseResponse validates a raw response envelope and returns its result.
// An error member is returned as a *jsonError.
// parseResponse 校验响应信封并返回 result；error 成员以 *jsonError 返回。
func parseResponse(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedResponse)
	}
	var msg jsonrpcMessage
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if msg.Error != nil {
		return nil, msg.Error
	}
	if len(msg.Result) == 0 {
		return nil, fmt.Errorf("%w: missing result", ErrMalformedResponse)
	}
	return msg.Result, nil
}

// nonEmptyList reports whether result is a JSON array with at least one element.
func nonEmptyList(result json.RawMessage) ([]json.RawMessage, bool) {
	var list []json.RawMessage
	if err := json.Unmarshal(result, &list); err != nil || len(list) == 0 {
		return nil, false
	}
	return list, true
}
