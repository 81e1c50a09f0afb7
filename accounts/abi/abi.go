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

package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// The ABI holds information about a contract's context and available
// invocable methods. It will allow you to type check function calls and
// packs data accordingly.
//
// Methods keep the order of the descriptor list: overloads share a display
// name and lookups scan the list front to back.
// ABI 包含合约可调用方法的信息；Methods 保持描述符列表的顺序。
type ABI struct {
	Methods []Method
}

// JSON returns a parsed ABI interface and error if it failed.
// JSON 返回解析后的 ABI 接口，如果失败则返回错误。
func JSON(reader io.Reader) (ABI, error) {
	dec := json.NewDecoder(reader)

	var abi ABI
	if err := dec.Decode(&abi); err != nil {
		return ABI{}, err
	}
	return abi, nil
}

// Resolve returns the index of the first method whose canonical name equals
// name. The boolean is false when there is no such method.
// Resolve 线性查找规范名等于 name 的第一个方法。
func (abi ABI) Resolve(name string) (int, bool) {
	for i, method := range abi.Methods {
		if method.Name == name {
			return i, true
		}
	}
	return -1, false
}

// MethodByName looks a method up by its canonical name, falling back to the
// first method with a matching display name.
func (abi ABI) MethodByName(name string) (*Method, error) {
	if i, ok := abi.Resolve(name); ok {
		return &abi.Methods[i], nil
	}
	if !strings.Contains(name, "(") {
		for i := range abi.Methods {
			if abi.Methods[i].DisplayName() == name {
				return &abi.Methods[i], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMethodNotFound, name)
}

// Pack the given method name to conform the ABI. Method call's data
// will consist of method_id, header, args0, arg1, ... argN. Method id consists
// of 4 bytes and every header and argument word is 32 bytes.
// Pack 将方法调用打包为 method_id ‖ 头部块 ‖ 参数载荷。
func (abi ABI) Pack(name string, args ...interface{}) ([]byte, error) {
	method, err := abi.MethodByName(name)
	if err != nil {
		return nil, err
	}
	arguments, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("abi: packing %v: %w", method.Name, err)
	}
	return append(bytes.Clone(method.ID), arguments...), nil
}

// Unpack decodes the output of the named method.
func (abi ABI) Unpack(name string, data []byte) ([]interface{}, error) {
	method, err := abi.MethodByName(name)
	if err != nil {
		return nil, err
	}
	return method.Outputs.Unpack(data)
}

// UnpackIntoMap decodes the output of the named method into v keyed by
// output name.
func (abi ABI) UnpackIntoMap(v map[string]interface{}, name string, data []byte) error {
	method, err := abi.MethodByName(name)
	if err != nil {
		return err
	}
	return method.Outputs.UnpackIntoMap(v, data)
}

// UnmarshalJSON implements json.Unmarshaler interface. Entries declaring a
// type other than "function" (events, constructors) are skipped.
// UnmarshalJSON 实现 json.Unmarshaler 接口，忽略非 function 的条目。
func (abi *ABI) UnmarshalJSON(data []byte) error {
	var fields []struct {
		Type    string
		Name    string
		Inputs  []Argument
		Outputs []Argument

		// Status indicator which can be: "pure", "view",
		// "nonpayable" or "payable".
		StateMutability string
		Constant        bool
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	abi.Methods = abi.Methods[:0]
	for _, field := range fields {
		if field.Type != "" && field.Type != "function" {
			continue
		}
		constant := field.Constant || field.StateMutability == "view" || field.StateMutability == "pure"
		abi.Methods = append(abi.Methods, NewMethod(field.Name, constant, field.Inputs, field.Outputs))
	}
	return nil
}

// MarshalJSON writes the method list in descriptor form.
func (abi ABI) MarshalJSON() ([]byte, error) {
	type field struct {
		Type     string    `json:"type"`
		Name     string    `json:"name"`
		Constant bool      `json:"constant"`
		Inputs   Arguments `json:"inputs"`
		Outputs  Arguments `json:"outputs"`
	}
	fields := make([]field, len(abi.Methods))
	for i, m := range abi.Methods {
		fields[i] = field{Type: "function", Name: m.Name, Constant: m.Constant, Inputs: m.Inputs, Outputs: m.Outputs}
	}
	return json.Marshal(fields)
}

// MethodById looks up a method by the 4-byte id.
// MethodById 通过 4 字节 ID 查找方法。
func (abi ABI) MethodById(sigdata []byte) (*Method, error) {
	if len(sigdata) < 4 {
		return nil, fmt.Errorf("data too short (%d bytes) for abi method lookup", len(sigdata))
	}
	for i := range abi.Methods {
		if bytes.Equal(abi.Methods[i].ID, sigdata[:4]) {
			return &abi.Methods[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no method with id %#x", ErrMethodNotFound, sigdata[:4])
}

// Encode packs a single value of the given type tag, header word included.
// Encode 按类型标签编码单个值（包含头部长度字）。
func Encode(typ string, v interface{}) ([]byte, error) {
	args, err := NewArguments(typ)
	if err != nil {
		return nil, err
	}
	return args.Pack(v)
}

// Decode unpacks a single value of the given type tag.
func Decode(typ string, data []byte) (interface{}, error) {
	args, err := NewArguments(typ)
	if err != nil {
		return nil, err
	}
	values, err := args.Unpack(data)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}
