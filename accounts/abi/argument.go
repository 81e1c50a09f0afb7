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
	"encoding/json"
	"fmt"
)

// Argument holds the name of the argument and the corresponding type.
// Types are used when packing and testing arguments.
// Argument 结构体保存参数的名称和对应的类型。这些类型在打包和测试参数时使用。
type Argument struct {
	Name string
	Type Type
}

type Arguments []Argument

type ArgumentMarshaling struct {
	Name string
	Type string
}

// UnmarshalJSON implements json.Unmarshaler interface.
// UnmarshalJSON 方法实现了 json.Unmarshaler 接口。
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}
	argument.Type, err = NewType(arg.Type)
	if err != nil {
		return err
	}
	argument.Name = arg.Name
	return nil
}

// MarshalJSON writes the argument back in descriptor form.
func (argument Argument) MarshalJSON() ([]byte, error) {
	return json.Marshal(ArgumentMarshaling{Name: argument.Name, Type: argument.Type.String()})
}

// NewArguments builds an argument list from bare type tags.
func NewArguments(types ...string) (Arguments, error) {
	args := make(Arguments, len(types))
	for i, t := range types {
		typ, err := NewType(t)
		if err != nil {
			return nil, err
		}
		args[i] = Argument{Type: typ}
	}
	return args, nil
}

// Types returns the declared type tags in order.
func (arguments Arguments) Types() []string {
	types := make([]string, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type.String()
	}
	return types
}

// numDynamic counts the arguments that contribute a header word.
func (arguments Arguments) numDynamic() int {
	n := 0
	for _, arg := range arguments {
		if arg.Type.IsDynamic() {
			n++
		}
	}
	return n
}

// Pack performs the operation Go format -> Hexdata.
//
// A first pass emits one length word per dynamic argument, in declaration
// order, into the header block. A second pass appends every argument's
// payload after it.
// Pack 方法将 Go 格式的参数打包：先按声明顺序为每个动态参数写入长度字到头部块，再依次附加各参数的载荷。
func (arguments Arguments) Pack(args ...interface{}) ([]byte, error) {
	if len(args) != len(arguments) {
		return nil, fmt.Errorf("%w: got %d for %d", errArgCount, len(args), len(arguments))
	}
	var (
		header  = make([]byte, 0, 32*arguments.numDynamic())
		payload []byte
	)
	for i, abiArg := range arguments {
		length, packed, err := packValue(abiArg.Type, args[i])
		if err != nil {
			return nil, err
		}
		if abiArg.Type.IsDynamic() {
			header = append(header, packLength(length)...)
		}
		payload = append(payload, packed...)
	}
	return append(header, payload...), nil
}

// Unpack performs the operation hexdata -> Go format.
//
// An empty payload (the "0x" reply) decodes every argument to its zero value.
// Unpack 方法将 ABI 编码数据解包为 Go 格式；空载荷（"0x"）解码为各参数的零值。
func (arguments Arguments) Unpack(data []byte) ([]interface{}, error) {
	ret := make([]interface{}, 0, len(arguments))
	if len(data) == 0 {
		for _, arg := range arguments {
			ret = append(ret, zeroValue(arg.Type))
		}
		return ret, nil
	}
	if len(data)%32 != 0 {
		return nil, fmt.Errorf("%w: got %d", errBadLength, len(data))
	}
	headerSize := 32 * arguments.numDynamic()
	if headerSize > len(data) {
		return nil, fmt.Errorf("abi: header of %d bytes exceeds payload of %d bytes", headerSize, len(data))
	}
	var (
		header = data[:headerSize]
		offset = headerSize
	)
	for _, arg := range arguments {
		length := 0
		if arg.Type.IsDynamic() {
			var err error
			if length, err = readLength(arg.Type, header[:32], len(data)); err != nil {
				return nil, err
			}
			header = header[32:]
		}
		value, consumed, err := unpackValue(arg.Type, data, offset, length)
		if err != nil {
			return nil, err
		}
		ret = append(ret, value)
		offset += consumed
	}
	return ret, nil
}

// UnpackIntoMap performs the operation hexdata -> mapping of argument name to
// argument value. Unnamed arguments are keyed by their position.
// UnpackIntoMap 将数据解包为参数名到参数值的映射，未命名参数以位置为键。
func (arguments Arguments) UnpackIntoMap(v map[string]interface{}, data []byte) error {
	values, err := arguments.Unpack(data)
	if err != nil {
		return err
	}
	for i, arg := range arguments {
		key := arg.Name
		if key == "" {
			key = fmt.Sprintf("%d", i)
		}
		v[key] = values[i]
	}
	return nil
}
