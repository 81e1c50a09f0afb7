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
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/sunyihoo/go-web3/common"
)

// Type enumerator. The order follows the registry in which tags are matched:
// uint before int, hash, string (and bytes), real before ureal, then the exact
// names address and bool.
// 类型枚举，顺序与类型注册表匹配前缀的顺序一致。
const (
	UintTy byte = iota
	IntTy
	HashTy
	StringTy
	RealTy
	UrealTy
	AddressTy
	BoolTy
)

// wordBits is the width of one encoded word.
const wordBits = 256

// Type is the reflection of a declared parameter type tag such as "uint256",
// "bytes" or "int128[]".
// Type 是参数类型标签（如 "uint256"、"bytes"、"int128[]"）的解析结果。
type Type struct {
	T       byte // base kind, one of the enumerators above
	Size    int  // bit size for numbers, byte size for fixed strings, 0 when unsized
	IsArray bool // tag ends in "[]"
	IsBytes bool // declared as bytes/bytesN; decodes to []byte instead of string

	stringKind string // holds the unparsed string for deriving signatures
}

var typeRegex = regexp.MustCompile(`^([a-z]+)([0-9]+(?:x[0-9]+)?)?(\[\])?$`)

var baseKinds = map[byte]string{
	UintTy:    "uint",
	IntTy:     "int",
	HashTy:    "hash",
	StringTy:  "string",
	RealTy:    "real",
	UrealTy:   "ureal",
	AddressTy: "address",
	BoolTy:    "bool",
}

// NewType creates a new reflection type of abi type given in t.
// An unregistered tag yields an *UnsupportedTypeError.
// NewType 根据类型标签创建类型；未注册的标签返回 *UnsupportedTypeError。
func NewType(t string) (typ Type, err error) {
	matches := typeRegex.FindStringSubmatch(t)
	if matches == nil {
		return Type{}, &UnsupportedTypeError{Type: t}
	}
	var (
		base   = matches[1]
		suffix = matches[2]
	)
	typ.IsArray = matches[3] != ""
	typ.stringKind = t

	switch base {
	case "uint", "int", "hash":
		if typ.Size, err = parseBitSize(t, suffix); err != nil {
			return Type{}, err
		}
		typ.T = map[string]byte{"uint": UintTy, "int": IntTy, "hash": HashTy}[base]
	case "string", "bytes":
		typ.T = StringTy
		typ.IsBytes = base == "bytes"
		if suffix != "" {
			size, err := strconv.Atoi(suffix)
			if err != nil || size < 1 || size > 32 {
				return Type{}, &UnsupportedTypeError{Type: t}
			}
			typ.Size = size
		}
	case "real", "ureal":
		if suffix != "" && suffix != "128x128" {
			return Type{}, &UnsupportedTypeError{Type: t}
		}
		typ.T, typ.Size = RealTy, wordBits
		if base == "ureal" {
			typ.T = UrealTy
		}
	case "address":
		if suffix != "" {
			return Type{}, &UnsupportedTypeError{Type: t}
		}
		typ.T, typ.Size = AddressTy, 160
	case "bool":
		if suffix != "" {
			return Type{}, &UnsupportedTypeError{Type: t}
		}
		typ.T = BoolTy
	default:
		return Type{}, &UnsupportedTypeError{Type: t}
	}
	// Arrays carry one word per element, so the element itself must be static.
	if typ.IsArray && typ.T == StringTy && typ.Size == 0 {
		return Type{}, &UnsupportedTypeError{Type: t}
	}
	return typ, nil
}

// parseBitSize parses the numeric suffix of uint/int/hash tags. No suffix
// means a full word.
func parseBitSize(t, suffix string) (int, error) {
	if suffix == "" {
		return wordBits, nil
	}
	size, err := strconv.Atoi(suffix)
	if err != nil || size == 0 || size > wordBits || size%8 != 0 {
		return 0, &UnsupportedTypeError{Type: t}
	}
	return size, nil
}

// MustNewType is like NewType but panics on an unsupported tag. It simplifies
// safe initialization of package-level types.
func MustNewType(t string) Type {
	typ, err := NewType(t)
	if err != nil {
		panic(err)
	}
	return typ
}

// String implements Stringer.
func (t Type) String() (out string) {
	return t.stringKind
}

// Kind returns the base kind name: uint, int, hash, string, real, ureal,
// address or bool.
func (t Type) Kind() string {
	return baseKinds[t.T]
}

// IsDynamic reports whether the type contributes a length word to the header
// block instead of a single fixed word.
// IsDynamic 报告该类型是否在头部块中贡献一个长度字，而不是单个固定字。
func (t Type) IsDynamic() bool {
	return t.IsArray || (t.T == StringTy && t.Size == 0)
}

// elem returns the element type of an array type.
func (t Type) elem() Type {
	e := t
	e.IsArray = false
	e.stringKind = strings.TrimSuffix(t.stringKind, "[]")
	return e
}

// isSigned reports whether the word is interpreted as two's complement.
func (t Type) isSigned() bool {
	return t.T == IntTy || t.T == RealTy
}

// GetType returns the Go type decoded values of t have.
func (t Type) GetType() reflect.Type {
	if t.IsArray {
		return reflect.SliceOf(t.elem().GetType())
	}
	switch t.T {
	case UintTy, IntTy:
		return reflect.TypeOf(new(big.Int))
	case HashTy:
		return reflect.TypeOf("")
	case StringTy:
		if t.IsBytes {
			return reflect.TypeOf([]byte(nil))
		}
		return reflect.TypeOf("")
	case RealTy, UrealTy:
		return reflect.TypeOf(new(big.Float))
	case AddressTy:
		return reflect.TypeOf(common.Address{})
	case BoolTy:
		return reflect.TypeOf(false)
	default:
		panic(fmt.Sprintf("invalid type %d", t.T))
	}
}
