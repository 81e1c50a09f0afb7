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

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
)

// ReadInteger reads a word as an integer of type t. Signed kinds inspect the
// top bit of the word and, when set, subtract 2^256.
// ReadInteger 读取整数；有符号类型检查最高位，置位时减去 2^256。
func ReadInteger(t Type, word []byte) *big.Int {
	ret := new(uint256.Int).SetBytes32(word).ToBig()
	if t.isSigned() && word[0]&0x80 != 0 {
		ret.Sub(ret, common.TT256)
	}
	return ret
}

// readFixed reads a Q128.128 word as an exact big.Float.
func readFixed(t Type, word []byte) *big.Float {
	f := new(big.Float).SetInt(ReadInteger(t, word))
	return f.SetMantExp(f, -fixedPointShift)
}

// readBool compares the word against the canonical one word.
func readBool(word []byte) bool {
	for _, b := range word[:31] {
		if b != 0 {
			return false
		}
	}
	return word[31] == 1
}

// readElement decodes a single static word of type t.
func readElement(t Type, word []byte) interface{} {
	switch t.T {
	case UintTy, IntTy:
		return ReadInteger(t, word)
	case HashTy:
		return hexutil.Encode(word)
	case AddressTy:
		return common.BytesToAddress(word[12:])
	case BoolTy:
		return readBool(word)
	case RealTy, UrealTy:
		return readFixed(t, word)
	case StringTy:
		if t.IsBytes {
			return common.CopyBytes(word[:t.Size])
		}
		return common.ToASCII(word[:t.Size])
	}
	panic(fmt.Sprintf("abi: invalid type %d", t.T))
}

// zeroValue returns the value an empty "0x" payload decodes to.
// zeroValue 返回空的 "0x" 载荷解码得到的零值。
func zeroValue(t Type) interface{} {
	if t.IsArray {
		return reflect.MakeSlice(t.GetType(), 0, 0).Interface()
	}
	switch t.T {
	case UintTy, IntTy:
		return new(big.Int)
	case HashTy:
		return common.Hash{}.Hex()
	case AddressTy:
		return common.Address{}
	case BoolTy:
		return false
	case RealTy, UrealTy:
		return new(big.Float)
	case StringTy:
		if t.IsBytes {
			return []byte{}
		}
		return ""
	}
	panic(fmt.Sprintf("abi: invalid type %d", t.T))
}

// readLength reads a header length word, bounding it by the payload size.
func readLength(t Type, word []byte, limit int) (int, error) {
	n := new(big.Int).SetBytes(word)
	if !n.IsInt64() || n.Int64() > int64(limit) {
		return 0, fmt.Errorf("abi: length %v of %v exceeds payload of %d bytes", n, t, limit)
	}
	return int(n.Int64()), nil
}

// unpackValue decodes the value of t at offset off, given the length read
// from the header for dynamic types. It returns the value and the number of
// bytes consumed.
func unpackValue(t Type, data []byte, off, length int) (interface{}, int, error) {
	switch {
	case t.IsArray:
		need := 32 * length
		if off+need > len(data) {
			return nil, 0, shortErr(t, off+need, len(data))
		}
		elem := t.elem()
		slice := reflect.MakeSlice(t.GetType(), length, length)
		for i := 0; i < length; i++ {
			word := data[off+32*i : off+32*(i+1)]
			slice.Index(i).Set(reflect.ValueOf(readElement(elem, word)))
		}
		return slice.Interface(), need, nil
	case t.IsDynamic():
		need := (length + 31) / 32 * 32
		if off+need > len(data) {
			return nil, 0, shortErr(t, off+need, len(data))
		}
		content := data[off : off+length]
		if t.IsBytes {
			return common.CopyBytes(content), need, nil
		}
		return string(content), need, nil
	default:
		if off+32 > len(data) {
			return nil, 0, shortErr(t, off+32, len(data))
		}
		return readElement(t, data[off:off+32]), 32, nil
	}
}
