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
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-web3/common"
)

// Word layout:
// every static value occupies one 32-byte word, numbers are big-endian and
// left padded, strings are left aligned and right padded. Dynamic values emit
// a length word into the header block and their payload after it.
// 所有静态值占一个 32 字节字；动态值在头部块写入长度字，载荷写在其后。

// fixedPointShift is the number of fractional bits of the Q128.128 encoding.
const fixedPointShift = 128

// packNum packs n into a single word. Negative values are written as their
// 256-bit two's complement: mask - |n| + 1 where mask is 2^256 - 1.
// packNum 将 n 打包为一个字；负数使用 256 位补码（掩码 - |n| + 1）。
func packNum(n *big.Int) []byte {
	if n.Sign() < 0 {
		abs := new(big.Int).Neg(n)
		n = new(big.Int).Sub(common.MaxUint256, abs)
		n.Add(n, common.Big1)
	}
	word, overflow := uint256.FromBig(n)
	if overflow {
		panic("abi: packNum called with a value wider than one word")
	}
	b := word.Bytes32()
	return b[:]
}

// packLength packs the length word of a dynamic value.
func packLength(l int) []byte {
	return packNum(big.NewInt(int64(l)))
}

// checkRange verifies that n fits the word for the signedness of t.
func checkRange(t Type, n *big.Int) error {
	if t.isSigned() {
		if n.Cmp(common.MinInt256) < 0 || n.Cmp(common.TT255) >= 0 {
			return fmt.Errorf("%w: %v does not fit %v", errOverflow, n, t)
		}
		return nil
	}
	if n.Sign() < 0 {
		return fmt.Errorf("%w: %v for %v", errNegativeUnsigned, n, t)
	}
	if n.Cmp(common.TT256) >= 0 {
		return fmt.Errorf("%w: %v does not fit %v", errOverflow, n, t)
	}
	return nil
}

// toBig coerces v into an arbitrary precision integer. It accepts native Go
// integers and floats (truncated toward zero), big and uint256 integers,
// decimal or 0x-prefixed hex strings, addresses and hashes.
// toBig 将 v 转换为大整数：支持原生整数、浮点数（向零截断）、大整数、十进制或 0x 十六进制字符串、地址和哈希。
func toBig(t Type, v interface{}) (*big.Int, error) {
	switch v := v.(type) {
	case *big.Int:
		if v == nil {
			return nil, typeErr(t, v)
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case *uint256.Int:
		if v == nil {
			return nil, typeErr(t, v)
		}
		return v.ToBig(), nil
	case float64:
		return floatToBig(t, v)
	case float32:
		return floatToBig(t, float64(v))
	case string:
		return parseBig(t, v)
	case common.Address:
		return v.Big(), nil
	case common.Hash:
		return v.Big(), nil
	case []byte:
		if len(v) > 32 {
			return nil, typeErr(t, v)
		}
		return new(big.Int).SetBytes(v), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, typeErr(t, v)
}

func floatToBig(t Type, f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, typeErr(t, f)
	}
	n, _ := big.NewFloat(f).Int(nil)
	return n, nil
}

// parseBig parses a decimal or 0x-prefixed hex string. A bare "0x" is zero.
func parseBig(t Type, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	var (
		n  = new(big.Int)
		ok bool
	)
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		if body = body[2:]; body == "" {
			return n, nil
		}
		_, ok = n.SetString(body, 16)
	} else {
		_, ok = n.SetString(body, 10)
	}
	if !ok {
		return nil, typeErr(t, s)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// toRat coerces v into an exact rational for the fixed point path.
func toRat(t Type, v interface{}) (*big.Rat, error) {
	switch v := v.(type) {
	case *big.Float:
		if v == nil || v.IsInf() {
			return nil, typeErr(t, v)
		}
		r, _ := v.Rat(nil)
		return r, nil
	case *big.Rat:
		if v == nil {
			return nil, typeErr(t, v)
		}
		return new(big.Rat).Set(v), nil
	case float64, float32:
		f := reflect.ValueOf(v).Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, typeErr(t, v)
		}
		return new(big.Rat).SetFloat64(f), nil
	case string:
		r, ok := new(big.Rat).SetString(strings.TrimSpace(v))
		if !ok {
			return nil, typeErr(t, v)
		}
		return r, nil
	}
	n, err := toBig(t, v)
	if err != nil {
		return nil, err
	}
	return new(big.Rat).SetInt(n), nil
}

// toFixed converts v into its Q128.128 integer, truncated toward zero.
func toFixed(t Type, v interface{}) (*big.Int, error) {
	r, err := toRat(t, v)
	if err != nil {
		return nil, err
	}
	num := new(big.Int).Lsh(r.Num(), fixedPointShift)
	return num.Quo(num, r.Denom()), nil
}

// toBytes accepts strings and byte slices for the string kinds.
func toBytes(t Type, v interface{}) ([]byte, error) {
	switch v := v.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return b, nil
	}
	return nil, typeErr(t, v)
}

// packElement packs a single static value of type t into one word.
// packElement 将类型 t 的单个静态值打包为一个字。
func packElement(t Type, v interface{}) ([]byte, error) {
	switch t.T {
	case UintTy, IntTy, HashTy, AddressTy:
		n, err := toBig(t, v)
		if err != nil {
			return nil, err
		}
		if err := checkRange(t, n); err != nil {
			return nil, err
		}
		return packNum(n), nil
	case RealTy, UrealTy:
		n, err := toFixed(t, v)
		if err != nil {
			return nil, err
		}
		if err := checkRange(t, n); err != nil {
			return nil, err
		}
		return packNum(n), nil
	case BoolTy:
		b, ok := v.(bool)
		if !ok {
			return nil, typeErr(t, v)
		}
		if b {
			return packNum(common.Big1), nil
		}
		return packNum(common.Big0), nil
	case StringTy:
		b, err := toBytes(t, v)
		if err != nil {
			return nil, err
		}
		if len(b) > t.Size {
			return nil, fmt.Errorf("abi: cannot use %d bytes as %v", len(b), t)
		}
		return common.RightPadBytes(b, 32), nil
	default:
		return nil, &UnsupportedTypeError{Type: t.String()}
	}
}

// packValue packs v according to t. For dynamic types it also reports the
// length that belongs in the header block.
func packValue(t Type, v interface{}) (length int, data []byte, err error) {
	switch {
	case t.IsArray:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return 0, nil, typeErr(t, v)
		}
		elem := t.elem()
		for i := 0; i < rv.Len(); i++ {
			word, err := packElement(elem, rv.Index(i).Interface())
			if err != nil {
				return 0, nil, fmt.Errorf("abi: element %d of %v: %w", i, t, err)
			}
			data = append(data, word...)
		}
		return rv.Len(), data, nil
	case t.IsDynamic():
		b, err := toBytes(t, v)
		if err != nil {
			return 0, nil, err
		}
		return len(b), common.RightPadBytes(b, (len(b)+31)/32*32), nil
	default:
		word, err := packElement(t, v)
		return 0, word, err
	}
}
