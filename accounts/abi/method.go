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
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/sunyihoo/go-web3/crypto"
)

// selectorCacheSize bounds the number of memoized selector hashes.
const selectorCacheSize = 1024

var selectorCache *lru.Cache

func init() {
	var err error
	if selectorCache, err = lru.New(selectorCacheSize); err != nil {
		panic(err)
	}
}

// Method represents a callable given a `Name` and whether the method is a constant.
// If the method is `Const` no transaction needs to be created for this
// particular Method call. It can easily be simulated using a local VM.
// For example a `Balance()` method only needs to retrieve something
// from the storage and therefore requires no Tx to be sent to the
// network. A method such as `Transact` does require a Tx and thus will
// be flagged `false`.
// Input specifies the required input parameters for this gives method.
// Method 表示一个可调用的方法；Constant 为真时无需创建交易，只需只读调用。
type Method struct {
	// Name is the canonical `display(type,type,...)` form. When the descriptor
	// carried a parenthesized name it is kept verbatim, otherwise it is
	// derived from the declared input types.
	// Name 为规范的 `display(type,...)` 形式。
	Name     string
	Constant bool
	Inputs   Arguments
	Outputs  Arguments

	// ID is the 4-byte selector hash of Name.
	ID []byte
}

// NewMethod creates a new Method. A name without a parenthesized part is
// normalized using the declared input types.
// NewMethod 创建新的方法描述符；若名称不含括号部分，则根据输入类型规范化。
func NewMethod(name string, constant bool, inputs, outputs Arguments) Method {
	if !strings.Contains(name, "(") {
		name = fmt.Sprintf("%v(%v)", name, strings.Join(inputs.Types(), ","))
	}
	return Method{
		Name:     name,
		Constant: constant,
		Inputs:   inputs,
		Outputs:  outputs,
		ID:       Selector(name),
	}
}

// DisplayName returns the method name without its parameter list.
func (method Method) DisplayName() string {
	return DisplayName(method.Name)
}

// OverloadSignature returns the comma separated parameter types of the method.
func (method Method) OverloadSignature() string {
	return OverloadSignature(method.Name)
}

// String returns a human readable form of the method, e.g.
// "function balance(address) constant returns(uint256)".
func (method Method) String() string {
	var constant string
	if method.Constant {
		constant = "constant "
	}
	return fmt.Sprintf("function %v %vreturns(%v)", method.Name, constant, strings.Join(method.Outputs.Types(), ", "))
}

// DisplayName returns the substring before the first "(", or name itself when
// there is no parameter list.
// DisplayName 返回第一个 "(" 之前的部分；没有括号时原样返回。
func DisplayName(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		return name[:i]
	}
	return name
}

// OverloadSignature returns the substring strictly between the first "(" and
// the last ")", or "" when name carries no parameter list.
// OverloadSignature 返回第一个 "(" 与最后一个 ")" 之间的部分。
func OverloadSignature(name string) string {
	open, closing := strings.IndexByte(name, '('), strings.LastIndexByte(name, ')')
	if open < 0 || closing <= open {
		return ""
	}
	return name[open+1 : closing]
}

// Selector returns the first four bytes of the Keccak-256 hash of the
// canonical method name. Results are memoized.
// Selector 返回规范方法名 Keccak-256 哈希的前 4 字节，结果会被缓存。
func Selector(name string) []byte {
	if id, ok := selectorCache.Get(name); ok {
		sel := id.([4]byte)
		return sel[:]
	}
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(name))[:4])
	selectorCache.Add(name, sel)
	return sel[:]
}

// SelectorHash returns the 0x-prefixed hex form of Selector, e.g.
// SelectorHash("transfer(address,uint256)") == "0xa9059cbb".
func SelectorHash(name string) string {
	return hexutil.Encode(Selector(name))
}
