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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "transfer", DisplayName("transfer(address,uint256)"))
	assert.Equal(t, "transfer", DisplayName("transfer"))
	assert.Equal(t, "", DisplayName("(uint256)"))
}

func TestOverloadSignature(t *testing.T) {
	assert.Equal(t, "address,uint256", OverloadSignature("transfer(address,uint256)"))
	assert.Equal(t, "", OverloadSignature("transfer()"))
	assert.Equal(t, "", OverloadSignature("transfer"))
	assert.Equal(t, "", OverloadSignature("transfer)("))
	assert.Equal(t, "f(x)", OverloadSignature("g(f(x))"))
}

func TestSelectorHash(t *testing.T) {
	tests := map[string]string{
		"transfer(address,uint256)": "0xa9059cbb",
		"balanceOf(address)":        "0x70a08231",
		"baz(uint32,bool)":          "0xcdcd77c0",
		"sam(bytes,bool,uint256[])": "0xa5643bf2",
	}
	for name, want := range tests {
		assert.Equal(t, want, SelectorHash(name), name)
		// second lookup is served from the cache
		assert.Equal(t, want, SelectorHash(name), name)
	}
}

func TestSelectorIsCopied(t *testing.T) {
	sel := Selector("balanceOf(address)")
	sel[0] = 0
	assert.Equal(t, "0x70a08231", SelectorHash("balanceOf(address)"))
}

func TestNewMethodNormalizesName(t *testing.T) {
	inputs, _ := NewArguments("address", "uint256")
	m := NewMethod("transfer", false, inputs, nil)
	assert.Equal(t, "transfer(address,uint256)", m.Name)
	assert.Equal(t, "transfer", m.DisplayName())
	assert.Equal(t, "address,uint256", m.OverloadSignature())
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, m.ID)

	// an explicit signature is kept verbatim
	m = NewMethod("transfer(address,uint)", false, inputs, nil)
	assert.Equal(t, "transfer(address,uint)", m.Name)
}

func TestMethodString(t *testing.T) {
	outputs, _ := NewArguments("uint256")
	m := NewMethod("balance", true, nil, outputs)
	assert.Equal(t, "function balance() constant returns(uint256)", m.String())
}
