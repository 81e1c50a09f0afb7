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
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-web3/common"
)

const jsondata = `
[
	{ "name" : "test", "constant" : true, "inputs" : [ { "name" : "a", "type" : "uint256" } ], "outputs" : [ { "name" : "b", "type" : "uint256" } ] },
	{ "type" : "function", "name" : "f", "inputs" : [ { "type" : "uint256" } ] },
	{ "type" : "function", "name" : "f", "inputs" : [ { "type" : "bool" } ] },
	{ "type" : "function", "name" : "greet(string)", "stateMutability" : "view", "inputs" : [ { "type" : "string" } ], "outputs" : [ { "type" : "bytes" } ] },
	{ "type" : "event", "name" : "Transfer", "inputs" : [ { "type" : "address" } ] }
]`

func mustJSON(t *testing.T, data string) ABI {
	t.Helper()
	abi, err := JSON(strings.NewReader(data))
	require.NoError(t, err)
	return abi
}

func TestReader(t *testing.T) {
	abi := mustJSON(t, jsondata)
	require.Len(t, abi.Methods, 4)

	names := make([]string, len(abi.Methods))
	for i, m := range abi.Methods {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"test(uint256)", "f(uint256)", "f(bool)", "greet(string)"}, names)
	assert.True(t, abi.Methods[0].Constant)
	assert.False(t, abi.Methods[1].Constant)
	assert.True(t, abi.Methods[3].Constant)
}

func TestReaderUnsupportedType(t *testing.T) {
	_, err := JSON(strings.NewReader(`[{"name":"f","inputs":[{"type":"uin"}]}]`))
	require.Error(t, err)
	assert.True(t, IsUnsupportedType(err))
}

func TestResolve(t *testing.T) {
	abi := mustJSON(t, jsondata)

	i, ok := abi.Resolve("f(bool)")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = abi.Resolve("f")
	assert.False(t, ok)

	_, ok = abi.Resolve("missing()")
	assert.False(t, ok)
}

func TestMethodByName(t *testing.T) {
	abi := mustJSON(t, jsondata)

	m, err := abi.MethodByName("f")
	require.NoError(t, err)
	assert.Equal(t, "f(uint256)", m.Name)

	_, err = abi.MethodByName("nope")
	assert.ErrorIs(t, err, ErrMethodNotFound)
}

func TestOverloadSelectorsDiffer(t *testing.T) {
	abi := mustJSON(t, jsondata)
	assert.NotEqual(t, abi.Methods[1].ID, abi.Methods[2].ID)
	assert.Equal(t, SelectorHash("f(uint256)"), "0x"+common.Bytes2Hex(abi.Methods[1].ID))
}

func TestPackUnpackMethod(t *testing.T) {
	abi := mustJSON(t, jsondata)

	data, err := abi.Pack("test", 1)
	require.NoError(t, err)
	assert.Equal(t, SelectorHash("test(uint256)")+strings.Repeat("0", 63)+"1", "0x"+common.Bytes2Hex(data))

	out, err := abi.Unpack("test", common.FromHex(strings.Repeat("0", 63)+"1"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, big.NewInt(1), out[0])

	hello := common.FromHex(strings.Repeat("0", 63) + "5" + "68656c6c6f" + strings.Repeat("0", 54))
	out, err = abi.Unpack("greet(string)", hello)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out[0])

	_, err = abi.Pack("test", "x")
	assert.Error(t, err)

	_, err = abi.Pack("missing", 1)
	assert.ErrorIs(t, err, ErrMethodNotFound)
}

func TestUnpackIntoMap(t *testing.T) {
	abi := mustJSON(t, jsondata)
	v := make(map[string]interface{})
	require.NoError(t, abi.UnpackIntoMap(v, "test", common.FromHex(strings.Repeat("0", 63)+"2")))
	assert.Equal(t, big.NewInt(2), v["b"])

	v = make(map[string]interface{})
	require.NoError(t, abi.UnpackIntoMap(v, "greet(string)", nil))
	assert.Equal(t, []byte{}, v["0"])
}

func TestMethodById(t *testing.T) {
	abi := mustJSON(t, jsondata)
	m, err := abi.MethodById(common.FromHex(SelectorHash("f(bool)")))
	require.NoError(t, err)
	assert.Equal(t, "f(bool)", m.Name)

	_, err = abi.MethodById([]byte{1, 2})
	assert.Error(t, err)

	_, err = abi.MethodById([]byte{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrMethodNotFound)
}

func TestMarshalJSON(t *testing.T) {
	abi := mustJSON(t, jsondata)
	blob, err := json.Marshal(abi)
	require.NoError(t, err)

	again := mustJSON(t, string(blob))
	require.Len(t, again.Methods, len(abi.Methods))
	for i := range abi.Methods {
		assert.Equal(t, abi.Methods[i].Name, again.Methods[i].Name)
		assert.Equal(t, abi.Methods[i].ID, again.Methods[i].ID)
		assert.Equal(t, abi.Methods[i].Constant, again.Methods[i].Constant)
	}
}
