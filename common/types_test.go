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

package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressHex(t *testing.T) {
	addr := HexToAddress("0x0000000000000000000000000000000000c0ffee")
	assert.Equal(t, "0x0000000000000000000000000000000000c0ffee", addr.Hex())
	assert.True(t, IsHexAddress("0000000000000000000000000000000000c0ffee"))
	assert.False(t, IsHexAddress("0xc0ffee"))

	// Longer inputs are cropped from the left, as with a 32 byte word.
	word := FromHex("0x000000000000000000000000407d73d8a49eeb85d32cf465507dd71d507100c1")
	assert.Equal(t, "0x407d73d8a49eeb85d32cf465507dd71d507100c1", BytesToAddress(word).Hex())
}

func TestAddressJSON(t *testing.T) {
	addr := HexToAddress("0x407d73d8a49eeb85d32cf465507dd71d507100c1")
	enc, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"0x407d73d8a49eeb85d32cf465507dd71d507100c1"`, string(enc))

	var dec Address
	require.NoError(t, json.Unmarshal(enc, &dec))
	assert.Equal(t, addr, dec)
	assert.Error(t, json.Unmarshal([]byte(`"0x407d"`), &dec))
}

func TestHashTerminalString(t *testing.T) {
	h := HexToHash("0x01")
	assert.Equal(t, "000000..000001", h.TerminalString())
	assert.Equal(t, 1, h.Big().Sign())
}

func TestPadding(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 1, 2}, LeftPadBytes([]byte{1, 2}, 4))
	assert.Equal(t, []byte{1, 2, 0, 0}, RightPadBytes([]byte{1, 2}, 4))
	assert.Equal(t, []byte{1, 2}, RightPadBytes([]byte{1, 2}, 1))
	assert.Equal(t, []byte{0x0a}, FromHex("0xa"))
}

func TestASCII(t *testing.T) {
	assert.Equal(t, "hello", ToASCII(FromASCII("hello", 32)))
	assert.Len(t, FromASCII("hello", 32), 32)
	assert.Equal(t, "", ToASCII([]byte{0, 'a'}))
}
