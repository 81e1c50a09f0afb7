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
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInProcTransport(t *testing.T) {
	tr := NewInProcTransport(func(ctx context.Context, method string, params []json.RawMessage) (interface{}, error) {
		switch method {
		case "db_put":
			var key string
			if err := json.Unmarshal(params[1], &key); err != nil {
				return nil, err
			}
			return key == "k", nil
		case "eth_call":
			return nil, &jsonError{Code: 3, Message: "reverted", Data: "0x01"}
		default:
			return nil, errors.New("unknown")
		}
	})
	m := NewManager(tr, Config{})

	var ok bool
	require.NoError(t, m.Call(context.Background(), &ok, "db_put", "db", "k", "v"))
	assert.True(t, ok)

	err := m.Call(context.Background(), nil, "eth_call")
	var rpcErr Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 3, rpcErr.ErrorCode())

	err = m.Call(context.Background(), nil, "eth_other")
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, errcodeDefault, rpcErr.ErrorCode())
	assert.Equal(t, "unknown", err.Error())
}
