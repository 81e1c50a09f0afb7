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

package bind

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	web3 "github.com/sunyihoo/go-web3"
	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common"
)

const tokenABI = `
[
	{ "name" : "balanceOf", "constant" : true, "inputs" : [ { "name" : "who", "type" : "address" } ], "outputs" : [ { "name" : "balance", "type" : "uint256" } ] },
	{ "name" : "transfer", "inputs" : [ { "name" : "to", "type" : "address" }, { "name" : "value", "type" : "uint256" } ], "outputs" : [ { "type" : "bool" } ] },
	{ "name" : "ping", "constant" : true, "inputs" : [] },
	{ "name" : "pair", "constant" : true, "inputs" : [], "outputs" : [ { "type" : "uint8" }, { "type" : "bool" } ] },
	{ "name" : "set", "inputs" : [ { "type" : "uint256" } ] },
	{ "name" : "set", "inputs" : [ { "type" : "bool" } ] }
]`

var tokenAddr = common.HexToAddress("0x00000000000000000000000000000000000000aa")

// fakeBackend records every message and answers calls with a fixed output.
type fakeBackend struct {
	calls   []web3.CallMsg
	sent    []web3.CallMsg
	output  []byte
	sendErr error
	callErr error
}

func (b *fakeBackend) CallContract(ctx context.Context, msg web3.CallMsg) ([]byte, error) {
	b.calls = append(b.calls, msg)
	return b.output, b.callErr
}

func (b *fakeBackend) SendTransaction(ctx context.Context, msg web3.CallMsg) error {
	b.sent = append(b.sent, msg)
	return b.sendErr
}

func newTestContract(t *testing.T) (*Contract, *fakeBackend) {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(tokenABI))
	require.NoError(t, err)
	backend := new(fakeBackend)
	return Bind(tokenAddr, parsed, backend), backend
}

func packOutputs(t *testing.T, types []string, values ...interface{}) []byte {
	t.Helper()
	args, err := abi.NewArguments(types...)
	require.NoError(t, err)
	out, err := args.Pack(values...)
	require.NoError(t, err)
	return out
}

func TestBindRegistersGroups(t *testing.T) {
	c, _ := newTestContract(t)
	assert.Equal(t, []string{"balanceOf", "pair", "ping", "set", "transfer"}, c.Names())
	assert.Equal(t, tokenAddr, c.Address())

	set, err := c.Method("set")
	require.NoError(t, err)
	assert.Equal(t, "set", set.Name())
	assert.Equal(t, []string{"bool", "uint256"}, set.Signatures())
	assert.Equal(t, "set(uint256)", set.Default().Method().Name)

	b, err := set.Overload("bool")
	require.NoError(t, err)
	assert.Equal(t, "set(bool)", b.Method().Name)

	_, err = set.Overload("address")
	assert.ErrorIs(t, err, abi.ErrMethodNotFound)
	_, err = c.Method("missing")
	assert.ErrorIs(t, err, abi.ErrMethodNotFound)
}

func TestBindDuplicateSignature(t *testing.T) {
	first := abi.NewMethod("dup", true, nil, nil)
	second := abi.NewMethod("dup()", false, nil, nil)
	c := Bind(tokenAddr, abi.ABI{Methods: []abi.Method{first, second}}, new(fakeBackend))

	group, err := c.Method("dup")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, group.Signatures())
	assert.False(t, group.Default().Method().Constant)
}

func TestBindNormalizesNames(t *testing.T) {
	raw := abi.Method{Name: "get", Constant: true}
	c := Bind(tokenAddr, abi.ABI{Methods: []abi.Method{raw}}, new(fakeBackend))
	group, err := c.Method("get")
	require.NoError(t, err)
	assert.Equal(t, "get()", group.Default().Method().Name)
	assert.Equal(t, abi.Selector("get()"), group.Default().Method().ID)
}

func TestInvokeConstantCollapsesSingleOutput(t *testing.T) {
	c, backend := newTestContract(t)
	backend.output = packOutputs(t, []string{"uint256"}, big.NewInt(1000))

	owner := common.HexToAddress("0x01")
	res, err := c.Invoke(context.Background(), "balanceOf", owner)
	require.NoError(t, err)
	require.IsType(t, new(big.Int), res)
	assert.Zero(t, big.NewInt(1000).Cmp(res.(*big.Int)))

	require.Len(t, backend.calls, 1)
	msg := backend.calls[0]
	assert.Equal(t, &tokenAddr, msg.To)
	assert.Equal(t, abi.Selector("balanceOf(address)"), msg.Data[:4])
	assert.Len(t, msg.Data, 4+32)
	assert.Empty(t, backend.sent)
}

func TestInvokeZeroOutputs(t *testing.T) {
	c, backend := newTestContract(t)
	res, err := c.Invoke(context.Background(), "ping")
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = c.Collapse(false).Invoke(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, res)
	assert.Len(t, backend.calls, 2)
}

func TestInvokeMultipleOutputs(t *testing.T) {
	c, backend := newTestContract(t)
	backend.output = packOutputs(t, []string{"uint8", "bool"}, 7, true)

	res, err := c.Invoke(context.Background(), "pair")
	require.NoError(t, err)
	values, ok := res.([]interface{})
	require.True(t, ok)
	require.Len(t, values, 2)
	assert.Zero(t, big.NewInt(7).Cmp(values[0].(*big.Int)))
	assert.Equal(t, true, values[1])
}

func TestInvokeNonConstantTransacts(t *testing.T) {
	c, backend := newTestContract(t)
	res, err := c.Gas(90000).Value(big.NewInt(5)).Invoke(context.Background(), "transfer", common.HexToAddress("0x02"), 10)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, backend.calls)

	require.Len(t, backend.sent, 1)
	msg := backend.sent[0]
	assert.Equal(t, uint64(90000), msg.Gas)
	assert.Zero(t, big.NewInt(5).Cmp(msg.Value))
	assert.Equal(t, abi.SelectorHash("transfer(address,uint256)"), "0xa9059cbb")
	assert.Len(t, msg.Data, 4+64)

	last, ok := LastContract()
	require.True(t, ok)
	assert.Equal(t, tokenAddr, last.Address)
	assert.Len(t, last.ABI.Methods, 6)
}

func TestInvokeOverridesAndReset(t *testing.T) {
	c, backend := newTestContract(t)
	backend.output = packOutputs(t, []string{"bool"}, true)
	from := common.HexToAddress("0x03")

	// forced call on a non-constant method
	res, err := c.Call(&CallOpts{From: &from, GasPrice: big.NewInt(2)}).Invoke(context.Background(), "transfer", from, 1)
	require.NoError(t, err)
	assert.Equal(t, true, res)
	require.Len(t, backend.calls, 1)
	assert.Equal(t, &from, backend.calls[0].From)
	assert.Zero(t, big.NewInt(2).Cmp(backend.calls[0].GasPrice))

	// state is gone: the default transact applies again
	_, err = c.Invoke(context.Background(), "transfer", from, 1)
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)
	assert.Nil(t, backend.sent[0].From)
	assert.Nil(t, backend.sent[0].GasPrice)

	// forced transact on a constant method
	_, err = c.Transact(nil).From(from).Invoke(context.Background(), "balanceOf", from)
	require.NoError(t, err)
	require.Len(t, backend.sent, 2)
	assert.Equal(t, &from, backend.sent[1].From)
}

func TestInvokeResetsAfterFailure(t *testing.T) {
	c, backend := newTestContract(t)
	backend.callErr = errors.New("boom")

	_, err := c.Transact(nil).Gas(1).Invoke(context.Background(), "balanceOf", "not an address")
	require.Error(t, err)
	assert.Empty(t, backend.sent)

	_, err = c.Gas(5).Invoke(context.Background(), "missing")
	assert.ErrorIs(t, err, abi.ErrMethodNotFound)

	_, err = c.Invoke(context.Background(), "balanceOf", tokenAddr)
	assert.EqualError(t, err, "boom")
	require.Len(t, backend.calls, 1)
	assert.Zero(t, backend.calls[0].Gas)
}

func TestInvokeBySignature(t *testing.T) {
	c, backend := newTestContract(t)
	_, err := c.Invoke(context.Background(), "set(bool)", true)
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)
	assert.Equal(t, abi.Selector("set(bool)"), backend.sent[0].Data[:4])

	group, err := c.Method("set")
	require.NoError(t, err)
	_, err = group.Invoke(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, abi.Selector("set(uint256)"), backend.sent[1].Data[:4])

	_, err = c.Invoke(context.Background(), "set(address)", tokenAddr)
	assert.ErrorIs(t, err, abi.ErrMethodNotFound)
}

func TestInvokeSendFailureSetsLastContract(t *testing.T) {
	other := common.HexToAddress("0xbb")
	c := Bind(other, abi.ABI{Methods: []abi.Method{abi.NewMethod("kill", false, nil, nil)}}, &fakeBackend{sendErr: errors.New("rejected")})
	_, err := c.Invoke(context.Background(), "kill")
	require.Error(t, err)
	last, ok := LastContract()
	require.True(t, ok)
	assert.Equal(t, other, last.Address)
}

// pendingBackend records the last contract slot as seen while a transaction
// is being sent.
type pendingBackend struct {
	fakeBackend
	seen []common.Address
}

func (b *pendingBackend) SendTransaction(ctx context.Context, msg web3.CallMsg) error {
	last, ok := LastContract()
	if !ok {
		b.seen = append(b.seen, common.Address{})
	} else {
		b.seen = append(b.seen, last.Address)
	}
	return b.fakeBackend.SendTransaction(ctx, msg)
}

func TestLastContractDuringSend(t *testing.T) {
	var (
		backend = new(pendingBackend)
		kill    = abi.ABI{Methods: []abi.Method{abi.NewMethod("kill", false, nil, nil)}}
		first   = common.HexToAddress("0x01")
		second  = common.HexToAddress("0x02")
	)
	for _, addr := range []common.Address{first, second} {
		_, err := Bind(addr, kill, backend).Invoke(context.Background(), "kill")
		require.NoError(t, err)
	}
	assert.Equal(t, []common.Address{first, second}, backend.seen)

	backend.sendErr = errors.New("rejected")
	third := common.HexToAddress("0x03")
	_, err := Bind(third, kill, backend).Invoke(context.Background(), "kill")
	require.Error(t, err)
	assert.Equal(t, third, backend.seen[2])

	last, ok := LastContract()
	require.True(t, ok)
	assert.Equal(t, third, last.Address)
}

func TestInvokeWithoutBackend(t *testing.T) {
	c := Bind(tokenAddr, abi.ABI{Methods: []abi.Method{abi.NewMethod("ping", true, nil, nil)}}, nil)
	_, err := c.Invoke(context.Background(), "ping")
	assert.ErrorIs(t, err, ErrNoBackend)
}
