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

// Package web3 defines interfaces for interacting with an Ethereum node over
// JSON-RPC.
package web3

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
)

// NotFound is returned by API methods if the requested item does not exist.
// NotFound 由 API 方法返回，如果请求的项不存在。
var NotFound = errors.New("not found")

// CallMsg contains parameters for contract calls and transactions. It is sent
// as the single options object of eth_call and eth_transact.
// CallMsg 包含合约调用与交易的参数，作为 eth_call / eth_transact 的选项对象发送。
type CallMsg struct {
	From     *common.Address // the sender of the 'transaction', nil lets the node pick its default account
	To       *common.Address // the destination contract (nil for contract creation)
	Gas      uint64          // if 0, the node chooses the gas limit
	GasPrice *big.Int        // wei <-> gas exchange ratio
	Value    *big.Int        // amount of wei sent along with the call
	Data     []byte          // input data, usually an ABI-encoded contract method invocation
}

type callMsgJSON struct {
	From     *common.Address `json:"from,omitempty"`
	To       *common.Address `json:"to,omitempty"`
	Gas      *hexutil.Uint64 `json:"gas,omitempty"`
	GasPrice *hexutil.Big    `json:"gasPrice,omitempty"`
	Value    *hexutil.Big    `json:"value,omitempty"`
	Data     hexutil.Bytes   `json:"data,omitempty"`
}

// MarshalJSON encodes the message as an options object with hex quantities.
func (msg CallMsg) MarshalJSON() ([]byte, error) {
	enc := callMsgJSON{
		From:     msg.From,
		To:       msg.To,
		GasPrice: (*hexutil.Big)(msg.GasPrice),
		Value:    (*hexutil.Big)(msg.Value),
		Data:     msg.Data,
	}
	if msg.Gas != 0 {
		gas := hexutil.Uint64(msg.Gas)
		enc.Gas = &gas
	}
	return json.Marshal(enc)
}

// UnmarshalJSON decodes an options object.
func (msg *CallMsg) UnmarshalJSON(input []byte) error {
	var dec callMsgJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	*msg = CallMsg{
		From:     dec.From,
		To:       dec.To,
		GasPrice: (*big.Int)(dec.GasPrice),
		Value:    (*big.Int)(dec.Value),
		Data:     dec.Data,
	}
	if dec.Gas != nil {
		msg.Gas = uint64(*dec.Gas)
	}
	return nil
}

// A ContractCaller provides contract calls, essentially transactions that are executed by
// the EVM but not mined into the blockchain. ContractCall is a low-level method to
// execute such calls.
//
// ContractCaller 提供合约调用，实质上是 EVM 执行但不被挖入区块链的交易。
type ContractCaller interface {
	CallContract(ctx context.Context, call CallMsg) ([]byte, error)
}

// TransactionSender wraps transaction submission. The node signs and queues
// the transaction; its outcome is not known when the call returns.
type TransactionSender interface {
	SendTransaction(ctx context.Context, call CallMsg) error
}

// FilterQuery contains options for log filtering, sent as the structured
// argument of eth_newFilter and eth_logs.
// FilterQuery 包含日志过滤选项。
type FilterQuery struct {
	Earliest *int64           `json:"earliest,omitempty"`
	Latest   *int64           `json:"latest,omitempty"`
	Address  []common.Address `json:"address,omitempty"`
	Topics   []common.Hash    `json:"topic,omitempty"`
	Max      int              `json:"max,omitempty"`
	Skip     int              `json:"skip,omitempty"`
}
