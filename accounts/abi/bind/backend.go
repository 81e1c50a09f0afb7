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
	"errors"
	"sync/atomic"

	web3 "github.com/sunyihoo/go-web3"
	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common"
)

// ErrNoBackend is returned when a contract is invoked without a backend.
var ErrNoBackend = errors.New("bind: contract has no backend")

// ContractBackend defines the methods needed to work with contracts on a
// read-write basis: read-only calls and node-signed transactions.
// ContractBackend 定义了以读写方式与合约交互所需的方法。
type ContractBackend interface {
	web3.ContractCaller    // 合约调用器
	web3.TransactionSender // 交易发送器
}

// ContractInfo identifies a bound contract: its address and method list.
type ContractInfo struct {
	Address common.Address
	ABI     abi.ABI
}

// lastContract is the contract of the most recent transacting invocation in
// this process, read by tooling that inspects pending transactions. It is set
// before the transaction is handed to the backend.
var lastContract atomic.Pointer[ContractInfo]

// LastContract returns the contract the most recent transaction was sent to.
// The boolean is false when no contract has transacted yet.
// LastContract 返回最近一次发送交易的合约信息。
func LastContract() (ContractInfo, bool) {
	info := lastContract.Load()
	if info == nil {
		return ContractInfo{}, false
	}
	return *info, true
}

func setLastContract(address common.Address, contractABI abi.ABI) {
	lastContract.Store(&ContractInfo{Address: address, ABI: contractABI})
}
