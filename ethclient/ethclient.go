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

// Package ethclient provides a client for the Ethereum RPC API.
//
// ethclient 包提供以太坊 RPC API 的类型化客户端。
package ethclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	web3 "github.com/sunyihoo/go-web3"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/sunyihoo/go-web3/eth/filters"
	"github.com/sunyihoo/go-web3/rpc"
)

// ErrRejected is returned by setters when the node answers false.
var ErrRejected = errors.New("ethclient: node rejected the request")

// Client defines typed wrappers for the Ethereum RPC API.
// Client 结构体定义了对以太坊 RPC API 的类型化包装。
type Client struct {
	m *rpc.Manager // 底层请求管理器
}

// Dial connects a client to the given URL.
func Dial(rawurl string) (*Client, error) {
	return DialContext(context.Background(), rawurl)
}

// DialContext connects a client to the given URL with context.
// DialContext 函数使用提供的上下文连接到指定的 URL。
func DialContext(ctx context.Context, rawurl string, options ...rpc.ClientOption) (*Client, error) {
	t, err := rpc.DialTransport(ctx, rawurl, options...)
	if err != nil {
		return nil, err
	}
	return NewClient(rpc.NewManager(t, rpc.Config{})), nil
}

// NewClient creates a client that uses the given manager.
func NewClient(m *rpc.Manager) *Client {
	return &Client{m}
}

// Close stops the manager's polling loop and closes its transport.
func (ec *Client) Close() error {
	return ec.m.Close()
}

// Manager gets the underlying request manager.
func (ec *Client) Manager() *rpc.Manager {
	return ec.m
}

// Node properties

// Coinbase returns the address mining rewards are paid to.
func (ec *Client) Coinbase(ctx context.Context) (common.Address, error) {
	return ec.address(ctx, "eth_coinbase")
}

// SetCoinbase changes the mining reward address.
func (ec *Client) SetCoinbase(ctx context.Context, coinbase common.Address) error {
	return ec.set(ctx, "eth_setCoinbase", coinbase.Hex())
}

// Listening reports whether the node accepts peer connections.
func (ec *Client) Listening(ctx context.Context) (bool, error) {
	var listening bool
	err := ec.m.Call(ctx, &listening, "eth_listening")
	return listening, err
}

// SetListening toggles peer listening.
func (ec *Client) SetListening(ctx context.Context, listening bool) error {
	return ec.set(ctx, "eth_setListening", listening)
}

// Mining reports whether the node is mining.
func (ec *Client) Mining(ctx context.Context) (bool, error) {
	var mining bool
	err := ec.m.Call(ctx, &mining, "eth_mining")
	return mining, err
}

// SetMining starts or stops mining.
func (ec *Client) SetMining(ctx context.Context, mining bool) error {
	return ec.set(ctx, "eth_setMining", mining)
}

// GasPrice returns the gas price the node suggests.
// GasPrice 返回节点建议的 gas 价格。
func (ec *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	return ec.quantity(ctx, "eth_gasPrice")
}

// Account returns the node's default account.
func (ec *Client) Account(ctx context.Context) (common.Address, error) {
	return ec.address(ctx, "eth_account")
}

// Accounts lists the accounts the node controls.
func (ec *Client) Accounts(ctx context.Context) ([]common.Address, error) {
	var raw []string
	if err := ec.m.Call(ctx, &raw, "eth_accounts"); err != nil {
		return nil, err
	}
	accounts := make([]common.Address, len(raw))
	for i, s := range raw {
		accounts[i] = common.HexToAddress(s)
	}
	return accounts, nil
}

// PeerCount returns the number of connected peers.
func (ec *Client) PeerCount(ctx context.Context) (uint64, error) {
	n, err := ec.quantity(ctx, "eth_peerCount")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// DefaultBlock returns the block number state queries run against.
// Negative numbers count back from the head, -1 being the pending block.
func (ec *Client) DefaultBlock(ctx context.Context) (int64, error) {
	n, err := ec.quantity(ctx, "eth_defaultBlock")
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// SetDefaultBlock changes the block state queries run against.
func (ec *Client) SetDefaultBlock(ctx context.Context, number int64) error {
	return ec.set(ctx, "eth_setDefaultBlock", number)
}

// Number returns the number of the most recent block.
// Number 返回最新区块的编号。
func (ec *Client) Number(ctx context.Context) (uint64, error) {
	n, err := ec.quantity(ctx, "eth_number")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// State Access

// BalanceAt returns the wei balance of the given account.
// BalanceAt 返回给定账户的 wei 余额。
func (ec *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	return ec.quantity(ctx, "eth_balanceAt", account.Hex())
}

// StateAt returns the value of one storage slot of the given account.
func (ec *Client) StateAt(ctx context.Context, account common.Address, key common.Hash) ([]byte, error) {
	return ec.hexBytes(ctx, "eth_stateAt", account.Hex(), key.Hex())
}

// StorageAt returns the complete storage of the given account, keyed by slot.
// StorageAt 返回给定账户的完整存储，以槽位为键。
func (ec *Client) StorageAt(ctx context.Context, account common.Address) (map[string]string, error) {
	var storage map[string]string
	if err := ec.m.Call(ctx, &storage, "eth_storageAt", account.Hex()); err != nil {
		return nil, err
	}
	return storage, nil
}

// CountAt returns the transaction count (nonce) of the given account.
func (ec *Client) CountAt(ctx context.Context, account common.Address) (uint64, error) {
	n, err := ec.quantity(ctx, "eth_countAt", account.Hex())
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// CodeAt returns the contract code of the given account.
// CodeAt 返回给定账户的合约代码。
func (ec *Client) CodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return ec.hexBytes(ctx, "eth_codeAt", account.Hex())
}

// Contract Calling

// Call executes a message call against the current state without creating a
// transaction and returns the output data.
// Call 针对当前状态执行消息调用（不创建交易）并返回输出数据。
func (ec *Client) Call(ctx context.Context, msg web3.CallMsg) ([]byte, error) {
	return ec.hexBytes(ctx, "eth_call", msg)
}

// CallContract implements web3.ContractCaller.
func (ec *Client) CallContract(ctx context.Context, msg web3.CallMsg) ([]byte, error) {
	return ec.Call(ctx, msg)
}

// Transact submits a transaction the node signs with the sender's key. The
// result is the node's reply, the new contract address for creations.
// Transact 提交由节点签名的交易。
func (ec *Client) Transact(ctx context.Context, msg web3.CallMsg) (string, error) {
	var result string
	err := ec.m.Call(ctx, &result, "eth_transact", msg)
	return result, err
}

// SendTransaction implements web3.TransactionSender.
func (ec *Client) SendTransaction(ctx context.Context, msg web3.CallMsg) error {
	_, err := ec.Transact(ctx, msg)
	return err
}

// Blockchain Access

// Block returns a block. A string or common.Hash argument selects
// eth_blockByHash, anything else is sent as a block number.
// Block 返回区块；字符串或哈希参数使用 eth_blockByHash，其余按区块号查询。
func (ec *Client) Block(ctx context.Context, ref interface{}) (map[string]interface{}, error) {
	method, arg := byHashOrNumber("eth_block", ref)
	return ec.object(ctx, method, arg)
}

// BlockByHash returns the block with the given hash.
func (ec *Client) BlockByHash(ctx context.Context, hash common.Hash) (map[string]interface{}, error) {
	return ec.Block(ctx, hash)
}

// BlockByNumber returns the block with the given number.
func (ec *Client) BlockByNumber(ctx context.Context, number int64) (map[string]interface{}, error) {
	return ec.Block(ctx, number)
}

// Transaction returns the index'th transaction of a block, selected the
// same way as in Block.
func (ec *Client) Transaction(ctx context.Context, ref interface{}, index int) (map[string]interface{}, error) {
	method, arg := byHashOrNumber("eth_transaction", ref)
	return ec.object(ctx, method, arg, index)
}

// Uncle returns the index'th uncle of a block, selected the same way as in Block.
func (ec *Client) Uncle(ctx context.Context, ref interface{}, index int) (map[string]interface{}, error) {
	method, arg := byHashOrNumber("eth_uncle", ref)
	return ec.object(ctx, method, arg, index)
}

// Logs returns the logs matching the query. A string query names a
// predefined filter ("chain", "pending").
func (ec *Client) Logs(ctx context.Context, query interface{}) ([]json.RawMessage, error) {
	var logs []json.RawMessage
	if err := ec.m.Call(ctx, &logs, "eth_logs", query); err != nil {
		return nil, err
	}
	return logs, nil
}

// Watch installs an eth filter. A string option ("chain", "pending") creates a
// predefined filter, a web3.FilterQuery or other object a structured one.
// Watch 安装 eth 过滤器。
func (ec *Client) Watch(ctx context.Context, options interface{}) (*filters.Filter, error) {
	return filters.New(ctx, ec.m, filters.Eth, options)
}

// Flush asks the node to process pending work immediately.
func (ec *Client) Flush(ctx context.Context) error {
	return ec.m.Call(ctx, nil, "eth_flush")
}

// Compilers

// Compilers lists the compilers available on the node.
func (ec *Client) Compilers(ctx context.Context) ([]string, error) {
	var compilers []string
	if err := ec.m.Call(ctx, &compilers, "eth_compilers"); err != nil {
		return nil, err
	}
	return compilers, nil
}

// LLL compiles LLL source into bytecode on the node.
func (ec *Client) LLL(ctx context.Context, source string) ([]byte, error) {
	return ec.hexBytes(ctx, "eth_lll", source)
}

// Solidity compiles Solidity source into bytecode on the node.
func (ec *Client) Solidity(ctx context.Context, source string) ([]byte, error) {
	return ec.hexBytes(ctx, "eth_solidity", source)
}

// Serpent compiles Serpent source into bytecode on the node.
func (ec *Client) Serpent(ctx context.Context, source string) ([]byte, error) {
	return ec.hexBytes(ctx, "eth_serpent", source)
}

// web3 and db namespaces

// Sha3 returns the Keccak-256 hash of data computed by the node.
func (ec *Client) Sha3(ctx context.Context, data []byte) (common.Hash, error) {
	b, err := ec.hexBytes(ctx, "web3_sha3", hexutil.Encode(data))
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}

// DBPut stores binary value under key in the node's local database db.
// DBPut 将二进制值存入节点本地数据库。
func (ec *Client) DBPut(ctx context.Context, db, key string, value []byte) error {
	return ec.set(ctx, "db_put", db, key, hexutil.Encode(value))
}

// DBGet loads a binary value stored with DBPut.
func (ec *Client) DBGet(ctx context.Context, db, key string) ([]byte, error) {
	return ec.hexBytes(ctx, "db_get", db, key)
}

// DBPutString stores a string value under key in the node's local database db.
func (ec *Client) DBPutString(ctx context.Context, db, key, value string) error {
	return ec.set(ctx, "db_putString", db, key, value)
}

// DBGetString loads a string value stored with DBPutString.
func (ec *Client) DBGetString(ctx context.Context, db, key string) (string, error) {
	var value string
	err := ec.m.Call(ctx, &value, "db_getString", db, key)
	return value, err
}

// byHashOrNumber picks the ByHash or ByNumber variant of method from the
// shape of ref.
func byHashOrNumber(method string, ref interface{}) (string, interface{}) {
	switch r := ref.(type) {
	case string:
		return method + "ByHash", r
	case common.Hash:
		return method + "ByHash", r.Hex()
	case *big.Int:
		return method + "ByNumber", r.Int64()
	default:
		return method + "ByNumber", ref
	}
}

func (ec *Client) set(ctx context.Context, method string, args ...interface{}) error {
	var ok bool
	if err := ec.m.Call(ctx, &ok, method, args...); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrRejected, method)
	}
	return nil
}

func (ec *Client) object(ctx context.Context, method string, args ...interface{}) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := ec.m.Call(ctx, &obj, method, args...); err != nil {
		return nil, err
	} else if obj == nil {
		return nil, web3.NotFound
	}
	return obj, nil
}

func (ec *Client) address(ctx context.Context, method string) (common.Address, error) {
	var s string
	if err := ec.m.Call(ctx, &s, method); err != nil {
		return common.Address{}, err
	}
	return common.HexToAddress(s), nil
}

// hexBytes decodes a hex string result. The 0x prefix is optional and an
// empty string means no data.
func (ec *Client) hexBytes(ctx context.Context, method string, args ...interface{}) ([]byte, error) {
	var s string
	if err := ec.m.Call(ctx, &s, method, args...); err != nil {
		return nil, err
	}
	return common.FromHex(s), nil
}

func (ec *Client) quantity(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	raw, err := ec.m.Send(ctx, rpc.Request{Method: method, Params: args})
	if err != nil {
		return nil, err
	}
	n, err := parseQuantity(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return n, nil
}

// parseQuantity accepts a JSON number, a decimal string or a 0x-prefixed hex
// string, leading zeros included.
// parseQuantity 接受 JSON 数字、十进制字符串或带 0x 前缀的十六进制字符串。
func parseQuantity(raw json.RawMessage) (*big.Int, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
	}
	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		text, base = text[2:], 16
		if text == "" {
			return new(big.Int), nil
		}
	}
	if n, ok := new(big.Int).SetString(text, base); ok {
		return n, nil
	}
	// Whole-valued reals such as 3.0.
	if f, ok := new(big.Float).SetString(text); ok && f.IsInt() {
		n, _ := f.Int(nil)
		return n, nil
	}
	return nil, fmt.Errorf("invalid quantity %s", raw)
}
