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
	"fmt"
	"math/big"
	"sort"
	"strings"

	web3 "github.com/sunyihoo/go-web3"
	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/log"
)

// CallOpts is the collection of options to fine tune a contract invocation.
// Zero fields leave the choice to the node.
// CallOpts 是微调合约调用的选项集合；零值字段由节点决定。
type CallOpts struct {
	From     *common.Address // Optional the sender address, otherwise the node's default account is used
	Gas      uint64          // Gas limit to set for the transaction execution (0 = node chooses)
	GasPrice *big.Int        // Gas price to use for the transaction execution (nil = node chooses)
	Value    *big.Int        // Funds to transfer along the transaction (nil = 0 = no funds)
	Collapse *bool           // Unwrap zero and single output results, on when nil
}

// merge overlays the set fields of o onto opts.
func (opts *CallOpts) merge(o *CallOpts) {
	if o == nil {
		return
	}
	if o.From != nil {
		opts.From = o.From
	}
	if o.Gas != 0 {
		opts.Gas = o.Gas
	}
	if o.GasPrice != nil {
		opts.GasPrice = o.GasPrice
	}
	if o.Value != nil {
		opts.Value = o.Value
	}
	if o.Collapse != nil {
		opts.Collapse = o.Collapse
	}
}

// BoundMethod is one overload of a contract method, bound to its contract.
type BoundMethod struct {
	contract *Contract
	method   abi.Method
}

// Method returns the descriptor of the overload.
func (b *BoundMethod) Method() abi.Method {
	return b.method
}

// Invoke runs the overload with the call-shaping state of its contract.
func (b *BoundMethod) Invoke(ctx context.Context, args ...interface{}) (interface{}, error) {
	return b.contract.invoke(ctx, b.method, args)
}

// MethodGroup holds every overload sharing a display name. The first
// registered signature is the default entry.
// MethodGroup 保存同一显示名下的所有重载；首个注册的签名为默认入口。
type MethodGroup struct {
	name      string
	def       string
	overloads map[string]*BoundMethod
}

// Name returns the display name of the group.
func (g *MethodGroup) Name() string {
	return g.name
}

// Default returns the default overload. It resolves through the overload map,
// so a duplicated default signature yields the last binding.
func (g *MethodGroup) Default() *BoundMethod {
	return g.overloads[g.def]
}

// Overload returns the overload with the given parameter signature, e.g.
// "uint256,bool".
func (g *MethodGroup) Overload(signature string) (*BoundMethod, error) {
	m, ok := g.overloads[signature]
	if !ok {
		return nil, fmt.Errorf("%w: %q", abi.ErrMethodNotFound, g.name+"("+signature+")")
	}
	return m, nil
}

// Signatures returns the parameter signatures of the group in sorted order.
func (g *MethodGroup) Signatures() []string {
	sigs := make([]string, 0, len(g.overloads))
	for sig := range g.overloads {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)
	return sigs
}

// Invoke runs the default overload.
func (g *MethodGroup) Invoke(ctx context.Context, args ...interface{}) (interface{}, error) {
	return g.Default().Invoke(ctx, args...)
}

// Contract is the proxy of a deployed contract. Besides the method table it
// carries one-shot call-shaping state: the transact override and the call
// options set by the modifiers apply to the next invocation only and are
// reset after it, whether it succeeded or not.
//
// A Contract is not safe for concurrent use.
//
// Contract 是已部署合约的代理。修饰方法设置的状态只作用于下一次调用，调用后（无论成败）即被重置。
type Contract struct {
	address common.Address
	abi     abi.ABI
	backend ContractBackend
	methods map[string]*MethodGroup
	log     log.Logger

	transact *bool
	opts     CallOpts
}

// Bind creates a proxy for the contract at address. Every method of contractABI
// is registered under its display name and, inside the group, under its
// parameter signature.
// Bind 为指定地址的合约创建代理。
func Bind(address common.Address, contractABI abi.ABI, backend ContractBackend) *Contract {
	c := &Contract{
		address: address,
		abi:     contractABI,
		backend: backend,
		methods: make(map[string]*MethodGroup),
		log:     log.New("contract", address),
	}
	for _, method := range contractABI.Methods {
		if !strings.Contains(method.Name, "(") {
			method = abi.NewMethod(method.Name, method.Constant, method.Inputs, method.Outputs)
		}
		name := method.DisplayName()
		group, ok := c.methods[name]
		if !ok {
			group = &MethodGroup{name: name, def: method.OverloadSignature(), overloads: make(map[string]*BoundMethod)}
			c.methods[name] = group
		}
		group.overloads[method.OverloadSignature()] = &BoundMethod{contract: c, method: method}
	}
	return c
}

// Address returns the address the contract is bound to.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the method list the contract was bound with.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// Names returns the display names of the contract methods in sorted order.
func (c *Contract) Names() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Method returns the group registered under displayName.
func (c *Contract) Method(displayName string) (*MethodGroup, error) {
	group, ok := c.methods[displayName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", abi.ErrMethodNotFound, displayName)
	}
	return group, nil
}

// Invoke runs the method named name, which is either a display name
// (selecting the default overload) or a full "name(types)" signature.
func (c *Contract) Invoke(ctx context.Context, name string, args ...interface{}) (interface{}, error) {
	group, err := c.Method(abi.DisplayName(name))
	if err != nil {
		c.reset()
		return nil, err
	}
	bound := group.Default()
	if strings.Contains(name, "(") {
		if bound, err = group.Overload(abi.OverloadSignature(name)); err != nil {
			c.reset()
			return nil, err
		}
	}
	return bound.Invoke(ctx, args...)
}

// Call forces the next invocation to be a read-only call, overlaying opts.
func (c *Contract) Call(opts *CallOpts) *Contract {
	c.transact = new(bool)
	c.opts.merge(opts)
	return c
}

// Transact forces the next invocation to be sent as a transaction, overlaying opts.
func (c *Contract) Transact(opts *CallOpts) *Contract {
	transact := true
	c.transact = &transact
	c.opts.merge(opts)
	return c
}

// Gas sets the gas limit of the next invocation.
func (c *Contract) Gas(gas uint64) *Contract {
	c.opts.Gas = gas
	return c
}

// GasPrice sets the gas price of the next invocation.
func (c *Contract) GasPrice(price *big.Int) *Contract {
	c.opts.GasPrice = price
	return c
}

// Value sets the wei sent along with the next invocation.
func (c *Contract) Value(value *big.Int) *Contract {
	c.opts.Value = value
	return c
}

// From sets the sender of the next invocation.
func (c *Contract) From(from common.Address) *Contract {
	c.opts.From = &from
	return c
}

// Collapse toggles result unwrapping for the next invocation.
func (c *Contract) Collapse(collapse bool) *Contract {
	c.opts.Collapse = &collapse
	return c
}

// reset drops the one-shot state.
func (c *Contract) reset() {
	c.transact = nil
	c.opts = CallOpts{}
}

// invoke encodes the arguments, chooses between call and transact and
// decodes the output of calls.
// invoke 编码参数，决定调用或交易，并解码只读调用的输出。
func (c *Contract) invoke(ctx context.Context, method abi.Method, args []interface{}) (interface{}, error) {
	transact, opts := !method.Constant, c.opts
	if c.transact != nil {
		transact = *c.transact
	}
	c.reset()

	if c.backend == nil {
		return nil, ErrNoBackend
	}
	input, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("bind: packing %v: %w", method.Name, err)
	}
	to := c.address
	msg := web3.CallMsg{
		From:     opts.From,
		To:       &to,
		Gas:      opts.Gas,
		GasPrice: opts.GasPrice,
		Value:    opts.Value,
		Data:     append(append([]byte{}, method.ID...), input...),
	}
	if transact {
		// visible to tooling while the transaction is pending or rejected
		setLastContract(c.address, c.abi)
		if err := c.backend.SendTransaction(ctx, msg); err != nil {
			return nil, err
		}
		c.log.Debug("Transaction submitted", "method", method.Name)
		return nil, nil
	}
	output, err := c.backend.CallContract(ctx, msg)
	if err != nil {
		return nil, err
	}
	values, err := method.Outputs.Unpack(output)
	if err != nil {
		return nil, fmt.Errorf("bind: unpacking %v: %w", method.Name, err)
	}
	if opts.Collapse != nil && !*opts.Collapse {
		return values, nil
	}
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return values[0], nil
	default:
		return values, nil
	}
}
