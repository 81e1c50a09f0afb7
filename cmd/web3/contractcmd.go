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

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/accounts/abi/bind"
	"github.com/sunyihoo/go-web3/cmd/utils"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/sunyihoo/go-web3/internal/flags"
	"github.com/urfave/cli/v2"
)

var contractFlags = flags.Merge(utils.ConnectionFlags, utils.TransactionFlags, []cli.Flag{
	configFileFlag,
	utils.ABIFlag,
	utils.AddressFlag,
	utils.OutputFlag,
})

var (
	callCommand = &cli.Command{
		Action:    callContract,
		Name:      "call",
		Usage:     "Call a constant contract method and print its result",
		ArgsUsage: "<method> [<arg>...]",
		Flags:     flags.Merge(contractFlags, []cli.Flag{utils.NoCollapseFlag}),
		Description: `
The method is either a display name such as "balanceOf", which selects the
default overload, or a full signature such as "balanceOf(address)".
Arguments follow the syntax of the encode command.`,
	}
	transactCommand = &cli.Command{
		Action:    transactContract,
		Name:      "transact",
		Usage:     "Send a transaction invoking a contract method",
		ArgsUsage: "<method> [<arg>...]",
		Flags:     contractFlags,
		Description: `
Submits the invocation as a transaction signed by the node. The outcome is
not known when the command returns.`,
	}
)

// contractInvocation is the parsed command line of call and transact.
type contractInvocation struct {
	method *bind.BoundMethod
	args   []interface{}
	opts   bind.CallOpts
}

func loadABI(path string) (abi.ABI, error) {
	f, err := os.Open(path)
	if err != nil {
		return abi.ABI{}, err
	}
	defer f.Close()
	parsed, err := abi.JSON(f)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// parseInvocation resolves the method named on the command line against the
// bound contract and converts its arguments.
func parseInvocation(ctx *cli.Context, contract *bind.Contract) (*contractInvocation, error) {
	if ctx.NArg() == 0 {
		return nil, errors.New("missing method name")
	}
	name := ctx.Args().First()
	group, err := contract.Method(abi.DisplayName(name))
	if err != nil {
		return nil, err
	}
	bound := group.Default()
	if strings.Contains(name, "(") {
		if bound, err = group.Overload(abi.OverloadSignature(name)); err != nil {
			return nil, err
		}
	}
	inputs := bound.Method().Inputs
	raw := ctx.Args().Tail()
	if len(raw) != len(inputs) {
		return nil, fmt.Errorf("%s takes %d arguments, have %d", bound.Method().Name, len(inputs), len(raw))
	}
	inv := &contractInvocation{method: bound}
	for i, input := range inputs {
		v, err := parseArg(input.Type, raw[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, input.Type, err)
		}
		inv.args = append(inv.args, v)
	}

	if from := ctx.String(utils.FromFlag.Name); from != "" {
		if !common.IsHexAddress(from) {
			return nil, fmt.Errorf("invalid --%s address %q", utils.FromFlag.Name, from)
		}
		addr := common.HexToAddress(from)
		inv.opts.From = &addr
	}
	inv.opts.Gas = ctx.Uint64(utils.GasFlag.Name)
	if ctx.IsSet(utils.GasPriceFlag.Name) {
		inv.opts.GasPrice = flags.GlobalBig(ctx, utils.GasPriceFlag.Name)
	}
	if ctx.IsSet(utils.ValueFlag.Name) {
		inv.opts.Value = flags.GlobalBig(ctx, utils.ValueFlag.Name)
	}
	return inv, nil
}

// bindContract connects to the node and binds the contract given by --abi
// and --address. The caller closes the returned node.
func bindContract(ctx *cli.Context) (*bind.Contract, func() error, error) {
	address := ctx.String(utils.AddressFlag.Name)
	if !common.IsHexAddress(address) {
		return nil, nil, fmt.Errorf("invalid --%s %q", utils.AddressFlag.Name, address)
	}
	contractABI, err := loadABI(ctx.String(utils.ABIFlag.Name))
	if err != nil {
		return nil, nil, err
	}
	stack, _, err := makeConfigNode(ctx)
	if err != nil {
		return nil, nil, err
	}
	return stack.Bind(common.HexToAddress(address), contractABI), stack.Close, nil
}

func callContract(ctx *cli.Context) error {
	p, err := newPrinter(ctx)
	if err != nil {
		return err
	}
	contract, closeFn, err := bindContract(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	inv, err := parseInvocation(ctx, contract)
	if err != nil {
		return err
	}
	if ctx.Bool(utils.NoCollapseFlag.Name) {
		collapse := false
		inv.opts.Collapse = &collapse
	}
	contract.Call(&inv.opts)
	result, err := inv.method.Invoke(ctx.Context, inv.args...)
	if err != nil {
		return err
	}
	return p.print(result)
}

func transactContract(ctx *cli.Context) error {
	p, err := newPrinter(ctx)
	if err != nil {
		return err
	}
	contract, closeFn, err := bindContract(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	inv, err := parseInvocation(ctx, contract)
	if err != nil {
		return err
	}
	contract.Transact(&inv.opts)
	if _, err := inv.method.Invoke(ctx.Context, inv.args...); err != nil {
		return err
	}
	last, _ := bind.LastContract()
	return p.print(map[string]interface{}{
		"contract": last.Address.Hex(),
		"method":   inv.method.Method().Name,
		"selector": hexutil.Encode(inv.method.Method().ID),
	})
}
