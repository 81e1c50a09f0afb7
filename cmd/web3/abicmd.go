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
	"strconv"
	"strings"

	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/cmd/utils"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/urfave/cli/v2"
)

var (
	selectorCommand = &cli.Command{
		Action:    selector,
		Name:      "selector",
		Usage:     "Print the 4 byte selector of method signatures",
		ArgsUsage: "<signature> [<signature>...]",
		Flags:     []cli.Flag{utils.OutputFlag},
		Description: `
The selector is the first four bytes of the Keccak-256 hash of the signature,
e.g. "transfer(address,uint256)" yields 0xa9059cbb.`,
	}
	encodeCommand = &cli.Command{
		Action:    encode,
		Name:      "encode",
		Usage:     "ABI-encode values",
		ArgsUsage: "<type> <value> [<type> <value>...]",
		Flags:     []cli.Flag{utils.OutputFlag},
		Description: `
Encodes (type, value) pairs into a single payload: one header word per
argument, followed by the data words. Array values are written as
[1,2,3]; bytes values are hex when prefixed with 0x.`,
	}
	decodeCommand = &cli.Command{
		Action:    decode,
		Name:      "decode",
		Usage:     "Decode an ABI payload",
		ArgsUsage: "<type>[,<type>...] <hex data>",
		Flags:     []cli.Flag{utils.OutputFlag},
	}
)

func selector(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("need at least one method signature")
	}
	p, err := newPrinter(ctx)
	if err != nil {
		return err
	}
	out := make(map[string]interface{}, ctx.NArg())
	for _, sig := range ctx.Args().Slice() {
		out[sig] = abi.SelectorHash(sig)
	}
	return p.print(out)
}

func encode(ctx *cli.Context) error {
	if ctx.NArg() == 0 || ctx.NArg()%2 != 0 {
		return errors.New("need <type> <value> pairs")
	}
	p, err := newPrinter(ctx)
	if err != nil {
		return err
	}
	var (
		types  []string
		values []interface{}
	)
	args := ctx.Args().Slice()
	for i := 0; i < len(args); i += 2 {
		typ, err := abi.NewType(args[i])
		if err != nil {
			return err
		}
		v, err := parseArg(typ, args[i+1])
		if err != nil {
			return fmt.Errorf("argument %d: %w", i/2, err)
		}
		types = append(types, args[i])
		values = append(values, v)
	}
	arguments, err := abi.NewArguments(types...)
	if err != nil {
		return err
	}
	data, err := arguments.Pack(values...)
	if err != nil {
		return err
	}
	return p.print(hexutil.Encode(data))
}

func decode(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("need a type list and the hex data")
	}
	p, err := newPrinter(ctx)
	if err != nil {
		return err
	}
	arguments, err := abi.NewArguments(strings.Split(ctx.Args().Get(0), ",")...)
	if err != nil {
		return err
	}
	values, err := arguments.Unpack(common.FromHex(ctx.Args().Get(1)))
	if err != nil {
		return err
	}
	if len(values) == 1 {
		return p.print(values[0])
	}
	return p.print(values)
}

// parseArg converts a command line value into the Go value the codec
// accepts for typ. Numbers, addresses and hashes stay strings; the codec
// parses decimal and 0x-prefixed hex itself.
// parseArg 将命令行参数转换为编解码器接受的 Go 值。
func parseArg(typ abi.Type, s string) (interface{}, error) {
	if typ.IsArray {
		elem, err := abi.NewType(strings.TrimSuffix(typ.String(), "[]"))
		if err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("array value %q must be written as [a,b,...]", s)
		}
		inner := strings.TrimSpace(s[1 : len(s)-1])
		list := []interface{}{}
		if inner == "" {
			return list, nil
		}
		for _, item := range strings.Split(inner, ",") {
			v, err := parseArg(elem, strings.TrimSpace(item))
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	}
	switch typ.T {
	case abi.BoolTy:
		return strconv.ParseBool(s)
	case abi.StringTy:
		if typ.IsBytes && has0xPrefix(s) {
			return hexutil.Decode(s)
		}
		if typ.IsBytes {
			return []byte(s), nil
		}
		return s, nil
	default:
		return s, nil
	}
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
