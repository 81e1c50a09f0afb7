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
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/sunyihoo/go-web3/cmd/utils"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// printer writes command results in the format selected by --output.
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(ctx *cli.Context) (*printer, error) {
	format := ctx.String(utils.OutputFlag.Name)
	switch format {
	case "json", "yaml":
		return &printer{w: ctx.App.Writer, format: format}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// print writes a single document.
func (p *printer) print(v interface{}) error {
	v = plain(v)
	switch p.format {
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		// multiple documents stay separable in a stream
		_, err = fmt.Fprintf(p.w, "---\n%s", out)
		return err
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "%s\n", out)
		return err
	}
}

// plain converts decoded values into types both encoders render the same
// way: numbers become decimal strings, byte slices and addresses hex.
// plain 将解码结果转换为两种编码器输出一致的类型。
func plain(v interface{}) interface{} {
	switch v := v.(type) {
	case *big.Int:
		if v == nil {
			return nil
		}
		return v.String()
	case *big.Float:
		if v == nil {
			return nil
		}
		return v.Text('g', -1)
	case []byte:
		return hexutil.Encode(v)
	case common.Address:
		return v.Hex()
	case common.Hash:
		return v.Hex()
	case json.RawMessage:
		var decoded interface{}
		if err := json.Unmarshal(v, &decoded); err != nil {
			return string(v)
		}
		return decoded
	case []interface{}:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = plain(v[i])
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = plain(e)
		}
		return out
	case []*big.Int:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = plain(v[i])
		}
		return out
	case []*big.Float:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = plain(v[i])
		}
		return out
	case [][]byte:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = hexutil.Encode(v[i])
		}
		return out
	case []common.Address:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i].Hex()
		}
		return out
	}
	return v
}
