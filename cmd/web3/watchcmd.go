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
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/sunyihoo/go-web3/cmd/utils"
	"github.com/sunyihoo/go-web3/eth/filters"
	"github.com/sunyihoo/go-web3/internal/flags"
	"github.com/sunyihoo/go-web3/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var watchCommand = &cli.Command{
	Action:    watch,
	Name:      "watch",
	Usage:     "Install a filter and print every message it reports",
	ArgsUsage: "[<options>]",
	Flags: flags.Merge(utils.ConnectionFlags, []cli.Flag{
		configFileFlag,
		utils.ShhFlag,
		utils.HistoryFlag,
		utils.CountFlag,
		utils.OutputFlag,
	}),
	Description: `
Options are either a plain string such as "chain" or "pending", or a JSON
object, e.g. '{"address":["0x..."]}'. Without options an eth filter watches
"chain". The filter is uninstalled on exit.`,
}

// filterOptions turns the command line argument into the filter options:
// JSON objects are sent as objects, anything else as a string.
func filterOptions(arg string, shh bool) (interface{}, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "" && shh:
		return map[string]interface{}{}, nil
	case arg == "":
		return "chain", nil
	case strings.HasPrefix(arg, "{"):
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(arg), &obj); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return arg, nil
	}
}

func watch(ctx *cli.Context) error {
	if ctx.NArg() > 1 {
		return errors.New("too many arguments")
	}
	p, err := newPrinter(ctx)
	if err != nil {
		return err
	}
	shh := ctx.Bool(utils.ShhFlag.Name)
	options, err := filterOptions(ctx.Args().First(), shh)
	if err != nil {
		return err
	}
	stack, _, err := makeConfigNode(ctx)
	if err != nil {
		return err
	}
	defer stack.Close()

	var f *filters.Filter
	if shh {
		f, err = stack.WatchShh(ctx.Context, options)
	} else {
		f, err = stack.Watch(ctx.Context, options)
	}
	if err != nil {
		return err
	}
	log.Info("Filter installed", "filter", f.Key())

	sigctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	runctx, cancel := context.WithCancel(sigctx)
	defer cancel()

	var (
		mu    sync.Mutex
		seen  int
		limit = ctx.Int(utils.CountFlag.Name)
	)
	emit := func(msg json.RawMessage) {
		mu.Lock()
		defer mu.Unlock()
		if err := p.print(msg); err != nil {
			log.Warn("Failed to print message", "err", err)
		}
	}
	f.Changed(func(msg json.RawMessage) {
		emit(msg)
		mu.Lock()
		seen++
		done := limit > 0 && seen >= limit
		mu.Unlock()
		if done {
			cancel()
		}
	})

	g, gctx := errgroup.WithContext(runctx)
	g.Go(func() error {
		err := stack.Manager().Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if ctx.Bool(utils.HistoryFlag.Name) {
		g.Go(func() error {
			messages, err := f.Messages(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return err
			}
			for _, msg := range messages {
				emit(msg)
			}
			return nil
		})
	}
	return g.Wait()
}
