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

// web3 is a command line client for Ethereum nodes speaking JSON-RPC.
package main

import (
	"fmt"
	"os"

	"github.com/sunyihoo/go-web3/internal/debug"
	"github.com/sunyihoo/go-web3/internal/flags"
	"github.com/urfave/cli/v2"
)

var app = newApp()

func newApp() *cli.App {
	app := flags.NewApp("the go-web3 command line interface")
	app.Commands = []*cli.Command{
		selectorCommand,
		encodeCommand,
		decodeCommand,
		callCommand,
		transactCommand,
		watchCommand,
		dumpConfigCommand,
	}
	app.Flags = debug.Flags
	checkExclusive := app.Before
	app.Before = func(ctx *cli.Context) error {
		if err := checkExclusive(ctx); err != nil {
			return err
		}
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
