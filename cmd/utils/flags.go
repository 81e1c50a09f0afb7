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

// Package utils contains internal helper functions for go-web3 commands.
package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/sunyihoo/go-web3/internal/flags"
	"github.com/sunyihoo/go-web3/node"
	"github.com/sunyihoo/go-web3/rpc"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Connection settings
	EndpointFlag = &cli.StringFlag{
		Name:     "endpoint",
		Usage:    "Node endpoint: http(s)://, ws(s):// URL or IPC socket path",
		Value:    rpc.DefaultEndpoint,
		EnvVars:  []string{"WEB3_ENDPOINT"},
		Category: flags.ConnectionCategory,
	}
	PollIntervalFlag = &cli.DurationFlag{
		Name:     "poll.interval",
		Usage:    "Period of the filter polling loop",
		Value:    rpc.DefaultPollInterval,
		Category: flags.ConnectionCategory,
	}
	HeaderFlag = &cli.StringSliceFlag{
		Name:     "header",
		Aliases:  []string{"H"},
		Usage:    "Extra HTTP header sent with every request (\"Name: value\")",
		Category: flags.ConnectionCategory,
	}
	JWTSecretFlag = &flags.DirectoryFlag{
		Name:     "authrpc.jwtsecret",
		Usage:    "Path to a hex-encoded 32 byte secret used to sign JWT bearer tokens",
		Category: flags.ConnectionCategory,
	}
	RateLimitFlag = &cli.Float64Flag{
		Name:     "rpc.ratelimit",
		Usage:    "Maximum HTTP requests per second (0 = unlimited)",
		Category: flags.ConnectionCategory,
	}
	RateBurstFlag = &cli.IntFlag{
		Name:     "rpc.rateburst",
		Usage:    "Requests allowed above the rate limit at once",
		Value:    1,
		Category: flags.ConnectionCategory,
	}
	WSOriginFlag = &cli.StringFlag{
		Name:     "ws.origin",
		Usage:    "Origin header of the websocket handshake",
		Category: flags.ConnectionCategory,
	}

	// Contract settings
	ABIFlag = &flags.DirectoryFlag{
		Name:     "abi",
		Usage:    "Path to the JSON ABI of the contract",
		Required: true,
		Category: flags.ContractCategory,
	}
	AddressFlag = &cli.StringFlag{
		Name:     "address",
		Usage:    "Address of the contract",
		Required: true,
		Category: flags.ContractCategory,
	}
	NoCollapseFlag = &cli.BoolFlag{
		Name:     "nocollapse",
		Usage:    "Always print the result list, even for zero or one outputs",
		Category: flags.ContractCategory,
	}

	// Transaction settings
	FromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Sender address (default = the node's default account)",
		Category: flags.TransactionCategory,
	}
	GasFlag = &cli.Uint64Flag{
		Name:     "gas",
		Usage:    "Gas limit (0 = chosen by the node)",
		Category: flags.TransactionCategory,
	}
	GasPriceFlag = &flags.BigFlag{
		Name:     "gasprice",
		Usage:    "Gas price in wei (0 = chosen by the node)",
		Category: flags.TransactionCategory,
	}
	ValueFlag = &flags.BigFlag{
		Name:     "value",
		Usage:    "Wei sent along with the transaction",
		Category: flags.TransactionCategory,
	}

	// Filter settings
	ShhFlag = &cli.BoolFlag{
		Name:     "shh",
		Usage:    "Watch whisper messages instead of chain state",
		Category: flags.FilterCategory,
	}
	HistoryFlag = &cli.BoolFlag{
		Name:     "history",
		Usage:    "Print the messages already matching the filter before watching",
		Category: flags.FilterCategory,
	}
	CountFlag = &cli.IntFlag{
		Name:     "count",
		Usage:    "Exit after this many messages (0 = run until interrupted)",
		Category: flags.FilterCategory,
	}

	// Output
	OutputFlag = &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "Output format (json|yaml)",
		Value:    "json",
		Category: flags.MiscCategory,
	}
)

// ConnectionFlags are the flags shared by every command talking to a node.
var ConnectionFlags = []cli.Flag{
	EndpointFlag,
	PollIntervalFlag,
	HeaderFlag,
	JWTSecretFlag,
	RateLimitFlag,
	RateBurstFlag,
	WSOriginFlag,
}

// TransactionFlags are the call-shaping flags of contract invocations.
var TransactionFlags = []cli.Flag{
	FromFlag,
	GasFlag,
	GasPriceFlag,
	ValueFlag,
}

// SetNodeConfig applies node-related command line flags to the config.
// SetNodeConfig 将节点相关的命令行标志应用到配置中。
func SetNodeConfig(ctx *cli.Context, cfg *node.Config) error {
	if ctx.IsSet(EndpointFlag.Name) || cfg.Endpoint == "" {
		cfg.Endpoint = ctx.String(EndpointFlag.Name)
	}
	if ctx.IsSet(PollIntervalFlag.Name) {
		cfg.PollInterval = ctx.Duration(PollIntervalFlag.Name)
	}
	for _, h := range ctx.StringSlice(HeaderFlag.Name) {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid --%s %q, want \"Name: value\"", HeaderFlag.Name, h)
		}
		if cfg.HTTPHeaders == nil {
			cfg.HTTPHeaders = make(map[string]string)
		}
		cfg.HTTPHeaders[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	if ctx.IsSet(JWTSecretFlag.Name) {
		cfg.JWTSecret = ctx.String(JWTSecretFlag.Name)
	}
	if ctx.IsSet(RateLimitFlag.Name) {
		cfg.RequestsPerSecond = ctx.Float64(RateLimitFlag.Name)
	}
	if ctx.IsSet(RateBurstFlag.Name) || cfg.RequestBurst == 0 {
		cfg.RequestBurst = ctx.Int(RateBurstFlag.Name)
	}
	if ctx.IsSet(WSOriginFlag.Name) {
		cfg.WSOrigin = ctx.String(WSOriginFlag.Name)
	}
	return nil
}

// Fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
func Fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}
