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

package flags

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/urfave/cli/v2"
)

// Version is the version of the command line tools.
const Version = "0.1.0"

// NewApp creates an app with sane defaults.
// NewApp 创建带有合理默认值的应用。
func NewApp(usage string) *cli.App {
	app := cli.NewApp()
	app.EnableBashCompletion = true
	app.Name = filepath.Base(os.Args[0])
	app.Version = Version
	app.Usage = usage
	app.Copyright = "Copyright 2025 The go-web3 Authors"
	app.Before = func(ctx *cli.Context) error {
		return CheckExclusive(ctx)
	}
	cli.VersionPrinter = func(ctx *cli.Context) {
		fmt.Fprintf(ctx.App.Writer, "%s version %s %s/%s\n", ctx.App.Name, ctx.App.Version, runtime.GOOS, runtime.GOARCH)
	}
	return app
}

// Merge merges the given flag slices.
func Merge(groups ...[]cli.Flag) []cli.Flag {
	var ret []cli.Flag
	for _, group := range groups {
		ret = append(ret, group...)
	}
	return ret
}

// CheckExclusive verifies that at most one flag of every group registered
// through RegisterExclusive is set.
// CheckExclusive 校验互斥标志中最多只设置了一个。
func CheckExclusive(ctx *cli.Context) error {
	for _, pair := range exclusive {
		var set []string
		for _, f := range pair {
			if ctx.IsSet(f) {
				set = append(set, "--"+f)
			}
		}
		if len(set) > 1 {
			return fmt.Errorf("flags %v can't be used at the same time", set)
		}
	}
	return nil
}

// exclusive lists flag names that must not be combined.
var exclusive [][]string

// RegisterExclusive declares the named flags mutually exclusive.
func RegisterExclusive(names ...string) {
	exclusive = append(exclusive, names)
}
