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

package debug

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-web3/log"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLogFile(t *testing.T) {
	root := log.Root()
	defer log.SetDefault(root)

	file := filepath.Join(t.TempDir(), "logs", "web3.log")
	ctx := newContext(t, "--log.file", file, "--log.format", "logfmt", "--verbosity", "4")
	require.NoError(t, Setup(ctx))
	log.Debug("Hello from the test", "answer", 42)
	Exit()
	logOutputFile = nil

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello from the test")
	assert.Contains(t, string(data), "answer=42")
}

func TestSetupRejectsBadInput(t *testing.T) {
	root := log.Root()
	defer log.SetDefault(root)

	assert.Error(t, Setup(newContext(t, "--log.format", "xml")))
	assert.Error(t, Setup(newContext(t, "--log.vmodule", "rpc")))
}
