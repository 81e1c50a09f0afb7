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
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"gopkg.in/yaml.v3"
)

const tokenABI = `[
	{ "name" : "balanceOf", "constant" : true, "inputs" : [ { "name" : "who", "type" : "address" } ], "outputs" : [ { "name" : "balance", "type" : "uint256" } ] },
	{ "name" : "transfer", "inputs" : [ { "name" : "to", "type" : "address" }, { "name" : "value", "type" : "uint256" } ], "outputs" : [ { "type" : "bool" } ] }
]`

const tokenAddr = "0x00000000000000000000000000000000000000aa"

// rpcServer answers JSON-RPC requests from a result table and records the
// request bodies.
type rpcServer struct {
	mu       sync.Mutex
	results  map[string]interface{}
	requests []map[string]interface{}
}

func (s *rpcServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req map[string]interface{}
	json.Unmarshal(body, &req)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	method, _ := req["method"].(string)
	result, ok := s.results[method]
	s.mu.Unlock()

	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req["id"]}
	if ok {
		resp["result"] = result
	} else {
		resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *rpcServer) methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, req := range s.requests {
		m, _ := req["method"].(string)
		out = append(out, m)
	}
	return out
}

func (s *rpcServer) last(method string) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i]["method"] == method {
			return s.requests[i]
		}
	}
	return nil
}

func newTestServer(t *testing.T, results map[string]interface{}) (*rpcServer, string) {
	t.Helper()
	srv := &rpcServer{results: results}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts.URL
}

// runWeb3 runs the command line with the given arguments and returns what
// it printed.
func runWeb3(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	a := newApp()
	a.Writer = out
	a.ErrWriter = io.Discard
	err := a.Run(append([]string{"web3"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSelectorCommand(t *testing.T) {
	out, err := runWeb3(t, "selector", "transfer(address,uint256)", "balanceOf(address)")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0xa9059cbb", got["transfer(address,uint256)"])
	assert.Equal(t, abi.SelectorHash("balanceOf(address)"), got["balanceOf(address)"])

	_, err = runWeb3(t, "selector")
	assert.Error(t, err)
}

func TestEncodeDecodeCommands(t *testing.T) {
	out, err := runWeb3(t, "encode", "uint256", "5", "string", "hello", "int8[]", "[1,-2]")
	require.NoError(t, err)
	var data string
	require.NoError(t, json.Unmarshal([]byte(out), &data))

	want, err := abi.NewArguments("uint256", "string", "int8[]")
	require.NoError(t, err)
	packed, err := want.Pack("5", "hello", []interface{}{"1", "-2"})
	require.NoError(t, err)
	assert.Equal(t, hexutil.Encode(packed), data)

	out, err = runWeb3(t, "decode", "uint256,string,int8[]", data)
	require.NoError(t, err)
	var values []interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, []interface{}{"5", "hello", []interface{}{"1", "-2"}}, values)

	_, err = runWeb3(t, "encode", "uint256")
	assert.Error(t, err)
	_, err = runWeb3(t, "encode", "uint7", "1")
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	data, err := abi.Encode("address", tokenAddr)
	require.NoError(t, err)

	out, err := runWeb3(t, "decode", "--output", "yaml", "address", hexutil.Encode(data))
	require.NoError(t, err)
	var got string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, tokenAddr, got)

	_, err = runWeb3(t, "decode", "--output", "xml", "address", hexutil.Encode(data))
	assert.ErrorContains(t, err, "unknown output format")
}

func TestParseArg(t *testing.T) {
	tests := []struct {
		typ  string
		in   string
		want interface{}
	}{
		{"uint256", "0x10", "0x10"},
		{"bool", "true", true},
		{"string", "0xabc", "0xabc"},
		{"bytes", "0x0102", []byte{1, 2}},
		{"bytes", "hi", []byte("hi")},
		{"uint8[]", "[]", []interface{}{}},
		{"bool[]", "[true, false]", []interface{}{true, false}},
	}
	for _, tt := range tests {
		got, err := parseArg(abi.MustNewType(tt.typ), tt.in)
		require.NoError(t, err, tt.typ)
		assert.Equal(t, tt.want, got, tt.typ)
	}

	_, err := parseArg(abi.MustNewType("bool"), "maybe")
	assert.Error(t, err)
	_, err = parseArg(abi.MustNewType("uint8[]"), "1,2")
	assert.Error(t, err)
}

func TestCallCommand(t *testing.T) {
	ret, err := abi.Encode("uint256", 42)
	require.NoError(t, err)
	srv, url := newTestServer(t, map[string]interface{}{"eth_call": hexutil.Encode(ret)})
	abiFile := writeFile(t, "token.abi", tokenABI)

	out, err := runWeb3(t, "call", "--endpoint", url, "--abi", abiFile, "--address", tokenAddr,
		"--from", "0x00000000000000000000000000000000000000bb", "balanceOf", "0x01")
	require.NoError(t, err)
	assert.Equal(t, "\"42\"\n", out)

	req := srv.last("eth_call")
	require.NotNil(t, req)
	params := req["params"].([]interface{})
	msg := params[0].(map[string]interface{})
	assert.Equal(t, tokenAddr, msg["to"])
	assert.Equal(t, "0x00000000000000000000000000000000000000bb", msg["from"])
	assert.True(t, strings.HasPrefix(msg["data"].(string), abi.SelectorHash("balanceOf(address)")))

	out, err = runWeb3(t, "call", "--endpoint", url, "--abi", abiFile, "--address", tokenAddr,
		"--nocollapse", "balanceOf(address)", "0x01")
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"42\"\n]\n", out)
}

func TestCallCommandErrors(t *testing.T) {
	_, url := newTestServer(t, nil)
	abiFile := writeFile(t, "token.abi", tokenABI)

	_, err := runWeb3(t, "call", "--endpoint", url, "--abi", abiFile, "--address", tokenAddr, "missing")
	assert.ErrorIs(t, err, abi.ErrMethodNotFound)

	_, err = runWeb3(t, "call", "--endpoint", url, "--abi", abiFile, "--address", tokenAddr, "balanceOf")
	assert.ErrorContains(t, err, "takes 1 arguments")

	_, err = runWeb3(t, "call", "--endpoint", url, "--abi", abiFile, "--address", "nope", "balanceOf", "1")
	assert.ErrorContains(t, err, "invalid --address")

	// the node rejects eth_call
	_, err = runWeb3(t, "call", "--endpoint", url, "--abi", abiFile, "--address", tokenAddr, "balanceOf", "1")
	assert.ErrorContains(t, err, "method not found")
}

func TestTransactCommand(t *testing.T) {
	srv, url := newTestServer(t, map[string]interface{}{"eth_transact": "0x"})
	abiFile := writeFile(t, "token.abi", tokenABI)

	out, err := runWeb3(t, "transact", "--endpoint", url, "--abi", abiFile, "--address", tokenAddr,
		"--gas", "90000", "--value", "0x10", "transfer", "0x02", "7")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, tokenAddr, got["contract"])
	assert.Equal(t, "transfer(address,uint256)", got["method"])
	assert.Equal(t, "0xa9059cbb", got["selector"])

	req := srv.last("eth_transact")
	require.NotNil(t, req)
	msg := req["params"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "0x15f90", msg["gas"])
	assert.Equal(t, "0x10", msg["value"])
}

func TestWatchCommand(t *testing.T) {
	srv, url := newTestServer(t, map[string]interface{}{
		"eth_newFilterString": 3,
		"eth_changed":         []interface{}{map[string]interface{}{"block": 1}},
		"eth_uninstallFilter": true,
	})
	out, err := runWeb3(t, "watch", "--endpoint", url, "--poll.interval", "10ms", "--count", "1")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(1), got["block"])

	methods := srv.methods()
	require.NotEmpty(t, methods)
	assert.Equal(t, "eth_newFilterString", methods[0])
	assert.Equal(t, "eth_uninstallFilter", methods[len(methods)-1])
	assert.Equal(t, []interface{}{"chain"}, srv.last("eth_newFilterString")["params"])
}

func TestFilterOptions(t *testing.T) {
	opts, err := filterOptions("", false)
	require.NoError(t, err)
	assert.Equal(t, "chain", opts)

	opts, err = filterOptions("", true)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, opts)

	opts, err = filterOptions(`{"max": 10}`, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"max": float64(10)}, opts)

	_, err = filterOptions(`{"max"`, false)
	assert.Error(t, err)
}

func TestDumpAndLoadConfig(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "config.toml")
	_, err := runWeb3(t, "dumpconfig", "--endpoint", "http://node:9000", "--header", "X-Token: abc", dump)
	require.NoError(t, err)

	var cfg web3Config
	require.NoError(t, loadConfig(dump, &cfg))
	assert.Equal(t, "http://node:9000", cfg.Node.Endpoint)
	assert.Equal(t, map[string]string{"X-Token": "abc"}, cfg.Node.HTTPHeaders)

	// flags win over the file
	out, err := runWeb3(t, "dumpconfig", "--config", dump, "--endpoint", "ws://other:8546")
	require.NoError(t, err)
	assert.Contains(t, out, `Endpoint = "ws://other:8546"`)
}

func TestLoadConfigUnknownField(t *testing.T) {
	file := writeFile(t, "bad.toml", "[Node]\nEndpont = \"http://x\"\n")
	var cfg web3Config
	err := loadConfig(file, &cfg)
	assert.ErrorContains(t, err, "field 'Endpont' is not defined")

	file = writeFile(t, "old.toml", "[Node]\nHTTPPort = 8545\n")
	assert.NoError(t, loadConfig(file, &cfg))
}
