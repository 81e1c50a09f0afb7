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

package filters

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	web3 "github.com/sunyihoo/go-web3"
	"github.com/sunyihoo/go-web3/rpc"
)

// fakeNode answers filter requests in process and records every call.
type fakeNode struct {
	mu        sync.Mutex
	calls     []string
	params    map[string][]json.RawMessage
	changes   []interface{} // consumed by successive *_changed calls
	failUnins bool
}

func newFakeNode() *fakeNode {
	return &fakeNode{params: make(map[string][]json.RawMessage)}
}

func (n *fakeNode) handle(ctx context.Context, method string, params []json.RawMessage) (interface{}, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, method)
	n.params[method] = params

	switch method {
	case "eth_newFilter", "eth_newFilterString":
		return 7, nil
	case "shh_newFilter":
		return "0xab", nil
	case "eth_changed", "shh_changed":
		if len(n.changes) == 0 {
			return []interface{}{}, nil
		}
		next := n.changes[0]
		n.changes = n.changes[1:]
		return next, nil
	case "eth_uninstallFilter", "shh_uninstallFilter":
		if n.failUnins {
			return nil, errors.New("filter not found")
		}
		return true, nil
	case "eth_filterLogs", "shh_getMessages":
		return []string{"a", "b"}, nil
	}
	return nil, errors.New("method not found")
}

func (n *fakeNode) called() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

func newTestFilter(t *testing.T, proto WatchProtocol, options interface{}) (*Filter, *fakeNode, *rpc.Manager) {
	t.Helper()
	node := newFakeNode()
	m := rpc.NewManager(rpc.NewInProcTransport(node.handle), rpc.Config{})
	f, err := New(context.Background(), m, proto, options)
	require.NoError(t, err)
	return f, node, m
}

func TestNewFilterMethodByShape(t *testing.T) {
	f, node, m := newTestFilter(t, Eth, "chain")
	assert.Equal(t, []string{"eth_newFilterString"}, node.called())
	assert.JSONEq(t, `7`, string(f.ID()))
	assert.Equal(t, "eth:7", f.Key())
	assert.Equal(t, 1, m.Polling())

	latest := int64(-1)
	_, node, _ = newTestFilter(t, Eth, web3.FilterQuery{Latest: &latest})
	assert.Equal(t, []string{"eth_newFilter"}, node.called())
	assert.JSONEq(t, `[{"latest":-1}]`, jsonList(node.params["eth_newFilter"]))

	f, node, _ = newTestFilter(t, Shh, map[string]interface{}{"topic": []string{"0x01"}})
	assert.Equal(t, []string{"shh_newFilter"}, node.called())
	assert.Equal(t, `shh:"0xab"`, f.Key())
}

func TestNewFilterDoesNotPoll(t *testing.T) {
	_, node, m := newTestFilter(t, Eth, "pending")
	assert.Equal(t, 1, m.Polling())
	assert.Len(t, node.called(), 1)
}

func TestNewFilterFailure(t *testing.T) {
	m := rpc.NewManager(nil, rpc.Config{})
	_, err := New(context.Background(), m, Eth, "chain")
	assert.ErrorIs(t, err, rpc.ErrTransportUnconfigured)
	assert.Zero(t, m.Polling())
}

func TestTriggerOrder(t *testing.T) {
	f, _, _ := newTestFilter(t, Eth, "chain")

	var got []string
	f.Changed(func(msg json.RawMessage) { got = append(got, "A"+string(msg)) })
	f.Arrived(func(msg json.RawMessage) { got = append(got, "B"+string(msg)) })

	f.Trigger([]json.RawMessage{json.RawMessage(`1`), json.RawMessage(`2`)})
	assert.Equal(t, []string{"A1", "A2", "B1", "B2"}, got)
}

func TestTriggerWithoutCallbacks(t *testing.T) {
	f, _, _ := newTestFilter(t, Eth, "chain")
	f.Trigger([]json.RawMessage{json.RawMessage(`1`)})
}

func TestTriggerSnapshot(t *testing.T) {
	f, _, _ := newTestFilter(t, Eth, "chain")
	var calls int
	f.Changed(func(json.RawMessage) {
		calls++
		f.Changed(func(json.RawMessage) { calls += 100 })
	})
	f.Trigger([]json.RawMessage{json.RawMessage(`1`)})
	assert.Equal(t, 1, calls)
}

func TestPollDeliversChanges(t *testing.T) {
	f, node, m := newTestFilter(t, Eth, "chain")
	node.changes = []interface{}{
		[]string{"x", "y"},
		"not a list",
		[]string{},
		[]string{"z"},
	}
	var got []string
	f.Changed(func(msg json.RawMessage) {
		var s string
		require.NoError(t, json.Unmarshal(msg, &s))
		got = append(got, s)
	})
	for i := 0; i < 4; i++ {
		m.Poll(context.Background())
	}
	assert.Equal(t, []string{"x", "y", "z"}, got)
	assert.JSONEq(t, `[7]`, jsonList(node.params["eth_changed"]))
}

func TestUninstall(t *testing.T) {
	f, node, m := newTestFilter(t, Eth, "chain")
	require.NoError(t, f.Uninstall(context.Background()))
	assert.Zero(t, m.Polling())
	assert.Equal(t, []string{"eth_newFilterString", "eth_uninstallFilter"}, node.called())
	assert.JSONEq(t, `[7]`, jsonList(node.params["eth_uninstallFilter"]))

	m.Poll(context.Background())
	assert.Len(t, node.called(), 2)
}

func TestUninstallStopsPollingOnError(t *testing.T) {
	f, node, m := newTestFilter(t, Shh, nil)
	node.failUnins = true
	err := f.Uninstall(context.Background())
	require.Error(t, err)
	var rpcErr rpc.Error
	assert.ErrorAs(t, err, &rpcErr)
	assert.Zero(t, m.Polling())
}

func TestUninstallKeepsOtherFilters(t *testing.T) {
	node := newFakeNode()
	m := rpc.NewManager(rpc.NewInProcTransport(node.handle), rpc.Config{})
	a, err := New(context.Background(), m, Eth, "chain")
	require.NoError(t, err)
	_, err = New(context.Background(), m, Shh, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Polling())

	require.NoError(t, a.Uninstall(context.Background()))
	assert.Equal(t, 1, m.Polling())
}

func TestMessages(t *testing.T) {
	f, node, _ := newTestFilter(t, Eth, "chain")
	logs, err := f.Logs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.JSONEq(t, `"a"`, string(logs[0]))
	assert.Contains(t, node.called(), "eth_filterLogs")

	f, node, _ = newTestFilter(t, Shh, nil)
	msgs, err := f.Messages(context.Background())
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Contains(t, node.called(), "shh_getMessages")
}

func jsonList(params []json.RawMessage) string {
	b, _ := json.Marshal(params)
	return string(b)
}
