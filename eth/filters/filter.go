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

// Package filters implements polling subscriptions: a Filter installs a
// server-side filter, registers a recurring change check with the rpc.Manager
// and fans the returned messages out to callbacks.
//
// filters 包实现基于轮询的订阅：Filter 在节点上安装过滤器，向 rpc.Manager 注册周期性的变更检查，并把返回的消息分发给回调。
package filters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sunyihoo/go-web3/log"
	"github.com/sunyihoo/go-web3/rpc"
)

// WatchProtocol names the RPC methods behind a family of filters.
type WatchProtocol struct {
	Name string

	// NewFilter chooses the create method from the runtime shape of the
	// options argument.
	NewFilter func(options interface{}) string

	Changed   string // polled on every tick with the filter id
	Uninstall string // removes the filter on the node
	Messages  string // one-shot retrieval of everything matching the filter
}

var (
	// Eth watches chain state. A plain string option creates a topic-less
	// filter through eth_newFilterString, anything else a structured filter.
	// Eth 监视链上状态；字符串参数使用 eth_newFilterString，其他参数使用 eth_newFilter。
	Eth = WatchProtocol{
		Name: "eth",
		NewFilter: func(options interface{}) string {
			if _, ok := options.(string); ok {
				return "eth_newFilterString"
			}
			return "eth_newFilter"
		},
		Changed:   "eth_changed",
		Uninstall: "eth_uninstallFilter",
		Messages:  "eth_filterLogs",
	}

	// Shh watches whisper messages.
	Shh = WatchProtocol{
		Name:      "shh",
		NewFilter: func(interface{}) string { return "shh_newFilter" },
		Changed:   "shh_changed",
		Uninstall: "shh_uninstallFilter",
		Messages:  "shh_getMessages",
	}
)

// Callback receives one message of a poll batch.
type Callback func(message json.RawMessage)

// Filter is a single subscription handle. It keeps polling until Uninstall
// is called; a filter that is never uninstalled polls forever.
// Filter 是单个订阅句柄；在调用 Uninstall 之前会一直轮询。
type Filter struct {
	manager *rpc.Manager
	proto   WatchProtocol
	id      json.RawMessage
	key     string
	log     log.Logger

	mu        sync.Mutex
	callbacks []Callback
}

// New installs a filter on the node with the given options and registers its
// change check with the manager's polling loop.
// New 在节点上安装过滤器并把变更检查注册到管理器的轮询循环。
func New(ctx context.Context, manager *rpc.Manager, proto WatchProtocol, options interface{}) (*Filter, error) {
	method := proto.NewFilter(options)
	raw, err := manager.Send(ctx, rpc.Request{Method: method, Params: []interface{}{options}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	var id bytes.Buffer
	if err := json.Compact(&id, raw); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	f := &Filter{
		manager: manager,
		proto:   proto,
		id:      id.Bytes(),
		key:     proto.Name + ":" + id.String(),
	}
	f.log = log.New("filter", f.key)
	manager.StartPolling(rpc.Request{Method: proto.Changed, Params: []interface{}{f.id}}, f.key, f.Trigger)
	f.log.Debug("Installed filter", "method", method)
	return f, nil
}

// ID returns the opaque filter id assigned by the node.
func (f *Filter) ID() json.RawMessage {
	return f.id
}

// Key returns the key under which the filter polls, unique per protocol and id.
func (f *Filter) Key() string {
	return f.key
}

// Protocol returns the watch protocol of the filter.
func (f *Filter) Protocol() WatchProtocol {
	return f.proto
}

// Changed appends a callback. There is no way to remove a single callback;
// Uninstall stops all of them.
func (f *Filter) Changed(callback Callback) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, callback)
}

// Arrived is an alias of Changed.
func (f *Filter) Arrived(callback Callback) {
	f.Changed(callback)
}

// Trigger delivers every message to every callback: callbacks in
// registration order form the outer loop, messages in batch order the inner.
// Trigger 将每条消息分发给每个回调：外层按回调注册顺序，内层按消息顺序。
func (f *Filter) Trigger(messages []json.RawMessage) {
	f.mu.Lock()
	callbacks := make([]Callback, len(f.callbacks))
	copy(callbacks, f.callbacks)
	f.mu.Unlock()

	for _, cb := range callbacks {
		for _, msg := range messages {
			cb(msg)
		}
	}
}

// Uninstall removes the filter on the node and stops polling. Polling stops
// even when the uninstall request fails; that error is returned.
func (f *Filter) Uninstall(ctx context.Context) error {
	_, err := f.manager.Send(ctx, rpc.Request{Method: f.proto.Uninstall, Params: []interface{}{f.id}})
	f.manager.StopPolling(f.key)
	if err != nil {
		f.log.Debug("Uninstall request failed", "err", err)
		return err
	}
	f.log.Debug("Uninstalled filter")
	return nil
}

// Messages retrieves everything currently matching the filter.
func (f *Filter) Messages(ctx context.Context) ([]json.RawMessage, error) {
	var messages []json.RawMessage
	if err := f.manager.Call(ctx, &messages, f.proto.Messages, f.id); err != nil {
		return nil, err
	}
	return messages, nil
}

// Logs is an alias of Messages for eth filters.
func (f *Filter) Logs(ctx context.Context) ([]json.RawMessage, error) {
	return f.Messages(ctx)
}
