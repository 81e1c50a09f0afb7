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

package node

import (
	"context"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/accounts/abi/bind"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/eth/filters"
	"github.com/sunyihoo/go-web3/ethclient"
	"github.com/sunyihoo/go-web3/ethclient/shhclient"
	"github.com/sunyihoo/go-web3/log"
	"github.com/sunyihoo/go-web3/rpc"
)

// Node is a client session: one request manager with its transport and
// polling loop, and everything created on top of it.
// Node 是一个客户端会话：一个请求管理器及其传输层和轮询循环。
type Node struct {
	config        *Config
	log           log.Logger
	manager       *rpc.Manager
	eth           *ethclient.Client
	shh           *shhclient.Client
	filters       mapset.Set[*filters.Filter] // filters installed through the node, uninstalled on Close
	startStopLock sync.Mutex                  // Start/Close are protected by an additional lock
	state         int                         // Tracks state of node lifecycle

	lock       sync.Mutex
	lifecycles []Lifecycle // All registered services that have a lifecycle
}

const (
	initializingState = iota
	runningState
	closedState
)

// New creates a node session and dials the configured endpoint.
// New 创建节点会话并连接配置的端点。
func New(conf *Config) (*Node, error) {
	return NewContext(context.Background(), conf)
}

// NewContext is like New, with ctx bounding the dial.
func NewContext(ctx context.Context, conf *Config) (*Node, error) {
	// Copy config so future changes by the caller don't affect the node.
	confCopy := *conf
	conf = &confCopy
	if conf.Logger == nil {
		conf.Logger = log.New()
	}
	if conf.PollInterval <= 0 {
		conf.PollInterval = DefaultConfig.PollInterval
	}
	transport, err := dial(ctx, conf)
	if err != nil {
		return nil, err
	}
	manager := rpc.NewManager(transport, rpc.Config{PollInterval: conf.PollInterval, Logger: conf.Logger})
	node := &Node{
		config:  conf,
		log:     conf.Logger,
		manager: manager,
		eth:     ethclient.NewClient(manager),
		shh:     shhclient.NewClient(manager),
		filters: mapset.NewSet[*filters.Filter](),
	}
	node.lifecycles = append(node.lifecycles, manager)
	if conf.Endpoint != "" {
		node.log.Info("Connected to node", "endpoint", conf.Endpoint, "session", manager.Session())
	}
	return node, nil
}

// dial opens the transport for the configured endpoint. An empty endpoint
// yields no transport.
func dial(ctx context.Context, conf *Config) (rpc.Transport, error) {
	if conf.Endpoint == "" {
		return nil, nil
	}
	options, err := conf.clientOptions()
	if err != nil {
		return nil, err
	}
	if conf.isWebsocket() && conf.WSOrigin != "" {
		ws, err := rpc.DialWebsocket(ctx, conf.Endpoint, conf.WSOrigin, options...)
		if err != nil {
			return nil, err
		}
		return ws, nil
	}
	return rpc.DialTransport(ctx, conf.Endpoint, options...)
}

// RegisterLifecycle registers the given Lifecycle on the node.
func (n *Node) RegisterLifecycle(lifecycle Lifecycle) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.state != initializingState {
		panic("can't register lifecycle on running/stopped node")
	}
	n.lifecycles = append(n.lifecycles, lifecycle)
}

// Start starts all registered lifecycles, the polling loop first. Start can
// only be called once.
// Start 启动所有已注册的服务，首先是轮询循环。
func (n *Node) Start() error {
	n.startStopLock.Lock()
	defer n.startStopLock.Unlock()

	n.lock.Lock()
	switch n.state {
	case runningState:
		n.lock.Unlock()
		return ErrNodeRunning
	case closedState:
		n.lock.Unlock()
		return ErrNodeClosed
	}
	n.state = runningState
	lifecycles := make([]Lifecycle, len(n.lifecycles))
	copy(lifecycles, n.lifecycles)
	n.lock.Unlock()

	// Start all registered lifecycles.
	var started []Lifecycle
	for _, lifecycle := range lifecycles {
		if err := lifecycle.Start(); err != nil {
			n.stopLifecycles(started)
			n.lock.Lock()
			n.state = initializingState
			n.lock.Unlock()
			return err
		}
		started = append(started, lifecycle)
	}
	return nil
}

// Close uninstalls the filters created through the node, stops the lifecycles
// and closes the transport.
// Close 卸载通过节点创建的过滤器，停止服务并关闭传输层。
func (n *Node) Close() error {
	n.startStopLock.Lock()
	defer n.startStopLock.Unlock()

	n.lock.Lock()
	state := n.state
	n.state = closedState
	lifecycles := n.lifecycles
	n.lock.Unlock()

	if state == closedState {
		return ErrNodeStopped
	}
	var stopErr StopError
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	for _, f := range n.filters.ToSlice() {
		n.filters.Remove(f)
		if err := f.Uninstall(ctx); err != nil {
			stopErr.Filters = append(stopErr.Filters, err)
		}
	}
	if state == runningState {
		stopErr.Lifecycles = n.stopLifecycles(lifecycles)
	}
	stopErr.Transport = n.manager.Close()

	if len(stopErr.Filters) > 0 || len(stopErr.Lifecycles) > 0 || stopErr.Transport != nil {
		n.log.Debug("Node closed with errors", "err", &stopErr)
		return &stopErr
	}
	return nil
}

// stopLifecycles stops the given lifecycles in reverse order.
func (n *Node) stopLifecycles(started []Lifecycle) []error {
	var failures []error
	for i := len(started) - 1; i >= 0; i-- {
		if err := started[i].Stop(); err != nil {
			failures = append(failures, err)
		}
	}
	return failures
}

// Config returns the configuration of node.
func (n *Node) Config() *Config {
	return n.config
}

// Manager returns the request manager of the session.
func (n *Node) Manager() *rpc.Manager {
	return n.manager
}

// Eth returns the client of the eth, web3 and db namespaces.
func (n *Node) Eth() *ethclient.Client {
	return n.eth
}

// Shh returns the whisper client.
func (n *Node) Shh() *shhclient.Client {
	return n.shh
}

// Bind creates a proxy for the contract at address, sending through the
// session's eth client.
// Bind 为指定地址的合约创建代理。
func (n *Node) Bind(address common.Address, contractABI abi.ABI) *bind.Contract {
	return bind.Bind(address, contractABI, n.eth)
}

// Watch installs an eth filter tracked by the node.
func (n *Node) Watch(ctx context.Context, options interface{}) (*filters.Filter, error) {
	return n.track(n.eth.Watch(ctx, options))
}

// WatchShh installs a whisper filter tracked by the node.
func (n *Node) WatchShh(ctx context.Context, options interface{}) (*filters.Filter, error) {
	return n.track(n.shh.Watch(ctx, options))
}

// Uninstall removes a filter created through Watch or WatchShh. Filters left
// installed are removed by Close.
func (n *Node) Uninstall(ctx context.Context, f *filters.Filter) error {
	n.filters.Remove(f)
	return f.Uninstall(ctx)
}

// Filters returns the number of filters the node keeps installed.
func (n *Node) Filters() int {
	return n.filters.Cardinality()
}

func (n *Node) track(f *filters.Filter, err error) (*filters.Filter, error) {
	if err != nil {
		return nil, err
	}
	n.filters.Add(f)
	return f, nil
}
