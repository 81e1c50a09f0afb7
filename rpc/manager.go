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

package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sunyihoo/go-web3/log"
)

const (
	// DefaultEndpoint is the node address used when none is configured.
	DefaultEndpoint = "http://localhost:8080"

	// DefaultPollInterval is the period of the polling loop.
	DefaultPollInterval = time.Second
)

var (
	errManagerRunning = errors.New("rpc: polling loop already running")
	errManagerStopped = errors.New("rpc: polling loop not running")
)

// PollCallback receives the non-empty list a poll request returned.
type PollCallback func(messages []json.RawMessage)

// pollEntry is one recurring request of the polling loop.
type pollEntry struct {
	req      Request
	id       string
	callback PollCallback
}

// Config tunes a Manager. The zero value selects the defaults.
type Config struct {
	PollInterval time.Duration // period between two poll ticks, DefaultPollInterval if zero
	Logger       log.Logger    // parent logger, the root logger if nil
}

// Manager owns outbound request sequencing, the active transport and the
// polling loop that re-sends subscription checks. It replaces a process-wide
// provider: every client session holds its own Manager.
//
// A Manager without a transport is unconfigured: Send fails fast with
// ErrTransportUnconfigured. Attaching a transport makes it ready.
//
// Manager 负责请求编号、当前传输层以及轮询循环。没有传输层时处于未配置状态，Send 立即返回 ErrTransportUnconfigured。
type Manager struct {
	idCounter atomic.Uint64
	interval  time.Duration
	session   string
	log       log.Logger

	mu        sync.Mutex // protects transport, polls and the loop handles
	transport Transport
	polls     []pollEntry
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewManager creates a manager sending through transport, which may be nil.
func NewManager(transport Transport, cfg Config) *Manager {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	session := uuid.New().String()
	parent := cfg.Logger
	if parent == nil {
		parent = log.Root()
	}
	return &Manager{
		interval:  cfg.PollInterval,
		session:   session,
		log:       parent.With("session", session),
		transport: transport,
	}
}

// Session returns the unique id of this manager, also attached to its log records.
func (m *Manager) Session() string {
	return m.session
}

// SetTransport attaches or replaces the transport. There is no way back to
// the unconfigured state other than attaching nil.
func (m *Manager) SetTransport(t Transport) {
	m.mu.Lock()
	m.transport = t
	m.mu.Unlock()
}

// HasTransport reports whether the manager is ready to send.
func (m *Manager) HasTransport() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transport != nil
}

// LastID returns the id assigned to the most recent request, 0 if none was sent.
func (m *Manager) LastID() uint64 {
	return m.idCounter.Load()
}

// Send assigns the next id to req, forwards it to the transport and returns
// the result member of the response. An error member is returned as an Error.
// Transport errors are returned unchanged.
// Send 为请求分配下一个 id，经传输层发送并返回响应的 result 成员。
func (m *Manager) Send(ctx context.Context, req Request) (json.RawMessage, error) {
	m.mu.Lock()
	transport := m.transport
	m.mu.Unlock()

	id := m.idCounter.Add(1)
	if transport == nil {
		m.log.Error("Request without transport", "method", req.Method, "id", id)
		return nil, ErrTransportUnconfigured
	}
	payload, err := newMessage(id, req)
	if err != nil {
		return nil, fmt.Errorf("rpc: encoding %s params: %w", req.Method, err)
	}
	m.log.Trace("Sending request", "method", req.Method, "id", id)

	start := time.Now()
	raw, err := transport.Send(ctx, payload)
	if err != nil {
		m.log.Debug("Transport failure", "method", req.Method, "id", id, "err", err)
		return nil, err
	}
	result, err := parseResponse(raw)
	if err != nil {
		m.log.Debug("Request failed", "method", req.Method, "id", id, "err", err)
		return nil, err
	}
	m.log.Trace("Received response", "method", req.Method, "id", id, "elapsed", time.Since(start))
	return result, nil
}

// Call performs a JSON-RPC call with the given arguments and unmarshals into
// result if no error occurred. A nil result discards the response.
//
// The result must be a pointer so that package json can unmarshal into it.
func (m *Manager) Call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if result != nil && reflect.TypeOf(result).Kind() != reflect.Ptr {
		return fmt.Errorf("call result parameter must be pointer or nil interface: %v", result)
	}
	raw, err := m.Send(ctx, Request{Method: method, Params: args})
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(raw, result)
}

// StartPolling registers req to be sent on every tick under the given
// subscription id. The transport is not contacted.
// StartPolling 注册在每次轮询时发送的请求，不会立即访问传输层。
func (m *Manager) StartPolling(req Request, id string, callback PollCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls = append(m.polls, pollEntry{req: req, id: id, callback: callback})
}

// StopPolling removes every entry registered under id. Removing an unknown id
// is a no-op.
func (m *Manager) StopPolling(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.polls[:0]
	for _, e := range m.polls {
		if e.id != id {
			kept = append(kept, e)
		}
	}
	// drop references held by the tail
	for i := len(kept); i < len(m.polls); i++ {
		m.polls[i] = pollEntry{}
	}
	m.polls = kept
}

// Polling reports the number of registered poll entries.
func (m *Manager) Polling() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.polls)
}

// Poll runs a single tick: every entry registered when the tick starts is
// sent once, sequentially. Results that fail, are not a list or are an empty
// list are dropped for this tick.
// Poll 执行一次轮询：对开始时快照中的每个条目依次发送一次；出错、非列表或空列表的结果被丢弃。
func (m *Manager) Poll(ctx context.Context) {
	m.mu.Lock()
	snapshot := make([]pollEntry, len(m.polls))
	copy(snapshot, m.polls)
	m.mu.Unlock()

	for _, e := range snapshot {
		if ctx.Err() != nil {
			return
		}
		result, err := m.Send(ctx, e.req)
		if err != nil {
			m.log.Trace("Dropped poll result", "poll", e.id, "err", err)
			continue
		}
		messages, ok := nonEmptyList(result)
		if !ok {
			continue
		}
		m.log.Debug("Poll delivered", "poll", e.id, "messages", len(messages))
		e.callback(messages)
	}
}

// Run drives the polling loop until ctx is canceled. The timer is re-armed
// only after a tick has finished, so ticks never overlap.
// Run 驱动轮询循环直到 ctx 取消；每次轮询结束后才重新计时，轮询不会重叠。
func (m *Manager) Run(ctx context.Context) error {
	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			m.Poll(ctx)
			timer.Reset(m.interval)
		}
	}
}

// Start launches Run on a background goroutine.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return errManagerRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.cancel, m.done = cancel, done
	go func() {
		defer close(done)
		m.Run(ctx)
	}()
	m.log.Debug("Polling loop started", "interval", m.interval)
	return nil
}

// Stop terminates the loop launched by Start and waits for it. A tick in
// flight is canceled through its context.
func (m *Manager) Stop() error {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return errManagerStopped
	}
	cancel()
	<-done
	m.log.Debug("Polling loop stopped")
	return nil
}

// Close stops the polling loop if it runs and closes the transport when it
// holds a connection.
func (m *Manager) Close() error {
	m.Stop()
	m.mu.Lock()
	transport := m.transport
	m.mu.Unlock()
	if c, ok := transport.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
