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

// Package shhclient provides a client for the whisper (shh) RPC API.
package shhclient

import (
	"context"
	"fmt"

	"github.com/sunyihoo/go-web3/eth/filters"
	"github.com/sunyihoo/go-web3/ethclient"
	"github.com/sunyihoo/go-web3/rpc"
)

// Message is the options object of shh_post.
// Message 是 shh_post 的参数对象。
type Message struct {
	From     string   `json:"from,omitempty"` // identity signing the message
	To       string   `json:"to,omitempty"`   // recipient identity, broadcast if empty
	Topics   []string `json:"topic"`
	Payload  string   `json:"payload"`
	TTL      uint64   `json:"ttl,omitempty"`
	Priority uint64   `json:"priority,omitempty"`
}

// Client wraps the shh namespace of a node.
type Client struct {
	m *rpc.Manager
}

// NewClient creates a client that uses the given manager.
func NewClient(m *rpc.Manager) *Client {
	return &Client{m}
}

// Post broadcasts a message.
func (sc *Client) Post(ctx context.Context, msg Message) error {
	var ok bool
	if err := sc.m.Call(ctx, &ok, "shh_post", msg); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: shh_post", ethclient.ErrRejected)
	}
	return nil
}

// NewIdentity creates a new identity on the node and returns its public key.
// NewIdentity 在节点上创建新身份并返回其公钥。
func (sc *Client) NewIdentity(ctx context.Context) (string, error) {
	var id string
	err := sc.m.Call(ctx, &id, "shh_newIdentity")
	return id, err
}

// HaveIdentity reports whether the node holds the private key of identity.
func (sc *Client) HaveIdentity(ctx context.Context, identity string) (bool, error) {
	var have bool
	err := sc.m.Call(ctx, &have, "shh_haveIdentity", identity)
	return have, err
}

// NewGroup creates a group.
func (sc *Client) NewGroup(ctx context.Context, id, who string) (string, error) {
	var group string
	err := sc.m.Call(ctx, &group, "shh_newGroup", id, who)
	return group, err
}

// AddToGroup adds who to a group.
func (sc *Client) AddToGroup(ctx context.Context, group, who string) (string, error) {
	var res string
	err := sc.m.Call(ctx, &res, "shh_addToGroup", group, who)
	return res, err
}

// Watch installs a whisper filter.
func (sc *Client) Watch(ctx context.Context, options interface{}) (*filters.Filter, error) {
	return filters.New(ctx, sc.m, filters.Shh, options)
}
