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
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sunyihoo/go-web3/log"
	"github.com/sunyihoo/go-web3/rpc"
)

// Config represents a small collection of configuration values to fine tune
// a client session: where the node is, how to reach it and how often filters
// are polled.
// Config 表示用于微调客户端会话的一小组配置值。
type Config struct {
	// Endpoint is the URL of the node: http(s)://, ws(s):// or the file system
	// path of an IPC socket. An empty endpoint leaves the session without a
	// transport until one is attached to its manager.
	// 节点地址；为空时会话没有传输层。
	Endpoint string

	// PollInterval is the period of the filter polling loop.
	// 过滤器轮询间隔。
	PollInterval time.Duration

	// HTTPHeaders are added to every HTTP request and websocket handshake.
	HTTPHeaders map[string]string `toml:",omitempty"`

	// JWTSecret is the path to a hex-encoded 32 byte secret. When set, every
	// HTTP request carries a freshly signed bearer token.
	// JWT 密钥文件路径；设置后每个 HTTP 请求都会携带新签名的令牌。
	JWTSecret string `toml:",omitempty"`

	// RequestsPerSecond limits the HTTP request rate, 0 means no limit.
	RequestsPerSecond float64 `toml:",omitempty"`

	// RequestBurst is the number of requests allowed above the rate at once.
	RequestBurst int `toml:",omitempty"`

	// WSOrigin is the Origin header sent in the websocket handshake.
	WSOrigin string `toml:",omitempty"`

	// Logger is a custom logger to use with the node.
	Logger log.Logger `toml:"-"`
}

// clientOptions translates the configuration into transport options.
func (c *Config) clientOptions() ([]rpc.ClientOption, error) {
	var options []rpc.ClientOption
	for k, v := range c.HTTPHeaders {
		options = append(options, rpc.WithHeader(k, v))
	}
	if c.RequestsPerSecond > 0 {
		options = append(options, rpc.WithRateLimit(c.RequestsPerSecond, c.RequestBurst))
	}
	if c.JWTSecret != "" {
		secret, err := readJWTSecret(c.JWTSecret)
		if err != nil {
			return nil, err
		}
		options = append(options, rpc.WithHTTPAuth(NewJWTAuth(secret)))
	}
	return options, nil
}

// isWebsocket reports whether the endpoint is dialed through a websocket.
func (c *Config) isWebsocket() bool {
	u, err := url.Parse(c.Endpoint)
	return err == nil && (u.Scheme == "ws" || u.Scheme == "wss")
}

// readJWTSecret loads a hex-encoded 32 byte secret, 0x prefix optional.
// readJWTSecret 读取十六进制编码的 32 字节密钥。
func readJWTSecret(path string) ([32]byte, error) {
	var secret [32]byte
	data, err := os.ReadFile(path)
	if err != nil {
		return secret, err
	}
	text := strings.TrimPrefix(strings.TrimSpace(string(data)), "0x")
	raw, err := hex.DecodeString(text)
	if err != nil || len(raw) != len(secret) {
		return secret, fmt.Errorf("%w in %s", errBadJWTSecret, path)
	}
	copy(secret[:], raw)
	return secret, nil
}
