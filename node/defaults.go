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
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sunyihoo/go-web3/rpc"
)

const (
	DefaultHTTPHost = "localhost" // Default host interface of the node's HTTP RPC server
	DefaultHTTPPort = 8080        // Default TCP port of the node's HTTP RPC server

	// closeTimeout bounds the filter uninstall requests sent by Close.
	closeTimeout = 5 * time.Second
)

// DefaultConfig contains reasonable default settings.
// DefaultConfig 包含合理的默认设置。
var DefaultConfig = Config{
	Endpoint:     rpc.DefaultEndpoint,
	PollInterval: rpc.DefaultPollInterval,
}

// DefaultConfigDir is the directory the command line tool looks for its
// configuration file in.
// DefaultConfigDir 是命令行工具查找配置文件的默认目录。
func DefaultConfigDir() string {
	home := homeDir()
	if home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Web3")
	case "windows":
		if appdata := os.Getenv("LOCALAPPDATA"); appdata != "" {
			return filepath.Join(appdata, "Web3")
		}
		return filepath.Join(home, "AppData", "Roaming", "Web3")
	default:
		return filepath.Join(home, ".web3")
	}
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
