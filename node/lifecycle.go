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

// Lifecycle encompasses the behavior of services that can be started and stopped
// together with the node. The node's own polling loop is registered as the
// first lifecycle.
// Lifecycle 接口定义了可随节点启动和停止的服务的生命周期行为。
type Lifecycle interface {
	// Start is called when the node starts to spawn any goroutines required by
	// the service.
	// Start 方法在节点启动时调用，用于启动服务所需的 goroutine。
	Start() error

	// Stop terminates all goroutines belonging to the service, blocking until they
	// are all terminated.
	// Stop 方法终止属于该服务的所有 goroutine，并阻塞直到它们全部停止。
	Stop() error
}
