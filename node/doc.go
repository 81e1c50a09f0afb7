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

/*
Package node sets up client sessions against an Ethereum node.

A Node owns one request manager, the transport it was dialed with and the
polling loop that drives filters. Typed clients for the eth and shh namespaces,
contract proxies and filters are all created through it and share that state.

# Node Lifecycle

The Node object has a lifecycle consisting of three basic states, INITIALIZING, RUNNING
and CLOSED.

	●───────┐
	     New()
	        │
	        ▼
	  INITIALIZING ────Start()─┐
	        │                  │
	        │                  ▼
	    Close()             RUNNING
	        │                  │
	        ▼                  │
	     CLOSED ◀──────Close()─┘

Creating a Node dials the configured endpoint and returns the node in its
INITIALIZING state. Requests may be sent right away; filters can be installed
but their callbacks only fire once the polling loop runs.

Starting the node starts all registered Lifecycle objects, the polling loop
being the first of them.

Closing the node uninstalls every filter created through it, stops the
lifecycles in reverse order and closes the transport. You must always call
Close on Node, even if the node was not started.

节点的生命周期包括 INITIALIZING、RUNNING 和 CLOSED 三个状态。
*/
package node
