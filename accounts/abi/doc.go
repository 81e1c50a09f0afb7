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

// Package abi implements the contract ABI codec used by the web3 client.
//
// Every value is encoded into 32-byte words. Static values take one word.
// Dynamic values (unsized string and bytes, and T[] arrays) put a length word
// into a header block that precedes all payload words, and append their
// payload after the static words of the arguments declared before them.
// Negative integers use the 256-bit two's complement and fixed point values
// use the Q128.128 layout.
//
// abi 包实现 web3 客户端使用的合约 ABI 编解码器。
//
// 所有值都编码为 32 字节的字。静态值占一个字；动态值（无长度的 string、bytes 以及 T[] 数组）
// 在所有载荷之前的头部块中写入长度字，再按声明顺序附加其载荷。
// 负整数使用 256 位补码，定点数使用 Q128.128 布局。
package abi

// 编码示例：
// test(uint256) 输入 1 编码为 0000...0001（64 个十六进制字符）。
// bytes 输出 0000...0005 ‖ 68656c6c6f00...00 解码为 "hello"。
