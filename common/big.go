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

package common

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Common big integers often used
// 常用的大整数
var (
	Big0   = big.NewInt(0)
	Big1   = big.NewInt(1)
	Big2   = big.NewInt(2)
	Big3   = big.NewInt(3)
	Big32  = big.NewInt(32)
	Big256 = big.NewInt(256)
	Big257 = big.NewInt(257)

	U2560 = uint256.NewInt(0)
)

// Word-width boundaries of the ABI integer encoding.
// ABI 整数编码的字宽边界。
var (
	// TT255 is 2^255, the first value that does not fit a signed word.
	// TT255 即 2^255，第一个无法放入有符号字的值。
	TT255 = new(big.Int).Lsh(Big1, 255)
	// TT256 is 2^256, the first value that does not fit an unsigned word.
	TT256 = new(big.Int).Lsh(Big1, 256)
	// MaxUint256 is the all-ones word mask, 2^256 - 1.
	// MaxUint256 是全 1 的字掩码。
	MaxUint256 = new(big.Int).Sub(TT256, Big1)
	// MinInt256 is -2^255.
	MinInt256 = new(big.Int).Neg(TT255)
)
