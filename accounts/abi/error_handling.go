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

package abi

import (
	"errors"
	"fmt"
)

var (
	// errBadLength is returned when a payload is not a whole number of words.
	errBadLength = errors.New("abi: data length is not a multiple of 32 bytes")

	// errOverflow is returned when an integer does not fit into a single word.
	errOverflow = errors.New("abi: integer overflows 256-bit word")

	// errNegativeUnsigned is returned when a negative value is given for an unsigned type.
	errNegativeUnsigned = errors.New("abi: negative value for unsigned type")

	errArgCount = errors.New("abi: argument count mismatch")
)

// typeErr returns a formatted type casting error.
func typeErr(expected, got interface{}) error {
	return fmt.Errorf("abi: cannot use %v as type %v as argument", got, expected)
}

// shortErr returns a formatted error for a payload that ends before the
// declared fields have been consumed.
func shortErr(t Type, need, have int) error {
	return fmt.Errorf("abi: cannot unmarshal %v: need %d bytes, have %d", t, need, have)
}
