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

// ErrMethodNotFound is returned when a display name or full method name is not
// present in the descriptor list.
// 当描述符列表中不存在该方法名时返回 ErrMethodNotFound。
var ErrMethodNotFound = errors.New("abi: method not found")

// UnsupportedTypeError is returned when a type tag does not match any
// registered base kind, or uses a size or array form the codec cannot encode.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("abi: unsupported type %q", e.Type)
}

// IsUnsupportedType reports whether err is, or wraps, an *UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	var ute *UnsupportedTypeError
	return errors.As(err, &ute)
}
