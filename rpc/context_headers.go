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
	"net/http"
)

type mdHeaderKey struct{}

// NewContextWithHeaders returns a context carrying extra HTTP headers for
// every request sent with it. Headers already present in ctx are kept unless
// h overrides them. The HTTP transport applies them after its own headers.
// NewContextWithHeaders 返回携带额外 HTTP 头的上下文，HTTP 传输在自身头部之后应用它们。
func NewContextWithHeaders(ctx context.Context, h http.Header) context.Context {
	if len(h) == 0 {
		return ctx
	}
	merged := h.Clone()
	if prev, ok := ctx.Value(mdHeaderKey{}).(http.Header); ok {
		merged = setHeaders(prev.Clone(), h)
	}
	return context.WithValue(ctx, mdHeaderKey{}, merged)
}

// headersFromContext returns the headers attached by NewContextWithHeaders.
func headersFromContext(ctx context.Context) http.Header {
	source, _ := ctx.Value(mdHeaderKey{}).(http.Header)
	return source
}

// setHeaders copies src into dst, replacing values of the same key.
func setHeaders(dst http.Header, src http.Header) http.Header {
	for key, values := range src {
		dst[http.CanonicalHeaderKey(key)] = values
	}
	return dst
}
