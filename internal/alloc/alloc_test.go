// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeap(t *testing.T) {
	var h Heap[uint32]
	buf := h.Allocate(5)
	require.Len(t, buf, 5)
	require.Equal(t, make([]uint32, 5), buf)
	h.Free(buf)
}

func TestSizeClass(t *testing.T) {
	for _, tc := range []struct{ n, class int }{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{1024, 10},
		{1025, 11},
	} {
		require.Equal(t, tc.class, sizeClass(tc.n), "sizeClass(%d)", tc.n)
	}
}

func TestPoolReuseIsZeroed(t *testing.T) {
	var p Pool[uint64]
	buf := p.Allocate(3)
	require.Len(t, buf, 3)
	require.Equal(t, 4, cap(buf))
	for i := range buf {
		buf[i] = ^uint64(0)
	}
	p.Free(buf)

	// sync.Pool may or may not hand the buffer back; either way it must be zeroed
	again := p.Allocate(4)
	require.Len(t, again, 4)
	require.Equal(t, make([]uint64, 4), again)
}

func TestPoolIgnoresForeignBuffers(t *testing.T) {
	var p Pool[byte]
	// cap 3 isn't a size class Pool hands out
	p.Free(make([]byte, 3))
	p.Free(nil)
	buf := p.Allocate(2)
	require.Len(t, buf, 2)
	require.Equal(t, 2, cap(buf))
}
