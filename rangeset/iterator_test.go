// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package rangeset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func drainKeys[K Key](next func() (K, bool)) []K {
	var keys []K
	for {
		k, ok := next()
		if !ok {
			return keys
		}
		keys = append(keys, k)
	}
}

func TestIteratorKeys(t *testing.T) {
	s := mustParse[uint16](t, "1-3,7,10-11", 0, 100)
	it := NewIterator(s, Borrow)

	_, ok := it.CurKey()
	require.False(t, ok, "unstarted iterator has no current key")
	_, ok = it.CurRange()
	require.False(t, ok)

	require.Equal(t, []uint16{1, 2, 3, 7, 10, 11}, drainKeys(it.NextKey))
	// exhausted until reset
	_, ok = it.NextKey()
	require.False(t, ok)
	_, ok = it.PrevKey()
	require.False(t, ok)
	_, ok = it.CurKey()
	require.False(t, ok)

	it.Reset()
	require.Equal(t, []uint16{11, 10, 7, 3, 2, 1}, drainKeys(it.PrevKey))
}

func TestIteratorMixedDirections(t *testing.T) {
	s := mustParse[uint16](t, "1-3,7", 0, 100)
	it := NewIterator(s, Borrow)

	k, ok := it.NextKey()
	require.True(t, ok)
	require.Equal(t, uint16(1), k)
	k, _ = it.NextKey()
	require.Equal(t, uint16(2), k)
	k, _ = it.PrevKey()
	require.Equal(t, uint16(1), k)
	cur, ok := it.CurKey()
	require.True(t, ok)
	require.Equal(t, uint16(1), cur)
	r, ok := it.CurRange()
	require.True(t, ok)
	require.Equal(t, Range[uint16]{1, 3}, r)

	r, ok = it.NextRange()
	require.True(t, ok)
	require.Equal(t, Range[uint16]{7, 7}, r)
	k, _ = it.PrevKey()
	require.Equal(t, uint16(3), k)
	_, ok = it.PrevRange()
	require.False(t, ok)
}

func TestIteratorRanges(t *testing.T) {
	s := mustParse[uint32](t, "1-3,7,10-11", 0, 100)
	it := NewIterator(s, Borrow)

	var forward []Range[uint32]
	for {
		r, ok := it.NextRange()
		if !ok {
			break
		}
		forward = append(forward, r)
		k, ok := it.CurKey()
		require.True(t, ok)
		require.Equal(t, r.Lo, k)
	}
	require.Equal(t, s.Ranges(), forward)

	it.Reset()
	var backward []Range[uint32]
	for {
		r, ok := it.PrevRange()
		if !ok {
			break
		}
		backward = append(backward, r)
		k, _ := it.CurKey()
		require.Equal(t, r.Hi, k)
	}
	require.Equal(t, []Range[uint32]{{10, 11}, {7, 7}, {1, 3}}, backward)
}

func TestIteratorEmpty(t *testing.T) {
	s := NewEmpty[uint8]()
	it := NewIterator(s, Borrow)
	_, ok := it.NextKey()
	require.False(t, ok)
	it.Reset()
	_, ok = it.PrevRange()
	require.False(t, ok)

	var detached Iterator[uint8]
	require.False(t, detached.Attached())
	_, ok = detached.NextKey()
	require.False(t, ok)
	require.True(t, detached.ApplyKeys(LoToHi, func(uint8) bool { return false }))
}

func TestIteratorResetReproducesTraversal(t *testing.T) {
	s := mustParse[uint16](t, "0,4-9,300-302,65535", 0, 65535)
	it := NewIterator(s, Borrow)
	first := drainKeys(it.NextKey)
	it.Reset()
	second := drainKeys(it.NextKey)
	require.Equal(t, first, second)

	fresh := NewIterator(s, Borrow)
	require.Equal(t, first, drainKeys(fresh.NextKey))

	other := NewIterator(s, Snapshot)
	require.Equal(t, first, drainKeys(other.NextKey))
	require.Len(t, first, 1+6+3+1)
}

func TestIteratorSnapshot(t *testing.T) {
	s := mustParse[uint16](t, "1-3", 0, 100)
	snap := NewIterator(s, Snapshot)
	borrowed := NewIterator(s, Borrow)

	_, err := s.AddRange(10, 12)
	require.NoError(t, err)

	require.Equal(t, []uint16{1, 2, 3}, drainKeys(snap.NextKey))
	require.Equal(t, []uint16{1, 2, 3, 10, 11, 12}, drainKeys(borrowed.NextKey))

	snap.Detach()
	require.False(t, snap.Attached())
	snap.Attach(s, Snapshot)
	require.Equal(t, []uint16{1, 2, 3, 10, 11, 12}, drainKeys(snap.NextKey))
	// the original set is untouched by detaching a snapshot
	snap.Detach()
	require.Equal(t, "1-3,10-12", s.String())
}

func TestIteratorApply(t *testing.T) {
	s := mustParse[uint8](t, "1-3,250-255", 0, 255)
	it := NewIterator(s, Borrow)

	var keys []uint8
	it.EachKey(LoToHi, func(k uint8) { keys = append(keys, k) })
	require.Equal(t, []uint8{1, 2, 3, 250, 251, 252, 253, 254, 255}, keys)

	keys = keys[:0]
	it.EachKey(HiToLo, func(k uint8) { keys = append(keys, k) })
	require.Equal(t, []uint8{255, 254, 253, 252, 251, 250, 3, 2, 1}, keys)

	keys = keys[:0]
	completed := it.ApplyKeys(LoToHi, func(k uint8) bool {
		keys = append(keys, k)
		return k < 2
	})
	require.False(t, completed)
	require.Equal(t, []uint8{1, 2}, keys)

	var ranges []Range[uint8]
	it.EachRange(HiToLo, func(r Range[uint8]) { ranges = append(ranges, r) })
	require.Equal(t, []Range[uint8]{{250, 255}, {1, 3}}, ranges)

	calls := 0
	completed = it.ApplyRanges(LoToHi, func(Range[uint8]) bool {
		calls++
		return false
	})
	require.False(t, completed)
	require.Equal(t, 1, calls)

	// bulk application leaves the cursor alone
	_, ok := it.CurKey()
	require.False(t, ok)
}
