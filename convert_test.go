// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitrange

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bpowers/bitrange/bitvec"
	"github.com/bpowers/bitrange/rangeset"
)

func TestRangeSetBitVectorRoundTrip(t *testing.T) {
	s, err := rangeset.Parse[uint16]("0,5-9,63-64,200-255", rangeset.DefaultDelim, 0, 255)
	require.NoError(t, err)

	v, err := RangeSetToBitVector[uint32](s)
	require.NoError(t, err)
	require.Equal(t, 256, v.Len())
	require.Equal(t, int(s.NumKeys()), v.Count())
	for k := 0; k < 256; k++ {
		require.Equal(t, s.Contains(uint16(k)), v.IsSet(k), "key %d", k)
	}

	back, err := BitVectorToRangeSet[uint16](v, 0, 255)
	require.NoError(t, err)
	require.True(t, s.Equal(back))
	require.Equal(t, "0,5-9,63-64,200-255", back.String())
}

func TestRangeSetToBitVectorTooLarge(t *testing.T) {
	s := rangeset.NewEmpty[uint64]()
	_, err := RangeSetToBitVector[uint64](s)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestBitVectorToRangeSetDomain(t *testing.T) {
	v := bitvec.New[uint8](20, false)
	v.SetRange(3, 6)
	v.Set(19)

	_, err := BitVectorToRangeSet[uint8](v, 4, 19)
	require.ErrorIs(t, err, rangeset.ErrOutOfDomain)
	_, err = BitVectorToRangeSet[uint8](v, 0, 18)
	require.ErrorIs(t, err, rangeset.ErrOutOfDomain)

	s, err := BitVectorToRangeSet[uint8](v, 3, 19)
	require.NoError(t, err)
	require.Equal(t, "3-6,19", s.String())

	empty, err := BitVectorToRangeSet[uint8](bitvec.New[uint8](20, false), 5, 6)
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())
}

func TestRuns(t *testing.T) {
	v := bitvec.New[uint16](40, false)
	v.SetRange(0, 2)
	v.SetRange(15, 17)
	v.SetRange(35, 39)

	var got [][2]int
	require.True(t, runs(v, func(lo, hi int) bool {
		got = append(got, [2]int{lo, hi})
		return true
	}))
	require.Equal(t, [][2]int{{0, 2}, {15, 17}, {35, 39}}, got)

	got = got[:0]
	require.False(t, runs(v, func(lo, hi int) bool {
		got = append(got, [2]int{lo, hi})
		return false
	}))
	require.Len(t, got, 1)
}
