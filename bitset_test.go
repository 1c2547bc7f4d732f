// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitrange

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/bitrange/bitvec"
)

func TestBitSetRoundTrip(t *testing.T) {
	v := bitvec.New[uint16](130, false)
	for _, i := range []int{0, 1, 63, 64, 65, 127, 128, 129} {
		v.Set(i)
	}

	b := ToBitSet(v)
	require.Equal(t, uint(130), b.Len())
	require.Equal(t, uint(v.Count()), b.Count())
	for i := 0; i < 130; i++ {
		require.Equal(t, v.IsSet(i), b.Test(uint(i)), "bit %d", i)
	}

	back := FromBitSet[uint16](b)
	require.True(t, v.Equal(back))

	as8 := FromBitSet[uint8](b)
	require.Equal(t, v.Bytes(), as8.Bytes())
}

func TestFromBitSet(t *testing.T) {
	b := bitset.New(70)
	b.Set(3).Set(69)
	v := FromBitSet[uint32](b)
	require.Equal(t, 70, v.Len())
	require.Equal(t, 2, v.Count())
	require.Equal(t, 69, v.LastSet())
}
