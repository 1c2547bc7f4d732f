// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitrange

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"

	"github.com/bpowers/bitrange/bitvec"
)

// ToBitSet returns a bitset.BitSet with the length and bits of v.
func ToBitSet[W bitvec.Word](v *bitvec.BitVector[W]) *bitset.BitSet {
	buf := v.Bytes()
	words := make([]uint64, (len(buf)+7)/8)
	for i, b := range buf {
		words[i/8] |= uint64(b) << (8 * uint(i%8))
	}
	return bitset.FromWithLength(uint(v.Len()), words)
}

// FromBitSet returns a vector with the length and bits of b.
func FromBitSet[W bitvec.Word](b *bitset.BitSet) *bitvec.BitVector[W] {
	words := b.Words()
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[8*i:], w)
	}
	return bitvec.FromBytes[W](int(b.Len()), buf)
}
