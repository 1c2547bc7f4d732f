// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitrange

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/pkg/errors"

	"github.com/bpowers/bitrange/bitvec"
	"github.com/bpowers/bitrange/rangeset"
)

// RangeSetToRoaring64 returns a 64-bit roaring bitmap holding the keys of s.
func RangeSetToRoaring64[K rangeset.Key](s *rangeset.RangeSet[K]) *roaring64.Bitmap {
	bm := roaring64.New()
	for _, r := range s.Ranges() {
		lo, hi := uint64(r.Lo), uint64(r.Hi)
		if hi == math.MaxUint64 {
			// AddRange takes an exclusive end
			bm.AddRange(lo, hi)
			bm.Add(hi)
			continue
		}
		bm.AddRange(lo, hi+1)
	}
	return bm
}

// RangeSetFromRoaring64 returns a set over [validMin, validMax] holding the
// values of bm. Values outside the domain are an error.
func RangeSetFromRoaring64[K rangeset.Key](bm *roaring64.Bitmap, validMin, validMax K) (*rangeset.RangeSet[K], error) {
	s, err := rangeset.New(validMin, validMax, 0)
	if err != nil {
		return nil, err
	}
	if bm.IsEmpty() {
		return s, nil
	}
	if bm.Minimum() < uint64(validMin) || bm.Maximum() > uint64(validMax) {
		return nil, errors.Wrapf(rangeset.ErrOutOfDomain, "values [%d, %d] outside [%d, %d]", bm.Minimum(), bm.Maximum(), validMin, validMax)
	}
	it := bm.Iterator()
	lo := it.Next()
	hi := lo
	for it.HasNext() {
		v := it.Next()
		if v == hi+1 {
			hi = v
			continue
		}
		if _, err := s.AddRange(K(lo), K(hi)); err != nil {
			return nil, err
		}
		lo, hi = v, v
	}
	if _, err := s.AddRange(K(lo), K(hi)); err != nil {
		return nil, err
	}
	return s, nil
}

// BitVectorToRoaring returns a roaring bitmap holding the set bits of v.
func BitVectorToRoaring[W bitvec.Word](v *bitvec.BitVector[W]) (*roaring.Bitmap, error) {
	if v.Len() > MaxBits {
		return nil, errors.Wrapf(ErrTooLarge, "%d bits", v.Len())
	}
	bm := roaring.New()
	runs(v, func(lo, hi int) bool {
		bm.AddRange(uint64(lo), uint64(hi)+1)
		return true
	})
	return bm, nil
}

// BitVectorFromRoaring returns a vector of maxBits bits with the values of bm
// set. Values at or beyond maxBits are an error.
func BitVectorFromRoaring[W bitvec.Word](bm *roaring.Bitmap, maxBits int) (*bitvec.BitVector[W], error) {
	if maxBits > MaxBits {
		return nil, errors.Wrapf(ErrTooLarge, "%d bits", maxBits)
	}
	v := bitvec.New[W](maxBits, false)
	if bm.IsEmpty() {
		return v, nil
	}
	if int(bm.Maximum()) >= v.Len() {
		return nil, errors.Wrapf(ErrTooLarge, "value %d does not fit in %d bits", bm.Maximum(), v.Len())
	}
	it := bm.Iterator()
	lo := it.Next()
	hi := lo
	for it.HasNext() {
		b := it.Next()
		if b == hi+1 {
			hi = b
			continue
		}
		v.SetRange(int(lo), int(hi))
		lo, hi = b, b
	}
	v.SetRange(int(lo), int(hi))
	return v, nil
}
