// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitrange

import (
	"math"

	"github.com/pkg/errors"

	"github.com/bpowers/bitrange/bitvec"
	"github.com/bpowers/bitrange/rangeset"
)

// MaxBits bounds the length of vectors built by the conversions.
const MaxBits = math.MaxInt32

var ErrTooLarge = errors.New("set too large for a bit vector")

// runs calls fn with each maximal run [lo, hi] of set bits in v, lowest first,
// until fn returns false.
func runs[W bitvec.Word](v *bitvec.BitVector[W], fn func(lo, hi int) bool) bool {
	for lo := v.FirstSet(); lo != bitvec.Invalid; {
		end := v.NextClear(lo)
		if end == bitvec.Invalid {
			end = v.Len()
		}
		if !fn(lo, end-1) {
			return false
		}
		lo = v.NextSet(end - 1)
	}
	return true
}

// RangeSetToBitVector returns a vector where bit k is set when key k is in s.
// The vector covers the domain of s, so it is validMax+1 bits long.
func RangeSetToBitVector[W bitvec.Word, K rangeset.Key](s *rangeset.RangeSet[K]) (*bitvec.BitVector[W], error) {
	_, validMax := s.Domain()
	if uint64(validMax) >= MaxBits {
		return nil, errors.Wrapf(ErrTooLarge, "domain ends at %d", uint64(validMax))
	}
	v := bitvec.New[W](int(validMax)+1, false)
	for _, r := range s.Ranges() {
		v.SetRange(int(r.Lo), int(r.Hi))
	}
	return v, nil
}

// BitVectorToRangeSet returns a set over [validMin, validMax] holding key k
// for every set bit k of v. Bits outside the domain are an error.
func BitVectorToRangeSet[K rangeset.Key, W bitvec.Word](v *bitvec.BitVector[W], validMin, validMax K) (*rangeset.RangeSet[K], error) {
	s, err := rangeset.New(validMin, validMax, 0)
	if err != nil {
		return nil, err
	}
	if first, last := v.FirstSet(), v.LastSet(); first != bitvec.Invalid &&
		(uint64(first) < uint64(validMin) || uint64(last) > uint64(validMax)) {
		return nil, errors.Wrapf(rangeset.ErrOutOfDomain, "bits [%d, %d] outside [%d, %d]", first, last, validMin, validMax)
	}
	runs(v, func(lo, hi int) bool {
		_, err = s.AddRange(K(lo), K(hi))
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
