// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitvec

import "github.com/bpowers/bitrange/internal/wordops"

// Count returns the number of set bits.
func (v *BitVector[W]) Count() int {
	return wordops.Count(v.words)
}

// CountClear returns the number of clear bits.
func (v *BitVector[W]) CountClear() int {
	return v.maxBits - v.Count()
}

// word returns word i, inverted and masked to the valid bits when clear is
// true, so that scanning for clear bits is scanning for ones.
func (v *BitVector[W]) word(i int, clear bool) W {
	w := v.words[i]
	if clear {
		w = ^w
		if i == len(v.words)-1 {
			w &= v.lastMask()
		}
	}
	return w
}

func (v *BitVector[W]) scanUp(start int, clear bool) int {
	if start >= v.maxBits {
		return Invalid
	}
	ops := wordops.For[W]()
	sliceOff, bitOff := getOffsets[W](start)
	w := v.word(sliceOff, clear) &^ wordops.LowMask[W](int(bitOff))
	for {
		if w != 0 {
			return sliceOff*width[W]() + ops.TrailingZeros(w)
		}
		sliceOff++
		if sliceOff >= len(v.words) {
			return Invalid
		}
		w = v.word(sliceOff, clear)
	}
}

func (v *BitVector[W]) scanDown(start int, clear bool) int {
	if start < 0 {
		return Invalid
	}
	ops := wordops.For[W]()
	bits := width[W]()
	sliceOff, bitOff := getOffsets[W](start)
	w := v.word(sliceOff, clear) & wordops.LowMask[W](int(bitOff)+1)
	for {
		if w != 0 {
			return sliceOff*bits + bits - 1 - ops.LeadingZeros(w)
		}
		sliceOff--
		if sliceOff < 0 {
			return Invalid
		}
		w = v.word(sliceOff, clear)
	}
}

func (v *BitVector[W]) after(cur int) int {
	if cur < 0 {
		return 0
	}
	return cur + 1
}

func (v *BitVector[W]) before(cur int) int {
	if cur < 0 || cur > v.maxBits {
		return v.maxBits - 1
	}
	return cur - 1
}

// FirstSet returns the lowest set bit, or Invalid.
func (v *BitVector[W]) FirstSet() int { return v.scanUp(0, false) }

// LastSet returns the highest set bit, or Invalid.
func (v *BitVector[W]) LastSet() int { return v.scanDown(v.maxBits-1, false) }

// FirstClear returns the lowest clear bit, or Invalid.
func (v *BitVector[W]) FirstClear() int { return v.scanUp(0, true) }

// LastClear returns the highest clear bit, or Invalid.
func (v *BitVector[W]) LastClear() int { return v.scanDown(v.maxBits-1, true) }

// NextSet returns the lowest set bit above cur, or Invalid. A cur of Invalid
// scans from the start.
func (v *BitVector[W]) NextSet(cur int) int { return v.scanUp(v.after(cur), false) }

// PrevSet returns the highest set bit below cur, or Invalid. A cur of Invalid
// scans from the end.
func (v *BitVector[W]) PrevSet(cur int) int { return v.scanDown(v.before(cur), false) }

// NextClear is NextSet for clear bits.
func (v *BitVector[W]) NextClear(cur int) int { return v.scanUp(v.after(cur), true) }

// PrevClear is PrevSet for clear bits.
func (v *BitVector[W]) PrevClear(cur int) int { return v.scanDown(v.before(cur), true) }
