// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitvec

import (
	"github.com/pkg/errors"

	"github.com/bpowers/bitrange/internal/growth"
	"github.com/bpowers/bitrange/internal/wordops"
	"github.com/bpowers/bitrange/internal/zero"
)

// Word is the set of word types a BitVector can be built from.
type Word = wordops.Word

// Invalid is returned by the scanning methods when no qualifying bit exists,
// and may be passed to them to scan from the corresponding end.
const Invalid = -1

var (
	// ErrShrink is returned by Resize when asked to shrink.
	ErrShrink  = growth.ErrShrink
	ErrStorage = errors.New("storage too small")
	ErrWidth   = errors.New("word width mismatch")
)

// BitVector is a fixed-length bitmap packed into words of type W. Bit b lives
// in word b/W at position b%W counting from the least significant bit. Bits of
// the last word at or beyond Len are always clear.
//
// A BitVector is not safe for concurrent use.
type BitVector[W Word] struct {
	words   []W
	maxBits int
}

func width[W Word]() int {
	return wordops.Width[W]()
}

func wordsFor[W Word](maxBits int) int {
	w := width[W]()
	return (maxBits + w - 1) / w
}

func getOffsets[W Word](off int) (sliceOff int, bitOff uint) {
	w := width[W]()
	return off / w, uint(off % w)
}

// New returns a vector of maxBits bits, all set to initial.
func New[W Word](maxBits int, initial bool) *BitVector[W] {
	maxBits = max(maxBits, 0)
	v := &BitVector[W]{
		words:   make([]W, wordsFor[W](maxBits)),
		maxBits: maxBits,
	}
	if initial {
		zero.Fill(v.words, wordops.Ones[W]())
		v.clearPadding()
	}
	return v
}

// NewInPlace returns a vector of maxBits bits kept in storage, which must have
// room for enough words. Storage is reused by Resize while it is large enough.
func NewInPlace[W Word](storage []W, maxBits int, initial bool) (*BitVector[W], error) {
	maxBits = max(maxBits, 0)
	n := wordsFor[W](maxBits)
	if cap(storage) < n {
		return nil, errors.Wrapf(ErrStorage, "%d bits need %d words, storage holds %d", maxBits, n, cap(storage))
	}
	v := &BitVector[W]{
		words:   storage[:n],
		maxBits: maxBits,
	}
	if initial {
		zero.Fill(v.words, wordops.Ones[W]())
		v.clearPadding()
	} else {
		zero.Slice(v.words)
	}
	return v, nil
}

// FromBytes returns a vector of maxBits bits initialized from buf, laid out
// least significant byte first within each word. Bits beyond buf are clear,
// and bytes beyond maxBits are ignored.
func FromBytes[W Word](maxBits int, buf []byte) *BitVector[W] {
	v := New[W](maxBits, false)
	bytesPerWord := width[W]() / 8
	for i, b := range buf {
		if i*8 >= v.maxBits {
			break
		}
		v.words[i/bytesPerWord] |= W(b) << uint(8*(i%bytesPerWord))
	}
	v.clearPadding()
	return v
}

// Bytes returns the vector in the layout FromBytes accepts, (Len()+7)/8 bytes long.
func (v *BitVector[W]) Bytes() []byte {
	return v.AppendBytes(nil)
}

// AppendBytes appends the byte layout of v to dst.
func (v *BitVector[W]) AppendBytes(dst []byte) []byte {
	bytesPerWord := width[W]() / 8
	n := (v.maxBits + 7) / 8
	for i := 0; i < n; i++ {
		dst = append(dst, byte(v.words[i/bytesPerWord]>>uint(8*(i%bytesPerWord))))
	}
	return dst
}

// Len returns the number of bits in the vector.
func (v *BitVector[W]) Len() int { return v.maxBits }

// Words returns a copy of the backing words.
func (v *BitVector[W]) Words() []W {
	return append([]W(nil), v.words...)
}

// lastMask returns the mask of valid bits in the final word.
func (v *BitVector[W]) lastMask() W {
	rem := v.maxBits % width[W]()
	if rem == 0 {
		return wordops.Ones[W]()
	}
	return wordops.LowMask[W](rem)
}

func (v *BitVector[W]) clearPadding() {
	if n := len(v.words); n > 0 {
		v.words[n-1] &= v.lastMask()
	}
}

// IsSet reports whether bit off is set. off must be in [0, Len()).
func (v *BitVector[W]) IsSet(off int) bool {
	sliceOff, bitOff := getOffsets[W](off)
	return v.words[sliceOff]&(W(1)<<bitOff) != 0
}

// Set sets bit off to 1. off must be in [0, Len()).
func (v *BitVector[W]) Set(off int) {
	sliceOff, bitOff := getOffsets[W](off)
	v.words[sliceOff] |= W(1) << bitOff
}

// Clear sets bit off to 0. off must be in [0, Len()).
func (v *BitVector[W]) Clear(off int) {
	sliceOff, bitOff := getOffsets[W](off)
	v.words[sliceOff] &^= W(1) << bitOff
}

// Assign sets bit off to val.
func (v *BitVector[W]) Assign(off int, val bool) {
	if val {
		v.Set(off)
	} else {
		v.Clear(off)
	}
}

// bounds clips [lo, hi] to the vector, rejecting inverted ranges and ranges
// entirely outside it.
func (v *BitVector[W]) bounds(lo, hi int) (int, int, bool) {
	if lo > hi || hi < 0 || lo >= v.maxBits {
		return 0, 0, false
	}
	return max(lo, 0), min(hi, v.maxBits-1), true
}

// SetBits sets bits [lo, hi], clipped to the vector, and reports whether any
// bit changed. An inverted range or one entirely outside the vector is
// rejected without touching it.
func (v *BitVector[W]) SetBits(lo, hi int) bool {
	lo, hi, ok := v.bounds(lo, hi)
	if !ok {
		return false
	}
	return v.fill(lo, hi, true)
}

// ClearBits clears bits [lo, hi] with the validation of SetBits.
func (v *BitVector[W]) ClearBits(lo, hi int) bool {
	lo, hi, ok := v.bounds(lo, hi)
	if !ok {
		return false
	}
	return v.fill(lo, hi, false)
}

// SetRange sets bits [lo, hi] without validation; 0 <= lo <= hi < Len().
func (v *BitVector[W]) SetRange(lo, hi int) {
	v.fill(lo, hi, true)
}

// ClearRange clears bits [lo, hi] without validation; 0 <= lo <= hi < Len().
func (v *BitVector[W]) ClearRange(lo, hi int) {
	v.fill(lo, hi, false)
}

func (v *BitVector[W]) fill(lo, hi int, set bool) bool {
	loWord, loBit := getOffsets[W](lo)
	hiWord, hiBit := getOffsets[W](hi)
	changed := false
	for i := loWord; i <= hiWord; i++ {
		mask := wordops.Ones[W]()
		if i == loWord {
			mask &^= wordops.LowMask[W](int(loBit))
		}
		if i == hiWord {
			mask &= wordops.LowMask[W](int(hiBit) + 1)
		}
		old := v.words[i]
		if set {
			v.words[i] = old | mask
		} else {
			v.words[i] = old &^ mask
		}
		changed = changed || old != v.words[i]
	}
	return changed
}

// Resize grows the vector to newMaxBits, setting the new bits to initial.
// Shrinking fails and leaves v unchanged.
func (v *BitVector[W]) Resize(newMaxBits int, initial bool) error {
	if err := growth.Check(v.maxBits, newMaxBits); err != nil {
		return err
	}
	oldMaxBits := v.maxBits
	if newMaxBits == oldMaxBits {
		return nil
	}
	oldLen := len(v.words)
	n := wordsFor[W](newMaxBits)
	if n <= cap(v.words) {
		v.words = v.words[:n]
		zero.Slice(v.words[oldLen:])
	} else {
		words := make([]W, n)
		copy(words, v.words)
		v.words = words
	}
	v.maxBits = newMaxBits
	if initial {
		v.fill(oldMaxBits, newMaxBits-1, true)
	}
	return nil
}

// Equal reports whether v and other have the same length and bits.
func (v *BitVector[W]) Equal(other *BitVector[W]) bool {
	if v.maxBits != other.maxBits {
		return false
	}
	for i, w := range v.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of v.
func (v *BitVector[W]) Clone() *BitVector[W] {
	return &BitVector[W]{
		words:   append(make([]W, 0, len(v.words)), v.words...),
		maxBits: v.maxBits,
	}
}

// CopyFrom makes v a deep copy of other, reusing v's storage when it is large enough.
func (v *BitVector[W]) CopyFrom(other *BitVector[W]) {
	if v == other {
		return
	}
	if cap(v.words) < len(other.words) {
		v.words = make([]W, len(other.words))
	}
	v.words = v.words[:len(other.words)]
	copy(v.words, other.words)
	v.maxBits = other.maxBits
}
