// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitvec

import "github.com/bpowers/bitrange/internal/wordops"

// operandWord returns word i of o with every bit at or beyond o.Len()
// replaced by the corresponding bit of fill.
func (v *BitVector[W]) operandWord(i int, fill W) W {
	n := len(v.words)
	if i >= n {
		return fill
	}
	if i == n-1 {
		m := v.lastMask()
		return v.words[i]&m | fill&^m
	}
	return v.words[i]
}

// And sets v to v AND other. Bits of v beyond other.Len() are left as they
// are, as if other were padded with ones.
func (v *BitVector[W]) And(other *BitVector[W]) {
	ones := wordops.Ones[W]()
	n := min(len(v.words), len(other.words))
	for i := 0; i < n; i++ {
		v.words[i] &= other.operandWord(i, ones)
	}
	v.clearPadding()
}

// Or sets v to v OR other. Bits of other beyond v.Len() are ignored.
func (v *BitVector[W]) Or(other *BitVector[W]) {
	n := min(len(v.words), len(other.words))
	for i := 0; i < n; i++ {
		v.words[i] |= other.operandWord(i, 0)
	}
	v.clearPadding()
}

// Xor sets v to v XOR other. Bits of other beyond v.Len() are ignored.
func (v *BitVector[W]) Xor(other *BitVector[W]) {
	n := min(len(v.words), len(other.words))
	for i := 0; i < n; i++ {
		v.words[i] ^= other.operandWord(i, 0)
	}
	v.clearPadding()
}

// AndNot clears every bit of v that is set in other.
func (v *BitVector[W]) AndNot(other *BitVector[W]) {
	n := min(len(v.words), len(other.words))
	for i := 0; i < n; i++ {
		v.words[i] &^= other.operandWord(i, 0)
	}
	v.clearPadding()
}

// Invert flips every bit of v.
func (v *BitVector[W]) Invert() {
	for i, w := range v.words {
		v.words[i] = ^w
	}
	v.clearPadding()
}
