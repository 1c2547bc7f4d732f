// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitvec

import "github.com/bpowers/bitrange/internal/wordops"

// Attach selects how an iterator holds on to its vector.
type Attach uint8

const (
	// Borrow aliases the live vector; it must not be mutated while iterating.
	Borrow Attach = iota
	// Snapshot iterates a private deep copy, released on Detach.
	Snapshot
)

// Direction orders bulk traversal.
type Direction uint8

const (
	LoToHi Direction = iota
	HiToLo
)

type cursorState uint8

const (
	unstarted cursorState = iota
	positioned
	exhausted
)

// Iterator is a bit cursor over a BitVector. An unstarted iterator begins
// scanning from the low end for Next* and the high end for Prev*. Once a scan
// finds nothing the iterator is exhausted until Reset.
type Iterator[W Word] struct {
	vec   *BitVector[W]
	owned bool
	state cursorState
	pos   int
}

// NewIterator returns an iterator attached to v.
func NewIterator[W Word](v *BitVector[W], mode Attach) *Iterator[W] {
	it := &Iterator[W]{}
	it.Attach(v, mode)
	return it
}

// Attach detaches from any current vector and attaches to v.
func (it *Iterator[W]) Attach(v *BitVector[W], mode Attach) {
	it.Detach()
	if v != nil && mode == Snapshot {
		v = v.Clone()
		it.owned = true
	}
	it.vec = v
}

// Detach drops the vector, releasing a snapshot's storage.
func (it *Iterator[W]) Detach() {
	if it.owned && it.vec != nil {
		it.vec.words = nil
		it.vec.maxBits = 0
	}
	it.vec = nil
	it.owned = false
	it.Reset()
}

// Attached reports whether the iterator has a vector.
func (it *Iterator[W]) Attached() bool { return it.vec != nil }

// Reset returns the cursor to the unstarted state.
func (it *Iterator[W]) Reset() {
	it.state = unstarted
	it.pos = Invalid
}

// Cur returns the bit the cursor is on.
func (it *Iterator[W]) Cur() (int, bool) {
	if it.state != positioned {
		return Invalid, false
	}
	return it.pos, true
}

func (it *Iterator[W]) step(scan func(v *BitVector[W], cur int) int) (int, bool) {
	if it.state == exhausted || it.vec == nil {
		it.state = exhausted
		return Invalid, false
	}
	cur := Invalid
	if it.state == positioned {
		cur = it.pos
	}
	next := scan(it.vec, cur)
	if next == Invalid {
		it.state = exhausted
		it.pos = Invalid
		return Invalid, false
	}
	it.state = positioned
	it.pos = next
	return next, true
}

// NextSet moves to the next set bit above the cursor.
func (it *Iterator[W]) NextSet() (int, bool) { return it.step((*BitVector[W]).NextSet) }

// PrevSet moves to the next set bit below the cursor.
func (it *Iterator[W]) PrevSet() (int, bool) { return it.step((*BitVector[W]).PrevSet) }

// NextClear moves to the next clear bit above the cursor.
func (it *Iterator[W]) NextClear() (int, bool) { return it.step((*BitVector[W]).NextClear) }

// PrevClear moves to the next clear bit below the cursor.
func (it *Iterator[W]) PrevClear() (int, bool) { return it.step((*BitVector[W]).PrevClear) }

// ApplySet calls fn for every set bit in dir order until fn returns false,
// and reports whether every call returned true. The cursor does not move.
func (it *Iterator[W]) ApplySet(dir Direction, fn func(bit int) bool) bool {
	return it.apply(dir, false, fn)
}

// ApplyClear is ApplySet for clear bits.
func (it *Iterator[W]) ApplyClear(dir Direction, fn func(bit int) bool) bool {
	return it.apply(dir, true, fn)
}

// EachSet calls fn for every set bit in dir order.
func (it *Iterator[W]) EachSet(dir Direction, fn func(bit int)) {
	it.apply(dir, false, func(bit int) bool {
		fn(bit)
		return true
	})
}

// EachClear calls fn for every clear bit in dir order.
func (it *Iterator[W]) EachClear(dir Direction, fn func(bit int)) {
	it.apply(dir, true, func(bit int) bool {
		fn(bit)
		return true
	})
}

// apply walks whole words, skipping those with nothing to report.
func (it *Iterator[W]) apply(dir Direction, clear bool, fn func(int) bool) bool {
	v := it.vec
	if v == nil {
		return true
	}
	ops := wordops.For[W]()
	bits := width[W]()
	if dir == LoToHi {
		for i := range v.words {
			w := v.word(i, clear)
			for w != 0 {
				if !fn(i*bits + ops.TrailingZeros(w)) {
					return false
				}
				w &= w - 1
			}
		}
		return true
	}
	for i := len(v.words) - 1; i >= 0; i-- {
		w := v.word(i, clear)
		for w != 0 {
			b := bits - 1 - ops.LeadingZeros(w)
			if !fn(i*bits + b) {
				return false
			}
			w &^= W(1) << uint(b)
		}
	}
	return true
}
