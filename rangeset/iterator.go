// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package rangeset

// Attach selects how an iterator holds on to its set.
type Attach uint8

const (
	// Borrow aliases the live set; it must not be mutated while iterating.
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

// Iterator is a cursor over the keys and ranges of a RangeSet.
//
// A fresh or Reset iterator is unstarted: Next* begins at the smallest key or
// range and Prev* at the largest. Running off either end exhausts the
// iterator, and every further Next*/Prev* fails until Reset.
type Iterator[K Key] struct {
	set   *RangeSet[K]
	owned bool
	state cursorState
	idx   int
	key   K
}

// NewIterator returns an iterator attached to s.
func NewIterator[K Key](s *RangeSet[K], mode Attach) *Iterator[K] {
	it := &Iterator[K]{}
	it.Attach(s, mode)
	return it
}

// Attach detaches from any current set and attaches to s.
func (it *Iterator[K]) Attach(s *RangeSet[K], mode Attach) {
	it.Detach()
	if s != nil && mode == Snapshot {
		s = s.Clone()
		it.owned = true
	}
	it.set = s
}

// Detach drops the set, releasing a snapshot's storage.
func (it *Iterator[K]) Detach() {
	if it.owned && it.set != nil {
		it.set.release()
	}
	it.set = nil
	it.owned = false
	it.Reset()
}

// Attached reports whether the iterator has a set.
func (it *Iterator[K]) Attached() bool { return it.set != nil }

// Reset returns the cursor to the unstarted state.
func (it *Iterator[K]) Reset() {
	it.state = unstarted
	it.idx = 0
	it.key = 0
}

func (it *Iterator[K]) ranges() []Range[K] {
	if it.set == nil {
		return nil
	}
	return it.set.ranges
}

func (it *Iterator[K]) exhaust() {
	it.state = exhausted
}

func (it *Iterator[K]) moveTo(idx int, key K) {
	it.state = positioned
	it.idx = idx
	it.key = key
}

// NextKey advances to the next larger key.
func (it *Iterator[K]) NextKey() (K, bool) {
	rs := it.ranges()
	switch it.state {
	case unstarted:
		if len(rs) == 0 {
			it.exhaust()
			return 0, false
		}
		it.moveTo(0, rs[0].Lo)
	case positioned:
		switch {
		case it.idx >= len(rs):
			it.exhaust()
			return 0, false
		case it.key < rs[it.idx].Hi:
			it.key++
		case it.idx+1 < len(rs):
			it.moveTo(it.idx+1, rs[it.idx+1].Lo)
		default:
			it.exhaust()
			return 0, false
		}
	default:
		return 0, false
	}
	return it.key, true
}

// PrevKey moves to the next smaller key.
func (it *Iterator[K]) PrevKey() (K, bool) {
	rs := it.ranges()
	switch it.state {
	case unstarted:
		if len(rs) == 0 {
			it.exhaust()
			return 0, false
		}
		last := len(rs) - 1
		it.moveTo(last, rs[last].Hi)
	case positioned:
		switch {
		case it.idx >= len(rs):
			it.exhaust()
			return 0, false
		case it.key > rs[it.idx].Lo:
			it.key--
		case it.idx > 0:
			it.moveTo(it.idx-1, rs[it.idx-1].Hi)
		default:
			it.exhaust()
			return 0, false
		}
	default:
		return 0, false
	}
	return it.key, true
}

// NextRange advances to the next range, leaving the key cursor at its Lo.
func (it *Iterator[K]) NextRange() (Range[K], bool) {
	rs := it.ranges()
	next := 0
	switch it.state {
	case unstarted:
	case positioned:
		next = it.idx + 1
	default:
		return Range[K]{}, false
	}
	if next >= len(rs) {
		it.exhaust()
		return Range[K]{}, false
	}
	it.moveTo(next, rs[next].Lo)
	return rs[next], true
}

// PrevRange moves to the previous range, leaving the key cursor at its Hi.
func (it *Iterator[K]) PrevRange() (Range[K], bool) {
	rs := it.ranges()
	prev := len(rs) - 1
	switch it.state {
	case unstarted:
	case positioned:
		prev = min(it.idx, len(rs)) - 1
	default:
		return Range[K]{}, false
	}
	if prev < 0 {
		it.exhaust()
		return Range[K]{}, false
	}
	it.moveTo(prev, rs[prev].Hi)
	return rs[prev], true
}

// CurKey returns the key under the cursor without moving it.
func (it *Iterator[K]) CurKey() (K, bool) {
	if it.state != positioned {
		return 0, false
	}
	return it.key, true
}

// CurRange returns the range under the cursor without moving it.
func (it *Iterator[K]) CurRange() (Range[K], bool) {
	rs := it.ranges()
	if it.state != positioned || it.idx >= len(rs) {
		return Range[K]{}, false
	}
	return rs[it.idx], true
}

// ApplyKeys calls fn for every key in dir order until fn returns false.
// It reports whether the traversal completed. The cursor is not moved.
func (it *Iterator[K]) ApplyKeys(dir Direction, fn func(K) bool) bool {
	return it.ApplyRanges(dir, func(r Range[K]) bool {
		if dir == HiToLo {
			for k := r.Hi; ; k-- {
				if !fn(k) {
					return false
				}
				if k == r.Lo {
					return true
				}
			}
		}
		for k := r.Lo; ; k++ {
			if !fn(k) {
				return false
			}
			if k == r.Hi {
				return true
			}
		}
	})
}

// EachKey calls fn for every key in dir order.
func (it *Iterator[K]) EachKey(dir Direction, fn func(K)) {
	it.ApplyKeys(dir, func(k K) bool {
		fn(k)
		return true
	})
}

// ApplyRanges calls fn for every range in dir order until fn returns false.
// It reports whether the traversal completed. The cursor is not moved.
func (it *Iterator[K]) ApplyRanges(dir Direction, fn func(Range[K]) bool) bool {
	rs := it.ranges()
	if dir == HiToLo {
		for i := len(rs) - 1; i >= 0; i-- {
			if !fn(rs[i]) {
				return false
			}
		}
		return true
	}
	for _, r := range rs {
		if !fn(r) {
			return false
		}
	}
	return true
}

// EachRange calls fn for every range in dir order.
func (it *Iterator[K]) EachRange(dir Direction, fn func(Range[K])) {
	it.ApplyRanges(dir, func(r Range[K]) bool {
		fn(r)
		return true
	})
}
