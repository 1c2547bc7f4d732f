// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package rangeset implements sets of unsigned integer keys stored as sorted
// runs of inclusive ranges, with a compact list syntax ("1,3-7,0x10") for
// reading and writing them.
package rangeset

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/bpowers/bitrange/internal/alloc"
	"github.com/bpowers/bitrange/internal/growth"
)

// Key is the set of unsigned integer types a RangeSet can hold.
type Key interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// InvalidIndex is returned by FindIndex when a key is not in the set.
const InvalidIndex = -1

var (
	ErrInvalidRange = errors.New("invalid range")
	ErrOutOfDomain  = errors.New("out of domain")
	ErrSyntax       = errors.New("syntax error")
	ErrDelimiter    = errors.New("invalid delimiter")
	ErrWidth        = errors.New("key width mismatch")
)

func maxKey[K Key]() K {
	return ^K(0)
}

// Range is an inclusive interval [Lo, Hi] of keys.
type Range[K Key] struct {
	Lo, Hi K
}

// Len returns the number of keys in r. The one range covering every uint64
// wraps to 0.
func (r Range[K]) Len() uint64 {
	return uint64(r.Hi-r.Lo) + 1
}

func (r Range[K]) Contains(k K) bool {
	return r.Lo <= k && k <= r.Hi
}

// Picker chooses the key Pick removes; ranges is never empty.
type Picker[K Key] func(ranges []Range[K]) K

// PickFirst picks the smallest key.
func PickFirst[K Key](ranges []Range[K]) K {
	return ranges[0].Lo
}

// PickLast picks the largest key.
func PickLast[K Key](ranges []Range[K]) K {
	return ranges[len(ranges)-1].Hi
}

// Option configures a RangeSet at construction.
type Option[K Key] func(*RangeSet[K])

// WithAllocator makes the set take its range storage from a.
func WithAllocator[K Key](a alloc.Allocator[Range[K]]) Option[K] {
	return func(s *RangeSet[K]) {
		if a != nil {
			s.alloc = a
		}
	}
}

// WithPicker overrides the selection policy of Pick.
func WithPicker[K Key](p Picker[K]) Option[K] {
	return func(s *RangeSet[K]) {
		if p != nil {
			s.picker = p
		}
	}
}

// RangeSet is a set of keys stored as sorted, disjoint, non-adjacent ranges,
// every one of them inside the set's domain [validMin, validMax].
//
// A RangeSet is not safe for concurrent use.
type RangeSet[K Key] struct {
	ranges   []Range[K]
	numKeys  uint64
	validMin K
	validMax K
	alloc    alloc.Allocator[Range[K]]
	picker   Picker[K]
	// placement is set while ranges lives in caller-supplied storage, which
	// is never handed to the allocator.
	placement bool
}

// New returns an empty set over the domain [validMin, validMax] with room for
// capacity ranges (0 is treated as 1).
func New[K Key](validMin, validMax K, capacity int, opts ...Option[K]) (*RangeSet[K], error) {
	if validMin > validMax {
		return nil, errors.Wrapf(ErrInvalidRange, "domain [%d, %d]", validMin, validMax)
	}
	s := &RangeSet[K]{
		validMin: validMin,
		validMax: validMax,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ranges = s.allocator().Allocate(growth.Initial(capacity))[:0]
	return s, nil
}

// NewEmpty returns an empty set whose domain is every value of K.
func NewEmpty[K Key](opts ...Option[K]) *RangeSet[K] {
	s, _ := New[K](0, maxKey[K](), 1, opts...)
	return s
}

// NewInPlace returns an empty set that keeps its ranges in storage until they
// outgrow cap(storage), after which it moves to allocator-owned memory.
// The caller must not touch storage while the set uses it.
func NewInPlace[K Key](storage []Range[K], validMin, validMax K, opts ...Option[K]) (*RangeSet[K], error) {
	if validMin > validMax {
		return nil, errors.Wrapf(ErrInvalidRange, "domain [%d, %d]", validMin, validMax)
	}
	s := &RangeSet[K]{
		validMin: validMin,
		validMax: validMax,
	}
	for _, opt := range opts {
		opt(s)
	}
	if cap(storage) == 0 {
		s.ranges = s.allocator().Allocate(1)[:0]
	} else {
		s.ranges = storage[:0]
		s.placement = true
	}
	return s, nil
}

func (s *RangeSet[K]) allocator() alloc.Allocator[Range[K]] {
	if s.alloc == nil {
		s.alloc = alloc.Heap[Range[K]]{}
	}
	return s.alloc
}

// SetGrowthFactor always fails for factors >= 0: storage grows by doubling.
func (s *RangeSet[K]) SetGrowthFactor(factor int) error {
	return growth.SetFactor(factor)
}

// NumKeys returns the number of keys in the set.
func (s *RangeSet[K]) NumKeys() uint64 { return s.numKeys }

// NumRanges returns the number of disjoint ranges in the set.
func (s *RangeSet[K]) NumRanges() int { return len(s.ranges) }

func (s *RangeSet[K]) IsEmpty() bool { return len(s.ranges) == 0 }

// Cap returns the number of ranges the set can hold before growing.
func (s *RangeSet[K]) Cap() int { return cap(s.ranges) }

// Domain returns the inclusive bounds every key must lie within.
func (s *RangeSet[K]) Domain() (validMin, validMax K) {
	return s.validMin, s.validMax
}

// Range returns the i'th range in ascending order.
func (s *RangeSet[K]) Range(i int) Range[K] {
	return s.ranges[i]
}

// Ranges returns a copy of the set's ranges.
func (s *RangeSet[K]) Ranges() []Range[K] {
	return append([]Range[K](nil), s.ranges...)
}

// Min returns the smallest key in the set.
func (s *RangeSet[K]) Min() (K, bool) {
	if len(s.ranges) == 0 {
		return 0, false
	}
	return s.ranges[0].Lo, true
}

// Max returns the largest key in the set.
func (s *RangeSet[K]) Max() (K, bool) {
	if len(s.ranges) == 0 {
		return 0, false
	}
	return s.ranges[len(s.ranges)-1].Hi, true
}

// Reset empties the set, keeping its storage.
func (s *RangeSet[K]) Reset() {
	s.ranges = s.ranges[:0]
	s.numKeys = 0
}

// Resize grows storage to hold capacity ranges; shrinking fails.
func (s *RangeSet[K]) Resize(capacity int) error {
	if err := growth.Check(cap(s.ranges), capacity); err != nil {
		return err
	}
	if capacity > cap(s.ranges) {
		s.realloc(capacity)
	}
	return nil
}

// reserve makes room for need ranges, doubling capacity as required.
func (s *RangeSet[K]) reserve(need int) error {
	if need <= cap(s.ranges) {
		return nil
	}
	newCap, err := growth.Capacity(cap(s.ranges), need)
	if err != nil {
		return err
	}
	s.realloc(newCap)
	return nil
}

func (s *RangeSet[K]) realloc(newCap int) {
	a := s.allocator()
	buf := a.Allocate(newCap)[:len(s.ranges)]
	copy(buf, s.ranges)
	s.adopt(buf)
}

// adopt replaces the storage with buf, freeing the old storage if we own it.
func (s *RangeSet[K]) adopt(buf []Range[K]) {
	if !s.placement && s.ranges != nil {
		s.allocator().Free(s.ranges)
	}
	s.placement = false
	s.ranges = buf
}

// release hands storage back to the allocator; s must not be used afterwards.
func (s *RangeSet[K]) release() {
	s.adopt(nil)
	s.numKeys = 0
}

// Clone returns a deep copy of s sharing its allocator and picker.
func (s *RangeSet[K]) Clone() *RangeSet[K] {
	c := &RangeSet[K]{
		numKeys:  s.numKeys,
		validMin: s.validMin,
		validMax: s.validMax,
		alloc:    s.alloc,
		picker:   s.picker,
	}
	c.ranges = c.allocator().Allocate(growth.Initial(len(s.ranges)))[:len(s.ranges)]
	copy(c.ranges, s.ranges)
	return c
}

// CopyFrom makes s a deep copy of other, domain included. Storage is only
// reallocated when it is too small.
func (s *RangeSet[K]) CopyFrom(other *RangeSet[K]) {
	if s == other {
		return
	}
	if cap(s.ranges) < len(other.ranges) {
		s.adopt(s.allocator().Allocate(len(other.ranges))[:0])
	}
	s.ranges = s.ranges[:len(other.ranges)]
	copy(s.ranges, other.ranges)
	s.numKeys = other.numKeys
	s.validMin = other.validMin
	s.validMax = other.validMax
}

func checkKey[K Key](k, validMin, validMax K) error {
	if k < validMin || k > validMax {
		return errors.Wrapf(ErrOutOfDomain, "key %d outside [%d, %d]", k, validMin, validMax)
	}
	return nil
}

// clip validates [lo, hi] and trims it to the domain. A range that misses the
// domain entirely is an error.
func clip[K Key](lo, hi, validMin, validMax K) (Range[K], error) {
	if lo > hi {
		return Range[K]{}, errors.Wrapf(ErrInvalidRange, "[%d, %d]", lo, hi)
	}
	if hi < validMin || lo > validMax {
		return Range[K]{}, errors.Wrapf(ErrOutOfDomain, "range [%d, %d] outside [%d, %d]", lo, hi, validMin, validMax)
	}
	return Range[K]{Lo: max(lo, validMin), Hi: min(hi, validMax)}, nil
}

// searchHi returns the index of the first range with Hi >= k.
func (s *RangeSet[K]) searchHi(k K) int {
	return sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].Hi >= k })
}

// searchLo returns the index of the first range with Lo > k.
func (s *RangeSet[K]) searchLo(k K) int {
	return sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].Lo > k })
}

// FindIndex returns the index of the range holding k, or InvalidIndex.
func (s *RangeSet[K]) FindIndex(k K) int {
	i := s.searchHi(k)
	if i < len(s.ranges) && s.ranges[i].Lo <= k {
		return i
	}
	return InvalidIndex
}

func (s *RangeSet[K]) Contains(k K) bool {
	return s.FindIndex(k) != InvalidIndex
}

// ContainsRange reports whether every key in [lo, hi] is in the set.
func (s *RangeSet[K]) ContainsRange(lo, hi K) bool {
	if lo > hi {
		return false
	}
	i := s.FindIndex(lo)
	return i != InvalidIndex && s.ranges[i].Hi >= hi
}

// Add adds k. It fails without mutating s if k is outside the domain.
func (s *RangeSet[K]) Add(k K) (bool, error) {
	if err := checkKey(k, s.validMin, s.validMax); err != nil {
		return false, err
	}
	return s.addRange(k, k)
}

// AddRange adds every key in [lo, hi]. A range straddling the domain bounds is
// clipped to them; one entirely outside, or with lo > hi, fails without
// mutating s. The result reports whether any key was new.
func (s *RangeSet[K]) AddRange(lo, hi K) (bool, error) {
	r, err := clip(lo, hi, s.validMin, s.validMax)
	if err != nil {
		return false, err
	}
	return s.addRange(r.Lo, r.Hi)
}

func (s *RangeSet[K]) addRange(lo, hi K) (bool, error) {
	n := len(s.ranges)
	// ranges [i, j) overlap or touch [lo, hi]
	i := 0
	if lo > 0 {
		i = s.searchHi(lo - 1)
	}
	j := n
	if hi < maxKey[K]() {
		j = s.searchLo(hi + 1)
	}

	if i == j {
		if err := s.reserve(n + 1); err != nil {
			return false, err
		}
		s.ranges = s.ranges[:n+1]
		copy(s.ranges[i+1:], s.ranges[i:n])
		r := Range[K]{Lo: lo, Hi: hi}
		s.ranges[i] = r
		s.numKeys += r.Len()
		return true, nil
	}

	merged := Range[K]{Lo: min(lo, s.ranges[i].Lo), Hi: max(hi, s.ranges[j-1].Hi)}
	if j-i == 1 && merged == s.ranges[i] {
		return false, nil
	}
	var old uint64
	for _, r := range s.ranges[i:j] {
		old += r.Len()
	}
	s.numKeys += merged.Len() - old
	s.ranges[i] = merged
	s.ranges = append(s.ranges[:i+1], s.ranges[j:]...)
	return true, nil
}

// Remove removes k. It fails without mutating s if k is outside the domain.
func (s *RangeSet[K]) Remove(k K) (bool, error) {
	if err := checkKey(k, s.validMin, s.validMax); err != nil {
		return false, err
	}
	return s.removeRange(k, k)
}

// RemoveRange removes every key in [lo, hi], with the same domain handling as
// AddRange. The result reports whether any key was removed.
func (s *RangeSet[K]) RemoveRange(lo, hi K) (bool, error) {
	r, err := clip(lo, hi, s.validMin, s.validMax)
	if err != nil {
		return false, err
	}
	return s.removeRange(r.Lo, r.Hi)
}

func (s *RangeSet[K]) removeRange(lo, hi K) (bool, error) {
	n := len(s.ranges)
	// ranges [i, j) overlap [lo, hi]
	i := s.searchHi(lo)
	j := s.searchLo(hi)
	if i >= j {
		return false, nil
	}

	var remnants [2]Range[K]
	k := 0
	if first := s.ranges[i]; first.Lo < lo {
		remnants[k] = Range[K]{Lo: first.Lo, Hi: lo - 1}
		k++
	}
	if last := s.ranges[j-1]; last.Hi > hi {
		remnants[k] = Range[K]{Lo: hi + 1, Hi: last.Hi}
		k++
	}

	var removed uint64
	for _, r := range s.ranges[i:j] {
		removed += r.Len()
	}
	for _, r := range remnants[:k] {
		removed -= r.Len()
	}

	switch delta := k - (j - i); {
	case delta > 0:
		// splitting one range in two
		if err := s.reserve(n + delta); err != nil {
			return false, err
		}
		s.ranges = s.ranges[:n+delta]
		copy(s.ranges[j+delta:], s.ranges[j:n])
	case delta < 0:
		copy(s.ranges[i+k:], s.ranges[j:n])
		s.ranges = s.ranges[:n+delta]
	}
	copy(s.ranges[i:], remnants[:k])
	s.numKeys -= removed
	return true, nil
}

// Pick removes and returns a key chosen by the set's Picker.
func (s *RangeSet[K]) Pick() (K, bool) {
	if len(s.ranges) == 0 {
		return 0, false
	}
	p := s.picker
	if p == nil {
		p = PickFirst[K]
	}
	k := p(s.ranges)
	if ok, err := s.removeRange(k, k); !ok || err != nil {
		return 0, false
	}
	return k, true
}
