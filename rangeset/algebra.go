// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package rangeset

// Relation is the result of Compare.
type Relation uint8

const (
	Disjoint      Relation = iota // no key in common
	Empty                         // both sets empty
	EmptySubset                   // receiver empty, argument not
	EmptySuperset                 // argument empty, receiver not
	Equal
	Overlap
	Subset
	Superset
	Unknown // domains differ
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "disjoint"
	case Empty:
		return "empty"
	case EmptySubset:
		return "empty-subset"
	case EmptySuperset:
		return "empty-superset"
	case Equal:
		return "equal"
	case Overlap:
		return "overlap"
	case Subset:
		return "subset"
	case Superset:
		return "superset"
	default:
		return "unknown"
	}
}

// appendCoalesced appends r to dst, merging it into the last range when they
// overlap or touch. r.Lo must be >= the last range's Lo.
func appendCoalesced[K Key](dst []Range[K], r Range[K]) []Range[K] {
	if n := len(dst); n > 0 {
		last := &dst[n-1]
		if last.Hi == maxKey[K]() || r.Lo <= last.Hi+1 {
			last.Hi = max(last.Hi, r.Hi)
			return dst
		}
	}
	return append(dst, r)
}

func union[K Key](dst, a, b []Range[K]) []Range[K] {
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var r Range[K]
		if j >= len(b) || (i < len(a) && a[i].Lo <= b[j].Lo) {
			r = a[i]
			i++
		} else {
			r = b[j]
			j++
		}
		dst = appendCoalesced(dst, r)
	}
	return dst
}

func intersection[K Key](dst, a, b []Range[K]) []Range[K] {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := max(a[i].Lo, b[j].Lo)
		hi := min(a[i].Hi, b[j].Hi)
		if lo <= hi {
			dst = append(dst, Range[K]{Lo: lo, Hi: hi})
		}
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return dst
}

func difference[K Key](dst, a, b []Range[K]) []Range[K] {
	j := 0
	for _, r := range a {
		for j < len(b) && b[j].Hi < r.Lo {
			j++
		}
		lo := r.Lo
		open := true
		k := j
		for ; k < len(b) && b[k].Lo <= r.Hi; k++ {
			if b[k].Lo > lo {
				dst = append(dst, Range[K]{Lo: lo, Hi: b[k].Lo - 1})
			}
			if b[k].Hi >= r.Hi {
				open = false
				break
			}
			lo = b[k].Hi + 1
		}
		if open {
			dst = append(dst, Range[K]{Lo: lo, Hi: r.Hi})
		}
		j = k
	}
	return dst
}

func sameRanges[K Key](a, b []Range[K]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func countKeys[K Key](rs []Range[K]) uint64 {
	var n uint64
	for _, r := range rs {
		n += r.Len()
	}
	return n
}

// rebuild replaces the contents of s with build's output, which gets scratch
// storage of at least bound ranges. Nothing changes if the result equals the
// current contents.
func (s *RangeSet[K]) rebuild(bound int, build func(dst []Range[K]) []Range[K]) bool {
	a := s.allocator()
	scratch := a.Allocate(max(bound, 1))[:0]
	out := build(scratch)
	if sameRanges(out, s.ranges) {
		a.Free(scratch)
		return false
	}
	s.numKeys = countKeys(out)
	if len(out) <= cap(s.ranges) {
		s.ranges = s.ranges[:len(out)]
		copy(s.ranges, out)
		a.Free(scratch)
		return true
	}
	s.adopt(out)
	return true
}

// clipped returns other's ranges trimmed to s's domain.
func (s *RangeSet[K]) clipped(other *RangeSet[K]) []Range[K] {
	if other.validMin >= s.validMin && other.validMax <= s.validMax {
		return other.ranges
	}
	var out []Range[K]
	for _, r := range other.ranges {
		if c, err := clip(r.Lo, r.Hi, s.validMin, s.validMax); err == nil {
			out = append(out, c)
		}
	}
	return out
}

// AddSet adds every key of other that lies in s's domain (s |= other).
func (s *RangeSet[K]) AddSet(other *RangeSet[K]) bool {
	if s == other {
		return false
	}
	b := s.clipped(other)
	return s.rebuild(len(s.ranges)+len(b), func(dst []Range[K]) []Range[K] {
		return union(dst, s.ranges, b)
	})
}

// RemoveSet removes every key of other from s.
func (s *RangeSet[K]) RemoveSet(other *RangeSet[K]) bool {
	if s == other {
		changed := len(s.ranges) > 0
		s.Reset()
		return changed
	}
	return s.rebuild(len(s.ranges)+len(other.ranges), func(dst []Range[K]) []Range[K] {
		return difference(dst, s.ranges, other.ranges)
	})
}

// Intersect removes every key of s not in other (s &= other).
func (s *RangeSet[K]) Intersect(other *RangeSet[K]) bool {
	if s == other {
		return false
	}
	return s.rebuild(len(s.ranges)+len(other.ranges), func(dst []Range[K]) []Range[K] {
		return intersection(dst, s.ranges, other.ranges)
	})
}

// ContainsSet reports whether every key of other is in s.
func (s *RangeSet[K]) ContainsSet(other *RangeSet[K]) bool {
	if other.numKeys > s.numKeys && s.numKeys != 0 {
		return false
	}
	j := 0
	for _, r := range other.ranges {
		for j < len(s.ranges) && s.ranges[j].Hi < r.Lo {
			j++
		}
		if j == len(s.ranges) || s.ranges[j].Lo > r.Lo || s.ranges[j].Hi < r.Hi {
			return false
		}
	}
	return true
}

// Overlaps reports whether s and other have any key in common.
func (s *RangeSet[K]) Overlaps(other *RangeSet[K]) bool {
	a, b := s.ranges, other.ranges
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if max(a[i].Lo, b[j].Lo) <= min(a[i].Hi, b[j].Hi) {
			return true
		}
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return false
}

// Equal reports whether s and other hold the same keys. Domains and
// capacities are not compared.
func (s *RangeSet[K]) Equal(other *RangeSet[K]) bool {
	return s.numKeys == other.numKeys && sameRanges(s.ranges, other.ranges)
}

// Compare classifies how s relates to other. Sets over different domains are
// not comparable and yield Unknown, even when Equal would report true.
func (s *RangeSet[K]) Compare(other *RangeSet[K]) Relation {
	if s.validMin != other.validMin || s.validMax != other.validMax {
		return Unknown
	}
	sEmpty, oEmpty := s.IsEmpty(), other.IsEmpty()
	switch {
	case sEmpty && oEmpty:
		return Empty
	case sEmpty:
		return EmptySubset
	case oEmpty:
		return EmptySuperset
	case s.Equal(other):
		return Equal
	case other.ContainsSet(s):
		return Subset
	case s.ContainsSet(other):
		return Superset
	case s.Overlaps(other):
		return Overlap
	default:
		return Disjoint
	}
}
