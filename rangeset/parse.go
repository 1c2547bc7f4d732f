// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package rangeset

import (
	"math/bits"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bpowers/bitrange/internal/tokens"
)

// DefaultDelim separates tokens when formatting with String.
const DefaultDelim = ','

func keyWidth[K Key]() int {
	return bits.Len64(uint64(maxKey[K]()))
}

// normalizeDelim maps '-', which the range syntax owns, to ',' and rejects
// bytes that can appear inside a key.
func normalizeDelim(delim byte) (byte, error) {
	switch {
	case delim == '-':
		return DefaultDelim, nil
	case '0' <= delim && delim <= '9',
		'a' <= delim && delim <= 'f',
		'A' <= delim && delim <= 'F',
		delim == 'x', delim == 'X':
		return 0, errors.Wrapf(ErrDelimiter, "%q", delim)
	}
	return delim, nil
}

func parseKey[K Key](tok string) (K, error) {
	base, digits := 10, tok
	if len(tok) > 2 && tok[0] == '0' && (tok[1] == 'x' || tok[1] == 'X') {
		base, digits = 16, tok[2:]
	}
	v, err := strconv.ParseUint(digits, base, keyWidth[K]())
	if err != nil {
		return 0, errors.Wrapf(ErrSyntax, "key %q", tok)
	}
	return K(v), nil
}

// parseToken parses "key" or "lo-hi" and checks it against the domain.
func parseToken[K Key](tok string, validMin, validMax K) (Range[K], error) {
	if tok == "" {
		return Range[K]{}, errors.Wrap(ErrSyntax, "empty token")
	}
	loTok, hiTok, isRange := tokens.Cut(tok, '-')
	lo, err := parseKey[K](strings.TrimSpace(loTok))
	if err != nil {
		return Range[K]{}, err
	}
	if !isRange {
		if err := checkKey(lo, validMin, validMax); err != nil {
			return Range[K]{}, err
		}
		return Range[K]{Lo: lo, Hi: lo}, nil
	}
	hi, err := parseKey[K](strings.TrimSpace(hiTok))
	if err != nil {
		return Range[K]{}, err
	}
	return clip(lo, hi, validMin, validMax)
}

// parseRanges parses a delimited list into sorted, coalesced ranges. Any bad
// token fails the whole list.
func parseRanges[K Key](s string, delim byte, validMin, validMax K) ([]Range[K], error) {
	delim, err := normalizeDelim(delim)
	if err != nil {
		return nil, err
	}
	var rs []Range[K]
	sp := tokens.NewSplitter(s, delim)
	for {
		tok, ok := sp.Next()
		if !ok {
			break
		}
		r, err := parseToken(tok, validMin, validMax)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	if !sort.SliceIsSorted(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo }) {
		sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })
	}
	out := rs[:0]
	for _, r := range rs {
		out = appendCoalesced(out, r)
	}
	return out, nil
}

// Parse returns a new set over [validMin, validMax] holding the keys listed in s.
func Parse[K Key](s string, delim byte, validMin, validMax K, opts ...Option[K]) (*RangeSet[K], error) {
	if validMin > validMax {
		return nil, errors.Wrapf(ErrInvalidRange, "domain [%d, %d]", validMin, validMax)
	}
	rs, err := parseRanges(s, delim, validMin, validMax)
	if err != nil {
		return nil, err
	}
	set, err := New(validMin, validMax, len(rs), opts...)
	if err != nil {
		return nil, err
	}
	set.ranges = append(set.ranges, rs...)
	set.numKeys = countKeys(rs)
	return set, nil
}

// AddString adds the keys listed in s, a delim-separated list of keys and
// lo-hi ranges in decimal or 0x-prefixed hex. Either every token is applied or,
// on error, none is.
func (s *RangeSet[K]) AddString(list string, delim byte) (bool, error) {
	rs, err := parseRanges(list, delim, s.validMin, s.validMax)
	if err != nil {
		return false, err
	}
	return s.rebuild(len(s.ranges)+len(rs), func(dst []Range[K]) []Range[K] {
		return union(dst, s.ranges, rs)
	}), nil
}

// RemoveString removes the keys listed in s, with the grammar and atomicity
// of AddString.
func (s *RangeSet[K]) RemoveString(list string, delim byte) (bool, error) {
	rs, err := parseRanges(list, delim, s.validMin, s.validMax)
	if err != nil {
		return false, err
	}
	return s.rebuild(len(s.ranges)+len(rs), func(dst []Range[K]) []Range[K] {
		return difference(dst, s.ranges, rs)
	}), nil
}

// AppendFormat appends the canonical list form of s to dst: single keys as
// decimal literals, longer runs as lo-hi, joined by delim.
func (s *RangeSet[K]) AppendFormat(dst []byte, delim byte) []byte {
	if delim == '-' {
		delim = DefaultDelim
	}
	for i, r := range s.ranges {
		if i > 0 {
			dst = append(dst, delim)
		}
		dst = strconv.AppendUint(dst, uint64(r.Lo), 10)
		if r.Hi != r.Lo {
			dst = append(dst, '-')
			dst = strconv.AppendUint(dst, uint64(r.Hi), 10)
		}
	}
	return dst
}

// Format returns the canonical list form of s; Parse and AddString accept it
// with the same delim.
func (s *RangeSet[K]) Format(delim byte) string {
	return string(s.AppendFormat(nil, delim))
}

func (s *RangeSet[K]) String() string {
	return s.Format(DefaultDelim)
}
