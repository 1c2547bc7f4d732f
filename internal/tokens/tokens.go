// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package tokens splits delimited ASCII lists without allocating.
package tokens

import (
	"strings"
)

// Cut slices s around the first instance of sep,
// returning the text before and after sep.
// The found result reports whether sep appears in s.
// If sep does not appear in s, Cut returns s, "", false.
//
// Unlike strings.Cut this takes a single byte, which is all the
// list grammar needs.
func Cut(s string, sep byte) (before, after string, found bool) {
	if i := strings.IndexByte(s, sep); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

// IsSpace reports whether c is ASCII whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Splitter yields the whitespace-trimmed fields of a sep-delimited list.
//
// An empty (or all-whitespace) input has no fields. Empty fields between two
// delimiters are returned as "", except when sep is itself whitespace, in which
// case runs of sep collapse into one.
type Splitter struct {
	rest     string
	sep      byte
	collapse bool
	done     bool
}

// NewSplitter returns a Splitter over s.
func NewSplitter(s string, sep byte) Splitter {
	s = strings.TrimSpace(s)
	return Splitter{
		rest:     s,
		sep:      sep,
		collapse: IsSpace(sep),
		done:     s == "",
	}
}

// Next returns the next field; ok is false once the list is exhausted.
func (sp *Splitter) Next() (field string, ok bool) {
	for !sp.done {
		before, after, found := Cut(sp.rest, sp.sep)
		if !found {
			sp.done = true
		}
		sp.rest = after
		field = strings.TrimSpace(before)
		if field == "" && sp.collapse {
			continue
		}
		return field, true
	}
	return "", false
}
