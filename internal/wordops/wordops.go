// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package wordops provides population count and bit scan primitives over the
// unsigned word widths a bit vector can be built from.
//
// The CPU is probed once at init and the result cached in package state. The
// BITRANGE_WORDOPS environment variable ("auto", "hardware" or "generic") can
// force the portable fallbacks, which is mostly useful for testing. Callers
// pick their primitives once per operation with For and then run their loops
// without further capability checks.
package wordops

import (
	"fmt"
	"log/slog"
	"math/bits"
	"os"
	"strings"
)

// Word is the set of word types a bit vector may use.
type Word interface {
	uint8 | uint16 | uint32 | uint64
}

// Width returns the number of bits in W.
func Width[W Word]() int {
	return bits.Len64(uint64(^W(0)))
}

// Ones returns a word with every bit set.
func Ones[W Word]() W {
	return ^W(0)
}

// LowMask returns a word with bits [0, n) set; n must be in [0, Width[W]()].
func LowMask[W Word](n int) W {
	if n >= Width[W]() {
		return ^W(0)
	}
	return W(1)<<uint(n) - 1
}

// Capability describes which primitives run on hardware instructions.
type Capability struct {
	Popcount bool
	BitScan  bool
}

func (c Capability) String() string {
	return fmt.Sprintf("popcount=%s bitscan=%s", impl(c.Popcount), impl(c.BitScan))
}

func impl(hw bool) string {
	if hw {
		return "hardware"
	}
	return "generic"
}

// Mode selects how the active capability is derived from the probed one.
type Mode uint8

const (
	Auto Mode = iota
	Hardware
	Generic
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Hardware:
		return "hardware"
	case Generic:
		return "generic"
	default:
		return "unknown"
	}
}

// ParseMode parses the value of EnvOverride.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, true
	case "hardware":
		return Hardware, true
	case "generic":
		return Generic, true
	default:
		return Auto, false
	}
}

// EnvOverride names the environment variable consulted at init.
const EnvOverride = "BITRANGE_WORDOPS"

// Package-level state, written only during init.
var (
	detected Capability
	active   Capability
	mode     Mode
)

func init() {
	detected = probe()
	m, ok := ParseMode(os.Getenv(EnvOverride))
	if !ok {
		slog.Warn("wordops: ignoring unknown override", "env", EnvOverride, "value", os.Getenv(EnvOverride))
	}
	mode = m
	active = resolve(detected, m)
}

func resolve(c Capability, m Mode) Capability {
	if m == Generic {
		return Capability{}
	}
	// Hardware can't conjure instructions the CPU lacks, so it behaves like Auto.
	return c
}

// Detected returns what the CPU supports.
func Detected() Capability { return detected }

// Active returns the capability in use after applying the override.
func Active() Capability { return active }

// LogCapability records the selected primitives on l.
func LogCapability(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	l.Info("wordops: selected primitives",
		"mode", mode.String(),
		"popcount", impl(active.Popcount),
		"bitscan", impl(active.BitScan),
		"detected", detected.String())
}

// Ops bundles the per-word primitives for one word width.
type Ops[W Word] struct {
	OnesCount     func(W) int
	TrailingZeros func(W) int
	LeadingZeros  func(W) int
}

// For returns the active primitives for W.
func For[W Word]() Ops[W] {
	return opsFor[W](active)
}

func opsFor[W Word](c Capability) Ops[W] {
	o := Ops[W]{
		OnesCount:     tableOnesCount[W],
		TrailingZeros: genericTrailingZeros[W],
		LeadingZeros:  genericLeadingZeros[W],
	}
	if c.Popcount {
		o.OnesCount = hwOnesCount[W]
	}
	if c.BitScan {
		o.TrailingZeros = hwTrailingZeros[W]
		o.LeadingZeros = hwLeadingZeros[W]
	}
	return o
}

// Count returns the number of set bits across words.
func Count[W Word](words []W) int {
	return countWith(words, active.Popcount)
}

func countWith[W Word](words []W, hw bool) int {
	n := 0
	if hw {
		for _, w := range words {
			n += bits.OnesCount64(uint64(w))
		}
		return n
	}
	for _, w := range words {
		n += tableOnesCount(w)
	}
	return n
}

func hwOnesCount[W Word](w W) int {
	return bits.OnesCount64(uint64(w))
}

// hwTrailingZeros returns Width[W]() for a zero word.
func hwTrailingZeros[W Word](w W) int {
	if w == 0 {
		return Width[W]()
	}
	return bits.TrailingZeros64(uint64(w))
}

func hwLeadingZeros[W Word](w W) int {
	return bits.LeadingZeros64(uint64(w)) - (64 - Width[W]())
}
