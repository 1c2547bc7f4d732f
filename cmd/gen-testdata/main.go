// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command gen-testdata prints random range lists, one per line, as
// "input:canonical" where canonical is the list after parsing and
// reformatting with the rangeset package.
package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/bpowers/bitrange/internal/wordops"
	"github.com/bpowers/bitrange/rangeset"
)

const (
	maxKey    = 1 << 16
	maxTokens = 12
	maxSpan   = 64
)

func newRand() *rand.Rand {
	var seedBytes [8]byte
	if _, err := crand.Read(seedBytes[:]); err != nil {
		panic(err)
	}
	seed := int64(binary.LittleEndian.Uint64(seedBytes[:]))
	return rand.New(rand.NewSource(seed))
}

func randomList(rng *rand.Rand) string {
	var sb strings.Builder
	n := 1 + rng.Intn(maxTokens)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		lo := rng.Intn(maxKey)
		switch rng.Intn(3) {
		case 0:
			fmt.Fprintf(&sb, "%d", lo)
		case 1:
			fmt.Fprintf(&sb, "%d-%d", lo, min(maxKey-1, lo+rng.Intn(maxSpan)))
		default:
			fmt.Fprintf(&sb, "%#x-%#x", lo, min(maxKey-1, lo+rng.Intn(maxSpan)))
		}
	}
	return sb.String()
}

func main() {
	n := flag.Int("n", 1000, "number of lists to generate")
	verbose := flag.Bool("v", false, "log word primitive selection to stderr")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *verbose {
		wordops.LogCapability(logger)
	}

	rng := newRand()
	for i := 0; i < *n; i++ {
		list := randomList(rng)
		s, err := rangeset.Parse[uint16](list, rangeset.DefaultDelim, 0, maxKey-1)
		if err != nil {
			logger.Error("parse failed", "list", list, "err", err)
			os.Exit(1)
		}
		fmt.Printf("%s:%s\n", list, s)
	}
}
