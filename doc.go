// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bitrange converts between the two integer set representations in
// this module and the bitmap types of the wider ecosystem.
//
// A rangeset.RangeSet stores sorted, disjoint, non-adjacent closed ranges of
// unsigned keys and suits sparse or clustered sets over large domains. A
// bitvec.BitVector stores one bit per index over a fixed length and suits
// dense sets. Neither depends on the other; the functions here copy between
// them, and to and from roaring bitmaps and bitset.BitSet.
package bitrange
