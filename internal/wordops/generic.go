// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package wordops

var popTable [256]uint8

func init() {
	for i := range popTable {
		popTable[i] = popTable[i/2] + uint8(i&1)
	}
}

func tableOnesCount[W Word](w W) int {
	n := 0
	v := uint64(w)
	for i := Width[W]() / 8; i > 0; i-- {
		n += int(popTable[v&0xff])
		v >>= 8
	}
	return n
}

func genericTrailingZeros[W Word](w W) int {
	width := Width[W]()
	for i := 0; i < width; i++ {
		if w&(W(1)<<uint(i)) != 0 {
			return i
		}
	}
	return width
}

func genericLeadingZeros[W Word](w W) int {
	width := Width[W]()
	for i := width - 1; i >= 0; i-- {
		if w&(W(1)<<uint(i)) != 0 {
			return width - 1 - i
		}
	}
	return width
}
