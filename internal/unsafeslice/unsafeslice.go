// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package unsafeslice

import (
	"unsafe"
)

// Integer is the set of fixed-width element types that can be viewed as raw bytes.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Bytes returns a byte slice referring to the memory backing s, in native byte order.
// SAFETY: the returned byte slice must never be written to, only read, and must
// not outlive s.
func Bytes[T Integer](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	n := len(s) * int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), n)
}
