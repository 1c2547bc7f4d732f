// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package zero provides functions to zero and fill slices in place.
package zero

// Slice sets every element of s to the zero value of T, leaving len and cap alone.
func Slice[T any](s []T) {
	for i := range s {
		var z T
		s[i] = z
	}
}

// Fill sets every element of s to v.
func Fill[T any](s []T, v T) {
	for i := range s {
		s[i] = v
	}
}
