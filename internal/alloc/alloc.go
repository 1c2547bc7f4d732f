// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package alloc provides the storage collaborators used by the set types.
//
// An Allocator hands out slices of exactly the requested length and takes them
// back when the owner is done. Heap simply defers to the garbage collector;
// Pool recycles buffers by power-of-two size class.
package alloc

import (
	"math/bits"
	"sync"

	"github.com/bpowers/bitrange/internal/zero"
)

// Allocator allocates and frees element buffers.
type Allocator[T any] interface {
	// Allocate returns a zeroed slice with len n and cap >= n.
	Allocate(n int) []T
	// Free returns buf to the allocator; buf must not be used afterwards.
	Free(buf []T)
}

// Heap allocates with make and leaves freeing to the garbage collector.
type Heap[T any] struct{}

func (Heap[T]) Allocate(n int) []T {
	return make([]T, n)
}

func (Heap[T]) Free([]T) {}

// maxClass bounds the size classes Pool will recycle; larger buffers go
// straight to the heap.
const maxClass = 32

// Pool is a size-classed buffer pool. The zero value is ready to use and a
// Pool may be shared between goroutines.
type Pool[T any] struct {
	classes [maxClass + 1]sync.Pool
}

func sizeClass(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

func (p *Pool[T]) Allocate(n int) []T {
	class := sizeClass(n)
	if class > maxClass {
		return make([]T, n)
	}
	if v := p.classes[class].Get(); v != nil {
		buf := (*v.(*[]T))[:n]
		zero.Slice(buf)
		return buf
	}
	return make([]T, n, 1<<class)
}

func (p *Pool[T]) Free(buf []T) {
	c := cap(buf)
	if c == 0 || c&(c-1) != 0 {
		// not one of ours
		return
	}
	class := sizeClass(c)
	if class > maxClass {
		return
	}
	buf = buf[:0]
	p.classes[class].Put(&buf)
}
