// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package growth implements the capacity policy shared by the set types:
// capacity only ever doubles, and explicit resizes may not shrink.
package growth

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrShrink      = errors.New("capacity can only grow")
	ErrFixedFactor = errors.New("growth factor is fixed to doubling")
	ErrTooLarge    = errors.New("capacity overflows int")
)

// Initial normalizes a requested initial capacity: anything below 1 becomes 1.
func Initial(capacity int) int {
	if capacity < 1 {
		return 1
	}
	return capacity
}

// Capacity returns the capacity to move to so that need elements fit,
// doubling from cur until they do.
func Capacity(cur, need int) (int, error) {
	if need < 0 {
		return 0, errors.Wrapf(ErrTooLarge, "need %d", need)
	}
	cur = Initial(cur)
	for cur < need {
		if cur > math.MaxInt/2 {
			return 0, errors.Wrapf(ErrTooLarge, "doubling %d to fit %d", cur, need)
		}
		cur *= 2
	}
	return cur, nil
}

// Check validates an explicit resize from cur to next.
func Check(cur, next int) error {
	if next < cur {
		return errors.Wrapf(ErrShrink, "new capacity %d needs to be at least old capacity %d", next, cur)
	}
	return nil
}

// SetFactor exists for callers that want a custom growth factor. Only negative
// values, meaning "use the default", are accepted.
func SetFactor(factor int) error {
	if factor >= 0 {
		return errors.Wrapf(ErrFixedFactor, "factor %d", factor)
	}
	return nil
}
