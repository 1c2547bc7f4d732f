// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package growth

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCapacity(t *testing.T) {
	for _, tc := range []struct {
		cur, need, expected int
	}{
		{0, 0, 1},
		{0, 1, 1},
		{1, 2, 2},
		{1, 3, 4},
		{4, 4, 4},
		{4, 5, 8},
		{3, 13, 24},
	} {
		got, err := Capacity(tc.cur, tc.need)
		require.NoError(t, err)
		require.Equal(t, tc.expected, got, "Capacity(%d, %d)", tc.cur, tc.need)
	}

	_, err := Capacity(math.MaxInt/2+1, math.MaxInt)
	require.True(t, errors.Is(err, ErrTooLarge))
	_, err = Capacity(1, -1)
	require.True(t, errors.Is(err, ErrTooLarge))
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(4, 4))
	require.NoError(t, Check(4, 9))
	err := Check(8, 4)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrShrink))
}

func TestSetFactor(t *testing.T) {
	for _, f := range []int{0, 1, 2, 100} {
		require.True(t, errors.Is(SetFactor(f), ErrFixedFactor))
	}
	require.NoError(t, SetFactor(-1))
}

func TestInitial(t *testing.T) {
	require.Equal(t, 1, Initial(-3))
	require.Equal(t, 1, Initial(0))
	require.Equal(t, 7, Initial(7))
}
