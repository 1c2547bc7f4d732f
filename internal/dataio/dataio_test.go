// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package dataio

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, payload := range [][]byte{
		{},
		{1},
		[]byte("0-9,11,13-99"),
	} {
		frame, err := Append(nil, KindRangeSet, 16, payload)
		require.NoError(t, err)
		require.Len(t, frame, HeaderSize+len(payload))

		h, got, err := Decode(frame, KindRangeSet)
		require.NoError(t, err)
		require.Equal(t, KindRangeSet, h.Kind)
		require.Equal(t, uint8(16), h.Width)
		require.Equal(t, uint32(len(payload)), h.Length)
		require.Equal(t, payload, got)
	}
}

func TestAppendKeepsPrefix(t *testing.T) {
	frame, err := Append([]byte("xy"), KindBitVector, 64, []byte{7})
	require.NoError(t, err)
	require.Equal(t, []byte("xy"), frame[:2])
	_, payload, err := Decode(frame[2:], KindBitVector)
	require.NoError(t, err)
	require.Equal(t, []byte{7}, payload)
}

func TestAppendRejectsBadWidth(t *testing.T) {
	_, err := Append(nil, KindBitVector, 0, nil)
	require.Error(t, err)
	_, err = Append(nil, KindBitVector, 256, nil)
	require.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	good, err := Append(nil, KindBitVector, 8, []byte{1, 2, 3, 4})
	require.NoError(t, err)

	corrupt := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return f(b)
	}

	for _, tc := range []struct {
		name string
		data []byte
		want error
	}{
		{"short", good[:HeaderSize-1], ErrCorrupt},
		{"magic", corrupt(func(b []byte) []byte { b[0] ^= 0xff; return b }), ErrCorrupt},
		{"version", corrupt(func(b []byte) []byte { b[4] = 9; return b }), ErrVersion},
		{"truncated", good[:len(good)-1], ErrCorrupt},
		{"trailing", append(append([]byte(nil), good...), 0), ErrCorrupt},
		{"checksum", corrupt(func(b []byte) []byte { b[len(b)-1] ^= 1; return b }), ErrCorrupt},
	} {
		_, _, err := Decode(tc.data, KindBitVector)
		require.Error(t, err, tc.name)
		require.True(t, errors.Is(err, tc.want), "%s: %v", tc.name, err)
	}

	_, _, err = Decode(good, KindRangeSet)
	require.True(t, errors.Is(err, ErrKind))
}
