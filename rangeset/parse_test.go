// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package rangeset

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in       string
		delim    byte
		expected string
	}{
		{"", ',', ""},
		{"   ", ',', ""},
		{"7", ',', "7"},
		{"1,2,3", ',', "1-3"},
		{" 1 , 5 - 9 ,\t0x10 ", ',', "1,5-9,16"},
		{"0x0A-0x0f", ',', "10-15"},
		{"9,1-3,2", ',', "1-3,9"},
		{"4;6;8-10", ';', "4,6,8-10"},
		{"4-6,8", '-', "4-6,8"},
		{"1  3 5-7", ' ', "1,3,5-7"},
		{"0-65535", ',', "0-65535"},
	} {
		s, err := Parse(tc.in, tc.delim, uint16(0), math.MaxUint16)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.expected, s.String(), tc.in)
		checkInvariants(t, s)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		in    string
		delim byte
		want  error
	}{
		{"11,,12", ',', ErrSyntax},
		{"11,12,", ',', ErrSyntax},
		{"x", ',', ErrSyntax},
		{"0x", ',', ErrSyntax},
		{"-5", ',', ErrSyntax},
		{"5-", ',', ErrSyntax},
		{"1-2-3", ',', ErrSyntax},
		{"+5", ',', ErrSyntax},
		{"1_000", ',', ErrSyntax},
		{"65536", ',', ErrSyntax},
		{"0x1ffff", ',', ErrSyntax},
		{"9-3", ',', ErrInvalidRange},
		{"5", ',', ErrOutOfDomain},
		{"200-300", ',', ErrOutOfDomain},
		{"1,2", '1', ErrDelimiter},
		{"1,2", 'x', ErrDelimiter},
		{"1,2", 'B', ErrDelimiter},
	} {
		_, err := Parse(tc.in, tc.delim, uint16(10), 99)
		require.Error(t, err, tc.in)
		require.True(t, errors.Is(err, tc.want), "%q: %v", tc.in, err)
	}
}

func TestParseClipsRangeTokens(t *testing.T) {
	s, err := Parse("5-13,95-120", ',', uint16(10), 99)
	require.NoError(t, err)
	require.Equal(t, "10-13,95-99", s.String())
}

func TestStringOpsAreAtomic(t *testing.T) {
	s := mustParse[uint16](t, "10-20", 0, 100)
	for _, bad := range []string{
		"1,2,bogus",
		"30-40,200",
		"50,60-55",
	} {
		ok, err := s.AddString(bad, ',')
		require.Error(t, err)
		require.False(t, ok)
		require.Equal(t, "10-20", s.String(), bad)

		ok, err = s.RemoveString(bad, ',')
		require.Error(t, err)
		require.False(t, ok)
		require.Equal(t, "10-20", s.String(), bad)
	}
}

func TestAddRemoveString(t *testing.T) {
	s := mustParse[uint32](t, "10-20", 0, 1000)
	ok, err := s.AddString("1, 0x15-25, 500", ',')
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1,10-25,500", s.String())

	ok, err = s.AddString("11-12;500", ';')
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.RemoveString("12-14 500", ' ')
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1,10-11,15-25", s.String())

	ok, err = s.RemoveString("", ',')
	require.NoError(t, err)
	require.False(t, ok)
	checkInvariants(t, s)
}

func TestFormat(t *testing.T) {
	s := mustParse[uint8](t, "0,2-3,5-9,255", 0, 255)
	require.Equal(t, "0,2-3,5-9,255", s.String())
	require.Equal(t, "0;2-3;5-9;255", s.Format(';'))
	require.Equal(t, "0 2-3 5-9 255", s.Format(' '))
	// '-' is reserved for ranges
	require.Equal(t, "0,2-3,5-9,255", s.Format('-'))
	require.Equal(t, []byte("x:0:2-3:5-9:255"), s.AppendFormat([]byte("x:"), ':'))
}

func randomSet(rng *rand.Rand, domainMax uint32) *RangeSet[uint32] {
	s, _ := New[uint32](0, domainMax, 0)
	for i := rng.Intn(40); i > 0; i-- {
		lo := uint32(rng.Int63n(int64(domainMax) + 1))
		hi := lo + uint32(rng.Intn(50))
		if hi > domainMax || hi < lo {
			hi = domainMax
		}
		_, _ = s.AddRange(lo, hi)
	}
	return s
}

func TestFormatParseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		s := randomSet(rng, 1<<20)
		for _, delim := range []byte{',', ';', ':', ' ', '|', '-'} {
			text := s.Format(delim)
			parsed, err := Parse(text, delim, uint32(0), 1<<20)
			require.NoError(t, err, text)
			require.True(t, parsed.Equal(s), "%q", text)
			require.Equal(t, s.NumRanges(), parsed.NumRanges())
		}
	}
}
