// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package rangeset

import (
	"encoding/binary"

	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"

	"github.com/bpowers/bitrange/internal/dataio"
)

// appendRanges appends the ranges as uvarint pairs: the distance of Lo from the
// end of the previous range (or from 0), then Hi-Lo.
func appendRanges[K Key](dst []byte, rs []Range[K]) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(rs)))
	var base K
	for _, r := range rs {
		dst = binary.AppendUvarint(dst, uint64(r.Lo-base))
		dst = binary.AppendUvarint(dst, uint64(r.Hi-r.Lo))
		base = r.Hi + 1
	}
	return dst
}

// AppendBinary appends the framed binary encoding of s to dst.
func (s *RangeSet[K]) AppendBinary(dst []byte) ([]byte, error) {
	payload := make([]byte, 0, 2*binary.MaxVarintLen64+4*len(s.ranges)+binary.MaxVarintLen64)
	payload = binary.AppendUvarint(payload, uint64(s.validMin))
	payload = binary.AppendUvarint(payload, uint64(s.validMax))
	payload = appendRanges(payload, s.ranges)
	return dataio.Append(dst, dataio.KindRangeSet, keyWidth[K](), payload)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *RangeSet[K]) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(nil)
}

type payloadReader struct {
	buf []byte
	err error
}

func (r *payloadReader) uvarint(limit uint64) uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf)
	if n <= 0 {
		r.err = errors.Wrap(dataio.ErrCorrupt, "bad uvarint")
		return 0
	}
	if v > limit {
		r.err = errors.Wrapf(dataio.ErrCorrupt, "value %d exceeds %d", v, limit)
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, replacing the
// contents and domain of s. On error s is unchanged.
func (s *RangeSet[K]) UnmarshalBinary(data []byte) error {
	h, payload, err := dataio.Decode(data, dataio.KindRangeSet)
	if err != nil {
		return err
	}
	if int(h.Width) != keyWidth[K]() {
		return errors.Wrapf(ErrWidth, "encoded %d-bit keys, decoding %d-bit", h.Width, keyWidth[K]())
	}
	limit := uint64(maxKey[K]())
	r := payloadReader{buf: payload}
	validMin := K(r.uvarint(limit))
	validMax := K(r.uvarint(limit))
	n := r.uvarint(uint64(len(payload)))
	if r.err != nil {
		return r.err
	}
	if validMin > validMax {
		return errors.Wrapf(dataio.ErrCorrupt, "domain [%d, %d]", validMin, validMax)
	}

	rs := make([]Range[K], 0, n)
	var base uint64
	for i := uint64(0); i < n; i++ {
		gap := r.uvarint(limit)
		span := r.uvarint(limit)
		if r.err != nil {
			return r.err
		}
		lo := base + gap
		hi := lo + span
		if lo < base || hi < lo || hi > limit || (i > 0 && gap == 0) {
			return errors.Wrapf(dataio.ErrCorrupt, "range %d overflows or touches its predecessor", i)
		}
		if K(lo) < validMin || K(hi) > validMax {
			return errors.Wrapf(dataio.ErrCorrupt, "range [%d, %d] outside domain", lo, hi)
		}
		rs = append(rs, Range[K]{Lo: K(lo), Hi: K(hi)})
		if hi == limit && i+1 < n {
			return errors.Wrap(dataio.ErrCorrupt, "ranges continue past the largest key")
		}
		base = hi + 1
	}
	if len(r.buf) != 0 {
		return errors.Wrapf(dataio.ErrCorrupt, "%d trailing bytes", len(r.buf))
	}

	if cap(s.ranges) < len(rs) {
		s.adopt(s.allocator().Allocate(len(rs))[:0])
	}
	s.ranges = append(s.ranges[:0], rs...)
	s.numKeys = countKeys(rs)
	s.validMin = validMin
	s.validMax = validMax
	return nil
}

// Fingerprint hashes the keys of s. Sets that are Equal have equal fingerprints.
func (s *RangeSet[K]) Fingerprint() uint64 {
	return farm.Hash64(appendRanges(nil, s.ranges))
}
