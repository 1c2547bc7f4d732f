// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitvec

import (
	"encoding/binary"
	"math"

	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"

	"github.com/bpowers/bitrange/internal/dataio"
	"github.com/bpowers/bitrange/internal/unsafeslice"
)

// AppendBinary appends the framed binary encoding of v to dst: the bit length
// as a uvarint followed by the byte layout returned by Bytes.
func (v *BitVector[W]) AppendBinary(dst []byte) ([]byte, error) {
	payload := make([]byte, 0, binary.MaxVarintLen64+(v.maxBits+7)/8)
	payload = binary.AppendUvarint(payload, uint64(v.maxBits))
	payload = v.AppendBytes(payload)
	return dataio.Append(dst, dataio.KindBitVector, width[W](), payload)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v *BitVector[W]) MarshalBinary() ([]byte, error) {
	return v.AppendBinary(nil)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On error v is unchanged.
func (v *BitVector[W]) UnmarshalBinary(data []byte) error {
	h, payload, err := dataio.Decode(data, dataio.KindBitVector)
	if err != nil {
		return err
	}
	if int(h.Width) != width[W]() {
		return errors.Wrapf(ErrWidth, "encoded %d-bit words, decoding %d-bit", h.Width, width[W]())
	}
	maxBits, n := binary.Uvarint(payload)
	if n <= 0 || maxBits > math.MaxInt32 {
		return errors.Wrap(dataio.ErrCorrupt, "bad bit length")
	}
	buf := payload[n:]
	if uint64(len(buf)) != (maxBits+7)/8 {
		return errors.Wrapf(dataio.ErrCorrupt, "%d bits need %d bytes, found %d", maxBits, (maxBits+7)/8, len(buf))
	}
	if rem := maxBits % 8; rem != 0 && buf[len(buf)-1]>>rem != 0 {
		return errors.Wrap(dataio.ErrCorrupt, "bits set beyond length")
	}
	decoded := FromBytes[W](int(maxBits), buf)
	v.CopyFrom(decoded)
	return nil
}

// Fingerprint hashes the length and bits of v. Equal vectors have equal
// fingerprints on a given machine; the hash covers the words in native byte
// order and is not meant to be stored.
func (v *BitVector[W]) Fingerprint() uint64 {
	return farm.Hash64WithSeed(unsafeslice.Bytes(v.words), uint64(v.maxBits))
}
