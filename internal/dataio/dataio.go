// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package dataio frames serialized sets: a small fixed header carrying a magic
// number, format version, payload kind and element width, followed by a
// checksummed payload.
package dataio

import (
	"encoding/binary"
	"math"

	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"
)

const (
	magicDataHeader = 0xC0FFEE0D
	formatVersion   = 1
	// 32-bit magic + 16-bit version + 8-bit kind + 8-bit width + 32-bit length + 32-bit checksum
	HeaderSize = 4 + 2 + 1 + 1 + 4 + 4
)

var (
	ErrCorrupt = errors.New("corrupt frame")
	ErrVersion = errors.New("unsupported frame version")
	ErrKind    = errors.New("unexpected frame kind")
)

// Kind identifies what a frame's payload encodes.
type Kind uint8

const (
	KindRangeSet  Kind = 1
	KindBitVector Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindRangeSet:
		return "rangeset"
	case KindBitVector:
		return "bitvector"
	default:
		return "unknown"
	}
}

// Header is the decoded fixed-size frame header.
type Header struct {
	Kind     Kind
	Width    uint8 // bits per key or word
	Length   uint32
	Checksum uint32
}

func checksum(payload []byte) uint32 {
	return uint32(farm.Hash64(payload))
}

// Append appends a frame holding payload to dst.
func Append(dst []byte, kind Kind, width int, payload []byte) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, errors.Errorf("payload length %d greater than %d", len(payload), uint32(math.MaxUint32))
	}
	if width <= 0 || width > math.MaxUint8 {
		return nil, errors.Errorf("width %d out of range", width)
	}
	var header [HeaderSize]byte
	binary.LittleEndian.PutUint32(header[0:4], magicDataHeader)
	binary.LittleEndian.PutUint16(header[4:6], formatVersion)
	header[6] = byte(kind)
	header[7] = byte(width)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[12:16], checksum(payload))
	dst = append(dst, header[:]...)
	return append(dst, payload...), nil
}

// Decode validates the frame in data and returns its header and payload.
// The payload aliases data.
func Decode(data []byte, want Kind) (Header, []byte, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, nil, errors.Wrapf(ErrCorrupt, "frame of %d bytes shorter than header", len(data))
	}
	header := data[:HeaderSize]
	// bounds check elimination
	_ = header[HeaderSize-1]
	if magic := binary.LittleEndian.Uint32(header[0:4]); magic != magicDataHeader {
		return h, nil, errors.Wrapf(ErrCorrupt, "bad magic number (%x)", magic)
	}
	if version := binary.LittleEndian.Uint16(header[4:6]); version != formatVersion {
		return h, nil, errors.Wrapf(ErrVersion, "can only read v%d frames; found v%d", formatVersion, version)
	}
	h.Kind = Kind(header[6])
	h.Width = header[7]
	h.Length = binary.LittleEndian.Uint32(header[8:12])
	h.Checksum = binary.LittleEndian.Uint32(header[12:16])
	if h.Kind != want {
		return h, nil, errors.Wrapf(ErrKind, "want %s, found %s", want, h.Kind)
	}
	if uint64(HeaderSize)+uint64(h.Length) != uint64(len(data)) {
		return h, nil, errors.Wrapf(ErrCorrupt, "payload length %d does not match frame of %d bytes", h.Length, len(data))
	}
	payload := data[HeaderSize:]
	if sum := checksum(payload); sum != h.Checksum {
		return h, nil, errors.Wrapf(ErrCorrupt, "checksum failed (%d != %d)", h.Checksum, sum)
	}
	return h, payload, nil
}
