// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"github.com/hellobertrand/zxc/internal/bitio"
	"github.com/hellobertrand/zxc/internal/zxcerr"
)

// SectionDesc is one 8-byte section-descriptor entry: the on-disk size of a
// sub-stream and, when that sub-stream is stored in a different encoding
// than its decoded form (e.g. RLE literals), the decoded size.
type SectionDesc struct {
	OnDiskSize  uint32
	DecodedSize uint32
}

func ReadSectionDesc(src []byte) SectionDesc {
	return SectionDesc{
		OnDiskSize:  bitio.LoadU32(src[0:4]),
		DecodedSize: bitio.LoadU32(src[4:8]),
	}
}

func WriteSectionDesc(dst []byte, d SectionDesc) {
	bitio.StoreU32(dst[0:4], d.OnDiskSize)
	bitio.StoreU32(dst[4:8], d.DecodedSize)
}

// NumHeader is the 16-byte header that opens a NUM block payload.
type NumHeader struct {
	NValues   uint64
	FrameSize uint16
}

func WriteNumHeader(dst []byte, h NumHeader) int {
	_ = dst[NumHeaderSize-1]
	bitio.StoreU64(dst[0:8], h.NValues)
	bitio.StoreU16(dst[8:10], h.FrameSize)
	for i := 10; i < NumHeaderSize; i++ {
		dst[i] = 0
	}
	return NumHeaderSize
}

func ReadNumHeader(src []byte) (NumHeader, error) {
	if len(src) < NumHeaderSize {
		return NumHeader{}, zxcerr.SrcTooSmall
	}
	return NumHeader{
		NValues:   bitio.LoadU64(src[0:8]),
		FrameSize: bitio.LoadU16(src[8:10]),
	}, nil
}

// NumChunkHeader precedes each bit-packed frame within a NUM block.
type NumChunkHeader struct {
	NVals uint16
	Bits  uint16
	PSize uint32
}

func WriteNumChunkHeader(dst []byte, h NumChunkHeader) int {
	_ = dst[NumChunkHeaderSize-1]
	bitio.StoreU16(dst[0:2], h.NVals)
	bitio.StoreU16(dst[2:4], h.Bits)
	for i := 4; i < 12; i++ {
		dst[i] = 0
	}
	bitio.StoreU32(dst[12:16], h.PSize)
	return NumChunkHeaderSize
}

func ReadNumChunkHeader(src []byte) (NumChunkHeader, error) {
	if len(src) < NumChunkHeaderSize {
		return NumChunkHeader{}, zxcerr.SrcTooSmall
	}
	return NumChunkHeader{
		NVals: bitio.LoadU16(src[0:2]),
		Bits:  bitio.LoadU16(src[2:4]),
		PSize: bitio.LoadU32(src[12:16]),
	}, nil
}

// GLO encoding flag bits, packed into GloHeader.EncFlags.
const (
	GloEncLit    = 1 << 0 // 1 = literal stream is RLE-compressed
	GloEncOff    = 1 << 1 // 1 = offsets are 1 byte (short-offset mode)
	GloEncLitLen = 1 << 2 // reserved
	GloEncMLen   = 1 << 3 // reserved
)

// GloHeader is the 16-byte header that opens a GLO block payload, followed
// by four SectionDesc entries (literal, token, offset, extras streams).
type GloHeader struct {
	NSequences uint32
	NLiterals  uint32
	EncFlags   byte
}

func WriteGloHeader(dst []byte, h GloHeader) int {
	_ = dst[GloHeaderSize-1]
	bitio.StoreU32(dst[0:4], h.NSequences)
	bitio.StoreU32(dst[4:8], h.NLiterals)
	dst[8] = h.EncFlags
	for i := 9; i < GloHeaderSize; i++ {
		dst[i] = 0
	}
	return GloHeaderSize
}

func ReadGloHeader(src []byte) (GloHeader, error) {
	if len(src) < GloHeaderSize {
		return GloHeader{}, zxcerr.SrcTooSmall
	}
	return GloHeader{
		NSequences: bitio.LoadU32(src[0:4]),
		NLiterals:  bitio.LoadU32(src[4:8]),
		EncFlags:   src[8],
	}, nil
}

// GhiHeader is the 16-byte header that opens a GHI block payload, followed
// by three SectionDesc entries (literal, sequence, extras streams).
type GhiHeader struct {
	NSequences uint32
	NLiterals  uint32
}

func WriteGhiHeader(dst []byte, h GhiHeader) int {
	_ = dst[GhiHeaderSize-1]
	bitio.StoreU32(dst[0:4], h.NSequences)
	bitio.StoreU32(dst[4:8], h.NLiterals)
	for i := 8; i < GhiHeaderSize; i++ {
		dst[i] = 0
	}
	return GhiHeaderSize
}

func ReadGhiHeader(src []byte) (GhiHeader, error) {
	if len(src) < GhiHeaderSize {
		return GhiHeader{}, zxcerr.SrcTooSmall
	}
	return GhiHeader{
		NSequences: bitio.LoadU32(src[0:4]),
		NLiterals:  bitio.LoadU32(src[4:8]),
	}, nil
}
