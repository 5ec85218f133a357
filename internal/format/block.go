// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"github.com/hellobertrand/zxc/internal/bitio"
	"github.com/hellobertrand/zxc/internal/xhash"
	"github.com/hellobertrand/zxc/internal/zxcerr"
)

// BlockHeader is the decoded form of the 8-byte header that precedes every
// block's payload.
type BlockHeader struct {
	Type     BlockType
	CompSize uint32
}

// WriteBlockHeader serializes h into dst[0:8].
func WriteBlockHeader(dst []byte, h BlockHeader) int {
	_ = dst[BlockHeaderSize-1]
	dst[0] = byte(h.Type)
	dst[1] = 0
	dst[2] = 0
	bitio.StoreU32(dst[3:7], h.CompSize)
	dst[7] = 0
	dst[7] = xhash.CRC8(dst[:BlockHeaderSize])
	return BlockHeaderSize
}

// ReadBlockHeader parses an 8-byte block header at the start of src.
func ReadBlockHeader(src []byte) (BlockHeader, error) {
	if len(src) < BlockHeaderSize {
		return BlockHeader{}, zxcerr.SrcTooSmall
	}
	var tmp [BlockHeaderSize]byte
	copy(tmp[:], src[:BlockHeaderSize])
	wantCRC := tmp[7]
	tmp[7] = 0
	if xhash.CRC8(tmp[:]) != wantCRC {
		return BlockHeader{}, zxcerr.BadHeader
	}

	bt := BlockType(src[0])
	switch bt {
	case BlockRaw, BlockNum, BlockGlo, BlockGhi, BlockEOF:
	default:
		return BlockHeader{}, zxcerr.BadBlockType
	}

	return BlockHeader{
		Type:     bt,
		CompSize: bitio.LoadU32(src[3:7]),
	}, nil
}

// Footer is the decoded form of the 12-byte trailer written after the EOF
// block.
type Footer struct {
	TotalSize  uint64
	GlobalHash uint32
}

// WriteFooter serializes f into dst[0:12].
func WriteFooter(dst []byte, f Footer) int {
	_ = dst[FooterSize-1]
	bitio.StoreU64(dst[0:8], f.TotalSize)
	bitio.StoreU32(dst[8:12], f.GlobalHash)
	return FooterSize
}

// ReadFooter parses a 12-byte footer at the start of src.
func ReadFooter(src []byte) (Footer, error) {
	if len(src) < FooterSize {
		return Footer{}, zxcerr.SrcTooSmall
	}
	return Footer{
		TotalSize:  bitio.LoadU64(src[0:8]),
		GlobalHash: bitio.LoadU32(src[8:12]),
	}, nil
}
