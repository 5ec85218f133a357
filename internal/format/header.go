// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"github.com/hellobertrand/zxc/internal/bitio"
	"github.com/hellobertrand/zxc/internal/xhash"
	"github.com/hellobertrand/zxc/internal/zxcerr"
)

// FileHeader is the decoded form of the 16-byte header every ZXC archive
// starts with.
type FileHeader struct {
	BlockSize   int
	HasChecksum bool
}

// WriteFileHeader serializes the 16-byte ZXC file header into dst[0:16].
// dst must have length >= FileHeaderSize.
func WriteFileHeader(dst []byte, hasChecksum bool) int {
	_ = dst[FileHeaderSize-1]

	bitio.StoreU32(dst[0:4], MagicWord)
	dst[4] = FormatVersion
	dst[5] = byte(BlockSize / BlockUnit)
	if hasChecksum {
		dst[6] = FlagHasChecksum | FlagRapidHash
	} else {
		dst[6] = 0
	}
	for i := 7; i < 14; i++ {
		dst[i] = 0
	}

	bitio.StoreU16(dst[14:16], 0)
	crc := xhash.CRC16(dst[:FileHeaderSize])
	bitio.StoreU16(dst[14:16], crc)
	return FileHeaderSize
}

// ReadFileHeader parses and validates the 16-byte ZXC file header at the
// start of src.
func ReadFileHeader(src []byte) (FileHeader, error) {
	if len(src) < FileHeaderSize {
		return FileHeader{}, zxcerr.SrcTooSmall
	}
	if bitio.LoadU32(src[0:4]) != MagicWord {
		return FileHeader{}, zxcerr.BadMagic
	}
	if src[4] != FormatVersion {
		return FileHeader{}, zxcerr.BadVersion
	}

	var tmp [FileHeaderSize]byte
	copy(tmp[:], src[:FileHeaderSize])
	tmp[14] = 0
	tmp[15] = 0
	wantCRC := bitio.LoadU16(src[14:16])
	if xhash.CRC16(tmp[:]) != wantCRC {
		return FileHeader{}, zxcerr.BadHeader
	}

	units := src[5]
	blockSize := BlockSize
	if units == 0 {
		// A zero block-size-units byte defaults to 64 units (256 KiB).
		blockSize = 64 * BlockUnit
	} else {
		blockSize = int(units) * BlockUnit
	}

	return FileHeader{
		BlockSize:   blockSize,
		HasChecksum: src[6]&FlagHasChecksum != 0,
	}, nil
}
