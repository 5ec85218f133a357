// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package zxc implements a general-purpose lossless byte-stream compressor
// in the LZ77 family: fast encoding, faster decoding, and a self-describing,
// integrity-checkable archive format. This package is the one-shot buffer
// API; see the stream package for the multi-threaded streaming driver.
package zxc

import (
	"github.com/hellobertrand/zxc/internal/arena"
	"github.com/hellobertrand/zxc/internal/bitio"
	"github.com/hellobertrand/zxc/internal/blockcodec"
	"github.com/hellobertrand/zxc/internal/format"
	"github.com/hellobertrand/zxc/internal/xhash"
	"github.com/hellobertrand/zxc/internal/zxcerr"
)

// Level selects the match-finder's speed/ratio tradeoff.
type Level int

const (
	Fastest  Level = 1
	Fast     Level = 2
	Default  Level = 3
	Balanced Level = 4
	Compact  Level = 5
)

func clampLevel(l Level) Level {
	if l < Fastest {
		return Fastest
	}
	if l > Compact {
		return Compact
	}
	return l
}

const checksumSize = 4

// CompressBound returns an upper bound on the compressed size of an input
// of n bytes, or 0 if the computation would overflow.
func CompressBound(n uint64) uint64 {
	if n == 0 {
		return format.FileHeaderSize + format.BlockHeaderSize + format.FooterSize
	}
	blocks := (n + format.BlockSize - 1) / format.BlockSize
	perBlockOverhead := uint64(format.BlockHeaderSize + checksumSize + 64)

	total := uint64(format.FileHeaderSize)
	add := blocks * perBlockOverhead
	if add/perBlockOverhead != blocks { // overflow
		return 0
	}
	total += add
	if total < add {
		return 0
	}
	total += n
	if total < n {
		return 0
	}
	total += format.BlockHeaderSize + format.FooterSize
	return total
}

// GetDecompressedSize returns the uncompressed size recorded in src's
// footer, or 0 if src is too short or its magic doesn't match.
func GetDecompressedSize(src []byte) uint64 {
	if len(src) < format.FileHeaderSize+format.FooterSize {
		return 0
	}
	if bitio.LoadU32(src[0:4]) != format.MagicWord {
		return 0
	}
	return bitio.LoadU64(src[len(src)-format.FooterSize : len(src)-format.FooterSize+8])
}

// Compress encodes src at the given level, writing the ZXC archive to dst
// and returning the number of bytes written. checksum enables per-block and
// global content hashes.
func Compress(dst []byte, src []byte, level Level, checksum bool) (int, error) {
	level = clampLevel(level)
	need := format.FileHeaderSize + format.BlockHeaderSize + format.FooterSize
	if len(dst) < format.FileHeaderSize {
		return 0, wrapErr(zxcerr.DstTooSmall)
	}
	if len(dst) < need {
		return 0, wrapErr(zxcerr.DstTooSmall)
	}

	pos := format.WriteFileHeader(dst, checksum)

	a := arena.Get()
	defer arena.Put(a)

	var globalHash uint32
	for off := 0; off < len(src); off += format.BlockSize {
		end := off + format.BlockSize
		if end > len(src) {
			end = len(src)
		}
		block := src[off:end]

		blockType, payload := blockcodec.EncodeBlock(a, block, int(level))

		blockTotal := format.BlockHeaderSize + len(payload)
		if checksum {
			blockTotal += checksumSize
		}
		if pos+blockTotal+format.BlockHeaderSize+format.FooterSize > len(dst) {
			return 0, wrapErr(zxcerr.DstTooSmall)
		}

		format.WriteBlockHeader(dst[pos:pos+format.BlockHeaderSize], format.BlockHeader{
			Type:     blockType,
			CompSize: uint32(len(payload)),
		})
		pos += format.BlockHeaderSize
		n := copy(dst[pos:], payload)
		pos += n

		if checksum {
			h := xhash.Content32(payload)
			bitio.StoreU32(dst[pos:pos+4], h)
			pos += 4
			globalHash = xhash.FoldGlobal(globalHash, h)
		}
	}

	if pos+format.BlockHeaderSize+format.FooterSize > len(dst) {
		return 0, wrapErr(zxcerr.DstTooSmall)
	}
	format.WriteBlockHeader(dst[pos:pos+format.BlockHeaderSize], format.BlockHeader{Type: format.BlockEOF, CompSize: 0})
	pos += format.BlockHeaderSize

	hash := uint32(0)
	if checksum {
		hash = globalHash
	}
	format.WriteFooter(dst[pos:pos+format.FooterSize], format.Footer{
		TotalSize:  uint64(len(src)),
		GlobalHash: hash,
	})
	pos += format.FooterSize

	return pos, nil
}

// Decompress parses and validates a ZXC archive in src, writing decoded
// bytes to dst and returning the number written.
func Decompress(dst []byte, src []byte) (int, error) {
	hdr, err := format.ReadFileHeader(src)
	if err != nil {
		return 0, wrapErr(err)
	}
	pos := format.FileHeaderSize

	var globalHash uint32
	written := 0
	for {
		bh, err := format.ReadBlockHeader(src[pos:])
		if err != nil {
			return 0, wrapErr(err)
		}
		pos += format.BlockHeaderSize

		if bh.Type == format.BlockEOF {
			f, err := format.ReadFooter(src[pos:])
			if err != nil {
				return 0, wrapErr(err)
			}
			pos += format.FooterSize
			if f.TotalSize != uint64(written) {
				return 0, wrapErr(zxcerr.CorruptData)
			}
			if hdr.HasChecksum && f.GlobalHash != globalHash {
				return 0, wrapErr(zxcerr.BadChecksum)
			}
			return written, nil
		}

		if pos+int(bh.CompSize) > len(src) {
			return 0, wrapErr(zxcerr.SrcTooSmall)
		}
		payload := src[pos : pos+int(bh.CompSize)]
		pos += int(bh.CompSize)

		if hdr.HasChecksum {
			if pos+checksumSize > len(src) {
				return 0, wrapErr(zxcerr.SrcTooSmall)
			}
			want := bitio.LoadU32(src[pos : pos+4])
			pos += checksumSize
			got := xhash.Content32(payload)
			if got != want {
				return 0, wrapErr(zxcerr.BadChecksum)
			}
			globalHash = xhash.FoldGlobal(globalHash, got)
		}

		if written+format.BlockSize+format.Pad > len(dst) {
			return 0, wrapErr(zxcerr.DstTooSmall)
		}
		n, err := blockcodec.DecodeBlock(bh.Type, payload, dst[written:])
		if err != nil {
			return 0, wrapErr(err)
		}
		written += n
	}
}
