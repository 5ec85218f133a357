// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package blockcodec implements ZXC's per-block format selection, the
// RAW/NUM/GLO/GHI encoders and decoders, and the overlapping-copy match
// replay the decoders share.
package blockcodec

import (
	"github.com/hellobertrand/zxc/internal/arena"
	"github.com/hellobertrand/zxc/internal/format"
)

// shortOffsetLimit is the largest offset (after +OffsetBias) that fits the
// GLO 1-byte offset field.
const shortOffsetLimit = 256

// gloLiteralRatio and gloAvgMatchLen gate the GLO/GHI choice: a block
// whose offsets all fit GLO's 1-byte field goes to GLO when it is mostly
// matches (literal ratio below gloLiteralRatio) or its average match is
// short (below gloAvgMatchLen); everything else goes to GHI.
const (
	gloLiteralRatio = 0.20
	gloAvgMatchLen  = 16.0
)

// EncodeBlock picks a block encoding for block and returns the chosen
// block type plus its encoded payload (not including the block header or
// checksum, which the caller adds). The payload may alias a's scratch
// buffers; callers must finish writing it out before returning a to its
// pool.
func EncodeBlock(a *arena.Arena, block []byte, level int) (format.BlockType, []byte) {
	if probeNum(block) {
		payload := encodeNum(a.Out[:0], block)
		if len(payload) < len(block) {
			return format.BlockNum, payload
		}
	}

	// GLO and GHI both store a 16-bit offset field at most, so the window
	// never needs to exceed that even though BlockSize is larger.
	window := format.BlockSize
	if window > 1<<16 {
		window = 1 << 16
	}
	seqs, literals := a.Finder.FindInto(block, level, window, a.Sequences[:0], a.Literals[:0])
	a.Sequences, a.Literals = seqs, literals
	maxOffset := 0
	totalMatchLen := 0
	for _, s := range seqs {
		if s.Offset > maxOffset {
			maxOffset = s.Offset
		}
		totalMatchLen += s.Len
	}
	shortOffsetOK := maxOffset <= shortOffsetLimit

	var avgMatchLen float64
	if len(seqs) > 0 {
		avgMatchLen = float64(totalMatchLen) / float64(len(seqs))
	}
	literalRatio := 1.0
	if len(block) > 0 {
		literalRatio = float64(len(literals)) / float64(len(block))
	}

	useGLO := shortOffsetOK && (literalRatio < gloLiteralRatio || avgMatchLen < gloAvgMatchLen)

	var payload []byte
	var blockType format.BlockType
	if useGLO {
		rle := shouldRLELiterals(literals)
		payload = encodeGLO(a, seqs, literals, shortOffsetOK, rle)
		blockType = format.BlockGlo
	} else {
		payload = encodeGHI(a, seqs, literals)
		blockType = format.BlockGhi
	}

	if len(payload) >= len(block) {
		return format.BlockRaw, append(a.Out[:0], block...)
	}
	return blockType, payload
}

// shouldRLELiterals estimates whether RLE beats storing literals raw by
// sampling for runs of 4+ repeated bytes.
func shouldRLELiterals(literals []byte) bool {
	if len(literals) < 16 {
		return false
	}
	runBytes := 0
	i := 0
	for i < len(literals) {
		j := i + 1
		for j < len(literals) && literals[j] == literals[i] && j-i < 131 {
			j++
		}
		if j-i >= 4 {
			runBytes += j - i
		}
		i = j
	}
	return runBytes*2 > len(literals)
}
