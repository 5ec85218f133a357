// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package blockcodec

import (
	"github.com/hellobertrand/zxc/internal/arena"
	"github.com/hellobertrand/zxc/internal/bitio"
	"github.com/hellobertrand/zxc/internal/format"
	"github.com/hellobertrand/zxc/internal/lz77"
	"github.com/hellobertrand/zxc/internal/zxcerr"
)

const (
	ghiLLEscape = 0xFF
	ghiMLEscape = 0xFF
)

// encodeGHI builds a GHI payload from seqs/literals: a
// 16-byte header, three section descriptors, then the literal stream (raw,
// no RLE), the 4-byte-per-sequence word stream, and the extras stream. The
// word/extras scratch streams are built into a's pooled buffers (Tokens
// doubles as the word stream here; GHI has no separate offset section).
func encodeGHI(a *arena.Arena, seqs []lz77.Sequence, literals []byte) []byte {
	words := a.Tokens[:0]
	extras := a.Extras[:0]

	for _, s := range seqs {
		llByte := s.LitLen
		if llByte > ghiLLEscape-1 {
			llByte = ghiLLEscape
		}
		mlVal := s.Len - format.MinMatchLen
		mlByte := mlVal
		if mlByte > ghiMLEscape-1 {
			mlByte = ghiMLEscape
		}
		var buf [4]byte
		buf[0] = byte(llByte)
		buf[1] = byte(mlByte)
		bitio.StoreU16(buf[2:4], uint16(s.Offset-format.OffsetBias))
		words = append(words, buf[:]...)
	}
	for _, s := range seqs {
		if s.LitLen >= ghiLLEscape {
			extras = bitio.WriteVarint(extras, uint32(s.LitLen-ghiLLEscape))
		}
	}
	for _, s := range seqs {
		mlVal := s.Len - format.MinMatchLen
		if mlVal >= ghiMLEscape {
			extras = bitio.WriteVarint(extras, uint32(mlVal-ghiMLEscape))
		}
	}
	a.Tokens, a.Extras = words, extras

	out := make([]byte, format.GhiHeaderSize+3*format.SectionDescSize)
	format.WriteGhiHeader(out, format.GhiHeader{
		NSequences: uint32(len(seqs)),
		NLiterals: uint32(len(literals)),
	})
	descAt := format.GhiHeaderSize
	writeDesc := func(n int) {
		format.WriteSectionDesc(out[descAt:descAt+format.SectionDescSize], format.SectionDesc{
			OnDiskSize: uint32(n),
			DecodedSize: uint32(n),
		})
		descAt += format.SectionDescSize
	}
	writeDesc(len(literals))
	writeDesc(len(words))
	writeDesc(len(extras))

	out = append(out, literals...)
	out = append(out, words...)
	out = append(out, extras...)
	return out
}

// decodeGHI reverses encodeGHI, writing the decoded block to dst and
// returning the number of bytes written.
func decodeGHI(payload []byte, dst []byte) (int, error) {
	hdr, err := format.ReadGhiHeader(payload)
	if err != nil {
		return 0, err
	}
	pos := format.GhiHeaderSize
	descs := make([]format.SectionDesc, 3)
	for i := range descs {
		if pos+format.SectionDescSize > len(payload) {
			return 0, zxcerr.SrcTooSmall
		}
		descs[i] = format.ReadSectionDesc(payload[pos:])
		pos += format.SectionDescSize
	}

	litBuf, pos, err := sliceSection(payload, pos, int(descs[0].OnDiskSize))
	if err != nil {
		return 0, err
	}
	words, pos, err := sliceSection(payload, pos, int(descs[1].OnDiskSize))
	if err != nil {
		return 0, err
	}
	extras, _, err := sliceSection(payload, pos, int(descs[2].OnDiskSize))
	if err != nil {
		return 0, err
	}

	nseq := int(hdr.NSequences)
	if len(words) < nseq*4 {
		return 0, zxcerr.CorruptData
	}
	if len(litBuf) != int(hdr.NLiterals) {
		return 0, zxcerr.CorruptData
	}

	ll := make([]int, nseq)
	ml := make([]int, nseq)
	off := make([]int, nseq)
	for i := 0; i < nseq; i++ {
		w := words[i*4 : i*4+4]
		ll[i] = int(w[0])
		ml[i] = int(w[1])
		off[i] = int(bitio.LoadU16(w[2:4])) + format.OffsetBias
	}

	extraPos := 0
	for i := 0; i < nseq; i++ {
		if ll[i] == ghiLLEscape {
			v, n, ok := bitio.ReadVarint(extras, extraPos)
			if !ok {
				return 0, zxcerr.CorruptData
			}
			ll[i] = ghiLLEscape + int(v)
			extraPos += n
		}
	}
	for i := 0; i < nseq; i++ {
		if ml[i] == ghiMLEscape {
			v, n, ok := bitio.ReadVarint(extras, extraPos)
			if !ok {
				return 0, zxcerr.CorruptData
			}
			ml[i] = ghiMLEscape + int(v)
			extraPos += n
		}
	}
	for i := range ml {
		ml[i] += format.MinMatchLen
	}

	written := 0
	litCursor := 0
	for i := 0; i < nseq; i++ {
		if litCursor+ll[i] > len(litBuf) || written+ll[i] > len(dst) {
			return 0, zxcerr.CorruptData
		}
		copy(dst[written:written+ll[i]], litBuf[litCursor:litCursor+ll[i]])
		written += ll[i]
		litCursor += ll[i]

		if off[i] <= 0 || off[i] > written || written+ml[i] > len(dst) {
			return 0, zxcerr.BadOffset
		}
		copyMatch(dst, written, off[i], ml[i])
		written += ml[i]
	}

	tail := litBuf[litCursor:]
	if written+len(tail) > len(dst) {
		return 0, zxcerr.CorruptData
	}
	copy(dst[written:], tail)
	written += len(tail)

	return written, nil
}
