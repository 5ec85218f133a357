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
	gloLLEscape = 0x0F
	gloMLEscape = 0x0F
)

// encodeGLO builds a GLO payload from seqs/literals: a
// 16-byte header, four section descriptors, then the literal, token,
// offset, and extras streams in that order. shortOffset selects the
// 1-byte-offset encoding (enc_off=1); callers are responsible for having
// verified every sequence's offset fits that width beforehand. The
// token/offset/extras scratch streams are built into a's pooled buffers to
// avoid a fresh allocation per block.
func encodeGLO(a *arena.Arena, seqs []lz77.Sequence, literals []byte, shortOffset bool, rleLiterals bool) []byte {
	tokens := a.Tokens[:0]
	offsets := a.Offsets[:0]
	extras := a.Extras[:0]

	for _, s := range seqs {
		llNib := s.LitLen
		if llNib > gloLLEscape {
			llNib = gloLLEscape
		}
		mlVal := s.Len - format.MinMatchLen
		mlNib := mlVal
		if mlNib > gloMLEscape-1 {
			mlNib = gloMLEscape
		}
		tokens = append(tokens, byte(llNib<<4)|byte(mlNib))

		storedOff := s.Offset - format.OffsetBias
		if shortOffset {
			offsets = append(offsets, byte(storedOff))
		} else {
			var buf [2]byte
			bitio.StoreU16(buf[:], uint16(storedOff))
			offsets = append(offsets, buf[:]...)
		}
	}
	for _, s := range seqs {
		if s.LitLen >= gloLLEscape {
			extras = bitio.WriteVarint(extras, uint32(s.LitLen-gloLLEscape))
		}
	}
	for _, s := range seqs {
		mlVal := s.Len - format.MinMatchLen
		if mlVal >= gloMLEscape {
			extras = bitio.WriteVarint(extras, uint32(mlVal-gloMLEscape))
		}
	}
	a.Tokens, a.Offsets, a.Extras = tokens, offsets, extras

	litStream := literals
	encLit := byte(0)
	if rleLiterals {
		litStream = rleEncodeLiterals(literals)
		encLit = format.GloEncLit
	}

	encFlags := encLit
	if shortOffset {
		encFlags |= format.GloEncOff
	}

	out := make([]byte, format.GloHeaderSize+4*format.SectionDescSize)
	format.WriteGloHeader(out, format.GloHeader{
		NSequences: uint32(len(seqs)),
		NLiterals: uint32(len(literals)),
		EncFlags: encFlags,
	})
	descAt := format.GloHeaderSize
	writeDesc := func(onDisk, decoded int) {
		format.WriteSectionDesc(out[descAt:descAt+format.SectionDescSize], format.SectionDesc{
			OnDiskSize: uint32(onDisk),
			DecodedSize: uint32(decoded),
		})
		descAt += format.SectionDescSize
	}
	writeDesc(len(litStream), len(literals))
	writeDesc(len(tokens), len(tokens))
	writeDesc(len(offsets), len(offsets))
	writeDesc(len(extras), len(extras))

	out = append(out, litStream...)
	out = append(out, tokens...)
	out = append(out, offsets...)
	out = append(out, extras...)
	return out
}

// decodeGLO reverses encodeGLO, writing the decoded block to dst and
// returning the number of bytes written.
func decodeGLO(payload []byte, dst []byte) (int, error) {
	hdr, err := format.ReadGloHeader(payload)
	if err != nil {
		return 0, err
	}
	pos := format.GloHeaderSize
	descs := make([]format.SectionDesc, 4)
	for i := range descs {
		if pos+format.SectionDescSize > len(payload) {
			return 0, zxcerr.SrcTooSmall
		}
		descs[i] = format.ReadSectionDesc(payload[pos:])
		pos += format.SectionDescSize
	}

	litStream, pos, err := sliceSection(payload, pos, int(descs[0].OnDiskSize))
	if err != nil {
		return 0, err
	}
	tokens, pos, err := sliceSection(payload, pos, int(descs[1].OnDiskSize))
	if err != nil {
		return 0, err
	}
	offsets, pos, err := sliceSection(payload, pos, int(descs[2].OnDiskSize))
	if err != nil {
		return 0, err
	}
	extras, _, err := sliceSection(payload, pos, int(descs[3].OnDiskSize))
	if err != nil {
		return 0, err
	}

	nseq := int(hdr.NSequences)
	shortOffset := hdr.EncFlags&format.GloEncOff != 0
	offWidth := 2
	if shortOffset {
		offWidth = 1
	}
	if len(offsets) < nseq*offWidth || len(tokens) < nseq {
		return 0, zxcerr.CorruptData
	}

	ll := make([]int, nseq)
	ml := make([]int, nseq)
	for i := 0; i < nseq; i++ {
		ll[i] = int(tokens[i] >> 4)
		ml[i] = int(tokens[i] & 0x0F)
	}

	extraPos := 0
	for i := 0; i < nseq; i++ {
		if ll[i] == gloLLEscape {
			v, n, ok := bitio.ReadVarint(extras, extraPos)
			if !ok {
				return 0, zxcerr.CorruptData
			}
			ll[i] = gloLLEscape + int(v)
			extraPos += n
		}
	}
	for i := 0; i < nseq; i++ {
		if ml[i] == gloMLEscape {
			v, n, ok := bitio.ReadVarint(extras, extraPos)
			if !ok {
				return 0, zxcerr.CorruptData
			}
			ml[i] = gloMLEscape + int(v)
			extraPos += n
		}
	}
	for i := range ml {
		ml[i] += format.MinMatchLen
	}

	var litBuf []byte
	if hdr.EncFlags&format.GloEncLit != 0 {
		litBuf, err = rleDecodeLiterals(litStream, int(descs[0].DecodedSize))
		if err != nil {
			return 0, err
		}
	} else {
		litBuf = litStream
	}
	if len(litBuf) != int(hdr.NLiterals) {
		return 0, zxcerr.CorruptData
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

		var storedOff int
		if shortOffset {
			storedOff = int(offsets[i])
		} else {
			storedOff = int(bitio.LoadU16(offsets[i*2 : i*2+2]))
		}
		offset := storedOff + format.OffsetBias
		if offset <= 0 || offset > written || written+ml[i] > len(dst) {
			return 0, zxcerr.BadOffset
		}
		copyMatch(dst, written, offset, ml[i])
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

func sliceSection(payload []byte, pos, n int) ([]byte, int, error) {
	if pos+n > len(payload) {
		return nil, 0, zxcerr.SrcTooSmall
	}
	return payload[pos : pos+n], pos + n, nil
}
