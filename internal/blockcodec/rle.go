// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package blockcodec

import "github.com/hellobertrand/zxc/internal/zxcerr"

// rleEncodeLiterals compresses src with the GLO literal-stream token scheme:
// a byte with bit 7 clear starts a non-RLE span of `(low7)+1` raw bytes
// (1..128); bit 7 set starts a run of `(low7)+4` repeats (4..131) of the
// single byte that follows the token.
func rleEncodeLiterals(src []byte) []byte {
	out := make([]byte, 0, len(src)/2+2)
	i := 0
	for i < len(src) {
		runLen := 1
		for i+runLen < len(src) && src[i+runLen] == src[i] && runLen < 131 {
			runLen++
		}
		if runLen >= 4 {
			out = append(out, 0x80|byte(runLen-4), src[i])
			i += runLen
			continue
		}

		spanStart := i
		span := 0
		for i < len(src) && span < 128 {
			// Stop the span one byte early so a run starting here gets its
			// own RLE token instead of being swallowed into the span.
			if span > 0 && i+3 < len(src) && src[i] == src[i+1] && src[i] == src[i+2] && src[i] == src[i+3] {
				break
			}
			i++
			span++
		}
		out = append(out, byte(span-1))
		out = append(out, src[spanStart:spanStart+span]...)
	}
	return out
}

// rleDecodeLiterals expands an rleEncodeLiterals stream into exactly
// declen bytes, returning CorruptData if the stream over- or
// under-produces.
func rleDecodeLiterals(src []byte, declen int) ([]byte, error) {
	out := make([]byte, 0, declen)
	i := 0
	for len(out) < declen {
		if i >= len(src) {
			return nil, zxcerr.CorruptData
		}
		tok := src[i]
		i++
		if tok&0x80 == 0 {
			n := int(tok) + 1
			if i+n > len(src) {
				return nil, zxcerr.CorruptData
			}
			out = append(out, src[i:i+n]...)
			i += n
		} else {
			n := int(tok&0x7F) + 4
			if i >= len(src) {
				return nil, zxcerr.CorruptData
			}
			fill := src[i]
			i++
			for j := 0; j < n; j++ {
				out = append(out, fill)
			}
		}
	}
	if len(out) != declen {
		return nil, zxcerr.CorruptData
	}
	return out, nil
}
