// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package blockcodec

import "github.com/hellobertrand/zxc/internal/simd"

// copyMatch replays one LZ77 match into dst[pos:pos+length], sourcing bytes
// from dst[pos-offset:]. When offset < length the source and destination
// ranges overlap, so the copy must proceed as a repeating pattern rather
// than a single bulk copy. Go's bounds-checked slices stand in for the
// source's PAD-backed SIMD wild copies: correctness is identical, the
// performance technique is approximated by moving simd.Selected().CopyWidth
// bytes per iteration whenever offset is wide enough for that chunk size to
// stay clear of the not-yet-written destination, rather than by reproducing
// unsafe pointer arithmetic.
func copyMatch(dst []byte, pos, offset, length int) {
	src := pos - offset
	if offset >= length {
		copy(dst[pos:pos+length], dst[src:src+length])
		return
	}
	if offset == 1 {
		b := dst[src]
		end := pos + length
		for i := pos; i < end; i++ {
			dst[i] = b
		}
		return
	}

	width := simd.Selected().CopyWidth()
	if offset >= width {
		// Each width-byte chunk's source range lies entirely within bytes
		// already finalized (either original input or an earlier chunk of
		// this same loop), since src+i+width <= src+i+offset == pos+i.
		i := 0
		for i+width <= length {
			copy(dst[pos+i:pos+i+width], dst[src+i:src+i+width])
			i += width
		}
		for ; i < length; i++ {
			dst[pos+i] = dst[src+i]
		}
		return
	}

	for i := 0; i < length; i++ {
		dst[pos+i] = dst[src+i]
	}
}
