// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package blockcodec

import (
	"github.com/hellobertrand/zxc/internal/format"
	"github.com/hellobertrand/zxc/internal/zxcerr"
)

// DecodeBlock dispatches payload to the decoder for blockType and writes
// the decoded bytes into dst, returning the count written. dst must be
// large enough for the worst case (format.BlockSize + format.Pad).
func DecodeBlock(blockType format.BlockType, payload []byte, dst []byte) (int, error) {
	switch blockType {
	case format.BlockRaw:
		if len(payload) > len(dst) {
			return 0, zxcerr.DstTooSmall
		}
		return copy(dst, payload), nil
	case format.BlockNum:
		return decodeNum(payload, dst)
	case format.BlockGlo:
		return decodeGLO(payload, dst)
	case format.BlockGhi:
		return decodeGHI(payload, dst)
	default:
		return 0, zxcerr.BadBlockType
	}
}
