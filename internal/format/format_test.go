// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"testing"

	"github.com/hellobertrand/zxc/internal/zxcerr"
	"github.com/stretchr/testify/require"
)

func TestFileHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		hasChecksum bool
	}{
		{"checksum off", false},
		{"checksum on", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, FileHeaderSize)
			n := WriteFileHeader(buf, tt.hasChecksum)
			require.Equal(t, FileHeaderSize, n)

			h, err := ReadFileHeader(buf)
			require.NoError(t, err)
			require.Equal(t, tt.hasChecksum, h.HasChecksum)
			require.Equal(t, BlockSize, h.BlockSize)
		})
	}
}

func TestFileHeaderRejectsCorruption(t *testing.T) {
	buf := make([]byte, FileHeaderSize)
	WriteFileHeader(buf, true)

	corrupt := append([]byte(nil), buf...)
	corrupt[0] ^= 0xFF
	_, err := ReadFileHeader(corrupt)
	require.Equal(t, zxcerr.BadMagic, err)
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, BlockHeaderSize)
	WriteBlockHeader(buf, BlockHeader{Type: BlockGlo, CompSize: 12345})

	h, err := ReadBlockHeader(buf)
	require.NoError(t, err)
	require.Equal(t, BlockGlo, h.Type)
	require.Equal(t, uint32(12345), h.CompSize)
}

func TestBlockHeaderRejectsCRCCorruption(t *testing.T) {
	buf := make([]byte, BlockHeaderSize)
	WriteBlockHeader(buf, BlockHeader{Type: BlockRaw, CompSize: 1})
	buf[3] ^= 0x01

	_, err := ReadBlockHeader(buf)
	require.Error(t, err)
}

func TestFooterRoundTrip(t *testing.T) {
	buf := make([]byte, FooterSize)
	WriteFooter(buf, Footer{TotalSize: 1 << 40, GlobalHash: 0xDEADBEEF})

	f, err := ReadFooter(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), f.TotalSize)
	require.Equal(t, uint32(0xDEADBEEF), f.GlobalHash)
}
