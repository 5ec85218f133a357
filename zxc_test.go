// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package zxc

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/hellobertrand/zxc/internal/format"
	"github.com/stretchr/testify/require"
)

func compressDecompress(t *testing.T, src []byte, level Level, checksum bool) []byte {
	t.Helper()
	dst := make([]byte, CompressBound(uint64(len(src))))
	n, err := Compress(dst, src, level, checksum)
	require.NoError(t, err)
	compressed := dst[:n]

	require.Equal(t, uint64(len(src)), GetDecompressedSize(compressed))

	out := make([]byte, len(src)+format.Pad)
	dn, err := Decompress(out, compressed)
	require.NoError(t, err)
	require.Equal(t, src, out[:dn])
	return compressed
}

func TestRoundTripRawRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := make([]byte, format.BlockSize)
	rng.Read(src)
	for _, c := range []bool{false, true} {
		compressed := compressDecompress(t, src, Default, c)
		require.Greater(t, len(compressed), len(src)-1)
	}
}

func TestRoundTripGLO(t *testing.T) {
	src := bytes.Repeat([]byte("ABCDE"), format.BlockSize/5)
	compressed := compressDecompress(t, src, Default, true)
	require.Less(t, len(compressed), 4*1024)
}

func TestRoundTripGHI(t *testing.T) {
	pattern := make([]byte, 445)
	rand.New(rand.NewSource(9)).Read(pattern)
	src := bytes.Repeat(pattern, format.BlockSize/len(pattern)+1)[:format.BlockSize]
	compressed := compressDecompress(t, src, Compact, false)
	require.Less(t, len(compressed), 8*1024)
}

func TestRoundTripNUM(t *testing.T) {
	n := format.BlockSize / 4
	src := make([]byte, format.BlockSize)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(src[i*4:i*4+4], uint32(i*100))
	}
	compressed := compressDecompress(t, src, Default, false)
	require.Less(t, len(compressed), 2*1024)
}

func TestRoundTripBinarySafety(t *testing.T) {
	pattern := []byte{0x5A, 0x58, 0x43, 0x00, 0x0A, 0x0D, 0x0A, 0x00, 0xFF, 0xFE,
		0x0A, 0x0D, 0x1A, 0x00, 0x0A, 0x0D, 0x00, 0x00, 0x0A, 0x0A}
	src := bytes.Repeat(pattern, format.BlockSize/len(pattern))
	compressDecompress(t, src, Default, false)
	compressDecompress(t, src, Default, true)
}

func TestRoundTripMultiBlock(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := make([]byte, format.BlockSize*3+1234)
	rng.Read(src)
	compressDecompress(t, src, Fast, true)
}

func TestCompressBoundMonotonic(t *testing.T) {
	var prev uint64
	for _, n := range []uint64{0, 1, 100, format.BlockSize, format.BlockSize * 10} {
		b := CompressBound(n)
		require.GreaterOrEqual(t, b, prev)
		prev = b
	}
}

func TestDecompressRejectsTruncatedFooter(t *testing.T) {
	src := bytes.Repeat([]byte("ABCDE"), 1000)
	compressed := compressDecompress(t, src, Default, true)

	out := make([]byte, len(src)+format.Pad)
	_, err := Decompress(out, compressed[:len(compressed)-1])
	require.Error(t, err)
}

func TestDecompressRejectsGlobalHashCorruption(t *testing.T) {
	src := bytes.Repeat([]byte("ABCDE"), 1000)
	dst := make([]byte, CompressBound(uint64(len(src))))
	n, err := Compress(dst, src, Default, true)
	require.NoError(t, err)
	compressed := dst[:n]
	compressed[len(compressed)-1] ^= 0xFF

	out := make([]byte, len(src)+format.Pad)
	_, err = Decompress(out, compressed)
	require.Error(t, err)
}

func TestDecompressRejectsCorruptBlockType(t *testing.T) {
	src := bytes.Repeat([]byte("ABCDE"), 1000)
	dst := make([]byte, CompressBound(uint64(len(src))))
	n, err := Compress(dst, src, Default, false)
	require.NoError(t, err)
	compressed := dst[:n]
	compressed[format.FileHeaderSize] = 0x77 // corrupt the first block's type byte

	out := make([]byte, len(src)+format.Pad)
	_, err = Decompress(out, compressed)
	require.Error(t, err)
}

func TestCompressRejectsDstTooSmall(t *testing.T) {
	src := make([]byte, format.BlockSize)
	_, err := Compress(make([]byte, 4), src, Default, false)
	require.Error(t, err)

	_, err = Compress(make([]byte, format.FileHeaderSize+2), src, Default, false)
	require.Error(t, err)
}
