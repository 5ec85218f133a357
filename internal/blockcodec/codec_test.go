// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package blockcodec

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/hellobertrand/zxc/internal/arena"
	"github.com/hellobertrand/zxc/internal/format"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, block []byte, level int) (format.BlockType, int) {
	t.Helper()
	a := arena.Get()
	defer arena.Put(a)

	blockType, payload := EncodeBlock(a, block, level)

	dst := make([]byte, format.BlockSize+format.Pad)
	n, err := DecodeBlock(blockType, payload, dst)
	require.NoError(t, err)
	require.Equal(t, block, dst[:n])
	return blockType, len(payload)
}

func TestRawPathOnRandomData(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	block := make([]byte, format.BlockSize)
	rng.Read(block)

	blockType, size := roundTrip(t, block, 3)
	require.Equal(t, format.BlockRaw, blockType)
	require.Greater(t, size, len(block)-1)
}

func TestGLOPathOnRepeatedPattern(t *testing.T) {
	pattern := []byte("ABCDE")
	block := bytes.Repeat(pattern, format.BlockSize/len(pattern))

	blockType, size := roundTrip(t, block, 3)
	require.Equal(t, format.BlockGlo, blockType)
	require.Less(t, size, 4*1024)
}

func TestGHIPathOnLongPattern(t *testing.T) {
	pattern := make([]byte, 445)
	rng := rand.New(rand.NewSource(7))
	rng.Read(pattern)
	block := bytes.Repeat(pattern, format.BlockSize/len(pattern)+1)[:format.BlockSize]

	blockType, size := roundTrip(t, block, 5)
	require.Equal(t, format.BlockGhi, blockType)
	require.Less(t, size, 8*1024)
}

func TestNUMPathOnArithmeticProgression(t *testing.T) {
	n := format.BlockSize / 4
	block := make([]byte, format.BlockSize)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(block[i*4:i*4+4], uint32(i*100))
	}

	blockType, size := roundTrip(t, block, 3)
	require.Equal(t, format.BlockNum, blockType)
	require.Less(t, size, 2*1024)
}

func TestBinarySafetyPattern(t *testing.T) {
	pattern := []byte{0x5A, 0x58, 0x43, 0x00, 0x0A, 0x0D, 0x0A, 0x00, 0xFF, 0xFE,
		0x0A, 0x0D, 0x1A, 0x00, 0x0A, 0x0D, 0x00, 0x00, 0x0A, 0x0A}
	block := bytes.Repeat(pattern, format.BlockSize/len(pattern))

	roundTrip(t, block, 3)
}

func TestShortVsLongOffsetSelection(t *testing.T) {
	short := bytes.Repeat([]byte("ABCDE"), (format.BlockSize/2)/5)

	period := make([]byte, 300)
	rand.New(rand.NewSource(1)).Read(period)
	long := bytes.Repeat(period, (format.BlockSize/2)/len(period)+1)
	long = long[:format.BlockSize-len(short)]

	shortType, _ := roundTrip(t, short, 3)
	require.Equal(t, format.BlockGlo, shortType)

	longType, _ := roundTrip(t, long, 3)
	require.NotEqual(t, format.BlockRaw, longType)
}

func TestDecodeRejectsUnknownBlockType(t *testing.T) {
	_, err := DecodeBlock(format.BlockType(0x77), nil, make([]byte, 16))
	require.Error(t, err)
}

func TestDecodeGLORejectsTruncatedPayload(t *testing.T) {
	a := arena.Get()
	defer arena.Put(a)
	block := bytes.Repeat([]byte("ABCDE"), 4096)
	blockType, payload := EncodeBlock(a, block, 3)
	require.Equal(t, format.BlockGlo, blockType)

	_, err := DecodeBlock(blockType, payload[:len(payload)-1], make([]byte, format.BlockSize+format.Pad))
	require.Error(t, err)
}
