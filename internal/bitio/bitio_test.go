// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package bitio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint32{
		0, 1, 2, 63, 64, 127, 128, 1000, 1<<14 - 1, 1 << 14,
		1<<21 - 1, 1 << 21, 1<<28 - 1, 1 << 28, 1<<32 - 1,
	}
	for _, v := range values {
		buf := WriteVarint(nil, v)
		require.Equal(t, VarintSize(v), len(buf))

		got, n, ok := ReadVarint(buf, 0)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
		require.Equal(t, v, got)
	}
}

func TestVarintKnownEncodings(t *testing.T) {
	// WriteVarint(1000) spans two bytes: 1000 = 0b1111101000, low 6 bits
	// (0b101000=0x28) go in byte 0 under the "10" prefix, the remaining
	// high bits (0b1111=0xF) go in byte 1.
	buf := WriteVarint(nil, 1000)
	require.Equal(t, []byte{0x80 | 0x28, 0x0F}, buf)

	v, n, ok := ReadVarint(buf, 0)
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, uint32(1000), v)
}

func TestVarintReadAtOffset(t *testing.T) {
	buf := WriteVarint([]byte{0xFF, 0xFF}, 1000)
	v, n, ok := ReadVarint(buf, 2)
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, uint32(1000), v)
}

func TestVarintRejectsOutOfRange(t *testing.T) {
	_, _, ok := ReadVarint(nil, 0)
	require.False(t, ok)

	_, _, ok = ReadVarint([]byte{0x80 | 0x28}, 0) // 2-byte encoding truncated to 1 byte
	require.False(t, ok)
}

func TestZigZagRoundTrip(t *testing.T) {
	for _, s := range []int32{0, 1, -1, 1000, -1000, 1 << 20, -(1 << 20)} {
		require.Equal(t, s, ZigZagDecode(ZigZagEncode(s)))
	}
}
