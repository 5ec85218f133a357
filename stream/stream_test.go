// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package stream

import (
	"bytes"
	"testing"

	zxc "github.com/hellobertrand/zxc"
	"github.com/stretchr/testify/require"
)

func TestStreamRoundTripVaryingWorkers(t *testing.T) {
	src := bytes.Repeat([]byte("ABCDE"), (4<<20)/5)

	for _, w := range []int{2, 4, 8} {
		t.Run("", func(t *testing.T) {
			var compressed bytes.Buffer
			n, err := StreamCompress(bytes.NewReader(src), &compressed, w, zxc.Default, true)
			require.NoError(t, err)
			require.EqualValues(t, compressed.Len(), n)

			var decompressed bytes.Buffer
			dn, err := StreamDecompress(bytes.NewReader(compressed.Bytes()), &decompressed, w, true)
			require.NoError(t, err)
			require.EqualValues(t, len(src), dn)
			require.True(t, bytes.Equal(src, decompressed.Bytes()))
		})
	}
}

func TestStreamGetDecompressedSize(t *testing.T) {
	src := bytes.Repeat([]byte("hello world "), 100000)
	var compressed bytes.Buffer
	_, err := StreamCompress(bytes.NewReader(src), &compressed, 4, zxc.Default, false)
	require.NoError(t, err)

	r := bytes.NewReader(compressed.Bytes())
	_, _ = r.Seek(5, 0) // arbitrary starting position, must be restored
	size, err := StreamGetDecompressedSize(r)
	require.NoError(t, err)
	require.EqualValues(t, len(src), size)

	pos, _ := r.Seek(0, 1)
	require.EqualValues(t, 5, pos)
}

func TestStreamProgressCallback(t *testing.T) {
	src := bytes.Repeat([]byte("ABCDE"), (1<<20)/5)
	var compressed bytes.Buffer
	var calls int
	var lastProcessed int64
	_, err := StreamCompressEx(bytes.NewReader(src), &compressed, 2, zxc.Default, false, func(processed, total int64) {
		calls++
		lastProcessed = processed
	})
	require.NoError(t, err)
	require.Greater(t, calls, 0)
	require.Greater(t, lastProcessed, int64(0))
	require.EqualValues(t, len(src), lastProcessed)
}

func TestStreamDecompressRejectsChecksumMismatch(t *testing.T) {
	src := bytes.Repeat([]byte("ABCDE"), 10000)
	var compressed bytes.Buffer
	_, err := StreamCompress(bytes.NewReader(src), &compressed, 2, zxc.Default, true)
	require.NoError(t, err)

	buf := compressed.Bytes()
	buf[len(buf)-1] ^= 0xFF

	var decompressed bytes.Buffer
	_, err = StreamDecompress(bytes.NewReader(buf), &decompressed, 2, true)
	require.Error(t, err)
}
