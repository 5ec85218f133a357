// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package lz77

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func replay(src []byte, seqs []Sequence, literals []byte) []byte {
	out := make([]byte, 0, len(src))
	lp := 0
	for _, s := range seqs {
		out = append(out, literals[lp:lp+s.LitLen]...)
		lp += s.LitLen
		start := len(out) - s.Offset
		for i := 0; i < s.Len; i++ {
			out = append(out, out[start+i])
		}
	}
	out = append(out, literals[lp:]...)
	return out
}

func TestFindRoundTripsRepeatedPattern(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)

	for level := 1; level <= 5; level++ {
		f := NewFinder()
		seqs, literals := f.Find(src, level, 0)
		got := replay(src, seqs, literals)
		require.True(t, bytes.Equal(src, got), "level %d round trip mismatch", level)
	}
}

func TestFindRoundTripsScrambledData(t *testing.T) {
	src := make([]byte, 4096)
	for i := range src {
		src[i] = byte(i * 2654435761 >> 24)
	}
	f := NewFinder()
	seqs, literals := f.Find(src, 3, 0)
	got := replay(src, seqs, literals)
	require.True(t, bytes.Equal(src, got))
}

func TestFindRespectsMaxOffset(t *testing.T) {
	src := make([]byte, 0, 2000)
	pattern := []byte("abcdefgh")
	src = append(src, pattern...)
	src = append(src, bytes.Repeat([]byte{0}, 1000)...)
	src = append(src, pattern...)

	f := NewFinder()
	seqs, _ := f.Find(src, 3, 256)
	for _, s := range seqs {
		require.LessOrEqual(t, s.Offset, 256)
	}
}

func TestResetInvalidatesPreviousEpoch(t *testing.T) {
	f := NewFinder()
	src := bytes.Repeat([]byte("aaaaaaaaaaaaaaaaaaaa"), 10)
	_, _ = f.Find(src, 3, 0)
	f.Reset()
	seqs, literals := f.Find(src, 3, 0)
	got := replay(src, seqs, literals)
	require.True(t, bytes.Equal(src, got))
}

func TestParamsForLevelClamps(t *testing.T) {
	require.Equal(t, ParamsForLevel(1), ParamsForLevel(-5))
	require.Equal(t, ParamsForLevel(5), ParamsForLevel(99))
}
