// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetReturnsZeroedScratch(t *testing.T) {
	a := Get()
	require.Len(t, a.Literals, 0)
	require.Len(t, a.Sequences, 0)
	require.Len(t, a.Tokens, 0)
	require.Len(t, a.Offsets, 0)
	require.Len(t, a.Extras, 0)
	require.Len(t, a.Out, 0)
	require.NotNil(t, a.Finder)
	Put(a)
}

func TestArenaReusedAfterPut(t *testing.T) {
	a := Get()
	a.Literals = append(a.Literals, 1, 2, 3)
	Put(a)

	b := Get()
	require.Len(t, b.Literals, 0)
	Put(b)
}
