// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package simd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectedIsStableAcrossCalls(t *testing.T) {
	v1 := Selected()
	v2 := Selected()
	require.Equal(t, v1, v2)
}

func TestCopyWidthMatchesVariant(t *testing.T) {
	require.Equal(t, 16, VariantScalar.CopyWidth())
	require.Equal(t, 32, VariantWide256.CopyWidth())
	require.Equal(t, 64, VariantWide512.CopyWidth())
}

func TestVariantStringNames(t *testing.T) {
	require.Equal(t, "scalar", VariantScalar.String())
	require.Equal(t, "wide256", VariantWide256.String())
	require.Equal(t, "wide512", VariantWide512.String())
}
