// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package simd implements the runtime dispatch contract: probe CPU features
// once, select the fastest available variant of the performance-sensitive
// inner loops, and publish the choice behind an atomic so every later call
// pays only an acquire-load. Go has no portable way to hand-write per-ISA
// assembly the way the source's AVX-512/AVX2/NEON variants do, so the
// "variant" selected here is a feature-gated choice of an algorithm
// constant (the copy chunk width) rather than a different machine-code path;
// golang.org/x/sys/cpu supplies the feature probe, mirroring its use for
// hash/checksum dispatch elsewhere in the ecosystem.
package simd

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Variant names the selected implementation tier. All variants are
// required to produce byte-identical output; only throughput differs.
type Variant int

const (
	VariantScalar Variant = iota
	VariantWide256
	VariantWide512
)

func (v Variant) String() string {
	switch v {
	case VariantWide512:
		return "wide512"
	case VariantWide256:
		return "wide256"
	default:
		return "scalar"
	}
}

// CopyWidth is the byte width CopyMatch-style wild copies should move per
// iteration for the selected variant.
func (v Variant) CopyWidth() int {
	switch v {
	case VariantWide512:
		return 64
	case VariantWide256:
		return 32
	default:
		return 16
	}
}

var selected atomic.Int32
var resolved atomic.Bool

func probe() Variant {
	switch {
	case cpu.X86.HasAVX512F:
		return VariantWide512
	case cpu.X86.HasAVX2:
		return VariantWide256
	case cpu.ARM64.HasASIMD:
		return VariantWide256
	default:
		return VariantScalar
	}
}

// Selected returns the process-wide variant, resolving it (release-
// publishing the choice) on first call. Every call after the first is a
// single acquire-load.
func Selected() Variant {
	if resolved.Load() {
		return Variant(selected.Load())
	}
	v := probe()
	selected.Store(int32(v))
	resolved.Store(true)
	return v
}
