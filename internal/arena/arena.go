// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package arena provides a reusable set of per-worker scratch buffers for
// block encoding and decoding: a match finder plus the literal, sequence,
// and output byte slices it needs. Pooling these avoids a fresh set of
// large allocations (the match finder alone carries a 2MiB hash table) on
// every block, which matters once the streaming pipeline is running
// several workers in parallel. Grounded on mebo/internal/pool's
// sync.Pool-of-scratch-structs pattern.
package arena

import (
	"sync"

	"github.com/hellobertrand/zxc/internal/format"
	"github.com/hellobertrand/zxc/internal/lz77"
)

// Arena bundles the scratch state needed to encode or decode a single
// block. Every field is reset (not reallocated) between uses so a warm
// Arena costs no garbage-collector pressure on the steady-state path.
type Arena struct {
	Finder *lz77.Finder

	Literals  []byte
	Sequences []lz77.Sequence

	Tokens  []byte // GLO's 1-byte ll/ml tokens, or GHI's 4-byte words
	Offsets []byte // GLO's offset stream; unused by GHI (offsets live in Tokens' words)
	Extras  []byte

	Out []byte
}

var pool = sync.Pool{
	New: func() any {
		return &Arena{
			Finder:    lz77.NewFinder(),
			Literals:  make([]byte, 0, format.BlockSize),
			Sequences: make([]lz77.Sequence, 0, format.BlockSize/format.MinMatchLen),
			Tokens:    make([]byte, 0, format.BlockSize/format.MinMatchLen),
			Offsets:   make([]byte, 0, format.BlockSize/format.MinMatchLen*2),
			Extras:    make([]byte, 0, format.BlockSize/format.MinMatchLen),
			Out:       make([]byte, 0, format.BlockSize+format.Pad),
		}
	},
}

// Get returns a warm Arena from the pool, ready for a new block: its match
// finder's epoch has been advanced (so previous-block hash entries read as
// empty) and its scratch slices are truncated to length zero.
func Get() *Arena {
	a := pool.Get().(*Arena)
	a.Finder.Reset()
	a.Literals = a.Literals[:0]
	a.Sequences = a.Sequences[:0]
	a.Tokens = a.Tokens[:0]
	a.Offsets = a.Offsets[:0]
	a.Extras = a.Extras[:0]
	a.Out = a.Out[:0]
	return a
}

// Put returns a in the pool for reuse. Callers must not touch a afterwards.
func Put(a *Arena) {
	pool.Put(a)
}
