// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package lz77 implements ZXC's match finder: a chained hash table over a
// single block, walked with an optional one-step lazy match, producing a
// sequence stream of (literal run, match length, offset) triples. The
// chain-walk-with-8-byte-compare technique is grounded on xiaojun207/lz4's
// CompressBlockHC.
package lz77

import (
	"math/bits"

	"github.com/hellobertrand/zxc/internal/bitio"
	"github.com/hellobertrand/zxc/internal/format"
)

// Sequence is one LZ77 match: LitLen bytes of literal precede a match of
// length Len at the given Offset (distance back from the current output
// position).
type Sequence struct {
	LitLen int
	Len    int
	Offset int
}

// LevelParams holds the per-level tuning table.
type LevelParams struct {
	MaxChain    int
	Lazy        bool
	LazyMinGain int // minimum improvement the next position's match must show to preempt this one: 1 at the fast levels, 2 otherwise
	HashBits    int
}

var levelTable = map[int]LevelParams{
	1: {MaxChain: 4, Lazy: false, HashBits: 15},
	2: {MaxChain: 8, Lazy: false, HashBits: 16},
	3: {MaxChain: 16, Lazy: true, LazyMinGain: 1, HashBits: 17},
	4: {MaxChain: 32, Lazy: true, LazyMinGain: 2, HashBits: 18},
	5: {MaxChain: 64, Lazy: true, LazyMinGain: 2, HashBits: 18},
}

// ParamsForLevel clamps level into 1..5 and returns its tuning parameters.
func ParamsForLevel(level int) LevelParams {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return levelTable[level]
}

const hashMultiplier = 2654435761 // Knuth multiplicative hash, shared with LZ4-family finders.

// hashSlot is one epoch-tagged hash-table entry. Unlike the C original's
// packed (epoch<<16)|offset word, the Go port keeps epoch and position as
// separate fields: ZXC's BlockSize (256KiB) does not fit a bare offset in
// 16 bits, and splitting the struct avoids reproducing the original's
// bit-packing purely for its own sake (see DESIGN.md).
type hashSlot struct {
	epoch uint32
	pos   int32
}

// Finder holds the epoch-tagged hash/chain tables for one block. It is
// reused across blocks (and, via internal/arena, across worker goroutines)
// to avoid the cost of zeroing the hash table on every call: a stale epoch
// simply means "empty".
type Finder struct {
	hashTable  []hashSlot
	chainTable []int32 // previous position in the same bucket, or -1
	epoch      uint32
}

// NewFinder allocates a Finder sized for blocks up to format.BlockSize.
func NewFinder() *Finder {
	return &Finder{
		hashTable:  make([]hashSlot, 1<<18),
		chainTable: make([]int32, format.BlockSize),
		epoch:      1,
	}
}

// Reset advances the epoch, invalidating every hash-table entry in O(1)
// without zeroing memory, unless the epoch counter itself wraps, in which
// case the table is actually cleared.
func (f *Finder) Reset() {
	f.epoch++
	if f.epoch == 0 {
		for i := range f.hashTable {
			f.hashTable[i] = hashSlot{}
		}
		f.epoch = 1
	}
}

func hashOf(x uint32, bits int) uint32 {
	return (x * hashMultiplier) >> (32 - uint(bits))
}

// insert records pos in the hash bucket for h, chaining through whatever
// was previously there (if it belongs to the current epoch), and returns
// that previous position as the first match candidate.
func (f *Finder) insert(pos int, h uint32) (candidate int32, ok bool) {
	slot := f.hashTable[h]
	prev := int32(-1)
	if slot.epoch == f.epoch {
		prev = slot.pos
		candidate, ok = prev, true
	}
	f.chainTable[pos] = prev
	f.hashTable[h] = hashSlot{epoch: f.epoch, pos: int32(pos)}
	return candidate, ok
}

// matchLen extends a candidate match using 8-byte xor-compare plus a
// trailing-zero count, truncated at end.
func matchLen(src []byte, a, b, end int) int {
	n := 0
	for b+n+8 <= end {
		x := bitio.LoadU64(src[a+n:a+n+8]) ^ bitio.LoadU64(src[b+n:b+n+8])
		if x == 0 {
			n += 8
			continue
		}
		n += bits.TrailingZeros64(x) >> 3
		return n
	}
	for b+n < end && src[a+n] == src[b+n] {
		n++
	}
	return n
}

// Find runs the full chained-hash match finder with lazy matching over one
// block and returns the sequence stream plus the concatenated literal
// bytes. maxOffset further restricts the window: candidates farther back
// than maxOffset are rejected (0 or a value above format.BlockSize means
// format.BlockSize).
func (f *Finder) Find(src []byte, level int, maxOffset int) ([]Sequence, []byte) {
	return f.FindInto(src, level, maxOffset, nil, nil)
}

// FindInto is Find but appends into the caller-supplied seqsDst/literalsDst
// (typically truncated-to-zero scratch slices from internal/arena) instead
// of allocating fresh backing arrays, so a warm Finder costs no allocation
// per block on the steady-state encode path.
func (f *Finder) FindInto(src []byte, level int, maxOffset int, seqsDst []Sequence, literalsDst []byte) ([]Sequence, []byte) {
	p := ParamsForLevel(level)
	n := len(src)
	seqs := seqsDst
	literals := literalsDst
	if literals == nil {
		literals = make([]byte, 0, n/4)
	}

	if maxOffset <= 0 || maxOffset > format.BlockSize {
		maxOffset = format.BlockSize
	}

	// findAt probes for (and registers) a match candidate chain starting at
	// pos, returning the best (length, offset) found within MaxChain links.
	findAt := func(pos int) (mlen, off int) {
		if pos+format.MinMatchLen > n {
			return 0, 0
		}
		x := bitio.LoadU32(src[pos : pos+4])
		h := hashOf(x, p.HashBits)
		cand, ok := f.insert(pos, h)
		best, bestOff := 0, 0
		for tries := p.MaxChain; ok && tries > 0; tries-- {
			offset := pos - int(cand)
			if offset <= 0 || offset > maxOffset || int(cand) < 0 {
				break
			}
			if bitio.LoadU32(src[cand:cand+4]) == x {
				ml := format.MinMatchLen + matchLen(src, int(cand)+format.MinMatchLen, pos+format.MinMatchLen, n)
				if ml > best {
					best, bestOff = ml, offset
				}
			}
			next := f.chainTable[cand]
			if next < 0 || next >= cand {
				break
			}
			cand, ok = next, true
		}
		return best, bestOff
	}

	anchor := 0
	i := 0
	// havePending caches the findAt result already computed for i when a
	// lazy match deferred to it last iteration, so it isn't probed (and
	// reinserted into the hash chain) a second time.
	havePending := false
	var pendingMlen, pendingOff int
	for i+format.MinMatchLen <= n {
		var mlen, off int
		if havePending {
			mlen, off = pendingMlen, pendingOff
			havePending = false
		} else {
			mlen, off = findAt(i)
		}
		if mlen < format.MinMatchLen {
			i++
			continue
		}

		if p.Lazy && i+1+format.MinMatchLen <= n {
			mlen2, off2 := findAt(i + 1)
			if mlen2 >= mlen+p.LazyMinGain {
				i++
				pendingMlen, pendingOff = mlen2, off2
				havePending = true
				continue
			}
		}

		literals = append(literals, src[anchor:i]...)
		seqs = append(seqs, Sequence{LitLen: i - anchor, Len: mlen, Offset: off})
		i += mlen
		anchor = i
	}

	literals = append(literals, src[anchor:]...)
	return seqs, literals
}
