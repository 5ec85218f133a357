// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package xhash provides the non-cryptographic content hash used for
// per-block and global-stream checksums, plus the small header CRCs.
package xhash

import "github.com/cespare/xxhash/v2"

// Content64 computes the 64-bit content hash of data. The wire format's
// upper bits identify the content-hash family; xxHash64 is the closest
// available member of that family in the dependency pack and produces a
// hash of the same width and avalanche properties the format assumes.
func Content64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Content32 is Content64 truncated to the 32 bits stored in the on-disk
// block checksum and footer global-hash fields.
func Content32(data []byte) uint32 {
	return uint32(Content64(data))
}

// RotateLeft1 rotates a 32-bit accumulator left by one bit. Folding a
// rotated accumulator with XOR is order-sensitive by construction:
// swapping two blocks changes which rotation each one's hash receives, so
// the final reduction differs.
func RotateLeft1(acc uint32) uint32 {
	return (acc << 1) | (acc >> 31)
}

// FoldGlobal folds one block's content hash into the running global-hash
// accumulator.
func FoldGlobal(acc uint32, blockHash uint32) uint32 {
	return RotateLeft1(acc) ^ blockHash
}
