// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package stream implements ZXC's multi-threaded streaming driver: a
// reader goroutine partitions input into blocks, a pool of worker
// goroutines run the block codec concurrently, and a writer goroutine
// emits results in strict input order. The source's ring
// buffer + mutex + three condition variables map onto Go's idioms as two
// bounded channels (job queue, result queue) plus an index-ordered buffer
// on the writer side; golang.org/x/sync/errgroup propagates the first
// fatal error and cancels every stage, standing in for the source's
// atomic io_error flag and condvar broadcast.
package stream

import "runtime"

// resolveWorkers implements the thread-count formula: W = max(1,
// n-1) for n ≥ 2; max(1, NumCPU-1) for n == 0; 1 for n == 1 or n < 0
// (single-worker is the natural floor this leaves unstated).
func resolveWorkers(numThreads int) int {
	switch {
	case numThreads >= 2:
		if w := numThreads - 1; w > 0 {
			return w
		}
		return 1
	case numThreads == 0:
		if w := runtime.NumCPU() - 1; w > 0 {
			return w
		}
		return 1
	default:
		return 1
	}
}

// ringSize is the bounded channel capacity backing both the job and result
// queues: N = 4·W.
func ringSize(numWorkers int) int {
	return 4 * numWorkers
}

// seeker is the subset of io.Seeker StreamCompressEx/StreamDecompressEx use
// to best-effort precompute a progress total; absence is tolerated.
type seeker interface {
	Seek(offset int64, whence int) (int64, error)
}

func bestEffortSize(s seeker) int64 {
	const (
		seekCurrent = 1
		seekEnd     = 2
		seekStart   = 0
	)
	cur, err := s.Seek(0, seekCurrent)
	if err != nil {
		return 0
	}
	end, err := s.Seek(0, seekEnd)
	if err != nil {
		return 0
	}
	if _, err := s.Seek(cur, seekStart); err != nil {
		return 0
	}
	if end < cur {
		return 0
	}
	return end - cur
}
