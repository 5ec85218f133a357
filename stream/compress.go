// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package stream

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	zxc "github.com/hellobertrand/zxc"
	"github.com/hellobertrand/zxc/internal/arena"
	"github.com/hellobertrand/zxc/internal/bitio"
	"github.com/hellobertrand/zxc/internal/blockcodec"
	"github.com/hellobertrand/zxc/internal/format"
	"github.com/hellobertrand/zxc/internal/xhash"
)

type rawBlock struct {
	idx  int
	data []byte
}

type encodedBlock struct {
	idx       int
	blockType format.BlockType
	payload   []byte
	hash      uint32
	srcLen    int
}

// StreamCompress compresses all of r into w using numThreads worker
// goroutines (resolved per resolveWorkers), returning the total compressed
// byte count.
func StreamCompress(r io.Reader, w io.Writer, numThreads int, level zxc.Level, checksum bool) (int64, error) {
	return StreamCompressEx(r, w, numThreads, level, checksum, nil)
}

// StreamCompressEx is StreamCompress with an optional progress callback,
// invoked from the writer stage once per block with cumulative input bytes
// consumed.
func StreamCompressEx(r io.Reader, w io.Writer, numThreads int, level zxc.Level, checksum bool, progress ProgressFunc) (int64, error) {
	numWorkers := resolveWorkers(numThreads)
	ring := ringSize(numWorkers)

	var total int64
	if s, ok := r.(seeker); ok {
		total = bestEffortSize(s)
	}

	g, ctx := errgroup.WithContext(context.Background())
	jobs := make(chan rawBlock, ring)
	results := make(chan encodedBlock, ring)

	var srcBytes atomic.Int64
	g.Go(func() error {
		return compressReader(ctx, r, jobs, &srcBytes)
	})

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return compressWorker(ctx, int(level), checksum, jobs, results)
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var globalHash uint32
	var bytesOut, bytesIn int64
	g.Go(func() error {
		hdr := make([]byte, format.FileHeaderSize)
		n := format.WriteFileHeader(hdr, checksum)
		if _, err := w.Write(hdr[:n]); err != nil {
			return ioErr(err)
		}
		bytesOut += int64(n)

		pending := make(map[int]encodedBlock)
		next := 0
		for rb := range results {
			pending[rb.idx] = rb
			for {
				cur, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++

				n, err := writeEncodedBlock(w, cur, checksum)
				if err != nil {
					return err
				}
				bytesOut += int64(n)
				bytesIn += int64(cur.srcLen)
				if checksum {
					globalHash = xhash.FoldGlobal(globalHash, cur.hash)
				}
				if progress != nil {
					progress(bytesIn, total)
				}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}

	hash := uint32(0)
	if checksum {
		hash = globalHash
	}
	footer := make([]byte, format.BlockHeaderSize+format.FooterSize)
	format.WriteBlockHeader(footer[:format.BlockHeaderSize], format.BlockHeader{Type: format.BlockEOF, CompSize: 0})
	format.WriteFooter(footer[format.BlockHeaderSize:], format.Footer{TotalSize: uint64(srcBytes.Load()), GlobalHash: hash})
	if _, err := w.Write(footer); err != nil {
		return 0, ioErr(err)
	}
	bytesOut += int64(len(footer))

	return bytesOut, nil
}

func writeEncodedBlock(w io.Writer, b encodedBlock, checksum bool) (int, error) {
	total := 0
	bh := make([]byte, format.BlockHeaderSize)
	format.WriteBlockHeader(bh, format.BlockHeader{Type: b.blockType, CompSize: uint32(len(b.payload))})
	if _, err := w.Write(bh); err != nil {
		return total, ioErr(err)
	}
	total += len(bh)
	if _, err := w.Write(b.payload); err != nil {
		return total, ioErr(err)
	}
	total += len(b.payload)
	if checksum {
		var sumBuf [4]byte
		bitio.StoreU32(sumBuf[:], b.hash)
		if _, err := w.Write(sumBuf[:]); err != nil {
			return total, ioErr(err)
		}
		total += len(sumBuf)
	}
	return total, nil
}

func compressReader(ctx context.Context, r io.Reader, jobs chan<- rawBlock, total *atomic.Int64) error {
	defer close(jobs)
	idx := 0
	for {
		buf := make([]byte, format.BlockSize)
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			select {
			case jobs <- rawBlock{idx: idx, data: buf[:n]}:
			case <-ctx.Done():
				return ctx.Err()
			}
			idx++
			total.Add(int64(n))
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return ioErr(err)
		}
	}
}

func compressWorker(ctx context.Context, level int, checksum bool, jobs <-chan rawBlock, results chan<- encodedBlock) error {
	for {
		select {
		case rb, ok := <-jobs:
			if !ok {
				return nil
			}
			a := arena.Get()
			blockType, payload := blockcodec.EncodeBlock(a, rb.data, level)
			owned := append([]byte(nil), payload...)
			var h uint32
			if checksum {
				h = xhash.Content32(owned)
			}
			arena.Put(a)

			select {
			case results <- encodedBlock{idx: rb.idx, blockType: blockType, payload: owned, hash: h, srcLen: len(rb.data)}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
