// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package stream

import (
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hellobertrand/zxc/internal/bitio"
	"github.com/hellobertrand/zxc/internal/blockcodec"
	"github.com/hellobertrand/zxc/internal/format"
	"github.com/hellobertrand/zxc/internal/xhash"
	"github.com/hellobertrand/zxc/internal/zxcerr"
)

type encodedJob struct {
	idx       int
	blockType format.BlockType
	payload   []byte
	checksum  uint32
	hasSum    bool
}

type decodedBlock struct {
	idx  int
	data []byte
}

type footerInfo struct {
	footer   format.Footer
	readHash uint32
}

// StreamDecompress decompresses a ZXC archive read from r into w using
// numThreads worker goroutines, returning the total decompressed byte
// count.
func StreamDecompress(r io.Reader, w io.Writer, numThreads int, checksum bool) (int64, error) {
	return StreamDecompressEx(r, w, numThreads, checksum, nil)
}

// StreamDecompressEx is StreamDecompress with an optional progress
// callback invoked once per block with cumulative decompressed bytes.
func StreamDecompressEx(r io.Reader, w io.Writer, numThreads int, checksum bool, progress ProgressFunc) (int64, error) {
	numWorkers := resolveWorkers(numThreads)
	ring := ringSize(numWorkers)

	var total int64
	if s, ok := r.(seeker); ok {
		total = bestEffortSize(s)
	}

	fileHdrBuf := make([]byte, format.FileHeaderSize)
	if _, err := io.ReadFull(r, fileHdrBuf); err != nil {
		return 0, ioErr(err)
	}
	fileHdr, err := format.ReadFileHeader(fileHdrBuf)
	if err != nil {
		return 0, err
	}
	hasChecksum := fileHdr.HasChecksum && checksum

	g, ctx := errgroup.WithContext(context.Background())
	jobs := make(chan encodedJob, ring)
	results := make(chan decodedBlock, ring)
	footerCh := make(chan footerInfo, 1)

	g.Go(func() error {
		return decompressReader(ctx, r, hasChecksum, jobs, footerCh)
	})

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return decompressWorker(ctx, hasChecksum, jobs, results)
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var bytesOut int64
	g.Go(func() error {
		pending := make(map[int]decodedBlock)
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

				if _, err := w.Write(cur.data); err != nil {
					return ioErr(err)
				}
				bytesOut += int64(len(cur.data))
				if progress != nil {
					progress(bytesOut, total)
				}
			}
		}

		ft, ok := <-footerCh
		if !ok {
			return zxcerr.CorruptData
		}
		if ft.footer.TotalSize != uint64(bytesOut) {
			return zxcerr.CorruptData
		}
		if hasChecksum && ft.footer.GlobalHash != ft.readHash {
			return zxcerr.BadChecksum
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return bytesOut, nil
}

func decompressReader(ctx context.Context, r io.Reader, hasChecksum bool, jobs chan<- encodedJob, footerCh chan<- footerInfo) error {
	defer close(jobs)
	defer close(footerCh)

	idx := 0
	var readHash uint32
	for {
		bhBuf := make([]byte, format.BlockHeaderSize)
		if _, err := io.ReadFull(r, bhBuf); err != nil {
			return ioErr(err)
		}
		bh, err := format.ReadBlockHeader(bhBuf)
		if err != nil {
			return err
		}

		if bh.Type == format.BlockEOF {
			footerBuf := make([]byte, format.FooterSize)
			if _, err := io.ReadFull(r, footerBuf); err != nil {
				return ioErr(err)
			}
			f, err := format.ReadFooter(footerBuf)
			if err != nil {
				return err
			}
			select {
			case footerCh <- footerInfo{footer: f, readHash: readHash}:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		}

		bodyLen := int(bh.CompSize)
		if hasChecksum {
			bodyLen += 4
		}
		body := make([]byte, bodyLen)
		if _, err := io.ReadFull(r, body); err != nil {
			return ioErr(err)
		}

		job := encodedJob{idx: idx, blockType: bh.Type, payload: body[:bh.CompSize]}
		if hasChecksum {
			job.checksum = bitio.LoadU32(body[bh.CompSize : bh.CompSize+4])
			job.hasSum = true
			readHash = xhash.FoldGlobal(readHash, job.checksum)
		}

		select {
		case jobs <- job:
		case <-ctx.Done():
			return ctx.Err()
		}
		idx++
	}
}

func decompressWorker(ctx context.Context, hasChecksum bool, jobs <-chan encodedJob, results chan<- decodedBlock) error {
	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return nil
			}
			if job.hasSum {
				if got := xhash.Content32(job.payload); got != job.checksum {
					return zxcerr.BadChecksum
				}
			}

			dst := make([]byte, format.BlockSize+format.Pad)
			n, err := blockcodec.DecodeBlock(job.blockType, job.payload, dst)
			if err != nil {
				return err
			}

			select {
			case results <- decodedBlock{idx: job.idx, data: dst[:n]}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// StreamGetDecompressedSize reads the total decompressed size out of r's
// footer and restores r's read position, tolerating any seekable stream
// regardless of how much of it has already been consumed.
func StreamGetDecompressedSize(r io.ReadSeeker) (int64, error) {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ioErr(err)
	}
	defer r.Seek(cur, io.SeekStart)

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, ioErr(err)
	}
	if end-cur < int64(format.FileHeaderSize+format.FooterSize) {
		return 0, nil
	}

	if _, err := r.Seek(end-int64(format.FooterSize), io.SeekStart); err != nil {
		return 0, ioErr(err)
	}
	buf := make([]byte, format.FooterSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, ioErr(err)
	}
	f, err := format.ReadFooter(buf)
	if err != nil {
		return 0, err
	}
	return int64(f.TotalSize), nil
}
