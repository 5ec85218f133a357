// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package blockcodec

import (
	"github.com/hellobertrand/zxc/internal/bitio"
	"github.com/hellobertrand/zxc/internal/format"
	"github.com/hellobertrand/zxc/internal/zxcerr"
)

// numFrameValues is the number of u32 values per NUM frame. Frame-splitting
// policy is left open by the format; a flat value keeps the bit-packing
// loop simple without materially hurting ratio on the arithmetic-progression
// inputs NUM targets.
const numFrameValues = 1024

// numProbeBytes bounds how much of the block the probe inspects.
const numProbeBytes = 256

// probeNum reports whether block looks like a run of little-endian u32
// values with small, roughly-constant deltas: a multiple-of-4 length and a
// prefix whose successive deltas don't explode in magnitude.
func probeNum(block []byte) bool {
	if len(block) < 16 || len(block)%4 != 0 {
		return false
	}
	n := numProbeBytes
	if n > len(block) {
		n = len(block) - len(block)%4
	}
	nvals := n / 4
	if nvals < 3 {
		return false
	}
	prev := bitio.LoadU32(block[0:4])
	var minDelta, maxDelta int64
	first := true
	for i := 1; i < nvals; i++ {
		v := bitio.LoadU32(block[i*4 : i*4+4])
		d := int64(int32(v - prev))
		if first {
			minDelta, maxDelta = d, d
			first = false
		} else {
			if d < minDelta {
				minDelta = d
			}
			if d > maxDelta {
				maxDelta = d
			}
		}
		prev = v
	}
	return maxDelta-minDelta < 1<<20
}

// encodeNum bit-packs block (a sequence of little-endian u32 values) into
// the NUM payload: a 16-byte NumHeader followed by one frame per
// numFrameValues values.
func encodeNum(dst []byte, block []byte) []byte {
	nvals := len(block) / 4
	dst = append(dst, make([]byte, format.NumHeaderSize)...)
	format.WriteNumHeader(dst[len(dst)-format.NumHeaderSize:], format.NumHeader{
		NValues: uint64(nvals),
		FrameSize: numFrameValues,
	})

	acc := uint32(0)
	for base := 0; base < nvals; base += numFrameValues {
		n := numFrameValues
		if base+n > nvals {
			n = nvals - base
		}
		frame := make([]uint32, n)
		maxBits := 0
		for i := 0; i < n; i++ {
			v := bitio.LoadU32(block[(base+i)*4 : (base+i)*4+4])
			delta := bitio.ZigZagEncode(int32(v - acc))
			frame[i] = delta
			acc = v
			if b := bitsNeeded(delta); b > maxBits {
				maxBits = b
			}
		}

		packed := packBits(frame, maxBits)
		headerPos := len(dst)
		dst = append(dst, make([]byte, format.NumChunkHeaderSize)...)
		format.WriteNumChunkHeader(dst[headerPos:headerPos+format.NumChunkHeaderSize], format.NumChunkHeader{
			NVals: uint16(n),
			Bits: uint16(maxBits),
			PSize: uint32(len(packed)),
		})
		dst = append(dst, packed...)
	}
	return dst
}

// decodeNum reverses encodeNum, writing nvals little-endian u32 values (4·
// nvals bytes) to dst.
func decodeNum(payload []byte, dst []byte) (int, error) {
	hdr, err := format.ReadNumHeader(payload)
	if err != nil {
		return 0, err
	}
	nvals := int(hdr.NValues)
	if nvals*4 > len(dst) {
		return 0, zxcerr.DstTooSmall
	}

	pos := format.NumHeaderSize
	acc := uint32(0)
	written := 0
	for written < nvals {
		ch, err := format.ReadNumChunkHeader(payload[pos:])
		if err != nil {
			return 0, err
		}
		pos += format.NumChunkHeaderSize
		if ch.Bits > 32 || int(ch.NVals) > nvals-written {
			return 0, zxcerr.CorruptData
		}
		if pos+int(ch.PSize) > len(payload) {
			return 0, zxcerr.SrcTooSmall
		}

		vals := unpackBits(payload[pos:pos+int(ch.PSize)], int(ch.NVals), int(ch.Bits))
		pos += int(ch.PSize)
		for _, zz := range vals {
			acc = uint32(int32(acc) + bitio.ZigZagDecode(zz))
			bitio.StoreU32(dst[written*4:written*4+4], acc)
			written++
		}
	}
	return written * 4, nil
}

func bitsNeeded(v uint32) int {
	if v == 0 {
		return 0
	}
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

// packBits bit-packs vals, each truncated to its low `bits` bits, LSB-first
// across bytes — the inverse of unpackBits / bitio.Reader.Consume.
func packBits(vals []uint32, bits int) []byte {
	if bits == 0 {
		return nil
	}
	out := make([]byte, 0, (len(vals)*bits+7)/8)
	var acc uint64
	var nbits uint
	for _, v := range vals {
		acc |= uint64(v&((1<<uint(bits))-1)) << nbits
		nbits += uint(bits)
		for nbits >= 8 {
			out = append(out, byte(acc))
			acc >>= 8
			nbits -= 8
		}
	}
	if nbits > 0 {
		out = append(out, byte(acc))
	}
	return out
}

func unpackBits(src []byte, n int, bits int) []uint32 {
	out := make([]uint32, n)
	if bits == 0 {
		return out
	}
	r := bitio.NewReader(src)
	for i := 0; i < n; i++ {
		r.Ensure(uint(bits))
		out[i] = uint32(r.Consume(uint(bits)))
	}
	return out
}
