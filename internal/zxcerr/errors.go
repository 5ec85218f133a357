// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package zxcerr defines the ZXC error codes as a typed error
// shared by every internal package, so a corrupt-data condition detected
// deep in the block decoder surfaces at the public API boundary unchanged.
package zxcerr

// Code is a negative error code, matching the sign convention the format's
// C-style API contract uses for every function that returns a signed
// result.
type Code int

const (
	OK Code = 0

	Memory       Code = -1
	DstTooSmall  Code = -2
	SrcTooSmall  Code = -3
	BadMagic     Code = -4
	BadVersion   Code = -5
	BadHeader    Code = -6
	BadChecksum  Code = -7
	CorruptData  Code = -8
	BadOffset    Code = -9
	Overflow     Code = -10
	IO           Code = -11
	NullInput    Code = -12
	BadBlockType Code = -13
)

var names = map[Code]string{
	OK:           "ZXC_OK",
	Memory:       "ZXC_ERROR_MEMORY",
	DstTooSmall:  "ZXC_ERROR_DST_TOO_SMALL",
	SrcTooSmall:  "ZXC_ERROR_SRC_TOO_SMALL",
	BadMagic:     "ZXC_ERROR_BAD_MAGIC",
	BadVersion:   "ZXC_ERROR_BAD_VERSION",
	BadHeader:    "ZXC_ERROR_BAD_HEADER",
	BadChecksum:  "ZXC_ERROR_BAD_CHECKSUM",
	CorruptData:  "ZXC_ERROR_CORRUPT_DATA",
	BadOffset:    "ZXC_ERROR_BAD_OFFSET",
	Overflow:     "ZXC_ERROR_OVERFLOW",
	IO:           "ZXC_ERROR_IO",
	NullInput:    "ZXC_ERROR_NULL_INPUT",
	BadBlockType: "ZXC_ERROR_BAD_BLOCK_TYPE",
}

// Name returns the stable symbolic name of code, or "ZXC_UNKNOWN_ERROR" if
// code isn't one of the values above.
func Name(code int) string {
	if n, ok := names[Code(code)]; ok {
		return n
	}
	return "ZXC_UNKNOWN_ERROR"
}

// Error implements the error interface over a Code.
func (c Code) Error() string {
	return names[c]
}
