// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package zxc

import "github.com/hellobertrand/zxc/internal/zxcerr"

// Error is the public form of a ZXC error code. Every exported
// function that can fail returns one, wrapped as a standard Go error.
type Error struct {
	code zxcerr.Code
}

func (e *Error) Error() string { return e.code.Error() }

// Code returns the signed integer error code, matching the sign convention
// of the format's C-style API contract.
func (e *Error) Code() int { return int(e.code) }

var (
	ErrMemory       = &Error{zxcerr.Memory}
	ErrDstTooSmall  = &Error{zxcerr.DstTooSmall}
	ErrSrcTooSmall  = &Error{zxcerr.SrcTooSmall}
	ErrBadMagic     = &Error{zxcerr.BadMagic}
	ErrBadVersion   = &Error{zxcerr.BadVersion}
	ErrBadHeader    = &Error{zxcerr.BadHeader}
	ErrBadChecksum  = &Error{zxcerr.BadChecksum}
	ErrCorruptData  = &Error{zxcerr.CorruptData}
	ErrBadOffset    = &Error{zxcerr.BadOffset}
	ErrOverflow     = &Error{zxcerr.Overflow}
	ErrIO           = &Error{zxcerr.IO}
	ErrNullInput    = &Error{zxcerr.NullInput}
	ErrBadBlockType = &Error{zxcerr.BadBlockType}
)

var byCode = map[zxcerr.Code]*Error{
	zxcerr.Memory:       ErrMemory,
	zxcerr.DstTooSmall:  ErrDstTooSmall,
	zxcerr.SrcTooSmall:  ErrSrcTooSmall,
	zxcerr.BadMagic:     ErrBadMagic,
	zxcerr.BadVersion:   ErrBadVersion,
	zxcerr.BadHeader:    ErrBadHeader,
	zxcerr.BadChecksum:  ErrBadChecksum,
	zxcerr.CorruptData:  ErrCorruptData,
	zxcerr.BadOffset:    ErrBadOffset,
	zxcerr.Overflow:     ErrOverflow,
	zxcerr.IO:           ErrIO,
	zxcerr.NullInput:    ErrNullInput,
	zxcerr.BadBlockType: ErrBadBlockType,
}

// wrapErr converts an internal package error (always a zxcerr.Code, when
// non-nil) into its exported *Error.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if code, ok := err.(zxcerr.Code); ok {
		if e, ok := byCode[code]; ok {
			return e
		}
	}
	return err
}

// ErrorName returns the stable symbolic name of a signed error code, e.g.
// -4 maps to "ZXC_ERROR_BAD_MAGIC".
func ErrorName(code int) string {
	return zxcerr.Name(code)
}
