// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package stream

import "github.com/hellobertrand/zxc/internal/zxcerr"

// ioErr wraps an underlying read/write failure as the format's IO error
// kind, keeping the original error retrievable via errors.As/errors.Unwrap
// through the returned type's Unwrap method.
func ioErr(cause error) error {
	if cause == nil {
		return nil
	}
	return &wrappedErr{code: zxcerr.IO, cause: cause}
}

type wrappedErr struct {
	code  zxcerr.Code
	cause error
}

func (e *wrappedErr) Error() string { return e.code.Error() + ": " + e.cause.Error() }
func (e *wrappedErr) Unwrap() error { return e.cause }
func (e *wrappedErr) Code() int     { return int(e.code) }
