// Copyright 2025-2026 Bertrand Lebonnois and contributors.
// SPDX-License-Identifier: BSD-3-Clause

package stream

// ProgressFunc is invoked once per block from the writer stage with the
// cumulative byte count processed so far and the best-effort total (0 if
// unknown, e.g. the input isn't seekable). It must not block: the pipeline holds no locks while calling
// it, but a slow callback stalls the writer and, transitively, backs up
// the whole pipeline.
type ProgressFunc func(processed, total int64)
