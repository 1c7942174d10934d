/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// NewDefaultTracer creates a tracer that logs completed traces to clog at
// debug level, and failed ones at warn level.
func NewDefaultTracer[T any](ctx context.Context) Tracer[T] {
	logger := clog.FromContext(ctx)

	return ByCode[T](func(trace *Trace[T]) {
		l := logger.With(
			"trace_id", trace.ID,
			"criterion", trace.Criterion,
			"duration_ms", trace.Duration().Milliseconds(),
		)
		if trace.Error != nil {
			l.Warn("Evaluation trace failed", "error", trace.Error)
			return
		}
		l.Debug("Evaluation trace completed", "trace", trace.String())
	})
}
