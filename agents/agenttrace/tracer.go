/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
)

type tracerKey[T any] struct{}

// Tracer creates traces and receives them once completed.
type Tracer[T any] interface {
	// NewTrace starts a trace for evaluating criterion with model.
	NewTrace(ctx context.Context, criterion, model string) *Trace[T]
	// RecordTrace records a completed trace
	RecordTrace(trace *Trace[T])
}

// WithTracer returns a new context with the given tracer
func WithTracer[T any](ctx context.Context, tracer Tracer[T]) context.Context {
	return context.WithValue(ctx, tracerKey[T]{}, tracer)
}

// TracerFromContext returns the tracer from the context, or a default tracer
// that logs through clog.
func TracerFromContext[T any](ctx context.Context) Tracer[T] {
	if tracer, ok := ctx.Value(tracerKey[T]{}).(Tracer[T]); ok {
		return tracer
	}
	return NewDefaultTracer[T](ctx)
}

// StartTrace starts a new trace using the tracer from the context
func StartTrace[T any](ctx context.Context, criterion, model string) *Trace[T] {
	return TracerFromContext[T](ctx).NewTrace(ctx, criterion, model)
}
