/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// TraceCallback is a function that receives completed traces
type TraceCallback[T any] func(*Trace[T])

type byCodeTracer[T any] struct {
	callbacks []TraceCallback[T]
}

// ByCode creates a Tracer that invokes the given callbacks when traces are recorded
func ByCode[T any](callbacks ...TraceCallback[T]) Tracer[T] {
	return &byCodeTracer[T]{
		callbacks: callbacks,
	}
}

func (t *byCodeTracer[T]) NewTrace(ctx context.Context, criterion, model string) *Trace[T] {
	return newTraceWithTracer[T](ctx, t, criterion, model)
}

// RecordTrace invokes all callbacks with the completed trace in parallel
func (t *byCodeTracer[T]) RecordTrace(trace *Trace[T]) {
	g := new(errgroup.Group)
	for _, callback := range t.callbacks {
		if callback != nil {
			g.Go(func() error {
				callback(trace)
				return nil
			})
		}
	}
	_ = g.Wait()
}
