/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// EvaluationContext describes the project an evaluation belongs to.
type EvaluationContext struct {
	Project  string `json:"project,omitempty"`  // Project name, usually the project file's base name
	Document string `json:"document,omitempty"` // Path of the document under evaluation
}

// EnrichAttributes appends bounded evaluation attributes to baseAttrs.
// Document paths are left to traces to keep metric cardinality low.
func (e EvaluationContext) EnrichAttributes(baseAttrs []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(baseAttrs), len(baseAttrs)+1)
	copy(attrs, baseAttrs)
	if e.Project != "" {
		attrs = append(attrs, attribute.String("project", e.Project))
	}
	return attrs
}

type contextKey string

const evaluationContextKey contextKey = "evaluation_context"

// WithEvaluationContext adds evaluation context to the Go context
func WithEvaluationContext(ctx context.Context, evalCtx EvaluationContext) context.Context {
	return context.WithValue(ctx, evaluationContextKey, evalCtx)
}

// GetEvaluationContext retrieves evaluation context from the Go context
func GetEvaluationContext(ctx context.Context) EvaluationContext {
	if evalCtx, ok := ctx.Value(evaluationContextKey).(EvaluationContext); ok {
		return evalCtx
	}
	return EvaluationContext{}
}

// EnrichFromContext adapts EnrichAttributes to the metrics enricher signature.
func EnrichFromContext(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue {
	return GetEvaluationContext(ctx).EnrichAttributes(baseAttrs)
}
