/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Outcome classifies a finished criterion evaluation.
type Outcome string

const (
	// OutcomePassed means the model judged the text to satisfy the criterion.
	OutcomePassed Outcome = "passed"
	// OutcomeFailed means the model judged the text to violate the criterion.
	OutcomeFailed Outcome = "failed"
	// OutcomeError means no verdict was obtained.
	OutcomeError Outcome = "error"
)

// OutcomeOf maps a verdict to its Outcome.
func OutcomeOf(passed bool) Outcome {
	if passed {
		return OutcomePassed
	}
	return OutcomeFailed
}

// GenAI provides OpenTelemetry metrics for criterion evaluations: token usage
// and verdict counts. Counters that fail to initialize degrade to no-ops.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	evaluations      metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewGenAI creates a GenAI metrics instance with the specified meter name.
// The model and criterion names are recorded as dimensions rather than being
// baked into the meter name.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	evaluations, err := meter.Int64Counter("textassert.evaluations",
		metric.WithDescription("The number of criterion evaluations by outcome"),
		metric.WithUnit("{evaluations}"))
	if err != nil {
		slog.Warn("Failed to create evaluations counter, metrics will be disabled", "error", err, "meter", meterName)
		evaluations = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		evaluations:      evaluations,
	}
}

// SetAttributeEnricher sets the attribute enricher for this metrics instance.
// The enricher is called before recording each metric.
func (m *GenAI) SetAttributeEnricher(enricher AttributeEnricher) {
	m.attrEnricher = enricher
}

func (m *GenAI) attributes(ctx context.Context, base []attribute.KeyValue, extra []attribute.KeyValue) metric.AddOption {
	if m.attrEnricher != nil {
		base = m.attrEnricher(ctx, base)
	}
	return metric.WithAttributes(append(base, extra...)...)
}

// RecordTokens records prompt and completion token usage for one request.
func (m *GenAI) RecordTokens(ctx context.Context, model, criterion string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	opt := m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("criterion", criterion),
	}, attrs)

	m.promptTokens.Add(ctx, promptTokens, opt)
	m.completionTokens.Add(ctx, completionTokens, opt)
}

// RecordEvaluation counts one finished evaluation.
func (m *GenAI) RecordEvaluation(ctx context.Context, model, criterion string, outcome Outcome, attrs ...attribute.KeyValue) {
	m.evaluations.Add(ctx, 1, m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("criterion", criterion),
		attribute.String("outcome", string(outcome)),
	}, attrs))
}
