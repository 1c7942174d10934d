/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "chainguard.dev/textassert/agents/agenttrace"

// Trace records a single criterion evaluation from request to verdict.
type Trace[T any] struct {
	ID               string            `json:"id"`
	Criterion        string            `json:"criterion"`
	Model            string            `json:"model"`
	EvalContext      EvaluationContext `json:"eval_context,omitempty"`
	Messages         int               `json:"messages"`
	PromptTokens     int64             `json:"prompt_tokens"`
	CompletionTokens int64             `json:"completion_tokens"`
	Result           T                 `json:"result"`
	Error            error             `json:"error,omitempty"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	Metadata         map[string]any    `json:"metadata,omitempty"`
	tracer           Tracer[T]
	mu               sync.Mutex
	ctx              context.Context
	span             oteltrace.Span
}

func newTraceWithTracer[T any](ctx context.Context, tracer Tracer[T], criterion, model string) *Trace[T] {
	evalCtx := GetEvaluationContext(ctx)

	tr := otel.Tracer(instrumentationName, oteltrace.WithInstrumentationVersion("1.0.0"))

	attrs := []attribute.KeyValue{
		attribute.String("criterion", criterion),
		attribute.String("model", model),
	}
	if evalCtx.Project != "" {
		attrs = append(attrs, attribute.String("project", evalCtx.Project))
	}
	if evalCtx.Document != "" {
		attrs = append(attrs, attribute.String("document", evalCtx.Document))
	}

	ctx, span := tr.Start(ctx, "textassert.evaluate", oteltrace.WithAttributes(attrs...))

	return &Trace[T]{
		ID:          generateTraceID(),
		Criterion:   criterion,
		Model:       model,
		EvalContext: evalCtx,
		StartTime:   time.Now(),
		Metadata:    make(map[string]any),
		tracer:      tracer,
		ctx:         ctx,
		span:        span,
	}
}

// Context returns the context carrying this trace's span. Outbound requests
// made on behalf of the evaluation should use it so they nest under the span.
func (t *Trace[T]) Context() context.Context {
	return t.ctx
}

// RecordMessages records how many chat messages were sent.
func (t *Trace[T]) RecordMessages(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Messages = n
	if t.span != nil {
		t.span.SetAttributes(attribute.Int("messages", n))
	}
}

// RecordTokenUsage records token usage on the trace and its span.
func (t *Trace[T]) RecordTokenUsage(promptTokens, completionTokens int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.PromptTokens = promptTokens
	t.CompletionTokens = completionTokens
	if t.span != nil {
		t.span.SetAttributes(
			attribute.Int64("tokens.input", promptTokens),
			attribute.Int64("tokens.output", completionTokens),
			attribute.Int64("tokens.total", promptTokens+completionTokens),
		)
	}
}

// SetMetadata attaches a free-form value to the trace.
func (t *Trace[T]) SetMetadata(key string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Metadata[key] = value
}

// Complete marks the trace as complete and hands it to its tracer.
func (t *Trace[T]) Complete(result T, err error) {
	t.mu.Lock()
	t.Result = result
	t.Error = err
	t.EndTime = time.Now()
	tracer := t.tracer
	span := t.span
	t.mu.Unlock()

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}

	tracer.RecordTrace(t)
}

// Duration returns the total duration of the trace
func (t *Trace[T]) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration()
}

func (t *Trace[T]) duration() time.Duration {
	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}
	return t.EndTime.Sub(t.StartTime)
}

// String returns a structured representation of the trace
func (t *Trace[T]) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder

	fmt.Fprintf(&sb, "=== Trace %s ===\n", t.ID)
	fmt.Fprintf(&sb, "Criterion: %q\n", t.Criterion)
	fmt.Fprintf(&sb, "Model: %s\n", t.Model)
	if t.EvalContext.Project != "" {
		fmt.Fprintf(&sb, "Project: %s\n", t.EvalContext.Project)
	}
	fmt.Fprintf(&sb, "Duration: %v\n", t.duration())
	fmt.Fprintf(&sb, "Messages: %d\n", t.Messages)
	fmt.Fprintf(&sb, "Tokens: %d prompt, %d completion\n", t.PromptTokens, t.CompletionTokens)

	sb.WriteString("\nCompletion:\n")
	switch {
	case t.Error != nil:
		fmt.Fprintf(&sb, "  Error: %v\n", t.Error)
	case any(t.Result) != nil:
		resultStr := fmt.Sprintf("%+v", t.Result)
		if len(resultStr) > 500 {
			resultStr = resultStr[:497] + "..."
		}
		fmt.Fprintf(&sb, "  Result: %s\n", resultStr)
	default:
		sb.WriteString("  Result: <nil>\n")
	}

	if len(t.Metadata) > 0 {
		sb.WriteString("\nMetadata:\n")
		for k, v := range t.Metadata {
			fmt.Fprintf(&sb, "  %s: %v\n", k, v)
		}
	}

	return sb.String()
}

// generateTraceID returns YYYYMMDD-HHMMSS-<uuid> so IDs sort by start time.
func generateTraceID() string {
	return fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), uuid.NewString())
}
