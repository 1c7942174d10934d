/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agenttrace traces criterion evaluations.

Each evaluation opens a Trace[T] with a "textassert.evaluate" OpenTelemetry
span carrying criterion, model and token attributes. Completing the trace
ends the span and hands the trace to its Tracer[T].

	ctx = agenttrace.WithEvaluationContext(ctx, agenttrace.EvaluationContext{
		Project: "essay",
	})
	ctx = agenttrace.WithTracer[*Result](ctx, agenttrace.ByCode[*Result](func(tr *agenttrace.Trace[*Result]) {
		log.Printf("%s took %v", tr.Criterion, tr.Duration())
	}))

	tr := agenttrace.StartTrace[*Result](ctx, "grammar", "some/model")
	tr.RecordTokenUsage(120, 30)
	tr.Complete(res, err)

Without a tracer in the context, StartTrace logs through clog.
*/
package agenttrace
