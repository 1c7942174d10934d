/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package assessor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/textassert/project"
)

// ErrNoChoices is returned when the provider answers without any choice.
var ErrNoChoices = errors.New("completion contained no choices")

// ErrNoContent is returned when the first choice carries no message content.
var ErrNoContent = errors.New("completion message has no content")

// CriterionResponse is the structured verdict a model returns for one
// criterion. Its reflected schema is sent to the provider in strict mode and
// enforced again locally.
type CriterionResponse struct {
	Feedbacks []project.Feedback `json:"feedbacks" jsonschema:"description=Issues found in the text; empty when there are none"`
	Passed    bool               `json:"passed" jsonschema:"description=Whether the text as a whole satisfies the criterion"`
}

// Result pairs a validated response with the criterion it answers.
type Result struct {
	Response  CriterionResponse `json:"response"`
	Criterion string            `json:"criterion"`
}

// String returns a short human readable summary.
func (r *Result) String() string {
	var sb strings.Builder
	verdict := "FAIL"
	if r.Response.Passed {
		verdict = "PASS"
	}
	fmt.Fprintf(&sb, "%s: %s (%d feedbacks)", r.Criterion, verdict, len(r.Response.Feedbacks))
	for _, f := range r.Response.Feedbacks {
		fmt.Fprintf(&sb, "\n  %q: %s", f.Quote, f.Feedback)
	}
	return sb.String()
}

// Interface evaluates a document against a single criterion.
type Interface interface {
	// Evaluate asks the model whether the project's document satisfies
	// criterion. Feedback stored in the project for the same criterion name is
	// replayed so the model can re-check it. The call blocks until the
	// provider answers or ctx is done.
	Evaluate(ctx context.Context, criterion project.Criterion, p *project.Project) (*Result, error)
}
