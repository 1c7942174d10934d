/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package runner evaluates a project's criteria concurrently and merges the
// verdicts back into the project.
package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"chainguard.dev/textassert/agents/assessor"
	"chainguard.dev/textassert/project"
)

// ErrUnknownCriterion is reported for a selected name the project lacks.
var ErrUnknownCriterion = errors.New("unknown criterion")

// Outcome is the result of evaluating one criterion. Exactly one of Result
// and Err is set.
type Outcome struct {
	Criterion string
	Result    *assessor.Result
	Err       error
}

type config struct {
	concurrency int
	selected    []string
}

// Option configures Run.
type Option func(*config)

// WithConcurrency caps the number of evaluations in flight. Zero or a
// negative value means no limit.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

// WithCriteria restricts the run to the named criteria, in the given order.
func WithCriteria(names ...string) Option {
	return func(c *config) {
		c.selected = names
	}
}

// Run evaluates every selected criterion of p with ev, one goroutine per
// criterion. A failing evaluation does not cancel the others; its error is
// kept in its Outcome. Outcomes follow the project's criteria order, or the
// selection order when WithCriteria is used.
func Run(ctx context.Context, ev assessor.Interface, p *project.Project, opts ...Option) []Outcome {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	targets := p.Criteria
	if len(cfg.selected) > 0 {
		targets = make([]project.Criterion, 0, len(cfg.selected))
		for _, name := range cfg.selected {
			idx := slices.IndexFunc(p.Criteria, func(c project.Criterion) bool { return c.Name == name })
			if idx < 0 {
				targets = append(targets, project.Criterion{Name: name})
				continue
			}
			targets = append(targets, p.Criteria[idx])
		}
	}

	outcomes := make([]Outcome, len(targets))

	var g errgroup.Group
	if cfg.concurrency > 0 {
		g.SetLimit(cfg.concurrency)
	}

	for i, c := range targets {
		outcomes[i].Criterion = c.Name
		if !slices.ContainsFunc(p.Criteria, func(pc project.Criterion) bool { return pc.Name == c.Name }) {
			outcomes[i].Err = fmt.Errorf("%w: %q", ErrUnknownCriterion, c.Name)
			continue
		}
		g.Go(func() error {
			res, err := ev.Evaluate(ctx, c, p)
			if err != nil {
				clog.FromContext(ctx).With("criterion", c.Name).
					Warnf("Evaluation failed: %v", err)
			}
			outcomes[i].Result, outcomes[i].Err = res, err
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// Merge applies every successful outcome to p and returns the failures
// joined into one error, or nil when all succeeded.
func Merge(p *project.Project, outcomes []Outcome) error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Criterion, o.Err))
			continue
		}
		if o.Result == nil {
			continue
		}
		p.Apply(o.Criterion, o.Result.Response.Passed, o.Result.Response.Feedbacks)
	}
	return errors.Join(errs...)
}

// Passed reports whether every outcome succeeded with a passing verdict.
func Passed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Err != nil || o.Result == nil || !o.Result.Response.Passed {
			return false
		}
	}
	return true
}
