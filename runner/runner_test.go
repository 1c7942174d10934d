/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chainguard.dev/textassert/agents/assessor"
	"chainguard.dev/textassert/project"
)

type fakeEvaluator struct {
	delay    time.Duration
	verdicts map[string]bool
	failures map[string]error

	inFlight atomic.Int32
	peak     atomic.Int32

	mu   sync.Mutex
	seen map[string][]project.Feedback
}

func (f *fakeEvaluator) Evaluate(_ context.Context, c project.Criterion, p *project.Project) (*assessor.Result, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	if f.seen == nil {
		f.seen = map[string][]project.Feedback{}
	}
	f.seen[c.Name] = p.Lookup(c.Name).Feedbacks
	f.mu.Unlock()

	time.Sleep(f.delay)

	if err := f.failures[c.Name]; err != nil {
		return nil, err
	}
	resp := assessor.CriterionResponse{Feedbacks: []project.Feedback{}, Passed: f.verdicts[c.Name]}
	if !resp.Passed {
		resp.Feedbacks = []project.Feedback{{Quote: c.Name, Feedback: "needs work"}}
	}
	return &assessor.Result{Response: resp, Criterion: c.Name}, nil
}

func testProject() *project.Project {
	return &project.Project{
		File: "doc.md",
		Criteria: []project.Criterion{
			{Name: "grammar", Feedbacks: []project.Feedback{{Quote: "teh", Feedback: "typo"}}},
			{Name: "clarity"},
			{Name: "tone"},
			{Name: "structure"},
		},
	}
}

func TestRun(t *testing.T) {
	boom := errors.New("boom")
	ev := &fakeEvaluator{
		delay:    10 * time.Millisecond,
		verdicts: map[string]bool{"grammar": true, "clarity": false, "structure": true},
		failures: map[string]error{"tone": boom},
	}
	p := testProject()

	outcomes := Run(context.Background(), ev, p)

	require.Len(t, outcomes, 4)
	require.Equal(t, []string{"grammar", "clarity", "tone", "structure"}, names(outcomes))
	require.True(t, outcomes[0].Result.Response.Passed)
	require.False(t, outcomes[1].Result.Response.Passed)
	require.ErrorIs(t, outcomes[2].Err, boom)
	require.Nil(t, outcomes[2].Result)
	require.NoError(t, outcomes[3].Err)
	require.False(t, Passed(outcomes))

	// Stored feedback is visible to the evaluator.
	require.Equal(t, []project.Feedback{{Quote: "teh", Feedback: "typo"}}, ev.seen["grammar"])
	require.Greater(t, ev.peak.Load(), int32(1), "evaluations should overlap")
}

func TestRunConcurrencyLimit(t *testing.T) {
	ev := &fakeEvaluator{delay: 20 * time.Millisecond}

	outcomes := Run(context.Background(), ev, testProject(), WithConcurrency(1))

	require.Len(t, outcomes, 4)
	require.Equal(t, int32(1), ev.peak.Load())
}

func TestRunSelection(t *testing.T) {
	ev := &fakeEvaluator{verdicts: map[string]bool{"tone": true}}

	outcomes := Run(context.Background(), ev, testProject(), WithCriteria("tone", "missing", "grammar"))

	require.Equal(t, []string{"tone", "missing", "grammar"}, names(outcomes))
	require.NoError(t, outcomes[0].Err)
	require.ErrorIs(t, outcomes[1].Err, ErrUnknownCriterion)
	require.NoError(t, outcomes[2].Err)
	require.NotContains(t, ev.seen, "missing")
}

func TestMerge(t *testing.T) {
	boom := errors.New("boom")
	ev := &fakeEvaluator{
		verdicts: map[string]bool{"grammar": true, "structure": true},
		failures: map[string]error{"tone": boom},
	}
	p := testProject()
	p.Criteria[2].Passed = true // prior verdict survives a failed evaluation

	err := Merge(p, Run(context.Background(), ev, p))

	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "tone: boom")

	require.True(t, p.Criteria[0].Passed)
	require.Empty(t, p.Criteria[0].Feedbacks)
	require.False(t, p.Criteria[1].Passed)
	require.Equal(t, []project.Feedback{{Quote: "clarity", Feedback: "needs work"}}, p.Criteria[1].Feedbacks)
	require.True(t, p.Criteria[2].Passed)
	require.True(t, p.Criteria[3].Passed)
}

func TestMergeAllSucceeded(t *testing.T) {
	ev := &fakeEvaluator{verdicts: map[string]bool{"grammar": true, "clarity": true, "tone": true, "structure": true}}
	p := testProject()

	outcomes := Run(context.Background(), ev, p)

	require.NoError(t, Merge(p, outcomes))
	require.True(t, Passed(outcomes))
	require.True(t, p.Passed())
}

func names(outcomes []Outcome) []string {
	out := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, o.Criterion)
	}
	return out
}
