/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders evaluation outcomes as a terminal table.
package report

import (
	"fmt"
	"io"
	"strings"

	"chainguard.dev/textassert/runner"
)

const (
	verdictPass  = "PASS"
	verdictFail  = "FAIL"
	verdictError = "ERROR"

	maxCellWidth = 60
)

// Render writes one table row per feedback item, or one row for a criterion
// without feedback, followed by a summary line. Failed evaluations show their
// error in the feedback column. It reports whether every criterion passed.
func Render(w io.Writer, outcomes []runner.Outcome) bool {
	table := newVerdictTable(w)

	passed := 0
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			table.row(o.Criterion, verdictError, "", o.Err.Error())
			continue
		case o.Result == nil:
			table.row(o.Criterion, verdictError, "", "no result")
			continue
		}

		resp := o.Result.Response
		verdict := verdictFail
		if resp.Passed {
			verdict = verdictPass
			passed++
		}

		if len(resp.Feedbacks) == 0 {
			table.row(o.Criterion, verdict, "", "")
			continue
		}
		table.row(o.Criterion, verdict, resp.Feedbacks[0].Quote, resp.Feedbacks[0].Feedback)
		for _, f := range resp.Feedbacks[1:] {
			table.more(f.Quote, f.Feedback)
		}
	}
	_ = table.flush()

	fmt.Fprintf(w, "\n%d/%d criteria passed\n", passed, len(outcomes))
	return passed == len(outcomes)
}

// truncate flattens s to one line and shortens it to maxCellWidth runes.
func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-3]) + "..."
}
