/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

var verdictColumns = []string{"Criterion", "Verdict", "Quote", "Feedback"}

// verdictTable accumulates one row per feedback item. Continuation rows of
// the same criterion leave the criterion and verdict cells blank.
type verdictTable struct {
	t *tablewriter.Table
}

func newVerdictTable(w io.Writer) *verdictTable {
	left := tw.CellAlignment{Global: tw.AlignLeft}
	return &verdictTable{t: tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  left,
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row:      tw.CellConfig{Alignment: left},
			MaxWidth: 4 + len(verdictColumns)*maxCellWidth,
			Behavior: tw.Behavior{TrimSpace: tw.Off},
		}),
		tablewriter.WithHeader(verdictColumns),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		// Pipe-delimited rows without top or bottom rules, pasteable as markdown.
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Right: tw.On, Top: tw.Off, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)}
}

// row appends a criterion's first row.
func (v *verdictTable) row(criterion, verdict, quote, feedback string) {
	_ = v.t.Append([]string{criterion, verdict, truncate(quote), truncate(feedback)})
}

// more appends a continuation row for the criterion above.
func (v *verdictTable) more(quote, feedback string) {
	v.row("", "", quote, feedback)
}

func (v *verdictTable) flush() error {
	return v.t.Render()
}
