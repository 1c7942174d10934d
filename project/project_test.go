/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
	p := &Project{
		File: "doc.md",
		Criteria: []Criterion{{
			Name:        "grammar",
			Description: "Checks spelling",
			Feedbacks:   []Feedback{{Quote: "teh", Feedback: "typo"}},
		}, {
			Name:        "clarity",
			Description: "Is it clear",
			Passed:      true,
		}},
	}

	tests := []struct {
		name string
		want Criterion
	}{{
		name: "grammar",
		want: p.Criteria[0],
	}, {
		name: "clarity",
		want: p.Criteria[1],
	}, {
		name: "tone",
		want: Criterion{},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Lookup(tt.name)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lookup(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestApply(t *testing.T) {
	p := &Project{
		File: "doc.md",
		Criteria: []Criterion{{
			Name:      "grammar",
			Feedbacks: []Feedback{{Quote: "old", Feedback: "old issue"}},
		}},
	}

	feedbacks := []Feedback{{Quote: "new", Feedback: "new issue"}}
	if !p.Apply("grammar", false, feedbacks) {
		t.Fatal("Apply(grammar): got = false, wanted = true")
	}
	feedbacks[0].Quote = "mutated"

	want := []Feedback{{Quote: "new", Feedback: "new issue"}}
	if diff := cmp.Diff(want, p.Criteria[0].Feedbacks); diff != "" {
		t.Errorf("feedbacks mismatch (-want +got):\n%s", diff)
	}

	if !p.Apply("grammar", true, nil) {
		t.Fatal("Apply(grammar): got = false, wanted = true")
	}
	if !p.Criteria[0].Passed || len(p.Criteria[0].Feedbacks) != 0 {
		t.Errorf("criterion after pass: got = %+v", p.Criteria[0])
	}

	if p.Apply("missing", true, nil) {
		t.Error("Apply(missing): got = true, wanted = false")
	}
}

func TestPassed(t *testing.T) {
	p := &Project{Criteria: []Criterion{{Name: "a", Passed: true}, {Name: "b"}}}
	if p.Passed() {
		t.Error("Passed() with failing criterion: got = true, wanted = false")
	}
	p.Criteria[1].Passed = true
	if !p.Passed() {
		t.Error("Passed() with all passing: got = false, wanted = true")
	}
}

func TestDocumentPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "doc.md")
	tests := []struct {
		name string
		p    Project
		want string
	}{{
		name: "relative with root",
		p:    Project{File: "doc.md", root: "/work/essay"},
		want: filepath.Join("/work/essay", "doc.md"),
	}, {
		name: "relative without root",
		p:    Project{File: "doc.md"},
		want: "doc.md",
	}, {
		name: "absolute",
		p:    Project{File: abs, root: "/elsewhere"},
		want: abs,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.DocumentPath(); got != tt.want {
				t.Errorf("DocumentPath(): got = %q, wanted = %q", got, tt.want)
			}
		})
	}
}
