/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"path/filepath"
	"slices"
)

// Feedback is a single issue raised against the document: a verbatim excerpt
// and the explanation of why it violates the criterion.
type Feedback struct {
	Quote    string `json:"quote" yaml:"quote" jsonschema:"description=Verbatim excerpt of the evaluated text"`
	Feedback string `json:"feedback" yaml:"feedback" jsonschema:"description=Concise explanation of the issue found in the excerpt"`
}

// Criterion is a named evaluation axis together with its last known verdict.
type Criterion struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Passed      bool       `json:"passed" yaml:"passed"`
	Feedbacks   []Feedback `json:"feedbacks" yaml:"feedbacks,omitempty"`
}

// Project is the evaluation subject.
type Project struct {
	// File is the path of the document under evaluation, as written in the
	// project file.
	File string `yaml:"file"`

	Criteria []Criterion `yaml:"criteria"`

	// root is the directory relative paths are resolved against.
	root string
}

// DocumentPath returns the path of the document under evaluation.
func (p *Project) DocumentPath() string {
	if p.File == "" || filepath.IsAbs(p.File) || p.root == "" {
		return p.File
	}
	return filepath.Join(p.root, p.File)
}

// Lookup returns the stored criterion with the given name, or the zero
// Criterion when the project has none. Projects carry a handful of criteria,
// so this is a plain scan.
func (p *Project) Lookup(name string) Criterion {
	for _, c := range p.Criteria {
		if c.Name == name {
			return c
		}
	}
	return Criterion{}
}

// Apply records the outcome of one evaluation round for the named criterion.
// It reports whether the criterion exists.
func (p *Project) Apply(name string, passed bool, feedbacks []Feedback) bool {
	for i := range p.Criteria {
		if p.Criteria[i].Name != name {
			continue
		}
		p.Criteria[i].Passed = passed
		p.Criteria[i].Feedbacks = slices.Clone(feedbacks)
		return true
	}
	return false
}

// Passed reports whether every criterion of the project passed.
func (p *Project) Passed() bool {
	for _, c := range p.Criteria {
		if !c.Passed {
			return false
		}
	}
	return true
}
