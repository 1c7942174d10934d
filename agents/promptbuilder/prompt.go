/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"maps"
	"slices"
)

// stringLiteral only accepts untyped string constants at call sites.
type stringLiteral string

// Prompt is an immutable template with named placeholders.
type Prompt struct {
	segments []segment
	bindings map[string]binding
}

// NewPrompt parses a template literal.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	segments, err := parseTemplate(string(template))
	if err != nil {
		return nil, err
	}

	bindings := make(map[string]binding)
	for _, s := range segments {
		if s.placeholder != "" {
			bindings[s.placeholder] = unboundBinding{name: s.placeholder}
		}
	}

	return &Prompt{
		segments: segments,
		bindings: bindings,
	}, nil
}

// Placeholders returns the sorted names of every placeholder in the template.
func (p *Prompt) Placeholders() []string {
	return slices.Sorted(maps.Keys(p.bindings))
}

func (p *Prompt) with(name string, b binding) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	np := &Prompt{
		segments: p.segments,
		bindings: maps.Clone(p.bindings),
	}
	np.bindings[name] = b
	return np, nil
}

// BindText binds runtime text verbatim. Use it for content the model must see
// exactly as written, such as a criterion description or the document under
// evaluation. Placeholders inside value are not expanded.
func (p *Prompt) BindText(name, value string) (*Prompt, error) {
	return p.with(name, textBinding{val: value})
}

// BindFencedJSON binds data marshaled as JSON inside a ```json fence, using
// indent for each nesting level.
func (p *Prompt) BindFencedJSON(name string, data any, indent string) (*Prompt, error) {
	return p.with(name, fencedBinding{
		lang:  "json",
		inner: jsonBinding{data: data, indent: indent},
	})
}

// Bind applies a Bindable to the prompt.
func (p *Prompt) Bind(b Bindable) (*Prompt, error) {
	return b.Bind(p)
}

// Build renders the prompt. It fails if any placeholder is unbound.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		v, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = v
	}
	return render(p.segments, values)
}
