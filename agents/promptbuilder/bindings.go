/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/json"
	"fmt"
	"strings"
)

// binding produces the text substituted for a placeholder.
type binding interface {
	value() (string, error)
}

type unboundBinding struct {
	name string
}

func (u unboundBinding) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", u.name)
}

// textBinding substitutes a string verbatim.
type textBinding struct {
	val string
}

func (t textBinding) value() (string, error) {
	return t.val, nil
}

// jsonBinding marshals data as indented JSON.
type jsonBinding struct {
	data   any
	indent string
}

func (j jsonBinding) value() (string, error) {
	b, err := json.MarshalIndent(j.data, "", j.indent)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(b), nil
}

// fencedBinding wraps another binding in a markdown code fence.
type fencedBinding struct {
	lang  string
	inner binding
}

func (f fencedBinding) value() (string, error) {
	v, err := f.inner.value()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("```")
	sb.WriteString(f.lang)
	sb.WriteString("\n")
	sb.WriteString(v)
	sb.WriteString("\n```")
	return sb.String(), nil
}

func existsAndUnbound(bindings map[string]binding, name string) error {
	b, exists := bindings[name]
	if !exists {
		return fmt.Errorf("placeholder %q not found in template", name)
	}
	if _, isUnbound := b.(unboundBinding); !isUnbound {
		return fmt.Errorf("placeholder %q already bound", name)
	}
	return nil
}
