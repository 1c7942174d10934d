/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// segment is one piece of a parsed template: either literal text or a
// placeholder reference.
type segment struct {
	text        string
	placeholder string
}

// parseTemplate splits a template into literal and placeholder segments.
// Placeholders are written {{name}}; surrounding whitespace inside the braces
// is ignored.
func parseTemplate(template string) ([]segment, error) {
	var segments []segment

	for len(template) > 0 {
		start := strings.Index(template, "{{")
		if start == -1 {
			segments = append(segments, segment{text: template})
			break
		}
		if start > 0 {
			segments = append(segments, segment{text: template[:start]})
		}

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			return nil, errors.New("unclosed placeholder: missing '}}'")
		}
		end += start

		name := strings.TrimSpace(template[start+2 : end])
		if !isValidIdentifier(name) {
			return nil, fmt.Errorf("invalid placeholder identifier %q", name)
		}
		segments = append(segments, segment{placeholder: name})

		template = template[end+2:]
	}

	return segments, nil
}

// render concatenates segments, resolving each placeholder through values.
// Substituted values are never re-scanned for placeholders.
func render(segments []segment, values map[string]string) (string, error) {
	var sb strings.Builder
	for _, s := range segments {
		if s.placeholder == "" {
			sb.WriteString(s.text)
			continue
		}
		v, ok := values[s.placeholder]
		if !ok {
			return "", fmt.Errorf("internal error: placeholder %q has no value", s.placeholder)
		}
		sb.WriteString(v)
	}
	return sb.String(), nil
}

// isValidIdentifier reports whether s starts with a letter and contains only
// letters, digits and underscores.
func isValidIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}
