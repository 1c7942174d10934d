/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"regexp"
	"strings"
)

// fencePattern matches the first fenced code block. The opening fence may
// carry a language tag; the body starts after the first newline and ends at
// the first closing fence.
var fencePattern = regexp.MustCompile("(?s)```.*?\n(.*?)```")

// NullHandling selects how literal "null" text in a model reply is treated.
type NullHandling int

const (
	// NullStrip removes every occurrence of the substring "null", including
	// occurrences inside JSON strings.
	NullStrip NullHandling = iota

	// NullPreserve leaves the payload untouched.
	NullPreserve
)

// String implements fmt.Stringer.
func (n NullHandling) String() string {
	switch n {
	case NullStrip:
		return "strip"
	case NullPreserve:
		return "preserve"
	default:
		return "unknown"
	}
}

// ExtractJSON returns the trimmed body of the first fenced code block in
// responseText. When there is no fenced block the text is returned unchanged.
func ExtractJSON(responseText string) string {
	m := fencePattern.FindStringSubmatch(responseText)
	if m == nil {
		return responseText
	}
	return strings.TrimSpace(m[1])
}

// StripNull removes every literal "null" from s. It is not JSON aware.
func StripNull(s string) string {
	return strings.ReplaceAll(s, "null", "")
}

// Process extracts the payload from a model reply and applies the requested
// null handling.
func Process(responseText string, nulls NullHandling) string {
	payload := ExtractJSON(responseText)
	if nulls == NullStrip {
		payload = StripNull(payload)
	}
	return payload
}
