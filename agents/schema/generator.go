/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// strictReflector produces schemas for structured-output providers that
// enforce strict mode. Every field without omitempty is required and
// additional properties are rejected at every level.
var strictReflector = jsonschema.Reflector{
	ExpandedStruct:            true,
	AllowAdditionalProperties: false,
	DoNotReference:            true,
	Anonymous:                 true,
}

// ReflectStrict allocates a zero value of T and reflects it with the strict
// reflector. The result carries no $schema or $id keywords.
func ReflectStrict[T any]() *jsonschema.Schema {
	var zero T
	s := strictReflector.Reflect(&zero)
	s.Version = ""
	return s
}

// Map converts a schema into the generic map form expected by request
// payloads that take an untyped schema.
func Map(s *jsonschema.Schema) (map[string]any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
