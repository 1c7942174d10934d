/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package assessor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"chainguard.dev/textassert/agents/result"
	"chainguard.dev/textassert/agents/schema"
	"chainguard.dev/textassert/project"
)

const schemaResource = "criterion-response.json"

// ValidationError reports a payload that is not a valid CriterionResponse,
// whether because it is not JSON or because it does not match the schema.
type ValidationError struct {
	// Payload is the text that was validated, after extraction.
	Payload string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid criterion response: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ResponseSchema returns the strict JSON schema of CriterionResponse in the
// generic form sent to the provider.
func ResponseSchema() (map[string]any, error) {
	return schema.Map(schema.ReflectStrict[CriterionResponse]())
}

// validator checks payloads against the compiled response schema.
type validator struct {
	schema *jsonschema.Schema
	nulls  result.NullHandling
}

func newValidator(responseSchema map[string]any, nulls result.NullHandling) (*validator, error) {
	b, err := json.Marshal(responseSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal response schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	s, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &validator{schema: s, nulls: nulls}, nil
}

// Parse extracts the payload from a model reply and validates it.
func (v *validator) Parse(content string) (CriterionResponse, error) {
	return v.Validate(result.Process(content, v.nulls))
}

// Validate decodes payload and checks it against the schema.
func (v *validator) Validate(payload string) (CriterionResponse, error) {
	var resp CriterionResponse

	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return resp, &ValidationError{Payload: payload, Err: fmt.Errorf("not JSON: %w", err)}
	}

	if v.nulls == result.NullPreserve {
		doc = normalizeNullFeedbacks(doc)
	}

	if err := v.schema.Validate(doc); err != nil {
		return resp, &ValidationError{Payload: payload, Err: err}
	}

	// The document already matches the schema, so this cannot fail on shape.
	b, err := json.Marshal(doc)
	if err != nil {
		return resp, &ValidationError{Payload: payload, Err: err}
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		return resp, &ValidationError{Payload: payload, Err: err}
	}
	if resp.Feedbacks == nil {
		resp.Feedbacks = []project.Feedback{}
	}
	return resp, nil
}

// normalizeNullFeedbacks turns an explicit "feedbacks": null into an empty
// list. Other nulls are left for the schema to reject.
func normalizeNullFeedbacks(doc any) any {
	m, ok := doc.(map[string]any)
	if !ok {
		return doc
	}
	if f, present := m["feedbacks"]; present && f == nil {
		m["feedbacks"] = []any{}
	}
	return m
}
