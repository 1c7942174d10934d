/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chainguard.dev/textassert/project"
)

const projectYAML = `file: essay.md
criteria:
  - name: grammar
    description: Checks spelling
  - name: clarity
    description: Is the text easy to follow
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "essay.md"), []byte("This text is missspelled.\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	path := filepath.Join(dir, "textassert.yaml")
	if err := os.WriteFile(path, []byte(projectYAML), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// provider fails grammar and passes every other criterion.
func provider(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		content := `{"feedbacks": [], "passed": true}`
		if strings.Contains(string(b), `\"grammar\"`) {
			content = "```json\n{\"feedbacks\": [{\"quote\": \"This text is missspelled.\", \"feedback\": \"Extra s\"}], \"passed\": false}\n```"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "gen-1",
			"object":  "chat.completion",
			"model":   "test",
			"choices": []any{map[string]any{"index": 0, "message": map[string]any{"role": "assistant", "content": content}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	path := writeFixture(t)
	srv := provider(t)

	var out bytes.Buffer
	passed, err := run(context.Background(), config{Project: path, Model: "test", BaseURL: srv.URL}, nil, &out)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if passed {
		t.Error("run(): got = passed, wanted failure")
	}
	if !strings.Contains(out.String(), "1/2 criteria passed") {
		t.Errorf("report: got = %q, wanted summary", out.String())
	}

	p, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g := p.Lookup("grammar"); g.Passed || len(g.Feedbacks) != 1 || g.Feedbacks[0].Feedback != "Extra s" {
		t.Errorf("saved grammar: got = %+v, wanted failed with one feedback", g)
	}
	if c := p.Lookup("clarity"); !c.Passed {
		t.Errorf("saved clarity: got = %+v, wanted passed", c)
	}
}

func TestRunSelection(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	path := writeFixture(t)
	srv := provider(t)

	var out bytes.Buffer
	passed, err := run(context.Background(), config{Project: path, Model: "test", BaseURL: srv.URL, Concurrency: 1}, []string{"clarity"}, &out)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !passed {
		t.Errorf("run(clarity): got = failed, wanted passed\n%s", out.String())
	}
	if strings.Contains(out.String(), "grammar") {
		t.Errorf("report: got = %q, wanted only clarity", out.String())
	}
}

func TestRunDryRun(t *testing.T) {
	path := writeFixture(t)

	var out bytes.Buffer
	passed, err := run(context.Background(), config{Project: path, DryRun: true}, []string{"grammar"}, &out)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !passed {
		t.Error("run() dry run: got = failed, wanted passed")
	}
	for _, want := range []string{"=== grammar ===", "--- system ---", "--- user ---", "This text is missspelled."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("dry run output missing %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "=== clarity ===") {
		t.Errorf("dry run output: got clarity, wanted only grammar")
	}

	if _, err := run(context.Background(), config{Project: path, DryRun: true}, []string{"tone"}, &out); err == nil {
		t.Error("run() dry run with unknown criterion: got = nil, wanted error")
	}
}

func TestRunMissingProject(t *testing.T) {
	if _, err := run(context.Background(), config{Project: filepath.Join(t.TempDir(), "missing.yaml")}, nil, io.Discard); err == nil {
		t.Error("run() with missing project: got = nil, wanted error")
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	if err := loadDotenv(filepath.Join(dir, ".env")); err != nil {
		t.Errorf("loadDotenv(missing) error = %v", err)
	}

	t.Setenv("TEXTASSERT_MODEL", "from-env")
	t.Setenv("OPENROUTER_API_KEY", "")
	os.Unsetenv("OPENROUTER_API_KEY")
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("OPENROUTER_API_KEY=from-file\nTEXTASSERT_MODEL=from-file\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := loadDotenv(path); err != nil {
		t.Fatalf("loadDotenv() error = %v", err)
	}
	if got := os.Getenv("OPENROUTER_API_KEY"); got != "from-file" {
		t.Errorf("OPENROUTER_API_KEY: got = %q, wanted = from-file", got)
	}
	if got := os.Getenv("TEXTASSERT_MODEL"); got != "from-env" {
		t.Errorf("TEXTASSERT_MODEL: got = %q, wanted = from-env", got)
	}
}
