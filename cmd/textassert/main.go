/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Command textassert evaluates a document against the criteria of a project
// file and records the verdicts back into it.
//
//	OPENROUTER_API_KEY=... textassert [criterion...]
//
// With no arguments every criterion is evaluated. The exit status is non-zero
// when any criterion failed or could not be evaluated.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"chainguard.dev/textassert/agents/agenttrace"
	"chainguard.dev/textassert/agents/assessor"
	"chainguard.dev/textassert/agents/result"
	"chainguard.dev/textassert/project"
	"chainguard.dev/textassert/report"
	"chainguard.dev/textassert/runner"
)

type config struct {
	Project      string `env:"TEXTASSERT_PROJECT,default=textassert.yaml"`
	Model        string `env:"TEXTASSERT_MODEL,default=google/gemini-2.0-flash-thinking-exp:free"`
	BaseURL      string `env:"TEXTASSERT_BASE_URL,default=https://openrouter.ai/api/v1/"`
	Concurrency  int    `env:"TEXTASSERT_CONCURRENCY,default=0"`
	DryRun       bool   `env:"TEXTASSERT_DRY_RUN,default=false"`
	PreserveNull bool   `env:"TEXTASSERT_PRESERVE_NULL,default=false"`
	Verbose      bool   `env:"TEXTASSERT_VERBOSE,default=false"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := loadDotenv(".env"); err != nil {
		clog.FatalContextf(ctx, "loading .env: %v", err)
	}

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	ctx = clog.WithLogger(ctx, clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	passed, err := run(ctx, cfg, os.Args[1:], os.Stdout)
	if err != nil {
		clog.FatalContextf(ctx, "%v", err)
	}
	if !passed {
		cancel()
		os.Exit(1)
	}
}

// loadDotenv adds variables from path to the environment without overriding
// ones already set. A missing file is not an error.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// run evaluates the selected criteria and reports whether all passed. Errors
// from individual evaluations are reported in the table and make run report
// false; the returned error covers failures that stop the whole run.
func run(ctx context.Context, cfg config, args []string, w io.Writer) (bool, error) {
	p, err := project.Load(cfg.Project)
	if err != nil {
		return false, fmt.Errorf("loading project: %w", err)
	}

	ctx = agenttrace.WithEvaluationContext(ctx, agenttrace.EvaluationContext{
		Project:  strings.TrimSuffix(filepath.Base(cfg.Project), filepath.Ext(cfg.Project)),
		Document: p.DocumentPath(),
	})

	if cfg.DryRun {
		return true, dryRun(p, args, w)
	}

	settings, err := project.LoadSettings(ctx)
	if err != nil {
		return false, fmt.Errorf("loading settings: %w", err)
	}

	nulls := result.NullStrip
	if cfg.PreserveNull {
		nulls = result.NullPreserve
	}
	a, err := assessor.New(settings,
		assessor.WithModel(cfg.Model),
		assessor.WithBaseURL(cfg.BaseURL),
		assessor.WithNullHandling(nulls),
		assessor.WithAttributeEnricher(agenttrace.EnrichFromContext),
	)
	if err != nil {
		return false, fmt.Errorf("creating assessor: %w", err)
	}

	outcomes := runner.Run(ctx, a, p,
		runner.WithConcurrency(cfg.Concurrency),
		runner.WithCriteria(args...),
	)

	if err := runner.Merge(p, outcomes); err != nil {
		clog.FromContext(ctx).Warnf("Some criteria could not be evaluated: %v", err)
	}
	if err := p.Save(cfg.Project); err != nil {
		return false, fmt.Errorf("saving project: %w", err)
	}

	return report.Render(w, outcomes), nil
}

// dryRun prints the messages that would be sent for each selected criterion.
func dryRun(p *project.Project, args []string, w io.Writer) error {
	criteria := p.Criteria
	if len(args) > 0 {
		criteria = make([]project.Criterion, 0, len(args))
		for _, name := range args {
			c := p.Lookup(name)
			if c.Name == "" {
				return fmt.Errorf("%w: %q", runner.ErrUnknownCriterion, name)
			}
			criteria = append(criteria, c)
		}
	}

	for _, c := range criteria {
		messages, err := assessor.BuildMessages(c, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "=== %s ===\n", c.Name)
		for _, m := range messages {
			fmt.Fprintf(w, "--- %s ---\n%s\n", m.Role, m.Content)
		}
	}
	return nil
}
