/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package assessor

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"chainguard.dev/textassert/agents/agenttrace"
	"chainguard.dev/textassert/agents/metrics"
	"chainguard.dev/textassert/agents/result"
)

const (
	// DefaultModel is the OpenRouter model used unless WithModel is given.
	DefaultModel = "google/gemini-2.0-flash-thinking-exp:free"

	// DefaultBaseURL is the OpenRouter OpenAI-compatible API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1/"

	// DefaultAppTitle is sent as X-Title for OpenRouter attribution.
	DefaultAppTitle = "textassert"
)

// Option is a functional option for configuring the assessor
type Option func(*assessor) error

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(a *assessor) error {
		if strings.TrimSpace(model) == "" {
			return errors.New("model cannot be empty")
		}
		a.model = model
		return nil
	}
}

// WithBaseURL overrides the API root; chat completions are posted to
// <base>/chat/completions.
func WithBaseURL(base string) Option {
	return func(a *assessor) error {
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("parsing base URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("base URL %q must be http or https", base)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		a.baseURL = u.String()
		return nil
	}
}

// WithAppTitle overrides the X-Title header.
func WithAppTitle(title string) Option {
	return func(a *assessor) error {
		a.appTitle = title
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for provider requests.
func WithHTTPClient(client *http.Client) Option {
	return func(a *assessor) error {
		if client == nil {
			return errors.New("http client cannot be nil")
		}
		a.httpClient = client
		return nil
	}
}

// WithNullHandling selects how literal "null" in replies is treated.
// The default is result.NullStrip.
func WithNullHandling(nulls result.NullHandling) Option {
	return func(a *assessor) error {
		switch nulls {
		case result.NullStrip, result.NullPreserve:
			a.nulls = nulls
			return nil
		default:
			return fmt.Errorf("unknown null handling %d", nulls)
		}
	}
}

// WithAttributeEnricher sets a custom attribute enricher for metrics.
// If not provided, metrics only carry the base attributes (model, criterion).
func WithAttributeEnricher(enricher metrics.AttributeEnricher) Option {
	return func(a *assessor) error {
		a.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}

// WithTracer sets the tracer that receives evaluation traces. Without it the
// tracer is taken from the context of each call.
func WithTracer(tracer agenttrace.Tracer[*Result]) Option {
	return func(a *assessor) error {
		if tracer == nil {
			return errors.New("tracer cannot be nil")
		}
		a.tracer = tracer
		return nil
	}
}
