/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package assessor

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"chainguard.dev/textassert/agents/agenttrace"
	"chainguard.dev/textassert/agents/metrics"
	"chainguard.dev/textassert/agents/result"
	"chainguard.dev/textassert/project"
)

// schemaName is the json_schema name announced to the provider.
const schemaName = "textassert"

type assessor struct {
	client       openai.Client
	model        string
	baseURL      string
	appTitle     string
	httpClient   *http.Client
	nulls        result.NullHandling
	schema       map[string]any
	validator    *validator
	genaiMetrics *metrics.GenAI
	tracer       agenttrace.Tracer[*Result] // nil = tracer from context
}

// New creates an assessor that sends requests with the settings' OpenRouter
// credential. The returned value is safe for concurrent use and shares one
// connection pool across evaluations.
func New(settings project.Settings, opts ...Option) (Interface, error) {
	if settings.OpenRouterAPIKey == "" {
		return nil, errors.New("openrouter API key cannot be empty")
	}

	a := &assessor{
		model:        DefaultModel,
		baseURL:      DefaultBaseURL,
		appTitle:     DefaultAppTitle,
		nulls:        result.NullStrip,
		genaiMetrics: metrics.NewGenAI("chainguard.dev/textassert"),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	responseSchema, err := ResponseSchema()
	if err != nil {
		return nil, fmt.Errorf("reflecting response schema: %w", err)
	}
	a.schema = responseSchema

	if a.validator, err = newValidator(responseSchema, a.nulls); err != nil {
		return nil, err
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(settings.OpenRouterAPIKey),
		option.WithBaseURL(a.baseURL),
		option.WithMaxRetries(0),
		// NewClient reads OPENAI_ORG_ID and OPENAI_PROJECT_ID; OpenRouter has no use for them.
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
	}
	if a.appTitle != "" {
		clientOpts = append(clientOpts, option.WithHeader("X-Title", a.appTitle))
	}
	if a.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(a.httpClient))
	}
	a.client = openai.NewClient(clientOpts...)

	return a, nil
}

// Evaluate implements Interface.
func (a *assessor) Evaluate(ctx context.Context, criterion project.Criterion, p *project.Project) (res *Result, err error) {
	log := clog.FromContext(ctx).With("criterion", criterion.Name, "model", a.model)

	trace := a.startTrace(ctx, criterion.Name)
	defer func() {
		trace.Complete(res, err)
		outcome := metrics.OutcomeError
		if err == nil {
			outcome = metrics.OutcomeOf(res.Response.Passed)
		}
		a.genaiMetrics.RecordEvaluation(ctx, a.model, criterion.Name, outcome)
	}()

	messages, err := BuildMessages(criterion, p)
	if err != nil {
		return nil, fmt.Errorf("building messages for %q: %w", criterion.Name, err)
	}
	trace.RecordMessages(len(messages))

	log.With("messages", len(messages)).
		With("prompt_length", promptLength(messages)).
		Info("Starting criterion evaluation")

	completion, err := a.client.Chat.Completions.New(trace.Context(), a.params(messages))
	if err != nil {
		return nil, fmt.Errorf("requesting completion for %q: %w", criterion.Name, err)
	}

	if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
		a.genaiMetrics.RecordTokens(ctx, a.model, criterion.Name, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
		trace.RecordTokenUsage(completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	trace.SetMetadata("response_id", completion.ID)
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("evaluating %q: %w", criterion.Name, ErrNoChoices)
	}
	trace.SetMetadata("finish_reason", completion.Choices[0].FinishReason)
	message := completion.Choices[0].Message
	if !message.JSON.Content.Valid() {
		return nil, fmt.Errorf("evaluating %q: %w", criterion.Name, ErrNoContent)
	}
	content := message.Content

	resp, err := a.validator.Parse(content)
	if err != nil {
		log.With("response", content).
			With("error", err).
			Error("Failed to parse criterion response")
		return nil, fmt.Errorf("evaluating %q: %w", criterion.Name, err)
	}

	log.With("passed", resp.Passed).
		With("feedbacks", len(resp.Feedbacks)).
		Info("Completed criterion evaluation")

	return &Result{Response: resp, Criterion: criterion.Name}, nil
}

func (a *assessor) startTrace(ctx context.Context, criterion string) *agenttrace.Trace[*Result] {
	if a.tracer != nil {
		return a.tracer.NewTrace(ctx, criterion, a.model)
	}
	return agenttrace.StartTrace[*Result](ctx, criterion, a.model)
}

func (a *assessor) params(messages []Message) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(a.model),
		Messages: toParams(messages),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   schemaName,
					Strict: openai.Bool(true),
					Schema: a.schema,
				},
			},
		},
	}
}
