/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package assessor evaluates a document against one named criterion using an
OpenAI-compatible chat-completion endpoint (OpenRouter by default).

Each evaluation is a single request with no retries:

 1. BuildMessages renders the system prompt for the criterion, replays any
    feedback the project stored for it as an assistant turn, and reads the
    document as the user turn.
 2. The request asks for a strict json_schema response format whose schema is
    reflected from CriterionResponse.
 3. The first fenced code block of the reply is extracted (see package
    result) and validated against the same schema. Any mismatch is reported
    as a *ValidationError.

Usage:

	a, err := assessor.New(settings,
		assessor.WithModel("google/gemini-2.0-flash-thinking-exp:free"),
	)
	if err != nil {
		return err
	}
	res, err := a.Evaluate(ctx, criterion, proj)

An Interface value is safe for concurrent use; evaluate many criteria by
calling Evaluate from separate goroutines.
*/
package assessor
