/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package result recovers structured JSON payloads from model replies.

Even when a provider is asked for schema-constrained output, some models echo
the payload inside a markdown code fence:

	Here is my assessment:
	```json
	{"feedbacks": [], "passed": true}
	```

ExtractJSON returns the body of the first fenced block (trimmed), or the whole
reply when no fence is present. A fence is recognised when the opening
backticks are followed by an optional language tag and a newline; the body
runs up to the first closing fence.

# Null handling

Process combines extraction with a NullHandling policy. NullStrip removes
every literal "null" substring from the payload, which mirrors the behaviour
evaluators have historically depended on but can corrupt text that
legitimately contains the word (for example "annulled"). NullPreserve leaves
the payload as is and leaves null handling to the schema layer.
*/
package result
