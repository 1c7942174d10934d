/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package assessor

import (
	"fmt"
	"os"

	"chainguard.dev/textassert/agents/promptbuilder"
	"chainguard.dev/textassert/project"
)

// systemPrompt instructs the model to judge one aspect of the text. The JSON
// examples keep nested braces on separate lines so they are not mistaken for
// placeholders.
var systemPrompt = promptbuilder.MustNewPrompt(`Your job is to evaluate a text in regards to a specific aspect. The aspect is: "{{name}}" and is described as follows: "{{description}}".
Judge the text strictly against this aspect and nothing else.
When you find issues with the text (and only if there are issues in regards to your aspect) quote the offending sentence verbatim and then give a short explanation of why it is an issue.
At the end provide a final judgement of whether the text, as a whole, passes the criterion or not.
You might see feedback from previous iterations of the text. If so check whether the points raised are still valid.
Reevaluate the entire text as there might have been new sections added.
Be concise in your explanations.
If you find no issues, return an empty list of feedbacks.

Example text:
This text is missspelled.
And this sentence is missing punctuation at the end

Example response (when judging grammar and spelling):
` + "```json" + `
{
    "feedbacks": [
        {
            "quote": "This text is missspelled.",
            "feedback": "Missspelled has an extra 's'"
        },
        {
            "quote": "And this sentence is missing punctuation at the end",
            "feedback": "Missing punctuation at the end of the sentence"
        }
    ],
    "passed": false
}
` + "```" + `

Example response (when judging clarity):
` + "```json" + `
{
    "feedbacks": [],
    "passed": true
}
` + "```" + `

Again, evaluate the text in regards to the following aspect: {{name}}
This aspect is described as follows: {{description}}
`)

// previousFeedbackPrompt replays stored feedback to the model.
var previousFeedbackPrompt = promptbuilder.MustNewPrompt(`Feedback from previous iteration:
{{feedbacks}}
`)

// criterionPrompt binds a criterion's name and description.
type criterionPrompt struct {
	criterion project.Criterion
}

func (c criterionPrompt) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	p, err := p.BindText("name", c.criterion.Name)
	if err != nil {
		return nil, err
	}
	return p.BindText("description", c.criterion.Description)
}

// SystemPrompt renders the system instructions for criterion.
func SystemPrompt(criterion project.Criterion) (string, error) {
	p, err := systemPrompt.Bind(criterionPrompt{criterion: criterion})
	if err != nil {
		return "", fmt.Errorf("binding system prompt: %w", err)
	}
	return p.Build()
}

// PreviousFeedback renders the feedback stored in p for the criterion with
// the same name. It reports false when there is nothing to replay.
func PreviousFeedback(criterion project.Criterion, p *project.Project) (string, bool, error) {
	stored := p.Lookup(criterion.Name)
	if len(stored.Feedbacks) == 0 {
		return "", false, nil
	}
	bound, err := previousFeedbackPrompt.BindFencedJSON("feedbacks", stored.Feedbacks, "    ")
	if err != nil {
		return "", false, fmt.Errorf("binding previous feedback: %w", err)
	}
	text, err := bound.Build()
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// UserContent returns the current contents of the project's document.
func UserContent(p *project.Project) (string, error) {
	b, err := os.ReadFile(p.DocumentPath())
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(b), nil
}
