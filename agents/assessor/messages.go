/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package assessor

import (
	"github.com/openai/openai-go"

	"chainguard.dev/textassert/project"
)

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Message is one entry of the chat sent to the provider.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// BuildMessages assembles the conversation for evaluating criterion against
// the project's document: the system prompt, the previous feedback as an
// assistant turn when there is any, then the document as the user turn.
// The document is read on every call.
func BuildMessages(criterion project.Criterion, p *project.Project) ([]Message, error) {
	system, err := SystemPrompt(criterion)
	if err != nil {
		return nil, err
	}
	user, err := UserContent(p)
	if err != nil {
		return nil, err
	}
	previous, ok, err := PreviousFeedback(criterion, p)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, 3)
	messages = append(messages, Message{Role: RoleSystem, Content: system})
	if ok {
		messages = append(messages, Message{Role: RoleAssistant, Content: previous})
	}
	messages = append(messages, Message{Role: RoleUser, Content: user})
	return messages, nil
}

func toParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}
	return params
}

func promptLength(messages []Message) int {
	n := 0
	for _, m := range messages {
		n += len(m.Content)
	}
	return n
}
