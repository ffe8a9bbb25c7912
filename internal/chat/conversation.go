// Package chat answers follow-up questions scoped to the offers of the last
// search, behind a keyword gate.
package chat

import (
	"context"

	"github.com/avikram/aeroscout/internal/llm"
)

// Conversation is the handle to a seeded chat: the full turn history,
// replayed on every follow-up call. It serializes cleanly so session stores
// can persist it as-is.
type Conversation struct {
	Messages []llm.Message `json:"messages"`
}

// Start seeds a conversation with the summary prompt/reply pair, so later
// questions can reference "these flights" without re-sending offer data.
func Start(seedPrompt, seedReply string) *Conversation {
	return &Conversation{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: seedPrompt},
			{Role: llm.RoleAssistant, Content: seedReply},
		},
	}
}

// Error tags a chat dependency failure, distinct from a gate rejection.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "chat reply failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Responder struct {
	generator llm.Generator
	gate      Gate
}

func NewResponder(generator llm.Generator, gate Gate) *Responder {
	return &Responder{generator: generator, gate: gate}
}

// Ask runs the gate and, when the query passes, requests the next assistant
// turn and appends both turns to the conversation. Rejected queries return
// the fixed refusal with rejected=true and never touch the dependency;
// rejections and failures leave the conversation history unchanged.
func (r *Responder) Ask(ctx context.Context, conv *Conversation, query string) (reply string, rejected bool, err error) {
	if !r.gate.Allow(query) {
		return RefusalMessage, true, nil
	}

	reply, chatErr := r.generator.Chat(ctx, conv.Messages, query)
	if chatErr != nil {
		return "", false, &Error{Err: chatErr}
	}

	conv.Messages = append(conv.Messages,
		llm.Message{Role: llm.RoleUser, Content: query},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
	return reply, false, nil
}
