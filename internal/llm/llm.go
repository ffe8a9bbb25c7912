package llm

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation as sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator is the generative-language dependency: single-shot text
// generation, and chat continuation over an explicit turn history. Both are
// blocking round-trips; cancellation comes only from the context.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, history []Message, query string) (string, error)
}
