package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/avikram/aeroscout/internal/ratelimit"
)

const limiterKey = "openai"

// OpenAI implements Generator over the chat completions API. Chat history is
// replayed in full on every call, which keeps the conversation handle a plain
// serializable message list.
type OpenAI struct {
	client  openai.Client
	model   openai.ChatModel
	limiter *ratelimit.DependencyLimiter
}

type OpenAIOption func(*OpenAI)

func WithModel(model string) OpenAIOption {
	return func(o *OpenAI) {
		o.model = openai.ChatModel(model)
	}
}

func WithGeneratorLimiter(limiter *ratelimit.DependencyLimiter) OpenAIOption {
	return func(o *OpenAI) {
		o.limiter = limiter
	}
}

func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAI {
	o := &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModelGPT4oMini,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
}

func (o *OpenAI) Chat(ctx context.Context, history []Message, query string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, m := range history {
		if m.Role == RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(query))
	return o.complete(ctx, messages)
}

func (o *OpenAI) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx, limiterKey); err != nil {
			return "", err
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    o.model,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
