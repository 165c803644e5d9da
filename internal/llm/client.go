package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ChatClient produces answers via the OpenAI chat completions API.
type ChatClient struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewChatClient creates a new chat client. Temperature is fixed low so
// answers stay close to the retrieved context. Extra request options are
// passed through to the underlying OpenAI client.
func NewChatClient(apiKey, model string, opts ...option.RequestOption) *ChatClient {
	return &ChatClient{
		client:      openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...),
		model:       model,
		temperature: 0.2,
	}
}

// Complete sends a system + user prompt pair and returns the assistant reply.
func (c *ChatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
