// Package llm wraps the chat-completion provider. Groq exposes an
// OpenAI-compatible API, so the standard client works with a custom base URL.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/mindhaven/mindhaven-backend/internal/config"
)

const (
	completionTemperature = 0.3
	completionMaxTokens   = 512
)

// Message is one role-tagged entry in a completion request
type Message struct {
	Role    string
	Content string
}

// Completer produces an assistant reply from an ordered message list
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Client implements Completer against an OpenAI-compatible endpoint
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new chat-completion client
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("LLM API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

// Complete performs a non-streaming completion
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	}

	for i, msg := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
