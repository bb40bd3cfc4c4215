// Package llm wraps the OpenAI-compatible chat-completion API behind a
// single-prompt contract: one text prompt in, generated text out.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// completionTimeout bounds a single completion call end to end.
const completionTimeout = 75 * time.Second

type Client struct {
	api   openaigo.Client
	model string
}

// New builds a completion client. Failure handling is caller-side and
// retry-free, matching the bot's no-retry policy.
func New(baseURL, apiKey, model string) *Client {
	return &Client{
		api: openaigo.NewClient(
			option.WithBaseURL(strings.TrimRight(baseURL, "/")),
			option.WithAPIKey(apiKey),
			option.WithHTTPClient(&http.Client{Timeout: completionTimeout}),
			option.WithMaxRetries(0),
			option.WithRequestTimeout(completionTimeout),
		),
		model: model,
	}
}

// Complete sends prompt as a single user message and returns the first
// choice's text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(c.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
