package llm

import (
	"context"
	"errors"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// ClaudeClient implements Generator over the official Anthropic SDK,
// the SDK-style form of the backend.
type ClaudeClient struct {
	client    sdk.Client
	maxTokens int64
}

// NewClaude creates an SDK-backed Generator.
func NewClaude(apiKey string) *ClaudeClient {
	return &ClaudeClient{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		maxTokens: 1024,
	}
}

// Generate submits one prompt as a single user message and concatenates
// the text blocks of the reply. SDK API errors are mapped to *APIError
// so the caller's auth/rate-limit classification works across backends.
func (c *ClaudeClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apierr *sdk.Error
		if errors.As(err, &apierr) {
			return "", &APIError{StatusCode: apierr.StatusCode, Body: apierr.Error()}
		}
		return "", eris.Wrap(err, "llm: anthropic create message")
	}

	var sb strings.Builder
	for _, b := range msg.Content {
		if b.Type == "" || b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}
