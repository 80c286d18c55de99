package gpt

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fedutinova/careerchat/internal/common"
	"github.com/sashabaranov/go-openai"
)

const DefaultModel = "o3-mini"

type Client struct {
	openAI *openai.Client
	model  string
}

type CompletionResult struct {
	Content          string
	Model            string
	TokensUsed       int
	ProcessingTimeMs int
}

// NewClient builds a client for the OpenAI chat completions API. baseURL
// overrides the API root for OpenAI-compatible gateways.
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		openAI: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the first
// choice. It makes exactly one HTTP call and never retries.
func (c *Client) Complete(ctx context.Context, prompt string) (*CompletionResult, error) {
	start := time.Now()

	slog.Info("sending request to OpenAI",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := c.openAI.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		slog.Error("OpenAI API error", "error", err, "model", c.model)
		return nil, common.WrapUpstream("OpenAI API error", err)
	}

	if len(resp.Choices) == 0 {
		return nil, common.WrapUpstream("OpenAI API error", errors.New("no choices in response"))
	}

	responseContent := resp.Choices[0].Message.Content
	responsePreview := responseContent
	if len(responseContent) > 200 {
		responsePreview = responseContent[:200] + "..."
	}
	processingTime := time.Since(start)

	slog.Info("received response from OpenAI",
		"model", resp.Model,
		"tokens_used", resp.Usage.TotalTokens,
		"response_length", len(responseContent),
		"processing_time_ms", processingTime.Milliseconds(),
		"response_preview", responsePreview)

	return &CompletionResult{
		Content:          responseContent,
		Model:            resp.Model,
		TokensUsed:       resp.Usage.TotalTokens,
		ProcessingTimeMs: int(processingTime.Milliseconds()),
	}, nil
}
