// Package gemini implements ai.Client using the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"coach-backend/internal/ai"
)

// Client calls the Gemini generateContent endpoint for a fixed model.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient constructs a Gemini client. timeout bounds each generateContent
// call; the provider otherwise has no deadline of its own.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		client:  genaiClient,
		model:   model,
		timeout: timeout,
	}, nil
}

// GenerateContent sends the prompt and returns the response text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(callCtx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &ai.ProviderError{Err: fmt.Errorf("gemini generate: %w", err)}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &ai.ProviderError{Err: ai.ErrEmptyResponse}
	}
	return text, nil
}

var _ ai.Client = (*Client)(nil)
