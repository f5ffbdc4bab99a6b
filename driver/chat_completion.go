// ABOUTME: This file implements the HTTP client for the chat-completion backend
// ABOUTME: Sends role-structured prompts and extracts the first completion choice
package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"rss-firehose/config"
	"rss-firehose/domain"
)

// Message is one entry of the role-structured prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletionClient issues completion requests to the summarization
// backend. It is the only component that talks to the backend.
type ChatCompletionClient struct {
	cfg        config.SummaryConfig
	httpClient *http.Client
	logger     *slog.Logger
}

func NewChatCompletionClient(cfg config.SummaryConfig, timeout time.Duration, logger *slog.Logger) *ChatCompletionClient {
	return &ChatCompletionClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Complete sends one system+user prompt pair and returns the text of the
// first completion choice. Decoding parameters come from configuration and
// are never computed per call.
func (c *ChatCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", domain.ErrBackendNotConfigured
	}

	payload := completionRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		TopP:        c.cfg.TopP,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logger.Debug("requesting completion",
		"endpoint", c.cfg.Endpoint,
		"model", c.cfg.Model,
		"prompt_chars", len(userPrompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Error("backend returned non-200 status",
			"status", resp.Status,
			"body", string(respBody))

		return "", fmt.Errorf("backend request failed with status %s", resp.Status)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read backend response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode backend response: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", domain.ErrNoCompletionChoice
	}

	return parsed.Choices[0].Message.Content, nil
}
