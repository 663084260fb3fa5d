package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/linxiao/corpora/internal/config"
)

// Client is a minimal chat-completions client for OpenAI-compatible
// providers. It speaks plain HTTP and maps provider failures onto the
// package's error taxonomy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a client from the AI configuration. The request timeout
// applies per HTTP call.
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Completion parameterizes one chat-completion call.
type Completion struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Complete sends one chat-completion request and returns the raw text of the
// first choice. Error mapping: 401 → ErrProviderAuth, 429 → ErrRateLimited,
// 5xx and network failures → ErrProviderUnavailable, client-side timeout →
// ErrTimeout, empty/undecodable body → ErrMalformedResponse.
func (c *Client) Complete(ctx context.Context, comp Completion) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: comp.System},
			{Role: "user", Content: comp.User},
		},
		Temperature: comp.Temperature,
		MaxTokens:   comp.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", fmt.Errorf("chat completion: %w", ErrTimeout)
		}
		return "", fmt.Errorf("chat completion: %v: %w", err, ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", fmt.Errorf("chat completion: status %d: %w", resp.StatusCode, ErrProviderAuth)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("chat completion: status %d: %w", resp.StatusCode, ErrRateLimited)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("chat completion: status %d: %w", resp.StatusCode, ErrProviderUnavailable)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("chat completion: unexpected status %d: %w", resp.StatusCode, ErrMalformedResponse)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %v: %w", err, ErrProviderUnavailable)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %v: %w", err, ErrMalformedResponse)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion: %w", ErrMalformedResponse)
	}

	return parsed.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// StripCodeFences removes Markdown ```json fences the model sometimes wraps
// around its JSON payload.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
