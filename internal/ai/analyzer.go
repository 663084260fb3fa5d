package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	defaultAnalysisTemperature = 0.3
	defaultAnalysisMaxTokens   = 4000

	// parseRetryBackoff delays retries after an undecodable payload;
	// transientRetryBackoff delays retries after provider unavailability.
	parseRetryBackoff     = 1 * time.Second
	transientRetryBackoff = 2 * time.Second
)

// Analyzer runs the full text-analysis pipeline: one chat completion,
// markdown-fence stripping, JSON parsing with a bounded retry loop, and
// normalization of the untrusted payload.
type Analyzer struct {
	client      *Client
	log         *slog.Logger
	maxRetries  int
	temperature float64
	maxTokens   int
}

// NewAnalyzer creates an analyzer. maxRetries counts additional attempts
// after the first, so maxRetries=2 means at most three requests. Zero
// temperature and maxTokens fall back to the pipeline defaults.
func NewAnalyzer(client *Client, log *slog.Logger, maxRetries int) *Analyzer {
	return &Analyzer{
		client:      client,
		log:         log.With(slog.String("component", "ai_analyzer")),
		maxRetries:  maxRetries,
		temperature: defaultAnalysisTemperature,
		maxTokens:   defaultAnalysisMaxTokens,
	}
}

// WithSampling overrides the completion temperature and token cap.
// Zero values keep the current settings.
func (a *Analyzer) WithSampling(temperature float64, maxTokens int) *Analyzer {
	if temperature > 0 {
		a.temperature = temperature
	}
	if maxTokens > 0 {
		a.maxTokens = maxTokens
	}
	return a
}

// AnalyzeText analyzes the given text and returns a schema-valid result.
//
// Retry policy: parse failures and provider unavailability are retried up to
// the budget with fixed backoffs; auth failures, rate limits, and request
// timeouts surface immediately.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	system := analysisSystemPrompt()

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := parseRetryBackoff
			if errors.Is(lastErr, ErrProviderUnavailable) {
				backoff = transientRetryBackoff
			}
			a.log.Warn("retrying analysis",
				slog.Int("attempt", attempt+1),
				slog.String("reason", lastErr.Error()),
			)
			if err := sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}

		content, err := a.client.Complete(ctx, Completion{
			System:      system,
			User:        text,
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
		})
		if err != nil {
			if errors.Is(err, ErrProviderAuth) || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout) {
				return nil, err
			}
			lastErr = err
			continue
		}

		var parsed any
		if err := json.Unmarshal([]byte(StripCodeFences(content)), &parsed); err != nil {
			lastErr = fmt.Errorf("parse analysis payload: %v: %w", err, ErrMalformedResponse)
			continue
		}

		result := Normalize(parsed, text)
		result.Themes = ValidateThemes(result.Themes)

		a.log.Info("analysis complete",
			slog.Int("vocabulary_items", len(result.Vocabulary)),
			slog.String("theme", result.Themes.Primary),
		)
		return &result, nil
	}

	return nil, lastErr
}

// sleep waits for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
