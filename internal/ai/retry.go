package ai

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"coach-backend/internal/shared/telemetry"
)

// RetryClient is a decorator that retries transient provider failures with
// exponential backoff and jitter before delegating to the wrapped Client.
// Parse failures of the response content are never retried; that policy lives
// in isRetryable.
type RetryClient struct {
	inner      Client
	maxRetries int
	baseDelay  time.Duration
}

// NewRetryClient wraps a Client with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
func NewRetryClient(inner Client, maxRetries int, baseDelay time.Duration) *RetryClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	return &RetryClient{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// GenerateContent attempts the provider call, retrying on transient errors.
func (c *RetryClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	text, err := c.inner.GenerateContent(ctx, prompt)
	if err == nil {
		return text, nil
	}

	lastErr := err
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if !isRetryable(lastErr) {
			return "", lastErr
		}

		delay := c.backoffDelay(attempt)
		telemetry.Warn("ai.retry", map[string]any{
			"attempt":     attempt,
			"max_retries": c.maxRetries,
			"delay_ms":    delay.Milliseconds(),
			"error":       lastErr.Error(),
		})

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		text, err = c.inner.GenerateContent(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}

	return "", lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
func (c *RetryClient) backoffDelay(attempt int) time.Duration {
	delay := c.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	jitter := 0.7 + rand.Float64()*0.6
	return time.Duration(float64(delay) * jitter)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if IsMalformed(err) {
		return false
	}
	if errors.Is(err, ErrNotConfigured) {
		return false
	}
	return true
}

var _ Client = (*RetryClient)(nil)
