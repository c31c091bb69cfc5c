package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

type scriptedClient struct {
	calls     int
	failUntil int
	err       error
}

func (c *scriptedClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	c.calls++
	if c.calls <= c.failUntil {
		return "", c.err
	}
	return "ok", nil
}

func TestRetryClientRetriesTransientFailure(t *testing.T) {
	inner := &scriptedClient{failUntil: 2, err: errors.New("connection reset")}
	client := NewRetryClient(inner, 2, time.Millisecond)

	text, err := client.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if text != "ok" {
		t.Fatalf("expected ok, got %q", text)
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
}

func TestRetryClientGivesUpAfterMaxRetries(t *testing.T) {
	inner := &scriptedClient{failUntil: 10, err: errors.New("unavailable")}
	client := NewRetryClient(inner, 2, time.Millisecond)

	if _, err := client.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
}

func TestRetryClientDoesNotRetryMalformedResponse(t *testing.T) {
	inner := &scriptedClient{failUntil: 10, err: &MalformedResponseError{Raw: "not json"}}
	client := NewRetryClient(inner, 3, time.Millisecond)

	_, err := client.GenerateContent(context.Background(), "prompt")
	if !IsMalformed(err) {
		t.Fatalf("expected malformed error, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", inner.calls)
	}
}

func TestRetryClientDoesNotRetryUnconfiguredProvider(t *testing.T) {
	inner := &scriptedClient{failUntil: 10, err: ErrNotConfigured}
	client := NewRetryClient(inner, 3, time.Millisecond)

	if _, err := client.GenerateContent(context.Background(), "prompt"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", inner.calls)
	}
}

func TestRetryClientStopsOnContextCancel(t *testing.T) {
	inner := &scriptedClient{failUntil: 10, err: errors.New("unavailable")}
	client := NewRetryClient(inner, 5, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.GenerateContent(ctx, "prompt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
