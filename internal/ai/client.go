// Package ai defines the boundary to the generative text provider.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts the generative AI provider behind a single capability.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("ai provider not configured")

// ErrEmptyResponse indicates the provider returned no usable text.
var ErrEmptyResponse = errors.New("empty response from ai provider")

// ProviderError reports a failed call to the AI provider (transport, quota,
// or an empty completion). These are the retryable failures.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return "ai provider failure"
	}
	return fmt.Sprintf("ai provider failure: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderFailure reports whether err is a ProviderError.
func IsProviderFailure(err error) bool {
	var provider *ProviderError
	return errors.As(err, &provider)
}

// MalformedResponseError reports provider output that could not be parsed
// into the expected JSON shape. Raw carries the offending text for diagnostics;
// it is never persisted.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return "malformed ai response"
	}
	return fmt.Sprintf("malformed ai response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsMalformed reports whether err is a MalformedResponseError.
func IsMalformed(err error) bool {
	var malformed *MalformedResponseError
	return errors.As(err, &malformed)
}

// Nop is a placeholder client for environments without provider credentials.
type Nop struct{}

// GenerateContent returns ErrNotConfigured.
func (Nop) GenerateContent(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

var _ Client = Nop{}
