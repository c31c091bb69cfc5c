package ai

import (
	"errors"
	"testing"
)

func TestStripFencesRoundTripsJSONBody(t *testing.T) {
	raw := "```json\n{\"growthRate\":5}\n```"
	got := StripFences(raw)
	if got != `{"growthRate":5}` {
		t.Fatalf("expected fence-stripped JSON, got %q", got)
	}
}

func TestStripFencesHandlesPlainFences(t *testing.T) {
	raw := "```\n{\"a\":1}\n```"
	if got := StripFences(raw); got != `{"a":1}` {
		t.Fatalf("expected %q, got %q", `{"a":1}`, got)
	}
}

func TestStripFencesLeavesUnfencedTextAlone(t *testing.T) {
	raw := `{"a":1}`
	if got := StripFences(raw); got != raw {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestDecodeJSONParsesFencedBody(t *testing.T) {
	var out struct {
		GrowthRate float64 `json:"growthRate"`
	}
	if err := DecodeJSON("```json\n{\"growthRate\":5}\n```", &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out.GrowthRate != 5 {
		t.Fatalf("expected growthRate=5, got %v", out.GrowthRate)
	}
}

func TestDecodeJSONSignalsMalformedResponse(t *testing.T) {
	var out map[string]any
	err := DecodeJSON("not json", &out)
	if err == nil {
		t.Fatalf("expected error for malformed input")
	}
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T", err)
	}
	if malformed.Raw != "not json" {
		t.Fatalf("expected raw text preserved, got %q", malformed.Raw)
	}
}

func TestDecodeJSONTreatsEmptyAsMalformed(t *testing.T) {
	var out map[string]any
	err := DecodeJSON("``````", &out)
	if !IsMalformed(err) {
		t.Fatalf("expected malformed error for empty body, got %v", err)
	}
}
