package ai

import (
	"encoding/json"
	"strings"
)

// StripFences removes leading/trailing markdown code fence markers from raw
// model output. Providers frequently wrap JSON in ```json ... ``` even when
// asked not to.
func StripFences(raw string) string {
	out := strings.TrimSpace(raw)
	if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```")
		out = strings.TrimPrefix(out, "json")
	}
	if strings.HasSuffix(out, "```") {
		out = strings.TrimSuffix(out, "```")
	}
	return strings.TrimSpace(out)
}

// DecodeJSON strips fences from raw and decodes the body into v. A decode
// failure yields a MalformedResponseError carrying the original raw text.
func DecodeJSON(raw string, v any) error {
	cleaned := StripFences(raw)
	if cleaned == "" {
		return &MalformedResponseError{Raw: raw, Err: ErrEmptyResponse}
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}
	return nil
}
