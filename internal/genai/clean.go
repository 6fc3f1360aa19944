package genai

import (
	"bytes"
	"encoding/json"
)

// CleanJSON strips optional markdown code fences (```json or bare ```)
// and surrounding whitespace from generated output. Models wrap JSON in
// fences despite instructions not to; tolerate it instead of failing.
func CleanJSON(data []byte) []byte {
	s := bytes.TrimSpace(data)
	if len(s) == 0 {
		return s
	}

	if bytes.HasPrefix(s, []byte("```")) {
		// Strip opening fence line
		if idx := bytes.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		}
		// Strip closing fence
		if bytes.HasSuffix(s, []byte("```")) {
			s = s[:len(s)-3]
		}
		s = bytes.TrimSpace(s)
	}

	return s
}

// ParseJSON cleans fences from data and unmarshals it into T.
func ParseJSON[T any](data []byte) (*T, error) {
	cleaned := CleanJSON(data)
	var result T
	if err := json.Unmarshal(cleaned, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
