package genai

import (
	"encoding/json"
	"testing"
)

func TestCleanJSON_BareJSON(t *testing.T) {
	input := []byte(`{"bottom_line":"go","confidence_level":80}`)
	got := CleanJSON(input)
	if string(got) != string(input) {
		t.Errorf("CleanJSON altered bare JSON: %s", got)
	}
}

func TestCleanJSON_MarkdownCodeFence(t *testing.T) {
	input := []byte("```json\n{\"bottom_line\":\"go\"}\n```")
	got := CleanJSON(input)
	if !json.Valid(got) {
		t.Errorf("CleanJSON returned invalid JSON: %s", got)
	}
	if string(got) != `{"bottom_line":"go"}` {
		t.Errorf("CleanJSON = %s, want bare JSON", got)
	}
}

func TestCleanJSON_MarkdownNoLang(t *testing.T) {
	input := []byte("```\n{\"key\":\"value\"}\n```")
	if got := CleanJSON(input); !json.Valid(got) {
		t.Errorf("CleanJSON returned invalid JSON: %s", got)
	}
}

func TestCleanJSON_WhitespaceWrapped(t *testing.T) {
	input := []byte("  \n  {\"key\":\"value\"}  \n  ")
	if got := CleanJSON(input); !json.Valid(got) {
		t.Errorf("CleanJSON returned invalid JSON: %s", got)
	}
}

func TestCleanJSON_EmptyInput(t *testing.T) {
	if got := CleanJSON([]byte("")); len(got) != 0 {
		t.Errorf("CleanJSON on empty input returned: %s", got)
	}
}

func TestParseJSON_WithCodeFence(t *testing.T) {
	type simple struct {
		Key   string  `json:"key"`
		Value float64 `json:"value"`
	}
	input := []byte("```json\n{\"key\":\"test\",\"value\":0.5}\n```")
	result, err := ParseJSON[simple](input)
	if err != nil {
		t.Fatalf("ParseJSON with code fence failed: %v", err)
	}
	if result.Key != "test" || result.Value != 0.5 {
		t.Errorf("ParseJSON = %+v", result)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	if _, err := ParseJSON[map[string]any]([]byte("not json at all")); err == nil {
		t.Error("ParseJSON should fail on non-JSON input")
	}
}
