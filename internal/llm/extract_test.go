package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractJSON_FencedBlock(t *testing.T) {
	raw := "Here is the problem:\n```json\n{\"a\": 1}\n```\nEnjoy!"
	got := ExtractJSON(raw)
	if got != `{"a": 1}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_FenceWithoutLanguage(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	got := ExtractJSON(raw)
	if got != `{"a": 1}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_BalancedObjectInProse(t *testing.T) {
	raw := `Sure! The answer is {"steps": ["one", "two"]} - hope that helps.`
	got := ExtractJSON(raw)
	if got != `{"steps": ["one", "two"]}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"text": "a set {1, 2} of numbers"} trailing`
	got := ExtractJSON(raw)
	if got != `{"text": "a set {1, 2} of numbers"}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_Array(t *testing.T) {
	raw := `The steps: ["one", "two"]`
	got := ExtractJSON(raw)
	if got != `["one", "two"]` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_SmartQuotes(t *testing.T) {
	raw := "{“key”: “value”}"
	got := ExtractJSON(raw)
	if got != `{"key": "value"}` {
		t.Fatalf("smart quotes not normalized: %q", got)
	}
}

func TestExtractJSON_NewlineRunsCollapsed(t *testing.T) {
	raw := "{\"a\":\n\n\n1}"
	got := ExtractJSON(raw)
	if strings.ContainsAny(got, "\r\n") {
		t.Fatalf("newlines survived: %q", got)
	}
	if _, err := ParseStrict(got, raw); err != nil {
		t.Fatalf("normalized candidate should parse: %v", err)
	}
}

func TestExtractJSON_NoJSONFallsBackToRaw(t *testing.T) {
	raw := "no json here at all"
	if got := ExtractJSON(raw); got != raw {
		t.Fatalf("expected raw passthrough, got %q", got)
	}
}

func TestParseStrict_FailureCarriesRaw(t *testing.T) {
	raw := "the model said something weird"
	_, err := ParseStrict("not json", raw)
	if err == nil {
		t.Fatal("expected error")
	}
	var inv *ErrInvalidContent
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidContent, got %T", err)
	}
	if inv.Raw != raw {
		t.Fatalf("raw text not attached: %q", inv.Raw)
	}
}

func TestValidateSchema_RejectsMissingField(t *testing.T) {
	schema := &Schema{
		Name: "test-pair",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"a", "b"},
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "string"},
			},
		},
	}

	if err := ValidateSchema(schema, []byte(`{"a": 1, "b": "x"}`)); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
	if err := ValidateSchema(schema, []byte(`{"a": 1}`)); err == nil {
		t.Fatal("expected rejection for missing field")
	}
}
