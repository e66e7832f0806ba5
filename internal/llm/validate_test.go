package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-word-card",
		Description: "A word card",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"word":      map[string]any{"type": "string"},
				"syllables": map[string]any{"type": "integer", "minimum": 1},
				"level":     map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			},
			"required": []any{"word", "syllables"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"word":"apple","syllables":2,"level":"easy"}`, false},
		{"optional omitted", `{"word":"cat","syllables":1}`, false},
		{"missing required", `{"word":"dog"}`, true},
		{"wrong type", `{"word":"pear","syllables":"one"}`, true},
		{"bad enum", `{"word":"banana","syllables":3,"level":"extreme"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedArrays(t *testing.T) {
	schema := &Schema{
		Name: "test-examples",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"examples": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":       "object",
						"properties": map[string]any{"en": map[string]any{"type": "string"}},
						"required":   []any{"en"},
					},
				},
			},
			"required": []any{"examples"},
		},
	}

	if err := validateResponse(schema, json.RawMessage(`{"examples":[{"en":"I like apples."}]}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := validateResponse(schema, json.RawMessage(`{"examples":[{"zh":"我"}]}`)); err == nil {
		t.Fatal("expected error for missing nested field")
	}
}

func TestDecode(t *testing.T) {
	type card struct {
		Word      string `json:"word"`
		Syllables int    `json:"syllables"`
	}

	tests := []struct {
		name    string
		content string
		want    card
		wantErr bool
	}{
		{"object", `{"word":"apple","syllables":2}`, card{"apple", 2}, false},
		{"fenced string", `"Here you go:\n` + "```json" + `\n{\"word\":\"tiger\",\"syllables\":2}\n` + "```" + `"`, card{"tiger", 2}, false},
		{"invalid", `{"word":"apple"}`, card{}, true},
		{"no object", `"sorry"`, card{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got card
			err := Decode(&Response{Content: json.RawMessage(tt.content)}, testSchema(), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecode_NilResponse(t *testing.T) {
	var v map[string]any
	if err := Decode(nil, nil, &v); err == nil {
		t.Fatal("expected error for nil response")
	}
}
