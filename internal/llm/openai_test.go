package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// chatHandler answers every completion request with content and records
// the decoded request body into got.
func chatHandler(content string, got *map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "MiniMax-M2.1",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{
				"prompt_tokens":     40,
				"completion_tokens": 25,
				"total_tokens":      65,
			},
		})
	}
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc, compat bool) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini",
		compat: compat,
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	p := newTestOpenAIProvider(t, chatHandler("## apple\n- 苹果", nil), false)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You are an English learning assistant.",
		Messages:  []Message{{Role: RoleUser, Content: "What does apple mean?"}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 {
		t.Fatalf("expected 40 input tokens, got %d", resp.Usage.InputTokens)
	}
	if resp.Usage.OutputTokens != 25 {
		t.Fatalf("expected 25 output tokens, got %d", resp.Usage.OutputTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if resp.Text() != "## apple\n- 苹果" {
		t.Fatalf("unexpected text %q", resp.Text())
	}
}

func TestOpenAIProvider_TokenField(t *testing.T) {
	tests := []struct {
		name   string
		compat bool
		field  string
	}{
		{"openai", false, "max_completion_tokens"},
		{"compatible endpoint", true, "max_tokens"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			p := newTestOpenAIProvider(t, chatHandler("ok", &body), tt.compat)
			_, err := p.Generate(context.Background(), Request{
				Messages:    []Message{{Role: RoleUser, Content: "hi"}},
				MaxTokens:   1000,
				Temperature: 0.7,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v, ok := body[tt.field].(float64); !ok || v != 1000 {
				t.Fatalf("expected %s=1000 in request, got %v", tt.field, body)
			}
		})
	}
}

func TestOpenAIProvider_EmptyContent(t *testing.T) {
	p := newTestOpenAIProvider(t, chatHandler("", nil), true)
	_, err := p.Generate(context.Background(), UserRequest("", "hello"))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler, false)
	_, err := p.Generate(context.Background(), UserRequest("", "test"))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "server_error", "message": "boom"},
		})
	}

	p := newTestOpenAIProvider(t, handler, true)
	_, err := p.Generate(context.Background(), UserRequest("", "test"))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_BaseURLSetsCompat(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.compat {
		t.Error("plain OpenAI provider should not be in compat mode")
	}

	p, err = NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "MiniMax-M2.1", BaseURL: "https://api.minimaxi.com/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.compat || p.ModelID() != "MiniMax-M2.1" {
		t.Errorf("compat=%v model=%q", p.compat, p.ModelID())
	}
}
