package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicServer serves one canned Messages API reply per request.
func anthropicServer(t *testing.T, status int, header http.Header, body map[string]any) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func anthropicMessage(stop string, texts ...string) map[string]any {
	blocks := make([]map[string]any, len(texts))
	for i, s := range texts {
		blocks[i] = map[string]any{"type": "text", "text": s}
	}
	return map[string]any{
		"id": "msg_test", "type": "message", "role": "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     blocks,
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicJoinsTextBlocks(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, nil, anthropicMessage("end_turn", "## library\n", "- 图书馆"))
	resp, err := p.Generate(context.Background(), UserRequest("You are an English tutor.", "library 是什么意思？"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "## library\n- 图书馆" {
		t.Errorf("text = %q", resp.Text())
	}
	if resp.Usage.TotalTokens != 80 || resp.StopReason != StopEnd {
		t.Errorf("usage = %+v stop = %q", resp.Usage, resp.StopReason)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Errorf("model alias not resolved: %q", p.ModelID())
	}
}

func TestAnthropicStopReasons(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, nil, anthropicMessage("refusal", "I can't help with that."))
	var inv *ErrInvalidResponse
	if _, err := p.Generate(context.Background(), UserRequest("", "q")); !errors.As(err, &inv) {
		t.Errorf("refusal: got %T (%v)", err, err)
	}

	p = anthropicServer(t, http.StatusOK, nil, anthropicMessage("max_tokens", `{"tip":"say it`))
	req := UserRequest("", "q")
	req.Schema = tipSchema
	var cut *ErrMaxTokensExceeded
	if _, err := p.Generate(context.Background(), req); !errors.As(err, &cut) {
		t.Errorf("max_tokens with schema: got %T (%v)", err, err)
	}
}

func TestAnthropicErrors(t *testing.T) {
	apiError := func(kind string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
	}

	p := anthropicServer(t, http.StatusUnauthorized, nil, apiError("authentication_error"))
	var auth *ErrUnauthorized
	if _, err := p.Generate(context.Background(), UserRequest("", "q")); !errors.As(err, &auth) {
		t.Errorf("401: got %T (%v)", err, err)
	}

	p = anthropicServer(t, http.StatusTooManyRequests, http.Header{"Retry-After": {"7"}}, apiError("rate_limit_error"))
	var rl *ErrRateLimit
	if _, err := p.Generate(context.Background(), UserRequest("", "q")); !errors.As(err, &rl) {
		t.Fatalf("429: got %T (%v)", err, err)
	}
	if rl.RetryAfter != 7*time.Second {
		t.Errorf("retry after = %s, want 7s", rl.RetryAfter)
	}

	p = anthropicServer(t, http.StatusInternalServerError, nil, apiError("api_error"))
	var down *ErrProviderUnavailable
	if _, err := p.Generate(context.Background(), UserRequest("", "q")); !errors.As(err, &down) {
		t.Errorf("500: got %T (%v)", err, err)
	}
}
