package llm

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

var tipSchema = &Schema{
	Name: "tip",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"tip": map[string]any{"type": "string"}},
		"required":   []any{"tip"},
	},
}

func TestFinishFreeText(t *testing.T) {
	resp, err := finish("test", Request{}, completion{
		text:  "苹果 means apple",
		usage: Usage{InputTokens: 3, OutputTokens: 4},
		stop:  StopEnd,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "苹果 means apple" {
		t.Errorf("text = %q", resp.Text())
	}
	if resp.Usage.TotalTokens != 7 {
		t.Errorf("total tokens = %d, want 7", resp.Usage.TotalTokens)
	}
}

func TestFinishStructured(t *testing.T) {
	req := Request{Schema: tipSchema}
	resp, err := finish("test", req, completion{text: "Sure!\n```json\n{\"tip\":\"say it aloud\"}\n```", stop: StopEnd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"tip":"say it aloud"}` {
		t.Errorf("content = %s", resp.Content)
	}

	_, err = finish("test", req, completion{text: `{"hint":"x"}`, stop: StopEnd})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Errorf("missing required field: got %T (%v)", err, err)
	}
}

func TestFinishStops(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		c    completion
		want any
	}{
		{"filtered", Request{}, completion{text: "x", stop: StopFiltered}, &ErrInvalidResponse{}},
		{"empty", Request{}, completion{text: "  ", stop: StopEnd}, &ErrInvalidResponse{}},
		{"truncated json", Request{Schema: tipSchema}, completion{text: `{"tip":"sa`, stop: StopMaxTokens}, &ErrMaxTokensExceeded{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := finish("test", tt.req, tt.c)
			switch tt.want.(type) {
			case *ErrInvalidResponse:
				var target *ErrInvalidResponse
				if !errors.As(err, &target) {
					t.Errorf("got %T (%v), want ErrInvalidResponse", err, err)
				}
			case *ErrMaxTokensExceeded:
				var target *ErrMaxTokensExceeded
				if !errors.As(err, &target) {
					t.Errorf("got %T (%v), want ErrMaxTokensExceeded", err, err)
				}
			}
		})
	}

	// Free text cut short is still usable.
	resp, err := finish("test", Request{}, completion{text: "partial answ", stop: StopMaxTokens})
	if err != nil || resp.StopReason != StopMaxTokens {
		t.Errorf("free text at limit: resp=%+v err=%v", resp, err)
	}
}

func TestStatusError(t *testing.T) {
	base := errors.New("boom")

	var unauth *ErrUnauthorized
	if !errors.As(statusError(http.StatusForbidden, 0, base), &unauth) {
		t.Error("403 should map to ErrUnauthorized")
	}

	var rl *ErrRateLimit
	if !errors.As(statusError(http.StatusTooManyRequests, 2*time.Second, base), &rl) || rl.RetryAfter != 2*time.Second {
		t.Errorf("429 should map to ErrRateLimit with retry-after, got %+v", rl)
	}

	var unavail *ErrProviderUnavailable
	if !errors.As(statusError(http.StatusBadGateway, 0, base), &unavail) {
		t.Error("502 should map to ErrProviderUnavailable")
	}
}

func TestRetryAfterHeader(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	if got := retryAfter(resp); got != 0 {
		t.Errorf("no header = %s", got)
	}
	resp.Header.Set("Retry-After", "3")
	if got := retryAfter(resp); got != 3*time.Second {
		t.Errorf("Retry-After 3 = %s", got)
	}
	resp.Header.Set("Retry-After", "Wed, 21 Oct 2015 07:28:00 GMT")
	if got := retryAfter(resp); got != 0 {
		t.Errorf("date form = %s, want 0", got)
	}
	if retryAfter(nil) != 0 {
		t.Error("nil response")
	}
}

func TestChatRole(t *testing.T) {
	if chatRole(RoleAssistant, "model") != "model" || chatRole(RoleUser, "model") != "user" {
		t.Error("unexpected role mapping")
	}
}

func TestModelAliases(t *testing.T) {
	tests := []struct {
		aliases map[string]string
		in      string
		want    string
	}{
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-3-5-haiku-latest", "claude-3-5-haiku-latest"},
		{openaiModels, "gpt-mini", "gpt-4o-mini"},
		{geminiModels, "gemini-flash", "gemini-2.5-flash"},
		{geminiModels, "gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
