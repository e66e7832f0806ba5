package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/wordiz/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage("plain answer")},
	)

	resp1, err := mock.Generate(context.Background(), UserRequest("", "first"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), UserRequest("", "second"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text() != "plain answer" {
		t.Fatalf("Text() = %q, want %q", resp2.Text(), "plain answer")
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})
	_, _ = mock.Generate(context.Background(), UserRequest("sys", "what does apple mean?"))

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
	if mock.Calls[0].Messages[0].Role != RoleUser {
		t.Fatalf("expected user role, got %q", mock.Calls[0].Messages[0].Role)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{`"quoted 你好"`, "quoted 你好"},
		{"## 标题\n- 要点", "## 标题\n- 要点"},
		{`{"answer":"x"}`, `{"answer":"x"}`},
		{"", ""},
	}
	for _, tt := range tests {
		r := &Response{Content: json.RawMessage(tt.content)}
		if got := r.Text(); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}

	var nilResp *Response
	if nilResp.Text() != "" {
		t.Error("nil response Text() should be empty")
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "qa")
	if p := PurposeFrom(ctx); p != "qa" {
		t.Fatalf("expected 'qa', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimax without key", Config{Provider: "minimax"}, true},
		{"minimax with key", Config{Provider: "minimax", MiniMax: OpenAIConfig{APIKey: "sk-cp"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.cfg.Configured() == tt.wantErr {
				t.Fatalf("Configured() = %v, want %v", tt.cfg.Configured(), !tt.wantErr)
			}
		})
	}
}

func TestConfig_FillFromEnv(t *testing.T) {
	t.Setenv("MINIMAX_API_KEY", "from-env")
	t.Setenv("GEMINI_API_KEY", "gem")

	cfg := DefaultConfig()
	cfg.Gemini.APIKey = "explicit"
	cfg.FillFromEnv()

	if cfg.MiniMax.APIKey != "from-env" {
		t.Errorf("minimax key = %q, want from-env", cfg.MiniMax.APIKey)
	}
	if cfg.Gemini.APIKey != "explicit" {
		t.Errorf("gemini key = %q, explicit value must win", cfg.Gemini.APIKey)
	}
	if !cfg.Configured() {
		t.Error("default minimax config with env key should be configured")
	}
}

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return nil
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage("answer"), Usage: Usage{InputTokens: 3, OutputTokens: 4}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	p := WithLogging(mock, "minimax", repo, nil)

	ctx := WithPurpose(context.Background(), "qa")
	if _, err := p.Generate(ctx, UserRequest("sys", "q1")); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, UserRequest("sys", "q2")); err == nil {
		t.Fatal("second call should fail")
	}

	if len(repo.events) != 2 {
		t.Fatalf("events = %d, want 2", len(repo.events))
	}
	first := repo.events[0]
	if !first.Success || first.Purpose != "qa" || first.Provider != "minimax" || first.OutputTokens != 4 {
		t.Errorf("first event = %+v", first)
	}
	if repo.events[1].Success || repo.events[1].ErrorMessage == "" {
		t.Errorf("second event = %+v, want failure with message", repo.events[1])
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage("ok")})
	p := WithLogging(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("MiniMax-M2.1")
	if c == nil {
		t.Fatal("expected pricing for the default model")
	}
	if got := c.Cost(1_000_000, 1_000_000); got != 1.5 {
		t.Errorf("cost = %v, want 1.5", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}

func TestTranscript(t *testing.T) {
	req := UserRequest("be brief", "what is apple?")
	req.Schema = &Schema{Name: "tip", Definition: map[string]any{"type": "object"}}

	got := transcript(req)
	want := "[system]\nbe brief\n\n[user]\nwhat is apple?\n\n[schema: tip]\n{\"type\":\"object\"}"
	if got != want {
		t.Errorf("transcript =\n%q\nwant\n%q", got, want)
	}
}
