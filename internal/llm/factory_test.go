package llm

import (
	"context"
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Errorf("mock provider = %T, want *MockProvider", p)
	}

	p, err = NewProvider(ctx, Config{Provider: "minimax", MiniMax: OpenAIConfig{APIKey: "k"}}, nil, nil)
	if err != nil {
		t.Fatalf("minimax: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("minimax provider = %T, want retry wrapper", p)
	}
	if p.ModelID() != "MiniMax-M2.1" {
		t.Errorf("model = %q", p.ModelID())
	}

	if _, err := NewProvider(ctx, Config{Provider: "openai"}, nil, nil); err == nil || !strings.Contains(err.Error(), "openai") {
		t.Errorf("missing key err = %v", err)
	}
	if _, err := NewProvider(ctx, Config{Provider: "llama"}, nil, nil); err == nil {
		t.Error("unknown provider should fail")
	}
}
