package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/wordiz/internal/store"
)

var backends = map[string]func(context.Context, Config) (Provider, error){
	"minimax":    func(_ context.Context, c Config) (Provider, error) { return NewMiniMaxProvider(c.MiniMax) },
	"anthropic":  func(_ context.Context, c Config) (Provider, error) { return NewAnthropicProvider(c.Anthropic) },
	"openai":     func(_ context.Context, c Config) (Provider, error) { return NewOpenAIProvider(c.OpenAI) },
	"openrouter": func(_ context.Context, c Config) (Provider, error) { return NewOpenRouterProvider(c.OpenRouter) },
	"gemini":     func(ctx context.Context, c Config) (Provider, error) { return NewGeminiProvider(ctx, c.Gemini) },
}

// NewProvider builds the configured backend behind retry and logging:
// caller → retry → logging → backend, so every attempt is recorded.
// events may be nil. The mock provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger logrus.FieldLogger) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}
	build, ok := backends[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	base, err := build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}
	return WithRetry(WithLogging(base, cfg.Provider, events, logger), cfg.Retry), nil
}
