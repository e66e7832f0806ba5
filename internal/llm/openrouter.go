package llm

import "fmt"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultMiniMaxBaseURL    = "https://api.minimaxi.com/v1"
)

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// OpenRouter exposes an OpenAI-compatible API, so the OpenAI SDK is reused.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	return NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	})
}

// NewMiniMaxProvider creates a provider for the MiniMax chat completion API,
// which accepts OpenAI-shaped requests.
func NewMiniMaxProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("minimax API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultMiniMaxBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "MiniMax-M2.1"
	}
	return NewOpenAIProvider(cfg)
}
