package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/akwamin-eng/asta-engine/internal/config"
)

// NewClient builds a provider client bound to a single model name. The
// fallback chain constructs one client per model in the chain.
func NewClient(ctx context.Context, cfg config.LLMConfig, model string) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, model)

	case "claude":
		return NewClaudeClient(cfg.APIKey, model, cfg.BaseURL), nil

	case "ollama":
		// Ollama speaks the OpenAI-compatible API; the key is ignored
		// server-side but the client config requires one.
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// BuildChain assembles the fallback caller from the configured primary model
// followed by the static fallback list.
func BuildChain(ctx context.Context, cfg config.LLMConfig) (*Fallback, error) {
	models := append([]string{cfg.Model}, cfg.FallbackModels...)

	var attempts []Attempt
	seen := make(map[string]bool)
	for _, m := range models {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true

		client, err := NewClient(ctx, cfg, m)
		if err != nil {
			return nil, fmt.Errorf("failed to build client for model %s: %w", m, err)
		}
		attempts = append(attempts, Attempt{Model: m, Client: client})
	}

	if len(attempts) == 0 {
		return nil, fmt.Errorf("no models configured")
	}

	return NewFallback(attempts), nil
}
