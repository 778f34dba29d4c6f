package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with request
// logging. Retry policy is applied by call sites, not here, since each
// call site owns its own attempt budget.
func NewProvider(ctx context.Context, cfg Config, logger RequestLogger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if logger != nil {
		base = WithLogging(base, logger)
	}
	return base, nil
}
