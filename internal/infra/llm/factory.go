package llm

import (
	"fmt"

	"github.com/mgarrido/chatforge/internal/infra/config"
)

// New selects and constructs the adapter for the configured provider name.
// This is the only place the name→variant mapping lives; it runs once at
// startup, never per request. An unknown name or a missing credential is a
// fatal configuration error.
func New(cfg config.Config) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case config.ProviderOpenRouter:
		return NewOpenRouterProvider(cfg)
	case config.ProviderGroq:
		return NewGroqProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
