package llm

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mgarrido/chatforge/internal/infra/config"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates the OpenRouter adapter. OpenRouter asks
// callers to identify their app via HTTP-Referer and X-Title; otherwise it
// speaks the same chat-completions dialect as OpenAI.
func NewOpenRouterProvider(cfg config.Config) (Provider, error) {
	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required for OpenRouter provider")
	}

	return &chatClient{
		provider: config.ProviderOpenRouter,
		baseURL:  openRouterBaseURL,
		apiKey:   cfg.OpenRouterAPIKey,
		headers: map[string]string{
			"HTTP-Referer": "https://chatforge.local",
			"X-Title":      "chatforge",
		},
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
	}, nil
}
