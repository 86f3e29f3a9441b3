package llm

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mgarrido/chatforge/internal/infra/config"
)

const openAIBaseURL = "https://api.openai.com/v1"

// NewOpenAIProvider creates the OpenAI adapter. Fails before any network
// call if OPENAI_API_KEY is not configured.
func NewOpenAIProvider(cfg config.Config) (Provider, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
	}

	return &chatClient{
		provider:    config.ProviderOpenAI,
		baseURL:     openAIBaseURL,
		apiKey:      cfg.OpenAIAPIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
	}, nil
}
