package llm

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mgarrido/chatforge/internal/infra/config"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqDefaultModel = "llama-3.3-70b-versatile"
)

// NewGroqProvider creates the Groq adapter (OpenAI-compatible endpoint).
// A configured model of "gpt-3.5-turbo" is treated as a leftover OpenAI
// default and swapped for a model Groq actually serves.
func NewGroqProvider(cfg config.Config) (Provider, error) {
	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required for Groq provider")
	}

	model := cfg.Model
	if model == "gpt-3.5-turbo" {
		model = groqDefaultModel
	}

	return &chatClient{
		provider:    config.ProviderGroq,
		baseURL:     groqBaseURL,
		apiKey:      cfg.GroqAPIKey,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
	}, nil
}
