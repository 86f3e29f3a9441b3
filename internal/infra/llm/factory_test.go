package llm

import (
	"strings"
	"testing"

	"github.com/mgarrido/chatforge/internal/infra/config"
)

func baseCfg() config.Config {
	cfg := config.Default()
	cfg.OpenAIAPIKey = "sk-openai"
	cfg.OpenRouterAPIKey = "sk-or"
	cfg.GroqAPIKey = "sk-groq"
	return cfg
}

func TestNew_SelectsConfiguredProvider(t *testing.T) {
	t.Parallel()

	for _, name := range []string{config.ProviderOpenAI, config.ProviderOpenRouter, config.ProviderGroq} {
		cfg := baseCfg()
		cfg.Provider = name

		p, err := New(cfg)
		if err != nil {
			t.Errorf("New(%s) error = %v; want nil", name, err)
			continue
		}
		if p == nil {
			t.Errorf("New(%s) returned nil provider", name)
		}
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := baseCfg()
	cfg.Provider = "claude"

	_, err := New(cfg)
	if err == nil {
		t.Fatal("New() error = nil for unknown provider; want non-nil")
	}
	if !strings.Contains(err.Error(), "claude") {
		t.Errorf("error %q must name the unknown provider", err)
	}
}

func TestNew_MissingAPIKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		provider string
		wantKey  string
	}{
		{config.ProviderOpenAI, "OPENAI_API_KEY"},
		{config.ProviderOpenRouter, "OPENROUTER_API_KEY"},
		{config.ProviderGroq, "GROQ_API_KEY"},
	}

	for _, tc := range cases {
		cfg := config.Default()
		cfg.Provider = tc.provider // all keys empty

		_, err := New(cfg)
		if err == nil {
			t.Errorf("New(%s) error = nil with no key; want non-nil", tc.provider)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantKey) {
			t.Errorf("New(%s) error %q must name %s", tc.provider, err, tc.wantKey)
		}
	}
}

func TestNewGroqProvider_ModelFallback(t *testing.T) {
	t.Parallel()

	cfg := baseCfg()
	cfg.Provider = config.ProviderGroq
	cfg.Model = "gpt-3.5-turbo"

	p, err := NewGroqProvider(cfg)
	if err != nil {
		t.Fatalf("NewGroqProvider() error = %v", err)
	}
	c, ok := p.(*chatClient)
	if !ok {
		t.Fatalf("provider is %T; want *chatClient", p)
	}
	if c.model != groqDefaultModel {
		t.Errorf("model = %q; want fallback %q for leftover OpenAI default", c.model, groqDefaultModel)
	}
}
