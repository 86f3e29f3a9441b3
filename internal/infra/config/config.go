// Package config provides application-wide configuration.
// Values come from an optional YAML file (CHATFORGE_CONFIG) overridden by
// environment variables; every field has a safe default so the binary runs
// locally with nothing but a provider API key set.
//
// The loaded Config is an immutable value passed explicitly to the
// constructors that need it. There is no package-level cached instance.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGroq       = "groq"
)

// Config holds runtime configuration for chatforge.
type Config struct {
	// LLM provider selection and credentials. Only the key for the
	// selected provider is required (enforced by llm.New, not here).
	Provider         string `yaml:"provider"`           // LLM_PROVIDER — default: "groq"
	OpenAIAPIKey     string `yaml:"openai_api_key"`     // OPENAI_API_KEY
	OpenRouterAPIKey string `yaml:"openrouter_api_key"` // OPENROUTER_API_KEY
	GroqAPIKey       string `yaml:"groq_api_key"`       // GROQ_API_KEY

	// Generation defaults, overridable per request by the adapter caller.
	Model       string  `yaml:"model"`       // LLM_MODEL — default: "llama-3.3-70b-versatile"
	Temperature float32 `yaml:"temperature"` // LLM_TEMPERATURE — default: 0.7
	MaxTokens   int     `yaml:"max_tokens"`  // LLM_MAX_TOKENS — default: 1000
	TimeoutSecs int     `yaml:"timeout"`     // LLM_TIMEOUT — default: 30 (seconds)

	// Storage.
	DatabasePath string `yaml:"database_path"` // DATABASE_PATH — default: "./chatforge.db"
}

const (
	envKeyConfigFile       = "CHATFORGE_CONFIG"
	envKeyProvider         = "LLM_PROVIDER"
	envKeyOpenAIAPIKey     = "OPENAI_API_KEY"
	envKeyOpenRouterAPIKey = "OPENROUTER_API_KEY"
	envKeyGroqAPIKey       = "GROQ_API_KEY"
	envKeyModel            = "LLM_MODEL"
	envKeyTemperature      = "LLM_TEMPERATURE"
	envKeyMaxTokens        = "LLM_MAX_TOKENS"
	envKeyTimeout          = "LLM_TIMEOUT"
	envKeyDatabasePath     = "DATABASE_PATH"
)

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		Provider:     ProviderGroq,
		Model:        "llama-3.3-70b-versatile",
		Temperature:  0.7,
		MaxTokens:    1000,
		TimeoutSecs:  30,
		DatabasePath: "./chatforge.db",
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CHATFORGE_CONFIG (if set), then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(envKeyConfigFile); path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// loadFile merges a YAML config file into cfg. A missing file is an error:
// pointing CHATFORGE_CONFIG at nothing is a misconfiguration, not a default.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg fields from environment variables where set.
func applyEnv(cfg *Config) {
	cfg.Provider = envOr(envKeyProvider, cfg.Provider)
	cfg.OpenAIAPIKey = envOr(envKeyOpenAIAPIKey, cfg.OpenAIAPIKey)
	cfg.OpenRouterAPIKey = envOr(envKeyOpenRouterAPIKey, cfg.OpenRouterAPIKey)
	cfg.GroqAPIKey = envOr(envKeyGroqAPIKey, cfg.GroqAPIKey)
	cfg.Model = envOr(envKeyModel, cfg.Model)
	cfg.DatabasePath = envOr(envKeyDatabasePath, cfg.DatabasePath)

	if v := os.Getenv(envKeyTemperature); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Temperature = float32(f)
		}
	}
	if v := os.Getenv(envKeyMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv(envKeyTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSecs = n
		}
	}
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
