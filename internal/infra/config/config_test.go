package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every config env var for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		envKeyConfigFile, envKeyProvider, envKeyOpenAIAPIKey,
		envKeyOpenRouterAPIKey, envKeyGroqAPIKey, envKeyModel,
		envKeyTemperature, envKeyMaxTokens, envKeyTimeout, envKeyDatabasePath,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v; want nil", err)
	}
	if cfg.Provider != ProviderGroq {
		t.Errorf("Provider = %q; want %q", cfg.Provider, ProviderGroq)
	}
	if cfg.Model != "llama-3.3-70b-versatile" {
		t.Errorf("Model = %q; want default groq model", cfg.Model)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %v; want 0.7", cfg.Temperature)
	}
	if cfg.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d; want 1000", cfg.MaxTokens)
	}
	if cfg.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d; want 30", cfg.TimeoutSecs)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(envKeyProvider, "openai")
	t.Setenv(envKeyOpenAIAPIKey, "sk-test")
	t.Setenv(envKeyTemperature, "0.2")
	t.Setenv(envKeyMaxTokens, "256")
	t.Setenv(envKeyTimeout, "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v; want nil", err)
	}
	if cfg.Provider != "openai" || cfg.OpenAIAPIKey != "sk-test" {
		t.Errorf("provider env override not applied: %+v", cfg)
	}
	if cfg.Temperature != 0.2 || cfg.MaxTokens != 256 || cfg.TimeoutSecs != 10 {
		t.Errorf("numeric env overrides not applied: %+v", cfg)
	}
}

func TestLoad_YAMLFileThenEnvWins(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "chatforge.yml")
	content := "provider: openrouter\nopenrouter_api_key: or-key\nmodel: mistral-7b\nmax_tokens: 512\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envKeyConfigFile, path)
	t.Setenv(envKeyModel, "env-model")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v; want nil", err)
	}
	if cfg.Provider != "openrouter" || cfg.OpenRouterAPIKey != "or-key" {
		t.Errorf("yaml values not applied: %+v", cfg)
	}
	if cfg.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d; want 512 from yaml", cfg.MaxTokens)
	}
	if cfg.Model != "env-model" {
		t.Errorf("Model = %q; env must override yaml", cfg.Model)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(envKeyConfigFile, filepath.Join(t.TempDir(), "nope.yml"))

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil for missing config file; want non-nil")
	}
}

func TestLoad_InvalidNumbersKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(envKeyTemperature, "hot")
	t.Setenv(envKeyMaxTokens, "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v; want nil", err)
	}
	if cfg.Temperature != 0.7 || cfg.MaxTokens != 1000 {
		t.Errorf("malformed numeric envs must keep defaults, got %+v", cfg)
	}
}
