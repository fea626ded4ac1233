package config

import (
	"testing"
	"time"

	"log/slog"
)

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Port != defaultPort {
		t.Errorf("expected default port %q, got %q", defaultPort, cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != defaultReadTimeout {
		t.Errorf("expected default read timeout %v, got %v", defaultReadTimeout, cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != defaultWriteTimeout {
		t.Errorf("expected default write timeout %v, got %v", defaultWriteTimeout, cfg.Server.WriteTimeout)
	}
	if cfg.Logging.Level != slog.LevelInfo {
		t.Errorf("expected default log level %v, got %v", slog.LevelInfo, cfg.Logging.Level)
	}
	if cfg.Logging.Format != defaultLogFormat {
		t.Errorf("expected default log format %q, got %q", defaultLogFormat, cfg.Logging.Format)
	}
	if cfg.LLM.Provider != defaultLLMProvider {
		t.Errorf("expected default provider %q, got %q", defaultLLMProvider, cfg.LLM.Provider)
	}
	if cfg.LLM.Model != defaultOpenAIModel {
		t.Errorf("expected default model %q, got %q", defaultOpenAIModel, cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != defaultLLMTimeout {
		t.Errorf("expected default LLM timeout %v, got %v", defaultLLMTimeout, cfg.LLM.Timeout)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	clearConfigEnv(t)

	overrides := map[string]string{
		"SERVER_PORT":                     "9090",
		"SERVER_READ_TIMEOUT_SECONDS":     "30",
		"SERVER_WRITE_TIMEOUT_SECONDS":    "45",
		"SERVER_SHUTDOWN_TIMEOUT_SECONDS": "15",
		"LOG_LEVEL":                       "debug",
		"LOG_FORMAT":                      "text",
		"LLM_MODEL":                       "gpt-4o",
		"LLM_TEMPERATURE":                 "0.7",
		"LLM_MAX_TOKENS":                  "4000",
		"LLM_TIMEOUT_SECONDS":             "60",
		"OPENAI_API_KEY":                  "sk-test",
	}
	for key, value := range overrides {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected overridden port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected read timeout %v, got %v", 30*time.Second, cfg.Server.ReadTimeout)
	}
	if cfg.Logging.Level != slog.LevelDebug {
		t.Errorf("expected log level %v, got %v", slog.LevelDebug, cfg.Logging.Level)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.Temperature < 0.69 || cfg.LLM.Temperature > 0.71 {
		t.Errorf("expected temperature 0.7, got %v", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 4000 {
		t.Errorf("expected max tokens 4000, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("expected LLM timeout %v, got %v", 60*time.Second, cfg.LLM.Timeout)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("expected API key from OPENAI_API_KEY, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadAnthropicProvider(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "key-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("expected provider anthropic, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != defaultAnthropicModel {
		t.Errorf("expected default anthropic model %q, got %q", defaultAnthropicModel, cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "key-123" {
		t.Errorf("expected API key from ANTHROPIC_API_KEY, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad read timeout", "SERVER_READ_TIMEOUT_SECONDS", "abc"},
		{"negative write timeout", "SERVER_WRITE_TIMEOUT_SECONDS", "-5"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"bad provider", "LLM_PROVIDER", "cohere"},
		{"temperature out of range", "LLM_TEMPERATURE", "3.5"},
		{"zero max tokens", "LLM_MAX_TOKENS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "SERVER_PORT",
		"SERVER_READ_TIMEOUT_SECONDS", "SERVER_WRITE_TIMEOUT_SECONDS", "SERVER_SHUTDOWN_TIMEOUT_SECONDS",
		"LOG_LEVEL", "LOG_FORMAT",
		"LLM_PROVIDER", "LLM_MODEL", "LLM_TEMPERATURE", "LLM_MAX_TOKENS", "LLM_TIMEOUT_SECONDS",
		"OPENAI_API_KEY", "OPENAI_MODEL", "ANTHROPIC_API_KEY",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
