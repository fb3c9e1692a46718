package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genius.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const minimalConfig = `
upstream:
  api_key: test-key
`

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("expected default listen address, got %q", cfg.Server.ListenAddress)
	}
	if cfg.Upstream.BaseURL != DefaultUpstreamBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.MaxRetries != DefaultUpstreamMaxRetries {
		t.Errorf("expected default max retries, got %d", cfg.Upstream.MaxRetries)
	}
	if cfg.Upstream.InitialBackoff != time.Second {
		t.Errorf("expected 1s initial backoff, got %v", cfg.Upstream.InitialBackoff)
	}
	if cfg.Chat.Model != DefaultChatModel {
		t.Errorf("expected default chat model, got %q", cfg.Chat.Model)
	}
	if cfg.Chat.Temperature != DefaultChatTemperature {
		t.Errorf("expected default temperature, got %v", cfg.Chat.Temperature)
	}
	if cfg.Cache.Freshness != 5*time.Minute {
		t.Errorf("expected 5m cache freshness, got %v", cfg.Cache.Freshness)
	}
	if !cfg.Chat.RecordTranscripts {
		t.Error("expected transcript recording on by default")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics enabled by default")
	}
}

func TestLoadConfigFileValues(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen_address: "0.0.0.0:9090"
upstream:
  api_key: test-key
  max_retries: 5
  initial_backoff: 250ms
chat:
  model: gpt-4o
  record_transcripts: false
cache:
  backend: sqlite
  path: /tmp/cache.db
  freshness: 10m
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("unexpected listen address %q", cfg.Server.ListenAddress)
	}
	if cfg.Upstream.MaxRetries != 5 {
		t.Errorf("unexpected max retries %d", cfg.Upstream.MaxRetries)
	}
	if cfg.Upstream.InitialBackoff != 250*time.Millisecond {
		t.Errorf("unexpected initial backoff %v", cfg.Upstream.InitialBackoff)
	}
	if cfg.Chat.Model != "gpt-4o" {
		t.Errorf("unexpected chat model %q", cfg.Chat.Model)
	}
	if cfg.Chat.RecordTranscripts {
		t.Error("expected transcript recording disabled")
	}
	if cfg.Cache.Backend != "sqlite" || cfg.Cache.Freshness != 10*time.Minute {
		t.Errorf("unexpected cache config %+v", cfg.Cache)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("GENIUS_SERVER_LISTEN_ADDRESS", "127.0.0.1:7070")
	t.Setenv("GENIUS_UPSTREAM_MAX_RETRIES", "1")
	t.Setenv("GENIUS_CACHE_FRESHNESS", "2m")
	t.Setenv("GENIUS_CHAT_RECORD_TRANSCRIPTS", "false")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.ListenAddress != "127.0.0.1:7070" {
		t.Errorf("env override not applied to listen address: %q", cfg.Server.ListenAddress)
	}
	if cfg.Upstream.MaxRetries != 1 {
		t.Errorf("env override not applied to max retries: %d", cfg.Upstream.MaxRetries)
	}
	if cfg.Cache.Freshness != 2*time.Minute {
		t.Errorf("env override not applied to cache freshness: %v", cfg.Cache.Freshness)
	}
	if cfg.Chat.RecordTranscripts {
		t.Error("env override not applied to transcript recording")
	}
}

func TestOpenAIKeyFallback(t *testing.T) {
	path := writeConfigFile(t, `
upstream:
  base_url: https://api.openai.com
`)

	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Upstream.APIKey != "sk-from-env" {
		t.Errorf("expected OPENAI_API_KEY fallback, got %q", cfg.Upstream.APIKey)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.ListenAddress = "no-port"
	cfg.Upstream.APIKey = ""
	cfg.Cache.Backend = "redis"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	valErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(valErr.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(valErr.Errors), valErr)
	}

	fields := make(map[string]bool)
	for _, fe := range valErr.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"server.listen_address", "upstream.api_key", "cache.backend"} {
		if !fields[want] {
			t.Errorf("missing field error for %s", want)
		}
	}
}

func TestValidateTable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad upstream url", func(c *Config) { c.Upstream.BaseURL = "::bad::" }, "upstream.base_url"},
		{"negative retries", func(c *Config) { c.Upstream.MaxRetries = -1 }, "upstream.max_retries"},
		{"temperature range", func(c *Config) { c.Chat.Temperature = 3.5 }, "chat.temperature"},
		{"unknown documents source", func(c *Config) { c.Documents.Source = "s3" }, "documents.source"},
		{"http source without url", func(c *Config) { c.Documents.Source = "http" }, "documents.base_url"},
		{"zero summary attempts", func(c *Config) { c.Summary.MaxAttempts = 0 }, "summary.max_attempts"},
		{"bad sweep schedule", func(c *Config) { c.Cache.SweepSchedule = "bogus" }, "cache.sweep_schedule"},
		{"unknown storage backend", func(c *Config) { c.Storage.Backend = "dynamo" }, "storage.backend"},
		{"unknown log level", func(c *Config) { c.Telemetry.Logging.Level = "verbose" }, "telemetry.logging.level"},
		{"unknown log format", func(c *Config) { c.Telemetry.Logging.Format = "xml" }, "telemetry.logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Upstream.APIKey = "test-key"
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error mentioning %s, got: %v", tt.field, err)
			}
		})
	}
}

func TestValidDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Upstream.APIKey = "test-key"
	if err := Validate(cfg); err != nil {
		t.Fatalf("default configuration should validate: %v", err)
	}
}

func TestSingletonSetAndGet(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := DefaultConfig()
	cfg.Upstream.APIKey = "test-key"
	SetConfig(cfg)

	if got := GetConfig(); got != cfg {
		t.Error("expected SetConfig instance from GetConfig")
	}
	if got := MustGetConfig(); got != cfg {
		t.Error("expected SetConfig instance from MustGetConfig")
	}
}
