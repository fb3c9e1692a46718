package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns
// any errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile reads and parses the configuration file and applies
// defaults, without validating.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)
	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention GENIUS_SECTION_FIELD (e.g., GENIUS_SERVER_LISTEN_ADDRESS)
// and always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format GENIUS_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("GENIUS_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("GENIUS_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("GENIUS_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("GENIUS_SERVER_REQUEST_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.RequestTimeout = d
		}
	}
	if val := os.Getenv("GENIUS_SERVER_MAX_BODY_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = i
		}
	}

	// Upstream overrides
	if val := os.Getenv("GENIUS_UPSTREAM_BASE_URL"); val != "" {
		cfg.Upstream.BaseURL = val
	}
	if val := os.Getenv("GENIUS_UPSTREAM_API_KEY"); val != "" {
		cfg.Upstream.APIKey = val
	}
	// Also honor the conventional OpenAI variable when the dedicated
	// one is unset.
	if cfg.Upstream.APIKey == "" {
		cfg.Upstream.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if val := os.Getenv("GENIUS_UPSTREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.Timeout = d
		}
	}
	if val := os.Getenv("GENIUS_UPSTREAM_MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Upstream.MaxRetries = i
		}
	}
	if val := os.Getenv("GENIUS_UPSTREAM_INITIAL_BACKOFF"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.InitialBackoff = d
		}
	}

	// Chat overrides
	if val := os.Getenv("GENIUS_CHAT_MODEL"); val != "" {
		cfg.Chat.Model = val
	}
	if val := os.Getenv("GENIUS_CHAT_TEMPERATURE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Chat.Temperature = f
		}
	}
	if val := os.Getenv("GENIUS_CHAT_MAX_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Chat.MaxTokens = i
		}
	}
	if val := os.Getenv("GENIUS_CHAT_RECORD_TRANSCRIPTS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Chat.RecordTranscripts = b
		}
	}

	// Documents overrides
	if val := os.Getenv("GENIUS_DOCUMENTS_SOURCE"); val != "" {
		cfg.Documents.Source = val
	}
	if val := os.Getenv("GENIUS_DOCUMENTS_BASE_URL"); val != "" {
		cfg.Documents.BaseURL = val
	}
	if val := os.Getenv("GENIUS_DOCUMENTS_API_KEY"); val != "" {
		cfg.Documents.APIKey = val
	}
	if val := os.Getenv("GENIUS_DOCUMENTS_DIR"); val != "" {
		cfg.Documents.Dir = val
	}
	if val := os.Getenv("GENIUS_DOCUMENTS_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Documents.Watch = b
		}
	}

	// Summary overrides
	if val := os.Getenv("GENIUS_SUMMARY_MODEL"); val != "" {
		cfg.Summary.Model = val
	}
	if val := os.Getenv("GENIUS_SUMMARY_MAX_ATTEMPTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Summary.MaxAttempts = i
		}
	}
	if val := os.Getenv("GENIUS_SUMMARY_INITIAL_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Summary.InitialDelay = d
		}
	}

	// Cache overrides
	if val := os.Getenv("GENIUS_CACHE_BACKEND"); val != "" {
		cfg.Cache.Backend = val
	}
	if val := os.Getenv("GENIUS_CACHE_FRESHNESS"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Cache.Freshness = d
		}
	}
	if val := os.Getenv("GENIUS_CACHE_PATH"); val != "" {
		cfg.Cache.Path = val
	}
	if val := os.Getenv("GENIUS_CACHE_SWEEP_SCHEDULE"); val != "" {
		cfg.Cache.SweepSchedule = val
	}

	// Storage overrides
	if val := os.Getenv("GENIUS_STORAGE_BACKEND"); val != "" {
		cfg.Storage.Backend = val
	}
	if val := os.Getenv("GENIUS_STORAGE_PATH"); val != "" {
		cfg.Storage.Path = val
	}

	// Telemetry overrides
	if val := os.Getenv("GENIUS_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("GENIUS_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("GENIUS_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
