package config

import "time"

// Config is the root configuration structure for GuestReview Genius.
// It contains all configuration sections for the HTTP server, the
// upstream completion API, prompt documents, summarization, caching,
// storage, and telemetry.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and CORS settings.
	Server ServerConfig `yaml:"server"`

	// Upstream contains configuration for the OpenAI-compatible
	// completion API the proxy forwards to.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Chat contains configuration for the review-response chat proxy.
	Chat ChatConfig `yaml:"chat"`

	// Documents contains configuration for the knowledge documents
	// assembled into the chat system prompt.
	Documents DocumentsConfig `yaml:"documents"`

	// Summary contains configuration for the feedback summarization proxy.
	Summary SummaryConfig `yaml:"summary"`

	// Cache contains configuration for the summary cache.
	Cache CacheConfig `yaml:"cache"`

	// Storage contains configuration for survey, feedback, and
	// transcript persistence.
	Storage StorageConfig `yaml:"storage"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of
	// the response. Must cover a full upstream retry cycle.
	// Default: 60s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request when
	// keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown before in-flight requests are dropped.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RequestTimeout is the per-request deadline applied by middleware.
	// Default: 60s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// MaxBodyBytes limits the size of accepted request bodies.
	// Default: 1048576 (1MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// UpstreamConfig contains configuration for the completion API.
type UpstreamConfig struct {
	// BaseURL is the base URL of the OpenAI-compatible API.
	// Default: "https://api.openai.com"
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates requests to the upstream API. Usually set
	// via the GENIUS_UPSTREAM_API_KEY environment variable.
	APIKey string `yaml:"api_key"`

	// Timeout is the per-call HTTP timeout.
	// Default: 120s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the number of retries after a rate-limited call.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`

	// InitialBackoff is the wait before the first retry; each
	// subsequent wait doubles.
	// Default: 1s
	InitialBackoff time.Duration `yaml:"initial_backoff"`
}

// ChatConfig contains configuration for the chat proxy.
type ChatConfig struct {
	// Model is the completion model for chat responses.
	// Default: "gpt-4o-mini"
	Model string `yaml:"model"`

	// Temperature is the sampling temperature for chat completions.
	// Default: 0.7
	Temperature float64 `yaml:"temperature"`

	// MaxTokens caps the completion length.
	// Default: 500
	MaxTokens int `yaml:"max_tokens"`

	// RecordTranscripts controls whether completed exchanges are stored.
	// Storage failures never fail the chat request.
	// Default: true
	RecordTranscripts bool `yaml:"record_transcripts"`
}

// DocumentsConfig contains configuration for prompt document retrieval.
type DocumentsConfig struct {
	// Source selects the document backend: "http" or "file".
	// Default: "file"
	Source string `yaml:"source"`

	// BaseURL is the blob endpoint for the http source.
	BaseURL string `yaml:"base_url"`

	// APIKey is sent as the apikey header by the http source.
	APIKey string `yaml:"api_key"`

	// Dir is the local directory for the file source.
	// Default: "documents"
	Dir string `yaml:"dir"`

	// Watch enables hot reload of the file source directory.
	// Default: true
	Watch bool `yaml:"watch"`

	// FetchTimeout bounds each http document fetch.
	// Default: 10s
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// SummaryConfig contains configuration for feedback summarization.
type SummaryConfig struct {
	// Model is the completion model for summaries.
	// Default: "gpt-4o-mini"
	Model string `yaml:"model"`

	// MaxAttempts is the total number of upstream calls per batch.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts"`

	// InitialDelay is the wait before the second attempt; each
	// subsequent wait doubles.
	// Default: 1s
	InitialDelay time.Duration `yaml:"initial_delay"`

	// DisableCoalescing turns off single-flight grouping of concurrent
	// identical batches.
	// Default: false
	DisableCoalescing bool `yaml:"disable_coalescing"`
}

// CacheConfig contains configuration for the summary cache.
type CacheConfig struct {
	// Backend selects the cache backend: "memory" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// Freshness is how long a cached summary is served before it is
	// recomputed.
	// Default: 5m
	Freshness time.Duration `yaml:"freshness"`

	// Path is the database file for the sqlite backend.
	// Default: "data/cache.db"
	Path string `yaml:"path"`

	// SweepSchedule is a cron expression for purging expired entries.
	// Empty disables the sweeper.
	// Default: "*/15 * * * *"
	SweepSchedule string `yaml:"sweep_schedule"`
}

// StorageConfig contains configuration for record persistence.
type StorageConfig struct {
	// Backend selects the storage backend: "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Path is the database file for the sqlite backend.
	// Default: "data/genius.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format selects the output encoding: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "genius"
	Namespace string `yaml:"namespace"`

	// Subsystem is the secondary metric name prefix.
	// Default: ""
	Subsystem string `yaml:"subsystem"`

	// Path is the exposition endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// RequestDurationBuckets are histogram buckets for request
	// latencies in seconds.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
