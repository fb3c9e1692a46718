package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 60 * time.Second
	DefaultMaxBodyBytes    = int64(1048576) // 1MB

	// Upstream defaults
	DefaultUpstreamBaseURL        = "https://api.openai.com"
	DefaultUpstreamTimeout        = 120 * time.Second
	DefaultUpstreamMaxRetries     = 3
	DefaultUpstreamInitialBackoff = time.Second

	// Chat defaults
	DefaultChatModel             = "gpt-4o-mini"
	DefaultChatTemperature       = 0.7
	DefaultChatMaxTokens         = 500
	DefaultChatRecordTranscripts = true

	// Documents defaults
	DefaultDocumentsSource       = "file"
	DefaultDocumentsDir          = "documents"
	DefaultDocumentsWatch        = true
	DefaultDocumentsFetchTimeout = 10 * time.Second

	// Summary defaults
	DefaultSummaryModel        = "gpt-4o-mini"
	DefaultSummaryMaxAttempts  = 3
	DefaultSummaryInitialDelay = time.Second

	// Cache defaults
	DefaultCacheBackend       = "memory"
	DefaultCacheFreshness     = 5 * time.Minute
	DefaultCachePath          = "data/cache.db"
	DefaultCacheSweepSchedule = "*/15 * * * *"

	// Storage defaults
	DefaultStorageBackend      = "sqlite"
	DefaultStoragePath         = "data/genius.db"
	DefaultStorageMaxOpenConns = 10
	DefaultStorageMaxIdleConns = 5
	DefaultStorageBusyTimeout  = 5 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "genius"
	DefaultMetricsPath      = "/metrics"
)

// ApplyDefaults fills in default values for any unset configuration
// fields. Boolean fields defaulting to true use the yaml zero value
// problem workaround: they are set here only when the whole section is
// zero, so DefaultConfig is the reference for fresh configurations.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if cfg.Upstream.MaxRetries == 0 {
		cfg.Upstream.MaxRetries = DefaultUpstreamMaxRetries
	}
	if cfg.Upstream.InitialBackoff == 0 {
		cfg.Upstream.InitialBackoff = DefaultUpstreamInitialBackoff
	}

	if cfg.Chat.Model == "" {
		cfg.Chat.Model = DefaultChatModel
	}
	if cfg.Chat.Temperature == 0 {
		cfg.Chat.Temperature = DefaultChatTemperature
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = DefaultChatMaxTokens
	}

	if cfg.Documents.Source == "" {
		cfg.Documents.Source = DefaultDocumentsSource
	}
	if cfg.Documents.Dir == "" {
		cfg.Documents.Dir = DefaultDocumentsDir
	}
	if cfg.Documents.FetchTimeout == 0 {
		cfg.Documents.FetchTimeout = DefaultDocumentsFetchTimeout
	}

	if cfg.Summary.Model == "" {
		cfg.Summary.Model = DefaultSummaryModel
	}
	if cfg.Summary.MaxAttempts == 0 {
		cfg.Summary.MaxAttempts = DefaultSummaryMaxAttempts
	}
	if cfg.Summary.InitialDelay == 0 {
		cfg.Summary.InitialDelay = DefaultSummaryInitialDelay
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.Freshness == 0 {
		cfg.Cache.Freshness = DefaultCacheFreshness
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath
	}
	if cfg.Cache.SweepSchedule == "" {
		cfg.Cache.SweepSchedule = DefaultCacheSweepSchedule
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
	}
	if cfg.Storage.MaxOpenConns == 0 {
		cfg.Storage.MaxOpenConns = DefaultStorageMaxOpenConns
	}
	if cfg.Storage.MaxIdleConns == 0 {
		cfg.Storage.MaxIdleConns = DefaultStorageMaxIdleConns
	}
	if cfg.Storage.BusyTimeout == 0 {
		cfg.Storage.BusyTimeout = DefaultStorageBusyTimeout
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Telemetry.Metrics.RequestDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.RequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}
	}
}

// DefaultConfig returns a fully defaulted configuration, including the
// boolean fields that default to true.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Chat.RecordTranscripts = DefaultChatRecordTranscripts
	cfg.Documents.Watch = DefaultDocumentsWatch
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}
