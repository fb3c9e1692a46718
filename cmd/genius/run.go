package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"guestreview/genius/pkg/cache"
	"guestreview/genius/pkg/cli"
	"guestreview/genius/pkg/config"
	"guestreview/genius/pkg/llm"
	"guestreview/genius/pkg/prompt"
	"guestreview/genius/pkg/server"
	"guestreview/genius/pkg/storage"
	"guestreview/genius/pkg/summary"
	"guestreview/genius/pkg/telemetry/logging"
	"guestreview/genius/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the GuestReview Genius server",
	Long: `Start the GuestReview Genius server with the specified configuration.

The server listens on the configured address and serves the chat proxy,
the feedback summarization proxy, intake and admin endpoints, health
probes, and metrics.

Examples:
  # Start with default config
  genius run

  # Start with custom config
  genius run --config /etc/genius/genius.yaml

  # Override listen address
  genius run --listen 0.0.0.0:8080

  # Validate config without starting the server
  genius run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging, os.Stdout); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	// Completion client for the chat proxy, with the rate-limit retry
	// policy from config.
	chatClient, err := llm.NewClient(llm.Config{
		BaseURL:        cfg.Upstream.BaseURL,
		APIKey:         cfg.Upstream.APIKey,
		Timeout:        cfg.Upstream.Timeout,
		MaxRetries:     cfg.Upstream.MaxRetries,
		InitialBackoff: cfg.Upstream.InitialBackoff,
	})
	if err != nil {
		return cli.NewConfigError("upstream", err.Error())
	}
	defer chatClient.Close()

	// The summarizer owns its retry loop and retries every failure, so
	// its client must make exactly one attempt per call.
	summaryClient, err := llm.NewClient(llm.Config{
		BaseURL:    cfg.Upstream.BaseURL,
		APIKey:     cfg.Upstream.APIKey,
		Timeout:    cfg.Upstream.Timeout,
		MaxRetries: -1,
	})
	if err != nil {
		return cli.NewConfigError("upstream", err.Error())
	}
	defer summaryClient.Close()

	docStore, cleanup, err := buildDocumentStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}
	defer cleanup()
	assembler := prompt.NewAssembler(docStore)
	fmt.Printf("✓ Documents loaded (%s source)\n", cfg.Documents.Source)

	cacheStore, err := buildCacheStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize summary cache: %w", err)
	}
	defer cacheStore.Close()

	if cfg.Cache.SweepSchedule != "" {
		sweeper := cache.NewSweeper(cacheStore, cfg.Cache.SweepSchedule, cache.WithSweeperMetrics(collector))
		if err := sweeper.Start(cmd.Context()); err != nil {
			slog.Warn("failed to start cache sweeper", "error", err)
		} else {
			defer sweeper.Stop()
		}
	}
	fmt.Printf("✓ Summary cache initialized (%s backend)\n", cfg.Cache.Backend)

	summarizer := summary.NewSummarizer(summaryClient, cacheStore, summary.Config{
		Model:             cfg.Summary.Model,
		MaxAttempts:       cfg.Summary.MaxAttempts,
		InitialDelay:      cfg.Summary.InitialDelay,
		DisableCoalescing: cfg.Summary.DisableCoalescing,
		Metrics:           collector,
	})

	store, err := buildStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	fmt.Printf("✓ Storage initialized (%s backend)\n", cfg.Storage.Backend)

	srv := server.NewServer(cfg, server.Dependencies{
		Completer:  chatClient,
		Assembler:  assembler,
		Summarizer: summarizer,
		Store:      store,
		Cache:      cacheStore,
		Metrics:    collector,
	})

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(cmd.Context()); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

// buildDocumentStore creates the document backend selected by config.
// The returned cleanup stops the file watcher when one was started.
func buildDocumentStore(ctx context.Context, cfg *config.Config) (prompt.DocumentStore, func(), error) {
	switch cfg.Documents.Source {
	case "file":
		fs, err := prompt.NewFileStore(cfg.Documents.Dir)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Documents.Watch {
			if err := fs.Watch(ctx); err != nil {
				slog.Warn("document watching disabled", "error", err)
			}
		}
		return fs, func() { fs.Close() }, nil
	case "http":
		hs := prompt.NewHTTPStore(prompt.HTTPStoreConfig{
			BaseURL: cfg.Documents.BaseURL,
			APIKey:  cfg.Documents.APIKey,
			Timeout: cfg.Documents.FetchTimeout,
		})
		return hs, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported documents source: %s", cfg.Documents.Source)
	}
}

// buildCacheStore creates the summary cache backend selected by config.
func buildCacheStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemory(cfg.Cache.Freshness), nil
	case "sqlite":
		return cache.NewSQLite(cfg.Cache.Path, cfg.Cache.Freshness)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}

// buildStorage creates the record storage backend selected by config.
func buildStorage(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "sqlite":
		return storage.NewSQLiteStore(&storage.SQLiteConfig{
			Path:         cfg.Storage.Path,
			MaxOpenConns: cfg.Storage.MaxOpenConns,
			MaxIdleConns: cfg.Storage.MaxIdleConns,
			WALMode:      true,
			BusyTimeout:  cfg.Storage.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}

func printBanner(cfg *config.Config) {
	fmt.Printf("GuestReview Genius v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	slog.Debug("documents configured", "source", cfg.Documents.Source)
	slog.Debug("cache configured",
		"backend", cfg.Cache.Backend,
		"freshness", cfg.Cache.Freshness,
	)
	slog.Debug("storage configured", "backend", cfg.Storage.Backend)
}
