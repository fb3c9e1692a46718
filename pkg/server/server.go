// Package server provides the HTTP server for the GuestReview Genius
// API: the chat and summarization proxies, intake and admin endpoints,
// health probes, and the metrics endpoint, behind the standard
// middleware chain.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"guestreview/genius/pkg/cache"
	"guestreview/genius/pkg/config"
	"guestreview/genius/pkg/proxy/handlers"
	"guestreview/genius/pkg/proxy/middleware"
	"guestreview/genius/pkg/storage"
	"guestreview/genius/pkg/telemetry/metrics"
)

// Dependencies carries the wired components the server routes to.
type Dependencies struct {
	// Completer is the chat completion client.
	Completer handlers.Completer

	// Assembler builds the chat system prompt.
	Assembler handlers.PromptAssembler

	// Summarizer answers feedback batches, cache first.
	Summarizer handlers.Summarizer

	// Store persists surveys, feedback, and transcripts. May be nil;
	// intake and admin routes are then not registered.
	Store storage.Store

	// Cache is the summary cache, used for readiness checks.
	Cache cache.Store

	// Metrics is the metrics collector. Nil disables collection.
	Metrics *metrics.Collector
}

// Server is the HTTP server for the GuestReview Genius API.
type Server struct {
	config       *config.Config
	deps         Dependencies
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server over the given dependencies.
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	return &Server{
		config:       cfg,
		deps:         deps,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown, which is
// triggered by context cancellation, SIGINT/SIGTERM, or Shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         s.config.Server.ListenAddress,
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", s.config.Server.ListenAddress)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown",
			"timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()
	maxBody := s.config.Server.MaxBodyBytes

	routes := []string{
		"/v1/chat",
		"/v1/summarize-feedback",
		"/health",
		"/ready",
	}

	chatHandler := handlers.NewChatHandler(
		s.deps.Completer, s.deps.Assembler, s.deps.Store,
		s.config.Chat, maxBody, s.deps.Metrics,
	)
	summaryHandler := handlers.NewSummaryHandler(s.deps.Summarizer, maxBody, s.deps.Metrics)

	mux.Handle("POST /v1/chat", chatHandler)
	mux.Handle("POST /v1/summarize-feedback", summaryHandler)

	if s.deps.Store != nil {
		mux.Handle("POST /v1/surveys", handlers.NewSurveyHandler(s.deps.Store, maxBody))
		mux.Handle("POST /v1/feedback", handlers.NewFeedbackHandler(s.deps.Store, maxBody))

		adminHandler := handlers.NewAdminHandler(s.deps.Store, s.deps.Summarizer)
		mux.HandleFunc("GET /v1/admin/surveys", adminHandler.ListSurveys)
		mux.HandleFunc("GET /v1/admin/feedback", adminHandler.ListFeedback)
		mux.HandleFunc("GET /v1/admin/feedback/summary", adminHandler.FeedbackSummary)
		mux.HandleFunc("GET /v1/admin/chats", adminHandler.ListChats)

		routes = append(routes,
			"/v1/surveys", "/v1/feedback",
			"/v1/admin/surveys", "/v1/admin/feedback",
			"/v1/admin/feedback/summary", "/v1/admin/chats",
		)
	}

	mux.Handle("GET /health", handlers.NewHealthHandler())
	mux.Handle("GET /ready", handlers.NewReadyHandler(s.readinessChecks()...))

	if s.config.Telemetry.Metrics.Enabled && s.deps.Metrics != nil {
		path := s.config.Telemetry.Metrics.Path
		mux.Handle("GET "+path, s.deps.Metrics.Handler())
		routes = append(routes, path)
	}

	// Middleware chain, innermost first. The timeout sits inside CORS
	// and metrics so even a 504 carries CORS headers and is counted.
	var handler http.Handler = mux
	handler = middleware.TimeoutMiddleware(s.config.Server.RequestTimeout)(handler)
	handler = middleware.MetricsMiddleware(s.deps.Metrics, routes)(handler)
	handler = middleware.CORSMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// readinessChecks builds dependency probes from the wired components.
func (s *Server) readinessChecks() []handlers.ReadinessCheck {
	var checks []handlers.ReadinessCheck

	if s.deps.Store != nil {
		checks = append(checks, handlers.ReadinessCheck{
			Name: "storage",
			Check: func(ctx context.Context) error {
				_, err := s.deps.Store.ListFeedback(ctx, 1)
				return err
			},
		})
	}
	if s.deps.Cache != nil {
		checks = append(checks, handlers.ReadinessCheck{
			Name: "cache",
			Check: func(ctx context.Context) error {
				_, err := s.deps.Cache.Len(ctx)
				return err
			},
		})
	}

	return checks
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
