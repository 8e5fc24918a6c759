package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jareyesmx/personas-web/internal/config"
	"github.com/jareyesmx/personas-web/internal/inference"
	"github.com/jareyesmx/personas-web/internal/relay"
	"github.com/jareyesmx/personas-web/internal/site"

	httphandler "github.com/jareyesmx/personas-web/internal/http"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
	}

	// Initialize inference query client
	queryClient := inference.NewClient(cfg.InferenceURL, cfg.AnswerMarker, httpClient)
	slog.Info("Initialized inference client", "endpoint", cfg.InferenceURL)

	// Initialize email relay client (optional)
	var scheduler httphandler.Scheduler
	if cfg.RelayURL != "" {
		scheduler = relay.NewClient(cfg.RelayURL, cfg.RelayAccessKey, httpClient)
		slog.Info("Initialized relay client", "endpoint", cfg.RelayURL)
	} else {
		slog.Warn("No relay configured, scheduling is disabled")
	}

	// Initialize site renderer
	profiles := make([]string, 0, 2)
	for _, p := range inference.Profiles() {
		profiles = append(profiles, string(p))
	}
	renderer, err := site.NewRenderer(profiles)
	if err != nil {
		slog.Error("Failed to create renderer", "error", err)
		os.Exit(1)
	}
	slog.Info("Initialized site renderer", "views", len(site.Views()))

	// Initialize HTTP handlers
	handler := httphandler.NewHandlers(queryClient, scheduler, renderer)

	// Create router
	r := httphandler.NewRouter(handler)

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server running", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
