package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/qbexport/internal/api"
	"github.com/dgallion1/qbexport/internal/config"
	"github.com/dgallion1/qbexport/internal/outputs"
	"github.com/dgallion1/qbexport/internal/pipeline"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := outputs.NewStore(cfg.OutputDir, cfg.MaxOutputFiles, log)
	if err != nil {
		log.Error("failed to open output directory", "dir", cfg.OutputDir, "error", err)
		os.Exit(1)
	}
	// Apply retention to whatever a previous run left behind.
	if err := store.Prune(); err != nil {
		log.Warn("initial prune failed", "error", err)
	}

	conv := pipeline.NewConverter(store, pipeline.NewStats(cfg.StatsWindow), log)
	srv := api.NewServer(conv, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting qbexport",
		"port", cfg.Port,
		"output_dir", cfg.OutputDir,
		"max_output_files", cfg.MaxOutputFiles,
		"auth", cfg.APIKey != "",
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
