package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ledgerview/internal/cache"
	"ledgerview/internal/config"
	apphttp "ledgerview/internal/http"
	"ledgerview/internal/ledger"
	"ledgerview/internal/log"
	"ledgerview/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	rng, err := cfg.ResolveRange(time.Now())
	if err != nil {
		logger.Error("Could not resolve reporting period", log.FieldError, err)
		os.Exit(1)
	}

	client := ledger.New(cfg.BaseURL, cfg.APIToken)
	dashboard := services.NewDashboard(client, rng, cfg.CacheTTLMinutes)
	snapshots := cache.NewSlot(cfg.CacheTTL(), dashboard.Refresh)

	srv := apphttp.NewServer(":"+cfg.Port, snapshots)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 120 * time.Second // a cold refresh waits on the upstream API
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting ledgerview server",
		"port", cfg.Port,
		log.FieldRangeStart, rng.Start.Format("2006-01-02"),
		log.FieldRangeEnd, rng.End.Format("2006-01-02"),
		log.FieldCacheTTL, cfg.CacheTTLMinutes)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
