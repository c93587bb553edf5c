// Package main is the entrypoint for the video relay server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ryukazi/Render-yt/internal/api"
	"github.com/Ryukazi/Render-yt/internal/api/handler"
	"github.com/Ryukazi/Render-yt/internal/config"
	"github.com/Ryukazi/Render-yt/internal/resolver/youtube"
	"github.com/Ryukazi/Render-yt/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	// Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "store", cfg.Store.Backend, "job_ttl", cfg.Jobs.TTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobStore, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create job store: %w", err)
	}
	defer jobStore.Close()

	res := youtube.NewResolver()

	deps := api.Dependencies{
		Liveness: livenessHandler(jobStore),
		Analyze:  handler.NewAnalyzeHandler(jobStore, res),
		Convert:  handler.NewConvertHandler(jobStore, cfg.Server.BaseURL),
		Status:   handler.NewStatusHandler(jobStore),
		Download: handler.NewDownloadHandler(jobStore, res),
	}

	router := api.NewRouter(deps)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: downloads are long-lived streams whose duration
		// depends on the client's bandwidth.
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newStore constructs the configured job store backend. The memory store
// owns a sweep task bound to the process lifetime; Redis expires keys on
// its own.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "redis":
		rs, err := store.NewRedisStore(cfg.Store.RedisURL, cfg.Jobs.TTL)
		if err != nil {
			return nil, err
		}
		if err := rs.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis job store connected")
		return rs, nil
	default:
		ms := store.NewMemoryStore(cfg.Jobs.TTL)
		ms.StartSweeper(ctx, cfg.Jobs.SweepInterval)
		return ms, nil
	}
}

// livenessHandler answers the root path with a plain-text liveness line.
func livenessHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Ping(r.Context()); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "video relay is up")
	}
}
