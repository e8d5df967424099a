package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"recordbook-web/internal/config"
	apphttp "recordbook-web/internal/http"
	applog "recordbook-web/internal/log"
	"recordbook-web/internal/recordbook"
	"recordbook-web/internal/wizard"
)

func main() {
	// A local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Handler:   slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	api, err := recordbook.New(cfg.APIBaseURL, cfg.APITimeout, logger.WithComponent(applog.ComponentAPI))
	if err != nil {
		logger.Error("failed to initialize backend client", applog.FieldError, err)
		os.Exit(1)
	}

	wizards := wizard.NewStore(cfg.SessionTTL, cfg.MaxSessions)

	srv := apphttp.NewServer(":"+cfg.Port, api, wizards, logger.WithComponent(applog.ComponentHTTP))

	// Server timeouts and limits.
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting server",
		"addr", srv.Addr,
		"api_base_url", cfg.APIBaseURL)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", applog.FieldError, err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped")
}
