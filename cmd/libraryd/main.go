// Command libraryd serves the library records service over HTTP.
//
// Configuration is read from LIBRARY_* environment variables and an optional .env file,
// see package config for the available settings.
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

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-records-go/library/httpapi"
	"github.com/AntonStoeckl/library-records-go/library/shell/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("library records service failed", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer closeStore()

	if err = store.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	handlers, err := buildHandlers(store, logger)
	if err != nil {
		return fmt.Errorf("failed to build handlers: %w", err)
	}

	server, err := httpapi.NewServer(
		handlers,
		httpapi.WithRequestTimeout(cfg.RequestTimeout),
		httpapi.WithContextualLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("library records service listening", "addr", cfg.HTTPAddr, "adapter", string(cfg.AdapterType))
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil

	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx) //nolint:contextcheck
}
