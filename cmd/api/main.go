// Package main is the entry point for the lunar calendar API server.
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

	"github.com/zapponejosh/amlich-api/internal/api"
	"github.com/zapponejosh/amlich-api/internal/calendar"
	"github.com/zapponejosh/amlich-api/internal/config"
	"github.com/zapponejosh/amlich-api/internal/database"
	"github.com/zapponejosh/amlich-api/internal/holiday"
	"github.com/zapponejosh/amlich-api/internal/logger"
	"github.com/zapponejosh/amlich-api/internal/sexagenary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.Setup(cfg)

	log.Info("starting amlich API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.String("catalog_source", cfg.CatalogSource),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	svc := api.Services{}

	// The catalog is loaded once and never mutated afterwards.
	var catalog *holiday.Catalog
	if cfg.UsesDatabase() {
		db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
		if err != nil {
			return err
		}
		defer db.Close()

		if _, err := db.Migrate(ctx); err != nil {
			return err
		}
		catalog, err = db.LoadCatalog(ctx)
		if err != nil {
			return err
		}
		svc.Health = db
	} else {
		var err error
		catalog, err = holiday.DefaultCatalog()
		if err != nil {
			return err
		}
	}
	log.Info("holiday catalog loaded", slog.Int("definitions", catalog.Len()))

	svc.Converter = calendar.NewVietnameseConverter()
	svc.Calculator = sexagenary.NewCalculator(svc.Converter)
	svc.Cache = sexagenary.NewCache(svc.Calculator, cfg.CacheCapacity, log)
	svc.Resolver = holiday.NewResolver(catalog, svc.Converter, log)

	handlers := api.NewHandlers(svc, cfg, log)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("amlich API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
