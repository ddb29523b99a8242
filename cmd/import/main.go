// Command import loads a TOML holiday catalog into the SQLite database.
//
// Usage:
//
//	go run ./cmd/import -toml catalog.toml -db data/amlich.db
//
// Without -toml the built-in catalog is stored. The stored catalog is
// replaced in a single transaction, so re-running the import is safe.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/amlich-api/internal/database"
	"github.com/zapponejosh/amlich-api/internal/holiday"
	"github.com/zapponejosh/amlich-api/internal/logger"
)

func main() {
	tomlPath := flag.String("toml", "", "Path to a TOML holiday catalog (default: built-in catalog)")
	dbPath := flag.String("db", "data/amlich.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, level, "text", true)

	if err := run(context.Background(), *tomlPath, *dbPath, log); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("import complete")
}

func run(ctx context.Context, tomlPath, dbPath string, log *slog.Logger) error {
	startTime := time.Now()

	// =========================================================================
	// Step 1: Parse and validate the catalog
	// =========================================================================
	catalog, err := readCatalog(tomlPath, log)
	if err != nil {
		return err
	}
	log.Info("parsed catalog", slog.Int("definitions", catalog.Len()))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// =========================================================================
	// Step 3: Replace the stored catalog
	// =========================================================================
	if err := db.ReplaceCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}

	stats, err := db.GetCatalogStats(ctx)
	if err != nil {
		return err
	}
	log.Info("catalog stored",
		slog.Int("total", stats.Total),
		slog.Int("gregorian", stats.Gregorian),
		slog.Int("lunar", stats.Lunar),
		slog.Int("public", stats.Public),
		slog.Duration("elapsed", time.Since(startTime)),
	)
	return nil
}

func readCatalog(path string, log *slog.Logger) (*holiday.Catalog, error) {
	if path == "" {
		log.Info("using built-in catalog")
		return holiday.DefaultCatalog()
	}

	log.Info("reading TOML file", slog.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read TOML file: %w", err)
	}
	return holiday.ParseCatalog(data)
}
