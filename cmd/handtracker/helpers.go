package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/handtracker/cmd/handtracker/shared"
	"github.com/lox/handtracker/internal/config"
	"github.com/lox/handtracker/internal/engine"
	"github.com/lox/handtracker/internal/storage"
)

// databaseURL resolves the Postgres connection string: config file
// first, DATABASE_URL environment variable as fallback.
func databaseURL(cfg *config.File) string {
	if cfg.Settings.DatabaseURL != "" {
		return cfg.Settings.DatabaseURL
	}
	return os.Getenv("DATABASE_URL")
}

// openStore connects to storage, which may legitimately be absent.
func openStore(ctx context.Context, cfg *config.File, logger *log.Logger) (*storage.Store, error) {
	return storage.NewStore(ctx, databaseURL(cfg), logger)
}

// replayInterval converts the configured interval to a duration.
func replayInterval(cfg *config.File) time.Duration {
	return time.Duration(cfg.Settings.ReplayIntervalMS) * time.Millisecond
}

// loadRecord fetches a hand record either from a JSON file or from
// the database by id. Exactly one of file and id must be set.
func loadRecord(ctx context.Context, cfg *config.File, logger *log.Logger, file, id string) (engine.HandRecord, error) {
	var rec engine.HandRecord

	switch {
	case file != "" && id != "":
		return rec, fmt.Errorf("pass either a hand id or --file, not both")

	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return rec, err
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return rec, fmt.Errorf("invalid hand record %s: %w", file, err)
		}
		return rec, nil

	case id != "":
		store, err := openStore(ctx, cfg, logger)
		if err != nil {
			return rec, err
		}
		if store == nil {
			return rec, fmt.Errorf("no database configured; set database_url or DATABASE_URL")
		}
		defer store.Close()

		hand, err := store.GetHand(ctx, id)
		if err != nil {
			return rec, err
		}
		if hand == nil {
			return rec, fmt.Errorf("hand %s not found", id)
		}
		return hand.Record, nil

	default:
		return rec, fmt.Errorf("pass a hand id or --file")
	}
}

// viewerLogger keeps the terminal free for the TUI: logs go to the
// configured log file, or nowhere.
func viewerLogger(cli *CLI, cfg *config.File) (*log.Logger, func(), error) {
	if cfg.Settings.LogFile == "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
		return logger, func() {}, nil
	}
	logger, closer, err := shared.SetupFileLogger(cfg.Settings.LogFile, cfg.Settings.LogLevel, cli.Debug)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}
