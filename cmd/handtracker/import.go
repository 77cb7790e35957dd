package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/handtracker/cmd/handtracker/shared"
	"github.com/lox/handtracker/internal/config"
	"github.com/lox/handtracker/internal/engine"
)

// ImportCmd loads a hand record JSON file, verifies it replays, and
// stores it in the database.
type ImportCmd struct {
	Path  string `arg:"" help:"Path to a hand record JSON file"`
	Title string `help:"Title to store with the hand (defaults to the file name)"`
}

func (c *ImportCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.Settings.LogLevel, cli.Debug)

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	var rec engine.HandRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("invalid hand record %s: %w", c.Path, err)
	}

	// A record that cannot be loaded into an engine is not worth storing.
	if err := engine.New(logger).Load(rec); err != nil {
		return fmt.Errorf("invalid hand record %s: %w", c.Path, err)
	}

	title := c.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path))
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("no database configured; set database_url or DATABASE_URL")
	}
	defer store.Close()

	id, err := store.SaveHand(ctx, title, rec)
	if err != nil {
		return err
	}
	logger.Info("hand imported", "id", id, "title", title, "snapshots", len(rec.History))
	fmt.Println(id)
	return nil
}
