package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/handtracker/cmd/handtracker/shared"
	"github.com/lox/handtracker/internal/config"
)

// ExportCmd writes a saved hand record back out as JSON.
type ExportCmd struct {
	ID  string `arg:"" help:"Id of the hand to export"`
	Out string `short:"o" help:"Output file (defaults to stdout)"`
}

func (c *ExportCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.Settings.LogLevel, cli.Debug)

	ctx := context.Background()
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("no database configured; set database_url or DATABASE_URL")
	}
	defer store.Close()

	hand, err := store.GetHand(ctx, c.ID)
	if err != nil {
		return err
	}
	if hand == nil {
		return fmt.Errorf("hand %s not found", c.ID)
	}

	data, err := json.MarshalIndent(hand.Record, "", "  ")
	if err != nil {
		return err
	}
	if c.Out == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Out, append(data, '\n'), 0o644); err != nil {
		return err
	}
	logger.Info("hand exported", "id", c.ID, "file", c.Out)
	return nil
}
