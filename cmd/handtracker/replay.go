package main

import (
	"context"

	"github.com/lox/handtracker/internal/config"
	"github.com/lox/handtracker/internal/engine"
	"github.com/lox/handtracker/internal/tui"
)

// ReplayCmd opens the terminal replay viewer on a saved hand.
type ReplayCmd struct {
	ID   string `arg:"" optional:"" help:"Saved hand id"`
	File string `help:"Load the record from a JSON file instead of the database"`
}

func (c *ReplayCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	logger, closeLogger, err := viewerLogger(cli, cfg)
	if err != nil {
		return err
	}
	defer closeLogger()

	rec, err := loadRecord(context.Background(), cfg, logger, c.File, c.ID)
	if err != nil {
		return err
	}

	e := engine.New(logger, engine.WithReplayInterval(replayInterval(cfg)))
	if err := e.Load(rec); err != nil {
		return err
	}
	return tui.NewViewer(e, logger).Run()
}
