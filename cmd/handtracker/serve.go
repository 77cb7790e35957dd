package main

import (
	"github.com/lox/handtracker/cmd/handtracker/shared"
	"github.com/lox/handtracker/internal/config"
	"github.com/lox/handtracker/internal/engine"
	"github.com/lox/handtracker/internal/stream"
)

// ServeCmd streams a hand replay over WebSocket. Viewers connect to
// /ws and receive a snapshot every replay interval; late joiners get
// the current snapshot on connect.
type ServeCmd struct {
	ID   string `arg:"" optional:"" help:"Saved hand id"`
	File string `help:"Load the record from a JSON file instead of the database"`
	Addr string `help:"Listen address (overrides the config file)"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.Settings.LogLevel, cli.Debug)
	ctx := shared.SetupSignalHandler(logger)

	rec, err := loadRecord(ctx, cfg, logger, c.File, c.ID)
	if err != nil {
		return err
	}

	addr := cfg.Settings.ListenAddr
	if c.Addr != "" {
		addr = c.Addr
	}
	srv := stream.NewServer(addr, logger)

	e := engine.New(logger, engine.WithReplayInterval(replayInterval(cfg)))
	e.Subscribe(srv)
	if err := e.Load(rec); err != nil {
		return err
	}
	e.PlayReplay()

	logger.Info("streaming replay",
		"addr", addr,
		"snapshots", len(rec.History),
		"interval", replayInterval(cfg))
	return srv.Run(ctx)
}
