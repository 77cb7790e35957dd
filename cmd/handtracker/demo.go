package main

import (
	"context"
	"fmt"

	"github.com/lox/handtracker/internal/config"
	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/engine"
	"github.com/lox/handtracker/internal/tui"
)

// DemoCmd plays through a scripted sample hand and opens the replay
// viewer on the result, so the viewer can be tried without a database.
type DemoCmd struct {
	Profile string `default:"default" help:"Config profile supplying blinds and currency"`
	Save    bool   `help:"Also save the demo hand to the database"`
}

func (c *DemoCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	profile := cfg.Profile(c.Profile)
	if profile == nil {
		return fmt.Errorf("profile %q not found", c.Profile)
	}

	logger, closeLogger, err := viewerLogger(cli, cfg)
	if err != nil {
		return err
	}
	defer closeLogger()

	live := engine.New(logger)
	if err := live.Setup(engine.Config{
		Players:      4,
		HeroPosition: "BTN",
		Currency:     profile.Currency,
		SmallBlind:   profile.SmallBlind,
		BigBlind:     profile.BigBlind,
	}); err != nil {
		return err
	}
	bb := profile.BigBlind

	deal := func(t engine.Target, codes ...string) error {
		if err := live.SelectTarget(t); err != nil {
			return err
		}
		for _, code := range codes {
			if err := live.AssignCard(deck.MustParse(code)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := deal(engine.Target{Kind: engine.PlayerSlot, PlayerID: 0}, "As", "Ad"); err != nil {
		return err
	}

	// Preflop: cutoff calls, the hero raises, big blind defends.
	live.PerformAction(engine.ActionCall, 0)
	live.PerformAction(engine.ActionRaise, 3*bb)
	live.PerformAction(engine.ActionFold, 0)
	live.PerformAction(engine.ActionCall, 0)
	live.PerformAction(engine.ActionCall, 0)

	if err := deal(engine.Target{Kind: engine.BoardSlot, Board: 0, Slot: 0}, "7h", "8h", "9h"); err != nil {
		return err
	}
	live.PerformAction(engine.ActionCheck, 0)
	live.PerformAction(engine.ActionCheck, 0)
	live.PerformAction(engine.ActionBet, 5*bb)
	live.PerformAction(engine.ActionCall, 0)
	live.PerformAction(engine.ActionFold, 0)

	if err := deal(engine.Target{Kind: engine.BoardSlot, Board: 0, Slot: 3}, "2c"); err != nil {
		return err
	}
	live.PerformAction(engine.ActionCheck, 0)
	live.PerformAction(engine.ActionBet, 12*bb)
	live.PerformAction(engine.ActionCall, 0)

	if err := deal(engine.Target{Kind: engine.BoardSlot, Board: 0, Slot: 4}, "Qd"); err != nil {
		return err
	}
	live.PerformAction(engine.ActionCheck, 0)
	live.PerformAction(engine.ActionCheck, 0)

	rec := live.Save()

	if c.Save {
		ctx := context.Background()
		store, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.SaveHand(ctx, "demo hand", rec)
		if err != nil {
			return err
		}
		logger.Info("demo hand saved", "id", id)
	}

	replay := engine.New(logger, engine.WithReplayInterval(replayInterval(cfg)))
	if err := replay.Load(rec); err != nil {
		return err
	}
	return tui.NewViewer(replay, logger).Run()
}
