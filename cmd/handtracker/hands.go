package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/handtracker/cmd/handtracker/shared"
	"github.com/lox/handtracker/internal/config"
)

// HandsCmd groups the saved-hand management subcommands.
type HandsCmd struct {
	List   HandsListCmd   `cmd:"" default:"1" help:"List saved hands"`
	Delete HandsDeleteCmd `cmd:"" help:"Delete a saved hand"`
}

type HandsListCmd struct {
	Limit  int `default:"50" help:"Maximum number of hands to list"`
	Offset int `default:"0" help:"Number of hands to skip"`
}

func (c *HandsListCmd) Run(cli *CLI) error {
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

	hands, err := store.ListHands(ctx, c.Limit, c.Offset)
	if err != nil {
		return err
	}
	if len(hands) == 0 {
		fmt.Println("no saved hands")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAYED\tTITLE\tPLAYERS\tVARIANT\tRULE\tBB\tSNAPSHOTS")
	for _, h := range hands {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%d\t%d\n",
			h.ID, h.PlayedAt.Format("2006-01-02 15:04"), h.Title,
			h.Players, h.Variant, h.SpecialRule, h.BigBlind, h.Snapshots)
	}
	return w.Flush()
}

type HandsDeleteCmd struct {
	ID string `arg:"" help:"Id of the hand to delete"`
}

func (c *HandsDeleteCmd) Run(cli *CLI) error {
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

	if err := store.DeleteHand(ctx, c.ID); err != nil {
		return err
	}
	logger.Info("hand deleted", "id", c.ID)
	return nil
}
