package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"handtracker.hcl" help:"Path to the config file"`
	Debug   bool             `help:"Enable debug logging"`

	Demo   DemoCmd   `cmd:"" help:"Play through a sample hand and open the replay viewer"`
	Replay ReplayCmd `cmd:"" help:"Replay a saved hand in the terminal"`
	Serve  ServeCmd  `cmd:"" help:"Stream a hand replay to WebSocket viewers"`
	Hands  HandsCmd  `cmd:"" help:"List and manage saved hands"`
	Import ImportCmd `cmd:"" help:"Import a hand record JSON file into the database"`
	Export ExportCmd `cmd:"" help:"Export a saved hand to a JSON file"`
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handtracker"),
		kong.Description("Track, save and replay live poker hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli),
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
