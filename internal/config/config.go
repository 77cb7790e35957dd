// Package config loads hand tracker configuration from HCL. A config
// file holds app-level settings plus named table profiles that map
// onto engine hand configurations, so a regular game can be set up
// with one flag.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/handtracker/internal/engine"
)

// File represents a complete configuration file. The settings block
// is optional; a file may hold only profiles.
type File struct {
	Settings *Settings `hcl:"settings,block"`
	Profiles []Profile `hcl:"profile,block"`
}

// Settings contains app-level configuration.
type Settings struct {
	LogLevel         string `hcl:"log_level,optional"`
	LogFile          string `hcl:"log_file,optional"`
	ListenAddr       string `hcl:"listen_addr,optional"`
	DatabaseURL      string `hcl:"database_url,optional"`
	ReplayIntervalMS int    `hcl:"replay_interval_ms,optional"`
}

// Profile is a named table setup.
type Profile struct {
	Name          string `hcl:"name,label"`
	Players       int    `hcl:"players"`
	HeroPosition  string `hcl:"hero_position,optional"`
	Currency      string `hcl:"currency,optional"`
	SmallBlind    int    `hcl:"small_blind"`
	BigBlind      int    `hcl:"big_blind"`
	Variant       string `hcl:"variant,optional"`
	SpecialRule   string `hcl:"special_rule,optional"`
	BombPotBB     int    `hcl:"bomb_pot_bb,optional"`
	DoubleBoard   bool   `hcl:"double_board,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *File {
	return &File{
		Settings: &Settings{
			LogLevel:         "info",
			ListenAddr:       "localhost:8080",
			ReplayIntervalMS: 2000,
		},
		Profiles: []Profile{
			{
				Name:         "default",
				Players:      6,
				HeroPosition: "BTN",
				Currency:     "$",
				SmallBlind:   1,
				BigBlind:     2,
				Variant:      "holdem",
				SpecialRule:  "none",
			},
		},
	}
}

// Load reads configuration from an HCL file. A missing file is not an
// error: the defaults apply.
func Load(filename string) (*File, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg File
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Settings == nil {
		cfg.Settings = &Settings{}
	}
	if cfg.Settings.LogLevel == "" {
		cfg.Settings.LogLevel = "info"
	}
	if cfg.Settings.ListenAddr == "" {
		cfg.Settings.ListenAddr = "localhost:8080"
	}
	if cfg.Settings.ReplayIntervalMS == 0 {
		cfg.Settings.ReplayIntervalMS = 2000
	}

	for i := range cfg.Profiles {
		p := &cfg.Profiles[i]
		if p.HeroPosition == "" {
			p.HeroPosition = "BTN"
		}
		if p.Currency == "" {
			p.Currency = "$"
		}
		if p.Variant == "" {
			p.Variant = "holdem"
		}
		if p.SpecialRule == "" {
			p.SpecialRule = "none"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (f *File) Validate() error {
	seen := make(map[string]bool)
	for _, p := range f.Profiles {
		if seen[p.Name] {
			return fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[p.Name] = true

		if p.Players < 2 || p.Players > 9 {
			return fmt.Errorf("profile %s: players must be between 2 and 9", p.Name)
		}
		if p.SmallBlind <= 0 || p.BigBlind <= 0 {
			return fmt.Errorf("profile %s: blinds must be positive", p.Name)
		}
		if p.SmallBlind > p.BigBlind {
			return fmt.Errorf("profile %s: small blind exceeds big blind", p.Name)
		}
		if _, err := engine.ParseVariant(p.Variant); err != nil {
			return fmt.Errorf("profile %s: %w", p.Name, err)
		}
		if _, err := engine.ParseSpecialRule(p.SpecialRule); err != nil {
			return fmt.Errorf("profile %s: %w", p.Name, err)
		}
	}
	return nil
}

// Profile returns the named profile, or nil when it does not exist.
func (f *File) Profile(name string) *Profile {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i]
		}
	}
	return nil
}

// EngineConfig converts the profile into an engine hand configuration.
func (p *Profile) EngineConfig() (engine.Config, error) {
	variant, err := engine.ParseVariant(p.Variant)
	if err != nil {
		return engine.Config{}, err
	}
	rule, err := engine.ParseSpecialRule(p.SpecialRule)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Players:       p.Players,
		HeroPosition:  p.HeroPosition,
		Currency:      p.Currency,
		SmallBlind:    p.SmallBlind,
		BigBlind:      p.BigBlind,
		Variant:       variant,
		SpecialRule:   rule,
		BombPotBB:     p.BombPotBB,
		DoubleBoard:   p.DoubleBoard,
		StartingStack: p.StartingStack,
	}, nil
}
