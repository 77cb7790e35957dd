package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "handtracker.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/handtracker.hcl")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	require.NotNil(t, cfg.Profile("default"))
	assert.Equal(t, 6, cfg.Profile("default").Players)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
settings {
  log_level          = "debug"
  listen_addr        = "0.0.0.0:9090"
  database_url       = "postgres://localhost/handtracker"
  replay_interval_ms = 1000
}

profile "home-game" {
  players       = 4
  hero_position = "CO"
  currency      = "€"
  small_blind   = 5
  big_blind     = 10
  variant       = "pineapple"
  special_rule  = "straddle"
}

profile "bomb-pot-night" {
  players      = 6
  small_blind  = 1
  big_blind    = 2
  special_rule = "bombPot"
  bomb_pot_bb  = 5
  double_board = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, "0.0.0.0:9090", cfg.Settings.ListenAddr)
	assert.Equal(t, 1000, cfg.Settings.ReplayIntervalMS)

	p := cfg.Profile("home-game")
	require.NotNil(t, p)
	assert.Equal(t, "CO", p.HeroPosition)
	assert.Equal(t, "€", p.Currency)

	ec, err := p.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, engine.VariantCrazyPineapple, ec.Variant)
	assert.Equal(t, engine.RuleStraddle, ec.SpecialRule)

	bp := cfg.Profile("bomb-pot-night")
	require.NotNil(t, bp)
	assert.Equal(t, "BTN", bp.HeroPosition, "defaults applied to sparse profiles")
	ec, err = bp.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, engine.RuleBombPot, ec.SpecialRule)
	assert.True(t, ec.DoubleBoard)

	assert.Nil(t, cfg.Profile("missing"))
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", `settings {`},
		{"unknown variant", `
profile "p" {
  players     = 4
  small_blind = 1
  big_blind   = 2
  variant     = "badugi"
}`},
		{"too many players", `
profile "p" {
  players     = 12
  small_blind = 1
  big_blind   = 2
}`},
		{"duplicate profiles", `
profile "p" {
  players     = 4
  small_blind = 1
  big_blind   = 2
}
profile "p" {
  players     = 4
  small_blind = 1
  big_blind   = 2
}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
