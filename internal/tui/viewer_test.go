package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/engine"
)

func loadedEngine(t *testing.T) *engine.Engine {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	live := engine.New(logger)
	require.NoError(t, live.Setup(engine.Config{
		Players:      3,
		HeroPosition: "BTN",
		Currency:     "$",
		SmallBlind:   5,
		BigBlind:     10,
	}))
	live.PerformAction(engine.ActionRaise, 30)
	live.PerformAction(engine.ActionFold, 0)
	live.PerformAction(engine.ActionFold, 0)

	replay := engine.New(logger)
	require.NoError(t, replay.Load(live.Save()))
	return replay
}

func TestViewerRendersSnapshot(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	m := NewViewer(loadedEngine(t), logger)

	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := model.View()

	assert.Contains(t, view, "Hand Replay")
	assert.Contains(t, view, "Blinds posted")
	assert.Contains(t, view, "Hero")
	assert.Contains(t, view, "Pot:")
}

func TestViewerStepsWithArrowKeys(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	e := loadedEngine(t)
	m := NewViewer(e, logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, e.Cursor())

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, e.Cursor())

	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, len(e.History())-1, e.Cursor())
}

func TestViewerSpaceTogglesPlayback(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	m := NewViewer(loadedEngine(t), logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.playing)
	assert.NotNil(t, cmd, "playing schedules a tick")

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.playing)
}
