package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/deck"
)

func playShortHand(t *testing.T) *Engine {
	t.Helper()
	e := testEngine()
	require.NoError(t, e.Setup(standardConfig(3)))

	require.NoError(t, e.SelectTarget(Target{Kind: PlayerSlot, PlayerID: 0}))
	require.NoError(t, e.AssignCard(deck.MustParse("Ah")))
	require.NoError(t, e.AssignCard(deck.MustParse("Kd")))

	e.PerformAction(ActionRaise, 30) // BTN
	e.PerformAction(ActionFold, 0)   // SB
	e.PerformAction(ActionFold, 0)   // BB
	require.Equal(t, PhaseShowdown, e.Phase())
	return e
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e := playShortHand(t)
	rec := e.Save()
	assert.Equal(t, 3, rec.Players)
	assert.Equal(t, "BTN", rec.HeroPosition)
	require.NotEmpty(t, rec.History)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded HandRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec, decoded, "records survive JSON unchanged")

	e2 := testEngine()
	require.NoError(t, e2.Load(decoded))
	assert.Equal(t, PhaseReplay, e2.Phase())
	assert.Equal(t, 0, e2.Cursor())
	assert.Equal(t, rec.History, e2.History())
}

func TestLoadEmptyRecord(t *testing.T) {
	e := testEngine()
	err := e.Load(HandRecord{})
	require.ErrorIs(t, err, ErrEmptyRecord)
}

func TestReplayPhaseIsPinned(t *testing.T) {
	e := playShortHand(t)
	e2 := testEngine()
	require.NoError(t, e2.Load(e.Save()))

	e2.NavigateHistory(1)
	assert.Equal(t, PhaseReplay, e2.Phase(), "navigation never leaves the replay phase")

	e2.NavigateHistory(100)
	assert.Equal(t, PhaseReplay, e2.Phase())
	assert.Equal(t, len(e2.History())-1, e2.Cursor())
}

func TestReplayActionsAreIgnored(t *testing.T) {
	e := playShortHand(t)
	e2 := testEngine()
	require.NoError(t, e2.Load(e.Save()))
	before := e2.History()

	e2.PerformAction(ActionRaise, 500)
	assert.Equal(t, before, e2.History(), "the loaded ledger is read-only")
}

func TestSaveConsolidatesFlopAssignments(t *testing.T) {
	e := testEngine()
	require.NoError(t, e.Setup(standardConfig(3)))

	e.PerformAction(ActionCall, 0)
	e.PerformAction(ActionCall, 0)
	e.PerformAction(ActionCheck, 0)
	require.Equal(t, PhaseFlop, e.Phase())

	// Assign the flop one slot at a time so each card records its own
	// snapshot, the way incremental edits do. Starting away from slot 0
	// avoids the multi-slot flop picker.
	for i, slot := range []int{1, 2, 0} {
		code := []string{"7h", "8h", "9h"}[i]
		require.NoError(t, e.SelectTarget(Target{Kind: BoardSlot, Board: 0, Slot: slot}))
		require.NoError(t, e.AssignCard(deck.MustParse(code)))
	}

	liveLen := len(e.History())
	rec := e.Save()
	assert.Len(t, rec.History, liveLen-2, "intermediate flop snapshots are dropped")
}
