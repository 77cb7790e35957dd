package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/deck"
)

func TestNavigateHistoryRestoresState(t *testing.T) {
	e := testEngine()
	require.NoError(t, e.Setup(standardConfig(3)))

	e.PerformAction(ActionRaise, 30) // BTN
	e.PerformAction(ActionCall, 0)   // SB
	want := e.History()[1]

	// The fold closes the round, so it records two snapshots: the
	// fold itself and the flop street marker.
	e.PerformAction(ActionFold, 0) // BB
	require.Equal(t, 4, e.Cursor())

	e.NavigateHistory(-3)
	assert.Equal(t, 1, e.Cursor())

	snap, ok := e.CurrentSnapshot()
	require.True(t, ok)
	assert.Equal(t, want, snap)

	// Live state matches the snapshot, not just the cursor.
	assert.Equal(t, 30, e.CurrentBet())
	btn, _ := e.Player(0)
	assert.Equal(t, 30, btn.BetThisRound)
	assert.Equal(t, 970, btn.Stack)
}

func TestNavigateHistoryClamps(t *testing.T) {
	e := testEngine()
	require.NoError(t, e.Setup(standardConfig(3)))
	e.PerformAction(ActionCall, 0)

	e.NavigateHistory(-100)
	assert.Equal(t, 0, e.Cursor())

	e.NavigateHistory(100)
	assert.Equal(t, 1, e.Cursor())

	e.JumpTo(-5)
	assert.Equal(t, 0, e.Cursor())
	e.JumpTo(50)
	assert.Equal(t, 1, e.Cursor())
}

func TestRecordingInThePastTruncatesTheFuture(t *testing.T) {
	e := testEngine()
	require.NoError(t, e.Setup(standardConfig(3)))

	e.PerformAction(ActionCall, 0) // BTN
	e.PerformAction(ActionCall, 0) // SB
	e.PerformAction(ActionFold, 0) // BB folds, closing the round
	require.Len(t, e.History(), 5)

	// Rewind to before the fold and take a different action.
	e.NavigateHistory(-2)
	e.PerformAction(ActionCheck, 0)

	history := e.History()
	require.Len(t, history, 5, "the fold branch is gone")
	assert.Contains(t, history[3].Description, "checks")
	assert.Equal(t, 4, e.Cursor())
}

func TestSnapshotsAreImmutable(t *testing.T) {
	e := testEngine()
	require.NoError(t, e.Setup(standardConfig(3)))

	require.NoError(t, e.SelectTarget(Target{Kind: PlayerSlot, PlayerID: 0}))
	require.NoError(t, e.AssignCard(deck.MustParse("Ah")))
	require.NoError(t, e.AssignCard(deck.MustParse("Kd")))
	before := e.History()[0]

	e.PerformAction(ActionRaise, 50)
	e.UnassignCard(Target{Kind: PlayerSlot, PlayerID: 0, Slot: 0})

	after := e.History()[0]
	assert.Equal(t, before, after, "later mutations never reach recorded snapshots")
	assert.True(t, before.Players[0].Cards[0].IsZero(), "cards were dealt after the opening snapshot")
}

func TestSubscriberReceivesSnapshots(t *testing.T) {
	e := testEngine()
	var got []Snapshot
	e.Subscribe(subscriberFunc(func(s Snapshot) { got = append(got, s) }))

	require.NoError(t, e.Setup(standardConfig(3)))
	e.PerformAction(ActionCall, 0)

	require.Len(t, got, 2)
	assert.Equal(t, "Hand started. Blinds posted.", got[0].Description)
	assert.Contains(t, got[1].Description, "calls")
}

type subscriberFunc func(Snapshot)

func (f subscriberFunc) OnSnapshot(s Snapshot) { f(s) }

func TestConsolidateFlopAssignments(t *testing.T) {
	card := func(code string) deck.Card { return deck.MustParse(code) }
	base := Snapshot{
		Players: []Player{{ID: 0, Cards: []deck.Card{card("Ah"), card("Kd")}}},
		Boards:  []Board{make(Board, 5)},
	}
	withFlop := func(codes ...string) Snapshot {
		s := base.Clone()
		for i, c := range codes {
			s.Boards[0][i] = card(c)
		}
		return s
	}

	history := []Snapshot{
		base.Clone(),
		withFlop("7h"),
		withFlop("7h", "8h"),
		withFlop("7h", "8h", "9h"),
	}

	out := Consolidate(history)
	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].flopCount())
	assert.Equal(t, 3, out[1].flopCount())

	t.Run("player card changes break the run", func(t *testing.T) {
		changed := withFlop("7h", "8h")
		changed.Players[0].Cards[0] = card("Qs")
		history := []Snapshot{
			withFlop("7h"),
			changed,
		}
		assert.Len(t, Consolidate(history), 2)
	})

	t.Run("complete snapshots pass through", func(t *testing.T) {
		history := []Snapshot{base.Clone(), withFlop("7h", "8h", "9h")}
		assert.Equal(t, history, Consolidate(history))
	})
}
