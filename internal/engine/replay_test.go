package engine

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedReplay(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	rec := playShortHand(t).Save()
	e := testEngine(opts...)
	require.NoError(t, e.Load(rec))
	return e
}

func TestReplayAutoAdvances(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	e := loadedReplay(t, WithClock(mClock))
	last := len(e.History()) - 1

	e.PlayReplay()
	require.True(t, e.IsReplaying())

	mClock.Advance(2 * time.Second).MustWait(ctx)
	assert.Equal(t, 1, e.Cursor())

	mClock.Advance(2 * time.Second).MustWait(ctx)
	assert.Equal(t, 2, e.Cursor())

	for e.Cursor() < last {
		mClock.Advance(2 * time.Second).MustWait(ctx)
	}
	assert.False(t, e.IsReplaying(), "the replay pauses itself at the end of the ledger")
}

func TestReplayPause(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	e := loadedReplay(t, WithClock(mClock))

	e.PlayReplay()
	mClock.Advance(2 * time.Second).MustWait(ctx)
	require.Equal(t, 1, e.Cursor())

	e.PauseReplay()
	assert.False(t, e.IsReplaying())
	assert.Equal(t, 1, e.Cursor(), "pausing leaves the cursor in place")
}

func TestReplayInterval(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	e := loadedReplay(t, WithClock(mClock))

	e.SetReplayInterval(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, e.ReplayInterval())

	e.PlayReplay()
	mClock.Advance(500 * time.Millisecond).MustWait(ctx)
	assert.Equal(t, 1, e.Cursor())

	// A playing replay picks up an interval change immediately.
	e.SetReplayInterval(time.Second)
	require.True(t, e.IsReplaying())
	mClock.Advance(time.Second).MustWait(ctx)
	assert.Equal(t, 2, e.Cursor())
}

func TestReplayRestartsFromEnd(t *testing.T) {
	e := loadedReplay(t, WithClock(quartz.NewMock(t)))

	e.NavigateHistory(1000)
	require.Equal(t, len(e.History())-1, e.Cursor())

	e.PlayReplay()
	assert.Equal(t, 0, e.Cursor(), "playing from the end rewinds to the opening snapshot")
	assert.True(t, e.IsReplaying())
	e.PauseReplay()
}

func TestRestartReplay(t *testing.T) {
	e := loadedReplay(t, WithClock(quartz.NewMock(t)))
	e.NavigateHistory(3)
	require.Equal(t, 3, e.Cursor())

	e.RestartReplay()
	assert.Equal(t, 0, e.Cursor())
}

func TestToggleReplay(t *testing.T) {
	e := loadedReplay(t, WithClock(quartz.NewMock(t)))

	e.ToggleReplay()
	assert.True(t, e.IsReplaying())
	e.ToggleReplay()
	assert.False(t, e.IsReplaying())
}

func TestPlayReplayOutsideReplayPhase(t *testing.T) {
	e := testEngine(WithClock(quartz.NewMock(t)))
	require.NoError(t, e.Setup(standardConfig(3)))

	e.PlayReplay()
	assert.False(t, e.IsReplaying(), "live hands never auto-advance")
}
