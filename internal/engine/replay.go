package engine

import (
	"context"
	"time"
)

// PlayReplay starts the auto-advance timer in the replay phase. If the
// cursor is already at the final snapshot the replay restarts from the
// beginning. Starting an already-playing replay does nothing.
func (e *Engine) PlayReplay() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseReplay || e.replaying {
		return
	}
	if e.cursor >= len(e.history)-1 {
		e.navigateHistory(-len(e.history))
	}
	e.startReplayLocked()
}

func (e *Engine) startReplayLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	e.stopReplay = cancel
	e.replaying = true
	e.logger.Debug("replay started", "interval", e.replaySpeed, "cursor", e.cursor)

	e.clock.TickerFunc(ctx, e.replaySpeed, func() error {
		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.replaying {
			return nil
		}
		e.navigateHistory(1)
		if e.cursor >= len(e.history)-1 {
			// End of the ledger: auto-pause.
			e.stopReplayLocked()
		}
		return nil
	}, "replay")
}

// PauseReplay stops the auto-advance timer, leaving the cursor in place.
func (e *Engine) PauseReplay() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopReplayLocked()
}

// ToggleReplay plays when paused and pauses when playing.
func (e *Engine) ToggleReplay() {
	e.mu.Lock()
	playing := e.replaying
	e.mu.Unlock()
	if playing {
		e.PauseReplay()
	} else {
		e.PlayReplay()
	}
}

// RestartReplay rewinds the cursor to the opening snapshot. The
// playing/paused state is preserved.
func (e *Engine) RestartReplay() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseReplay {
		return
	}
	e.navigateHistory(-len(e.history))
}

// SetReplayInterval changes the auto-advance interval. A playing
// replay picks up the new interval immediately.
func (e *Engine) SetReplayInterval(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d <= 0 {
		return
	}
	e.replaySpeed = d
	if e.replaying {
		e.stopReplayLocked()
		e.startReplayLocked()
	}
}

// ReplayInterval returns the current auto-advance interval.
func (e *Engine) ReplayInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replaySpeed
}

// IsReplaying reports whether the auto-advance timer is running.
func (e *Engine) IsReplaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replaying
}

func (e *Engine) stopReplayLocked() {
	if e.stopReplay != nil {
		e.stopReplay()
		e.stopReplay = nil
	}
	e.replaying = false
}
