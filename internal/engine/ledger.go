package engine

// The ledger is the ordered sequence of snapshots describing the hand
// so far. Every semantic action appends exactly one snapshot; the
// cursor marks which snapshot the working state currently reflects.
// Recording while the cursor sits in the past truncates everything
// after it, so the new action starts a fresh branch.

// recordState captures the working state as a snapshot with the given
// description, appends it to the ledger, and notifies subscribers.
func (e *Engine) recordState(description string) {
	if e.cursor < len(e.history)-1 {
		e.history = e.history[:e.cursor+1]
	}

	snap := e.captureSnapshot(description)
	e.history = append(e.history, snap)
	e.cursor = len(e.history) - 1

	e.logger.Debug("recorded snapshot", "cursor", e.cursor, "description", description)
	for _, s := range e.subscribers {
		s.OnSnapshot(snap.Clone())
	}
}

// captureSnapshot deep-copies the working state so that later
// mutations cannot reach into recorded history.
func (e *Engine) captureSnapshot(description string) Snapshot {
	snap := Snapshot{
		Players:         make([]Player, len(e.players)),
		Boards:          cloneBoards(e.boards),
		Pots:            make([]Pot, len(e.pots)),
		Description:     description,
		Phase:           e.phase,
		DealerPosition:  e.dealerPosition,
		ActivePlayer:    e.activePlayer,
		CurrentBet:      e.currentBet,
		MinRaise:        e.minRaise,
		LastRaiser:      e.lastRaiser,
		LastRaiseAmount: e.lastRaiseAmount,
	}
	for i, p := range e.players {
		snap.Players[i] = p.clone()
	}
	for i, p := range e.pots {
		snap.Pots[i] = p.clone()
	}
	return snap
}

// restoreSnapshot overwrites the working state wholesale from a
// snapshot. In replay the engine phase stays pinned to PhaseReplay
// regardless of the phase the snapshot was recorded in.
func (e *Engine) restoreSnapshot(snap Snapshot) {
	cp := snap.Clone()

	e.players = make([]*Player, len(cp.Players))
	for i := range cp.Players {
		p := cp.Players[i]
		e.players[i] = &p
	}
	e.boards = cp.Boards
	e.pots = cp.Pots
	e.dealerPosition = cp.DealerPosition
	e.activePlayer = cp.ActivePlayer
	e.currentBet = cp.CurrentBet
	e.minRaise = cp.MinRaise
	e.lastRaiser = cp.LastRaiser
	e.lastRaiseAmount = cp.LastRaiseAmount

	if e.phase != PhaseReplay {
		e.phase = cp.Phase
	}
}

// NavigateHistory moves the cursor by delta snapshots, clamped to the
// ledger bounds, and restores the state at the destination. A delta
// that lands outside the ledger is clamped, never an error.
func (e *Engine) NavigateHistory(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.navigateHistory(delta)
}

func (e *Engine) navigateHistory(delta int) {
	if len(e.history) == 0 {
		return
	}
	target := e.cursor + delta
	if target < 0 {
		target = 0
	}
	if target > len(e.history)-1 {
		target = len(e.history) - 1
	}
	if target == e.cursor {
		return
	}
	e.cursor = target
	e.restoreSnapshot(e.history[target])

	// Subscribers follow the cursor, so remote viewers track
	// navigation and replay the same way they track live recording.
	for _, s := range e.subscribers {
		s.OnSnapshot(e.history[target].Clone())
	}
}

// JumpTo moves the cursor to an absolute ledger index, clamped.
func (e *Engine) JumpTo(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.navigateHistory(index - e.cursor)
}

// History returns a deep copy of the ledger.
func (e *Engine) History() []Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	history := make([]Snapshot, len(e.history))
	for i, s := range e.history {
		history[i] = s.Clone()
	}
	return history
}

// Cursor returns the ledger index of the snapshot the working state
// reflects, or -1 before the first recording.
func (e *Engine) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// CurrentSnapshot returns a copy of the snapshot under the cursor.
func (e *Engine) CurrentSnapshot() (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cursor < 0 || e.cursor >= len(e.history) {
		return Snapshot{}, false
	}
	return e.history[e.cursor].Clone(), true
}

// Consolidate collapses runs of snapshots that only add flop cards one
// at a time into the final snapshot of the run, so replays step street
// by street instead of card by card. A snapshot is dropped when its
// successor has exactly one more flop card on the first board and no
// player's cards changed in between. Input snapshots are not mutated.
func Consolidate(history []Snapshot) []Snapshot {
	var out []Snapshot
	for i, snap := range history {
		if i+1 < len(history) {
			next := history[i+1]
			n := snap.flopCount()
			if n >= 1 && n <= 2 && next.flopCount() == n+1 && samePlayerCards(snap, next) {
				continue
			}
		}
		out = append(out, snap)
	}
	return out
}

func samePlayerCards(a, b Snapshot) bool {
	if len(a.Players) != len(b.Players) {
		return false
	}
	for i := range a.Players {
		ac, bc := a.Players[i].Cards, b.Players[i].Cards
		if len(ac) != len(bc) {
			return false
		}
		for j := range ac {
			if ac[j] != bc[j] {
				return false
			}
		}
	}
	return true
}
