package engine

// HandRecord is the portable, serializable form of a completed hand:
// the setup parameters plus the full snapshot ledger. Records survive
// round trips through JSON and the database unchanged.
type HandRecord struct {
	Players      int         `json:"players"`
	HeroPosition string      `json:"heroPosition"`
	Currency     string      `json:"currency"`
	SmallBlind   int         `json:"smallBlind"`
	BigBlind     int         `json:"bigBlind"`
	SpecialRule  SpecialRule `json:"specialRule"`
	Variant      Variant     `json:"variant"`
	BombPotBB    int         `json:"bombPotBB,omitempty"`
	DoubleBoard  bool        `json:"doubleBoard,omitempty"`

	History []Snapshot `json:"history"`
}

// Save exports the hand as a record. Flop card assignments are
// consolidated so replays step street by street.
func (e *Engine) Save() HandRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec := HandRecord{
		Players:      e.config.Players,
		HeroPosition: e.config.HeroPosition,
		Currency:     e.config.Currency,
		SmallBlind:   e.config.SmallBlind,
		BigBlind:     e.config.BigBlind,
		SpecialRule:  e.config.SpecialRule,
		Variant:      e.config.Variant,
		BombPotBB:    e.config.BombPotBB,
		DoubleBoard:  e.config.DoubleBoard,
	}
	for _, snap := range Consolidate(e.history) {
		rec.History = append(rec.History, snap.Clone())
	}
	return rec
}

// Load seeds the engine from a saved record and enters the replay
// phase with the cursor on the opening snapshot. The loaded ledger is
// read-only: replay navigation never records new snapshots.
func (e *Engine) Load(rec HandRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(rec.History) == 0 {
		return ErrEmptyRecord
	}
	e.stopReplayLocked()

	e.config = Config{
		Players:      rec.Players,
		HeroPosition: rec.HeroPosition,
		Currency:     rec.Currency,
		SmallBlind:   rec.SmallBlind,
		BigBlind:     rec.BigBlind,
		SpecialRule:  rec.SpecialRule,
		Variant:      rec.Variant,
		BombPotBB:    rec.BombPotBB,
		DoubleBoard:  rec.DoubleBoard,
	}

	// Records written by other tools may still carry per-card flop
	// assignment snapshots; consolidate so replay steps by street.
	history := Consolidate(rec.History)
	e.history = make([]Snapshot, len(history))
	for i, snap := range history {
		e.history[i] = snap.Clone()
	}
	e.phase = PhaseReplay
	e.cursor = 0
	e.restoreSnapshot(e.history[0])
	e.preAction = false
	e.discarded = make(map[int]bool)
	e.clearTarget()

	e.logger.Info("hand record loaded", "snapshots", len(e.history), "variant", e.config.Variant)
	return nil
}
