package engine

import (
	"fmt"

	"github.com/lox/handtracker/internal/deck"
)

// positionLabels returns the seat position labels for a table of the
// given size, dealer first. Seat 0 is always the dealer.
func positionLabels(players int) []string {
	switch players {
	case 2:
		return []string{"BTN / SB", "BB"}
	case 3:
		return []string{"BTN", "SB", "BB"}
	case 4:
		return []string{"BTN", "SB", "BB", "CO"}
	case 5:
		return []string{"BTN", "SB", "BB", "MP", "CO"}
	case 6:
		return []string{"BTN", "SB", "BB", "UTG", "MP", "CO"}
	case 7:
		return []string{"BTN", "SB", "BB", "UTG", "MP", "HJ", "CO"}
	case 8:
		return []string{"BTN", "SB", "BB", "UTG", "UTG+1", "MP", "HJ", "CO"}
	default:
		return []string{"BTN", "SB", "BB", "UTG", "UTG+1", "MP", "LJ", "HJ", "CO"}[:players]
	}
}

// Setup initializes a fresh hand: seats, blinds or bomb-pot posts,
// straddles, and the opening actor, ending with the first ledger
// entry describing the forced bets. No cards are dealt; cards arrive
// later through AssignCard.
func (e *Engine) Setup(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopReplayLocked()
	e.config = cfg

	stack := cfg.StartingStack
	if stack == 0 {
		stack = cfg.BigBlind * 100
	}

	positions := positionLabels(cfg.Players)
	e.players = make([]*Player, cfg.Players)
	for i := 0; i < cfg.Players; i++ {
		isHero := positions[i] == cfg.HeroPosition
		name := fmt.Sprintf("Player %d", i+1)
		if isHero {
			name = "Hero"
		}
		e.players[i] = &Player{
			ID:       i,
			Name:     name,
			Stack:    stack,
			Cards:    make([]deck.Card, cfg.Variant.HoleCards()),
			Position: positions[i],
			InHand:   true,
			IsHero:   isHero,
		}
	}

	boardCount := 1
	if cfg.DoubleBoard {
		boardCount = 2
	}
	e.boards = make([]Board, boardCount)
	for i := range e.boards {
		e.boards[i] = make(Board, 5)
	}

	e.pots = []Pot{{Amount: 0, Eligible: []int{}}}
	e.history = nil
	e.cursor = -1
	e.phase = PhasePreflop
	e.lastRaiseAmount = 0
	e.preAction = true
	e.discarded = make(map[int]bool)
	e.pending = nil
	e.multiSlot = false

	e.dealerPosition = 0
	e.players[0].IsDealer = true

	var sbIndex, bbIndex int
	if cfg.Players == 2 {
		// Heads-up: dealer posts the small blind and acts first preflop.
		sbIndex, bbIndex = 0, 1
		e.activePlayer = sbIndex
	} else {
		sbIndex, bbIndex = 1, 2
		e.activePlayer = (bbIndex + 1) % cfg.Players
	}
	e.lastRaiser = bbIndex

	if cfg.SpecialRule == RuleBombPot {
		e.setupBombPot(bbIndex)
		return nil
	}

	e.players[sbIndex].IsSB = true
	e.postBet(e.players[sbIndex], cfg.SmallBlind, true)
	e.players[bbIndex].IsBB = true
	e.postBet(e.players[bbIndex], cfg.BigBlind, true)
	e.currentBet = cfg.BigBlind
	e.minRaise = cfg.BigBlind * 2
	e.lastRaiseAmount = cfg.BigBlind
	e.recordState("Hand started. Blinds posted.")

	switch cfg.SpecialRule {
	case RuleStraddle:
		straddleIndex := (bbIndex + 1) % cfg.Players
		straddler := e.players[straddleIndex]
		straddler.IsStraddle = true
		e.postBet(straddler, cfg.BigBlind*2, true)
		e.currentBet = cfg.BigBlind * 2
		e.minRaise = cfg.BigBlind * 4
		e.lastRaiseAmount = cfg.BigBlind * 2
		e.lastRaiser = straddleIndex
		e.activePlayer = (straddleIndex + 1) % cfg.Players
		e.recordState(fmt.Sprintf("Straddle posted by %s.", straddler.Name))

	case RuleMississippi:
		dealer := e.players[e.dealerPosition]
		dealer.IsMississippi = true
		e.postBet(dealer, cfg.BigBlind*2, true)
		if cfg.BigBlind*2 > e.currentBet {
			e.currentBet = cfg.BigBlind * 2
		}
		e.minRaise = cfg.BigBlind * 4
		e.lastRaiseAmount = cfg.BigBlind * 2
		e.lastRaiser = e.dealerPosition
		// Unlike a normal straddle, preflop action still opens at the
		// small blind.
		e.activePlayer = sbIndex
		e.recordState(fmt.Sprintf("Mississippi straddle posted by %s.", dealer.Name))
	}

	e.logger.Debug("hand set up",
		"players", cfg.Players,
		"blinds", fmt.Sprintf("%d/%d", cfg.SmallBlind, cfg.BigBlind),
		"rule", cfg.SpecialRule,
		"variant", cfg.Variant)
	return nil
}

// setupBombPot posts every player's forced contribution straight into
// the pot and skips the preflop betting round entirely. The hand opens
// on the flop (or waiting for the flop in Crazy Pineapple) with the
// small blind first to act.
func (e *Engine) setupBombPot(bbIndex int) {
	cfg := e.config
	bombAmount := cfg.BigBlind * cfg.BombPotBB

	for _, p := range e.players {
		posted := minInt(bombAmount, p.Stack)
		p.Stack -= posted
		p.TotalBetInHand += posted
		p.IsBombPot = true
		if p.Stack == 0 {
			p.IsAllIn = true
		}
		e.pots[0].Amount += posted
		e.pots[0].Eligible = append(e.pots[0].Eligible, p.ID)
	}

	e.currentBet = 0
	e.minRaise = cfg.BigBlind
	e.lastRaiser = -1

	if cfg.Variant == VariantCrazyPineapple {
		e.phase = PhaseWaitingForFlop
	} else {
		e.phase = PhaseFlop
	}
	e.activePlayer = e.firstToActAfterDealer()

	e.recordState(fmt.Sprintf("Bomb pot: every player posts %d BB.", cfg.BombPotBB))
}

// postBet commits up to amount chips from the player's stack into
// their street bet. Blinds that consume the whole stack do not flag
// the player all-in at posting time.
func (e *Engine) postBet(p *Player, amount int, isBlind bool) {
	bet := minInt(amount, p.Stack)
	p.Stack -= bet
	p.BetThisRound += bet
	if p.Stack == 0 && !isBlind {
		p.IsAllIn = true
	}
}

// firstToActAfterDealer returns the first live, non-all-in seat after
// the dealer, or -1 if nobody can act.
func (e *Engine) firstToActAfterDealer() int {
	n := len(e.players)
	for i := 1; i <= n; i++ {
		p := e.players[(e.dealerPosition+i)%n]
		if p.CanAct() {
			return p.ID
		}
	}
	return -1
}

// ResetHand abandons the current hand and returns to the setup phase.
func (e *Engine) ResetHand() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopReplayLocked()
	e.players = nil
	e.boards = nil
	e.pots = nil
	e.history = nil
	e.cursor = -1
	e.phase = PhaseSetup
	e.preAction = false
	e.dealerPosition = 0
	e.activePlayer = -1
	e.currentBet = 0
	e.minRaise = 0
	e.lastRaiser = -1
	e.lastRaiseAmount = 0
	e.pending = nil
	e.multiSlot = false
	e.discarded = make(map[int]bool)
}

// UpdatePlayerName renames a seat. Before the first voluntary action
// the edit is folded into the opening snapshot so saved hands carry
// the final names.
func (e *Engine) UpdatePlayerName(id int, name string) {
	if name == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.playerByID(id)
	if p == nil {
		return
	}
	p.Name = name
	e.refreshOpeningSnapshot()
}

// UpdatePlayerStack adjusts a seat's stack during the pre-action
// edit window.
func (e *Engine) UpdatePlayerStack(id, stack int) {
	if stack < 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.playerByID(id)
	if p == nil {
		return
	}
	p.Stack = stack
	e.refreshOpeningSnapshot()
}

// UpdatePlayerNotes sets free-form notes on a seat, retroactively
// across all recorded snapshots.
func (e *Engine) UpdatePlayerNotes(id int, notes string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.playerByID(id)
	if p == nil {
		return
	}
	p.Notes = notes
	for i := range e.history {
		for j := range e.history[i].Players {
			if e.history[i].Players[j].ID == id {
				e.history[i].Players[j].Notes = notes
			}
		}
	}
}

// UpdatePlayerTag toggles a tag on a seat, retroactively across all
// recorded snapshots. Tagging with the current tag clears it.
func (e *Engine) UpdatePlayerTag(id int, tag string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.playerByID(id)
	if p == nil {
		return
	}
	if p.Tag == tag {
		p.Tag = ""
	} else {
		p.Tag = tag
	}
	final := p.Tag
	for i := range e.history {
		for j := range e.history[i].Players {
			if e.history[i].Players[j].ID == id {
				e.history[i].Players[j].Tag = final
			}
		}
	}
}

// refreshOpeningSnapshot rewrites the players of snapshot 0 while the
// hand is still in its pre-action edit window.
func (e *Engine) refreshOpeningSnapshot() {
	if !e.preAction || len(e.history) == 0 {
		return
	}
	players := make([]Player, len(e.players))
	for i, p := range e.players {
		players[i] = p.clone()
	}
	e.history[0].Players = players
}
