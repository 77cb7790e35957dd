package engine

import (
	"fmt"
	"strings"

	"github.com/lox/handtracker/internal/deck"
)

// SlotKind identifies what a card assignment target points at.
type SlotKind int

const (
	PlayerSlot SlotKind = iota
	BoardSlot
)

// Target identifies a card slot: either one of a player's hole cards
// or a community board slot.
type Target struct {
	Kind     SlotKind
	PlayerID int // player targets
	Board    int // board targets: board index (0, or 1 on double boards)
	Slot     int
}

// SelectTarget opens a card slot for assignment. Selecting a player
// whose hand is still empty, or the first flop slot of an empty flop,
// switches to auto-advancing multi-slot mode: successive AssignCard
// calls fill the run of slots and produce a single consolidated
// ledger entry when it completes.
func (e *Engine) SelectTarget(t Target) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch t.Kind {
	case PlayerSlot:
		p := e.playerByID(t.PlayerID)
		if p == nil || t.Slot < 0 || t.Slot >= len(p.Cards) {
			return fmt.Errorf("invalid player card slot %d/%d", t.PlayerID, t.Slot)
		}
		e.pending = &t
		e.multiSlot = false
		empty := 0
		for _, c := range p.Cards {
			if c.IsZero() {
				empty++
			}
		}
		if empty == len(p.Cards) {
			e.multiSlot = true
			e.multiSlotIndex = 0
		}

	case BoardSlot:
		if t.Board < 0 || t.Board >= len(e.boards) || t.Slot < 0 || t.Slot >= 5 {
			return fmt.Errorf("invalid board slot %d/%d", t.Board, t.Slot)
		}
		e.pending = &t
		e.multiSlot = false
		if t.Slot == 0 && e.flopEmpty(t.Board) {
			e.multiSlot = true
			e.multiSlotIndex = 0
		}

	default:
		return fmt.Errorf("invalid target kind %d", t.Kind)
	}
	return nil
}

// ClearTarget abandons the pending card slot selection.
func (e *Engine) ClearTarget() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearTarget()
}

func (e *Engine) clearTarget() {
	e.pending = nil
	e.multiSlot = false
	e.multiSlotIndex = 0
}

// AssignCard places a card in the pending target slot. Cards already
// in use anywhere in the hand are rejected so the no-duplicate
// invariant cannot be violated, whatever the caller does.
func (e *Engine) AssignCard(card deck.Card) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		return ErrNoPendingTarget
	}
	if card.IsZero() {
		return fmt.Errorf("cannot assign an empty card")
	}
	if e.usedCards()[card] {
		return fmt.Errorf("%w: %s", ErrCardInUse, card.Code())
	}

	t := *e.pending
	switch t.Kind {
	case PlayerSlot:
		p := e.playerByID(t.PlayerID)
		if e.multiSlot {
			p.Cards[e.multiSlotIndex] = card
			e.multiSlotIndex++
			if e.multiSlotIndex >= len(p.Cards) {
				codes := make([]string, len(p.Cards))
				for i, c := range p.Cards {
					codes[i] = c.Code()
				}
				e.clearTarget()
				e.recordState(fmt.Sprintf("%s is dealt %s.", p.Name, strings.Join(codes, ", ")))
			}
			return nil
		}
		p.Cards[t.Slot] = card
		e.clearTarget()
		e.recordState(fmt.Sprintf("Card %s assigned.", card.Code()))

	case BoardSlot:
		board := e.boards[t.Board]
		if e.multiSlot {
			board[e.multiSlotIndex] = card
			e.multiSlotIndex++
			if e.multiSlotIndex >= 3 {
				e.clearTarget()
				e.recordState(fmt.Sprintf("Flop cards assigned: %s, %s, %s.",
					board[0].Code(), board[1].Code(), board[2].Code()))
				e.maybeOpenDiscard()
			}
			return nil
		}
		board[t.Slot] = card
		e.clearTarget()
		e.recordState(fmt.Sprintf("Card %s assigned.", card.Code()))
		e.maybeOpenDiscard()
	}
	return nil
}

// UnassignCard removes the card at the target slot, if any.
func (e *Engine) UnassignCard(t Target) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var removed deck.Card
	switch t.Kind {
	case PlayerSlot:
		p := e.playerByID(t.PlayerID)
		if p == nil || t.Slot < 0 || t.Slot >= len(p.Cards) {
			return
		}
		removed = p.Cards[t.Slot]
		p.Cards[t.Slot] = deck.Card{}
	case BoardSlot:
		if t.Board < 0 || t.Board >= len(e.boards) || t.Slot < 0 || t.Slot >= 5 {
			return
		}
		removed = e.boards[t.Board][t.Slot]
		e.boards[t.Board][t.Slot] = deck.Card{}
	}
	if !removed.IsZero() {
		e.recordState(fmt.Sprintf("Card %s unassigned.", removed.Code()))
	}
}

// maybeOpenDiscard advances a Crazy Pineapple hand into the discard
// phase once every board has a complete flop.
func (e *Engine) maybeOpenDiscard() {
	if e.phase != PhaseWaitingForFlop || e.config.Variant != VariantCrazyPineapple {
		return
	}
	for i := range e.boards {
		if e.flopCount(i) < 3 {
			return
		}
	}
	e.advanceRound()
}

// PerformDiscard removes one hole card from a live player during the
// discard phase. The hero discards manually; everyone else was
// discarded automatically when the phase opened. Once all live
// players have discarded, flop betting opens.
func (e *Engine) PerformDiscard(playerID, cardIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseDiscard {
		return
	}
	p := e.playerByID(playerID)
	if p == nil || !p.InHand || e.discarded[playerID] {
		return
	}
	if cardIndex < 0 || cardIndex >= len(p.Cards) {
		return
	}

	e.removeCard(p, cardIndex)
	e.recordState(fmt.Sprintf("%s discards a card.", p.Name))
	e.finishDiscardIfComplete()
}

// autoDiscardNonHero discards a random card from every live non-hero
// player when the discard phase opens.
func (e *Engine) autoDiscardNonHero() {
	for _, p := range e.players {
		if !p.InHand || p.IsHero {
			continue
		}
		e.removeCard(p, e.rng.Intn(len(p.Cards)))
		e.recordState(fmt.Sprintf("%s discards a card.", p.Name))
	}
	e.finishDiscardIfComplete()
}

func (e *Engine) removeCard(p *Player, cardIndex int) {
	p.Cards = append(p.Cards[:cardIndex], p.Cards[cardIndex+1:]...)
	e.discarded[p.ID] = true
}

func (e *Engine) finishDiscardIfComplete() {
	for _, p := range e.players {
		if p.InHand && !e.discarded[p.ID] {
			return
		}
	}
	e.discarded = make(map[int]bool)
	e.phase = PhaseFlop
	e.recordState("--- All players have discarded. Flop betting begins. ---")
}

func (e *Engine) flopEmpty(board int) bool {
	return e.flopCount(board) == 0
}

func (e *Engine) flopCount(board int) int {
	count := 0
	for _, c := range e.boards[board][:3] {
		if !c.IsZero() {
			count++
		}
	}
	return count
}
