package engine

import "fmt"

// PerformAction validates and applies an action for the active player,
// records one ledger entry, then either advances the turn or the
// street. Illegal actions (checking while facing a bet, raising below
// the minimum with chips behind) are silent no-ops: no state change,
// no ledger entry.
//
// A short all-in above the current bet reopens action for every other
// live player even when it is below a full minimum raise. That
// diverges from strict no-limit tournament rules but matches the
// semantics persisted hands were recorded under.
func (e *Engine) PerformAction(kind ActionKind, amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.phase.isBettingStreet() {
		return
	}
	player := e.playerByID(e.activePlayer)
	if player == nil {
		return
	}

	var description string
	switch kind {
	case ActionFold:
		player.InHand = false
		player.LastAction = ""
		description = fmt.Sprintf("%s folds.", player.Name)

	case ActionCheck:
		if e.currentBet > player.BetThisRound {
			return
		}
		player.LastAction = "check"
		description = fmt.Sprintf("%s checks.", player.Name)

	case ActionCall:
		callAmount := e.currentBet - player.BetThisRound
		e.postBet(player, callAmount, false)
		player.LastAction = "call"
		description = fmt.Sprintf("%s calls.", player.Name)

	case ActionAllIn:
		allInAmount := player.Stack
		newTotal := player.BetThisRound + allInAmount
		e.postBet(player, allInAmount, false)
		player.LastAction = "all-in"
		description = fmt.Sprintf("%s goes all-in for %d.", player.Name, newTotal)
		if newTotal > e.currentBet {
			for _, p := range e.players {
				if p.InHand && !p.IsAllIn {
					p.HasActedThisRound = false
				}
			}
			raiseDifference := newTotal - e.currentBet
			e.lastRaiser = player.ID
			e.minRaise = newTotal + raiseDifference
			e.lastRaiseAmount = e.currentBet
			e.currentBet = newTotal
		}

	case ActionBet, ActionRaise:
		if amount < e.minRaise && amount < player.Stack+player.BetThisRound {
			return
		}
		for _, p := range e.players {
			if p.InHand {
				p.HasActedThisRound = false
			}
		}
		raiseDifference := amount - e.currentBet
		e.postBet(player, amount-player.BetThisRound, false)
		e.lastRaiser = player.ID
		e.minRaise = amount + raiseDifference
		e.lastRaiseAmount = e.currentBet
		e.currentBet = amount
		if kind == ActionBet {
			player.LastAction = "bet"
			description = fmt.Sprintf("%s bets %d.", player.Name, amount)
		} else {
			player.LastAction = "raise"
			description = fmt.Sprintf("%s raises to %d.", player.Name, amount)
		}

	default:
		return
	}

	e.preAction = false
	player.HasActedThisRound = true
	e.recordState(description)
	e.checkHandOrRoundCompletion()
}

// checkHandOrRoundCompletion decides, after an applied action, whether
// the hand ends by fold, the street is complete, or the turn passes.
func (e *Engine) checkHandOrRoundCompletion() {
	var inHand []*Player
	for _, p := range e.players {
		if p.InHand {
			inHand = append(inHand, p)
		}
	}
	if len(inHand) == 1 {
		e.collectBetsAndCreatePots()
		e.endHand(inHand[0])
		return
	}

	roundOver := true
	for _, p := range inHand {
		if p.IsAllIn {
			continue
		}
		if !p.HasActedThisRound || p.BetThisRound != e.currentBet {
			roundOver = false
			break
		}
	}

	if roundOver {
		e.advanceRound()
	} else {
		e.advanceTurn()
	}
}

// advanceTurn moves the action to the next seat that can act,
// cycling past folded and all-in players.
func (e *Engine) advanceTurn() {
	n := len(e.players)
	next := (e.activePlayer + 1) % n
	for i := 0; i < n; i++ {
		if e.players[next].CanAct() {
			e.activePlayer = next
			return
		}
		next = (next + 1) % n
	}
	e.activePlayer = -1
}

// advanceRound closes the street: folds bets into the pots, resets
// per-street state, and either deals the next street, runs the hand
// out, or goes to showdown.
func (e *Engine) advanceRound() {
	e.collectBetsAndCreatePots()

	for _, p := range e.players {
		p.HasActedThisRound = false
		p.LastAction = ""
	}
	e.currentBet = 0
	e.minRaise = e.config.BigBlind
	e.lastRaiseAmount = 0

	if e.phase == PhaseRiver {
		e.endHand(nil)
		return
	}

	ableToAct := 0
	for _, p := range e.players {
		if p.CanAct() {
			ableToAct++
		}
	}
	if ableToAct < 2 {
		e.runItOut()
		return
	}

	e.activePlayer = e.firstToActAfterDealer()
	e.lastRaiser = e.activePlayer

	switch e.phase {
	case PhasePreflop:
		if e.config.Variant == VariantCrazyPineapple {
			e.phase = PhaseWaitingForFlop
			e.recordState("--- FLOP --- Assign the flop cards.")
		} else {
			e.phase = PhaseFlop
			e.recordState("--- FLOP ---")
		}
	case PhaseWaitingForFlop:
		e.phase = PhaseDiscard
		e.discarded = make(map[int]bool)
		e.recordState("--- Players must discard one card before betting. ---")
		e.autoDiscardNonHero()
	case PhaseFlop:
		e.phase = PhaseTurn
		e.recordState("--- TURN ---")
	case PhaseTurn:
		e.phase = PhaseRiver
		e.recordState("--- RIVER ---")
	}
}

// runItOut marks the remaining streets without further betting input
// and ends the hand. Used when fewer than two players can still act.
func (e *Engine) runItOut() {
	e.recordState("--- Betting complete, remaining streets run out. ---")
	if e.phase == PhasePreflop || e.phase == PhaseWaitingForFlop {
		e.phase = PhaseFlop
		e.recordState("--- FLOP ---")
	}
	if e.phase == PhaseFlop {
		e.phase = PhaseTurn
		e.recordState("--- TURN ---")
	}
	if e.phase == PhaseTurn {
		e.phase = PhaseRiver
		e.recordState("--- RIVER ---")
	}
	e.endHand(nil)
}
