package engine

import "sort"

// collectBetsAndCreatePots folds every player's street bet into their
// cumulative total, then rebuilds the pot list from the cumulative
// totals, peeling off one layer per distinct all-in amount. Eligible
// players for a layer are the live players whose cumulative bet
// exceeds the previous layer's cap, so side pots are strictly nested
// around all-in thresholds. Folded contributions stay in the pot
// amounts but never in the eligibility sets.
func (e *Engine) collectBetsAndCreatePots() {
	for _, p := range e.players {
		if p.BetThisRound > 0 {
			p.TotalBetInHand += p.BetThisRound
			p.BetThisRound = 0
		}
	}

	contributed := 0
	for _, p := range e.players {
		contributed += p.TotalBetInHand
	}
	if contributed == 0 {
		return
	}

	e.pots = e.buildPots()
}

func (e *Engine) buildPots() []Pot {
	levels := e.allInLevels()

	if len(levels) == 0 {
		pot := Pot{Eligible: []int{}}
		for _, p := range e.players {
			pot.Amount += p.TotalBetInHand
			if p.InHand {
				pot.Eligible = append(pot.Eligible, p.ID)
			}
		}
		return []Pot{pot}
	}

	var pots []Pot
	previous := 0
	for _, level := range levels {
		pot := Pot{Eligible: []int{}}
		for _, p := range e.players {
			contribution := minInt(p.TotalBetInHand, level) - previous
			if contribution > 0 {
				pot.Amount += contribution
			}
			if p.InHand && p.TotalBetInHand > previous {
				pot.Eligible = append(pot.Eligible, p.ID)
			}
		}
		if pot.Amount > 0 && len(pot.Eligible) > 0 {
			pots = append(pots, pot)
		}
		previous = level
	}

	// Chips above the highest all-in level form the live pot.
	residual := Pot{Eligible: []int{}}
	for _, p := range e.players {
		if p.TotalBetInHand > previous {
			residual.Amount += p.TotalBetInHand - previous
			if p.InHand {
				residual.Eligible = append(residual.Eligible, p.ID)
			}
		}
	}
	if residual.Amount > 0 {
		if len(residual.Eligible) > 0 {
			pots = append(pots, residual)
		} else if len(pots) > 0 {
			// Orphaned chips from a folded over-bettor stay in the
			// last pot so chip conservation holds.
			pots[len(pots)-1].Amount += residual.Amount
		}
	}

	if len(pots) == 0 {
		pots = []Pot{{Eligible: []int{}}}
	}
	return pots
}

// allInLevels returns the distinct cumulative bet totals of all-in
// players, ascending.
func (e *Engine) allInLevels() []int {
	seen := make(map[int]bool)
	var levels []int
	for _, p := range e.players {
		if p.IsAllIn && p.TotalBetInHand > 0 && !seen[p.TotalBetInHand] {
			seen[p.TotalBetInHand] = true
			levels = append(levels, p.TotalBetInHand)
		}
	}
	sort.Ints(levels)
	return levels
}
