package engine

import (
	"fmt"
	"strings"
)

// endHand terminates the hand. With winnerByFold set, the last player
// standing takes the whole pot with no showdown. Otherwise each pot is
// awarded to the best live hand among its eligible players; double
// boards split every pot half and half, with the odd chip on the
// first board's half.
func (e *Engine) endHand(winnerByFold *Player) {
	e.phase = PhaseShowdown
	e.activePlayer = -1

	if winnerByFold != nil {
		total := e.totalPot()
		winnerByFold.Stack += total
		e.recordState(fmt.Sprintf("Hand over. %s wins the pot of %d.", winnerByFold.Name, total))
		return
	}

	e.recordState("--- SHOWDOWN --- Cards are revealed.")

	for i, pot := range e.pots {
		if pot.Amount == 0 {
			continue
		}

		var eligible []*Player
		for _, id := range pot.Eligible {
			p := e.playerByID(id)
			if p != nil && p.InHand {
				eligible = append(eligible, p)
			}
		}

		switch {
		case len(eligible) == 0:
			continue
		case len(eligible) == 1:
			eligible[0].Stack += pot.Amount
			e.recordState(fmt.Sprintf("%s wins pot %d of %d.", eligible[0].Name, i+1, pot.Amount))
		case len(e.boards) == 2:
			// Each side pot pays out per board independently.
			secondHalf := pot.Amount / 2
			firstHalf := pot.Amount - secondHalf
			e.awardPot(i, firstHalf, eligible, e.boards[0], "top board")
			e.awardPot(i, secondHalf, eligible, e.boards[1], "bottom board")
		default:
			e.awardPot(i, pot.Amount, eligible, e.boards[0], "")
		}
	}
}

// awardPot pays amount to the best-ranked eligible players against
// the given board. Split pots floor the per-winner share; odd chips
// are not paid out.
func (e *Engine) awardPot(potIndex, amount int, eligible []*Player, board Board, boardLabel string) {
	best := -1
	var winners []*Player
	var bestResult HandResult
	for _, p := range eligible {
		result := evaluateHand(p.Cards, board)
		if result.Rank > best {
			best = result.Rank
			bestResult = result
			winners = []*Player{p}
		} else if result.Rank == best {
			winners = append(winners, p)
		}
	}
	if len(winners) == 0 {
		return
	}

	share := amount / len(winners)
	names := make([]string, len(winners))
	for i, w := range winners {
		w.Stack += share
		names[i] = w.Name
	}

	label := fmt.Sprintf("pot %d", potIndex+1)
	if boardLabel != "" {
		label = fmt.Sprintf("the %s half of pot %d", boardLabel, potIndex+1)
	}
	e.recordState(fmt.Sprintf("%s wins %s of %d with %s.",
		strings.Join(names, ", "), label, amount, bestResult.Description))
}
