package engine

import (
	"fmt"

	"github.com/lox/handtracker/internal/deck"
)

// HandResult is the outcome of the placeholder showdown evaluator.
type HandResult struct {
	Rank        int    `json:"rank"`
	Description string `json:"description"`
}

// Placeholder evaluator rank numbers, preserved from previously saved
// hands. Flushes, straights and straight flushes are not detected;
// replays of persisted hands depend on this exact ranking, so do not
// extend it without migrating stored records.
const (
	rankHighCard  = 0
	rankPair      = 1
	rankTwoPair   = 2
	rankTrips     = 3
	rankFullHouse = 6
	rankQuads     = 7
)

// evaluateHand ranks a player's cards against a board using rank
// counts only. Ties between candidate ranks go to the higher rank.
func evaluateHand(cards []deck.Card, board Board) HandResult {
	var all []deck.Card
	for _, c := range cards {
		if !c.IsZero() {
			all = append(all, c)
		}
	}
	for _, c := range board {
		if !c.IsZero() {
			all = append(all, c)
		}
	}
	if len(all) < 2 {
		return HandResult{Rank: rankHighCard, Description: "nothing"}
	}

	counts := make(map[deck.Rank]int)
	for _, c := range all {
		counts[c.Rank]++
	}

	var pairs, trips, quads []deck.Rank
	for rank, n := range counts {
		switch n {
		case 2:
			pairs = append(pairs, rank)
		case 3:
			trips = append(trips, rank)
		case 4:
			quads = append(quads, rank)
		}
	}
	bestPair := highestRank(pairs)
	bestTrips := highestRank(trips)
	bestQuads := highestRank(quads)

	switch {
	case len(quads) > 0:
		return HandResult{rankQuads, fmt.Sprintf("four of a kind, %ss", bestQuads)}
	case len(trips) > 0 && len(pairs) > 0:
		return HandResult{rankFullHouse, fmt.Sprintf("full house, %ss over %ss", bestTrips, bestPair)}
	case len(trips) > 0:
		return HandResult{rankTrips, fmt.Sprintf("three of a kind, %ss", bestTrips)}
	case len(pairs) == 2:
		second := lowestRank(pairs)
		return HandResult{rankTwoPair, fmt.Sprintf("two pair, %ss and %ss", bestPair, second)}
	case len(pairs) == 1:
		return HandResult{rankPair, fmt.Sprintf("pair of %ss", bestPair)}
	default:
		return HandResult{rankHighCard, fmt.Sprintf("high card %s", all[0].Rank)}
	}
}

func highestRank(ranks []deck.Rank) deck.Rank {
	var best deck.Rank
	for _, r := range ranks {
		if r > best {
			best = r
		}
	}
	return best
}

func lowestRank(ranks []deck.Rank) deck.Rank {
	if len(ranks) == 0 {
		return 0
	}
	low := ranks[0]
	for _, r := range ranks[1:] {
		if r < low {
			low = r
		}
	}
	return low
}
