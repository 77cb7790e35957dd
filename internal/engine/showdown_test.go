package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handtracker/internal/deck"
)

func board(codes ...string) Board {
	b := make(Board, 5)
	for i, code := range codes {
		b[i] = deck.MustParse(code)
	}
	return b
}

func cards(codes ...string) []deck.Card {
	cs := make([]deck.Card, len(codes))
	for i, code := range codes {
		cs[i] = deck.MustParse(code)
	}
	return cs
}

func TestShowdownSingleWinner(t *testing.T) {
	e := testEngine()
	e.players = []*Player{
		{ID: 0, Name: "Hero", InHand: true, Cards: cards("Ah", "Ad")},
		{ID: 1, Name: "Villain", InHand: true, Cards: cards("Qs", "7c")},
	}
	e.boards = []Board{board("2s", "4h", "9s", "Jc", "3d")}
	e.pots = []Pot{{Amount: 100, Eligible: []int{0, 1}}}

	e.endHand(nil)

	assert.Equal(t, PhaseShowdown, e.phase)
	assert.Equal(t, 100, e.players[0].Stack)
	assert.Zero(t, e.players[1].Stack)

	history := e.History()
	assert.Contains(t, history[len(history)-1].Description, "pair of As")
}

func TestShowdownSplitPotFloorsShares(t *testing.T) {
	e := testEngine()
	e.players = []*Player{
		{ID: 0, Name: "Hero", InHand: true, Cards: cards("Ah", "7d")},
		{ID: 1, Name: "Villain", InHand: true, Cards: cards("Qs", "8c")},
	}
	e.boards = []Board{board("2s", "4h", "9s", "Jc", "3d")}
	e.pots = []Pot{{Amount: 101, Eligible: []int{0, 1}}}

	e.endHand(nil)

	assert.Equal(t, 50, e.players[0].Stack, "split shares are floored")
	assert.Equal(t, 50, e.players[1].Stack)
}

func TestShowdownFoldedPlayersNotEligible(t *testing.T) {
	e := testEngine()
	e.players = []*Player{
		{ID: 0, Name: "Hero", InHand: true, Cards: cards("2h", "7d")},
		{ID: 1, Name: "Villain", InHand: false, Cards: cards("Ah", "Ad")},
	}
	e.boards = []Board{board("2s", "4h", "9s", "Jc", "3d")}
	e.pots = []Pot{{Amount: 60, Eligible: []int{0, 1}}}

	e.endHand(nil)

	assert.Equal(t, 60, e.players[0].Stack, "a folded player never wins, whatever their cards")
	assert.Zero(t, e.players[1].Stack)
}

func TestShowdownSidePotsAwardedIndependently(t *testing.T) {
	e := testEngine()
	e.players = []*Player{
		{ID: 0, Name: "Short", InHand: true, IsAllIn: true, Cards: cards("Ah", "Ad")},
		{ID: 1, Name: "Mid", InHand: true, Cards: cards("Ks", "Kc")},
		{ID: 2, Name: "Big", InHand: true, Cards: cards("Qs", "7c")},
	}
	e.boards = []Board{board("As", "4h", "9s", "Jc", "3d")}
	e.pots = []Pot{
		{Amount: 300, Eligible: []int{0, 1, 2}},
		{Amount: 200, Eligible: []int{1, 2}},
	}

	e.endHand(nil)

	assert.Equal(t, 300, e.players[0].Stack, "the short stack wins only the main pot")
	assert.Equal(t, 200, e.players[1].Stack, "the side pot goes to the best hand among its own eligibles")
	assert.Zero(t, e.players[2].Stack)
}

func TestShowdownDoubleBoardSplitsEveryPot(t *testing.T) {
	e := testEngine()
	e.players = []*Player{
		{ID: 0, Name: "Hero", InHand: true, Cards: cards("Ah", "2c")},
		{ID: 1, Name: "Villain", InHand: true, Cards: cards("Kd", "8s")},
	}
	e.boards = []Board{
		board("Ad", "5s", "9h", "Jc", "3d"),
		board("Kh", "5c", "9d", "Jd", "3s"),
	}
	e.pots = []Pot{{Amount: 101, Eligible: []int{0, 1}}}

	e.endHand(nil)

	assert.Equal(t, 51, e.players[0].Stack, "the odd chip goes with the top board half")
	assert.Equal(t, 50, e.players[1].Stack)

	history := e.History()
	require.GreaterOrEqual(t, len(history), 3)
	assert.Contains(t, history[len(history)-2].Description, "top board")
	assert.Contains(t, history[len(history)-1].Description, "bottom board")
}

func TestEvaluateHand(t *testing.T) {
	b := board("2s", "4h", "9s", "Jc", "3d")
	tests := []struct {
		name  string
		cards []deck.Card
		board Board
		rank  int
	}{
		{"high card", cards("Ah", "7d"), b, rankHighCard},
		{"pair", cards("9h", "7d"), b, rankPair},
		{"two pair", cards("9h", "4d"), b, rankTwoPair},
		{"trips", cards("9h", "9d"), b, rankTrips},
		{"full house", cards("9h", "9d"), board("9c", "4h", "4s", "Jc", "3d"), rankFullHouse},
		{"quads", cards("9h", "9d"), board("9c", "9s", "4s", "Jc", "3d"), rankQuads},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluateHand(tt.cards, tt.board)
			assert.Equal(t, tt.rank, result.Rank)
			assert.NotEmpty(t, result.Description)
		})
	}
}
