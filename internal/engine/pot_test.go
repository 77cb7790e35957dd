package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func potTotal(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

func TestBuildPotsSingleLevel(t *testing.T) {
	e := testEngine()
	e.players = []*Player{
		{ID: 0, InHand: true, TotalBetInHand: 50},
		{ID: 1, InHand: true, TotalBetInHand: 50},
		{ID: 2, InHand: false, TotalBetInHand: 20},
	}

	pots := e.buildPots()
	require.Len(t, pots, 1)
	assert.Equal(t, 120, pots[0].Amount, "folded contributions stay in the pot")
	assert.ElementsMatch(t, []int{0, 1}, pots[0].Eligible)
}

func TestBuildPotsStratifiesAllInLevels(t *testing.T) {
	e := testEngine()
	e.players = []*Player{
		{ID: 0, InHand: true, IsAllIn: true, TotalBetInHand: 100},
		{ID: 1, InHand: true, IsAllIn: true, TotalBetInHand: 250},
		{ID: 2, InHand: true, IsAllIn: true, TotalBetInHand: 400},
		{ID: 3, InHand: true, TotalBetInHand: 400},
	}

	pots := e.buildPots()
	require.Len(t, pots, 3)

	assert.Equal(t, 400, pots[0].Amount)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, pots[0].Eligible)

	assert.Equal(t, 450, pots[1].Amount)
	assert.ElementsMatch(t, []int{1, 2, 3}, pots[1].Eligible)

	assert.Equal(t, 300, pots[2].Amount)
	assert.ElementsMatch(t, []int{2, 3}, pots[2].Eligible)

	assert.Equal(t, 1150, potTotal(pots), "chip conservation across the stratification")
}

func TestBuildPotsResidualLivePot(t *testing.T) {
	e := testEngine()
	e.players = []*Player{
		{ID: 0, InHand: true, IsAllIn: true, TotalBetInHand: 60},
		{ID: 1, InHand: true, TotalBetInHand: 200},
		{ID: 2, InHand: true, TotalBetInHand: 200},
	}

	pots := e.buildPots()
	require.Len(t, pots, 2)
	assert.Equal(t, 180, pots[0].Amount)
	assert.ElementsMatch(t, []int{0, 1, 2}, pots[0].Eligible)
	assert.Equal(t, 280, pots[1].Amount)
	assert.ElementsMatch(t, []int{1, 2}, pots[1].Eligible)
}

func TestBuildPotsOrphanedResidual(t *testing.T) {
	// An over-bettor who then folds leaves chips above the highest
	// all-in level with no eligible player. They merge into the last
	// pot rather than vanish.
	e := testEngine()
	e.players = []*Player{
		{ID: 0, InHand: true, IsAllIn: true, TotalBetInHand: 100},
		{ID: 1, InHand: true, IsAllIn: true, TotalBetInHand: 100},
		{ID: 2, InHand: false, TotalBetInHand: 150},
	}

	pots := e.buildPots()
	require.Len(t, pots, 1)
	assert.Equal(t, 350, pots[0].Amount)
	assert.ElementsMatch(t, []int{0, 1}, pots[0].Eligible)
}

func TestBuildPotsDuplicateAllInLevels(t *testing.T) {
	e := testEngine()
	e.players = []*Player{
		{ID: 0, InHand: true, IsAllIn: true, TotalBetInHand: 75},
		{ID: 1, InHand: true, IsAllIn: true, TotalBetInHand: 75},
		{ID: 2, InHand: true, TotalBetInHand: 75},
	}

	pots := e.buildPots()
	require.Len(t, pots, 1, "equal all-in totals collapse into one level")
	assert.Equal(t, 225, pots[0].Amount)
	assert.ElementsMatch(t, []int{0, 1, 2}, pots[0].Eligible)
}

func TestCollectBetsFoldsStreetBets(t *testing.T) {
	e := testEngine()
	require.NoError(t, e.Setup(standardConfig(3)))

	e.PerformAction(ActionCall, 0)  // BTN
	e.PerformAction(ActionCall, 0)  // SB
	e.PerformAction(ActionCheck, 0) // BB

	for _, p := range e.Players() {
		assert.Zero(t, p.BetThisRound)
		assert.Equal(t, 10, p.TotalBetInHand)
	}
	assert.Equal(t, 30, e.TotalPot())
}
