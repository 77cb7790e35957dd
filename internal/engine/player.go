package engine

import (
	"slices"

	"github.com/lox/handtracker/internal/deck"
)

// Player represents a seat in the hand being reconstructed.
// Chip accounting invariant: Stack + TotalBetInHand is constant from
// hand start until chips are paid out at showdown.
type Player struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Stack    int         `json:"stack"`
	Cards    []deck.Card `json:"cards"`
	Position string      `json:"position"`

	InHand            bool `json:"inHand"`
	IsAllIn           bool `json:"isAllIn"`
	HasActedThisRound bool `json:"hasActedThisRound"`
	BetThisRound      int  `json:"betThisRound"`
	TotalBetInHand    int  `json:"totalBetInHand"`

	IsDealer      bool `json:"isDealer"`
	IsSB          bool `json:"isSB"`
	IsBB          bool `json:"isBB"`
	IsStraddle    bool `json:"isStraddle"`
	IsMississippi bool `json:"isMississippi"`
	IsBombPot     bool `json:"isBombPot"`
	IsHero        bool `json:"isHero"`

	Notes      string `json:"notes"`
	Tag        string `json:"tag,omitempty"`
	LastAction string `json:"lastAction,omitempty"`
}

// CanAct reports whether the player can still act this street.
func (p *Player) CanAct() bool {
	return p.InHand && !p.IsAllIn
}

// clone returns a deep copy of the player.
func (p *Player) clone() Player {
	cp := *p
	cp.Cards = slices.Clone(p.Cards)
	return cp
}

// Pot represents a pot (main or side).
type Pot struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligiblePlayers"`
}

// clone returns a deep copy of the pot.
func (p Pot) clone() Pot {
	return Pot{Amount: p.Amount, Eligible: slices.Clone(p.Eligible)}
}
