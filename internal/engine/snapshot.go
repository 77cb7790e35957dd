package engine

import "slices"

// Snapshot is an immutable deep copy of the hand state after one
// semantic action. The ledger owns the ordered snapshot sequence;
// the engine's working state is overwritten wholesale from a
// snapshot during navigation, never patched incrementally.
type Snapshot struct {
	Players []Player `json:"players"`
	Boards  []Board  `json:"boards"`
	Pots    []Pot    `json:"pots"`

	Description string `json:"description"`

	Phase           Phase `json:"gamePhase"`
	DealerPosition  int   `json:"dealerPosition"`
	ActivePlayer    int   `json:"activePlayerIndex"`
	CurrentBet      int   `json:"currentBet"`
	MinRaise        int   `json:"minRaise"`
	LastRaiser      int   `json:"lastRaiserIndex"`
	LastRaiseAmount int   `json:"lastRaiseAmount"`
}

// Clone returns a structural copy sharing no slices with the receiver.
func (s Snapshot) Clone() Snapshot {
	cp := s
	cp.Players = make([]Player, len(s.Players))
	for i := range s.Players {
		cp.Players[i] = s.Players[i].clone()
	}
	cp.Boards = make([]Board, len(s.Boards))
	for i := range s.Boards {
		cp.Boards[i] = slices.Clone(s.Boards[i])
	}
	cp.Pots = make([]Pot, len(s.Pots))
	for i := range s.Pots {
		cp.Pots[i] = s.Pots[i].clone()
	}
	return cp
}

// TotalPot returns the sum of all pot amounts in the snapshot.
func (s Snapshot) TotalPot() int {
	total := 0
	for _, pot := range s.Pots {
		total += pot.Amount
	}
	return total
}

// flopCount returns how many of the first board's flop slots are filled.
func (s Snapshot) flopCount() int {
	if len(s.Boards) == 0 {
		return 0
	}
	count := 0
	for _, c := range s.Boards[0][:3] {
		if !c.IsZero() {
			count++
		}
	}
	return count
}
