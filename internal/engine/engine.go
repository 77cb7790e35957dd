// Package engine implements the hand-state engine: a finite-state
// machine that reconstructs a poker hand from blind posting through
// streets to showdown, with bet/raise legality, side-pot
// stratification under multiple all-ins, and a snapshot ledger that
// supports bidirectional replay.
//
// The engine never performs I/O. Persistence and rendering
// collaborators exchange plain data with it via HandRecord and
// Snapshot values. Public methods are serialized with an internal
// mutex so the replay timer can share the instance with a host
// calling from a single logical thread of control.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/handtracker/internal/deck"
)

// Board is one community board of five card slots, filled
// progressively (flop, turn, river). Unfilled slots are zero cards.
type Board []deck.Card

// Engine boundary errors. Illegal in-hand actions are silent no-ops
// by design; these errors cover caller contract violations and card
// conflicts only.
var (
	ErrInvalidConfig   = errors.New("invalid hand configuration")
	ErrCardInUse       = errors.New("card already in use")
	ErrNoPendingTarget = errors.New("no card slot selected")
	ErrEmptyRecord     = errors.New("hand record has no history")
)

// Config describes a hand to set up. Boundary validation happens in
// Setup; the engine itself assumes a validated configuration.
type Config struct {
	Players       int
	HeroPosition  string
	Currency      string
	SmallBlind    int
	BigBlind      int
	SpecialRule   SpecialRule
	Variant       Variant
	BombPotBB     int  // forced contribution in big blinds, bomb pots only
	DoubleBoard   bool // two boards, bomb pots only
	StartingStack int  // per player; defaults to 100 big blinds
}

func (c Config) validate() error {
	if c.Players < 2 || c.Players > 9 {
		return fmt.Errorf("%w: player count %d not in 2..9", ErrInvalidConfig, c.Players)
	}
	if c.SmallBlind <= 0 || c.BigBlind <= 0 {
		return fmt.Errorf("%w: blinds must be positive, got %d/%d", ErrInvalidConfig, c.SmallBlind, c.BigBlind)
	}
	if c.SmallBlind > c.BigBlind {
		return fmt.Errorf("%w: small blind %d exceeds big blind %d", ErrInvalidConfig, c.SmallBlind, c.BigBlind)
	}
	if c.SpecialRule == RuleStraddle && c.Players < 3 {
		return fmt.Errorf("%w: straddle requires at least 3 players", ErrInvalidConfig)
	}
	if c.SpecialRule == RuleBombPot && c.BombPotBB < 1 {
		return fmt.Errorf("%w: bomb pot size %d big blinds", ErrInvalidConfig, c.BombPotBB)
	}
	if c.DoubleBoard && c.SpecialRule != RuleBombPot {
		return fmt.Errorf("%w: double board requires a bomb pot", ErrInvalidConfig)
	}
	if c.StartingStack < 0 {
		return fmt.Errorf("%w: starting stack %d", ErrInvalidConfig, c.StartingStack)
	}
	return nil
}

// SnapshotSubscriber receives every snapshot the engine records.
// Callbacks run synchronously on the recording call.
type SnapshotSubscriber interface {
	OnSnapshot(Snapshot)
}

// Engine is the hand-state engine. Create with New, initialize a hand
// with Setup or Load, then drive it through PerformAction, AssignCard
// and the ledger navigation methods.
type Engine struct {
	mu     sync.Mutex
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand

	config Config

	players []*Player
	boards  []Board
	pots    []Pot

	phase           Phase
	dealerPosition  int
	activePlayer    int // player id, -1 when no one is to act
	currentBet      int
	minRaise        int
	lastRaiser      int // player id, -1 when unset
	lastRaiseAmount int

	history []Snapshot
	cursor  int

	preAction bool
	discarded map[int]bool

	pending        *Target
	multiSlot      bool
	multiSlotIndex int

	replaying   bool
	replaySpeed time.Duration
	stopReplay  func()

	subscribers []SnapshotSubscriber
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock, letting tests drive the replay
// timer deterministically.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithRand replaces the RNG used for automatic discards.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithReplayInterval sets the initial auto-replay interval.
func WithReplayInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.replaySpeed = d
		}
	}
}

// New creates an idle engine in the setup phase.
func New(logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		logger:       logger.WithPrefix("engine"),
		clock:        quartz.NewReal(),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		phase:        PhaseSetup,
		activePlayer: -1,
		lastRaiser:   -1,
		cursor:       -1,
		replaySpeed:  2 * time.Second,
		discarded:    make(map[int]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers a subscriber for recorded snapshots.
func (e *Engine) Subscribe(s SnapshotSubscriber) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, s)
}

// Phase returns the current state machine phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Players returns deep copies of the players in seat order.
func (e *Engine) Players() []Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	players := make([]Player, len(e.players))
	for i, p := range e.players {
		players[i] = p.clone()
	}
	return players
}

// Player returns a deep copy of the player with the given seat id.
func (e *Engine) Player(id int) (Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.playerByID(id)
	if p == nil {
		return Player{}, false
	}
	return p.clone(), true
}

// ActivePlayer returns a copy of the player whose turn it is.
func (e *Engine) ActivePlayer() (Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.playerByID(e.activePlayer)
	if p == nil {
		return Player{}, false
	}
	return p.clone(), true
}

// Boards returns deep copies of the community board(s).
func (e *Engine) Boards() []Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneBoards(e.boards)
}

// Pots returns deep copies of the current pots.
func (e *Engine) Pots() []Pot {
	e.mu.Lock()
	defer e.mu.Unlock()
	pots := make([]Pot, len(e.pots))
	for i, p := range e.pots {
		pots[i] = p.clone()
	}
	return pots
}

// TotalPot returns the sum of all pot amounts.
func (e *Engine) TotalPot() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalPot()
}

// CurrentBet returns the table bet to match on this street.
func (e *Engine) CurrentBet() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentBet
}

// MinRaise returns the minimum legal total bet for the next raise.
func (e *Engine) MinRaise() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.minRaise
}

// UsedCards returns the set of card codes assigned anywhere in the hand.
func (e *Engine) UsedCards() map[deck.Card]bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.usedCards()
}

func (e *Engine) playerByID(id int) *Player {
	if id < 0 || id >= len(e.players) {
		return nil
	}
	return e.players[id]
}

func (e *Engine) totalPot() int {
	total := 0
	for _, pot := range e.pots {
		total += pot.Amount
	}
	return total
}

func (e *Engine) usedCards() map[deck.Card]bool {
	used := make(map[deck.Card]bool)
	for _, p := range e.players {
		for _, c := range p.Cards {
			if !c.IsZero() {
				used[c] = true
			}
		}
	}
	for _, board := range e.boards {
		for _, c := range board {
			if !c.IsZero() {
				used[c] = true
			}
		}
	}
	return used
}

func cloneBoards(boards []Board) []Board {
	cp := make([]Board, len(boards))
	for i, b := range boards {
		cp[i] = make(Board, len(b))
		copy(cp[i], b)
	}
	return cp
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
