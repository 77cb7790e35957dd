// Package deck provides typed playing cards for the hand tracker.
// Cards travel as compact two-character codes ("Ah", "Td") in saved
// hand records, so the package round-trips those codes exactly.
package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota + 1
	Hearts
	Diamonds
	Clubs
)

// String returns the symbol representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Code returns the single-letter code used in card codes
func (s Suit) Code() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents a playing card. The zero value is an empty slot.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// IsZero reports whether the card is an unassigned slot.
func (c Card) IsZero() bool {
	return c.Rank == 0 && c.Suit == 0
}

// Code returns the compact code for the card (e.g. "Ah").
// Empty slots produce the empty string.
func (c Card) Code() string {
	if c.IsZero() {
		return ""
	}
	return c.Rank.String() + c.Suit.Code()
}

// String returns the display representation of a card (e.g. "A♥")
func (c Card) String() string {
	if c.IsZero() {
		return "__"
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// MarshalText encodes the card as its compact code.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

// UnmarshalText decodes a compact card code. An empty string
// decodes to the zero card.
func (c *Card) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Card{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse decodes a compact card code like "Ah" or "Td".
func Parse(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}

	var rank Rank
	switch code[0] {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = Rank(code[0] - '0')
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank in card code %q", code)
	}

	var suit Suit
	switch code[1] {
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit in card code %q", code)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustParse decodes a compact card code and panics on failure.
// Intended for tests and fixtures.
func MustParse(code string) Card {
	c, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return c
}
