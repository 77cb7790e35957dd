package engine

import "fmt"

// Phase represents the hand state machine phase.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePreflop
	PhaseWaitingForFlop
	PhaseDiscard
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseReplay
)

var phaseNames = map[Phase]string{
	PhaseSetup:          "setup",
	PhasePreflop:        "preflop",
	PhaseWaitingForFlop: "waitingForFlop",
	PhaseDiscard:        "discard",
	PhaseFlop:           "flop",
	PhaseTurn:           "turn",
	PhaseRiver:          "river",
	PhaseShowdown:       "showdown",
	PhaseReplay:         "replay",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the phase name used in persisted hand records.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name from a persisted hand record.
func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown game phase %q", text)
}

// isBettingStreet reports whether player actions are accepted in this phase.
func (p Phase) isBettingStreet() bool {
	switch p {
	case PhasePreflop, PhaseFlop, PhaseTurn, PhaseRiver:
		return true
	}
	return false
}

// ActionKind represents a player action.
type ActionKind int

const (
	ActionFold ActionKind = iota
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionAllIn
)

func (a ActionKind) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "all-in"}[a]
}

// SpecialRule selects the forced-bet variant for a hand.
type SpecialRule int

const (
	RuleNone SpecialRule = iota
	RuleStraddle
	RuleMississippi
	RuleBombPot
)

var ruleNames = map[SpecialRule]string{
	RuleNone:        "none",
	RuleStraddle:    "straddle",
	RuleMississippi: "mississippi",
	RuleBombPot:     "bombPot",
}

func (r SpecialRule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the rule name used in persisted hand records.
func (r SpecialRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a rule name from a persisted hand record.
func (r *SpecialRule) UnmarshalText(text []byte) error {
	for rule, name := range ruleNames {
		if name == string(text) {
			*r = rule
			return nil
		}
	}
	return fmt.Errorf("unknown special rule %q", text)
}

// ParseSpecialRule decodes a rule name from configuration.
func ParseSpecialRule(name string) (SpecialRule, error) {
	var r SpecialRule
	if err := r.UnmarshalText([]byte(name)); err != nil {
		return RuleNone, err
	}
	return r, nil
}

// Variant selects the game variant for a hand.
type Variant int

const (
	VariantHoldem Variant = iota
	VariantOmaha
	VariantCrazyPineapple
)

var variantNames = map[Variant]string{
	VariantHoldem:         "holdem",
	VariantOmaha:          "omaha",
	VariantCrazyPineapple: "pineapple",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the variant name used in persisted hand records.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a variant name from a persisted hand record.
func (v *Variant) UnmarshalText(text []byte) error {
	for variant, name := range variantNames {
		if name == string(text) {
			*v = variant
			return nil
		}
	}
	return fmt.Errorf("unknown game variant %q", text)
}

// ParseVariant decodes a variant name from configuration.
func ParseVariant(name string) (Variant, error) {
	var v Variant
	if err := v.UnmarshalText([]byte(name)); err != nil {
		return VariantHoldem, err
	}
	return v, nil
}

// HoleCards returns the number of starting hole cards for the variant.
func (v Variant) HoleCards() int {
	switch v {
	case VariantOmaha:
		return 4
	case VariantCrazyPineapple:
		return 3
	default:
		return 2
	}
}
