package game

import (
	"fmt"
	"strings"
)

// Risk classifies an option's risk tier.
type Risk int

const (
	LowRisk Risk = iota
	MediumRisk
	HighRisk
)

func (r Risk) String() string {
	return [...]string{"low", "medium", "high"}[r]
}

// ParseRisk converts a config string to a Risk.
func ParseRisk(s string) (Risk, error) {
	switch strings.ToLower(s) {
	case "low":
		return LowRisk, nil
	case "medium":
		return MediumRisk, nil
	case "high":
		return HighRisk, nil
	}
	return LowRisk, fmt.Errorf("unknown risk tier: %q", s)
}

// Option is one configured choice within a decision step. Options are static
// per variant and never mutated at runtime.
type Option struct {
	ID          string // "A", "B" or "C"
	Title       string
	Description string
	Investment  int
	WinChance   int // percent, 0-100
	Risk        Risk
	FixedPayout int // gain on win; 0 when the variant uses multiplier payouts
}

// Label is the identifier plus title recorded in decision history.
func (o Option) Label() string {
	return o.ID + ": " + o.Title
}

// Step is one of the three decision stages of a session.
type Step struct {
	Title    string
	Subtitle string
	Scenario string
	Options  [StepOptions]Option
}

// MinInvestment returns the cost of the cheapest option in the step.
func (s Step) MinInvestment() int {
	min := s.Options[0].Investment
	for _, o := range s.Options[1:] {
		if o.Investment < min {
			min = o.Investment
		}
	}
	return min
}

// MultiplierRange defines the half-open interval a win multiplier is drawn
// from, for variants with dynamic payouts.
type MultiplierRange struct {
	Min float64
	Max float64
}

// Tier maps a final amount threshold to a player profile.
type Tier struct {
	Threshold int // final amount must be >= Threshold
	Label     string
	Message   string
}

const (
	// StepCount is the fixed number of decisions in a session.
	StepCount = 3
	// StepOptions is the fixed number of options per decision step.
	StepOptions = 3
)

// Variant is the full configuration of one game edition. A single engine
// parametrizes over all variants; nothing outside this struct differs
// between them.
type Variant struct {
	Name     string // short identifier, e.g. "mundial"
	Title    string
	Tagline  string
	Currency string // display symbol, e.g. "$"

	StartingMoney int
	Goal          int
	// FloorAmount is the continuation floor: the balance a player is raised
	// to after a loss on a non-final step, so every session reaches all
	// three decisions.
	FloorAmount int

	// Multiplier is the dynamic payout range. Zero value means the variant
	// pays the per-option FixedPayout instead.
	Multiplier MultiplierRange

	RequireEmail bool
	// Retention caps stored leaderboard size; 0 keeps full history.
	Retention int
	// AllowClear enables the leaderboard clear operation.
	AllowClear bool
	// StorageKey is the fixed identifier the leaderboard store is keyed by.
	StorageKey string

	Steps [StepCount]Step
	// Tiers must be ordered by descending threshold; the last tier is the
	// catch-all and its threshold is ignored.
	Tiers []Tier
}

// DynamicPayout reports whether wins pay a drawn multiplier of the invested
// amount rather than a fixed table value.
func (v Variant) DynamicPayout() bool {
	return v.Multiplier.Max > v.Multiplier.Min
}

// Classify maps a final amount to its profile tier. Total: the last tier
// covers every amount below the lowest named threshold, including zero.
func (v Variant) Classify(amount int) Tier {
	for _, t := range v.Tiers[:len(v.Tiers)-1] {
		if amount >= t.Threshold {
			return t
		}
	}
	return v.Tiers[len(v.Tiers)-1]
}

// Validate checks the structural invariants every configured variant must
// hold. It is run over built-in variants in tests and over operator config
// at load time.
func (v Variant) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("variant has no name")
	}
	if v.StorageKey == "" {
		return fmt.Errorf("variant %s has no storage key", v.Name)
	}
	if v.StartingMoney <= 0 {
		return fmt.Errorf("variant %s: starting money must be positive", v.Name)
	}
	if len(v.Tiers) < 2 {
		return fmt.Errorf("variant %s: at least two profile tiers required", v.Name)
	}
	for i := 1; i < len(v.Tiers)-1; i++ {
		if v.Tiers[i].Threshold >= v.Tiers[i-1].Threshold {
			return fmt.Errorf("variant %s: tier thresholds must strictly descend", v.Name)
		}
	}
	if v.Multiplier.Max < v.Multiplier.Min {
		return fmt.Errorf("variant %s: inverted multiplier range", v.Name)
	}

	for si, step := range v.Steps {
		seen := make(map[Risk]bool, StepOptions)
		for _, o := range step.Options {
			if o.Investment <= 0 {
				return fmt.Errorf("variant %s step %d option %s: investment must be positive", v.Name, si+1, o.ID)
			}
			if o.WinChance < 0 || o.WinChance > 100 {
				return fmt.Errorf("variant %s step %d option %s: win chance out of range", v.Name, si+1, o.ID)
			}
			if !v.DynamicPayout() && o.FixedPayout <= 0 {
				return fmt.Errorf("variant %s step %d option %s: fixed payout must be positive", v.Name, si+1, o.ID)
			}
			if seen[o.Risk] {
				return fmt.Errorf("variant %s step %d: duplicate risk tier %s", v.Name, si+1, o.Risk)
			}
			seen[o.Risk] = true
		}
		if len(seen) != StepOptions {
			return fmt.Errorf("variant %s step %d: must cover all three risk tiers", v.Name, si+1)
		}
		// Higher cost must come with lower odds within a step.
		for _, a := range step.Options {
			for _, b := range step.Options {
				if a.Investment < b.Investment && a.WinChance <= b.WinChance {
					return fmt.Errorf("variant %s step %d: options %s and %s break the cost/odds inverse correlation",
						v.Name, si+1, a.ID, b.ID)
				}
			}
		}
		// Every step must be reachable: the first from the starting money,
		// later ones from the floor.
		if si == 0 && v.StartingMoney < step.MinInvestment() {
			return fmt.Errorf("variant %s: starting money %d cannot afford step 1 (cheapest option costs %d)",
				v.Name, v.StartingMoney, step.MinInvestment())
		}
		if si > 0 && v.FloorAmount < step.MinInvestment() {
			return fmt.Errorf("variant %s: floor %d cannot afford step %d (cheapest option costs %d)",
				v.Name, v.FloorAmount, si+1, step.MinInvestment())
		}
	}
	return nil
}
