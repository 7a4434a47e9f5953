// Package game implements the decision-outcome-economy engine shared by all
// game variants: the phase state machine, option shuffling, probabilistic
// outcome resolution with pinned payouts, money arithmetic with the
// continuation floor, result classification and leaderboard finalization.
package game

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/itbagames/dilema/internal/gameid"
	"github.com/itbagames/dilema/internal/leaderboard"
)

// Phase drives which view is active. Engine operations are guarded by the
// current phase.
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseTutorial
	PhasePlaying
	PhaseRevealing
	PhaseResult
	PhaseLeaderboard
)

func (p Phase) String() string {
	return [...]string{"intro", "tutorial", "playing", "revealing", "result", "leaderboard"}[p]
}

// Outcome is the resolved win/lose result of a single decision.
type Outcome int

const (
	Lose Outcome = iota
	Win
)

func (o Outcome) String() string {
	return [...]string{"lose", "win"}[o]
}

// DecisionRecord is one resolved decision in session history. Immutable once
// appended.
type DecisionRecord struct {
	OptionLabel string
	Invested    int
	Outcome     Outcome
	Gained      int // 0 on lose
}

// Rand is the random-source capability injected into the engine. The single
// place randomness enters the game, so outcome resolution and shuffling are
// deterministic under test. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Reveal describes a resolved-but-uncommitted decision for the reveal
// animation. The gain is pinned at resolution time and never re-rolled, so
// the animation can never diverge from the committed result.
type Reveal struct {
	Option    Option
	Invested  int
	Outcome   Outcome
	Gain      int // amount gained if the outcome is (or had been) a win
	WinChance int
}

// CommitResult reports the effect of committing a pending decision.
type CommitResult struct {
	Record  DecisionRecord
	Money   int
	Subsidy int // amount granted by the continuation floor, 0 if none
	Final   bool
	Tier    Tier               // zero unless Final
	Entry   *leaderboard.Entry // nil unless Final and identity was captured
}

type pendingOutcome struct {
	option   Option
	invested int
	outcome  Outcome
	gain     int
}

// Session is the mutable per-player game state. It is owned by a single
// Presentation Layer and never shared between goroutines.
type Session struct {
	variant Variant
	board   *leaderboard.Board
	store   leaderboard.Store

	rng    Rand
	clock  quartz.Clock
	logger *log.Logger

	phase     Phase
	money     int
	step      int
	decisions []DecisionRecord
	options   []Option
	pending   *pendingOutcome

	playerName  string
	playerEmail string
}

// NewSession creates a session at the intro phase. The board carries prior
// leaderboard entries for uniqueness validation; the store receives the
// finalized result.
func NewSession(variant Variant, board *leaderboard.Board, store leaderboard.Store, opts ...SessionOption) *Session {
	s := &Session{
		variant: variant,
		board:   board,
		store:   store,
		phase:   PhaseIntro,
		money:   variant.StartingMoney,
	}
	defaultSessionConfig(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Variant() Variant { return s.variant }
func (s *Session) Phase() Phase     { return s.phase }
func (s *Session) Money() int       { return s.money }
func (s *Session) StepIndex() int   { return s.step }
func (s *Session) PlayerName() string { return s.playerName }

// Board exposes the leaderboard for rendering.
func (s *Session) Board() *leaderboard.Board { return s.board }

// Decisions returns a copy of the committed decision history, in
// chronological order.
func (s *Session) Decisions() []DecisionRecord {
	out := make([]DecisionRecord, len(s.decisions))
	copy(out, s.decisions)
	return out
}

// Options returns the current shuffled option set.
func (s *Session) Options() []Option {
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Start validates the player identity and begins play. On validation
// failure every offending field is reported and state is left unchanged.
func (s *Session) Start(name, email string) error {
	if s.phase != PhaseIntro {
		return fmt.Errorf("%w: start from %s", ErrPhase, s.phase)
	}

	var errs []error
	if err := s.validateName(name); err != nil {
		errs = append(errs, err)
	}
	if s.variant.RequireEmail {
		if err := s.validateEmail(email); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	s.playerName = strings.TrimSpace(name)
	s.playerEmail = strings.TrimSpace(email)
	s.money = s.variant.StartingMoney
	s.step = 0
	s.decisions = nil
	s.options = nil
	s.pending = nil
	s.phase = PhasePlaying
	s.logger.Debug("Session started", "player", s.playerName, "variant", s.variant.Name)
	return nil
}

func (s *Session) validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &FieldError{Field: "name", Message: "¡Ponete un nombre, crack!"}
	}
	if utf8.RuneCountInString(trimmed) < 2 {
		return &FieldError{Field: "name", Message: "Muy cortito el nombre, ¿no?"}
	}
	if s.board.NameTaken(trimmed) {
		return &FieldError{Field: "name", Message: "Ese nombre ya lo agarró otro. ¡Inventate uno nuevo!"}
	}
	return nil
}

func (s *Session) validateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return &FieldError{Field: "email", Message: "¡Necesitamos tu email!"}
	}
	if !emailShape.MatchString(trimmed) {
		return &FieldError{Field: "email", Message: "El email no tiene un formato válido"}
	}
	if s.board.EmailTaken(trimmed) {
		return &FieldError{Field: "email", Message: "Ese email ya está registrado. ¿Ya jugaste antes?"}
	}
	return nil
}

// PrepareStep shuffles the current step's options. Called on every entry to
// a step, including retries, so option order never survives between plays.
// Every permutation is equally likely.
func (s *Session) PrepareStep() ([]Option, error) {
	if s.phase != PhasePlaying {
		return nil, fmt.Errorf("%w: prepare during %s", ErrPhase, s.phase)
	}
	if s.step >= StepCount {
		return nil, fmt.Errorf("%w: step %d", ErrOptionIndex, s.step)
	}

	opts := make([]Option, StepOptions)
	copy(opts, s.variant.Steps[s.step].Options[:])
	for i := len(opts) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
	s.options = opts
	return s.Options(), nil
}

// CurrentStep returns the static configuration of the step being played.
func (s *Session) CurrentStep() Step {
	if s.step >= StepCount {
		return s.variant.Steps[StepCount-1]
	}
	return s.variant.Steps[s.step]
}

// Resolve draws the outcome for the chosen option and moves to the
// revealing phase. Money and history are untouched until Commit, so an
// interrupted reveal can never double-apply. The payout is pinned here:
// fixed variants read the option table, dynamic variants draw the
// multiplier once.
func (s *Session) Resolve(optionIndex int) (*Reveal, error) {
	if s.phase != PhasePlaying {
		return nil, fmt.Errorf("%w: resolve during %s", ErrPhase, s.phase)
	}
	if len(s.options) == 0 {
		return nil, ErrStepPrepared
	}
	if optionIndex < 0 || optionIndex >= len(s.options) {
		return nil, fmt.Errorf("%w: %d", ErrOptionIndex, optionIndex)
	}

	option := s.options[optionIndex]
	if option.Investment > s.money {
		return nil, fmt.Errorf("%w: %s costs %d, balance is %d",
			ErrUnaffordable, option.Label(), option.Investment, s.money)
	}
	// Defensive clamp; equal to the investment under the affordability check.
	invested := option.Investment
	if invested > s.money {
		invested = s.money
	}

	gain := option.FixedPayout
	if s.variant.DynamicPayout() {
		m := s.variant.Multiplier.Min + s.rng.Float64()*(s.variant.Multiplier.Max-s.variant.Multiplier.Min)
		gain = int(math.Round(float64(invested) * m))
	}

	outcome := Lose
	if r := s.rng.Float64() * 100; r < float64(option.WinChance) {
		outcome = Win
	}

	s.pending = &pendingOutcome{
		option:   option,
		invested: invested,
		outcome:  outcome,
		gain:     gain,
	}
	s.phase = PhaseRevealing
	s.logger.Debug("Decision resolved",
		"step", s.step, "option", option.ID, "outcome", outcome, "invested", invested, "gain", gain)

	return &Reveal{
		Option:    option,
		Invested:  invested,
		Outcome:   outcome,
		Gain:      gain,
		WinChance: option.WinChance,
	}, nil
}

// Commit applies the pending outcome: updates the wallet, grants the
// continuation floor on non-final steps, appends the decision record and
// advances. On the final step it classifies the result and finalizes the
// leaderboard entry.
func (s *Session) Commit() (*CommitResult, error) {
	if s.phase != PhaseRevealing {
		return nil, fmt.Errorf("%w: commit during %s", ErrPhase, s.phase)
	}
	if s.pending == nil {
		return nil, ErrNoPending
	}

	p := s.pending
	money := s.money - p.invested
	gained := 0
	if p.outcome == Win {
		money += p.gain
		gained = p.gain
	}
	if money < 0 {
		money = 0
	}

	final := s.step == StepCount-1
	subsidy := 0
	if !final && money < s.variant.FloorAmount {
		// Continuation floor: a loss must never dead-end the session before
		// the third decision.
		subsidy = s.variant.FloorAmount - money
		money = s.variant.FloorAmount
		s.logger.Debug("Continuation floor granted", "step", s.step, "subsidy", subsidy)
	}

	record := DecisionRecord{
		OptionLabel: p.option.Label(),
		Invested:    p.invested,
		Outcome:     p.outcome,
		Gained:      gained,
	}
	s.money = money
	s.decisions = append(s.decisions, record)
	s.step++
	s.pending = nil
	s.options = nil

	result := &CommitResult{
		Record:  record,
		Money:   money,
		Subsidy: subsidy,
		Final:   final,
	}
	if final {
		s.phase = PhaseResult
		result.Tier = s.variant.Classify(money)
		result.Entry = s.finalize(money, result.Tier)
	} else {
		s.phase = PhasePlaying
	}
	return result, nil
}

// finalize records the finished session on the leaderboard. A blank player
// identity makes this a no-op; Start already guarantees it is set on every
// normal path.
func (s *Session) finalize(finalAmount int, tier Tier) *leaderboard.Entry {
	if strings.TrimSpace(s.playerName) == "" {
		return nil
	}
	email := s.playerEmail
	if email == "" {
		email = leaderboard.PlaceholderEmail
	}
	entry := leaderboard.Entry{
		ID:          gameid.New(),
		Name:        s.playerName,
		Email:       email,
		FinalAmount: finalAmount,
		Profile:     tier.Label,
		RecordedAt:  s.clock.Now(),
	}
	s.board.Insert(entry)
	if err := s.store.Save(s.variant.StorageKey, s.board.Entries()); err != nil {
		// Persistence failures degrade: the session result still renders,
		// only the stored board is stale.
		s.logger.Warn("Failed to persist leaderboard", "key", s.variant.StorageKey, "error", err)
	}
	s.logger.Info("Session finished",
		"player", s.playerName, "final", finalAmount, "profile", tier.Label)
	return &entry
}

// Classify is the pure classification function, exposed for the result view
// and the simulator.
func (s *Session) Classify(amount int) Tier {
	return s.variant.Classify(amount)
}

// ShowTutorial moves to the tutorial idle view.
func (s *Session) ShowTutorial() error {
	return s.idleTransition(PhaseTutorial)
}

// ShowLeaderboard moves to the leaderboard idle view.
func (s *Session) ShowLeaderboard() error {
	return s.idleTransition(PhaseLeaderboard)
}

// BackToIntro returns to the intro from any idle view.
func (s *Session) BackToIntro() error {
	return s.idleTransition(PhaseIntro)
}

// Idle views and the result screen may navigate freely between each other;
// mid-game phases may not, they only Reset.
func (s *Session) idleTransition(to Phase) error {
	switch s.phase {
	case PhaseIntro, PhaseTutorial, PhaseLeaderboard, PhaseResult:
		s.phase = to
		return nil
	}
	return fmt.Errorf("%w: navigate to %s during %s", ErrPhase, to, s.phase)
}

// Reset discards all session state and returns to the intro with the
// variant's starting values. Always available.
func (s *Session) Reset() {
	s.phase = PhaseIntro
	s.money = s.variant.StartingMoney
	s.step = 0
	s.decisions = nil
	s.options = nil
	s.pending = nil
	s.playerName = ""
	s.playerEmail = ""
}
