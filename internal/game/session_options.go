package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/itbagames/dilema/internal/randutil"
)

// SessionOption configures a Session during creation.
type SessionOption func(*Session)

// WithRand injects the random source used for shuffles, outcome draws and
// payout multipliers. Tests pass a seeded or scripted source; production
// uses a time-seeded one.
func WithRand(rng Rand) SessionOption {
	return func(s *Session) { s.rng = rng }
}

// WithClock injects the clock used for leaderboard timestamps.
func WithClock(clock quartz.Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// WithLogger injects the session logger.
func WithLogger(logger *log.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

func defaultSessionConfig(s *Session) {
	s.rng = randutil.FromSeed(0)
	s.clock = quartz.NewReal()
	s.logger = log.New(io.Discard)
}
