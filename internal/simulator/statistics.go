package simulator

import (
	"math"

	"github.com/itbagames/dilema/internal/game"
)

// Statistics accumulates per-session outcomes. Sums of amounts and squared
// amounts let mean and variance be computed without retaining every sample,
// and make merging worker-local accumulators a simple addition.
type Statistics struct {
	Sessions int
	Sum      float64
	Sum2     float64

	MinAmount int
	MaxAmount int

	Wins        int // individual step wins across all sessions
	GoalReached int
	Subsidized  int // sessions that needed the continuation floor at least once

	TierCounts map[string]int
}

func NewStatistics() *Statistics {
	return &Statistics{MinAmount: math.MaxInt, TierCounts: make(map[string]int)}
}

// Record folds one finished session into the accumulator.
func (s *Statistics) Record(final int, tier game.Tier, wins int, subsidized bool, goal int) {
	s.Sessions++
	s.Sum += float64(final)
	s.Sum2 += float64(final) * float64(final)
	if final < s.MinAmount {
		s.MinAmount = final
	}
	if final > s.MaxAmount {
		s.MaxAmount = final
	}
	s.Wins += wins
	if final >= goal {
		s.GoalReached++
	}
	if subsidized {
		s.Subsidized++
	}
	s.TierCounts[tier.Label]++
}

// Merge adds another accumulator's totals into s.
func (s *Statistics) Merge(o *Statistics) {
	s.Sessions += o.Sessions
	s.Sum += o.Sum
	s.Sum2 += o.Sum2
	if o.MinAmount < s.MinAmount {
		s.MinAmount = o.MinAmount
	}
	if o.MaxAmount > s.MaxAmount {
		s.MaxAmount = o.MaxAmount
	}
	s.Wins += o.Wins
	s.GoalReached += o.GoalReached
	s.Subsidized += o.Subsidized
	for label, n := range o.TierCounts {
		s.TierCounts[label] += n
	}
}

func (s *Statistics) Mean() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.Sum / float64(s.Sessions)
}

func (s *Statistics) Variance() float64 {
	if s.Sessions < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Sessions)*mean*mean) / float64(s.Sessions-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistics) StdError() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Sessions))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// final amount.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// GoalRate is the fraction of sessions that finished at or above the goal.
func (s *Statistics) GoalRate() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.GoalReached) / float64(s.Sessions)
}

// WinRate is the fraction of individual decisions that paid out.
func (s *Statistics) WinRate() float64 {
	decisions := s.Sessions * game.StepCount
	if decisions == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decisions)
}
