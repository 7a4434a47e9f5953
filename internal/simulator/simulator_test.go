package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itbagames/dilema/internal/game"
)

func silentLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRunDeterministic(t *testing.T) {
	t.Parallel()
	cfg := Config{Variant: game.Mundial, Sessions: 200, Policy: PolicyRandom, Seed: 42, Workers: 4}

	a, err := Run(context.Background(), cfg, silentLogger())
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg, silentLogger())
	require.NoError(t, err)

	assert.Equal(t, a.Sessions, b.Sessions)
	assert.Equal(t, a.Sum, b.Sum)
	assert.Equal(t, a.Wins, b.Wins)
	assert.Equal(t, a.TierCounts, b.TierCounts)
}

func TestRunAllPolicies(t *testing.T) {
	t.Parallel()
	for _, policy := range []Policy{PolicyRandom, PolicySafe, PolicyBalanced, PolicyBold} {
		for _, variant := range game.Variants {
			stats, err := Run(context.Background(), Config{
				Variant:  variant,
				Sessions: 100,
				Policy:   policy,
				Seed:     7,
				Workers:  2,
			}, silentLogger())
			require.NoError(t, err, "%s on %s", policy, variant.Name)

			assert.Equal(t, 100, stats.Sessions)
			assert.GreaterOrEqual(t, stats.MinAmount, 0, "money must never go negative")
			assert.GreaterOrEqual(t, stats.MaxAmount, stats.MinAmount)

			total := 0
			for _, n := range stats.TierCounts {
				total += n
			}
			assert.Equal(t, 100, total, "every session lands in exactly one tier")

			rate := stats.GoalRate()
			assert.GreaterOrEqual(t, rate, 0.0)
			assert.LessOrEqual(t, rate, 1.0)
		}
	}
}

func TestRunMoreWorkersThanSessions(t *testing.T) {
	t.Parallel()
	stats, err := Run(context.Background(), Config{
		Variant: game.Kiosco, Sessions: 3, Policy: PolicySafe, Seed: 1, Workers: 16,
	}, silentLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Sessions)
}

func TestRunRejectsZeroSessions(t *testing.T) {
	t.Parallel()
	_, err := Run(context.Background(), Config{Variant: game.Mundial, Policy: PolicyRandom}, silentLogger())
	assert.Error(t, err)
}

func TestRunHonorsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{
		Variant: game.Mundial, Sessions: 10000, Policy: PolicyRandom, Seed: 3, Workers: 2,
	}, silentLogger())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatisticsMerge(t *testing.T) {
	t.Parallel()
	tier := game.Tier{Label: "Coleccionista"}

	combined := NewStatistics()
	combined.Record(2000, tier, 3, false, 2000)
	combined.Record(400, tier, 1, true, 2000)
	combined.Record(1200, tier, 2, false, 2000)

	a := NewStatistics()
	a.Record(2000, tier, 3, false, 2000)
	b := NewStatistics()
	b.Record(400, tier, 1, true, 2000)
	b.Record(1200, tier, 2, false, 2000)
	a.Merge(b)

	assert.Equal(t, combined.Sessions, a.Sessions)
	assert.Equal(t, combined.Sum, a.Sum)
	assert.Equal(t, combined.Sum2, a.Sum2)
	assert.Equal(t, combined.MinAmount, a.MinAmount)
	assert.Equal(t, combined.MaxAmount, a.MaxAmount)
	assert.Equal(t, combined.GoalReached, a.GoalReached)
	assert.Equal(t, combined.Subsidized, a.Subsidized)
	assert.Equal(t, combined.TierCounts, a.TierCounts)
}

func TestStatisticsMoments(t *testing.T) {
	t.Parallel()
	tier := game.Tier{Label: "x"}
	s := NewStatistics()
	for _, amount := range []int{100, 200, 300} {
		s.Record(amount, tier, 0, false, 1000)
	}

	assert.InDelta(t, 200.0, s.Mean(), 1e-9)
	assert.InDelta(t, 10000.0, s.Variance(), 1e-6) // sample variance of {100,200,300}
	assert.InDelta(t, 100.0, s.StdDev(), 1e-6)

	low, high := s.ConfidenceInterval95()
	assert.Less(t, low, s.Mean())
	assert.Greater(t, high, s.Mean())
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()
	for input, want := range map[string]Policy{
		"random": PolicyRandom, "Safe": PolicySafe, "BALANCED": PolicyBalanced, "bold": PolicyBold,
	} {
		got, err := ParsePolicy(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}
	_, err := ParsePolicy("timido")
	assert.Error(t, err)
}
