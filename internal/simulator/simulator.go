// Package simulator runs automated game sessions in bulk to estimate the
// outcome distribution of a variant's economy: expected final amount, goal
// rate and profile tier spread per play policy.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/itbagames/dilema/internal/game"
	"github.com/itbagames/dilema/internal/leaderboard"
	"github.com/itbagames/dilema/internal/randutil"
)

// Policy selects which option an automated player picks at each step.
type Policy int

const (
	PolicyRandom Policy = iota
	PolicySafe
	PolicyBalanced
	PolicyBold
)

func (p Policy) String() string {
	return [...]string{"random", "safe", "balanced", "bold"}[p]
}

// ParsePolicy converts a CLI flag value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "random":
		return PolicyRandom, nil
	case "safe":
		return PolicySafe, nil
	case "balanced":
		return PolicyBalanced, nil
	case "bold":
		return PolicyBold, nil
	}
	return PolicyRandom, fmt.Errorf("unknown policy: %q (random, safe, balanced, bold)", s)
}

// Config parametrizes a simulation run.
type Config struct {
	Variant  game.Variant
	Sessions int
	Policy   Policy
	Seed     int64
	Workers  int // 0 means GOMAXPROCS
}

// Run plays cfg.Sessions full sessions across a worker pool and aggregates
// their outcomes. Deterministic for a fixed non-zero seed and worker count.
func Run(ctx context.Context, cfg Config, logger *log.Logger) (*Statistics, error) {
	if cfg.Sessions <= 0 {
		return nil, fmt.Errorf("session count must be positive, got %d", cfg.Sessions)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > cfg.Sessions {
		workers = cfg.Sessions
	}

	logger.Debug("Starting simulation",
		"variant", cfg.Variant.Name, "sessions", cfg.Sessions, "policy", cfg.Policy, "workers", workers)

	perWorker := make([]*Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			// Each worker owns its rand stream; streams are derived from
			// the base seed so runs are reproducible.
			rng := randutil.New(cfg.Seed + int64(w))
			stats := NewStatistics()
			count := cfg.Sessions / workers
			if w < cfg.Sessions%workers {
				count++
			}
			for i := 0; i < count; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				final, tier, wins, subsidized, err := playSession(cfg.Variant, cfg.Policy, rng, i)
				if err != nil {
					return err
				}
				stats.Record(final, tier, wins, subsidized, cfg.Variant.Goal)
			}
			perWorker[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := NewStatistics()
	for _, s := range perWorker {
		total.Merge(s)
	}
	return total, nil
}

// playSession drives one session to completion. Every session gets a fresh
// board and store: simulated results never share leaderboard state, which
// keeps the store's exclusive-access assumption intact across workers.
func playSession(v game.Variant, policy Policy, rng game.Rand, n int) (final int, tier game.Tier, wins int, subsidized bool, err error) {
	board := leaderboard.NewBoard(v.Retention)
	s := game.NewSession(v, board, leaderboard.NewMemStore(), game.WithRand(rng))

	email := ""
	if v.RequireEmail {
		email = fmt.Sprintf("bot%d@simulacion.local", n)
	}
	if err = s.Start(fmt.Sprintf("Bot %d", n), email); err != nil {
		return 0, game.Tier{}, 0, false, fmt.Errorf("failed to start simulated session: %w", err)
	}

	for s.Phase() == game.PhasePlaying {
		opts, perr := s.PrepareStep()
		if perr != nil {
			return 0, game.Tier{}, 0, false, perr
		}
		idx := pickOption(opts, s.Money(), policy, rng)
		reveal, rerr := s.Resolve(idx)
		if rerr != nil {
			return 0, game.Tier{}, 0, false, rerr
		}
		if reveal.Outcome == game.Win {
			wins++
		}
		res, cerr := s.Commit()
		if cerr != nil {
			return 0, game.Tier{}, 0, false, cerr
		}
		if res.Subsidy > 0 {
			subsidized = true
		}
		if res.Final {
			return res.Money, res.Tier, wins, subsidized, nil
		}
	}
	return 0, game.Tier{}, 0, false, fmt.Errorf("session ended in unexpected phase %s", s.Phase())
}

// pickOption applies the policy to the affordable subset of the shuffled
// options. Variant validation (starting money covers step one, the floor
// covers later steps) guarantees the subset is never empty.
func pickOption(opts []game.Option, money int, policy Policy, rng game.Rand) int {
	affordable := make([]int, 0, len(opts))
	for i, o := range opts {
		if o.Investment <= money {
			affordable = append(affordable, i)
		}
	}

	var want game.Risk
	switch policy {
	case PolicySafe:
		want = game.LowRisk
	case PolicyBalanced:
		want = game.MediumRisk
	case PolicyBold:
		want = game.HighRisk
	default:
		return affordable[rng.IntN(len(affordable))]
	}

	best := affordable[0]
	bestDist := riskDistance(opts[best].Risk, want)
	for _, i := range affordable[1:] {
		if d := riskDistance(opts[i].Risk, want); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func riskDistance(a, b game.Risk) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}
