package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/itbagames/dilema/cmd/dilema/shared"
	"github.com/itbagames/dilema/internal/simulator"
)

type SimulateCmd struct {
	Variant  string `kong:"default='mundial',help='Edition to simulate'"`
	Config   string `kong:"default='',help='HCL file overriding or adding editions'"`
	Sessions int    `kong:"default='10000',help='Number of sessions to play'"`
	Policy   string `kong:"default='random',help='Player policy (random, safe, balanced, bold)'"`
	Seed     int64  `kong:"default='1',help='Base random seed'"`
	Workers  int    `kong:"default='0',help='Worker goroutines; 0 uses all CPUs'"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger := shared.SetupLogger(cli.Debug)

	variant, err := loadVariant(c.Config, c.Variant)
	if err != nil {
		return err
	}
	policy, err := simulator.ParsePolicy(c.Policy)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	start := time.Now()
	stats, err := simulator.Run(ctx, simulator.Config{
		Variant:  variant,
		Sessions: c.Sessions,
		Policy:   policy,
		Seed:     c.Seed,
		Workers:  c.Workers,
	}, logger)
	if err != nil {
		return err
	}
	printResults(variant.Title, variant.Currency, policy, stats, time.Since(start))
	return nil
}

func printResults(title, currency string, policy simulator.Policy, stats *simulator.Statistics, duration time.Duration) {
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("=== %s — %s policy ===\n", title, policy)
	fmt.Printf("Sessions: %d in %v (%.0f sessions/sec)\n",
		stats.Sessions, duration.Round(time.Millisecond),
		float64(stats.Sessions)/duration.Seconds())

	fmt.Printf("\n=== STATISTICAL RESULTS ===\n")
	fmt.Printf("Mean final amount: %s%.2f\n", currency, stats.Mean())
	fmt.Printf("Std Dev: %s%.2f\n", currency, stats.StdDev())
	fmt.Printf("95%% CI: [%s%.2f, %s%.2f]\n", currency, low, currency, high)
	fmt.Printf("Range: %s%d to %s%d\n", currency, stats.MinAmount, currency, stats.MaxAmount)
	fmt.Printf("Goal reached: %.1f%% of sessions\n", stats.GoalRate()*100)
	fmt.Printf("Decision win rate: %.1f%%\n", stats.WinRate()*100)
	fmt.Printf("Floor subsidies: %d sessions\n", stats.Subsidized)

	fmt.Printf("\n=== PROFILE DISTRIBUTION ===\n")
	labels := make([]string, 0, len(stats.TierCounts))
	for label := range stats.TierCounts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return stats.TierCounts[labels[i]] > stats.TierCounts[labels[j]]
	})
	for _, label := range labels {
		n := stats.TierCounts[label]
		fmt.Printf("%-24s %6d (%.1f%%)\n", label, n, float64(n)/float64(stats.Sessions)*100)
	}
}
