package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/itbagames/dilema/internal/config"
	"github.com/itbagames/dilema/internal/game"
	"github.com/itbagames/dilema/internal/leaderboard"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging"`

	Play        PlayCmd        `cmd:"" default:"withargs" help:"Play a game edition interactively"`
	Leaderboard LeaderboardCmd `cmd:"" help:"Work with the stored ranking"`
	Simulate    SimulateCmd    `cmd:"" help:"Estimate outcome distributions with automated players"`
	Variants    VariantsCmd    `cmd:"" help:"List the available game editions"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dilema"),
		kong.Description("Juego de decisiones: invertí, arriesgá y llegá a la meta"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// loadVariant resolves a named edition, with an optional HCL file layered
// over the built-ins.
func loadVariant(configPath, name string) (game.Variant, error) {
	variants, err := config.LoadVariants(configPath)
	if err != nil {
		return game.Variant{}, err
	}
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return game.Variant{}, fmt.Errorf("unknown edition %q, try the variants command", name)
}

// openStore creates the file-backed leaderboard store under dataDir, or the
// user config dir when unset.
func openStore(dataDir string, logger *log.Logger) (*leaderboard.FileStore, error) {
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config dir: %w", err)
		}
		dataDir = filepath.Join(base, "dilema")
	}
	return leaderboard.NewFileStore(dataDir, logger)
}
