package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/itbagames/dilema/internal/game"
	"github.com/itbagames/dilema/internal/leaderboard"
	"github.com/itbagames/dilema/internal/randutil"
	"github.com/itbagames/dilema/internal/tui"
)

type PlayCmd struct {
	Variant string `kong:"default='mundial',help='Edition to play (mundial, kiosco, feria)'"`
	Config  string `kong:"default='',help='HCL file overriding or adding editions'"`
	DataDir string `kong:"default='',help='Directory for ranking files (defaults to the user config dir)'"`
	Seed    int64  `kong:"default='0',help='Random seed; 0 draws from entropy'"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	// Log frames would tear the alt screen, so the interactive command logs
	// to a file when debugging and stays silent otherwise.
	logger := log.New(io.Discard)
	if cli.Debug {
		f, err := os.OpenFile("dilema.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{Level: log.DebugLevel, ReportTimestamp: true})
	}

	variant, err := loadVariant(c.Config, c.Variant)
	if err != nil {
		return err
	}

	store, err := openStore(c.DataDir, logger)
	if err != nil {
		return err
	}
	entries, err := store.Load(variant.StorageKey)
	if err != nil {
		return err
	}
	board := leaderboard.NewBoardFrom(entries, variant.Retention)

	session := game.NewSession(variant, board, store,
		game.WithRand(randutil.FromSeed(c.Seed)),
		game.WithLogger(logger),
	)
	return tui.Run(session, logger)
}
