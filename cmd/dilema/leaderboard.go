package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"github.com/itbagames/dilema/cmd/dilema/shared"
	"github.com/itbagames/dilema/internal/leaderboard"
)

type LeaderboardCmd struct {
	List  BoardListCmd  `cmd:"" default:"withargs" help:"Show the stored ranking"`
	Clear BoardClearCmd `cmd:"" help:"Delete the stored ranking"`
}

type BoardListCmd struct {
	Variant string `kong:"default='mundial',help='Edition whose ranking to show'"`
	Config  string `kong:"default='',help='HCL file overriding or adding editions'"`
	DataDir string `kong:"default='',help='Directory for ranking files'"`
	Emails  bool   `kong:"default='false',help='Include stored emails in the listing'"`
}

func (c *BoardListCmd) Run(cli *CLI) error {
	logger := shared.SetupLogger(cli.Debug)

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

	out := termenv.NewOutput(os.Stdout)
	p := out.ColorProfile()

	fmt.Println(out.String(fmt.Sprintf("Ranking — %s", variant.Title)).Bold())
	if board.Len() == 0 {
		fmt.Println("Todavía no hay resultados.")
		return nil
	}

	medalColors := [...]string{"#FFD700", "#C0C0C0", "#CD7F32"}
	for i, e := range board.Entries() {
		line := fmt.Sprintf("%2d. %-20s %s%-6d %s", i+1, e.Name, variant.Currency, e.FinalAmount, e.Profile)
		if c.Emails && e.Email != "" {
			line += fmt.Sprintf("  <%s>", e.Email)
		}
		if i < len(medalColors) {
			fmt.Println(out.String(line).Foreground(p.Color(medalColors[i])).Bold())
		} else {
			fmt.Println(line)
		}
	}
	return nil
}

type BoardClearCmd struct {
	Variant string `kong:"default='mundial',help='Edition whose ranking to delete'"`
	Config  string `kong:"default='',help='HCL file overriding or adding editions'"`
	DataDir string `kong:"default='',help='Directory for ranking files'"`
}

func (c *BoardClearCmd) Run(cli *CLI) error {
	logger := shared.SetupLogger(cli.Debug)

	variant, err := loadVariant(c.Config, c.Variant)
	if err != nil {
		return err
	}
	if !variant.AllowClear {
		return fmt.Errorf("the %s edition keeps its ranking permanently", variant.Name)
	}
	store, err := openStore(c.DataDir, logger)
	if err != nil {
		return err
	}
	if err := store.Clear(variant.StorageKey); err != nil {
		return err
	}
	logger.Info("Ranking cleared", "variant", variant.Name)
	return nil
}
