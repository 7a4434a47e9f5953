// Package config loads game variant definitions from HCL files. Operators
// can tweak the numeric tables of a built-in edition or define a whole new
// one; everything absent falls back to the built-in values.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/itbagames/dilema/internal/game"
)

// Config is the root of a variants file.
type Config struct {
	Variants []VariantConfig `hcl:"variant,block"`
}

// VariantConfig overrides or defines one game edition. Scalar fields left
// out keep the built-in value when the label names a built-in variant.
type VariantConfig struct {
	Name          string  `hcl:"name,label"`
	Title         string  `hcl:"title,optional"`
	Tagline       string  `hcl:"tagline,optional"`
	Currency      string  `hcl:"currency,optional"`
	StartingMoney int     `hcl:"starting_money,optional"`
	Goal          int     `hcl:"goal,optional"`
	Floor         int     `hcl:"floor,optional"`
	RequireEmail  *bool   `hcl:"require_email,optional"`
	Retention     *int    `hcl:"retention,optional"`
	AllowClear    *bool   `hcl:"allow_clear,optional"`
	StorageKey    string  `hcl:"storage_key,optional"`
	MultiplierMin float64 `hcl:"multiplier_min,optional"`
	MultiplierMax float64 `hcl:"multiplier_max,optional"`

	Steps []StepConfig `hcl:"step,block"`
	Tiers []TierConfig `hcl:"tier,block"`
}

// TierConfig defines one profile tier. Tiers must be listed from the
// highest threshold down; the last one is the catch-all.
type TierConfig struct {
	Label     string `hcl:"label,label"`
	Threshold int    `hcl:"threshold,optional"`
	Message   string `hcl:"message,optional"`
}

// StepConfig replaces one decision step. When any step block is present the
// file must define all three steps with three options each.
type StepConfig struct {
	Title    string         `hcl:"title,label"`
	Subtitle string         `hcl:"subtitle,optional"`
	Scenario string         `hcl:"scenario,optional"`
	Options  []OptionConfig `hcl:"option,block"`
}

// OptionConfig defines one choice within a step.
type OptionConfig struct {
	ID          string `hcl:"id,label"`
	Title       string `hcl:"title"`
	Description string `hcl:"description,optional"`
	Investment  int    `hcl:"investment"`
	WinChance   int    `hcl:"win_chance"`
	Risk        string `hcl:"risk"`
	Payout      int    `hcl:"payout,optional"`
}

// LoadVariants returns the variant catalog: the built-in editions with any
// file overrides applied, plus new editions the file defines. A missing
// file yields the unmodified built-ins, matching how absent config behaves
// everywhere else in the CLI.
func LoadVariants(filename string) ([]game.Variant, error) {
	catalog := append([]game.Variant(nil), game.Variants...)
	if filename == "" {
		return catalog, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return catalog, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse variants file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode variants file: %s", diags.Error())
	}

	for _, vc := range config.Variants {
		idx := -1
		base := game.Variant{Name: vc.Name, Currency: "$"}
		for i, v := range catalog {
			if v.Name == vc.Name {
				idx, base = i, v
				break
			}
		}
		variant, err := applyOverrides(base, vc)
		if err != nil {
			return nil, err
		}
		if idx >= 0 {
			catalog[idx] = variant
		} else {
			catalog = append(catalog, variant)
		}
	}
	return catalog, nil
}

func applyOverrides(v game.Variant, vc VariantConfig) (game.Variant, error) {
	if vc.Title != "" {
		v.Title = vc.Title
	}
	if vc.Tagline != "" {
		v.Tagline = vc.Tagline
	}
	if vc.Currency != "" {
		v.Currency = vc.Currency
	}
	if vc.StartingMoney != 0 {
		v.StartingMoney = vc.StartingMoney
	}
	if vc.Goal != 0 {
		v.Goal = vc.Goal
	}
	if vc.Floor != 0 {
		v.FloorAmount = vc.Floor
	}
	if vc.RequireEmail != nil {
		v.RequireEmail = *vc.RequireEmail
	}
	if vc.Retention != nil {
		v.Retention = *vc.Retention
	}
	if vc.AllowClear != nil {
		v.AllowClear = *vc.AllowClear
	}
	if vc.StorageKey != "" {
		v.StorageKey = vc.StorageKey
	} else if v.StorageKey == "" {
		v.StorageKey = vc.Name + "-leaderboard"
	}
	if vc.MultiplierMin != 0 || vc.MultiplierMax != 0 {
		v.Multiplier = game.MultiplierRange{Min: vc.MultiplierMin, Max: vc.MultiplierMax}
	}

	if len(vc.Steps) > 0 {
		if len(vc.Steps) != game.StepCount {
			return v, fmt.Errorf("variant %s: expected %d steps, got %d", vc.Name, game.StepCount, len(vc.Steps))
		}
		for si, sc := range vc.Steps {
			if len(sc.Options) != game.StepOptions {
				return v, fmt.Errorf("variant %s step %d: expected %d options, got %d",
					vc.Name, si+1, game.StepOptions, len(sc.Options))
			}
			step := game.Step{Title: sc.Title, Subtitle: sc.Subtitle, Scenario: sc.Scenario}
			for oi, oc := range sc.Options {
				risk, err := game.ParseRisk(oc.Risk)
				if err != nil {
					return v, fmt.Errorf("variant %s step %d option %s: %w", vc.Name, si+1, oc.ID, err)
				}
				step.Options[oi] = game.Option{
					ID:          oc.ID,
					Title:       oc.Title,
					Description: oc.Description,
					Investment:  oc.Investment,
					WinChance:   oc.WinChance,
					Risk:        risk,
					FixedPayout: oc.Payout,
				}
			}
			v.Steps[si] = step
		}
	}

	if len(vc.Tiers) > 0 {
		tiers := make([]game.Tier, len(vc.Tiers))
		for i, tc := range vc.Tiers {
			tiers[i] = game.Tier{Threshold: tc.Threshold, Label: tc.Label, Message: tc.Message}
		}
		v.Tiers = tiers
	}

	if err := v.Validate(); err != nil {
		return v, fmt.Errorf("variants file: %w", err)
	}
	return v, nil
}
