package main

import (
	"fmt"

	"github.com/itbagames/dilema/internal/config"
)

type VariantsCmd struct {
	Config string `kong:"default='',help='HCL file overriding or adding editions'"`
}

func (c *VariantsCmd) Run(cli *CLI) error {
	variants, err := config.LoadVariants(c.Config)
	if err != nil {
		return err
	}

	for _, v := range variants {
		fmt.Printf("%s — %s\n", v.Name, v.Title)
		fmt.Printf("  %s\n", v.Tagline)
		fmt.Printf("  Arrancás con %s%d, la meta es %s%d.\n", v.Currency, v.StartingMoney, v.Currency, v.Goal)
		payout := "pagos fijos por opción"
		if v.DynamicPayout() {
			payout = fmt.Sprintf("multiplicador entre %.1fx y %.1fx", v.Multiplier.Min, v.Multiplier.Max)
		}
		fmt.Printf("  Premios: %s.\n", payout)
		extras := ""
		if v.RequireEmail {
			extras += " email obligatorio;"
		}
		if v.Retention > 0 {
			extras += fmt.Sprintf(" ranking top %d;", v.Retention)
		} else {
			extras += " ranking completo;"
		}
		if !v.AllowClear {
			extras += " ranking permanente;"
		}
		fmt.Printf("  Reglas:%s\n", extras)
		fmt.Printf("  Perfiles: %d, desde %q.\n\n", len(v.Tiers), v.Tiers[0].Label)
	}
	return nil
}
