package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/idle-tycoon/internal/clock"
	"github.com/napolitain/idle-tycoon/internal/currency"
)

func newPrestigeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prestige",
		Short: "Commit prestige on the stored save",
		Long: `Settle offline progress, then trade lifetime earnings for prestige
tokens. Balance, tiers and upgrades reset; each token adds 10% revenue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()
			ctx := context.Background()

			g, _ := e.loadGame(ctx, clock.Real{})
			printOffline(g.Resume())

			pending := g.Prestige().PendingTokens()
			tokens, ok := g.CommitPrestige()
			if !ok {
				color.Yellow("No tokens pending. Next token at %s lifetime earnings.",
					currency.Humanize(g.Prestige().LifetimeNeededForNextToken()))
				return e.saves.Save(ctx, g.Snapshot())
			}
			if err := e.saves.Flush(ctx, g.Snapshot()); err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Printf("⭐ Claimed %s tokens (pending was %s), now holding %s\n",
				tokens.String(), pending.String(), g.Ledger().PrestigeCurrency().String())
			return nil
		},
	}
}
