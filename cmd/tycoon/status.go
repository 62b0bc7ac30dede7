package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/idle-tycoon/internal/clock"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored save",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			snap, src := e.saves.Load(context.Background())
			if snap == nil {
				color.Yellow("No save for profile %s", e.cfg.ProfileKey)
				return nil
			}
			g := e.newGame(clock.Real{})
			g.Restore(snap)

			color.New(color.FgCyan, color.Bold).Printf("\n📂 Profile %s (%s save)\n", e.cfg.ProfileKey, src)
			if !snap.LastSaveTime.IsZero() {
				fmt.Printf("   Saved %s ago\n\n", time.Since(snap.LastSaveTime).Round(time.Second))
			}
			printUnits(g)
			fmt.Println()
			printLedger(g)
			return nil
		},
	}
}
