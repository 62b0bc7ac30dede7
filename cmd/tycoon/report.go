package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/idle-tycoon/internal/currency"
	"github.com/napolitain/idle-tycoon/internal/economy"
	"github.com/napolitain/idle-tycoon/internal/game"
)

// printUnits renders one row per owned tier
func printUnits(g *game.Game) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Tier", "Owned", "Operator", "Mode", "Revenue/Cycle", "Cycle", "Debt", "Next Milestone"}),
	)
	for _, u := range g.Units() {
		cfg := u.Config()
		cycle := fmt.Sprintf("%.2fs", u.EffectiveCycleTime())
		if u.InOverdrive() {
			cycle += " ⚡"
		}
		milestone := "-"
		if next, ok := u.NextMilestone(); ok {
			milestone = strconv.Itoa(next)
		}
		mode := u.Mode().String()
		if u.OnStrike() {
			mode = "On strike"
		}
		_ = table.Append([]string{
			strconv.Itoa(cfg.ID),
			cfg.Name,
			strconv.Itoa(u.OwnedCount()),
			u.Operator().String(),
			mode,
			currency.Humanize(u.RevenuePerCycle()),
			cycle,
			currency.Humanize(u.State().AccruedHumanDebt),
			milestone,
		})
	}
	_ = table.Render()
}

// printLedger prints balance, lifetime and prestige progress
func printLedger(g *game.Game) {
	infoColor := color.New(color.FgYellow)
	successColor := color.New(color.FgGreen, color.Bold)

	l := g.Ledger()
	p := g.Prestige()
	successColor.Printf("💰 Balance:  %s\n", currency.Humanize(l.Balance()))
	fmt.Printf("   Lifetime: %s\n", currency.Humanize(l.LifetimeEarnings()))
	fmt.Printf("   Tier:     %d unlocked\n", l.HighestUnlockedTierID())
	if next, ok := g.NextUnlock(); ok {
		fmt.Printf("   Next:     %s for %s\n", next.Name, currency.Humanize(next.UnlockCost))
	}
	infoColor.Printf("⭐ Prestige: %s tokens (+%s%% revenue), %s pending\n",
		l.PrestigeCurrency().String(),
		l.PrestigeCurrency().Mul(economy.PrestigeBonusPerToken).Shift(2).String(),
		p.PendingTokens().String(),
	)
	fmt.Printf("   Next token at %s lifetime (%.1f%%)\n",
		currency.Humanize(p.LifetimeNeededForNextToken()), p.ProgressToNextToken()*100)
	if ids := g.Upgrades().Purchased(); len(ids) > 0 {
		fmt.Printf("   Upgrades: %v\n", ids)
	}
}

func printOffline(r economy.OfflineReport) {
	if !r.Reportable {
		return
	}
	away := time.Duration(r.ElapsedSeconds * float64(time.Second)).Round(time.Second)
	color.New(color.FgMagenta, color.Bold).Printf("🌙 While you were away (%s): +%s\n", away, currency.Humanize(r.Earnings))
	for _, t := range r.Tiers {
		if t.Earned.IsPositive() {
			fmt.Printf("   tier %d: %d cycles, +%s\n", t.TierID, t.Cycles, currency.Humanize(t.Earned))
		}
	}
}
