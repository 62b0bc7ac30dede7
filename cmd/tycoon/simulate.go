package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/idle-tycoon/internal/clock"
	"github.com/napolitain/idle-tycoon/internal/currency"
	"github.com/napolitain/idle-tycoon/internal/solver"
)

var (
	simDuration  time.Duration
	simStep      float64
	simAway      time.Duration
	simAutoplay  bool
	simPrestige  bool
	simFromSave  bool
	simSave      bool
	simShowSteps int
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the economy headlessly",
		Long: `Simulate play without a terminal host. With --autoplay a greedy
return-on-investment player buys units, operators, tiers and upgrades.
--away then settles offline progress for the given absence.`,
		RunE: runSimulate,
	}
	f := cmd.Flags()
	f.DurationVarP(&simDuration, "duration", "t", 10*time.Minute, "Simulated play time")
	f.Float64Var(&simStep, "dt", 0.1, "Seconds per tick")
	f.DurationVar(&simAway, "away", 0, "Offline time to settle after play")
	f.BoolVar(&simAutoplay, "autoplay", true, "Let the greedy autoplayer make decisions")
	f.BoolVar(&simPrestige, "prestige", false, "Allow the autoplayer to prestige")
	f.BoolVar(&simFromSave, "from-save", false, "Start from the stored save instead of a new game")
	f.BoolVar(&simSave, "save", false, "Store the final state")
	f.IntVarP(&simShowSteps, "actions", "n", 15, "Number of recent actions to show")
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if !(simStep > 0) {
		return fmt.Errorf("--dt must be positive, got %v", simStep)
	}
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	e, err := openEnv(os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()
	ctx := context.Background()

	clk := clock.NewFake(time.Now().UTC())
	g, src, offline := e.simulationGame(ctx, clk, simFromSave)
	if simFromSave {
		infoColor.Printf("📂 Starting from %s save\n", src)
		printOffline(offline)
	}

	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Idle Tycoon Simulator    │")
	titleColor.Println("╰───────────────────────────╯")
	fmt.Println()

	seconds := simDuration.Seconds()
	var result solver.Result
	if simAutoplay {
		policy := solver.DefaultPolicy()
		policy.Step = simStep
		policy.Prestige = simPrestige
		player := solver.New(g, policy, e.log)
		player.Drive(clk)
		infoColor.Printf("🤖 Autoplaying %s in %gs steps...\n\n", simDuration, simStep)
		result = player.Run(seconds)
	} else {
		infoColor.Printf("⏱  Ticking %s in %gs steps...\n\n", simDuration, simStep)
		for remaining := seconds; remaining > 1e-9; remaining -= simStep {
			dt := min(simStep, remaining)
			clk.Advance(time.Duration(dt * float64(time.Second)))
			g.Tick(dt)
		}
	}

	if simAway > 0 {
		clk.Advance(simAway)
		printOffline(g.Resume())
		fmt.Println()
	}

	printUnits(g)
	fmt.Println()
	printLedger(g)

	if simAutoplay {
		fmt.Println()
		printActions(result.Actions)
	}

	if simSave {
		if err := e.saves.Flush(ctx, g.Snapshot()); err != nil {
			return err
		}
		color.Green("\n💾 Saved to profile %s", e.cfg.ProfileKey)
	}
	return nil
}

func printActions(actions []solver.Action) {
	counts := make(map[solver.ActionKind]int)
	for _, a := range actions {
		counts[a.Kind]++
	}
	kinds := make([]solver.ActionKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader([]string{"Action", "Count"}))
	for _, k := range kinds {
		_ = table.Append([]string{k.String(), strconv.Itoa(counts[k])})
	}
	_ = table.Render()

	var investments []solver.Action
	for _, a := range actions {
		if a.Kind != solver.ActionManualClick {
			investments = append(investments, a)
		}
	}
	if len(investments) > simShowSteps {
		investments = investments[len(investments)-simShowSteps:]
	}
	if len(investments) == 0 {
		return
	}

	fmt.Printf("\n📋 Last %d investments:\n", len(investments))
	table = tablewriter.NewTable(os.Stdout, tablewriter.WithHeader([]string{"At", "Action", "Cost", "ROI", "Payback"}))
	for _, a := range investments {
		payback := a.Metric.PaybackSeconds()
		paybackText := "-"
		if payback < 1e12 {
			paybackText = time.Duration(payback * float64(time.Second)).Round(time.Second).String()
		}
		_ = table.Append([]string{
			time.Duration(a.AtSeconds * float64(time.Second)).Round(time.Second).String(),
			a.String(),
			currency.Humanize(a.Cost),
			fmt.Sprintf("%.4g", a.Metric.Calculate()),
			paybackText,
		})
	}
	_ = table.Render()
}
