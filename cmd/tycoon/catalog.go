package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/idle-tycoon/internal/currency"
	"github.com/napolitain/idle-tycoon/internal/economy"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the tier and upgrade catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			printCatalog(catalog)
			return nil
		},
	}
}

func printCatalog(c *economy.Catalog) {
	titleColor := color.New(color.FgCyan, color.Bold)

	titleColor.Printf("\n🏭 Tiers (%d)\n\n", len(c.Tiers()))
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Name", "Unlock", "Base Cost", "Growth", "Revenue", "Cycle", "Human", "Salary", "AI"}),
	)
	for _, t := range c.Tiers() {
		_ = table.Append([]string{
			strconv.Itoa(t.ID),
			t.Name,
			currency.Humanize(t.UnlockCost),
			currency.Humanize(t.BaseCost),
			fmt.Sprintf("%.2f", t.CostGrowthFactor),
			currency.Humanize(t.BaseRevenuePerCycle),
			fmt.Sprintf("%gs", t.BaseCycleTimeSeconds),
			currency.Humanize(t.HumanHireCost),
			currency.Humanize(t.HumanSalaryPerCycle),
			currency.Humanize(t.AIHireCost),
		})
	}
	_ = table.Render()

	titleColor.Printf("\n⬆️  Upgrades (%d)\n\n", len(c.Upgrades()))
	table = tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Name", "Cost", "Target", "Kind", "Multiplier"}),
	)
	for _, u := range c.Upgrades() {
		target := "all"
		if u.TargetTierID != 0 {
			target = strconv.Itoa(u.TargetTierID)
		}
		_ = table.Append([]string{
			u.ID,
			u.Name,
			currency.Humanize(u.Cost),
			target,
			u.Kind.String(),
			fmt.Sprintf("x%g", u.Multiplier),
		})
	}
	_ = table.Render()
	fmt.Println()
}
