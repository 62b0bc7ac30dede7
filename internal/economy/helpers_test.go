package economy

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// lemonadeTier mirrors the first tier of the default catalog
func lemonadeTier() models.TierConfig {
	return models.TierConfig{
		ID:                   1,
		Name:                 "Lemonade Stand",
		UnlockCost:           decimal.Zero,
		BaseCost:             d("10"),
		CostGrowthFactor:     1.07,
		BaseRevenuePerCycle:  d("1"),
		BaseCycleTimeSeconds: 1,
		HumanHireCost:        d("5"),
		HumanSalaryPerCycle:  d("2"),
		AIHireCost:           d("100"),
	}
}

func secondTier() models.TierConfig {
	return models.TierConfig{
		ID:                   2,
		Name:                 "Newspaper Route",
		UnlockCost:           d("500"),
		BaseCost:             d("60"),
		CostGrowthFactor:     1.15,
		BaseRevenuePerCycle:  d("20"),
		BaseCycleTimeSeconds: 3,
		HumanHireCost:        d("50"),
		HumanSalaryPerCycle:  d("10"),
		AIHireCost:           d("1000"),
	}
}

func testUpgrades() []models.UpgradeConfig {
	return []models.UpgradeConfig{
		{ID: "global-rev", Name: "Marketing", Cost: d("1000"), TargetTierID: 0, Multiplier: 2, Kind: models.UpgradeRevenue},
		{ID: "t1-speed", Name: "Better Juicers", Cost: d("250"), TargetTierID: 1, Multiplier: 2, Kind: models.UpgradeSpeed},
		{ID: "t2-rev", Name: "Bikes", Cost: d("5000"), TargetTierID: 2, Multiplier: 3, Kind: models.UpgradeRevenue},
	}
}

func testCatalog(t testing.TB) *Catalog {
	t.Helper()
	c, err := NewCatalog([]models.TierConfig{lemonadeTier(), secondTier()}, testUpgrades())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

// newTestUnit builds a tier-1 unit with its own ledgers
func newTestUnit(t testing.TB, owned int) (*ProductionUnit, *Ledger, *UpgradeLedger) {
	t.Helper()
	ledger := NewLedger()
	upgrades := NewUpgradeLedger(testCatalog(t))
	u := NewProductionUnit(lemonadeTier(), models.NewUnitState(1, owned), ledger, upgrades)
	return u, ledger, upgrades
}
