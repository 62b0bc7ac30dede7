package models

import "github.com/shopspring/decimal"

// TierConfig is the static economics of one tier
type TierConfig struct {
	ID                   int
	Name                 string
	UnlockCost           decimal.Decimal
	BaseCost             decimal.Decimal
	CostGrowthFactor     float64
	BaseRevenuePerCycle  decimal.Decimal
	BaseCycleTimeSeconds float64
	HumanHireCost        decimal.Decimal
	HumanSalaryPerCycle  decimal.Decimal
	AIHireCost           decimal.Decimal
}

// UpgradeConfig is a one-time purchasable multiplier
type UpgradeConfig struct {
	ID           string
	Name         string
	Cost         decimal.Decimal
	TargetTierID int // 0 applies to every tier
	Multiplier   float64
	Kind         UpgradeKind
}

// AppliesTo reports whether the upgrade affects the given tier
func (u UpgradeConfig) AppliesTo(tierID int) bool {
	return u.TargetTierID == 0 || u.TargetTierID == tierID
}
