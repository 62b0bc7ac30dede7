package solver

import (
	"math"

	"github.com/napolitain/idle-tycoon/internal/economy"
	"github.com/napolitain/idle-tycoon/internal/models"
)

// ROIMetric represents the components of an ROI calculation
type ROIMetric struct {
	GainPerSecond float64
	TotalCost     float64
}

// Calculate computes the final ROI value
func (m ROIMetric) Calculate() float64 {
	if m.GainPerSecond <= 0 || math.IsNaN(m.GainPerSecond) {
		return 0
	}
	if m.TotalCost <= 0 {
		return m.GainPerSecond * 1000 // Very high ROI if free
	}
	return m.GainPerSecond / m.TotalCost
}

// PaybackSeconds is how long the gain takes to repay the cost
func (m ROIMetric) PaybackSeconds() float64 {
	if m.GainPerSecond <= 0 {
		return math.Inf(1)
	}
	return m.TotalCost / m.GainPerSecond
}

// rates estimates income per second for a unit in each operator setup.
// Manual play is limited by the autoplayer's step: a cycle finishes on
// the first step boundary after it completes.
type rates struct {
	step float64
}

func (r rates) current(u *economy.ProductionUnit) float64 {
	if u.OwnedCount() <= 0 {
		return 0
	}
	rev := u.RevenuePerCycle().InexactFloat64()
	switch u.Operator() {
	case models.OperatorAI:
		return rev / u.EffectiveCycleTime()
	case models.OperatorHuman:
		if u.OnStrike() {
			return 0
		}
		cycle := u.EffectiveCycleTime()
		return (rev - u.Config().HumanSalaryPerCycle.InexactFloat64()) / cycle
	default:
		return rev / r.manualCycle(u.EffectiveCycleTime())
	}
}

func (r rates) manualCycle(cycle float64) float64 {
	if r.step <= 0 {
		return cycle
	}
	return math.Ceil(cycle/r.step) * r.step
}

// withUnits scales the current rate to a different owned count
func (r rates) withUnits(u *economy.ProductionUnit, owned int) float64 {
	n := u.OwnedCount()
	if n <= 0 || u.OnStrike() {
		return 0
	}
	cur := r.current(u)
	if u.Operator() == models.OperatorHuman {
		// salary does not scale with units
		salaryRate := u.Config().HumanSalaryPerCycle.InexactFloat64() / u.EffectiveCycleTime()
		gross := cur + salaryRate
		return gross*scale(n, owned) - salaryRate
	}
	return cur * scale(n, owned)
}

func scale(from, to int) float64 {
	return float64(int64(to)*economy.MilestoneMultiplier(to)) / float64(int64(from)*economy.MilestoneMultiplier(from))
}

// withAI is the rate after replacing the operator with an AI
func (r rates) withAI(u *economy.ProductionUnit, upgrades *economy.UpgradeLedger) float64 {
	cfg := u.Config()
	cycle := cfg.BaseCycleTimeSeconds / u.State().AISpeedMultiplier / upgrades.SpeedMultiplier(cfg.ID)
	cycle = math.Max(cycle, economy.MinCycleTime)
	return u.RevenuePerCycle().InexactFloat64() / cycle
}

// withHuman is the rate after hiring a human in place of manual play
func (r rates) withHuman(u *economy.ProductionUnit, upgrades *economy.UpgradeLedger) float64 {
	cfg := u.Config()
	cycle := cfg.BaseCycleTimeSeconds / u.State().HumanSpeedMultiplier / upgrades.SpeedMultiplier(cfg.ID)
	cycle = math.Max(cycle, economy.MinCycleTime)
	return (u.RevenuePerCycle().InexactFloat64() - cfg.HumanSalaryPerCycle.InexactFloat64()) / cycle
}
