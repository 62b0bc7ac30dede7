package economy

import (
	"math"

	"github.com/shopspring/decimal"
)

// OfflineTierResult is one unit's share of an offline settlement
type OfflineTierResult struct {
	TierID    int
	Mode      WorkMode
	Cycles    int64
	Earned    decimal.Decimal
	DebtAdded decimal.Decimal
}

// OfflineReport is the outcome of Reconcile
type OfflineReport struct {
	ElapsedSeconds float64
	Earnings       decimal.Decimal
	Tiers          []OfflineTierResult
	Reportable     bool // long enough and profitable enough to show the player
}

// Reconcile settles elapsedSeconds of absence in closed form. Only whole
// cycles are credited, including for units that would run in overdrive live.
// Earnings reach the ledger through a single AddIncome.
func Reconcile(elapsedSeconds float64, units []*ProductionUnit, ledger *Ledger) OfflineReport {
	if !(elapsedSeconds > 0) || math.IsInf(elapsedSeconds, 1) {
		elapsedSeconds = 0
	}
	report := OfflineReport{ElapsedSeconds: elapsedSeconds, Earnings: decimal.Zero}
	if elapsedSeconds == 0 {
		return report
	}

	for _, u := range units {
		res := u.settleOffline(elapsedSeconds)
		if res.Cycles == 0 {
			continue
		}
		report.Tiers = append(report.Tiers, res)
		report.Earnings = report.Earnings.Add(res.Earned)
	}

	ledger.AddIncome(report.Earnings)
	report.Reportable = report.Earnings.IsPositive() && elapsedSeconds > OfflineReportSeconds
	return report
}

// settleOffline applies the unit-side effects of an absence and returns the
// earnings without paying them
func (u *ProductionUnit) settleOffline(t float64) OfflineTierResult {
	mode := u.Mode()
	res := OfflineTierResult{TierID: u.cfg.ID, Mode: mode, Earned: decimal.Zero, DebtAdded: decimal.Zero}
	if mode == WorkIdle {
		return res
	}

	cycle := u.EffectiveCycleTime()
	whole := wholeCycles(t, cycle)

	switch mode {
	case WorkAI:
		res.Cycles = whole
	case WorkHuman:
		res.Cycles = whole
		if u.cfg.HumanSalaryPerCycle.IsPositive() {
			remaining := int64(max(0, StrikeLimit-u.MissedPayments()))
			res.Cycles = min(whole, remaining)
		}
		before := u.state.AccruedHumanDebt
		u.addDebt(res.Cycles)
		res.DebtAdded = u.state.AccruedHumanDebt.Sub(before)
	case WorkManual:
		u.state.CycleProgressSeconds += t
		if u.state.CycleProgressSeconds >= cycle {
			res.Cycles = 1
			u.state.CycleProgressSeconds = 0
			u.state.IsManuallyWorking = false
		}
	}

	if res.Cycles > 0 {
		res.Earned = u.RevenuePerCycle().Mul(decimal.NewFromInt(res.Cycles))
	}
	return res
}

func wholeCycles(t, cycle float64) int64 {
	n := math.Floor(t / cycle)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	if n >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}
