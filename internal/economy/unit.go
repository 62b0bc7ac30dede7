package economy

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/currency"
	"github.com/napolitain/idle-tycoon/internal/models"
)

// WorkMode is what a unit is actually doing this tick
type WorkMode int

const (
	WorkIdle WorkMode = iota
	WorkManual
	WorkHuman
	WorkAI
)

// String returns a string representation of the work mode
func (m WorkMode) String() string {
	switch m {
	case WorkIdle:
		return "Idle"
	case WorkManual:
		return "Manual"
	case WorkHuman:
		return "Human"
	case WorkAI:
		return "AI"
	default:
		return "Unknown"
	}
}

// ProductionUnit simulates one tier's production cycle and operator economics
type ProductionUnit struct {
	cfg      models.TierConfig
	ledger   *Ledger
	upgrades *UpgradeLedger
	state    models.UnitState
}

// TickReport summarizes what one Tick did
type TickReport struct {
	Completions int
	Earned      decimal.Decimal
	Progress    float64
	Changed     bool // debt, manual flag or strike changed
}

// NewProductionUnit binds a tier's state to its config and shared ledgers
func NewProductionUnit(cfg models.TierConfig, state models.UnitState, ledger *Ledger, upgrades *UpgradeLedger) *ProductionUnit {
	state.TierID = cfg.ID
	if state.OwnedCount < 0 {
		state.OwnedCount = 0
	}
	if !(state.HumanSpeedMultiplier > 0) {
		state.HumanSpeedMultiplier = models.DefaultHumanSpeed
	}
	if !(state.AISpeedMultiplier > 0) {
		state.AISpeedMultiplier = models.DefaultAISpeed
	}
	if !(state.CycleProgressSeconds >= 0) {
		state.CycleProgressSeconds = 0
	}
	if state.AccruedHumanDebt.IsNegative() {
		state.AccruedHumanDebt = decimal.Zero
	}
	if state.OperatorMode != models.OperatorNone {
		state.IsManuallyWorking = false
	}
	return &ProductionUnit{cfg: cfg, ledger: ledger, upgrades: upgrades, state: state}
}

// TierID is the catalog id this unit produces for
func (u *ProductionUnit) TierID() int { return u.cfg.ID }

// Config returns the tier configuration
func (u *ProductionUnit) Config() models.TierConfig { return u.cfg }

// State returns a copy of the persisted unit state
func (u *ProductionUnit) State() models.UnitState { return u.state }

// OwnedCount is the number of units owned
func (u *ProductionUnit) OwnedCount() int { return u.state.OwnedCount }

// Operator is who currently drives production
func (u *ProductionUnit) Operator() models.OperatorMode { return u.state.OperatorMode }

// Mode resolves the active work mode
func (u *ProductionUnit) Mode() WorkMode {
	if u.state.OwnedCount <= 0 {
		return WorkIdle
	}
	switch u.state.OperatorMode {
	case models.OperatorAI:
		return WorkAI
	case models.OperatorHuman:
		if u.OnStrike() {
			return WorkIdle
		}
		return WorkHuman
	default:
		if u.state.IsManuallyWorking {
			return WorkManual
		}
		return WorkIdle
	}
}

// MissedPayments is floor(debt / salary), capped at StrikeLimit
func (u *ProductionUnit) MissedPayments() int {
	salary := u.cfg.HumanSalaryPerCycle
	if !salary.IsPositive() || !u.state.AccruedHumanDebt.IsPositive() {
		return 0
	}
	missed, _ := u.state.AccruedHumanDebt.QuoRem(salary, 0)
	if missed.GreaterThanOrEqual(decimal.NewFromInt(StrikeLimit)) {
		return StrikeLimit
	}
	return int(missed.IntPart())
}

// OnStrike reports whether a human operator has gone StrikeLimit cycles unpaid
func (u *ProductionUnit) OnStrike() bool {
	return u.state.OperatorMode == models.OperatorHuman && u.MissedPayments() >= StrikeLimit
}

func (u *ProductionUnit) operatorSpeed() float64 {
	switch u.state.OperatorMode {
	case models.OperatorAI:
		return u.state.AISpeedMultiplier
	case models.OperatorHuman:
		return u.state.HumanSpeedMultiplier
	default:
		return 1
	}
}

// EffectiveCycleTime is the base cycle scaled by operator and upgrade speed
func (u *ProductionUnit) EffectiveCycleTime() float64 {
	cycle := u.cfg.BaseCycleTimeSeconds / u.operatorSpeed() / u.upgrades.SpeedMultiplier(u.cfg.ID)
	if !(cycle > MinCycleTime) {
		return MinCycleTime
	}
	return cycle
}

// InOverdrive reports whether the unit accrues income continuously
func (u *ProductionUnit) InOverdrive() bool {
	return u.Mode() == WorkAI && u.EffectiveCycleTime() <= OverdriveThreshold
}

// MilestoneMultiplier doubles revenue for each ownership threshold reached
func MilestoneMultiplier(owned int) int64 {
	var m int64 = 1
	for _, threshold := range MilestoneThresholds {
		if owned < threshold {
			break
		}
		m *= 2
	}
	return m
}

// NextMilestone returns the next ownership threshold, or false past the last
func (u *ProductionUnit) NextMilestone() (int, bool) {
	for _, threshold := range MilestoneThresholds {
		if u.state.OwnedCount < threshold {
			return threshold, true
		}
	}
	return 0, false
}

// RevenuePerCycle is base x owned x milestone x prestige x upgrades
func (u *ProductionUnit) RevenuePerCycle() decimal.Decimal {
	owned := u.state.OwnedCount
	if owned <= 0 {
		return decimal.Zero
	}
	rev := u.cfg.BaseRevenuePerCycle.
		Mul(decimal.NewFromInt(int64(owned))).
		Mul(decimal.NewFromInt(MilestoneMultiplier(owned))).
		Mul(u.ledger.GlobalPrestigeMultiplier())
	return currency.MulFloat(rev, u.upgrades.RevenueMultiplier(u.cfg.ID))
}

// Progress is the normalized cycle progress, always 1 in overdrive
func (u *ProductionUnit) Progress() float64 {
	if u.state.OwnedCount <= 0 {
		return 0
	}
	if u.InOverdrive() {
		return 1
	}
	p := u.state.CycleProgressSeconds / u.EffectiveCycleTime()
	return math.Max(0, math.Min(1, p))
}

// Tick advances the unit by dt seconds and pays completed cycles into the ledger
func (u *ProductionUnit) Tick(dt float64) TickReport {
	report := TickReport{Earned: decimal.Zero}
	if !(dt > 0) || math.IsInf(dt, 1) {
		report.Progress = u.Progress()
		return report
	}

	mode := u.Mode()
	if mode == WorkIdle {
		report.Progress = u.Progress()
		return report
	}

	cycle := u.EffectiveCycleTime()
	revenue := u.RevenuePerCycle()

	if mode == WorkAI && cycle <= OverdriveThreshold {
		income := currency.MulFloat(revenue, dt/cycle)
		u.ledger.AddIncome(income)
		u.state.CycleProgressSeconds = 0
		report.Earned = income
		report.Progress = 1
		return report
	}

	u.state.CycleProgressSeconds += dt

	switch mode {
	case WorkManual:
		if u.state.CycleProgressSeconds >= cycle {
			report.Completions = 1
			u.state.CycleProgressSeconds = 0
			u.state.IsManuallyWorking = false
			report.Changed = true
		}
	case WorkAI:
		report.Completions = u.consumeCycles(cycle, math.MaxInt64)
	case WorkHuman:
		allowed := int64(math.MaxInt64)
		if u.cfg.HumanSalaryPerCycle.IsPositive() {
			allowed = int64(StrikeLimit - u.MissedPayments())
		}
		report.Completions = u.consumeCycles(cycle, allowed)
		if report.Completions > 0 {
			u.addDebt(int64(report.Completions))
			report.Changed = true
			if u.OnStrike() {
				u.state.CycleProgressSeconds = 0
			}
		}
	}

	if report.Completions > 0 {
		report.Earned = revenue.Mul(decimal.NewFromInt(int64(report.Completions)))
		u.ledger.AddIncome(report.Earned)
	}
	report.Progress = u.Progress()
	return report
}

// consumeCycles removes up to limit whole cycles from the carried progress
func (u *ProductionUnit) consumeCycles(cycle float64, limit int64) int {
	whole := math.Floor(u.state.CycleProgressSeconds / cycle)
	if whole <= 0 || limit <= 0 {
		return 0
	}
	n := int64(whole)
	if whole >= float64(limit) {
		n = limit
	}
	u.state.CycleProgressSeconds -= float64(n) * cycle
	if u.state.CycleProgressSeconds < 0 {
		u.state.CycleProgressSeconds = 0
	}
	return int(n)
}

func (u *ProductionUnit) addDebt(cycles int64) {
	if cycles <= 0 {
		return
	}
	salary := u.cfg.HumanSalaryPerCycle.Mul(decimal.NewFromInt(cycles))
	u.state.AccruedHumanDebt = u.state.AccruedHumanDebt.Add(salary)
}
