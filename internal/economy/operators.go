package economy

import (
	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/models"
)

// HireHuman succeeds only from the None state
func (u *ProductionUnit) HireHuman() bool {
	if u.state.OperatorMode != models.OperatorNone {
		return false
	}
	if !u.ledger.TrySpend(u.cfg.HumanHireCost) {
		return false
	}
	u.state.OperatorMode = models.OperatorHuman
	u.state.IsManuallyWorking = false
	return true
}

// HireAICost is the AI hire price plus severance for any unpaid debt
func (u *ProductionUnit) HireAICost() decimal.Decimal {
	return u.cfg.AIHireCost.Add(u.state.AccruedHumanDebt)
}

// HireAI replaces any non-AI operator, settling outstanding debt
func (u *ProductionUnit) HireAI() bool {
	if u.state.OperatorMode == models.OperatorAI {
		return false
	}
	if !u.ledger.TrySpend(u.HireAICost()) {
		return false
	}
	u.state.OperatorMode = models.OperatorAI
	u.state.AccruedHumanDebt = decimal.Zero
	u.state.IsManuallyWorking = false
	return true
}

// PayHumanDebt settles the whole debt at once
func (u *ProductionUnit) PayHumanDebt() bool {
	debt := u.state.AccruedHumanDebt
	if u.state.OperatorMode != models.OperatorHuman || !debt.IsPositive() {
		return false
	}
	if !u.ledger.TrySpend(debt) {
		return false
	}
	u.state.AccruedHumanDebt = decimal.Zero
	return true
}

// ManualClick starts one manual cycle on an unstaffed unit
func (u *ProductionUnit) ManualClick() bool {
	if u.state.OperatorMode != models.OperatorNone || u.state.OwnedCount <= 0 || u.state.IsManuallyWorking {
		return false
	}
	u.state.IsManuallyWorking = true
	u.state.CycleProgressSeconds = 0
	return true
}
