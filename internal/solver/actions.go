package solver

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ActionKind is the type of a game command the autoplayer can issue
type ActionKind int

const (
	ActionBuyUnit ActionKind = iota
	ActionHireHuman
	ActionHireAI
	ActionPayDebt
	ActionUnlockTier
	ActionBuyUpgrade
	ActionManualClick
	ActionPrestige
)

// String returns a string representation of the action kind
func (k ActionKind) String() string {
	switch k {
	case ActionBuyUnit:
		return "buy"
	case ActionHireHuman:
		return "hire-human"
	case ActionHireAI:
		return "hire-ai"
	case ActionPayDebt:
		return "pay-debt"
	case ActionUnlockTier:
		return "unlock"
	case ActionBuyUpgrade:
		return "upgrade"
	case ActionManualClick:
		return "click"
	case ActionPrestige:
		return "prestige"
	default:
		return "unknown"
	}
}

// Action is one candidate or executed command
type Action struct {
	Kind      ActionKind
	TierID    int
	UpgradeID string
	Cost      decimal.Decimal
	Metric    ROIMetric
	// AtSeconds is the simulated time the action was taken
	AtSeconds float64
}

// String formats the action for logs and reports
func (a Action) String() string {
	switch a.Kind {
	case ActionBuyUpgrade:
		return fmt.Sprintf("%s %s", a.Kind, a.UpgradeID)
	case ActionPrestige:
		return a.Kind.String()
	default:
		return fmt.Sprintf("%s tier %d", a.Kind, a.TierID)
	}
}

// before orders candidates by ROI, then by a fixed key so equal ROIs
// resolve the same way every run
func (a Action) before(b Action) bool {
	ra, rb := a.Metric.Calculate(), b.Metric.Calculate()
	if ra != rb {
		return ra > rb
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.TierID != b.TierID {
		return a.TierID < b.TierID
	}
	return a.UpgradeID < b.UpgradeID
}
