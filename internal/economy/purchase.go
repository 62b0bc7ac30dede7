package economy

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/currency"
	"github.com/napolitain/idle-tycoon/internal/models"
)

// CumulativeCost is what the first k units cost in total:
// base * (r^k - 1) / (r - 1), rounded once to Precision.
func CumulativeCost(base, r decimal.Decimal, k int) decimal.Decimal {
	if k <= 0 {
		return decimal.Zero
	}
	series := currency.Div(currency.Pow(r, k).Sub(currency.One), r.Sub(currency.One))
	return currency.RoundSig(base.Mul(series), currency.Precision)
}

// BulkCost is the price of n units on top of owned. Prices are differences
// of CumulativeCost, so splitting a purchase never changes its total.
func BulkCost(base, r decimal.Decimal, owned, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return CumulativeCost(base, r, owned+n).Sub(CumulativeCost(base, r, owned))
}

// MaxAffordable is the largest n with BulkCost(owned, n) <= budget. When even
// one unit is out of reach it returns 1 so callers can still show the next price.
func MaxAffordable(base, r decimal.Decimal, owned int, budget decimal.Decimal) int {
	a := BulkCost(base, r, owned, 1)
	if budget.LessThan(a) || !a.IsPositive() {
		return 1
	}

	// log_r(budget*(r-1)/a + 1), then correct the float estimate exactly
	x := currency.Div(budget.Mul(r.Sub(currency.One)), a).Add(currency.One)
	estimate := math.Floor(currency.Log10(x) / currency.Log10(r))

	n := 1
	switch {
	case math.IsNaN(estimate) || estimate < 1:
		n = 1
	case estimate > MaxBulkPurchase:
		n = MaxBulkPurchase
	default:
		n = int(estimate)
	}

	for n < MaxBulkPurchase && BulkCost(base, r, owned, n+1).LessThanOrEqual(budget) {
		n++
	}
	for n > 1 && BulkCost(base, r, owned, n).GreaterThan(budget) {
		n--
	}
	return n
}

func (u *ProductionUnit) growth() decimal.Decimal {
	return currency.FromFloat(u.cfg.CostGrowthFactor)
}

// NextUnitCost is the price of one more unit, baseCost * r^owned
func (u *ProductionUnit) NextUnitCost() decimal.Decimal {
	return BulkCost(u.cfg.BaseCost, u.growth(), u.state.OwnedCount, 1)
}

// GetBuyCostAndAmount quotes a purchase for the buy mode against a balance
func (u *ProductionUnit) GetBuyCostAndAmount(mode models.BuyMode, balance decimal.Decimal) (decimal.Decimal, int) {
	base, r, owned := u.cfg.BaseCost, u.growth(), u.state.OwnedCount
	n, fixed := mode.Quantity()
	if !fixed {
		n = MaxAffordable(base, r, owned, balance)
	}
	return BulkCost(base, r, owned, n), n
}

// BuyUnits debits the quoted cost and adds the units
func (u *ProductionUnit) BuyUnits(mode models.BuyMode) (int, bool) {
	cost, n := u.GetBuyCostAndAmount(mode, u.ledger.Balance())
	if !u.ledger.TrySpend(cost) {
		return 0, false
	}
	u.state.OwnedCount += n
	return n, true
}
