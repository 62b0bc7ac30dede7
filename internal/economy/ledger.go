package economy

import (
	"github.com/shopspring/decimal"
)

// Ledger holds the spendable balance, lifetime earnings and prestige tokens
type Ledger struct {
	balance     decimal.Decimal
	lifetime    decimal.Decimal
	prestige    decimal.Decimal
	highestTier int
}

// NewLedger creates an empty ledger with tier 1 unlocked
func NewLedger() *Ledger {
	return &Ledger{
		balance:     decimal.Zero,
		lifetime:    decimal.Zero,
		prestige:    decimal.Zero,
		highestTier: 1,
	}
}

// Balance is the spendable currency
func (l *Ledger) Balance() decimal.Decimal { return l.balance }

// LifetimeEarnings is all income since the last prestige
func (l *Ledger) LifetimeEarnings() decimal.Decimal { return l.lifetime }

// PrestigeCurrency is the number of prestige tokens held
func (l *Ledger) PrestigeCurrency() decimal.Decimal { return l.prestige }

// HighestUnlockedTierID is the highest tier the player may operate
func (l *Ledger) HighestUnlockedTierID() int { return l.highestTier }

// AddIncome credits both the balance and lifetime earnings.
// Non-positive amounts are ignored.
func (l *Ledger) AddIncome(amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	l.balance = l.balance.Add(amount)
	l.lifetime = l.lifetime.Add(amount)
}

// CanAfford reports whether TrySpend(cost) would succeed
func (l *Ledger) CanAfford(cost decimal.Decimal) bool {
	return !cost.IsNegative() && l.balance.GreaterThanOrEqual(cost)
}

// TrySpend debits cost if the balance covers it
func (l *Ledger) TrySpend(cost decimal.Decimal) bool {
	if !l.CanAfford(cost) {
		return false
	}
	l.balance = l.balance.Sub(cost)
	return true
}

// GlobalPrestigeMultiplier is 1 + tokens*0.1
func (l *Ledger) GlobalPrestigeMultiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(l.prestige.Mul(PrestigeBonusPerToken))
}

// UnlockTier raises the highest unlocked tier
func (l *Ledger) UnlockTier(id int) {
	if id > l.highestTier {
		l.highestTier = id
	}
}

// Restore loads persisted values. Negative amounts are clamped to zero.
func (l *Ledger) Restore(balance, lifetime, prestige decimal.Decimal, highestTier int) {
	l.balance = nonNegative(balance)
	l.lifetime = nonNegative(lifetime)
	l.prestige = nonNegative(prestige)
	if l.lifetime.LessThan(l.balance) {
		l.lifetime = l.balance
	}
	l.highestTier = max(highestTier, 1)
}

func (l *Ledger) applyPrestige(tokens decimal.Decimal) {
	l.prestige = l.prestige.Add(tokens)
	l.balance = decimal.Zero
	l.highestTier = 1
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
