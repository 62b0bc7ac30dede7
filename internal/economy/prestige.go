package economy

import (
	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/currency"
)

// Prestige converts lifetime earnings into tokens on a square-root curve
type Prestige struct {
	ledger    *Ledger
	upgrades  *UpgradeLedger
	threshold decimal.Decimal
}

// NewPrestige creates a calculator using PrestigeThreshold
func NewPrestige(ledger *Ledger, upgrades *UpgradeLedger) *Prestige {
	return &Prestige{ledger: ledger, upgrades: upgrades, threshold: PrestigeThreshold}
}

// earnedTokens is floor(sqrt(lifetime / threshold))
func (p *Prestige) earnedTokens() decimal.Decimal {
	q, _ := p.ledger.LifetimeEarnings().QuoRem(p.threshold, 0)
	return currency.FloorSqrt(q)
}

// PendingTokens is max(0, earned - already claimed)
func (p *Prestige) PendingTokens() decimal.Decimal {
	return currency.Max(decimal.Zero, p.earnedTokens().Sub(p.ledger.PrestigeCurrency()))
}

// LifetimeNeededForNextToken is threshold * (earned + 1)^2
func (p *Prestige) LifetimeNeededForNextToken() decimal.Decimal {
	next := p.earnedTokens().Add(currency.One)
	return p.threshold.Mul(next).Mul(next)
}

// ProgressToNextToken is the fraction of the way from the current token
// target to the next one
func (p *Prestige) ProgressToNextToken() float64 {
	earned := p.earnedTokens()
	floor := p.threshold.Mul(earned).Mul(earned)
	span := p.LifetimeNeededForNextToken().Sub(floor)
	if !span.IsPositive() {
		return 0
	}
	f := p.ledger.LifetimeEarnings().Sub(floor).Div(span).InexactFloat64()
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Commit claims pending tokens and soft-resets the ledger and upgrades.
// Lifetime earnings are kept. The caller clears production units.
func (p *Prestige) Commit() (decimal.Decimal, bool) {
	tokens := p.PendingTokens()
	if !tokens.IsPositive() {
		return decimal.Zero, false
	}
	p.ledger.applyPrestige(tokens)
	p.upgrades.Clear()
	return tokens, true
}
