package economy

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPrestigeFormula(t *testing.T) {
	ledger := NewLedger()
	p := NewPrestige(ledger, NewUpgradeLedger(testCatalog(t)))

	if !p.PendingTokens().IsZero() {
		t.Errorf("fresh ledger pending: got %s", p.PendingTokens())
	}
	if !p.LifetimeNeededForNextToken().Equal(d("1000000")) {
		t.Errorf("first target: got %s", p.LifetimeNeededForNextToken())
	}

	ledger.AddIncome(d("3999999.99"))
	if !p.PendingTokens().Equal(d("1")) {
		t.Errorf("just under 4M: got %s, want 1", p.PendingTokens())
	}
	ledger.AddIncome(d("0.01"))
	if !p.PendingTokens().Equal(d("2")) {
		t.Errorf("4M: got %s, want 2", p.PendingTokens())
	}
	if !p.LifetimeNeededForNextToken().Equal(d("9000000")) {
		t.Errorf("next target: got %s, want 9000000", p.LifetimeNeededForNextToken())
	}
	if got := p.ProgressToNextToken(); got != 0 {
		t.Errorf("progress at exact target: got %v, want 0", got)
	}
}

func TestPrestigeCommit(t *testing.T) {
	ledger := NewLedger()
	upgrades := NewUpgradeLedger(testCatalog(t))
	p := NewPrestige(ledger, upgrades)

	if _, ok := p.Commit(); ok {
		t.Fatal("commit with nothing pending should be rejected")
	}

	ledger.AddIncome(d("4001000"))
	upgrades.Buy("global-rev", ledger)
	ledger.UnlockTier(2)

	tokens, ok := p.Commit()
	if !ok || !tokens.Equal(d("2")) {
		t.Fatalf("Commit: got %s, %v", tokens, ok)
	}
	if !ledger.Balance().IsZero() {
		t.Errorf("balance: got %s, want 0", ledger.Balance())
	}
	if !ledger.LifetimeEarnings().Equal(d("4001000")) {
		t.Errorf("lifetime must be kept: got %s", ledger.LifetimeEarnings())
	}
	if ledger.HighestUnlockedTierID() != 1 {
		t.Errorf("highest tier: got %d, want 1", ledger.HighestUnlockedTierID())
	}
	if len(upgrades.Purchased()) != 0 {
		t.Errorf("upgrades not cleared: %v", upgrades.Purchased())
	}
	if !p.PendingTokens().IsZero() {
		t.Errorf("pending after commit: got %s", p.PendingTokens())
	}
	if _, ok := p.Commit(); ok {
		t.Error("second commit should be rejected")
	}

	ledger.AddIncome(d("5000000"))
	if !p.PendingTokens().Equal(d("1")) {
		t.Errorf("pending at 9M lifetime: got %s, want 1", p.PendingTokens())
	}
}

// FuzzPrestigeMonotonic interleaves income, spends and commits
func FuzzPrestigeMonotonic(f *testing.F) {
	f.Add([]byte{200, 200, 200, 3, 9, 1})
	f.Add([]byte{0, 0, 0})

	f.Fuzz(func(t *testing.T, ops []byte) {
		ledger := NewLedger()
		p := NewPrestige(ledger, NewUpgradeLedger(testCatalog(t)))
		lifetime := decimal.Zero

		for _, op := range ops {
			switch op % 3 {
			case 0:
				ledger.AddIncome(decimal.NewFromInt(int64(op) * 100_000))
			case 1:
				ledger.TrySpend(decimal.NewFromInt(int64(op)))
			case 2:
				if _, ok := p.Commit(); ok && !p.PendingTokens().IsZero() {
					t.Fatalf("pending after commit: %s", p.PendingTokens())
				}
			}
			if ledger.LifetimeEarnings().LessThan(lifetime) {
				t.Fatalf("lifetime decreased: %s -> %s", lifetime, ledger.LifetimeEarnings())
			}
			if p.PendingTokens().IsNegative() {
				t.Fatalf("negative pending: %s", p.PendingTokens())
			}
			lifetime = ledger.LifetimeEarnings()
		}
	})
}
