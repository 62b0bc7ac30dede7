package economy

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedgerIncomeAndSpend(t *testing.T) {
	l := NewLedger()
	l.AddIncome(d("100"))

	if !l.TrySpend(d("40")) {
		t.Fatal("TrySpend(40) with balance 100 should succeed")
	}
	if l.TrySpend(d("61")) {
		t.Error("TrySpend(61) with balance 60 should fail")
	}
	if !l.Balance().Equal(d("60")) {
		t.Errorf("balance: got %s, want 60", l.Balance())
	}
	if !l.LifetimeEarnings().Equal(d("100")) {
		t.Errorf("lifetime: got %s, want 100", l.LifetimeEarnings())
	}
	if l.TrySpend(d("-5")) {
		t.Error("negative spend must be rejected")
	}
}

func TestGlobalPrestigeMultiplier(t *testing.T) {
	l := NewLedger()
	if !l.GlobalPrestigeMultiplier().Equal(d("1")) {
		t.Errorf("no tokens: got %s, want 1", l.GlobalPrestigeMultiplier())
	}
	l.Restore(decimal.Zero, decimal.Zero, d("25"), 1)
	if !l.GlobalPrestigeMultiplier().Equal(d("3.5")) {
		t.Errorf("25 tokens: got %s, want 3.5", l.GlobalPrestigeMultiplier())
	}
}

func TestLedgerRestoreClamps(t *testing.T) {
	l := NewLedger()
	l.Restore(d("-3"), d("10"), d("-1"), 0)
	if !l.Balance().IsZero() || !l.PrestigeCurrency().IsZero() {
		t.Errorf("negative values not clamped: balance %s prestige %s", l.Balance(), l.PrestigeCurrency())
	}
	if l.HighestUnlockedTierID() != 1 {
		t.Errorf("highest tier: got %d, want 1", l.HighestUnlockedTierID())
	}
}

// FuzzLedgerNeverNegative drives random income/spend sequences
func FuzzLedgerNeverNegative(f *testing.F) {
	f.Add([]byte{1, 2, 3, 200, 7, 9})
	f.Add([]byte{255, 0, 255, 0})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, ops []byte) {
		l := NewLedger()
		for i, op := range ops {
			amount := decimal.NewFromInt(int64(op))
			if i%2 == 0 {
				l.AddIncome(amount)
				continue
			}
			before := l.Balance()
			ok := l.TrySpend(amount)
			if !ok && !l.Balance().Equal(before) {
				t.Fatalf("rejected spend changed balance: %s -> %s", before, l.Balance())
			}
			if ok != before.GreaterThanOrEqual(amount) {
				t.Fatalf("TrySpend(%s) with balance %s returned %v", amount, before, ok)
			}
			if l.Balance().IsNegative() {
				t.Fatalf("balance went negative: %s", l.Balance())
			}
		}
	})
}
