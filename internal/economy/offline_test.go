package economy

import (
	"testing"

	"github.com/napolitain/idle-tycoon/internal/models"
)

func TestReconcileExampleScenario(t *testing.T) {
	u, ledger, _ := newTestUnit(t, 1)
	ledger.AddIncome(d("100"))
	if !u.HireAI() {
		t.Fatal("HireAI failed")
	}

	report := Reconcile(100, []*ProductionUnit{u}, ledger)

	if !report.Earnings.Equal(d("200")) {
		t.Errorf("earnings: got %s, want 200", report.Earnings)
	}
	if !ledger.Balance().Equal(d("200")) {
		t.Errorf("balance: got %s, want 200", ledger.Balance())
	}
	if len(report.Tiers) != 1 || report.Tiers[0].Cycles != 200 {
		t.Errorf("tier breakdown: %+v", report.Tiers)
	}
	if !report.Reportable {
		t.Error("100s of profitable absence should be reportable")
	}
}

func TestReconcileMatchesLiveTicks(t *testing.T) {
	const seconds = 100.0
	const dt = 0.125

	live, liveLedger, _ := newTestUnit(t, 12)
	live.state.OperatorMode = models.OperatorAI
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		live.Tick(dt)
	}

	batch, batchLedger, _ := newTestUnit(t, 12)
	batch.state.OperatorMode = models.OperatorAI
	Reconcile(seconds, []*ProductionUnit{batch}, batchLedger)

	if !liveLedger.LifetimeEarnings().Equal(batchLedger.LifetimeEarnings()) {
		t.Errorf("live %s != offline %s", liveLedger.LifetimeEarnings(), batchLedger.LifetimeEarnings())
	}
}

func TestReconcileMatchesFrameTicksWithinOneCycle(t *testing.T) {
	live, liveLedger, _ := newTestUnit(t, 1)
	live.state.OperatorMode = models.OperatorAI
	for i := 0; i < 60*90; i++ {
		live.Tick(1.0 / 60)
	}

	batch, batchLedger, _ := newTestUnit(t, 1)
	batch.state.OperatorMode = models.OperatorAI
	Reconcile(90, []*ProductionUnit{batch}, batchLedger)

	diff := liveLedger.Balance().Sub(batchLedger.Balance()).Abs()
	if diff.GreaterThan(batch.RevenuePerCycle()) {
		t.Errorf("live %s and offline %s differ by more than one cycle", liveLedger.Balance(), batchLedger.Balance())
	}
}

func TestReconcileHumanStrikeCap(t *testing.T) {
	u, ledger, _ := newTestUnit(t, 1)
	ledger.AddIncome(d("5"))
	u.HireHuman()
	u.Tick(2) // two cycles already unpaid

	report := Reconcile(1e7, []*ProductionUnit{u}, ledger)
	if report.Tiers[0].Cycles != 3 {
		t.Errorf("cycles: got %d, want 3", report.Tiers[0].Cycles)
	}
	if !u.State().AccruedHumanDebt.Equal(d("10")) {
		t.Errorf("debt: got %s, want 10", u.State().AccruedHumanDebt)
	}
	if !u.OnStrike() {
		t.Error("human should be on strike")
	}

	again := Reconcile(1e7, []*ProductionUnit{u}, ledger)
	if !again.Earnings.IsZero() {
		t.Errorf("striking human earned %s offline", again.Earnings)
	}
}

func TestReconcileHumanCapFloorsFractionalDebt(t *testing.T) {
	state := models.NewUnitState(1, 1)
	state.OperatorMode = models.OperatorHuman
	state.AccruedHumanDebt = d("9.999999999")
	ledger := NewLedger()
	u := NewProductionUnit(lemonadeTier(), state, ledger, NewUpgradeLedger(testCatalog(t)))

	report := Reconcile(100, []*ProductionUnit{u}, ledger)
	if report.Tiers[0].Cycles != 1 {
		t.Errorf("cycles: got %d, want 1", report.Tiers[0].Cycles)
	}
	if !u.OnStrike() {
		t.Error("human should strike after the one remaining cycle")
	}
}

func TestReconcileManualSingleCycle(t *testing.T) {
	u, ledger, _ := newTestUnit(t, 2)
	u.ManualClick()

	Reconcile(0.5, []*ProductionUnit{u}, ledger)
	if !ledger.Balance().IsZero() || u.State().CycleProgressSeconds != 0.5 {
		t.Errorf("partial manual: balance %s progress %v", ledger.Balance(), u.State().CycleProgressSeconds)
	}

	Reconcile(3600, []*ProductionUnit{u}, ledger)
	if !ledger.Balance().Equal(d("2")) {
		t.Errorf("manual offline should credit one cycle: got %s", ledger.Balance())
	}
	if u.State().IsManuallyWorking {
		t.Error("manual flag should clear")
	}
}

func TestReconcileIdempotentAtZero(t *testing.T) {
	u, ledger, _ := newTestUnit(t, 1)
	u.state.OperatorMode = models.OperatorAI
	u.state.CycleProgressSeconds = 0.4

	for i := 0; i < 2; i++ {
		r := Reconcile(0, []*ProductionUnit{u}, ledger)
		if !r.Earnings.IsZero() || r.Reportable {
			t.Errorf("call %d: zero elapsed earned %s", i, r.Earnings)
		}
	}
	if Reconcile(-30, []*ProductionUnit{u}, ledger).ElapsedSeconds != 0 {
		t.Error("negative elapsed should clamp to zero")
	}
	if !ledger.Balance().IsZero() {
		t.Errorf("balance: got %s, want 0", ledger.Balance())
	}
}

func TestReconcileShortAbsenceIsSilent(t *testing.T) {
	u, ledger, _ := newTestUnit(t, 1)
	u.state.OperatorMode = models.OperatorAI

	r := Reconcile(30, []*ProductionUnit{u}, ledger)
	if r.Reportable {
		t.Error("30s absence should not be reportable")
	}
	if !ledger.Balance().Equal(d("60")) {
		t.Errorf("short absence still pays: got %s, want 60", ledger.Balance())
	}
}

func TestReconcileOverdriveUsesWholeCycles(t *testing.T) {
	u, ledger, _ := newTestUnit(t, 1)
	u.state.OperatorMode = models.OperatorAI
	u.state.AISpeedMultiplier = 8 // 0.125s

	Reconcile(1.3, []*ProductionUnit{u}, ledger)
	if !ledger.Balance().Equal(d("10")) {
		t.Errorf("overdrive offline: got %s, want 10 whole cycles", ledger.Balance())
	}
}
