// Package solver drives a game headlessly with a greedy return-on-investment
// policy. Each step it keeps manual tiers busy, pays striking humans, then
// buys the best-value investment, saving up when that one is not yet
// affordable.
package solver

import (
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/clock"
	"github.com/napolitain/idle-tycoon/internal/economy"
	"github.com/napolitain/idle-tycoon/internal/game"
	"github.com/napolitain/idle-tycoon/internal/models"
)

// maxActionsPerStep bounds the purchases made between two ticks
const maxActionsPerStep = 64

// Policy tunes the autoplayer
type Policy struct {
	// Step is the simulated seconds between decisions
	Step float64
	// MaxPaybackSeconds skips investments that take longer to repay.
	// Zero means no limit.
	MaxPaybackSeconds float64
	// Prestige commits prestige once pending tokens at least match the
	// tokens already held
	Prestige bool
}

// DefaultPolicy decides ten times per simulated second
func DefaultPolicy() Policy {
	return Policy{Step: 0.1, MaxPaybackSeconds: 3600}
}

// Autoplayer plays a game
type Autoplayer struct {
	game    *game.Game
	policy  Policy
	log     *slog.Logger
	clk     *clock.Fake
	elapsed float64
	history []Action
}

// New creates an autoplayer for g
func New(g *game.Game, policy Policy, log *slog.Logger) *Autoplayer {
	if log == nil {
		log = slog.Default()
	}
	if policy.Step <= 0 {
		policy.Step = DefaultPolicy().Step
	}
	return &Autoplayer{game: g, policy: policy, log: log}
}

// Drive advances clk with every simulated tick, so save timestamps and
// offline settlement follow simulated time
func (a *Autoplayer) Drive(clk *clock.Fake) {
	a.clk = clk
}

// Result summarizes a run
type Result struct {
	ElapsedSeconds   float64
	Balance          decimal.Decimal
	LifetimeEarnings decimal.Decimal
	PrestigeCurrency decimal.Decimal
	HighestTier      int
	Actions          []Action
}

// Run plays for duration simulated seconds
func (a *Autoplayer) Run(duration float64) Result {
	start := len(a.history)
	for remaining := duration; remaining > 1e-9; {
		dt := min(a.policy.Step, remaining)
		a.Act()
		if a.clk != nil {
			a.clk.Advance(time.Duration(dt * float64(time.Second)))
		}
		a.game.Tick(dt)
		a.elapsed += dt
		remaining -= dt
	}
	a.Act()

	l := a.game.Ledger()
	return Result{
		ElapsedSeconds:   a.elapsed,
		Balance:          l.Balance(),
		LifetimeEarnings: l.LifetimeEarnings(),
		PrestigeCurrency: l.PrestigeCurrency(),
		HighestTier:      l.HighestUnlockedTierID(),
		Actions:          slices.Clone(a.history[start:]),
	}
}

// Act issues every command the policy wants right now and returns them
func (a *Autoplayer) Act() []Action {
	var taken []Action
	taken = append(taken, a.maintain()...)

	if a.policy.Prestige {
		if act, ok := a.tryPrestige(); ok {
			taken = append(taken, act)
		}
	}

	for range maxActionsPerStep {
		best, ok := a.Best()
		if !ok || !a.game.Ledger().CanAfford(best.Cost) {
			break
		}
		if !a.apply(best) {
			a.log.Warn("autoplayer command rejected", "action", best.String())
			break
		}
		taken = append(taken, a.record(best))
		if best.Kind == ActionHireHuman || best.Kind == ActionUnlockTier {
			taken = append(taken, a.maintain()...)
		}
	}
	return taken
}

// maintain clicks idle manual tiers and clears human debt on strike
func (a *Autoplayer) maintain() []Action {
	var taken []Action
	for _, u := range a.game.Units() {
		switch {
		case u.Operator() == models.OperatorNone && u.Mode() == economy.WorkIdle:
			if a.game.ManualClick(u.TierID()) {
				taken = append(taken, a.record(Action{Kind: ActionManualClick, TierID: u.TierID(), Cost: decimal.Zero}))
			}
		case u.OnStrike():
			debt := u.State().AccruedHumanDebt
			if a.game.PayDebt(u.TierID()) {
				taken = append(taken, a.record(Action{Kind: ActionPayDebt, TierID: u.TierID(), Cost: debt}))
			}
		}
	}
	return taken
}

func (a *Autoplayer) tryPrestige() (Action, bool) {
	p := a.game.Prestige()
	pending := p.PendingTokens()
	if !pending.IsPositive() || pending.LessThan(a.game.Ledger().PrestigeCurrency()) {
		return Action{}, false
	}
	tokens, ok := a.game.CommitPrestige()
	if !ok {
		return Action{}, false
	}
	a.log.Info("autoplayer prestiged", "tokens", tokens.String(), "at", a.elapsed)
	return a.record(Action{Kind: ActionPrestige, Cost: decimal.Zero}), true
}

func (a *Autoplayer) record(act Action) Action {
	act.AtSeconds = a.elapsed
	a.history = append(a.history, act)
	a.log.Debug("autoplayer action", "action", act.String(), "cost", act.Cost.String(), "at", a.elapsed)
	return act
}

func (a *Autoplayer) apply(act Action) bool {
	switch act.Kind {
	case ActionBuyUnit:
		_, ok := a.game.BuyUnits(act.TierID, models.BuyOne)
		return ok
	case ActionHireHuman:
		return a.game.HireHuman(act.TierID)
	case ActionHireAI:
		return a.game.HireAI(act.TierID)
	case ActionUnlockTier:
		return a.game.UnlockNextTier()
	case ActionBuyUpgrade:
		return a.game.BuyUpgrade(act.UpgradeID)
	default:
		return false
	}
}

// History returns every action taken so far
func (a *Autoplayer) History() []Action {
	return slices.Clone(a.history)
}

// Best returns the highest-ROI investment, affordable or not
func (a *Autoplayer) Best() (Action, bool) {
	candidates := a.Candidates()
	if len(candidates) == 0 {
		return Action{}, false
	}
	return candidates[0], true
}

// Candidates lists every investment with a positive gain, best first
func (a *Autoplayer) Candidates() []Action {
	r := rates{step: a.policy.Step}
	upgrades := a.game.Upgrades()
	var out []Action

	add := func(act Action) {
		if act.Metric.Calculate() <= 0 {
			return
		}
		if a.policy.MaxPaybackSeconds > 0 && act.Metric.PaybackSeconds() > a.policy.MaxPaybackSeconds {
			return
		}
		out = append(out, act)
	}

	for _, u := range a.game.Units() {
		id := u.TierID()
		cur := r.current(u)

		if u.OwnedCount() > 0 {
			cost := u.NextUnitCost()
			add(Action{Kind: ActionBuyUnit, TierID: id, Cost: cost, Metric: ROIMetric{
				GainPerSecond: r.withUnits(u, u.OwnedCount()+1) - cur,
				TotalCost:     cost.InexactFloat64(),
			}})
		}

		switch u.Operator() {
		case models.OperatorNone:
			cost := u.Config().HumanHireCost
			add(Action{Kind: ActionHireHuman, TierID: id, Cost: cost, Metric: ROIMetric{
				GainPerSecond: r.withHuman(u, upgrades) - cur,
				TotalCost:     cost.InexactFloat64(),
			}})
			fallthrough
		case models.OperatorHuman:
			cost := u.HireAICost()
			add(Action{Kind: ActionHireAI, TierID: id, Cost: cost, Metric: ROIMetric{
				GainPerSecond: r.withAI(u, upgrades) - cur,
				TotalCost:     cost.InexactFloat64(),
			}})
		}
	}

	if cfg, ok := a.game.NextUnlock(); ok {
		manual := r.manualCycle(cfg.BaseCycleTimeSeconds / upgrades.SpeedMultiplier(cfg.ID))
		gain := cfg.BaseRevenuePerCycle.Mul(a.game.Ledger().GlobalPrestigeMultiplier()).InexactFloat64() *
			upgrades.RevenueMultiplier(cfg.ID) / manual
		add(Action{Kind: ActionUnlockTier, TierID: cfg.ID, Cost: cfg.UnlockCost, Metric: ROIMetric{
			GainPerSecond: gain,
			TotalCost:     cfg.UnlockCost.InexactFloat64(),
		}})
	}

	highest := a.game.Ledger().HighestUnlockedTierID()
	for _, up := range a.game.Catalog().Upgrades() {
		if upgrades.IsPurchased(up.ID) || up.TargetTierID > highest {
			continue
		}
		var gain float64
		for _, u := range a.game.Units() {
			if up.AppliesTo(u.TierID()) {
				gain += r.current(u) * (up.Multiplier - 1)
			}
		}
		add(Action{Kind: ActionBuyUpgrade, UpgradeID: up.ID, TierID: up.TargetTierID, Cost: up.Cost, Metric: ROIMetric{
			GainPerSecond: gain,
			TotalCost:     up.Cost.InexactFloat64(),
		}})
	}

	slices.SortFunc(out, func(x, y Action) int {
		switch {
		case x.before(y):
			return -1
		case y.before(x):
			return 1
		default:
			return 0
		}
	})
	return out
}
