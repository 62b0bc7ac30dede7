// Package game is the composition root of the simulation: it owns the
// ledgers and production units, exposes the player commands and publishes
// notifications for the presentation layer.
package game

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/clock"
	"github.com/napolitain/idle-tycoon/internal/economy"
	"github.com/napolitain/idle-tycoon/internal/models"
)

// StarterUnits is the tier-1 ownership of a new or reset game
const StarterUnits = 1

// Game wires the economy together. It is not safe for concurrent use;
// the host drives every call from one goroutine.
type Game struct {
	catalog  *economy.Catalog
	clock    clock.Clock
	log      *slog.Logger
	bus      *Bus
	ledger   *economy.Ledger
	upgrades *economy.UpgradeLedger
	prestige *economy.Prestige

	units  []*economy.ProductionUnit // ascending tier id
	byTier map[int]*economy.ProductionUnit

	buyMode     models.BuyMode
	lastSettled time.Time
}

// Option configures a Game
type Option func(*Game)

// WithClock overrides the wall clock
func WithClock(c clock.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithLogger overrides the logger
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a fresh game over a catalog
func New(catalog *economy.Catalog, opts ...Option) *Game {
	g := &Game{
		catalog: catalog,
		clock:   clock.Real{},
		log:     slog.Default(),
		bus:     NewBus(),
		buyMode: models.BuyOne,
		byTier:  make(map[int]*economy.ProductionUnit),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.ledger = economy.NewLedger()
	g.upgrades = economy.NewUpgradeLedger(catalog)
	g.prestige = economy.NewPrestige(g.ledger, g.upgrades)
	g.seedStarterUnit()
	g.lastSettled = g.clock.Now()
	return g
}

// Catalog is the immutable tier and upgrade catalog
func (g *Game) Catalog() *economy.Catalog { return g.catalog }

// Ledger is the shared currency ledger
func (g *Game) Ledger() *economy.Ledger { return g.ledger }

// Upgrades is the purchased upgrade set
func (g *Game) Upgrades() *economy.UpgradeLedger { return g.upgrades }

// Prestige is the token calculator bound to the ledger
func (g *Game) Prestige() *economy.Prestige { return g.prestige }

// BuyMode is the current purchase quantity selector
func (g *Game) BuyMode() models.BuyMode { return g.buyMode }

// Subscribe registers a listener and returns its unsubscribe function
func (g *Game) Subscribe(l Listener) func() {
	return g.bus.Subscribe(l)
}

// Units returns the production units in tier order
func (g *Game) Units() []*economy.ProductionUnit {
	out := make([]*economy.ProductionUnit, len(g.units))
	copy(out, g.units)
	return out
}

// Unit returns the unit for a tier if it has been unlocked
func (g *Game) Unit(tierID int) (*economy.ProductionUnit, bool) {
	u, ok := g.byTier[tierID]
	return u, ok
}

func (g *Game) seedStarterUnit() {
	cfg, ok := g.catalog.TryGetTierConfig(1)
	if !ok {
		return
	}
	g.addUnit(cfg, models.NewUnitState(cfg.ID, StarterUnits))
}

func (g *Game) addUnit(cfg models.TierConfig, state models.UnitState) *economy.ProductionUnit {
	u := economy.NewProductionUnit(cfg, state, g.ledger, g.upgrades)
	g.byTier[cfg.ID] = u
	g.units = append(g.units, u)
	sort.Slice(g.units, func(i, j int) bool { return g.units[i].TierID() < g.units[j].TierID() })
	return u
}

func (g *Game) clearUnits() {
	g.units = nil
	g.byTier = make(map[int]*economy.ProductionUnit)
}

// Tick advances every unit by dt seconds of play
func (g *Game) Tick(dt float64) {
	earned := false
	for _, u := range g.units {
		r := u.Tick(dt)
		g.bus.Publish(Event{Type: EventProgressUpdated, TierID: u.TierID(), Progress: r.Progress})
		if r.Changed || r.Completions > 0 {
			g.publishData(u.TierID())
		}
		if r.Earned.IsPositive() {
			earned = true
		}
	}
	if earned {
		g.publishBalance()
	}
	if now := g.clock.Now(); now.After(g.lastSettled) {
		g.lastSettled = now
	}
}

// Resume settles the time since the last tick, restore or resume. Calling it
// again without the clock moving credits nothing.
func (g *Game) Resume() economy.OfflineReport {
	now := g.clock.Now()
	elapsed := now.Sub(g.lastSettled).Seconds()
	if elapsed < 0 {
		g.log.Warn("clock moved backwards, skipping offline progress", "last", g.lastSettled, "now", now)
		elapsed = 0
	} else {
		g.lastSettled = now
	}

	report := economy.Reconcile(elapsed, g.units, g.ledger)
	if report.Earnings.IsPositive() {
		for _, t := range report.Tiers {
			g.publishData(t.TierID)
		}
		g.publishBalance()
	}
	if report.Reportable {
		g.log.Info("offline progress", "elapsed", time.Duration(elapsed*float64(time.Second)).Round(time.Second), "earned", report.Earnings.String())
		g.bus.Publish(Event{Type: EventOfflineProgress, Offline: report, Balance: g.ledger.Balance()})
	}
	return report
}

// BuyUnits buys units of a tier using the given buy mode
func (g *Game) BuyUnits(tierID int, mode models.BuyMode) (int, bool) {
	u, ok := g.byTier[tierID]
	if !ok {
		return 0, false
	}
	n, ok := u.BuyUnits(mode)
	if !ok {
		return 0, false
	}
	g.log.Debug("bought units", "tier", tierID, "count", n, "owned", u.OwnedCount())
	g.publishBalance()
	g.publishData(tierID)
	return n, true
}

// Quote prices the current buy mode for a tier
func (g *Game) Quote(tierID int) (decimal.Decimal, int, bool) {
	u, ok := g.byTier[tierID]
	if !ok {
		return decimal.Zero, 0, false
	}
	cost, n := u.GetBuyCostAndAmount(g.buyMode, g.ledger.Balance())
	return cost, n, true
}

// ManualClick starts a manual cycle on an unstaffed tier
func (g *Game) ManualClick(tierID int) bool {
	return g.unitCommand(tierID, (*economy.ProductionUnit).ManualClick, false)
}

// HireHuman staffs a tier with a salaried human
func (g *Game) HireHuman(tierID int) bool {
	return g.unitCommand(tierID, (*economy.ProductionUnit).HireHuman, true)
}

// HireAI staffs a tier with an AI operator
func (g *Game) HireAI(tierID int) bool {
	return g.unitCommand(tierID, (*economy.ProductionUnit).HireAI, true)
}

// PayDebt settles a human operator's unpaid salary
func (g *Game) PayDebt(tierID int) bool {
	return g.unitCommand(tierID, (*economy.ProductionUnit).PayHumanDebt, true)
}

func (g *Game) unitCommand(tierID int, cmd func(*economy.ProductionUnit) bool, spends bool) bool {
	u, ok := g.byTier[tierID]
	if !ok || !cmd(u) {
		return false
	}
	if spends {
		g.publishBalance()
	}
	g.publishData(tierID)
	return true
}

// NextUnlock returns the tier UnlockNextTier would open, or false at the
// end of content
func (g *Game) NextUnlock() (models.TierConfig, bool) {
	return g.catalog.TryGetTierConfig(g.ledger.HighestUnlockedTierID() + 1)
}

// UnlockNextTier pays the unlock cost of the next tier and grants its first unit
func (g *Game) UnlockNextTier() bool {
	cfg, ok := g.NextUnlock()
	if !ok {
		return false
	}
	if !g.ledger.TrySpend(cfg.UnlockCost) {
		return false
	}
	g.ledger.UnlockTier(cfg.ID)
	if _, exists := g.byTier[cfg.ID]; !exists {
		g.addUnit(cfg, models.NewUnitState(cfg.ID, StarterUnits))
	}
	g.log.Info("tier unlocked", "tier", cfg.ID, "name", cfg.Name)
	g.bus.Publish(Event{Type: EventTierUnlocked, TierID: cfg.ID})
	g.publishBalance()
	g.publishData(cfg.ID)
	return true
}

// ToggleBuyMode cycles x1 -> x10 -> x100 -> MAX
func (g *Game) ToggleBuyMode() models.BuyMode {
	g.buyMode = g.buyMode.Next()
	g.bus.Publish(Event{Type: EventBuyModeChanged, BuyMode: g.buyMode})
	return g.buyMode
}

// BuyUpgrade purchases an upgrade by id
func (g *Game) BuyUpgrade(id string) bool {
	if !g.upgrades.Buy(id, g.ledger) {
		return false
	}
	g.log.Debug("bought upgrade", "upgrade", id)
	g.bus.Publish(Event{Type: EventUpgradesChanged})
	g.publishBalance()
	for _, u := range g.units {
		g.publishData(u.TierID())
	}
	return true
}

// CommitPrestige claims pending tokens and restarts from tier 1
func (g *Game) CommitPrestige() (decimal.Decimal, bool) {
	tokens, ok := g.prestige.Commit()
	if !ok {
		return decimal.Zero, false
	}
	g.clearUnits()
	g.seedStarterUnit()
	g.log.Info("prestige committed", "tokens", tokens.String(), "total", g.ledger.PrestigeCurrency().String())

	g.bus.Publish(Event{Type: EventUpgradesChanged})
	g.publishBalance()
	for _, u := range g.units {
		g.publishData(u.TierID())
	}
	return tokens, true
}

func (g *Game) publishBalance() {
	g.bus.Publish(Event{Type: EventBalanceChanged, Balance: g.ledger.Balance()})
}

func (g *Game) publishData(tierID int) {
	g.bus.Publish(Event{Type: EventDataChanged, TierID: tierID})
}
