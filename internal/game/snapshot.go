package game

import (
	"github.com/napolitain/idle-tycoon/internal/models"
)

// Snapshot captures the durable state, stamped with the current time
func (g *Game) Snapshot() *models.SaveSnapshot {
	s := models.NewSaveSnapshot()
	s.LastSaveTime = g.clock.Now()
	s.CurrentBalance = g.ledger.Balance()
	s.LifetimeEarnings = g.ledger.LifetimeEarnings()
	s.PrestigeCurrency = g.ledger.PrestigeCurrency()
	s.HighestUnlockedTierID = g.ledger.HighestUnlockedTierID()
	for _, u := range g.units {
		s.Units = append(s.Units, u.State())
	}
	s.PurchasedUpgrades = g.upgrades.Purchased()
	return s
}

// Restore replaces the whole game state with a snapshot. Units for tiers
// missing from the catalog are dropped. A nil snapshot starts a new game.
func (g *Game) Restore(s *models.SaveSnapshot) {
	if s == nil {
		s = models.NewSaveSnapshot()
	}

	g.ledger.Restore(s.CurrentBalance, s.LifetimeEarnings, s.PrestigeCurrency, s.HighestUnlockedTierID)
	for _, id := range g.upgrades.Restore(s.PurchasedUpgrades) {
		g.log.Warn("dropping unknown upgrade from save", "upgrade", id)
	}

	g.clearUnits()
	for _, st := range s.Units {
		cfg, ok := g.catalog.TryGetTierConfig(st.TierID)
		if !ok {
			g.log.Warn("dropping unit for unknown tier", "tier", st.TierID)
			continue
		}
		if _, dup := g.byTier[st.TierID]; dup {
			g.log.Warn("dropping duplicate unit", "tier", st.TierID)
			continue
		}
		g.addUnit(cfg, st)
		g.ledger.UnlockTier(st.TierID)
	}
	if len(g.units) == 0 {
		g.seedStarterUnit()
	}

	if s.LastSaveTime.IsZero() {
		g.log.Info("no previous save time, starting fresh")
		g.lastSettled = g.clock.Now()
	} else {
		g.lastSettled = s.LastSaveTime
	}

	g.bus.Publish(Event{Type: EventUpgradesChanged})
	g.publishBalance()
	for _, u := range g.units {
		g.publishData(u.TierID())
	}
}
