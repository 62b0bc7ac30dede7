package economy

import (
	"sort"

	"github.com/napolitain/idle-tycoon/internal/models"
)

// UpgradeLedger tracks purchased upgrades and folds their multipliers
type UpgradeLedger struct {
	catalog   *Catalog
	purchased map[string]struct{}
}

// NewUpgradeLedger creates an empty upgrade ledger over a catalog
func NewUpgradeLedger(catalog *Catalog) *UpgradeLedger {
	return &UpgradeLedger{catalog: catalog, purchased: make(map[string]struct{})}
}

// IsPurchased reports whether an upgrade has been bought
func (u *UpgradeLedger) IsPurchased(id string) bool {
	_, ok := u.purchased[id]
	return ok
}

// CanAfford is false for unknown or already purchased upgrades
func (u *UpgradeLedger) CanAfford(id string, ledger *Ledger) bool {
	cfg, ok := u.catalog.TryGetUpgrade(id)
	if !ok || u.IsPurchased(id) {
		return false
	}
	return ledger.CanAfford(cfg.Cost)
}

// Buy purchases an upgrade. Unknown or already owned upgrades are rejected.
func (u *UpgradeLedger) Buy(id string, ledger *Ledger) bool {
	cfg, ok := u.catalog.TryGetUpgrade(id)
	if !ok || u.IsPurchased(id) {
		return false
	}
	if !ledger.TrySpend(cfg.Cost) {
		return false
	}
	u.purchased[id] = struct{}{}
	return true
}

// RevenueMultiplier is the product of purchased revenue upgrades for a tier
func (u *UpgradeLedger) RevenueMultiplier(tierID int) float64 {
	return u.multiplier(tierID, models.UpgradeRevenue)
}

// SpeedMultiplier is the product of purchased speed upgrades for a tier
func (u *UpgradeLedger) SpeedMultiplier(tierID int) float64 {
	return u.multiplier(tierID, models.UpgradeSpeed)
}

func (u *UpgradeLedger) multiplier(tierID int, kind models.UpgradeKind) float64 {
	// Fold in catalog order so float products are deterministic
	m := 1.0
	for _, id := range u.catalog.upgradeOrder {
		if !u.IsPurchased(id) {
			continue
		}
		cfg := u.catalog.upgrades[id]
		if cfg.Kind == kind && cfg.AppliesTo(tierID) {
			m *= cfg.Multiplier
		}
	}
	return m
}

// CheapestAvailable returns the cheapest unpurchased upgrade whose target
// tier is unlocked
func (u *UpgradeLedger) CheapestAvailable(highestUnlockedTier int) (models.UpgradeConfig, bool) {
	for _, cfg := range u.catalog.Upgrades() {
		if u.IsPurchased(cfg.ID) || cfg.TargetTierID > highestUnlockedTier {
			continue
		}
		return cfg, true
	}
	return models.UpgradeConfig{}, false
}

// Purchased returns the purchased ids in sorted order
func (u *UpgradeLedger) Purchased() []string {
	ids := make([]string, 0, len(u.purchased))
	for id := range u.purchased {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Restore replaces the purchased set and returns ids missing from the catalog
func (u *UpgradeLedger) Restore(ids []string) (unknown []string) {
	u.Clear()
	for _, id := range ids {
		if _, ok := u.catalog.TryGetUpgrade(id); !ok {
			unknown = append(unknown, id)
			continue
		}
		u.purchased[id] = struct{}{}
	}
	return unknown
}

// Clear forgets every purchase
func (u *UpgradeLedger) Clear() {
	clear(u.purchased)
}
