package economy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/models"
)

// ErrInvalidCatalog wraps every catalog validation failure
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the immutable tier and upgrade table
type Catalog struct {
	tiers        map[int]models.TierConfig
	tierOrder    []int
	upgrades     map[string]models.UpgradeConfig
	upgradeOrder []string
}

// NewCatalog validates the entries and builds a catalog
func NewCatalog(tiers []models.TierConfig, upgrades []models.UpgradeConfig) (*Catalog, error) {
	c := &Catalog{
		tiers:    make(map[int]models.TierConfig, len(tiers)),
		upgrades: make(map[string]models.UpgradeConfig, len(upgrades)),
	}

	for _, t := range tiers {
		if err := validateTier(t); err != nil {
			return nil, err
		}
		if _, dup := c.tiers[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate tier %d", ErrInvalidCatalog, t.ID)
		}
		c.tiers[t.ID] = t
		c.tierOrder = append(c.tierOrder, t.ID)
	}
	if _, ok := c.tiers[1]; !ok {
		return nil, fmt.Errorf("%w: tier 1 is required", ErrInvalidCatalog)
	}
	sort.Ints(c.tierOrder)

	for _, u := range upgrades {
		if u.ID == "" {
			return nil, fmt.Errorf("%w: upgrade with empty id", ErrInvalidCatalog)
		}
		if _, dup := c.upgrades[u.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate upgrade %q", ErrInvalidCatalog, u.ID)
		}
		if u.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: upgrade %q has negative cost", ErrInvalidCatalog, u.ID)
		}
		if !(u.Multiplier > 0) {
			return nil, fmt.Errorf("%w: upgrade %q multiplier must be > 0, got %v", ErrInvalidCatalog, u.ID, u.Multiplier)
		}
		if u.Kind != models.UpgradeRevenue && u.Kind != models.UpgradeSpeed {
			return nil, fmt.Errorf("%w: upgrade %q has unknown kind", ErrInvalidCatalog, u.ID)
		}
		if _, ok := c.tiers[u.TargetTierID]; u.TargetTierID != 0 && !ok {
			return nil, fmt.Errorf("%w: upgrade %q targets unknown tier %d", ErrInvalidCatalog, u.ID, u.TargetTierID)
		}
		c.upgrades[u.ID] = u
		c.upgradeOrder = append(c.upgradeOrder, u.ID)
	}
	sort.SliceStable(c.upgradeOrder, func(i, j int) bool {
		a, b := c.upgrades[c.upgradeOrder[i]], c.upgrades[c.upgradeOrder[j]]
		if cmp := a.Cost.Cmp(b.Cost); cmp != 0 {
			return cmp < 0
		}
		return a.ID < b.ID
	})

	return c, nil
}

func validateTier(t models.TierConfig) error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: tier id must be positive, got %d", ErrInvalidCatalog, t.ID)
	}
	if !(t.CostGrowthFactor > 1) {
		return fmt.Errorf("%w: tier %d cost growth factor must be > 1, got %v", ErrInvalidCatalog, t.ID, t.CostGrowthFactor)
	}
	if !(t.BaseCycleTimeSeconds > 0) {
		return fmt.Errorf("%w: tier %d cycle time must be > 0, got %v", ErrInvalidCatalog, t.ID, t.BaseCycleTimeSeconds)
	}
	amounts := map[string]decimal.Decimal{
		"unlock cost":  t.UnlockCost,
		"base cost":    t.BaseCost,
		"base revenue": t.BaseRevenuePerCycle,
		"human hire":   t.HumanHireCost,
		"human salary": t.HumanSalaryPerCycle,
		"ai hire":      t.AIHireCost,
	}
	for name, v := range amounts {
		if v.IsNegative() {
			return fmt.Errorf("%w: tier %d %s is negative", ErrInvalidCatalog, t.ID, name)
		}
	}
	if !t.BaseCost.IsPositive() {
		return fmt.Errorf("%w: tier %d base cost must be > 0", ErrInvalidCatalog, t.ID)
	}
	return nil
}

// TryGetTierConfig looks up a tier. A missing id past the last tier is the
// end of content, not an error.
func (c *Catalog) TryGetTierConfig(id int) (models.TierConfig, bool) {
	t, ok := c.tiers[id]
	return t, ok
}

// TryGetUpgrade looks up an upgrade by id
func (c *Catalog) TryGetUpgrade(id string) (models.UpgradeConfig, bool) {
	u, ok := c.upgrades[id]
	return u, ok
}

// Tiers returns every tier in ascending id order
func (c *Catalog) Tiers() []models.TierConfig {
	out := make([]models.TierConfig, 0, len(c.tierOrder))
	for _, id := range c.tierOrder {
		out = append(out, c.tiers[id])
	}
	return out
}

// Upgrades returns every upgrade ordered by cost
func (c *Catalog) Upgrades() []models.UpgradeConfig {
	out := make([]models.UpgradeConfig, 0, len(c.upgradeOrder))
	for _, id := range c.upgradeOrder {
		out = append(out, c.upgrades[id])
	}
	return out
}
