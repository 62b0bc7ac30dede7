package loader

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/napolitain/idle-tycoon/internal/currency"
	"github.com/napolitain/idle-tycoon/internal/economy"
	"github.com/napolitain/idle-tycoon/internal/models"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// CatalogFile is the on-disk structure of an economy table
type CatalogFile struct {
	Tiers    []TierEntry    `yaml:"tiers" json:"tiers"`
	Upgrades []UpgradeEntry `yaml:"upgrades" json:"upgrades"`
}

// TierEntry is one tier as written in a catalog file. Currency is a string
// so large values load without float rounding.
type TierEntry struct {
	TierID        int     `yaml:"tier_id" json:"tier_id"`
	Name          string  `yaml:"name" json:"name"`
	UnlockCost    string  `yaml:"unlock_cost" json:"unlock_cost"`
	BaseCost      string  `yaml:"base_cost" json:"base_cost"`
	GrowthFactor  float64 `yaml:"growth_factor" json:"growth_factor"`
	BaseRevenue   string  `yaml:"base_revenue" json:"base_revenue"`
	CycleTime     float64 `yaml:"cycle_time" json:"cycle_time"`
	HumanHireCost string  `yaml:"human_hire_cost" json:"human_hire_cost"`
	HumanSalary   string  `yaml:"human_salary" json:"human_salary"`
	AIHireCost    string  `yaml:"ai_hire_cost" json:"ai_hire_cost"`
}

// UpgradeEntry is one upgrade as written in a catalog file
type UpgradeEntry struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	Cost       string  `yaml:"cost" json:"cost"`
	TargetTier int     `yaml:"target_tier" json:"target_tier"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
	Kind       string  `yaml:"kind" json:"kind"`
}

// LoadCatalog loads a catalog from a YAML or JSON file
func LoadCatalog(path string) (*economy.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var file CatalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return file.Build()
}

// DefaultCatalog returns the embedded economy table
func DefaultCatalog() (*economy.Catalog, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(defaultCatalog, &file); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return file.Build()
}

// Build converts the file entries and validates them into a catalog
func (f *CatalogFile) Build() (*economy.Catalog, error) {
	tiers := make([]models.TierConfig, 0, len(f.Tiers))
	for _, raw := range f.Tiers {
		tier, err := raw.toConfig()
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}

	upgrades := make([]models.UpgradeConfig, 0, len(f.Upgrades))
	for _, raw := range f.Upgrades {
		cost, err := parseAmount(raw.Cost)
		if err != nil {
			return nil, fmt.Errorf("upgrade %s cost: %w", raw.ID, err)
		}
		kind, err := models.ParseUpgradeKind(raw.Kind)
		if err != nil {
			return nil, fmt.Errorf("upgrade %s: %w", raw.ID, err)
		}
		upgrades = append(upgrades, models.UpgradeConfig{
			ID:           raw.ID,
			Name:         raw.Name,
			Cost:         cost,
			TargetTierID: raw.TargetTier,
			Multiplier:   raw.Multiplier,
			Kind:         kind,
		})
	}

	return economy.NewCatalog(tiers, upgrades)
}

func (t TierEntry) toConfig() (models.TierConfig, error) {
	cfg := models.TierConfig{
		ID:                   t.TierID,
		Name:                 t.Name,
		CostGrowthFactor:     t.GrowthFactor,
		BaseCycleTimeSeconds: t.CycleTime,
	}
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("Tier %d", t.TierID)
	}

	var err error
	if cfg.UnlockCost, err = parseAmount(t.UnlockCost); err != nil {
		return cfg, fmt.Errorf("tier %d unlock_cost: %w", t.TierID, err)
	}
	if cfg.BaseCost, err = parseAmount(t.BaseCost); err != nil {
		return cfg, fmt.Errorf("tier %d base_cost: %w", t.TierID, err)
	}
	if cfg.BaseRevenuePerCycle, err = parseAmount(t.BaseRevenue); err != nil {
		return cfg, fmt.Errorf("tier %d base_revenue: %w", t.TierID, err)
	}
	if cfg.HumanHireCost, err = parseAmount(t.HumanHireCost); err != nil {
		return cfg, fmt.Errorf("tier %d human_hire_cost: %w", t.TierID, err)
	}
	if cfg.HumanSalaryPerCycle, err = parseAmount(t.HumanSalary); err != nil {
		return cfg, fmt.Errorf("tier %d human_salary: %w", t.TierID, err)
	}
	if cfg.AIHireCost, err = parseAmount(t.AIHireCost); err != nil {
		return cfg, fmt.Errorf("tier %d ai_hire_cost: %w", t.TierID, err)
	}
	return cfg, nil
}

// parseAmount reads a currency field; empty means zero
func parseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return currency.Zero, nil
	}
	return currency.Parse(s)
}
