package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultHumanSpeed = 1.0
	DefaultAISpeed    = 2.0
)

// UnitState is the persisted progression of one tier
type UnitState struct {
	TierID               int
	OwnedCount           int
	OperatorMode         OperatorMode
	IsManuallyWorking    bool
	CycleProgressSeconds float64
	AccruedHumanDebt     decimal.Decimal
	HumanSpeedMultiplier float64
	AISpeedMultiplier    float64
}

// NewUnitState creates a unit with default operator speeds
func NewUnitState(tierID, owned int) UnitState {
	return UnitState{
		TierID:               tierID,
		OwnedCount:           owned,
		AccruedHumanDebt:     decimal.Zero,
		HumanSpeedMultiplier: DefaultHumanSpeed,
		AISpeedMultiplier:    DefaultAISpeed,
	}
}

// SaveSnapshot is the whole durable game state
type SaveSnapshot struct {
	LastSaveTime          time.Time
	CurrentBalance        decimal.Decimal
	LifetimeEarnings      decimal.Decimal
	PrestigeCurrency      decimal.Decimal
	HighestUnlockedTierID int
	Units                 []UnitState
	PurchasedUpgrades     []string
}

// NewSaveSnapshot returns the safe defaults: nothing earned, tier 1 unlocked
func NewSaveSnapshot() *SaveSnapshot {
	return &SaveSnapshot{
		CurrentBalance:        decimal.Zero,
		LifetimeEarnings:      decimal.Zero,
		PrestigeCurrency:      decimal.Zero,
		HighestUnlockedTierID: 1,
		Units:                 []UnitState{},
		PurchasedUpgrades:     []string{},
	}
}

// Clone creates a deep copy of the snapshot
func (s *SaveSnapshot) Clone() *SaveSnapshot {
	c := *s
	c.Units = slices.Clone(s.Units)
	c.PurchasedUpgrades = slices.Clone(s.PurchasedUpgrades)
	if c.Units == nil {
		c.Units = []UnitState{}
	}
	if c.PurchasedUpgrades == nil {
		c.PurchasedUpgrades = []string{}
	}
	return &c
}

// NewerThan reports whether s was saved strictly after other
func (s *SaveSnapshot) NewerThan(other *SaveSnapshot) bool {
	if other == nil {
		return true
	}
	return s.LastSaveTime.After(other.LastSaveTime)
}
