// Package save persists game snapshots: a JSON codec that repairs corrupt
// fields, a compressed and checksummed local store, a remote client and the
// manager that keeps the two in step.
package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/currency"
	"github.com/napolitain/idle-tycoon/internal/models"
)

// FormatVersion is written into every encoded snapshot
const FormatVersion = 1

var (
	// ErrNoSave means no snapshot exists for the profile
	ErrNoSave = errors.New("no save")
	// ErrCorrupt means a snapshot exists but cannot be read at all
	ErrCorrupt = errors.New("corrupt save")
)

type wireUnit struct {
	TierID               int             `json:"tierId"`
	OwnedCount           int             `json:"ownedCount"`
	OperatorMode         string          `json:"operatorMode"`
	IsManuallyWorking    bool            `json:"isManuallyWorking"`
	CycleProgressSeconds float64         `json:"cycleProgressSeconds"`
	AccruedHumanDebt     json.RawMessage `json:"accruedHumanDebt"`
	HumanSpeedMultiplier float64         `json:"humanSpeedMultiplier"`
	AISpeedMultiplier    float64         `json:"aiSpeedMultiplier"`
}

type wireSnapshot struct {
	Version               int             `json:"version"`
	LastSaveTime          string          `json:"lastSaveTime"`
	CurrentBalance        json.RawMessage `json:"currentBalance"`
	LifetimeEarnings      json.RawMessage `json:"lifetimeEarnings"`
	PrestigeCurrency      json.RawMessage `json:"prestigeCurrency"`
	HighestUnlockedTierID int             `json:"highestUnlockedTierId"`
	Units                 []wireUnit      `json:"units"`
	PurchasedUpgrades     []string        `json:"purchasedUpgrades"`
}

// Encode writes a snapshot as JSON. Currency is written as exact JSON
// numbers and the timestamp as RFC 3339 with nanoseconds.
func Encode(s *models.SaveSnapshot) ([]byte, error) {
	w := wireSnapshot{
		Version:               FormatVersion,
		LastSaveTime:          s.LastSaveTime.UTC().Format(time.RFC3339Nano),
		CurrentBalance:        amountJSON(s.CurrentBalance),
		LifetimeEarnings:      amountJSON(s.LifetimeEarnings),
		PrestigeCurrency:      amountJSON(s.PrestigeCurrency),
		HighestUnlockedTierID: s.HighestUnlockedTierID,
		Units:                 make([]wireUnit, 0, len(s.Units)),
		PurchasedUpgrades:     s.PurchasedUpgrades,
	}
	if w.PurchasedUpgrades == nil {
		w.PurchasedUpgrades = []string{}
	}
	for _, u := range s.Units {
		w.Units = append(w.Units, wireUnit{
			TierID:               u.TierID,
			OwnedCount:           u.OwnedCount,
			OperatorMode:         u.OperatorMode.String(),
			IsManuallyWorking:    u.IsManuallyWorking,
			CycleProgressSeconds: u.CycleProgressSeconds,
			AccruedHumanDebt:     amountJSON(u.AccruedHumanDebt),
			HumanSpeedMultiplier: u.HumanSpeedMultiplier,
			AISpeedMultiplier:    u.AISpeedMultiplier,
		})
	}

	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func amountJSON(d decimal.Decimal) json.RawMessage {
	return json.RawMessage(currency.Format(d))
}

// Decode reads a snapshot. Currency may be a JSON number or a decimal
// string. Fields that cannot be read are replaced with safe defaults and
// logged. Only input that is not a JSON snapshot at all
// returns an error, wrapping ErrCorrupt.
func Decode(data []byte, log *slog.Logger) (*models.SaveSnapshot, error) {
	if log == nil {
		log = slog.Default()
	}
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	r := &repairer{log: log}
	s := models.NewSaveSnapshot()
	s.LastSaveTime = r.timestamp(w.LastSaveTime)
	s.CurrentBalance = r.amount("currentBalance", w.CurrentBalance)
	s.LifetimeEarnings = r.amount("lifetimeEarnings", w.LifetimeEarnings)
	s.PrestigeCurrency = r.amount("prestigeCurrency", w.PrestigeCurrency)

	s.HighestUnlockedTierID = w.HighestUnlockedTierID
	if s.HighestUnlockedTierID < 1 {
		r.anomaly("highestUnlockedTierId", "below 1, using 1", "value", w.HighestUnlockedTierID)
		s.HighestUnlockedTierID = 1
	}

	if w.Units == nil {
		r.anomaly("units", "missing, using empty list")
	}
	seen := make(map[int]bool)
	for _, wu := range w.Units {
		if wu.TierID <= 0 || seen[wu.TierID] {
			r.anomaly("units", "dropping invalid or duplicate unit", "tier", wu.TierID)
			continue
		}
		seen[wu.TierID] = true
		s.Units = append(s.Units, r.unit(wu))
	}

	if w.PurchasedUpgrades == nil {
		r.anomaly("purchasedUpgrades", "missing, using empty set")
	}
	for _, id := range w.PurchasedUpgrades {
		if id != "" {
			s.PurchasedUpgrades = append(s.PurchasedUpgrades, id)
		}
	}

	if r.count > 0 {
		log.Warn("save snapshot repaired", "anomalies", r.count)
	}
	return s, nil
}

// repairer substitutes defaults for unreadable fields and counts them
type repairer struct {
	log   *slog.Logger
	count int
}

func (r *repairer) anomaly(field, msg string, args ...any) {
	r.count++
	r.log.Warn("save anomaly: "+msg, append([]any{"field", field}, args...)...)
}

func (r *repairer) timestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		r.anomaly("lastSaveTime", "unparseable, treating as first session", "value", raw)
		return time.Time{}
	}
	return t.UTC()
}

func (r *repairer) amount(field string, raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		r.anomaly(field, "missing, using zero")
		return decimal.Zero
	}
	text := string(raw)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			r.anomaly(field, "unparseable, using zero", "value", text)
			return decimal.Zero
		}
		text = unquoted
	}
	d, err := currency.Parse(text)
	if err != nil {
		r.anomaly(field, "unparseable, using zero", "value", text)
		return decimal.Zero
	}
	if d.IsNegative() {
		r.anomaly(field, "negative, using zero", "value", text)
		return decimal.Zero
	}
	return d
}

func (r *repairer) unit(wu wireUnit) models.UnitState {
	u := models.NewUnitState(wu.TierID, wu.OwnedCount)
	if u.OwnedCount < 0 {
		r.anomaly("ownedCount", "negative, using zero", "tier", wu.TierID)
		u.OwnedCount = 0
	}

	mode, err := models.ParseOperatorMode(wu.OperatorMode)
	if err != nil {
		r.anomaly("operatorMode", "unknown, using none", "tier", wu.TierID, "value", wu.OperatorMode)
	}
	u.OperatorMode = mode
	u.IsManuallyWorking = wu.IsManuallyWorking && mode == models.OperatorNone

	if wu.CycleProgressSeconds >= 0 && !math.IsInf(wu.CycleProgressSeconds, 1) {
		u.CycleProgressSeconds = wu.CycleProgressSeconds
	} else {
		r.anomaly("cycleProgressSeconds", "invalid, using zero", "tier", wu.TierID)
	}

	if len(wu.AccruedHumanDebt) == 0 {
		u.AccruedHumanDebt = decimal.Zero
	} else {
		u.AccruedHumanDebt = r.amount("accruedHumanDebt", wu.AccruedHumanDebt)
	}
	if wu.HumanSpeedMultiplier > 0 {
		u.HumanSpeedMultiplier = wu.HumanSpeedMultiplier
	}
	if wu.AISpeedMultiplier > 0 {
		u.AISpeedMultiplier = wu.AISpeedMultiplier
	}
	return u
}
