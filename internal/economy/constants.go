package economy

import "github.com/shopspring/decimal"

// Simulation constants
const (
	// OverdriveThreshold is the cycle time at or below which an AI unit
	// accrues income continuously instead of per completion
	OverdriveThreshold = 0.2

	// MinCycleTime floors the effective cycle time
	MinCycleTime = 0.01

	// StrikeLimit is the number of unpaid cycles a human tolerates
	StrikeLimit = 5

	// OfflineReportSeconds is the absence after which offline earnings are surfaced
	OfflineReportSeconds = 60.0

	// MaxBulkPurchase caps a single MAX purchase
	MaxBulkPurchase = 1_000_000
)

var (
	// PrestigeThreshold is the lifetime earnings worth the first token
	PrestigeThreshold = decimal.NewFromInt(1_000_000)

	// PrestigeBonusPerToken is the revenue bonus granted by each token
	PrestigeBonusPerToken = decimal.New(1, -1)
)

// MilestoneThresholds are the ownership counts that double revenue
var MilestoneThresholds = [...]int{10, 25, 50, 100, 200, 300, 400, 500, 1000}
