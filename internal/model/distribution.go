package model

import "time"

// ExpirationReason explains why a distribution day no longer counts
// against the market.
type ExpirationReason string

const (
	ExpirationNone          ExpirationReason = "NONE"
	ExpirationTime          ExpirationReason = "TIME"
	ExpirationPriceRecovery ExpirationReason = "PRICE_RECOVERY"
)

// DistributionDayRecord is one session of institutional-style selling
// pressure: price closed lower than the prior session on higher volume.
// Expired records stay in the historical log; they are only excluded from
// the active count.
type DistributionDayRecord struct {
	Date             time.Time
	Close            float64
	Volume           int64
	PercentChange    float64 // close/prevClose - 1
	VolumeChange     float64 // volume/prevVolume - 1, 0 when prevVolume is 0
	WeightedChange   float64 // PercentChange * (1 + VolumeChange)
	Expired          bool
	ExpirationReason ExpirationReason
}

// Verdict is the qualitative market-health call derived from the active
// distribution day count.
type Verdict string

const (
	VerdictHealthy          Verdict = "HEALTHY"
	VerdictModeratePressure Verdict = "MODERATE_PRESSURE"
	VerdictHighPressure     Verdict = "HIGH_PRESSURE"
)

// MarketCondition aggregates the non-expired distribution days as of a
// given date. Recomputed on demand, never persisted as state.
type MarketCondition struct {
	AsOf                time.Time
	TotalCount          int
	RecentCount         int // within the trailing recent-session window
	TotalWeightedChange float64
	Verdict             Verdict
}
