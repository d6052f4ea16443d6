// Package distribution implements the IBD-style distribution day
// methodology: detecting sessions of institutional selling pressure,
// aging them out over time or price recovery, and reducing the active
// set to a market-health verdict.
package distribution

import (
	"errors"
	"fmt"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// DetectorConfig tunes qualification and expiration of distribution days.
// IBD practitioners adjust these per market regime, so they are explicit
// parameters rather than constants baked into the logic.
type DetectorConfig struct {
	// ExpirationSessions is how many trading sessions a distribution day
	// stays active before it ages out.
	ExpirationSessions int
	// RecoveryThreshold clears a day early once a later close reaches
	// this multiple of the day's close (1.05 = 5% recovery).
	RecoveryThreshold float64
}

// DefaultDetectorConfig returns the traditional IBD parameters.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ExpirationSessions: 25,
		RecoveryThreshold:  1.05,
	}
}

// Validate checks the config ranges.
func (c DetectorConfig) Validate() error {
	if c.ExpirationSessions <= 0 {
		return fmt.Errorf("expiration_sessions must be positive, got %d", c.ExpirationSessions)
	}
	if c.RecoveryThreshold <= 1 {
		return fmt.Errorf("recovery_threshold must be > 1, got %.4f", c.RecoveryThreshold)
	}
	return nil
}

// Detector scans a price series for distribution days.
type Detector struct {
	cfg DetectorConfig
}

// NewDetector creates a Detector, validating the config.
func NewDetector(cfg DetectorConfig) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("detector config: %w", err)
	}
	return &Detector{cfg: cfg}, nil
}

// Detect returns one record per qualifying session, in date order. A
// session qualifies when it closes below the prior session on higher
// volume. The input series is never mutated; records start non-expired.
func (d *Detector) Detect(series model.PriceSeries) ([]model.DistributionDayRecord, error) {
	if len(series.Bars) < 2 {
		return nil, errors.New("need at least 2 bars to detect distribution days")
	}

	var records []model.DistributionDayRecord
	for i := 1; i < len(series.Bars); i++ {
		prev, cur := series.Bars[i-1], series.Bars[i]
		if !(cur.Close < prev.Close && cur.Volume > prev.Volume) {
			continue
		}

		pctChange := cur.Close/prev.Close - 1
		volChange := 0.0
		if prev.Volume != 0 {
			volChange = float64(cur.Volume)/float64(prev.Volume) - 1
		}

		records = append(records, model.DistributionDayRecord{
			Date:             cur.Date,
			Close:            cur.Close,
			Volume:           cur.Volume,
			PercentChange:    pctChange,
			VolumeChange:     volChange,
			WeightedChange:   pctChange * (1 + volChange),
			ExpirationReason: model.ExpirationNone,
		})
	}
	return records, nil
}
