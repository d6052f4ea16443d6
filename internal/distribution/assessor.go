package distribution

import (
	"fmt"
	"time"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// AssessorConfig holds the verdict thresholds. The defaults follow
// traditional IBD guidance but are deliberately tunable; they are not a
// fixed contract.
type AssessorConfig struct {
	ModerateCount        int // active days for MODERATE_PRESSURE
	HighCount            int // active days for HIGH_PRESSURE
	RecentHighCount      int // active days inside the recent window for HIGH_PRESSURE
	RecentWindowSessions int // size of the trailing recent window
}

// DefaultAssessorConfig returns the documented defaults.
func DefaultAssessorConfig() AssessorConfig {
	return AssessorConfig{
		ModerateCount:        5,
		HighCount:            8,
		RecentHighCount:      4,
		RecentWindowSessions: 10,
	}
}

// Validate checks the threshold ranges.
func (c AssessorConfig) Validate() error {
	if c.ModerateCount < 0 || c.HighCount < 0 || c.RecentHighCount < 0 {
		return fmt.Errorf("verdict thresholds must be non-negative")
	}
	if c.HighCount < c.ModerateCount {
		return fmt.Errorf("high_count %d must be >= moderate_count %d", c.HighCount, c.ModerateCount)
	}
	if c.RecentWindowSessions <= 0 {
		return fmt.Errorf("recent_window_sessions must be positive, got %d", c.RecentWindowSessions)
	}
	return nil
}

// Assessor reduces the active distribution day set to a market verdict.
type Assessor struct {
	cfg AssessorConfig
}

// NewAssessor creates an Assessor, validating the config.
func NewAssessor(cfg AssessorConfig) (*Assessor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("assessor config: %w", err)
	}
	return &Assessor{cfg: cfg}, nil
}

// Assess aggregates the non-expired records as of the given date. The
// recent count covers records whose date falls within the trailing
// RecentWindowSessions sessions of the series.
func (a *Assessor) Assess(records []model.DistributionDayRecord, series model.PriceSeries, asOf time.Time) model.MarketCondition {
	recentCutoff := recentWindowStart(series, asOf, a.cfg.RecentWindowSessions)

	cond := model.MarketCondition{AsOf: asOf}
	for _, r := range records {
		if r.Expired || r.Date.After(asOf) {
			continue
		}
		cond.TotalCount++
		cond.TotalWeightedChange += r.WeightedChange
		if !r.Date.Before(recentCutoff) {
			cond.RecentCount++
		}
	}

	switch {
	case cond.TotalCount >= a.cfg.HighCount || cond.RecentCount >= a.cfg.RecentHighCount:
		cond.Verdict = model.VerdictHighPressure
	case cond.TotalCount >= a.cfg.ModerateCount:
		cond.Verdict = model.VerdictModeratePressure
	default:
		cond.Verdict = model.VerdictHealthy
	}
	return cond
}

// recentWindowStart returns the date of the first session inside the
// trailing window ending at asOf. With fewer sessions than the window,
// the whole series is recent.
func recentWindowStart(series model.PriceSeries, asOf time.Time, window int) time.Time {
	count := 0
	for i := len(series.Bars) - 1; i >= 0; i-- {
		if series.Bars[i].Date.After(asOf) {
			continue
		}
		count++
		if count == window {
			return series.Bars[i].Date
		}
	}
	if len(series.Bars) > 0 {
		return series.Bars[0].Date
	}
	return time.Time{}
}
