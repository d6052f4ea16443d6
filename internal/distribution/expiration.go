package distribution

import (
	"time"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// ExpireRecords flags stale and price-recovered records in place. Records
// are never removed: an expired record keeps its data and gains a reason,
// and only the aggregation step skips it.
//
// A record is price-recovered when any later session up to asOf closes at
// or above RecoveryThreshold times the record's close. It is time-expired
// once a full ExpirationSessions sessions have passed between its date
// and asOf; when asOf falls after the last bar it counts as one more
// session. Recovery is checked in chronological order and wins when both
// conditions land on the same session.
//
// Each record scans at most ExpirationSessions later bars (recovery past
// that point is moot, the record has already aged out), so the whole pass
// is linear in the series length for a fixed window.
func (d *Detector) ExpireRecords(records []model.DistributionDayRecord, series model.PriceSeries, asOf time.Time) {
	bars := series.Bars
	if len(records) == 0 || len(bars) == 0 {
		return
	}

	// Last session at or before asOf.
	lastIdx := -1
	for i := len(bars) - 1; i >= 0; i-- {
		if !bars[i].Date.After(asOf) {
			lastIdx = i
			break
		}
	}
	if lastIdx < 0 {
		return
	}
	extra := 0
	if asOf.After(bars[len(bars)-1].Date) {
		extra = 1
	}

	// Records and bars are both date-ascending; walk them in tandem.
	barIdx := 0
	for ri := range records {
		rec := &records[ri]
		for barIdx < len(bars) && bars[barIdx].Date.Before(rec.Date) {
			barIdx++
		}
		if barIdx >= len(bars) || !bars[barIdx].Date.Equal(rec.Date) {
			continue // record not in this series; leave untouched
		}
		if rec.Date.After(asOf) {
			break
		}

		recovered := false
		end := barIdx + d.cfg.ExpirationSessions
		if end > lastIdx {
			end = lastIdx
		}
		for j := barIdx + 1; j <= end; j++ {
			if bars[j].Close >= d.cfg.RecoveryThreshold*rec.Close {
				recovered = true
				break
			}
		}

		switch {
		case recovered:
			rec.Expired = true
			rec.ExpirationReason = model.ExpirationPriceRecovery
		case lastIdx-barIdx+extra >= d.cfg.ExpirationSessions:
			rec.Expired = true
			rec.ExpirationReason = model.ExpirationTime
		}
	}
}

// ActiveRecords returns the non-expired subset, preserving order.
func ActiveRecords(records []model.DistributionDayRecord) []model.DistributionDayRecord {
	active := make([]model.DistributionDayRecord, 0, len(records))
	for _, r := range records {
		if !r.Expired {
			active = append(active, r)
		}
	}
	return active
}
