package distribution

import (
	"testing"
	"time"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// declineSeries builds n sessions where each close is 1% below the
// previous and each volume 10% above, so every bar after the first is a
// distribution day.
func declineSeries(t *testing.T, n int) model.PriceSeries {
	closes := make([]float64, n)
	volumes := make([]int64, n)
	price := 1000.0
	vol := 1_000_000.0
	for i := 0; i < n; i++ {
		closes[i] = price
		volumes[i] = int64(vol)
		price *= 0.99
		vol *= 1.10
	}
	return mkSeries(t, closes, volumes)
}

func TestExpireRecords_TimeBoundaryScenario(t *testing.T) {
	s := declineSeries(t, 26)
	d := mustDetector(t, DefaultDetectorConfig())
	recs, err := d.Detect(s)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(recs) != 25 {
		t.Fatalf("expected 25 raw distribution days, got %d", len(recs))
	}

	// As-of one session after the last bar: only the earliest record has
	// aged a full 25 sessions.
	asOf := s.LastBar().Date.AddDate(0, 0, 1)
	d.ExpireRecords(recs, s, asOf)

	expired := 0
	for _, r := range recs {
		if r.Expired {
			expired++
			if r.ExpirationReason != model.ExpirationTime {
				t.Errorf("%s: expected TIME, got %s", r.Date.Format("2006-01-02"), r.ExpirationReason)
			}
		}
	}
	if expired != 1 {
		t.Fatalf("expected exactly 1 time-expired record, got %d", expired)
	}
	if !recs[0].Expired {
		t.Error("the earliest record should be the one expired")
	}

	a, err := NewAssessor(DefaultAssessorConfig())
	if err != nil {
		t.Fatalf("new assessor: %v", err)
	}
	cond := a.Assess(recs, s, asOf)
	if cond.TotalCount != 24 {
		t.Errorf("total count should exclude expired records: got %d want 24", cond.TotalCount)
	}
	if cond.Verdict != model.VerdictHighPressure {
		t.Errorf("24 active distribution days should read HIGH_PRESSURE, got %s", cond.Verdict)
	}
}

func TestExpireRecords_PriceRecovery(t *testing.T) {
	// One distribution day at 99, then a bounce through the 5% recovery
	// level a few sessions later.
	closes := []float64{100, 99, 99.5, 101, 104.5}
	volumes := []int64{1000, 1200, 900, 800, 850}
	s := mkSeries(t, closes, volumes)

	d := mustDetector(t, DefaultDetectorConfig())
	recs, err := d.Detect(s)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}

	d.ExpireRecords(recs, s, s.LastBar().Date)
	if !recs[0].Expired || recs[0].ExpirationReason != model.ExpirationPriceRecovery {
		t.Fatalf("expected PRICE_RECOVERY expiration, got expired=%v reason=%s", recs[0].Expired, recs[0].ExpirationReason)
	}

	// Property: the recovery bar really exists.
	found := false
	for _, b := range s.Bars {
		if b.Date.After(recs[0].Date) && b.Close >= 1.05*recs[0].Close {
			found = true
		}
	}
	if !found {
		t.Error("no bar satisfies the recovery condition the filter claimed")
	}
}

func TestExpireRecords_RecoveryWinsTieWithTime(t *testing.T) {
	// The recovery bar is exactly the session where the time window would
	// also be crossed; recovery is the economically meaningful reason.
	n := 27
	closes := make([]float64, n)
	volumes := make([]int64, n)
	closes[0], volumes[0] = 100, 1000
	closes[1], volumes[1] = 99, 1200 // the distribution day
	for i := 2; i < n-1; i++ {
		closes[i], volumes[i] = 99.5, 900
	}
	closes[n-1], volumes[n-1] = 104, 900 // session 25 after the record, >= 1.05*99
	s := mkSeries(t, closes, volumes)

	d := mustDetector(t, DefaultDetectorConfig())
	recs, err := d.Detect(s)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}

	d.ExpireRecords(recs, s, s.LastBar().Date)
	if recs[0].ExpirationReason != model.ExpirationPriceRecovery {
		t.Errorf("tie on the same session must record PRICE_RECOVERY, got %s", recs[0].ExpirationReason)
	}
}

func TestExpireRecords_RecentRecordStaysActive(t *testing.T) {
	closes := []float64{100, 99, 98.8, 98.9}
	volumes := []int64{1000, 1100, 1200, 1000}
	s := mkSeries(t, closes, volumes)

	d := mustDetector(t, DefaultDetectorConfig())
	recs, err := d.Detect(s)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	d.ExpireRecords(recs, s, s.LastBar().Date)
	for _, r := range recs {
		if r.Expired {
			t.Errorf("%s: recent record without recovery should stay active", r.Date.Format("2006-01-02"))
		}
	}
}

func TestExpireRecords_ExpiredNeverExceedsRaw(t *testing.T) {
	s := declineSeries(t, 60)
	d := mustDetector(t, DefaultDetectorConfig())
	recs, err := d.Detect(s)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	raw := len(recs)
	d.ExpireRecords(recs, s, s.LastBar().Date.AddDate(0, 0, 1))
	expired := raw - len(ActiveRecords(recs))
	if expired > raw {
		t.Fatalf("expired count %d exceeds raw count %d", expired, raw)
	}
	if expired == 0 {
		t.Fatal("a 60-session decline should time-expire the oldest records")
	}
}

func TestExpireRecords_AsOfBeforeSeries(t *testing.T) {
	s := declineSeries(t, 30)
	d := mustDetector(t, DefaultDetectorConfig())
	recs, _ := d.Detect(s)
	d.ExpireRecords(recs, s, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	for _, r := range recs {
		if r.Expired {
			t.Fatal("no record can expire before any session has elapsed")
		}
	}
}
