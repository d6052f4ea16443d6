package collector

import (
	"errors"
	"testing"
	"time"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

func mockBars(n int) []model.PriceBar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, n)
	for i := range bars {
		bars[i] = model.PriceBar{Date: start.AddDate(0, 0, i), Close: 100 + float64(i), Volume: 1000}
	}
	return bars
}

func TestCollect_Valid(t *testing.T) {
	c := NewCollector(&MockFetcher{Bars: map[string][]model.PriceBar{"SPY": mockBars(10)}})
	s, err := c.Collect("SPY", 5)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if s.Symbol != "SPY" {
		t.Errorf("symbol: got %s", s.Symbol)
	}
	if len(s.Bars) != 5 {
		t.Errorf("expected trim to 5 bars, got %d", len(s.Bars))
	}
}

func TestCollect_FetchError(t *testing.T) {
	c := NewCollector(&MockFetcher{Err: errors.New("boom")})
	if _, err := c.Collect("SPY", 5); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}

func TestCollect_RejectsMalformedSeries(t *testing.T) {
	bars := mockBars(5)
	bars[2].Date = bars[1].Date // duplicate date
	c := NewCollector(&MockFetcher{Bars: map[string][]model.PriceBar{"SPY": bars}})
	if _, err := c.Collect("SPY", 10); err == nil {
		t.Fatal("expected validation error for duplicate dates")
	}
}

func TestCollectAll_IsolatesFailures(t *testing.T) {
	c := NewCollector(&MockFetcher{Bars: map[string][]model.PriceBar{
		"SPY": mockBars(10),
		// QQQ missing -> empty series fails validation
	}})
	series, errs := c.CollectAll([]string{"SPY", "QQQ"}, 10)
	if _, ok := series["SPY"]; !ok {
		t.Error("SPY should have been collected")
	}
	if _, ok := errs["QQQ"]; !ok {
		t.Error("QQQ failure should be reported per-symbol")
	}
	if len(series) != 1 || len(errs) != 1 {
		t.Errorf("unexpected result sizes: %d series, %d errors", len(series), len(errs))
	}
}
