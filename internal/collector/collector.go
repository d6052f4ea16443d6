package collector

import (
	"fmt"
	"time"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and
// testing.
type MockFetcher struct {
	Bars map[string][]model.PriceBar
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Bars[symbol]
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// Collector fetches daily series and enforces the input contract before
// the analytical pipelines see them.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches a validated daily series for one symbol. A series that
// violates the contract (unordered dates, bad values) is a fatal error
// for that symbol.
func (c *Collector) Collect(symbol string, days int) (model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, days)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	series := model.PriceSeries{
		Symbol:    symbol,
		Bars:      bars,
		FetchedAt: time.Now(),
	}
	if err := model.ValidateSeries(series); err != nil {
		return model.PriceSeries{}, fmt.Errorf("validate series: %w", err)
	}
	return series, nil
}

// CollectAll fetches every symbol, keeping per-symbol failures isolated.
// The returned map holds only the successful series; errs is keyed by
// symbol.
func (c *Collector) CollectAll(symbols []string, days int) (map[string]model.PriceSeries, map[string]error) {
	series := make(map[string]model.PriceSeries, len(symbols))
	errs := make(map[string]error)
	for _, sym := range symbols {
		s, err := c.Collect(sym, days)
		if err != nil {
			errs[sym] = err
			continue
		}
		series[sym] = s
	}
	return series, errs
}
