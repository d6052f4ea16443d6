package collector

import "github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"

// Fetcher defines the interface for retrieving daily market data. The
// analytical core never performs network I/O itself; it consumes a
// complete, validated series handed over by the collector.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.PriceBar, error)
	Name() string
}
