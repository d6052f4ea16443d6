package trendguard

import (
	"fmt"
	"sync"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// Compare backtests each symbol independently and tabulates the relative
// improvement of the strategy over buy-and-hold. Symbol pipelines share
// no state, so they run concurrently and join at the end; rows come back
// in the caller's symbol order. A failing symbol only poisons its own
// row.
func Compare(symbols []string, series map[string]model.PriceSeries, cfg Config) []model.ComparisonRow {
	rows := make([]model.ComparisonRow, len(symbols))

	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			rows[i] = compareOne(sym, series, cfg)
		}(i, sym)
	}
	wg.Wait()
	return rows
}

func compareOne(symbol string, series map[string]model.PriceSeries, cfg Config) model.ComparisonRow {
	row := model.ComparisonRow{Symbol: symbol}

	s, ok := series[symbol]
	if !ok {
		row.Err = fmt.Errorf("no series for %s", symbol)
		return row
	}
	res, err := Backtest(s, cfg)
	if err != nil {
		row.Err = fmt.Errorf("backtest %s: %w", symbol, err)
		return row
	}

	row.Strategy = res.Strategy
	row.BuyHold = res.BuyHold
	row.CAGRDelta = res.Strategy.CAGR - res.BuyHold.CAGR
	row.SharpeDelta = res.Strategy.SharpeRatio - res.BuyHold.SharpeRatio
	if res.BuyHold.MaxDrawdown != 0 {
		row.DrawdownReduction = 1 - res.Strategy.MaxDrawdown/res.BuyHold.MaxDrawdown
	}
	return row
}
