// Package trendguard implements the 12-month moving-average
// trend-following backtest: stay invested while the month-end price
// holds above its trailing SMA, sit in cash otherwise, and compare the
// result against buy-and-hold.
package trendguard

import (
	"fmt"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// Config tunes the strategy and simulation.
type Config struct {
	// SMAMonths is the trailing moving-average lookback on month-end
	// closes.
	SMAMonths int
	// CashYieldAnnual is the annual yield earned while out of the
	// market, converted to a flat monthly rate.
	CashYieldAnnual float64
	// InitialEquity is the starting capital for both equity curves.
	InitialEquity float64
}

// DefaultConfig returns the standard 12-month / 3% parameters.
func DefaultConfig() Config {
	return Config{
		SMAMonths:       12,
		CashYieldAnnual: 0.03,
		InitialEquity:   1.0,
	}
}

// Validate checks the config ranges.
func (c Config) Validate() error {
	if c.SMAMonths < 2 {
		return fmt.Errorf("sma_months must be at least 2, got %d", c.SMAMonths)
	}
	if c.CashYieldAnnual < 0 {
		return fmt.Errorf("cash_yield must be non-negative, got %.4f", c.CashYieldAnnual)
	}
	if c.InitialEquity <= 0 {
		return fmt.Errorf("initial_equity must be positive, got %.4f", c.InitialEquity)
	}
	return nil
}

// SignalSeries holds the lagged monthly signal set for one symbol. Start
// and StartPrice anchor the equity curves one month before the first
// tradeable observation.
type SignalSeries struct {
	Symbol       string
	Start        model.PriceBar // month-end preceding the first observation
	Observations []model.MonthlyObservation
}

// ResampleMonthly reduces a daily series to one bar per calendar month,
// keeping the last session of each month.
func ResampleMonthly(series model.PriceSeries) []model.PriceBar {
	var monthly []model.PriceBar
	for _, b := range series.Bars {
		if len(monthly) > 0 {
			last := monthly[len(monthly)-1]
			if last.Date.Year() == b.Date.Year() && last.Date.Month() == b.Date.Month() {
				monthly[len(monthly)-1] = b
				continue
			}
		}
		monthly = append(monthly, b)
	}
	return monthly
}

// GenerateSignals resamples the series to month-end closes, computes the
// trailing SMA, and derives the lagged position for each tradeable month.
//
// The first SMAMonths-1 months have no SMA and cannot be traded. The
// first month with an SMA only contributes its signal; the position it
// implies is held during the following month. Every observation therefore
// carries the signal computed at the previous month-end, which keeps the
// backtest free of look-ahead bias.
func GenerateSignals(series model.PriceSeries, cfg Config) (*SignalSeries, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	monthly := ResampleMonthly(series)
	// Need the lookback window, plus one month whose signal seeds the
	// first position, i.e. at least SMAMonths+1 month-ends.
	if len(monthly) < cfg.SMAMonths+1 {
		return nil, fmt.Errorf("%w: %d month-ends, need %d for a %d-month signal",
			model.ErrInsufficientHistory, len(monthly), cfg.SMAMonths+1, cfg.SMAMonths)
	}

	sma := func(end int) float64 { // mean of monthly closes (end-SMAMonths, end]
		sum := 0.0
		for i := end - cfg.SMAMonths + 1; i <= end; i++ {
			sum += monthly[i].Close
		}
		return sum / float64(cfg.SMAMonths)
	}
	signalAt := func(i int) model.Position {
		if monthly[i].Close >= sma(i) {
			return model.PositionInvested
		}
		return model.PositionCash
	}

	first := cfg.SMAMonths // first tradeable month index; month first-1 seeds its position
	obs := make([]model.MonthlyObservation, 0, len(monthly)-first)
	for i := first; i < len(monthly); i++ {
		obs = append(obs, model.MonthlyObservation{
			MonthEnd:    monthly[i].Date,
			Price:       monthly[i].Close,
			SMA:         sma(i),
			AssetReturn: monthly[i].Close/monthly[i-1].Close - 1,
			Position:    signalAt(i - 1),
		})
	}

	return &SignalSeries{
		Symbol:       series.Symbol,
		Start:        monthly[first-1],
		Observations: obs,
	}, nil
}
