// Package calculator computes the supplementary technical indicators
// reported alongside the distribution day scan.
package calculator

import (
	"errors"
	"fmt"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// IndicatorConfig sets the lookback windows, which double as the minimum
// history each indicator needs.
type IndicatorConfig struct {
	MA50Window  int
	MA200Window int
	RSIPeriod   int
}

// DefaultIndicatorConfig returns the conventional windows.
func DefaultIndicatorConfig() IndicatorConfig {
	return IndicatorConfig{
		MA50Window:  50,
		MA200Window: 200,
		RSIPeriod:   14,
	}
}

// Validate checks the window ranges.
func (c IndicatorConfig) Validate() error {
	if c.MA50Window <= 0 || c.MA200Window <= 0 || c.RSIPeriod <= 0 {
		return errors.New("indicator windows must be positive")
	}
	if c.MA200Window < c.MA50Window {
		return fmt.Errorf("long window %d must be >= short window %d", c.MA200Window, c.MA50Window)
	}
	return nil
}

// CalculateSMA computes the simple moving average of the most recent
// `period` prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, fmt.Errorf("%w: %d prices, need %d", model.ErrInsufficientHistory, len(prices), period)
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// ComputeIndicators derives the moving averages and RSI from a daily
// series. Each indicator that lacks history is flagged unavailable
// rather than defaulted; a short series never fails the whole call.
func ComputeIndicators(series model.PriceSeries, cfg IndicatorConfig) (model.TechnicalIndicators, error) {
	if err := cfg.Validate(); err != nil {
		return model.TechnicalIndicators{}, fmt.Errorf("indicator config: %w", err)
	}
	if len(series.Bars) == 0 {
		return model.TechnicalIndicators{}, errors.New("empty series")
	}

	closes := series.Closes()
	ind := model.TechnicalIndicators{LastClose: closes[len(closes)-1]}

	if ma, err := CalculateSMA(closes, cfg.MA50Window); err == nil {
		ind.MA50, ind.HasMA50 = ma, true
	}
	if ma, err := CalculateSMA(closes, cfg.MA200Window); err == nil {
		ind.MA200, ind.HasMA200 = ma, true
	}
	if rsi, err := CalculateRSI(closes, cfg.RSIPeriod); err == nil {
		ind.RSI, ind.HasRSI = rsi, true
	}
	return ind, nil
}
