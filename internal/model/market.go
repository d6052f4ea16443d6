package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInsufficientHistory indicates a series is too short for the requested
// indicator or backtest. Callers should treat the affected value as
// unavailable rather than substituting a default.
var ErrInsufficientHistory = errors.New("insufficient history")

// PriceBar represents one trading session for a symbol.
type PriceBar struct {
	Date   time.Time
	Close  float64
	Volume int64
}

// PriceSeries holds the daily bars for one symbol, in ascending date order.
// Analytical components never mutate a series.
type PriceSeries struct {
	Symbol    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Closes returns the closing prices of the series in order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// LastBar returns the most recent bar. Callers must validate the series
// first; an empty series panics.
func (s PriceSeries) LastBar() PriceBar {
	return s.Bars[len(s.Bars)-1]
}

// ValidateSeries checks the input contract for a fetched series: at least
// one bar, strictly ascending dates, positive closes and non-negative
// volume. A violation indicates a malformed feed and aborts the pipeline
// for that symbol.
func ValidateSeries(s PriceSeries) error {
	if len(s.Bars) == 0 {
		return fmt.Errorf("series %s: no bars", s.Symbol)
	}
	for i, b := range s.Bars {
		if b.Close <= 0 {
			return fmt.Errorf("series %s: non-positive close %.4f at %s", s.Symbol, b.Close, b.Date.Format("2006-01-02"))
		}
		if b.Volume < 0 {
			return fmt.Errorf("series %s: negative volume %d at %s", s.Symbol, b.Volume, b.Date.Format("2006-01-02"))
		}
		if i > 0 && !s.Bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("series %s: dates not strictly ascending at index %d (%s >= %s)",
				s.Symbol, i, s.Bars[i-1].Date.Format("2006-01-02"), b.Date.Format("2006-01-02"))
		}
	}
	return nil
}
