package model

import "time"

// Position is the binary stance held during a month.
type Position string

const (
	PositionInvested Position = "INVESTED"
	PositionCash     Position = "CASH"
)

// MonthlyObservation is one tradeable month of the trend-following
// strategy. Position is the signal computed at the previous month-end,
// lagged one period so no month trades on its own close.
type MonthlyObservation struct {
	MonthEnd    time.Time
	Price       float64 // last close of the month
	SMA         float64 // trailing moving average of month-end closes
	AssetReturn float64 // close-to-close return vs the prior month-end
	Position    Position
}

// EquityPoint is one sample of a compounding equity curve.
type EquityPoint struct {
	Date   time.Time
	Equity float64
}

// EquityCurve is an ordered equity series starting at the initial capital.
type EquityCurve []EquityPoint

// Final returns the last equity value, or 0 for an empty curve.
func (c EquityCurve) Final() float64 {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1].Equity
}

// BacktestResult summarizes one (symbol, strategy) equity curve.
// MaxDrawdown is reported as a negative fraction (0 only for a curve that
// never declines from a peak).
type BacktestResult struct {
	CAGR                 float64
	MaxDrawdown          float64
	SharpeRatio          float64
	TimeInvestedFraction float64
	PeriodStart          time.Time
	PeriodEnd            time.Time
	MonthCount           int
}

// ComparisonRow is one symbol's strategy-vs-baseline outcome. Rows keep
// the caller's symbol order. Err is set when that symbol's pipeline
// failed; the metric fields are then meaningless.
type ComparisonRow struct {
	Symbol            string
	Strategy          BacktestResult
	BuyHold           BacktestResult
	DrawdownReduction float64 // 1 - strategyDD/buyHoldDD, positive when strategy drew down less
	CAGRDelta         float64
	SharpeDelta       float64
	Err               error
}
