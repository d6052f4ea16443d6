package trendguard

import (
	"errors"
	"fmt"
	"math"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// Result bundles the strategy and baseline outcomes for one symbol.
type Result struct {
	Symbol        string
	Signals       *SignalSeries
	StrategyCurve model.EquityCurve
	BuyHoldCurve  model.EquityCurve
	Strategy      model.BacktestResult
	BuyHold       model.BacktestResult
}

// Simulate replays the lagged signal into an equity curve and, with the
// same capital and month range, an always-invested baseline. A month in
// the market earns the asset return; a month in cash earns the flat
// monthly cash rate.
func Simulate(sig *SignalSeries, cfg Config) (strategy, buyHold model.EquityCurve, err error) {
	if cfg.InitialEquity <= 0 {
		return nil, nil, fmt.Errorf("initial equity must be positive, got %.4f", cfg.InitialEquity)
	}
	if sig == nil || len(sig.Observations) == 0 {
		return nil, nil, errors.New("no observations to simulate")
	}

	cashMonthly := cfg.CashYieldAnnual / 12

	strategy = make(model.EquityCurve, 0, len(sig.Observations)+1)
	buyHold = make(model.EquityCurve, 0, len(sig.Observations)+1)
	strategy = append(strategy, model.EquityPoint{Date: sig.Start.Date, Equity: cfg.InitialEquity})
	buyHold = append(buyHold, model.EquityPoint{Date: sig.Start.Date, Equity: cfg.InitialEquity})

	se, be := cfg.InitialEquity, cfg.InitialEquity
	for _, o := range sig.Observations {
		r := cashMonthly
		if o.Position == model.PositionInvested {
			r = o.AssetReturn
		}
		se *= 1 + r
		be *= 1 + o.AssetReturn
		strategy = append(strategy, model.EquityPoint{Date: o.MonthEnd, Equity: se})
		buyHold = append(buyHold, model.EquityPoint{Date: o.MonthEnd, Equity: be})
	}
	return strategy, buyHold, nil
}

// ComputeMetrics reduces an equity curve and its realized monthly
// returns to the standard statistics. The Sharpe ratio uses the sample
// standard deviation (n-1 denominator) of the monthly returns, with
// excess measured over the monthly cash rate, annualized by sqrt(12).
func ComputeMetrics(curve model.EquityCurve, monthlyReturns []float64, investedMonths int, cfg Config) model.BacktestResult {
	n := len(monthlyReturns)
	res := model.BacktestResult{MonthCount: n}
	if len(curve) < 2 || n == 0 {
		return res
	}
	res.PeriodStart = curve[0].Date
	res.PeriodEnd = curve[len(curve)-1].Date

	// CAGR: (final/initial)^(12/n) - 1
	years := float64(n) / 12
	res.CAGR = math.Pow(curve.Final()/curve[0].Equity, 1/years) - 1

	// Max drawdown against the running peak; <= 0 by construction.
	peak := curve[0].Equity
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		if dd := p.Equity/peak - 1; dd < res.MaxDrawdown {
			res.MaxDrawdown = dd
		}
	}

	// Sharpe over the monthly cash rate.
	cashMonthly := cfg.CashYieldAnnual / 12
	mean := 0.0
	for _, r := range monthlyReturns {
		mean += r - cashMonthly
	}
	mean /= float64(n)
	if n > 1 {
		variance := 0.0
		for _, r := range monthlyReturns {
			d := (r - cashMonthly) - mean
			variance += d * d
		}
		variance /= float64(n - 1)
		if sd := math.Sqrt(variance); sd > 0 {
			res.SharpeRatio = mean / sd * math.Sqrt(12)
		}
	}

	res.TimeInvestedFraction = float64(investedMonths) / float64(n)
	return res
}

// Backtest runs the full pipeline for one symbol: signal generation,
// simulation of both curves, and metric reduction.
func Backtest(series model.PriceSeries, cfg Config) (*Result, error) {
	if err := model.ValidateSeries(series); err != nil {
		return nil, err
	}
	sig, err := GenerateSignals(series, cfg)
	if err != nil {
		return nil, err
	}
	strategyCurve, buyHoldCurve, err := Simulate(sig, cfg)
	if err != nil {
		return nil, err
	}

	n := len(sig.Observations)
	stratReturns := make([]float64, n)
	assetReturns := make([]float64, n)
	invested := 0
	cashMonthly := cfg.CashYieldAnnual / 12
	for i, o := range sig.Observations {
		assetReturns[i] = o.AssetReturn
		if o.Position == model.PositionInvested {
			stratReturns[i] = o.AssetReturn
			invested++
		} else {
			stratReturns[i] = cashMonthly
		}
	}

	return &Result{
		Symbol:        series.Symbol,
		Signals:       sig,
		StrategyCurve: strategyCurve,
		BuyHoldCurve:  buyHoldCurve,
		Strategy:      ComputeMetrics(strategyCurve, stratReturns, invested, cfg),
		BuyHold:       ComputeMetrics(buyHoldCurve, assetReturns, n, cfg),
	}, nil
}
