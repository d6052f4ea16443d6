package trendguard

import (
	"errors"
	"math"
	"testing"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

func TestCompare_RowsKeepInputOrder(t *testing.T) {
	up := make([]float64, 30)
	p := 100.0
	for i := range up {
		up[i] = p
		p *= 1.01
	}
	symbols := []string{"SPY", "QQQ", "IWM"}
	series := map[string]model.PriceSeries{
		"SPY": monthlySeries("SPY", up),
		"QQQ": monthlySeries("QQQ", up),
		"IWM": monthlySeries("IWM", up),
	}
	rows := Compare(symbols, series, DefaultConfig())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, sym := range symbols {
		if rows[i].Symbol != sym {
			t.Errorf("row %d: got %s want %s", i, rows[i].Symbol, sym)
		}
		if rows[i].Err != nil {
			t.Errorf("row %s: unexpected error %v", sym, rows[i].Err)
		}
	}
}

func TestCompare_IsolatesFailingSymbol(t *testing.T) {
	up := make([]float64, 30)
	p := 100.0
	for i := range up {
		up[i] = p
		p *= 1.01
	}
	series := map[string]model.PriceSeries{
		"SPY": monthlySeries("SPY", up),
		"NEW": monthlySeries("NEW", []float64{100, 101, 102}), // too short
	}
	rows := Compare([]string{"SPY", "NEW", "GONE"}, series, DefaultConfig())

	if rows[0].Err != nil {
		t.Errorf("SPY should succeed: %v", rows[0].Err)
	}
	if rows[1].Err == nil || !errors.Is(rows[1].Err, model.ErrInsufficientHistory) {
		t.Errorf("NEW should fail with insufficient history, got %v", rows[1].Err)
	}
	if rows[2].Err == nil {
		t.Error("GONE has no series and should carry an error")
	}
}

func TestCompare_Deltas(t *testing.T) {
	// A boom-bust-boom shape forces the strategy to sidestep part of the
	// decline, so its drawdown magnitude should be smaller than
	// buy-and-hold's and the reduction positive.
	var closes []float64
	p := 100.0
	for i := 0; i < 24; i++ { // two years up
		closes = append(closes, p)
		p *= 1.02
	}
	for i := 0; i < 18; i++ { // year and a half of bleeding
		closes = append(closes, p)
		p *= 0.95
	}
	for i := 0; i < 24; i++ { // recovery
		closes = append(closes, p)
		p *= 1.02
	}
	series := map[string]model.PriceSeries{"EEM": monthlySeries("EEM", closes)}
	rows := Compare([]string{"EEM"}, series, DefaultConfig())
	row := rows[0]
	if row.Err != nil {
		t.Fatalf("backtest failed: %v", row.Err)
	}

	if row.BuyHold.MaxDrawdown >= 0 {
		t.Fatalf("buy-hold must have a drawdown in a bust, got %.4f", row.BuyHold.MaxDrawdown)
	}
	if row.Strategy.MaxDrawdown < row.BuyHold.MaxDrawdown {
		t.Errorf("strategy drawdown %.4f should not be deeper than buy-hold %.4f",
			row.Strategy.MaxDrawdown, row.BuyHold.MaxDrawdown)
	}
	wantDD := 1 - row.Strategy.MaxDrawdown/row.BuyHold.MaxDrawdown
	if math.Abs(row.DrawdownReduction-wantDD) > 1e-12 {
		t.Errorf("drawdown reduction: got %.6f want %.6f", row.DrawdownReduction, wantDD)
	}
	if row.DrawdownReduction <= 0 {
		t.Errorf("expected a positive drawdown reduction, got %.4f", row.DrawdownReduction)
	}
	if math.Abs(row.CAGRDelta-(row.Strategy.CAGR-row.BuyHold.CAGR)) > 1e-12 {
		t.Errorf("cagr delta mismatch")
	}
	if math.Abs(row.SharpeDelta-(row.Strategy.SharpeRatio-row.BuyHold.SharpeRatio)) > 1e-12 {
		t.Errorf("sharpe delta mismatch")
	}
	if row.Strategy.TimeInvestedFraction <= 0 || row.Strategy.TimeInvestedFraction >= 1 {
		t.Errorf("strategy should be partly invested, got %.4f", row.Strategy.TimeInvestedFraction)
	}
}
