package narrative

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

func TestBuildDistributionSummary(t *testing.T) {
	records := []model.DistributionDayRecord{
		{PercentChange: -0.01, VolumeChange: 0.10, Expired: true, ExpirationReason: model.ExpirationTime},
		{PercentChange: -0.02, VolumeChange: 0.20},
		{PercentChange: -0.03, VolumeChange: 0.30},
	}
	cond := model.MarketCondition{
		TotalCount:          2,
		RecentCount:         1,
		TotalWeightedChange: -0.06,
		Verdict:             model.VerdictModeratePressure,
	}
	s := BuildDistributionSummary(cond, records)

	if s.TotalCount != 2 || s.RecentCount != 1 {
		t.Errorf("counts: got total=%d recent=%d", s.TotalCount, s.RecentCount)
	}
	if s.ExpiredCount != 1 {
		t.Errorf("expired count: got %d want 1", s.ExpiredCount)
	}
	if math.Abs(s.TotalDecline-(-0.06)) > 1e-12 {
		t.Errorf("total decline: got %.4f want -0.06", s.TotalDecline)
	}
	if math.Abs(s.AvgVolumeIncrease-0.20) > 1e-12 {
		t.Errorf("avg volume increase: got %.4f want 0.20", s.AvgVolumeIncrease)
	}
	if s.Verdict != "MODERATE_PRESSURE" {
		t.Errorf("verdict: got %s", s.Verdict)
	}
}

func TestSummary_StableJSONShape(t *testing.T) {
	start := time.Date(2005, 1, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	row := model.ComparisonRow{
		Symbol: "EEM",
		Strategy: model.BacktestResult{
			CAGR: 0.08, MaxDrawdown: -0.25, SharpeRatio: 0.7,
			TimeInvestedFraction: 0.72, PeriodStart: start, PeriodEnd: end, MonthCount: 254,
		},
		BuyHold: model.BacktestResult{
			CAGR: 0.09, MaxDrawdown: -0.60, SharpeRatio: 0.5,
			TimeInvestedFraction: 1, PeriodStart: start, PeriodEnd: end, MonthCount: 254,
		},
		DrawdownReduction: 0.58,
		CAGRDelta:         -0.01,
		SharpeDelta:       0.2,
	}
	sum := Summary{
		Symbol:      "EEM",
		GeneratedAt: end,
		Backtest:    BuildBacktestSummary(row),
	}
	data, err := json.Marshal(sum)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	// The collaborator contract depends on these exact field names.
	for _, key := range []string{
		`"symbol"`, `"generated_at"`, `"backtest"`, `"period_start"`, `"period_end"`,
		`"months"`, `"time_invested_fraction"`, `"strategy"`, `"buy_hold"`,
		`"cagr"`, `"max_drawdown"`, `"sharpe_ratio"`,
		`"drawdown_reduction"`, `"cagr_delta"`, `"sharpe_delta"`,
	} {
		if !strings.Contains(body, key) {
			t.Errorf("summary JSON missing %s: %s", key, body)
		}
	}
	if strings.Contains(body, `"distribution"`) {
		t.Error("nil distribution section must be omitted")
	}
	if !strings.Contains(body, `"period_start":"2005-01-31"`) {
		t.Errorf("period dates must be YYYY-MM-DD: %s", body)
	}
}

func TestNoopAnalyst(t *testing.T) {
	text, err := NoopAnalyst{}.Analyze(context.Background(), Summary{Symbol: "SPY"}, nil)
	if err != nil {
		t.Fatalf("noop analyze: %v", err)
	}
	if text != "" {
		t.Errorf("noop should return empty commentary, got %q", text)
	}
}
