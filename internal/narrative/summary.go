// Package narrative defines the boundary to the AI commentary
// collaborator: a flattened, stable numeric summary of an analysis plus
// an opaque, already-rendered chart image. The narrative call itself is
// external; this package only fixes the shape it consumes.
package narrative

import (
	"context"
	"time"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// MetricsSummary is one strategy's flattened performance numbers.
type MetricsSummary struct {
	CAGR        float64 `json:"cagr"`
	MaxDrawdown float64 `json:"max_drawdown"`
	SharpeRatio float64 `json:"sharpe_ratio"`
}

// DistributionSummary flattens a distribution day scan.
type DistributionSummary struct {
	TotalCount          int     `json:"total_count"`
	RecentCount         int     `json:"recent_count"`
	ExpiredCount        int     `json:"expired_count"`
	TotalWeightedChange float64 `json:"total_weighted_change"`
	TotalDecline        float64 `json:"total_decline"`
	AvgVolumeIncrease   float64 `json:"avg_volume_increase"`
	Verdict             string  `json:"verdict"`
}

// BacktestSummary flattens a Trend Guard run against its baseline.
type BacktestSummary struct {
	PeriodStart          string         `json:"period_start"`
	PeriodEnd            string         `json:"period_end"`
	Months               int            `json:"months"`
	TimeInvestedFraction float64        `json:"time_invested_fraction"`
	Strategy             MetricsSummary `json:"strategy"`
	BuyHold              MetricsSummary `json:"buy_hold"`
	DrawdownReduction    float64        `json:"drawdown_reduction"`
	CAGRDelta            float64        `json:"cagr_delta"`
	SharpeDelta          float64        `json:"sharpe_delta"`
}

// Summary is the full input handed to the narrative collaborator.
// Either section may be nil when that pipeline did not run.
type Summary struct {
	Symbol       string               `json:"symbol"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Distribution *DistributionSummary `json:"distribution,omitempty"`
	Backtest     *BacktestSummary     `json:"backtest,omitempty"`
}

// Analyst produces free-form commentary from a summary and a rendered
// chart. Implementations live outside the analytical core.
type Analyst interface {
	Analyze(ctx context.Context, summary Summary, chartPNG []byte) (string, error)
}

// NoopAnalyst returns no commentary; used when no AI backend is
// configured.
type NoopAnalyst struct{}

func (NoopAnalyst) Analyze(_ context.Context, _ Summary, _ []byte) (string, error) {
	return "", nil
}

// BuildDistributionSummary flattens a scan result. The decline total and
// average volume increase cover all detected days, mirroring the
// historical report; the counts honor expiration.
func BuildDistributionSummary(cond model.MarketCondition, records []model.DistributionDayRecord) *DistributionSummary {
	s := &DistributionSummary{
		TotalCount:          cond.TotalCount,
		RecentCount:         cond.RecentCount,
		TotalWeightedChange: cond.TotalWeightedChange,
		Verdict:             string(cond.Verdict),
	}
	for _, r := range records {
		if r.Expired {
			s.ExpiredCount++
		}
		s.TotalDecline += r.PercentChange
	}
	if len(records) > 0 {
		var volSum float64
		for _, r := range records {
			volSum += r.VolumeChange
		}
		s.AvgVolumeIncrease = volSum / float64(len(records))
	}
	return s
}

// BuildBacktestSummary flattens one comparison row.
func BuildBacktestSummary(row model.ComparisonRow) *BacktestSummary {
	return &BacktestSummary{
		PeriodStart:          row.Strategy.PeriodStart.Format("2006-01-02"),
		PeriodEnd:            row.Strategy.PeriodEnd.Format("2006-01-02"),
		Months:               row.Strategy.MonthCount,
		TimeInvestedFraction: row.Strategy.TimeInvestedFraction,
		Strategy: MetricsSummary{
			CAGR:        row.Strategy.CAGR,
			MaxDrawdown: row.Strategy.MaxDrawdown,
			SharpeRatio: row.Strategy.SharpeRatio,
		},
		BuyHold: MetricsSummary{
			CAGR:        row.BuyHold.CAGR,
			MaxDrawdown: row.BuyHold.MaxDrawdown,
			SharpeRatio: row.BuyHold.SharpeRatio,
		},
		DrawdownReduction: row.DrawdownReduction,
		CAGRDelta:         row.CAGRDelta,
		SharpeDelta:       row.SharpeDelta,
	}
}
