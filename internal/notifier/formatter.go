package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

func verdictBadge(v model.Verdict) string {
	switch v {
	case model.VerdictHealthy:
		return "🟢 HEALTHY"
	case model.VerdictModeratePressure:
		return "🟡 MODERATE PRESSURE"
	case model.VerdictHighPressure:
		return "🔴 HIGH PRESSURE"
	default:
		return string(v)
	}
}

// FormatScanReport formats a distribution day scan into a Telegram
// message. The analysis argument is the moving-average/RSI commentary;
// commentary is optional model-generated narrative.
func FormatScanReport(symbol string, cond model.MarketCondition,
	records []model.DistributionDayRecord, ind model.TechnicalIndicators,
	analysis, commentary string) string {

	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Distribution Day Scan</b> | %s | %s\n\n",
		symbol, cond.AsOf.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Verdict: <b>%s</b>\n", verdictBadge(cond.Verdict)))
	b.WriteString(fmt.Sprintf("Active distribution days: %d (recent: %d)\n", cond.TotalCount, cond.RecentCount))
	b.WriteString(fmt.Sprintf("Total weighted decline: %.2f%%\n\n", cond.TotalWeightedChange*100))

	active := activeRecords(records)
	if len(active) > 0 {
		b.WriteString("📉 <b>Active distribution days:</b>\n")
		for _, r := range active {
			b.WriteString(fmt.Sprintf("  %s: close %.2f, volume %d, change %.2f%% (weighted %.2f%%)\n",
				r.Date.Format("2006-01-02"), r.Close, r.Volume,
				r.PercentChange*100, r.WeightedChange*100))
		}
		b.WriteString(fmt.Sprintf("  Average volume increase: %.1f%%\n\n", avgVolumeIncrease(active)*100))
	} else {
		b.WriteString("No active distribution days.\n\n")
	}

	if expired := len(records) - len(active); expired > 0 {
		b.WriteString(fmt.Sprintf("Expired this period: %d (time limit or 5%% price recovery)\n\n", expired))
	}

	b.WriteString("📈 <b>Technicals:</b>\n")
	b.WriteString(fmt.Sprintf("  Last close: %.2f\n", ind.LastClose))
	if ind.HasMA50 {
		b.WriteString(fmt.Sprintf("  MA50: %.2f\n", ind.MA50))
	}
	if ind.HasMA200 {
		b.WriteString(fmt.Sprintf("  MA200: %.2f\n", ind.MA200))
	}
	if ind.HasRSI {
		b.WriteString(fmt.Sprintf("  RSI(14): %.1f\n", ind.RSI))
	}
	if analysis != "" {
		b.WriteString("\n" + analysis + "\n")
	}
	if commentary != "" {
		b.WriteString("\n💬 " + commentary + "\n")
	}
	return b.String()
}

func activeRecords(records []model.DistributionDayRecord) []model.DistributionDayRecord {
	var out []model.DistributionDayRecord
	for _, r := range records {
		if !r.Expired {
			out = append(out, r)
		}
	}
	return out
}

func avgVolumeIncrease(records []model.DistributionDayRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range records {
		sum += r.VolumeChange
	}
	return sum / float64(len(records))
}

// FormatBacktestReport formats one symbol's trend-following backtest
// against buy-and-hold.
func FormatBacktestReport(row model.ComparisonRow) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🛡 <b>Trend Guard Backtest</b> | %s\n\n", row.Symbol))
	if row.Err != nil {
		b.WriteString(fmt.Sprintf("⚠️ backtest failed: %v\n", row.Err))
		return b.String()
	}

	s, h := row.Strategy, row.BuyHold
	b.WriteString(fmt.Sprintf("Period: %s → %s (%d months)\n\n",
		s.PeriodStart.Format("2006-01-02"), s.PeriodEnd.Format("2006-01-02"), s.MonthCount))

	b.WriteString("<b>Trend Guard:</b>\n")
	b.WriteString(formatMetrics(s))
	b.WriteString("\n<b>Buy &amp; Hold:</b>\n")
	b.WriteString(formatMetrics(h))

	b.WriteString(fmt.Sprintf("\nDrawdown reduction: %.1f%%\n", row.DrawdownReduction*100))
	b.WriteString(fmt.Sprintf("CAGR delta: %+.2f%% | Sharpe delta: %+.2f\n", row.CAGRDelta*100, row.SharpeDelta))
	return b.String()
}

func formatMetrics(r model.BacktestResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  CAGR: %.2f%%\n", r.CAGR*100))
	b.WriteString(fmt.Sprintf("  Max drawdown: %.1f%%\n", r.MaxDrawdown*100))
	b.WriteString(fmt.Sprintf("  Sharpe: %.2f\n", r.SharpeRatio))
	b.WriteString(fmt.Sprintf("  Time invested: %.0f%%\n", r.TimeInvestedFraction*100))
	return b.String()
}

// FormatComparisonTable formats the multi-symbol comparison as a
// compact table.
func FormatComparisonTable(rows []model.ComparisonRow) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🛡 <b>Trend Guard Comparison</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString("<pre>")
	b.WriteString(fmt.Sprintf("%-6s %8s %8s %7s %6s\n", "SYM", "CAGR", "B&H", "MaxDD", "DDred"))
	for _, row := range rows {
		if row.Err != nil {
			b.WriteString(fmt.Sprintf("%-6s %s\n", row.Symbol, "error"))
			continue
		}
		b.WriteString(fmt.Sprintf("%-6s %7.2f%% %7.2f%% %6.1f%% %5.0f%%\n",
			row.Symbol,
			row.Strategy.CAGR*100, row.BuyHold.CAGR*100,
			row.Strategy.MaxDrawdown*100, row.DrawdownReduction*100))
	}
	b.WriteString("</pre>\n")

	for _, row := range rows {
		if row.Err != nil {
			b.WriteString(fmt.Sprintf("\n⚠️ %s: %v", row.Symbol, row.Err))
		}
	}
	return b.String()
}
