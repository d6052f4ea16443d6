package calculator

import (
	"fmt"
	"strings"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"
)

// RSI bands for the overbought/oversold commentary.
const (
	rsiOverbought = 70.0
	rsiOversold   = 30.0
)

// AnalyzeTrend renders the moving-average and RSI read as plain
// sentences, one per line. Unavailable indicators are named as such.
func AnalyzeTrend(ind model.TechnicalIndicators) string {
	var lines []string

	switch {
	case !ind.HasMA50 || !ind.HasMA200:
		lines = append(lines, "Moving average trend unavailable: not enough history for the 50/200-day averages.")
	case ind.LastClose > ind.MA50 && ind.MA50 > ind.MA200:
		lines = append(lines, "Price is above both 50-day and 200-day MAs, indicating a strong uptrend.")
	case ind.LastClose < ind.MA50 && ind.MA50 < ind.MA200:
		lines = append(lines, "Price is below both 50-day and 200-day MAs, indicating a strong downtrend.")
	case ind.MA50 > ind.MA200:
		lines = append(lines, "50-day MA is above 200-day MA, suggesting a bullish trend.")
	default:
		lines = append(lines, "50-day MA is below 200-day MA, suggesting a bearish trend.")
	}

	switch {
	case !ind.HasRSI:
		lines = append(lines, "RSI unavailable: not enough history.")
	case ind.RSI > rsiOverbought:
		lines = append(lines, fmt.Sprintf("RSI is overbought at %.2f. Consider potential exit or correction.", ind.RSI))
	case ind.RSI < rsiOversold:
		lines = append(lines, fmt.Sprintf("RSI is oversold at %.2f. Consider potential entry or bounce.", ind.RSI))
	default:
		lines = append(lines, fmt.Sprintf("RSI is neutral at %.2f.", ind.RSI))
	}

	return strings.Join(lines, "\n")
}
