package recorder

import "github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/model"

// ScanSnapshot holds one distribution day scan: the full historical
// record list (including expired entries) and the derived condition.
type ScanSnapshot struct {
	Symbol     string
	Condition  model.MarketCondition
	Records    []model.DistributionDayRecord
	Indicators model.TechnicalIndicators
}

// BacktestSnapshot holds one Trend Guard comparison row.
type BacktestSnapshot struct {
	Row model.ComparisonRow
}

// Recorder persists analysis history for later inspection.
type Recorder interface {
	RecordScan(snap *ScanSnapshot) error
	RecordBacktest(snap *BacktestSnapshot) error
	Close() error
}
