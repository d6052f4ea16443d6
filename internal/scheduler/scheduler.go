package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/calculator"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/collector"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/config"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/distribution"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/narrative"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/notifier"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/recorder"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/trendguard"
)

// Scheduler manages the cron tasks: the daily distribution day scan and
// the weekly Trend Guard comparison.
type Scheduler struct {
	Cron      *cron.Cron
	Cfg       *config.Config
	Collector *collector.Collector
	Detector  *distribution.Detector
	Assessor  *distribution.Assessor
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Analyst   narrative.Analyst
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, cfg *config.Config, col *collector.Collector,
	det *distribution.Detector, ass *distribution.Assessor,
	tn *notifier.TelegramNotifier, rec recorder.Recorder, an narrative.Analyst) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Cfg:       cfg,
		Collector: col,
		Detector:  det,
		Assessor:  ass,
		Notifier:  tn,
		Recorder:  rec,
		Analyst:   an,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily scan and the weekly comparison.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.scanTask); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.comparisonTask); err != nil {
		return fmt.Errorf("register weekly comparison: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the daily scan immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	symbol := s.Cfg.DataSource.Symbol
	log.Printf("[INFO] running distribution day scan for %s", symbol)

	series, err := s.Collector.Collect(symbol, s.Cfg.DataSource.HistoryDays)
	if err != nil {
		log.Printf("[ERROR] scan collect: %v", err)
		s.trySend(fmt.Sprintf("❌ scan failed for %s: data collection error", symbol))
		return
	}

	records, err := s.Detector.Detect(series)
	if err != nil {
		log.Printf("[ERROR] detect: %v", err)
		s.trySend(fmt.Sprintf("❌ scan failed for %s: %v", symbol, err))
		return
	}
	asOf := series.LastBar().Date
	s.Detector.ExpireRecords(records, series, asOf)
	cond := s.Assessor.Assess(records, series, asOf)

	ind, err := calculator.ComputeIndicators(series, s.Cfg.IndicatorConfig())
	if err != nil {
		log.Printf("[ERROR] compute indicators: %v", err)
		s.trySend(fmt.Sprintf("❌ scan failed for %s: %v", symbol, err))
		return
	}
	analysis := calculator.AnalyzeTrend(ind)

	commentary := ""
	summary := narrative.Summary{
		Symbol:       symbol,
		GeneratedAt:  time.Now(),
		Distribution: narrative.BuildDistributionSummary(cond, records),
	}
	if text, err := s.Analyst.Analyze(s.Ctx, summary, nil); err != nil {
		log.Printf("[WARN] narrative commentary failed: %v", err)
	} else {
		commentary = text
	}

	s.trySend(notifier.FormatScanReport(symbol, cond, records, ind, analysis, commentary))

	if err := s.Recorder.RecordScan(&recorder.ScanSnapshot{
		Symbol:     symbol,
		Condition:  cond,
		Records:    records,
		Indicators: ind,
	}); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}
}

func (s *Scheduler) comparisonTask() {
	symbols := s.Cfg.TrendGuard.Symbols
	log.Printf("[INFO] running trend guard comparison for %v", symbols)

	series, errs := s.Collector.CollectAll(symbols, s.Cfg.TrendGuard.HistoryDays)
	for sym, err := range errs {
		log.Printf("[WARN] collect %s: %v", sym, err)
	}

	rows := trendguard.Compare(symbols, series, s.Cfg.TrendGuardConfig())
	s.trySend(notifier.FormatComparisonTable(rows))

	for _, row := range rows {
		if err := s.Recorder.RecordBacktest(&recorder.BacktestSnapshot{Row: row}); err != nil {
			log.Printf("[ERROR] record backtest %s: %v", row.Symbol, err)
		}
	}
}

// backtestOne runs a single-symbol backtest and returns the detailed
// report.
func (s *Scheduler) backtestOne(symbol string) string {
	series, errs := s.Collector.CollectAll([]string{symbol}, s.Cfg.TrendGuard.HistoryDays)
	for sym, err := range errs {
		log.Printf("[WARN] collect %s: %v", sym, err)
	}
	rows := trendguard.Compare([]string{symbol}, series, s.Cfg.TrendGuardConfig())
	row := rows[0]
	if err := s.Recorder.RecordBacktest(&recorder.BacktestSnapshot{Row: row}); err != nil {
		log.Printf("[ERROR] record backtest %s: %v", row.Symbol, err)
	}
	return notifier.FormatBacktestReport(row)
}

// HandleCommand processes a user command and returns a reply. Commands
// that send their own report return an empty string.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/scan":
		s.scanTask()
		return ""
	case "/compare":
		s.comparisonTask()
		return ""
	case "/backtest":
		symbol := s.Cfg.DataSource.Symbol
		if len(fields) > 1 {
			symbol = strings.ToUpper(fields[1])
		}
		return s.backtestOne(symbol)
	default:
		return "Commands:\n" +
			"• /scan — run the distribution day scan now\n" +
			"• /compare — run the trend guard comparison now\n" +
			"• /backtest [symbol] — detailed backtest for one symbol"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
