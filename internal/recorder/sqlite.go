package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the analyzer writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_summaries (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp             INTEGER NOT NULL,
			symbol                TEXT NOT NULL,
			total_count           INTEGER,
			recent_count          INTEGER,
			total_weighted_change REAL,
			verdict               TEXT,
			last_close            REAL,
			ma50                  REAL,
			ma200                 REAL,
			rsi                   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_ts ON scan_summaries(timestamp)`,

		`CREATE TABLE IF NOT EXISTS distribution_days (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			date            TEXT NOT NULL,
			close           REAL,
			volume          INTEGER,
			percent_change  REAL,
			volume_change   REAL,
			weighted_change REAL,
			expired         INTEGER,
			expiration      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_days_ts ON distribution_days(timestamp)`,

		`CREATE TABLE IF NOT EXISTS backtest_results (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp           INTEGER NOT NULL,
			symbol              TEXT NOT NULL,
			period_start        TEXT,
			period_end          TEXT,
			months              INTEGER,
			strat_cagr          REAL,
			strat_max_dd        REAL,
			strat_sharpe        REAL,
			time_invested       REAL,
			bh_cagr             REAL,
			bh_max_dd           REAL,
			bh_sharpe           REAL,
			dd_reduction        REAL,
			cagr_delta          REAL,
			sharpe_delta        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_ts ON backtest_results(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan writes the scan summary and one row per distribution day.
func (r *SQLiteRecorder) RecordScan(snap *ScanSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	cond := snap.Condition
	ind := snap.Indicators

	_, err := r.db.Exec(`INSERT INTO scan_summaries
		(timestamp, symbol, total_count, recent_count, total_weighted_change, verdict,
		 last_close, ma50, ma200, rsi)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		now, snap.Symbol, cond.TotalCount, cond.RecentCount, cond.TotalWeightedChange,
		string(cond.Verdict), ind.LastClose, ind.MA50, ind.MA200, ind.RSI,
	)
	if err != nil {
		return err
	}

	for _, rec := range snap.Records {
		expired := 0
		if rec.Expired {
			expired = 1
		}
		if _, err := r.db.Exec(`INSERT INTO distribution_days
			(timestamp, symbol, date, close, volume, percent_change, volume_change,
			 weighted_change, expired, expiration)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			now, snap.Symbol, rec.Date.Format("2006-01-02"), rec.Close, rec.Volume,
			rec.PercentChange, rec.VolumeChange, rec.WeightedChange,
			expired, string(rec.ExpirationReason),
		); err != nil {
			return err
		}
	}
	return nil
}

// RecordBacktest writes one comparison row. Failed rows are skipped; the
// failure is already logged upstream.
func (r *SQLiteRecorder) RecordBacktest(snap *BacktestSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := snap.Row
	if row.Err != nil {
		return nil
	}

	_, err := r.db.Exec(`INSERT INTO backtest_results
		(timestamp, symbol, period_start, period_end, months,
		 strat_cagr, strat_max_dd, strat_sharpe, time_invested,
		 bh_cagr, bh_max_dd, bh_sharpe,
		 dd_reduction, cagr_delta, sharpe_delta)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), row.Symbol,
		row.Strategy.PeriodStart.Format("2006-01-02"), row.Strategy.PeriodEnd.Format("2006-01-02"),
		row.Strategy.MonthCount,
		row.Strategy.CAGR, row.Strategy.MaxDrawdown, row.Strategy.SharpeRatio,
		row.Strategy.TimeInvestedFraction,
		row.BuyHold.CAGR, row.BuyHold.MaxDrawdown, row.BuyHold.SharpeRatio,
		row.DrawdownReduction, row.CAGRDelta, row.SharpeDelta,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
