package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/calculator"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/distribution"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/trendguard"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Symbol      string `yaml:"symbol"`       // symbol for the distribution scan
		HistoryDays int    `yaml:"history_days"` // daily sessions fetched for the scan
	} `yaml:"data_source"`
	Distribution struct {
		ExpirationSessions   int     `yaml:"expiration_sessions"`
		RecoveryThreshold    float64 `yaml:"recovery_threshold"`
		ModerateCount        int     `yaml:"moderate_count"`
		HighCount            int     `yaml:"high_count"`
		RecentHighCount      int     `yaml:"recent_high_count"`
		RecentWindowSessions int     `yaml:"recent_window_sessions"`
	} `yaml:"distribution"`
	Indicators struct {
		MA50Window  int `yaml:"ma50_window"`
		MA200Window int `yaml:"ma200_window"`
		RSIPeriod   int `yaml:"rsi_period"`
	} `yaml:"indicators"`
	TrendGuard struct {
		Symbols         []string `yaml:"symbols"`
		SMAMonths       int      `yaml:"sma_months"`
		CashYieldAnnual float64  `yaml:"cash_yield"`
		InitialEquity   float64  `yaml:"initial_equity"`
		HistoryDays     int      `yaml:"history_days"` // daily sessions fetched per backtest symbol
	} `yaml:"trend_guard"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`  // distribution scan
		WeeklyCron string `yaml:"weekly_cron"` // trend guard comparison
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("ANALYZER_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("TREND_GUARD_SYMBOLS"); v != "" {
		cfg.TrendGuard.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CASH_YIELD"); v != "" {
		if y, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.TrendGuard.CashYieldAnnual = y
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func splitSymbols(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.DataSource.Symbol == "" {
		c.DataSource.Symbol = "^GSPC"
	}
	if c.DataSource.HistoryDays == 0 {
		c.DataSource.HistoryDays = 400 // room for the 200-day average
	}
	d := &c.Distribution
	if d.ExpirationSessions == 0 {
		d.ExpirationSessions = 25
	}
	if d.RecoveryThreshold == 0 {
		d.RecoveryThreshold = 1.05
	}
	if d.ModerateCount == 0 {
		d.ModerateCount = 5
	}
	if d.HighCount == 0 {
		d.HighCount = 8
	}
	if d.RecentHighCount == 0 {
		d.RecentHighCount = 4
	}
	if d.RecentWindowSessions == 0 {
		d.RecentWindowSessions = 10
	}
	i := &c.Indicators
	if i.MA50Window == 0 {
		i.MA50Window = 50
	}
	if i.MA200Window == 0 {
		i.MA200Window = 200
	}
	if i.RSIPeriod == 0 {
		i.RSIPeriod = 14
	}
	t := &c.TrendGuard
	if len(t.Symbols) == 0 {
		t.Symbols = []string{"SPY", "QQQ", "EEM"}
	}
	if t.SMAMonths == 0 {
		t.SMAMonths = 12
	}
	if t.CashYieldAnnual == 0 {
		t.CashYieldAnnual = 0.03
	}
	if t.InitialEquity == 0 {
		t.InitialEquity = 1.0
	}
	if t.HistoryDays == 0 {
		t.HistoryDays = 5500 // ~22 years of sessions
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 30 22 * * 1-5"
	}
	if c.Schedule.WeeklyCron == "" {
		c.Schedule.WeeklyCron = "0 0 8 * * 6"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/analyzer.db"
	}
}

// DetectorConfig maps the distribution section onto the detector.
func (c *Config) DetectorConfig() distribution.DetectorConfig {
	return distribution.DetectorConfig{
		ExpirationSessions: c.Distribution.ExpirationSessions,
		RecoveryThreshold:  c.Distribution.RecoveryThreshold,
	}
}

// AssessorConfig maps the distribution section onto the assessor.
func (c *Config) AssessorConfig() distribution.AssessorConfig {
	return distribution.AssessorConfig{
		ModerateCount:        c.Distribution.ModerateCount,
		HighCount:            c.Distribution.HighCount,
		RecentHighCount:      c.Distribution.RecentHighCount,
		RecentWindowSessions: c.Distribution.RecentWindowSessions,
	}
}

// IndicatorConfig maps the indicators section onto the calculator.
func (c *Config) IndicatorConfig() calculator.IndicatorConfig {
	return calculator.IndicatorConfig{
		MA50Window:  c.Indicators.MA50Window,
		MA200Window: c.Indicators.MA200Window,
		RSIPeriod:   c.Indicators.RSIPeriod,
	}
}

// TrendGuardConfig maps the trend_guard section onto the backtest
// engine.
func (c *Config) TrendGuardConfig() trendguard.Config {
	return trendguard.Config{
		SMAMonths:       c.TrendGuard.SMAMonths,
		CashYieldAnnual: c.TrendGuard.CashYieldAnnual,
		InitialEquity:   c.TrendGuard.InitialEquity,
	}
}

// Validate checks required fields and every analytical threshold.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.DataSource.HistoryDays < 2 {
		return fmt.Errorf("data_source.history_days must be at least 2")
	}
	if err := c.DetectorConfig().Validate(); err != nil {
		return fmt.Errorf("distribution: %w", err)
	}
	if err := c.AssessorConfig().Validate(); err != nil {
		return fmt.Errorf("distribution: %w", err)
	}
	if err := c.IndicatorConfig().Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if err := c.TrendGuardConfig().Validate(); err != nil {
		return fmt.Errorf("trend_guard: %w", err)
	}
	if len(c.TrendGuard.Symbols) == 0 {
		return fmt.Errorf("trend_guard.symbols must not be empty")
	}
	return nil
}
