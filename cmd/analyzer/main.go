package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/collector"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/config"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/distribution"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/narrative"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/notifier"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/recorder"
	"github.com/brianlaughlin/sp500-distribution-days-analyzer/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] distribution days analyzer starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher and collector
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher)

	// Init analytical pipeline
	det, err := distribution.NewDetector(cfg.DetectorConfig())
	if err != nil {
		log.Fatalf("[FATAL] init detector: %v", err)
	}
	ass, err := distribution.NewAssessor(cfg.AssessorConfig())
	if err != nil {
		log.Fatalf("[FATAL] init assessor: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NoopRecorder{}
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NoopRecorder{}
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, cfg, col, det, ass, tn, rec, narrative.NoopAnalyst{})
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] analyzer is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] analyzer stopped")
}
