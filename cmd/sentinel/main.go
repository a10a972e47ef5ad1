package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoinSentinel/internal/api"
	"CoinSentinel/internal/collector"
	"CoinSentinel/internal/config"
	"CoinSentinel/internal/holdings"
	"CoinSentinel/internal/logger"
	"CoinSentinel/internal/notifier"
	"CoinSentinel/internal/recorder"
	"CoinSentinel/internal/scheduler"
	"CoinSentinel/internal/service"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString("config validation: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		os.Stderr.WriteString("init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	log.Info("CoinSentinel starting...")

	// Init fetcher
	var fetcher collector.Fetcher
	if os.Getenv("USE_MOCK_DATA") == "true" {
		fetcher = &collector.MockFetcher{Price: 50000}
	} else {
		fetcher = collector.NewCoinGeckoFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, log)
	}
	log.WithField("source", fetcher.Name()).Info("data source ready")

	// Init collector
	col := collector.NewCollector(
		fetcher,
		cfg.DataSource.ChartDays,
		time.Duration(cfg.DataSource.CacheTTLMinutes)*time.Minute,
		time.Duration(cfg.DataSource.RequestDelaySeconds)*time.Second,
		log,
	)

	// Init holdings ledger
	hm, err := holdings.NewManager(cfg.Holdings.FilePath, log)
	if err != nil {
		log.WithError(err).Fatal("init holdings manager")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	svc := service.NewAnalysisService(hm, col, log)

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, svc, tn, rec, log)
	if err := sched.RegisterAll(cfg.Schedule.PortfolioCron, cfg.Schedule.SignalCron); err != nil {
		log.WithError(err).Fatal("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	}

	// Start API server
	srv := api.NewServer(svc, log)
	go func() {
		if err := srv.Start(cfg.API.ListenAddr); err != nil {
			log.WithError(err).Fatal("api server")
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, executing portfolio scan now")
		go sched.RunScanNow()
	}

	log.Info("CoinSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	if err := srv.Stop(context.Background()); err != nil {
		log.WithError(err).Error("api shutdown")
	}
	cancel()
	log.Info("CoinSentinel stopped")
}
