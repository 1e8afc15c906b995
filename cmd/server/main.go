package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stockpulse/internal/config"
	"stockpulse/internal/history"
	"stockpulse/internal/market"
	"stockpulse/internal/news"
	"stockpulse/internal/notifier"
	"stockpulse/internal/pipeline"
	"stockpulse/internal/scheduler"
	"stockpulse/internal/sentiment"
	"stockpulse/internal/server"
	"stockpulse/internal/store"
	"stockpulse/internal/watchlist"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockPulse starting...")

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

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Resolution + fetch
	yahoo := market.NewYahooClient(cfg.Proxy)
	resolver := market.NewResolver(yahoo, yahoo)
	fetcher := history.NewFetcher(history.NewRodFactory(!cfg.Browser.Headful))

	// Sentiment
	scorer, err := sentiment.NewGeminiScorer(ctx, cfg.Gemini.APIKey, sentiment.WithModel(cfg.Gemini.Model))
	if err != nil {
		log.Fatalf("[FATAL] init gemini scorer: %v", err)
	}

	// Store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	analyzer := &pipeline.Analyzer{
		Resolver:     resolver,
		Fetcher:      fetcher,
		News:         news.NewClient(),
		Scorer:       scorer,
		Store:        st,
		LookbackDays: cfg.Fetch.LookbackDays,
	}

	// Watchlist
	wl, err := watchlist.NewManager(cfg.Watchlist.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init watchlist: %v", err)
	}

	// Telegram notifier (optional)
	var alerts notifier.Notifier
	var tg *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tg = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, cfg.Telegram.MaxRetries)
		alerts = tg
	}

	// Scheduler
	sched := scheduler.NewScheduler(ctx, analyzer, wl, alerts)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tg != nil {
		go tg.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing watchlist now")
		go sched.RunRefreshNow()
	}

	// HTTP API
	api := server.New(analyzer, wl, st)
	httpServer := &http.Server{Addr: cfg.Server.Addr, Handler: api.Handler()}
	go func() {
		log.Printf("[INFO] HTTP API listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	httpServer.Shutdown(context.Background())
	log.Println("[INFO] StockPulse stopped")
}
