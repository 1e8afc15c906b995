package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"stockpulse/internal/notifier"
	"stockpulse/internal/pipeline"
	"stockpulse/internal/watchlist"
)

// Scheduler re-analyzes the watchlist on a cron schedule and pushes alerts
// when an entry's suggested action changes.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  *pipeline.Analyzer
	Watchlist *watchlist.Manager
	Notifier  notifier.Notifier
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. tn may be nil when no chat is
// configured; alerts are then dropped.
func NewScheduler(ctx context.Context, analyzer *pipeline.Analyzer, wl *watchlist.Manager, tn notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  analyzer,
		Watchlist: wl,
		Notifier:  tn,
		Ctx:       ctx,
	}
}

// Register registers the periodic refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
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

// RunRefreshNow executes the refresh task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	entries := s.Watchlist.Entries()
	log.Printf("[INFO] refreshing watchlist (%d entries)", len(entries))

	for _, entry := range entries {
		report, err := s.Analyzer.Analyze(s.Ctx, entry.Identifier, entry.Country, entry.IsTicker)
		if err != nil {
			log.Printf("[ERROR] refresh %s: %v", entry.Identifier, err)
			continue
		}
		if changed := s.Watchlist.RecordResult(entry.Identifier, report); changed {
			s.trySend(notifier.FormatActionChange(entry, report))
		}
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/analyze":
		if len(fields) < 2 {
			return "usage: /analyze TICKER [COUNTRY]"
		}
		country := "US"
		if len(fields) > 2 {
			country = strings.Join(fields[2:], " ")
		}
		report, err := s.Analyzer.Analyze(s.Ctx, fields[1], country, true)
		if err != nil {
			return fmt.Sprintf("analysis failed: %v", err)
		}
		return notifier.FormatAnalysisReport(report)
	case "/watchlist":
		entries := s.Watchlist.Entries()
		if len(entries) == 0 {
			return "watchlist is empty"
		}
		var b strings.Builder
		b.WriteString("👁 <b>Watchlist</b>\n")
		for _, e := range entries {
			b.WriteString(fmt.Sprintf("  %s (%s): %s %+.3f\n", e.Identifier, e.Country, e.LastAction, e.LastScore))
		}
		return b.String()
	case "/refresh":
		go s.refreshTask()
		return "refresh started"
	default:
		return "commands:\n• /analyze TICKER [COUNTRY]\n• /watchlist\n• /refresh"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
