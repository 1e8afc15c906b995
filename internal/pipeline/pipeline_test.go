package pipeline

import (
	"context"
	"errors"
	"testing"

	"stockpulse/internal/history"
	"stockpulse/internal/market"
	"stockpulse/internal/model"
	"stockpulse/internal/store"
)

type stubSession struct {
	rows [][]string
	err  error
}

func (s *stubSession) Navigate(string) error           { return s.err }
func (s *stubSession) Rows(string) ([][]string, error) { return s.rows, nil }
func (s *stubSession) Close() error                    { return nil }

type stubFactory struct {
	session *stubSession
}

func (f *stubFactory) NewSession(context.Context) (history.Session, error) {
	return f.session, nil
}

type failingScorer struct{}

func (failingScorer) Score(context.Context, string, []model.NewsItem) (*model.SentimentScore, error) {
	return nil, errors.New("quota exceeded")
}

func newAnalyzer(session *stubSession) *Analyzer {
	return &Analyzer{
		Resolver:     market.NewResolver(nil, nil),
		Fetcher:      history.NewFetcher(&stubFactory{session: session}),
		Store:        store.NewNoopStore(),
		LookbackDays: 90,
	}
}

func TestFetchHistoryResolvesBeforeFetching(t *testing.T) {
	session := &stubSession{rows: [][]string{
		{"Sep 1, 2024", "1", "2", "3", "11.50", "5", "6"},
	}}
	a := newAnalyzer(session)

	symbol, points, err := a.FetchHistory(context.Background(), "BP", "UK", true)
	if err != nil {
		t.Fatalf("FetchHistory failed: %v", err)
	}
	if symbol != "BP.L" {
		t.Errorf("symbol = %q, want BP.L", symbol)
	}
	if len(points) != 1 {
		t.Errorf("got %d points, want 1", len(points))
	}
}

func TestAnalyzeFetchFailureIsFatal(t *testing.T) {
	a := newAnalyzer(&stubSession{err: errors.New("timeout")})

	if _, err := a.Analyze(context.Background(), "AAPL", "US", true); err == nil {
		t.Fatal("expected error when history fetch fails")
	}
}

func TestAnalyzeSentimentFailureDegradesToNeutral(t *testing.T) {
	session := &stubSession{rows: [][]string{
		{"Sep 2, 2024", "1", "2", "3", "12.10", "5", "6"},
		{"Sep 1, 2024", "1", "2", "3", "11.50", "5", "6"},
	}}
	a := newAnalyzer(session)
	a.Scorer = failingScorer{}

	report, err := a.Analyze(context.Background(), "AAPL", "US", true)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.Sentiment == nil || report.Sentiment.Label != "neutral" {
		t.Errorf("sentiment = %+v, want neutral fallback", report.Sentiment)
	}
	if report.Trend == nil || report.Trend.SampleCount != 2 {
		t.Errorf("trend = %+v, want report over 2 points", report.Trend)
	}
	if report.Suggestion.Action == "" {
		t.Error("suggestion missing despite degraded sentiment")
	}
	if len(report.Factors) != 3 {
		t.Errorf("got %d factors, want 3", len(report.Factors))
	}
}
