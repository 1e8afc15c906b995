// Package pipeline orchestrates one full analysis run: resolve the symbol,
// fetch price history, gather news, score sentiment, compute trend, and
// derive a suggestion.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"stockpulse/internal/advisor"
	"stockpulse/internal/history"
	"stockpulse/internal/market"
	"stockpulse/internal/model"
	"stockpulse/internal/news"
	"stockpulse/internal/sentiment"
	"stockpulse/internal/store"
	"stockpulse/internal/trend"
)

// Analyzer runs the analysis pipeline. All collaborators are injected.
type Analyzer struct {
	Resolver     *market.Resolver
	Fetcher      *history.Fetcher
	News         *news.Client
	Scorer       sentiment.Scorer
	Store        store.Store
	LookbackDays int
}

// FetchHistory resolves the identifier and returns its close-price series.
// This is the deterministic core path; it does not touch news or sentiment.
func (a *Analyzer) FetchHistory(ctx context.Context, identifier, country string, isTicker bool) (string, []model.PricePoint, error) {
	symbol := a.Resolver.Resolve(ctx, identifier, country, isTicker)
	points, err := a.Fetcher.FetchHistory(ctx, symbol, country, a.LookbackDays)
	if err != nil {
		return symbol, nil, err
	}
	return symbol, points, nil
}

// Analyze runs the full pipeline and persists the result. News and sentiment
// failures degrade to neutral rather than failing the run; a price-history
// failure is fatal since trend and suggestion depend on it.
func (a *Analyzer) Analyze(ctx context.Context, identifier, country string, isTicker bool) (*model.AnalysisReport, error) {
	symbol, points, err := a.FetchHistory(ctx, identifier, country, isTicker)
	if err != nil {
		return nil, err
	}

	tr, err := trend.Analyze(points)
	if err != nil {
		return nil, fmt.Errorf("trend analysis for %s: %w", symbol, err)
	}

	var items []model.NewsItem
	if a.News != nil {
		if items, err = a.News.Fetch(ctx, symbol); err != nil {
			log.Printf("[WARN] news fetch for %s failed: %v", symbol, err)
			items = nil
		}
	}

	sent := &model.SentimentScore{Score: 0, Label: "neutral", Rationale: "sentiment unavailable"}
	if a.Scorer != nil {
		if s, err := a.Scorer.Score(ctx, symbol, items); err != nil {
			log.Printf("[WARN] sentiment scoring for %s failed: %v", symbol, err)
		} else {
			sent = s
		}
	}

	factors, total, suggestion := advisor.Evaluate(sent, tr)

	report := &model.AnalysisReport{
		Identifier: identifier,
		Country:    country,
		Symbol:     symbol,
		Factors:    factors,
		TotalScore: total,
		Sentiment:  sent,
		Trend:      tr,
		Suggestion: suggestion,
		News:       items,
		CreatedAt:  time.Now(),
	}

	if a.Store != nil {
		if err := a.Store.SaveAnalysis(report); err != nil {
			log.Printf("[ERROR] save analysis for %s: %v", symbol, err)
		}
		if err := a.Store.SavePriceSnapshot(symbol, points); err != nil {
			log.Printf("[ERROR] save price snapshot for %s: %v", symbol, err)
		}
	}

	return report, nil
}
