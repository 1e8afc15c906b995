package store

import "stockpulse/internal/model"

// Store persists analysis results for the dashboard's history views.
type Store interface {
	SaveAnalysis(report *model.AnalysisReport) error
	SavePriceSnapshot(symbol string, points []model.PricePoint) error
	RecentAnalyses(symbol string, limit int) ([]model.AnalysisReport, error)
	Close() error
}
