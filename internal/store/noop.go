package store

import "stockpulse/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveAnalysis(_ *model.AnalysisReport) error             { return nil }
func (n *NoopStore) SavePriceSnapshot(_ string, _ []model.PricePoint) error { return nil }
func (n *NoopStore) RecentAnalyses(_ string, _ int) ([]model.AnalysisReport, error) {
	return nil, nil
}
func (n *NoopStore) Close() error { return nil }
