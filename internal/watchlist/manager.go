package watchlist

import (
	"log"
	"sync"
	"time"

	"stockpulse/internal/model"
)

// Manager handles watchlist operations with concurrency safety. State is
// persisted to a JSON file after every mutation.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchlistState
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// Entries returns a copy of the current watchlist entries.
func (m *Manager) Entries() []model.WatchEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]model.WatchEntry, len(m.state.Entries))
	copy(entries, m.state.Entries)
	return entries
}

// Add inserts an entry if the identifier/country pair isn't already tracked.
// Returns false if it was already present.
func (m *Manager) Add(identifier, country string, isTicker bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.state.Entries {
		if e.Identifier == identifier && e.Country == country {
			return false
		}
	}
	m.state.Entries = append(m.state.Entries, model.WatchEntry{
		Identifier: identifier,
		Country:    country,
		IsTicker:   isTicker,
		AddedAt:    time.Now(),
	})
	m.save()
	return true
}

// Remove deletes an entry by identifier. Returns false if not found.
func (m *Manager) Remove(identifier string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.state.Entries {
		if e.Identifier == identifier || e.Symbol == identifier {
			m.state.Entries = append(m.state.Entries[:i], m.state.Entries[i+1:]...)
			m.save()
			return true
		}
	}
	return false
}

// RecordResult updates an entry with the outcome of an analysis run and
// reports whether the suggested action changed since the last run.
func (m *Manager) RecordResult(identifier string, report *model.AnalysisReport) (changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.state.Entries {
		e := &m.state.Entries[i]
		if e.Identifier != identifier {
			continue
		}
		changed = e.LastAction != "" && e.LastAction != report.Suggestion.Action
		e.Symbol = report.Symbol
		e.LastAction = report.Suggestion.Action
		e.LastScore = report.TotalScore
		e.LastCheckedAt = time.Now()
		m.save()
		return changed
	}
	return false
}

func (m *Manager) save() {
	if err := SaveState(m.filePath, m.state); err != nil {
		log.Printf("[ERROR] failed to save watchlist state: %v", err)
	}
}
