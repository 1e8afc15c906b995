package model

import "time"

// WatchEntry is a single tracked symbol on the watchlist.
type WatchEntry struct {
	Identifier    string    `json:"identifier"`
	Country       string    `json:"country"`
	IsTicker      bool      `json:"is_ticker"`
	Symbol        string    `json:"symbol,omitempty"` // last resolved symbol
	LastAction    Action    `json:"last_action,omitempty"`
	LastScore     float64   `json:"last_score"`
	LastCheckedAt time.Time `json:"last_checked_at"`
	AddedAt       time.Time `json:"added_at"`
}

// WatchlistState is the persisted watchlist file contents.
type WatchlistState struct {
	Entries   []WatchEntry `json:"entries"`
	UpdatedAt time.Time    `json:"updated_at"`
}
