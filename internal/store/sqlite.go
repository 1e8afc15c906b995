package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"stockpulse/internal/model"
)

// SQLiteStore persists analyses and price snapshots to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block pipeline writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			identifier      TEXT,
			country         TEXT,
			symbol          TEXT NOT NULL,
			sentiment_score REAL,
			sentiment_label TEXT,
			trend_direction TEXT,
			trend_change    REAL,
			total_score     REAL,
			action          TEXT,
			confidence      REAL,
			factors_json    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol_ts ON analyses(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS price_snapshots (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			date      TEXT NOT NULL,
			close     REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_symbol_date ON price_snapshots(symbol, date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) SaveAnalysis(report *model.AnalysisReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	factorsJSON, err := json.Marshal(report.Factors)
	if err != nil {
		return fmt.Errorf("marshal factors: %w", err)
	}

	var sentScore float64
	var sentLabel string
	if report.Sentiment != nil {
		sentScore = report.Sentiment.Score
		sentLabel = report.Sentiment.Label
	}
	var trendDir string
	var trendChange float64
	if report.Trend != nil {
		trendDir = report.Trend.Direction
		trendChange = report.Trend.ChangePct
	}

	_, err = s.db.Exec(`INSERT INTO analyses
		(timestamp, identifier, country, symbol,
		 sentiment_score, sentiment_label, trend_direction, trend_change,
		 total_score, action, confidence, factors_json)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		report.CreatedAt.Unix(), report.Identifier, report.Country, report.Symbol,
		sentScore, sentLabel, trendDir, trendChange,
		report.TotalScore, string(report.Suggestion.Action), report.Suggestion.Confidence,
		string(factorsJSON),
	)
	return err
}

func (s *SQLiteStore) SavePriceSnapshot(symbol string, points []model.PricePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	for _, p := range points {
		if _, err := tx.Exec(`INSERT INTO price_snapshots (timestamp, symbol, date, close)
			VALUES (?,?,?,?)`, now, symbol, p.Date, p.Close); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) RecentAnalyses(symbol string, limit int) ([]model.AnalysisReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT timestamp, identifier, country, symbol,
		sentiment_score, sentiment_label, trend_direction, trend_change,
		total_score, action, confidence, factors_json
		FROM analyses WHERE symbol = ? ORDER BY timestamp DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.AnalysisReport
	for rows.Next() {
		var (
			ts          int64
			r           model.AnalysisReport
			sentScore   float64
			sentLabel   string
			trendDir    string
			trendChange float64
			action      string
			confidence  float64
			factorsJSON string
		)
		if err := rows.Scan(&ts, &r.Identifier, &r.Country, &r.Symbol,
			&sentScore, &sentLabel, &trendDir, &trendChange,
			&r.TotalScore, &action, &confidence, &factorsJSON); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(ts, 0)
		r.Sentiment = &model.SentimentScore{Score: sentScore, Label: sentLabel}
		r.Trend = &model.TrendReport{Direction: trendDir, ChangePct: trendChange}
		r.Suggestion = model.Suggestion{Action: model.Action(action), Confidence: confidence}
		if factorsJSON != "" {
			if err := json.Unmarshal([]byte(factorsJSON), &r.Factors); err != nil {
				log.Printf("[WARN] decode factors for %s: %v", r.Symbol, err)
			}
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
