// Package server exposes the dashboard HTTP API.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"stockpulse/internal/model"
	"stockpulse/internal/pipeline"
	"stockpulse/internal/store"
	"stockpulse/internal/watchlist"
)

// Server serves the dashboard HTTP API.
type Server struct {
	analyzer  *pipeline.Analyzer
	watchlist *watchlist.Manager
	store     store.Store
}

// New creates a new API server.
func New(analyzer *pipeline.Analyzer, wl *watchlist.Manager, st store.Store) *Server {
	return &Server{analyzer: analyzer, watchlist: wl, store: st}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/history", s.handleHistory)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/analyses/{symbol}", s.handleAnalyses)
	mux.HandleFunc("GET /api/watchlist", s.handleGetWatchlist)
	mux.HandleFunc("PUT /api/watchlist/{symbol}", s.handleAddWatchlist)
	mux.HandleFunc("DELETE /api/watchlist/{symbol}", s.handleRemoveWatchlist)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// historyRequest is the inbound request for both history and analyze calls.
type historyRequest struct {
	Ticker         string `json:"ticker"`
	CompanyCountry string `json:"companyCountry"`
	IsTicker       bool   `json:"isTicker"`
}

// decode parses and validates the request body. Missing required fields are
// a client error, reported before any network activity.
func decode(r *http.Request) (*historyRequest, string) {
	var req historyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "invalid request body"
	}
	if req.Ticker == "" {
		return nil, "ticker is required"
	}
	if req.CompanyCountry == "" {
		return nil, "companyCountry is required"
	}
	return &req, ""
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	req, msg := decode(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	symbol, points, err := s.analyzer.FetchHistory(r.Context(), req.Ticker, req.CompanyCountry, req.IsTicker)
	if err != nil {
		log.Printf("[ERROR] history %s/%s: %v", req.Ticker, req.CompanyCountry, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, model.PriceSeries{Symbol: symbol, Country: req.CompanyCountry, Points: points})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, msg := decode(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), req.Ticker, req.CompanyCountry, req.IsTicker)
	if err != nil {
		log.Printf("[ERROR] analyze %s/%s: %v", req.Ticker, req.CompanyCountry, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, report)
}

func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	reports, err := s.store.RecentAnalyses(symbol, 30)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, reports)
}

func (s *Server) handleGetWatchlist(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.watchlist.Entries())
}

func (s *Server) handleAddWatchlist(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	country := r.URL.Query().Get("country")
	if country == "" {
		country = "US"
	}
	isTicker := r.URL.Query().Get("isTicker") != "false"
	if !s.watchlist.Add(symbol, country, isTicker) {
		writeError(w, http.StatusConflict, "already on watchlist")
		return
	}
	writeJSON(w, map[string]string{"status": "added"})
}

func (s *Server) handleRemoveWatchlist(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if !s.watchlist.Remove(symbol) {
		writeError(w, http.StatusNotFound, "not on watchlist")
		return
	}
	writeJSON(w, map[string]string{"status": "removed"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
