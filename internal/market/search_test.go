package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testYahooClient(searchURL, chartURL string) *YahooClient {
	return &YahooClient{
		SearchURL: searchURL,
		ChartURL:  chartURL,
		Client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func TestYahooSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "apple" {
			t.Errorf("query = %q, want apple", q)
		}
		w.Write([]byte(`{"quotes":[{"symbol":"AAPL"},{"symbol":""},{"symbol":"APLE"}]}`))
	}))
	defer srv.Close()

	c := testYahooClient(srv.URL, "")
	symbols, err := c.Search(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAPL" || symbols[1] != "APLE" {
		t.Errorf("symbols = %v, want [AAPL APLE]", symbols)
	}
}

func TestYahooSearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := testYahooClient(srv.URL, "")
	if _, err := c.Search(context.Background(), "apple"); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestYahooIsValid(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"valid symbol", http.StatusOK, `{"chart":{"result":[{}],"error":null}}`, true},
		{"unknown symbol", http.StatusOK, `{"chart":{"result":[],"error":{"code":"Not Found"}}}`, false},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`, false},
		{"server error", http.StatusInternalServerError, ``, false},
		{"garbage body", http.StatusOK, `not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := testYahooClient("", srv.URL)
			if got := c.IsValid(context.Background(), "AAPL"); got != tt.want {
				t.Errorf("IsValid = %v, want %v", got, tt.want)
			}
		})
	}
}
