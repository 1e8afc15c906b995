package history

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"stockpulse/internal/model"
)

// The target table on the historical-data page. A breaking layout change here
// is an external-contract break, not a bug in this package.
const tableSelector = `table[data-test="historical-prices"]`

// Session is one scoped browsing session. Close must be safe to call exactly
// once regardless of how far the session got.
type Session interface {
	Navigate(url string) error
	Rows(selector string) ([][]string, error)
	Close() error
}

// SessionFactory opens browsing sessions. Injected so the fetcher never
// depends on an ambient browser singleton.
type SessionFactory interface {
	NewSession(ctx context.Context) (Session, error)
}

// Fetcher drives a browsing session against the finance site's
// historical-data page and extracts the close-price series.
type Fetcher struct {
	Sessions SessionFactory
	BaseURL  string
}

// NewFetcher creates a Fetcher for the given session factory.
func NewFetcher(sessions SessionFactory) *Fetcher {
	return &Fetcher{
		Sessions: sessions,
		BaseURL:  "https://finance.yahoo.com/quote",
	}
}

// FetchHistory loads the historical-data page for symbol over the lookback
// window ending now and returns the parsed series, oldest first. The session
// is released on every path; all failures name the symbol and country and
// wrap the underlying cause.
func (f *Fetcher) FetchHistory(ctx context.Context, symbol, country string, lookbackDays int) ([]model.PricePoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -lookbackDays)

	target := fmt.Sprintf("%s/%s/history?period1=%d&period2=%d&interval=1d&filter=history&frequency=1d",
		f.BaseURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	session, err := f.Sessions.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data for ticker %s (country %s): open session: %w", symbol, country, err)
	}
	defer session.Close()

	if err := session.Navigate(target); err != nil {
		return nil, fmt.Errorf("failed to fetch data for ticker %s (country %s): navigate: %w", symbol, country, err)
	}

	rows, err := session.Rows(tableSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data for ticker %s (country %s): extract rows: %w", symbol, country, err)
	}

	points := ParseRows(rows)
	if len(points) == 0 {
		return nil, fmt.Errorf("failed to fetch data for ticker %s (country %s): no valid price rows", symbol, country)
	}
	return points, nil
}
