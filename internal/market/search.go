package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SearchClient looks up candidate symbols for a free-text query.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Validator confirms a candidate symbol resolves to market data.
type Validator interface {
	IsValid(ctx context.Context, symbol string) bool
}

// YahooClient implements SearchClient and Validator against the public Yahoo
// Finance search and chart endpoints.
type YahooClient struct {
	SearchURL string
	ChartURL  string
	Client    *http.Client
}

// NewYahooClient creates a client with optional proxy support. Both outbound
// calls carry an explicit 10s timeout.
func NewYahooClient(proxyURL string) *YahooClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooClient{
		SearchURL: "https://query1.finance.yahoo.com/v1/finance/search",
		ChartURL:  "https://query1.finance.yahoo.com/v8/finance/chart",
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// yahooSearch is the response structure from the Yahoo search endpoint.
type yahooSearch struct {
	Quotes []struct {
		Symbol string `json:"symbol"`
	} `json:"quotes"`
}

// Search returns candidate symbols for a free-text query, best match first.
func (c *YahooClient) Search(ctx context.Context, query string) ([]string, error) {
	u := fmt.Sprintf("%s?q=%s&quotesCount=5&newsCount=0", c.SearchURL, url.QueryEscape(query))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("yahoo search: %w", err)
	}

	var result yahooSearch
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("yahoo search decode: %w", err)
	}

	symbols := make([]string, 0, len(result.Quotes))
	for _, q := range result.Quotes {
		if q.Symbol != "" {
			symbols = append(symbols, q.Symbol)
		}
	}
	return symbols, nil
}

// yahooChart is the subset of the chart response needed for validation.
type yahooChart struct {
	Chart struct {
		Result []json.RawMessage `json:"result"`
		Error  *struct {
			Code string `json:"code"`
		} `json:"error"`
	} `json:"chart"`
}

// IsValid issues a lightweight chart lookup for the candidate symbol. It
// returns true only if the response carries a non-empty result set; any
// transport or parse error is treated as false.
func (c *YahooClient) IsValid(ctx context.Context, symbol string) bool {
	u := fmt.Sprintf("%s/%s?interval=1d&range=5d", c.ChartURL, url.PathEscape(symbol))

	body, err := c.get(ctx, u)
	if err != nil {
		return false
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return false
	}
	return chart.Chart.Error == nil && len(chart.Chart.Result) > 0
}

func (c *YahooClient) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
