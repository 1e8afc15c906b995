package model

// PricePoint is a single day's closing price.
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// PriceSeries holds the fetched close-price history for a resolved symbol.
type PriceSeries struct {
	Symbol  string       `json:"symbol"`
	Country string       `json:"country"`
	Points  []PricePoint `json:"points"`
}

// NewsItem is one recent headline used as sentiment input.
type NewsItem struct {
	Headline    string `json:"headline"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}
