package model

// SentimentScore is the parsed output of the language-model scoring call.
type SentimentScore struct {
	Score     float64 `json:"score"` // -1.0 (bearish) ~ 1.0 (bullish)
	Label     string  `json:"label"` // "positive", "neutral", "negative"
	Rationale string  `json:"rationale"`
}

// TrendReport summarizes the price trend computed from the close series.
type TrendReport struct {
	Direction   string  `json:"direction"` // "UP", "FLAT", "DOWN"
	ChangePct   float64 `json:"change_pct"`
	SMAShort    float64 `json:"sma_short"`
	SMALong     float64 `json:"sma_long"`
	LastClose   float64 `json:"last_close"`
	RangePos    float64 `json:"range_pos"` // 0.0 ~ 1.0 within the fetched window
	SampleCount int     `json:"sample_count"`
}
