package model

import "time"

// Action is the final suggestion derived from sentiment and trend.
type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionHold       Action = "HOLD"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG_SELL"
)

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// Suggestion maps a combined score range to an action.
type Suggestion struct {
	Action     Action  `json:"action"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // 0.0 ~ 1.0
}

// AnalysisReport is the full output of one analysis run for a symbol.
type AnalysisReport struct {
	Identifier string          `json:"identifier"`
	Country    string          `json:"country"`
	Symbol     string          `json:"symbol"`
	Factors    []FactorScore   `json:"factors"`
	TotalScore float64         `json:"total_score"`
	Sentiment  *SentimentScore `json:"sentiment,omitempty"`
	Trend      *TrendReport    `json:"trend,omitempty"`
	Suggestion Suggestion      `json:"suggestion"`
	News       []NewsItem      `json:"news,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
