// Package advisor combines sentiment and price trend into a tiered
// buy/hold/sell suggestion.
package advisor

import (
	"stockpulse/internal/model"
)

// Tiers defines the 5-level score-to-action mapping, highest first.
var Tiers = []struct {
	MinScore   float64
	Suggestion model.Suggestion
}{
	{0.9, model.Suggestion{Action: model.ActionStrongBuy, Label: "strong buy"}},
	{0.35, model.Suggestion{Action: model.ActionBuy, Label: "buy"}},
	{-0.35, model.Suggestion{Action: model.ActionHold, Label: "hold"}},
	{-0.9, model.Suggestion{Action: model.ActionSell, Label: "sell"}},
}

// DefaultSuggestion is the lowest tier for scores < -0.9.
var DefaultSuggestion = model.Suggestion{Action: model.ActionStrongSell, Label: "strong sell"}

func mapTier(totalScore float64) model.Suggestion {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Suggestion
		}
	}
	return DefaultSuggestion
}

// Evaluate computes the combined suggestion from a sentiment score and a
// trend report. Sentiment carries more weight than trend: the trend factor
// confirms or tempers what the news says.
func Evaluate(sentiment *model.SentimentScore, tr *model.TrendReport) ([]model.FactorScore, float64, model.Suggestion) {
	fSent := scoreSentiment(sentiment)
	fTrend := scoreTrend(tr)
	fRange := scoreRangePosition(tr)

	factors := []model.FactorScore{fSent, fTrend, fRange}
	total := fSent.Weighted + fTrend.Weighted + fRange.Weighted

	suggestion := mapTier(total)
	suggestion.Confidence = confidence(total)
	return factors, total, suggestion
}

// scoreSentiment passes the model's score through directly, weight 0.5.
func scoreSentiment(s *model.SentimentScore) model.FactorScore {
	raw, commentary := 0.0, "no sentiment data"
	if s != nil {
		raw = s.Score
		commentary = s.Label
	}
	return weighted("news sentiment", raw, 0.5, commentary)
}

// scoreTrend maps the trend direction and magnitude to [-2, 2], weight 0.35.
func scoreTrend(tr *model.TrendReport) model.FactorScore {
	if tr == nil {
		return weighted("price trend", 0, 0.35, "no trend data")
	}
	var raw float64
	switch tr.Direction {
	case "UP":
		raw = 1
		if tr.ChangePct > 10 {
			raw = 2
		}
	case "DOWN":
		raw = -1
		if tr.ChangePct < -10 {
			raw = -2
		}
	}
	return weighted("price trend", raw, 0.35, tr.Direction)
}

// scoreRangePosition rewards buying low within the fetched window: near the
// bottom scores positive, near the top negative. Weight 0.15.
func scoreRangePosition(tr *model.TrendReport) model.FactorScore {
	if tr == nil {
		return weighted("range position", 0, 0.15, "no trend data")
	}
	var raw float64
	switch {
	case tr.RangePos < 0.15:
		raw = 1.5
	case tr.RangePos < 0.35:
		raw = 0.5
	case tr.RangePos > 0.9:
		raw = -1.5
	case tr.RangePos > 0.7:
		raw = -0.5
	}
	return weighted("range position", raw, 0.15, "window position")
}

func weighted(name string, raw, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   raw,
		Weight:     weight,
		Weighted:   raw * weight,
		Commentary: commentary,
	}
}

// confidence squashes the absolute combined score into 0.0 ~ 1.0.
func confidence(total float64) float64 {
	abs := total
	if abs < 0 {
		abs = -abs
	}
	c := abs / 1.5
	if c > 1 {
		c = 1
	}
	return c
}
