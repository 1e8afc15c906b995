// Package sentiment scores news headlines with the Google Gemini API.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"stockpulse/internal/model"
)

const DefaultModel = "gemini-2.0-flash"

const scorePrompt = `You are a financial sentiment analyst. Given recent news headlines about a stock, rate the overall sentiment.

Rules:
- score is a number between -1.0 (strongly bearish) and 1.0 (strongly bullish)
- label is one of "positive", "neutral", "negative"
- rationale is one short sentence

Output as JSON only, no other text:
{"score": 0.0, "label": "neutral", "rationale": "..."}

Stock: %s
Headlines:
%s`

// Scorer rates headline sentiment for a symbol.
type Scorer interface {
	Score(ctx context.Context, symbol string, items []model.NewsItem) (*model.SentimentScore, error)
}

// GeminiScorer implements Scorer on the Gemini API.
type GeminiScorer struct {
	client *genai.Client
	model  string
}

// Option configures the scorer.
type Option func(*GeminiScorer)

// WithModel sets the model to use.
func WithModel(m string) Option {
	return func(s *GeminiScorer) { s.model = m }
}

// NewGeminiScorer creates a scorer backed by the Gemini API.
func NewGeminiScorer(ctx context.Context, apiKey string, opts ...Option) (*GeminiScorer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	s := &GeminiScorer{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Score sends one prompt/response call and parses the structured output.
func (s *GeminiScorer) Score(ctx context.Context, symbol string, items []model.NewsItem) (*model.SentimentScore, error) {
	if len(items) == 0 {
		return &model.SentimentScore{Score: 0, Label: "neutral", Rationale: "no recent news"}, nil
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item.Headline)
		if item.Source != "" {
			b.WriteString(" (")
			b.WriteString(item.Source)
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	prompt := fmt.Sprintf(scorePrompt, symbol, b.String())

	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("generate sentiment: %w", err)
	}

	text, err := extractText(result)
	if err != nil {
		return nil, err
	}
	return ParseScore(text)
}

func extractText(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}

// ParseScore validates the model's JSON output against the expected schema.
// Models sometimes wrap JSON in markdown fences; those are stripped first.
func ParseScore(text string) (*model.SentimentScore, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var score model.SentimentScore
	if err := json.Unmarshal([]byte(text), &score); err != nil {
		return nil, fmt.Errorf("parse sentiment output: %w", err)
	}
	if score.Score < -1 || score.Score > 1 {
		return nil, fmt.Errorf("sentiment score %.2f out of range", score.Score)
	}
	switch score.Label {
	case "positive", "neutral", "negative":
	default:
		return nil, fmt.Errorf("unknown sentiment label %q", score.Label)
	}
	return &score, nil
}
