package market

import (
	"context"
	"log"
	"strings"
)

// Strategy is one stage of the resolution chain. It returns ("", false) when
// it cannot produce a usable symbol, which passes control to the next stage.
type Strategy interface {
	Resolve(ctx context.Context, identifier, country string, isTicker bool) (string, bool)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(ctx context.Context, identifier, country string, isTicker bool) (string, bool)

func (f StrategyFunc) Resolve(ctx context.Context, identifier, country string, isTicker bool) (string, bool) {
	return f(ctx, identifier, country, isTicker)
}

// Resolver produces a best-guess canonical ticker for a raw identifier by
// running an ordered strategy chain: override table, external search gated by
// validation, then the currency-suffix heuristic. Resolution never fails;
// a bad guess surfaces later as a fetch failure.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds the default chain around the given search/validation
// client.
func NewResolver(search SearchClient, validator Validator) *Resolver {
	return &Resolver{
		strategies: []Strategy{
			StrategyFunc(overrideLookup),
			&searchStrategy{search: search, validator: validator},
			StrategyFunc(suffixHeuristic),
		},
	}
}

// Resolve runs the chain in order and stops at the first stage that yields a
// symbol. The final stage always yields, so the returned symbol is never "".
func (r *Resolver) Resolve(ctx context.Context, identifier, country string, isTicker bool) string {
	for _, s := range r.strategies {
		if symbol, ok := s.Resolve(ctx, identifier, country, isTicker); ok {
			return symbol
		}
	}
	return identifier
}

// overrideLookup short-circuits known-ambiguous names via the static table.
func overrideLookup(_ context.Context, identifier, country string, _ bool) (string, bool) {
	key := Normalize(identifier) + "|" + Normalize(country)
	symbol, ok := Overrides[key]
	return symbol, ok
}

// searchStrategy queries the external search endpoint and accepts the first
// candidate only if validation confirms it. All failures are swallowed.
type searchStrategy struct {
	search    SearchClient
	validator Validator
}

func (s *searchStrategy) Resolve(ctx context.Context, identifier, _ string, _ bool) (string, bool) {
	if s.search == nil {
		return "", false
	}
	candidates, err := s.search.Search(ctx, identifier)
	if err != nil {
		log.Printf("[WARN] ticker search for %q failed: %v", identifier, err)
		return "", false
	}
	if len(candidates) == 0 {
		return "", false
	}
	first := candidates[0]
	if s.validator != nil && !s.validator.IsValid(ctx, first) {
		return "", false
	}
	return first, true
}

// suffixHeuristic is the terminal fallback: tickers that already carry a
// dotted exchange suffix pass through unchanged, otherwise the identifier
// gets the suffix of the origin country's home-market currency.
func suffixHeuristic(_ context.Context, identifier, country string, isTicker bool) (string, bool) {
	if isTicker && strings.Contains(identifier, ".") {
		return identifier, true
	}
	if isTicker {
		return identifier + SuffixFor(CurrencyFor(country)), true
	}
	// Best effort for company names; may not be a valid market symbol.
	return identifier, true
}
