package market

import "strings"

// Normalize canonicalizes free-text identifiers and country names for
// lookup-key construction: trimmed, lowercased, internal whitespace runs
// collapsed to a single space. Total on any input, including "".
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
