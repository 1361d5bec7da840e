// Package token approximates model token costs from character counts.
// Accuracy is not the goal here; monotonicity and stability are, since the
// estimates drive chunk sizing decisions only.
package token

import "unicode/utf8"

const (
	// CharsPerToken is a fixed characters-per-token ratio calibrated for
	// Italian contract prose.
	CharsPerToken = 4

	// DefaultContextBudget stays well below the real model context window
	// to leave room for the system prompt and the structured output.
	DefaultContextBudget = 100_000
)

// EstimateTokens approximates the token cost of a text span as
// ceil(chars / CharsPerToken).
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + CharsPerToken - 1) / CharsPerToken
}

// FitsInContext reports whether text fits a token budget. A maxTokens of
// zero or less means the default budget.
func FitsInContext(text string, maxTokens int) bool {
	if maxTokens <= 0 {
		maxTokens = DefaultContextBudget
	}
	return EstimateTokens(text) <= maxTokens
}
