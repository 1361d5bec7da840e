package token

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single char", "a", 1},
		{"exact multiple", "abcd", 1},
		{"rounds up", "abcde", 2},
		{"eight chars", "abcdefgh", 2},
		{"multibyte counted as runes", "àèìòù", 2},
		{"long text", strings.Repeat("x", 12000), 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateTokens(tt.text)
			if got != tt.want {
				t.Errorf("EstimateTokens(%q...) = %d, want %d", truncate(tt.text), got, tt.want)
			}
		})
	}
}

func TestFitsInContext(t *testing.T) {
	if !FitsInContext(strings.Repeat("x", 400), 100) {
		t.Error("400 chars should fit a 100 token budget")
	}
	if FitsInContext(strings.Repeat("x", 401), 100) {
		t.Error("401 chars should not fit a 100 token budget")
	}

	// Zero budget falls back to the default.
	if !FitsInContext(strings.Repeat("x", CharsPerToken*DefaultContextBudget), 0) {
		t.Error("text at the default budget should fit")
	}
	if FitsInContext(strings.Repeat("x", CharsPerToken*DefaultContextBudget+1), 0) {
		t.Error("text above the default budget should not fit")
	}
}

func truncate(s string) string {
	if len(s) > 16 {
		return s[:16]
	}
	return s
}
