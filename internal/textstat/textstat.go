// Package textstat computes cheap deterministic text features used for
// telemetry and for token estimation where no provider-reported count exists.
package textstat

import (
	"strings"
	"unicode/utf8"
)

// Features holds basic local text features derived from an input string.
type Features struct {
	Bytes int
	Runes int
	Words int
	Lines int
}

// Count computes byte, rune, word, and line counts for the input string.
func Count(s string) Features {
	return Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
		Lines: countLines(s),
	}
}

// EstimateTokens approximates token cost at ~4 characters per token, rounded
// up, with a minimum of 1 for non-empty input. Providers that report exact
// usage take precedence; this covers the mock agent and system-prompt
// seeding, where only a rough estimate is available.
func EstimateTokens(s string) int {
	if s == "" {
		return 0
	}
	return (utf8.RuneCountInString(s) + 3) / 4
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of
// '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}
