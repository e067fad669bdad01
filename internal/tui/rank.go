package tui

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// rankScore orders filter results. Lower is better: exact, then prefix, then
// substring, then by edit distance.
func rankScore(name, query string) int {
	if name == query {
		return 0
	}
	if strings.HasPrefix(name, query) {
		return 10
	}
	if strings.Contains(name, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, name)
}
