package tui

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"pindrop/internal/domain"
)

// FilterResult is a filename filter hit with match metadata for highlighting
type FilterResult struct {
	Index          int   // Index into the visible snapshot
	MatchedIndexes []int // Character positions that matched
	score          int   // Rank (lower is better)
}

// fileNameSource implements fuzzy.Source for zero-allocation matching
type fileNameSource []string

func (s fileNameSource) String(i int) string { return s[i] }
func (s fileNameSource) Len() int            { return len(s) }

// filterCandidates fuzzy-matches the query against visible filenames.
// sahilm/fuzzy supplies the matched character positions; ordering comes from
// rankScore so prefix and substring hits sort ahead of scattered matches.
func filterCandidates(query string, candidates []domain.Candidate) []FilterResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	names := make(fileNameSource, len(candidates))
	for i, c := range candidates {
		names[i] = strings.ToLower(c.Asset.OriginalFileName)
	}

	matches := fuzzy.FindFrom(query, names)
	results := make([]FilterResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, FilterResult{
			Index:          match.Index,
			MatchedIndexes: match.MatchedIndexes,
			score:          rankScore(names[match.Index], query),
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].score < results[j].score })
	return results
}
