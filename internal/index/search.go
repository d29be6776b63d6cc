package index

import (
	"context"
	"sort"
	"strings"

	"cix/internal/errors"
	"cix/internal/extract"
)

// Match quality tiers. Lower sorts first.
const (
	matchPrefix    = 0
	matchSubstring = 1
	matchFuzzy     = 2
)

// SearchResult is one symbol hit with its match quality.
type SearchResult struct {
	Symbol  extract.Symbol `json:"symbol"`
	Quality int            `json:"quality"`
}

// SearchOutcome carries the matched symbols plus truncation state when the
// scan was cut short by limit or cancellation.
type SearchOutcome struct {
	Results    []SearchResult `json:"results"`
	TotalFound int            `json:"totalFound"`
	Truncated  bool           `json:"truncated"`
}

// SearchSymbols finds symbols whose name matches query. Matching is
// case-insensitive with three tiers: name-prefix matches rank first, then
// substring matches; when fuzzy is set, subsequence matches are considered
// as a fallback, only when neither exact tier produced a hit. Ties break
// on file path, then line, so the same index state always yields the same
// ordering.
func (ix *Index) SearchSymbols(ctx context.Context, query string, kind extract.SymbolKind, limit int, fuzzy bool) (*SearchOutcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New(errors.InvalidArgument, "search query must not be empty", nil)
	}
	if kind != "" && !extract.ValidKind(string(kind)) {
		return nil, errors.New(errors.InvalidArgument, "unknown symbol kind", nil).
			WithDetails(map[string]interface{}{"kind": string(kind)})
	}
	if limit <= 0 {
		limit = 50
	}

	lowered := strings.ToLower(query)
	entries := ix.snapshot()

	var results []SearchResult
	truncated := false

	for _, entry := range entries {
		if ctx.Err() != nil {
			truncated = true
			break
		}
		for _, sym := range entry.Symbols {
			if kind != "" && sym.Kind != kind {
				continue
			}
			name := strings.ToLower(sym.Name)
			switch {
			case strings.HasPrefix(name, lowered):
				results = append(results, SearchResult{Symbol: sym, Quality: matchPrefix})
			case strings.Contains(name, lowered):
				results = append(results, SearchResult{Symbol: sym, Quality: matchSubstring})
			}
		}
	}

	// Fuzzy is an opt-in fallback, never mixed with exact hits.
	if fuzzy && len(results) == 0 && !truncated {
		for _, entry := range entries {
			if ctx.Err() != nil {
				truncated = true
				break
			}
			for _, sym := range entry.Symbols {
				if kind != "" && sym.Kind != kind {
					continue
				}
				if fuzzyMatch(strings.ToLower(sym.Name), lowered) {
					results = append(results, SearchResult{Symbol: sym, Quality: matchFuzzy})
				}
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Quality != b.Quality {
			return a.Quality < b.Quality
		}
		if a.Symbol.FilePath != b.Symbol.FilePath {
			return a.Symbol.FilePath < b.Symbol.FilePath
		}
		return a.Symbol.Line < b.Symbol.Line
	})

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
		truncated = true
	}

	return &SearchOutcome{
		Results:    results,
		TotalFound: total,
		Truncated:  truncated,
	}, nil
}

// fuzzyMatch reports whether pattern appears in s as an in-order
// subsequence.
func fuzzyMatch(s, pattern string) bool {
	if pattern == "" {
		return true
	}
	pi := 0
	for i := 0; i < len(s) && pi < len(pattern); i++ {
		if s[i] == pattern[pi] {
			pi++
		}
	}
	return pi == len(pattern)
}

func sortEntriesByPath(entries []*FileEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
}
