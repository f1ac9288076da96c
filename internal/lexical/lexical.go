// Package lexical generates the bounded fuzzy-similarity candidate pool
// that scopes the expensive vector stage to a handful of catalog entries.
package lexical

import (
	"sort"

	"github.com/hbollon/go-edlib"
)

// Hit is one scored catalog name, referenced by insertion index.
type Hit struct {
	Index int
	Score float64
}

// Ratio returns the normalized edit similarity of two strings in [0, 1]
// (0 = disjoint, 1 = identical).
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(sim)
}

// SequenceRatio is the softer ordered-similarity signal used at fusion
// time; JaroWinkler favors shared prefixes, which suits menu names where
// the dish stem leads and qualifiers trail.
func SequenceRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	return float64(sim)
}

// TopN ranks every catalog name against the query and returns at most n
// hits at or above cutoff, ordered by score descending with ties broken
// by insertion order. Empty query or name list yields an empty result;
// callers short-circuit degenerate queries before this stage.
func TopN(query string, names []string, n int, cutoff float64) []Hit {
	if query == "" || len(names) == 0 || n <= 0 {
		return nil
	}

	hits := make([]Hit, 0, len(names))
	for i, name := range names {
		if s := Ratio(query, name); s >= cutoff && s > 0 {
			hits = append(hits, Hit{Index: i, Score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > n {
		hits = hits[:n]
	}
	return hits
}
