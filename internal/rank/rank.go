// Package rank orders scored sections and attaches refined text.
package rank

import (
	"sort"

	"github.com/dgallion1/docrank/internal/relevance"
)

// Options bounds the result list.
type Options struct {
	TopN            int // 0 = all
	MaxPerDocument  int // 0 = unbounded
	MaxRefinedChars int // 0 = DefaultMaxRefinedChars
}

// DefaultMaxRefinedChars bounds RefinedText when Options leaves it unset.
const DefaultMaxRefinedChars = 1000

// Result is one selected section.
type Result struct {
	relevance.ScoredSection
	ImportanceRank int // 1-based
	RefinedText    string
}

// Rank sorts by Final descending with Order breaking ties, applies the
// per-document cap, keeps at most TopN and computes refined text for each
// kept section. passage rates sentences for refinement; nil selects the
// leading sentences. The input slice is not modified.
func Rank(scored []relevance.ScoredSection, opts Options, passage func(string) float64) []Result {
	sorted := make([]relevance.ScoredSection, len(scored))
	copy(sorted, scored)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Final != sorted[j].Final {
			return sorted[i].Final > sorted[j].Final
		}
		return sorted[i].Order < sorted[j].Order
	})

	budget := opts.MaxRefinedChars
	if budget <= 0 {
		budget = DefaultMaxRefinedChars
	}

	results := make([]Result, 0, min(len(sorted), max(opts.TopN, 0)))
	perDoc := make(map[string]int)
	for _, s := range sorted {
		if opts.TopN > 0 && len(results) == opts.TopN {
			break
		}
		if opts.MaxPerDocument > 0 && perDoc[s.DocumentID] >= opts.MaxPerDocument {
			continue
		}
		perDoc[s.DocumentID]++
		results = append(results, Result{
			ScoredSection:  s,
			ImportanceRank: len(results) + 1,
			RefinedText:    Refine(s.Body, budget, passage),
		})
	}
	return results
}
