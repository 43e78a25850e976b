package rank

import (
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/chunker"
)

// Refine returns body when it fits budget. Otherwise it returns the run of
// consecutive sentences that fits budget and has the highest summed
// passage score, the earliest run on ties. When no sentence scores above
// zero the leading run is used. A first sentence longer than the budget is
// cut at a word boundary.
func Refine(body string, budget int, passage func(string) float64) string {
	if utf8.RuneCountInString(body) <= budget {
		return body
	}

	sentences := chunker.Sentences(body)
	spans := chunker.Spans(sentences, budget)
	if len(spans) == 0 || spans[0].Start != 0 {
		return chunker.Truncate(body, budget)
	}
	if passage == nil {
		return chunker.Join(sentences, spans[0])
	}

	scores := make([]float64, len(sentences))
	var positive bool
	for i, s := range sentences {
		scores[i] = passage(s)
		if scores[i] > 0 {
			positive = true
		}
	}
	if !positive {
		return chunker.Join(sentences, spans[0])
	}

	best, bestScore := spans[0], spanScore(scores, spans[0])
	for _, sp := range spans[1:] {
		if s := spanScore(scores, sp); s > bestScore {
			best, bestScore = sp, s
		}
	}
	return chunker.Join(sentences, best)
}

func spanScore(scores []float64, sp chunker.Span) float64 {
	var total float64
	for _, s := range scores[sp.Start:sp.End] {
		total += s
	}
	return total
}
