package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/relevance"
)

func scored(doc, title string, order int, final float64) relevance.ScoredSection {
	return relevance.ScoredSection{
		Section: document.Section{DocumentID: doc, Page: 1, Title: title, Body: title + " body.", Order: order},
		Final:   final,
	}
}

func titles(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Title
	}
	return out
}

func TestRank_SortsByFinalThenOrder(t *testing.T) {
	in := []relevance.ScoredSection{
		scored("a.pdf", "Low", 0, 0.1),
		scored("a.pdf", "Tie Late", 3, 0.5),
		scored("b.pdf", "High", 1, 0.9),
		scored("b.pdf", "Tie Early", 2, 0.5),
	}

	out := Rank(in, Options{}, nil)
	require.Len(t, out, 4)
	assert.Equal(t, []string{"High", "Tie Early", "Tie Late", "Low"}, titles(out))
	for i, r := range out {
		assert.Equal(t, i+1, r.ImportanceRank)
	}
	assert.Equal(t, "Low", in[0].Title, "input must not be reordered")
}

func TestRank_TopN(t *testing.T) {
	in := []relevance.ScoredSection{
		scored("a.pdf", "One", 0, 0.3),
		scored("a.pdf", "Two", 1, 0.2),
		scored("a.pdf", "Three", 2, 0.1),
	}
	out := Rank(in, Options{TopN: 2}, nil)
	assert.Equal(t, []string{"One", "Two"}, titles(out))
}

func TestRank_PerDocumentCap(t *testing.T) {
	in := []relevance.ScoredSection{
		scored("a.pdf", "A1", 0, 0.9),
		scored("a.pdf", "A2", 1, 0.8),
		scored("a.pdf", "A3", 2, 0.7),
		scored("b.pdf", "B1", 3, 0.6),
		scored("c.pdf", "C1", 4, 0.5),
	}
	out := Rank(in, Options{TopN: 4, MaxPerDocument: 2}, nil)
	assert.Equal(t, []string{"A1", "A2", "B1", "C1"}, titles(out))

	counts := map[string]int{}
	for _, r := range out {
		counts[r.DocumentID]++
	}
	for doc, n := range counts {
		assert.LessOrEqual(t, n, 2, doc)
	}
}

func TestRank_Empty(t *testing.T) {
	out := Rank(nil, Options{TopN: 5}, nil)
	assert.Empty(t, out)
}

func TestRank_ShortBodyKeptVerbatim(t *testing.T) {
	out := Rank([]relevance.ScoredSection{scored("a.pdf", "Only", 0, 1)}, Options{}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "Only body.", out[0].RefinedText)
}

func containsScorer(terms ...string) func(string) float64 {
	return func(s string) float64 {
		var n float64
		lower := strings.ToLower(s)
		for _, t := range terms {
			if strings.Contains(lower, t) {
				n++
			}
		}
		return n
	}
}

const refineBody = "Intro sentence here. Tofu is great for dinner. Beans are good too. Nothing else matters."

func TestRefine_PicksBestSpan(t *testing.T) {
	got := Refine(refineBody, 60, containsScorer("tofu", "beans"))
	assert.Equal(t, "Tofu is great for dinner. Beans are good too.", got)
}

func TestRefine_NoPositiveScoreUsesLeadingSpan(t *testing.T) {
	got := Refine(refineBody, 60, containsScorer("saffron"))
	assert.Equal(t, "Intro sentence here. Tofu is great for dinner.", got)

	assert.Equal(t, got, Refine(refineBody, 60, nil))
}

func TestRefine_TieKeepsEarliestSpan(t *testing.T) {
	body := "Tofu first. Filler words go here. Tofu again."
	got := Refine(body, 30, containsScorer("tofu"))
	assert.Equal(t, "Tofu first.", got)
}

func TestRefine_OversizedFirstSentenceTruncated(t *testing.T) {
	body := "This opening sentence is far longer than twenty characters. Short."
	got := Refine(body, 20, containsScorer("short"))
	assert.Equal(t, "This opening...", got)
	assert.LessOrEqual(t, len([]rune(got)), 20)
}

func TestRefine_FitsBudget(t *testing.T) {
	body := strings.Repeat("Vegetables are roasted slowly in the oven. ", 40)
	got := Refine(body, 200, containsScorer("vegetables"))
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len([]rune(got)), 200)
}
