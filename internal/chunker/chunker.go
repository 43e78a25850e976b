// Package chunker splits section bodies into sentences and enumerates the
// contiguous runs of sentences that fit a character budget.
package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis is appended to text cut mid-sentence.
const Ellipsis = "..."

// Span is a contiguous run of sentences [Start, End) and its joined length
// in characters.
type Span struct {
	Start int
	End   int
	Chars int
}

// Sentences does basic sentence splitting on '.', '!' and '?' followed by
// whitespace. Whitespace inside a sentence is collapsed.
func Sentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.Join(strings.Fields(current.String()), " "); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[i+utf8.RuneLen(r):])
		if unicode.IsSpace(next) {
			flush()
		}
	}
	flush()

	return sentences
}

// Spans returns, for every start position, the longest run of sentences
// whose space-joined length fits budget. A sentence that alone exceeds the
// budget starts no span. Spans come back ordered by Start.
func Spans(sentences []string, budget int) []Span {
	lengths := make([]int, len(sentences))
	for i, s := range sentences {
		lengths[i] = utf8.RuneCountInString(s)
	}

	var spans []Span
	end, chars := 0, 0
	for start := range sentences {
		if end < start {
			end, chars = start, 0
		}
		for end < len(sentences) {
			add := lengths[end]
			if end > start {
				add++ // joining space
			}
			if chars+add > budget {
				break
			}
			chars += add
			end++
		}
		if end > start {
			spans = append(spans, Span{Start: start, End: end, Chars: chars})
			// Drop the first sentence and its joining space before moving on.
			chars -= lengths[start]
			if end > start+1 {
				chars--
			}
		}
	}
	return spans
}

// Join renders a span back into text. Spans built by hand may leave Chars
// zero; it only sizes the buffer.
func Join(sentences []string, s Span) string {
	var b strings.Builder
	b.Grow(s.Chars)
	for i, sentence := range sentences[s.Start:s.End] {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
	}
	return b.String()
}

// Truncate cuts text to at most budget characters, preferring a word
// boundary, and marks the cut with Ellipsis.
func Truncate(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	keep := budget - len(Ellipsis)
	if keep <= 0 {
		return string(runes[:budget])
	}
	cut := keep
	for i := keep; i > keep/2; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimRightFunc(string(runes[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + Ellipsis
}
