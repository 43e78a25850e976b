package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSentences_Basic(t *testing.T) {
	got := Sentences("Soak the lentils. Simmer for   twenty minutes!  Serve warm?\nEnjoy")
	want := []string{"Soak the lentils.", "Simmer for twenty minutes!", "Serve warm?", "Enjoy"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSentences_DecimalsStayTogether(t *testing.T) {
	got := Sentences("Use 2.5 cups of rice. Done.")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %q", len(got), got)
	}
	if got[0] != "Use 2.5 cups of rice." {
		t.Errorf("expected decimal kept in first sentence, got %q", got[0])
	}
}

func TestSentences_Empty(t *testing.T) {
	if got := Sentences("   "); len(got) != 0 {
		t.Errorf("expected no sentences, got %q", got)
	}
}

func TestSpans_FitBudget(t *testing.T) {
	sentences := []string{"aaaa.", "bbbb.", "cccc.", "dddd."} // 5 chars each
	spans := Spans(sentences, 11)                            // two sentences plus a space

	if len(spans) != 4 {
		t.Fatalf("expected 4 spans, got %d: %+v", len(spans), spans)
	}
	for i, s := range spans[:3] {
		if s.Start != i || s.End != i+2 || s.Chars != 11 {
			t.Errorf("span %d: expected [%d,%d) with 11 chars, got %+v", i, i, i+2, s)
		}
		if got := utf8.RuneCountInString(Join(sentences, s)); got != s.Chars {
			t.Errorf("span %d: joined length %d does not match Chars %d", i, got, s.Chars)
		}
	}
	last := spans[3]
	if last.Start != 3 || last.End != 4 || last.Chars != 5 {
		t.Errorf("expected trailing single-sentence span, got %+v", last)
	}
}

func TestJoin_HandBuiltSpan(t *testing.T) {
	sentences := []string{"Rinse the lentils.", "Sweat the onions.", "Simmer gently."}
	got := Join(sentences, Span{Start: 1, End: 3})
	want := "Sweat the onions. Simmer gently."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSpans_OversizedSentenceSkipped(t *testing.T) {
	sentences := []string{strings.Repeat("x", 50) + ".", "short."}
	spans := Spans(sentences, 20)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	if spans[0].Start != 1 {
		t.Errorf("expected span to start at sentence 1, got %+v", spans[0])
	}
}

func TestSpans_Empty(t *testing.T) {
	if spans := Spans(nil, 100); len(spans) != 0 {
		t.Errorf("expected no spans, got %+v", spans)
	}
}

func TestTruncate_WordBoundary(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog"
	got := Truncate(text, 20)
	if utf8.RuneCountInString(got) > 20 {
		t.Errorf("expected at most 20 chars, got %d (%q)", utf8.RuneCountInString(got), got)
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if got != "The quick brown..." {
		t.Errorf("expected cut at word boundary, got %q", got)
	}
}

func TestTruncate_ShortTextUnchanged(t *testing.T) {
	if got := Truncate("short", 20); got != "short" {
		t.Errorf("expected unchanged text, got %q", got)
	}
}
