package section

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/document"
)

// FallbackTitle is used when nothing on a page resembles a title.
const FallbackTitle = document.FallbackTitle

var (
	bulletRe      = regexp.MustCompile(`^[\s•◦▪\-*\x{f0b7}\x{f0a7}]+`)
	numberingRe   = regexp.MustCompile(`^((\d+(\.\d+)*)|([IVXLC]+))[.)]?\s+`)
	measurementRe = regexp.MustCompile(`^\d+(\.\d+|/\d+)?\s*(cups?|tablespoons?|tbsp|teaspoons?|tsp|pounds?|lbs?|ounces?|oz|grams?|g|kg|ml|liters?|litres?|cloves?|pinch)\b`)
	nonTitleRe    = regexp.MustCompile(`[^\p{L}\p{N}\s\-&']`)
)

// Recipe and procedure sub-headings: these label parts of a section, they
// do not start one.
var subHeadings = []string{
	"ingredients", "instructions", "directions", "method",
	"serves", "servings", "prep time", "cook time", "notes",
}

var functionWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "with": true,
	"for": true, "in": true, "on": true, "at": true, "a": true,
	"an": true, "of": true, "to": true, "is": true, "it": true,
}

// isTitle decides whether a raw text line looks like a section heading.
func isTitle(line string, maxChars int) bool {
	clean := bulletRe.ReplaceAllString(line, "")
	n := utf8.RuneCountInString(clean)
	if n < 3 || n > maxChars {
		return false
	}
	if strings.ContainsRune(".,;!?", lastRune(clean)) {
		return false
	}

	lower := strings.ToLower(clean)
	if measurementRe.MatchString(lower) || isSubHeading(lower) {
		return false
	}

	core := numberingRe.ReplaceAllString(clean, "")
	words := strings.Fields(core)
	if len(words) == 0 || len(words) > 12 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(core)
	if !unicode.IsUpper(first) && !unicode.IsDigit(first) {
		return false
	}
	if functionWords[strings.ToLower(words[0])] || isSubHeading(strings.ToLower(core)) {
		return false
	}
	return isAllCaps(core) || isTitleCase(words)
}

// cleanTitle strips bullets and a trailing colon; numbering is kept.
func cleanTitle(line string) string {
	t := bulletRe.ReplaceAllString(line, "")
	t = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), ":"))
	return t
}

// SynthesizeTitle builds a title for text that has none: the first
// meaningful line among the first five, else the first six words longer
// than two characters, else FallbackTitle. The result is never empty.
func SynthesizeTitle(lines []string) string {
	for i, line := range lines {
		if i == 5 {
			break
		}
		n := utf8.RuneCountInString(line)
		if n < 3 || n > 80 {
			continue
		}
		t := bulletRe.ReplaceAllString(line, "")
		t = numberingRe.ReplaceAllString(t, "")
		t = strings.Join(strings.Fields(nonTitleRe.ReplaceAllString(t, "")), " ")
		if len(strings.Fields(t)) >= 2 && utf8.RuneCountInString(t) <= 60 && !isSubHeading(strings.ToLower(t)) {
			return t
		}
	}

	var words []string
	for _, w := range strings.Fields(strings.Join(lines, " ")) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
		if len(words) == 6 {
			break
		}
	}
	if len(words) > 0 {
		t := strings.Join(words, " ")
		if r := []rune(t); len(r) > 50 {
			t = string(r[:50]) + "..."
		}
		return t
	}
	return FallbackTitle
}

func isSubHeading(lower string) bool {
	for _, p := range subHeadings {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 2
}

// isTitleCase requires every word of four or more letters to be
// capitalised.
func isTitleCase(words []string) bool {
	for _, w := range words {
		letters := 0
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		if letters < 4 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(strings.TrimLeft(w, `"'(“‘`))
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
