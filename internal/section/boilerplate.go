package section

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/docrank/internal/document"
)

var (
	pageNumberRe = regexp.MustCompile(`(?i)^(page\s*)?[-–—]?\s*\d+\s*[-–—]?(\s*(of|/)\s*\d+)?$`)
	copyrightRe  = regexp.MustCompile(`(?i)^(©|\(c\)\s*\d{4}|copyright\b)|all rights reserved`)
	numericRe    = regexp.MustCompile(`^[$€£]?[-+(]?\d[\d,.:/]*\)?%?$`)
)

// isBoilerplate reports lines that never carry section content.
func isBoilerplate(line string) bool {
	if pageNumberRe.MatchString(line) || copyrightRe.MatchString(line) {
		return true
	}
	return strings.IndexFunc(line, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) < 0
}

// repeatedLines finds running headers and footers: lines present on at
// least ratio of a document's pages. Documents with fewer than three pages
// have none.
func repeatedLines(pages []document.Page, ratio float64) map[string]bool {
	if len(pages) < 3 {
		return nil
	}

	counts := make(map[string]int)
	for _, page := range pages {
		seen := make(map[string]bool)
		for _, raw := range strings.Split(page.Text, "\n") {
			line := strings.Join(strings.Fields(raw), " ")
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			counts[line]++
		}
	}

	threshold := int(math.Ceil(ratio * float64(len(pages))))
	if threshold < 2 {
		threshold = 2
	}
	repeated := make(map[string]bool)
	for line, n := range counts {
		if n >= threshold {
			repeated[line] = true
		}
	}
	return repeated
}

// isTablePage reports pages dominated by numeric rows.
func isTablePage(lines []string, ratio float64) bool {
	if len(lines) < 4 {
		return false
	}
	numeric := 0
	for _, line := range lines {
		if isNumericLine(line) {
			numeric++
		}
	}
	return float64(numeric) >= ratio*float64(len(lines))
}

func isNumericLine(line string) bool {
	tokens := strings.Fields(line)
	n := 0
	for _, tok := range tokens {
		if numericRe.MatchString(tok) {
			n++
		}
	}
	return n*2 > len(tokens)
}
