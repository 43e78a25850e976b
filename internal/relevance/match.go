package relevance

import (
	"regexp"
	"strings"
)

var termSplitRe = regexp.MustCompile(`[\s\-]+`)

// matcher finds a term as a whole word or phrase, case-insensitively.
// Spaces and hyphens inside the term match either separator, and the last
// word may carry a plural "s" or "es".
type matcher struct {
	term string
	re   *regexp.Regexp
}

func newMatcher(term string) matcher {
	parts := termSplitRe.Split(strings.TrimSpace(strings.ToLower(term)), -1)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	pattern := `(?i)(?:^|[^\p{L}\p{N}])` + strings.Join(parts, `[\s\-]+`) + `(?:e?s)?(?:$|[^\p{L}\p{N}])`
	return matcher{term: term, re: regexp.MustCompile(pattern)}
}

func (m matcher) in(text string) bool {
	return text != "" && m.re.MatchString(text)
}

func newMatchers(terms []string) []matcher {
	out := make([]matcher, 0, len(terms))
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			out = append(out, newMatcher(t))
		}
	}
	return out
}
