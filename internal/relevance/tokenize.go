package relevance

import (
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}]{2,}`)

// tokenize lowercases text and returns its words of two or more letters or
// digits, minus English stop words.
func tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if !stopWords[t] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// ngrams joins consecutive tokens into n-grams for every n in [lo, hi].
func ngrams(tokens []string, lo, hi int) []string {
	var out []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

var stopWords = toSet(strings.Fields(`
a about above across after afterwards again against all almost alone along
already also although always am among amongst an and another any anyhow
anyone anything anyway anywhere are around as at be became because become
becomes becoming been before beforehand behind being below beside besides
between beyond both but by can cannot could did do does doing done down
due during each eg either else elsewhere enough etc even ever every
everyone everything everywhere except few for former formerly from further
had has have having he hence her here hereafter hereby herein hereupon hers
herself him himself his how however i ie if in indeed into is it its itself
just keep last latter latterly least less many may me meanwhile might mine
more moreover most mostly much must my myself namely neither never
nevertheless next no nobody none noone nor not nothing now nowhere of off
often on once one only onto or other others otherwise our ours ourselves out
over own per perhaps please rather re same seem seemed seeming seems several
she should since so some somehow someone something sometime sometimes
somewhere still such than that the their theirs them themselves then thence
there thereafter thereby therefore therein thereupon these they this those
though through throughout thru thus to together too toward towards under
until up upon us very via was we well were what whatever when whence
whenever where whereafter whereas whereby wherein whereupon wherever whether
which while whither who whoever whole whom whose why will with within
without would yet you your yours yourself yourselves
`))

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
