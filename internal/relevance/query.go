package relevance

import (
	"regexp"
	"sort"
	"strings"
)

// Tiers groups query keywords by importance. Each term appears in exactly
// one tier, the highest it was derived for.
type Tiers struct {
	High   []string
	Medium []string
	Low    []string
}

// Len is the total number of keywords.
func (t Tiers) Len() int { return len(t.High) + len(t.Medium) + len(t.Low) }

// Query is the persona and job a run ranks against, with keywords derived
// once up front.
type Query struct {
	Persona  string
	Job      string
	Keywords Tiers
}

// Text is the string the TF-IDF model vectorizes for the query.
func (q Query) Text() string {
	return strings.TrimSpace(q.Persona + " " + q.Job)
}

var (
	quotedRe  = regexp.MustCompile(`["“]([^"“”]+)["”]`)
	jobWordRe = regexp.MustCompile(`\p{L}+`)
)

// NewQuery derives tiered keywords from the persona's vocabulary in the
// profile and from the job text: action verbs and quoted phrases rank
// high, other words of five or more letters rank medium.
func NewQuery(persona, job string, p Profile) Query {
	high := make(map[string]bool)
	medium := make(map[string]bool)
	low := make(map[string]bool)

	if pr, ok := findPersona(persona, p.Personas); ok {
		addAll(high, pr.High)
		addAll(medium, pr.Medium)
		addAll(low, pr.Low)
	}

	lowerJob := strings.ToLower(job)
	if re := actionRe(p.ActionWords); re != nil {
		addAll(high, re.FindAllString(lowerJob, -1))
	}
	for _, m := range quotedRe.FindAllStringSubmatch(job, -1) {
		addAll(high, []string{m[1]})
	}
	for _, w := range jobWordRe.FindAllString(lowerJob, -1) {
		if len([]rune(w)) >= 5 && !stopWords[w] {
			medium[w] = true
		}
	}

	for t := range high {
		delete(medium, t)
		delete(low, t)
	}
	for t := range medium {
		delete(low, t)
	}

	return Query{
		Persona: persona,
		Job:     job,
		Keywords: Tiers{
			High:   sortedKeys(high),
			Medium: sortedKeys(medium),
			Low:    sortedKeys(low),
		},
	}
}

// findPersona matches the role exactly (ignoring case), then by
// containment in either direction.
func findPersona(role string, personas []Persona) (Persona, bool) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return Persona{}, false
	}
	for _, p := range personas {
		if strings.ToLower(p.Role) == role {
			return p, true
		}
	}
	for _, p := range personas {
		pr := strings.ToLower(p.Role)
		if strings.Contains(role, pr) || strings.Contains(pr, role) {
			return p, true
		}
	}
	return Persona{}, false
}

func actionRe(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\w*\b`)
}

func addAll(set map[string]bool, terms []string) {
	for _, t := range terms {
		t = strings.ToLower(strings.Join(strings.Fields(t), " "))
		if t != "" {
			set[t] = true
		}
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
