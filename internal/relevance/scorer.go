// Package relevance scores section candidates against a persona and job.
//
// A candidate's score blends TF-IDF cosine similarity between the query
// text and the candidate with a saturating keyword score, then adds the
// adjustments of any domain rules that fire. Everything tunable lives in
// a Profile so rules and vocabularies are data, not code.
package relevance

import (
	"math"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// ScoredSection is a candidate with its score components.
type ScoredSection struct {
	document.Section
	TFIDF      float64 // cosine similarity, [0,1]
	Keyword    float64 // saturated keyword score, [0,1)
	Adjustment float64 // title bonus plus fired rules
	Final      float64
}

// Scorer applies a Profile. It is safe for concurrent use.
type Scorer struct {
	profile Profile
}

// NewScorer returns a Scorer for p.
func NewScorer(p Profile) *Scorer {
	return &Scorer{profile: p}
}

// Profile returns the profile the scorer applies.
func (s *Scorer) Profile() Profile { return s.profile }

// Score returns one ScoredSection per candidate, in input order. The TF-IDF
// component depends on the whole candidate set, so callers must pass the
// complete pooled corpus in one call.
func (s *Scorer) Score(q Query, candidates []document.Section) []ScoredSection {
	out := make([]ScoredSection, 0, len(candidates))
	if len(candidates) == 0 {
		return out
	}

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = c.Title + "\n" + c.Body
	}
	sims := similarities(q.Text(), docs, s.profile.TFIDF)

	ev := s.evaluator(q)
	w := s.profile.Weights
	for i, c := range candidates {
		kw := 1 - math.Exp(-ev.keywordRaw(c.Title, c.Body)/w.Saturation)
		adj := ev.adjustment(c)
		out = append(out, ScoredSection{
			Section:    c,
			TFIDF:      sims[i],
			Keyword:    kw,
			Adjustment: adj,
			Final:      clamp(w.TFIDF*sims[i]+w.Keyword*kw+adj, w.ScoreFloor, w.ScoreCeiling),
		})
	}
	return out
}

// PassageScorer returns a function rating a text fragment against q with
// the keyword tiers and the body rules. Only relative order matters.
func (s *Scorer) PassageScorer(q Query) func(text string) float64 {
	ev := s.evaluator(q)
	return func(text string) float64 {
		score := ev.keywordRaw("", text)
		for _, r := range ev.rules {
			if r.appliesTo != FieldTitle && r.appliesTo != FieldDocument {
				score += r.fire(text)
			}
		}
		return score
	}
}

type tierMatchers struct {
	weight   float64
	matchers []matcher
}

type activeRule struct {
	name      string
	weight    float64
	appliesTo string
	perTerm   bool
	terms     []matcher
}

// evaluator holds the compiled matchers for one query.
type evaluator struct {
	weights Weights
	tiers   []tierMatchers
	rules   []activeRule
}

func (s *Scorer) evaluator(q Query) *evaluator {
	w := s.profile.Weights
	ev := &evaluator{
		weights: w,
		tiers: []tierMatchers{
			{weight: w.High, matchers: newMatchers(q.Keywords.High)},
			{weight: w.Medium, matchers: newMatchers(q.Keywords.Medium)},
			{weight: w.Low, matchers: newMatchers(q.Keywords.Low)},
		},
	}
	for _, r := range s.profile.Rules {
		if r.Disabled || !ruleActive(r, q) {
			continue
		}
		ev.rules = append(ev.rules, activeRule{
			name:      r.Name,
			weight:    r.Weight,
			appliesTo: r.AppliesTo,
			perTerm:   r.PerTerm,
			terms:     newMatchers(r.Terms),
		})
	}
	return ev
}

func ruleActive(r Rule, q Query) bool {
	if len(r.When) == 0 {
		return true
	}
	var text string
	switch r.WhenField {
	case WhenJob:
		text = q.Job
	case WhenPersona:
		text = q.Persona
	default:
		text = q.Persona + "\n" + q.Job
	}
	for _, m := range newMatchers(r.When) {
		if m.in(text) {
			return true
		}
	}
	return false
}

// keywordRaw sums tier weight times field multiplier for every keyword
// present in the title and body. Each term counts at most once per field.
func (ev *evaluator) keywordRaw(title, body string) float64 {
	var raw float64
	for _, tier := range ev.tiers {
		for _, m := range tier.matchers {
			if m.in(title) {
				raw += tier.weight * ev.weights.Title
			}
			if m.in(body) {
				raw += tier.weight * ev.weights.Body
			}
		}
	}
	return raw
}

func (ev *evaluator) adjustment(c document.Section) float64 {
	var adj float64
	if isQualityTitle(c.Title) {
		adj += ev.weights.TitleBonus
	}
	for _, r := range ev.rules {
		switch r.appliesTo {
		case FieldTitle:
			adj += r.fire(c.Title)
		case FieldBody:
			adj += r.fire(c.Body)
		case FieldBoth, "":
			adj += r.fire(c.Title + "\n" + c.Body)
		case FieldDocument:
			adj += r.fire(c.DocumentID)
		}
	}
	return adj
}

// fire returns the rule's contribution for text.
func (r activeRule) fire(text string) float64 {
	var total float64
	for _, m := range r.terms {
		if !m.in(text) {
			continue
		}
		if !r.perTerm {
			return r.weight
		}
		total += r.weight
	}
	return total
}

// isQualityTitle accepts multi-word titles other than the extractor's
// placeholder.
func isQualityTitle(title string) bool {
	return len(strings.Fields(title)) >= 2 && title != document.FallbackTitle
}
