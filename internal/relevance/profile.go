package relevance

import (
	"errors"
	"fmt"
	"strings"
)

// Fields a rule can be matched against.
const (
	FieldTitle    = "title"
	FieldBody     = "body"
	FieldBoth     = "both"
	FieldDocument = "document" // document identifier, e.g. the file name

	WhenJob     = "job"
	WhenPersona = "persona"
	WhenAny     = "any"
)

// Profile is the complete, data-driven description of how candidates are
// scored. The zero value is not useful; start from DefaultProfile.
type Profile struct {
	Weights     Weights   `koanf:"weights"`
	TFIDF       TFIDF     `koanf:"tfidf"`
	ActionWords []string  `koanf:"action_words"` // Job verbs that become high-tier keywords
	Personas    []Persona `koanf:"personas"`
	Rules       []Rule    `koanf:"rules"`
}

// Weights holds the blend and keyword weighting.
//
// final = TFIDF*tfidf + Keyword*keyword + adjustment, clipped to
// [ScoreFloor, ScoreCeiling], where keyword = 1 - exp(-raw/Saturation) and
// raw sums tier weight times field multiplier over matched terms.
type Weights struct {
	TFIDF        float64 `koanf:"tfidf"`         // default 0.4
	Keyword      float64 `koanf:"keyword"`       // default 0.6
	High         float64 `koanf:"high"`          // default 3
	Medium       float64 `koanf:"medium"`        // default 2
	Low          float64 `koanf:"low"`           // default 1
	Title        float64 `koanf:"title"`         // title match multiplier, default 2
	Body         float64 `koanf:"body"`          // body match multiplier, default 1
	Saturation   float64 `koanf:"saturation"`    // raw score at which keyword reaches 1-1/e, default 6
	TitleBonus   float64 `koanf:"title_bonus"`   // added for multi-word, non-synthesized titles
	ScoreFloor   float64 `koanf:"score_floor"`   // default -1
	ScoreCeiling float64 `koanf:"score_ceiling"` // default 2
}

// TFIDF configures the vectorizer.
type TFIDF struct {
	NgramMin    int     `koanf:"ngram_min"`
	NgramMax    int     `koanf:"ngram_max"`
	MaxFeatures int     `koanf:"max_features"` // 0 = unlimited
	MaxDF       float64 `koanf:"max_df"`       // drop terms in more than this share of candidates
}

// Persona lists the tiered vocabulary of a known persona role.
type Persona struct {
	Role   string   `koanf:"role"`
	High   []string `koanf:"high"`
	Medium []string `koanf:"medium"`
	Low    []string `koanf:"low"`
}

// Rule is a declarative score adjustment. A rule is active for a query
// when any When term appears in the query field named by WhenField (all
// queries when When is empty). An active rule adds Weight once if any of
// its Terms appears in the candidate field named by AppliesTo (title and
// body when empty), or once per matched term when PerTerm is set.
type Rule struct {
	Name      string   `koanf:"name"`
	When      []string `koanf:"when"`
	WhenField string   `koanf:"when_field"`
	Terms     []string `koanf:"terms"`
	Weight    float64  `koanf:"weight"`
	AppliesTo string   `koanf:"applies_to"`
	PerTerm   bool     `koanf:"per_term"`
	Disabled  bool     `koanf:"disabled"`
}

// DefaultWeights returns the default blend.
func DefaultWeights() Weights {
	return Weights{
		TFIDF:        0.4,
		Keyword:      0.6,
		High:         3,
		Medium:       2,
		Low:          1,
		Title:        2,
		Body:         1,
		Saturation:   6,
		TitleBonus:   0.05,
		ScoreFloor:   -1,
		ScoreCeiling: 2,
	}
}

// DefaultTFIDF mirrors a conventional unigram-to-trigram setup.
func DefaultTFIDF() TFIDF {
	return TFIDF{NgramMin: 1, NgramMax: 3, MaxFeatures: 2000, MaxDF: 0.95}
}

// DefaultProfile returns the built-in personas and rules.
func DefaultProfile() Profile {
	return Profile{
		Weights: DefaultWeights(),
		TFIDF:   DefaultTFIDF(),
		ActionWords: []string{
			"prepare", "create", "analyze", "identify", "summarize",
			"review", "plan", "develop", "design", "build",
		},
		Personas: defaultPersonas(),
		Rules:    defaultRules(),
	}
}

func defaultPersonas() []Persona {
	return []Persona{
		{
			Role:   "Travel Planner",
			High:   []string{"itinerary", "accommodation", "transportation", "attractions", "budget", "booking", "schedule"},
			Medium: []string{"travel", "trip", "vacation", "hotel", "restaurant", "activity", "tour", "destination"},
			Low:    []string{"guide", "tips", "culture", "history", "food", "shopping"},
		},
		{
			Role:   "HR Professional",
			High:   []string{"onboarding", "compliance", "workflow", "forms", "signatures", "employee", "digital"},
			Medium: []string{"management", "process", "document", "training", "policy", "procedure"},
			Low:    []string{"create", "edit", "share", "convert", "export"},
		},
		{
			Role:   "Food Contractor",
			High:   []string{"menu", "catering", "buffet", "corporate", "vegetarian", "gluten-free", "dinner", "recipe"},
			Medium: []string{"meal", "ingredient", "cooking", "preparation", "serving", "nutrition"},
			Low:    []string{"breakfast", "lunch", "snack", "appetizer", "dessert"},
		},
		{
			Role:   "PhD Researcher",
			High:   []string{"methodology", "dataset", "benchmark", "evaluation", "literature", "review", "analysis"},
			Medium: []string{"research", "study", "experiment", "result", "conclusion", "hypothesis"},
			Low:    []string{"paper", "journal", "citation", "reference", "abstract"},
		},
		{
			Role:   "Investment Analyst",
			High:   []string{"revenue", "profit", "investment", "market", "financial", "analysis", "trend"},
			Medium: []string{"company", "performance", "strategy", "growth", "risk", "portfolio"},
			Low:    []string{"report", "quarter", "annual", "earnings", "stock"},
		},
		{
			Role:   "Student",
			High:   []string{"exam", "study", "concept", "mechanism", "theory", "practice", "preparation"},
			Medium: []string{"chapter", "topic", "subject", "learning", "understand", "knowledge"},
			Low:    []string{"textbook", "course", "class", "assignment", "homework"},
		},
	}
}

func defaultRules() []Rule {
	return []Rule{
		{
			Name:      "vegetarian-bonus",
			When:      []string{"vegetarian", "vegan"},
			WhenField: WhenJob,
			Terms:     []string{"vegetarian", "vegan", "plant-based", "tofu", "beans", "lentils", "quinoa", "vegetables"},
			Weight:    0.1,
			AppliesTo: FieldBoth,
		},
		{
			Name:      "vegetarian-meat-penalty",
			When:      []string{"vegetarian", "vegan"},
			WhenField: WhenJob,
			Terms:     []string{"beef", "chicken", "pork", "lamb", "turkey", "fish", "salmon", "tuna", "meat", "poultry"},
			Weight:    -0.4,
			AppliesTo: FieldBoth,
		},
		{
			Name:      "gluten-free-bonus",
			When:      []string{"gluten-free"},
			WhenField: WhenJob,
			Terms:     []string{"gluten-free", "rice", "corn", "quinoa"},
			Weight:    0.08,
			AppliesTo: FieldBoth,
		},
		{
			Name:      "gluten-penalty",
			When:      []string{"gluten-free"},
			WhenField: WhenJob,
			Terms:     []string{"wheat", "flour", "bread", "pasta", "barley", "rye"},
			Weight:    -0.2,
			AppliesTo: FieldBoth,
		},
		{
			Name:      "buffet-bonus",
			When:      []string{"buffet"},
			WhenField: WhenJob,
			Terms:     []string{"buffet", "serving", "large batch", "crowd", "party", "catering"},
			Weight:    0.05,
			AppliesTo: FieldBoth,
		},
		{
			Name:      "dinner-document",
			When:      []string{"dinner"},
			WhenField: WhenJob,
			Terms:     []string{"dinner"},
			Weight:    0.12,
			AppliesTo: FieldDocument,
		},
		{
			Name:      "breakfast-document",
			When:      []string{"breakfast"},
			WhenField: WhenJob,
			Terms:     []string{"breakfast"},
			Weight:    0.12,
			AppliesTo: FieldDocument,
		},
		{
			Name:      "lunch-document",
			When:      []string{"lunch"},
			WhenField: WhenJob,
			Terms:     []string{"lunch"},
			Weight:    0.12,
			AppliesTo: FieldDocument,
		},
		{
			Name:      "breakfast-document-for-dinner",
			When:      []string{"dinner"},
			WhenField: WhenJob,
			Terms:     []string{"breakfast"},
			Weight:    -0.1,
			AppliesTo: FieldDocument,
		},
		{
			Name:      "corporate-dessert-penalty",
			When:      []string{"corporate"},
			WhenField: WhenJob,
			Terms:     []string{"dessert"},
			Weight:    -0.05,
			AppliesTo: FieldBoth,
		},
		{
			Name:      "academic-vocabulary",
			When:      []string{"researcher", "phd", "student", "academic"},
			WhenField: WhenPersona,
			Terms:     []string{"methodology", "dataset", "benchmark", "evaluation", "literature", "study", "research", "analysis", "experiment"},
			Weight:    0.03,
			AppliesTo: FieldBoth,
			PerTerm:   true,
		},
		{
			Name:      "business-vocabulary",
			When:      []string{"analyst", "investment", "business"},
			WhenField: WhenPersona,
			Terms:     []string{"revenue", "profit", "market", "financial", "growth", "strategy", "investment", "performance"},
			Weight:    0.03,
			AppliesTo: FieldBoth,
			PerTerm:   true,
		},
		{
			Name:      "travel-vocabulary",
			When:      []string{"travel"},
			WhenField: WhenPersona,
			Terms:     []string{"hotel", "restaurant", "attraction", "tour", "booking", "itinerary", "destination"},
			Weight:    0.03,
			AppliesTo: FieldBoth,
			PerTerm:   true,
		},
	}
}

// Validate checks that the profile can produce meaningful scores.
func (p Profile) Validate() error {
	var errs []error
	w := p.Weights
	if w.TFIDF < 0 || w.Keyword < 0 || w.TFIDF+w.Keyword == 0 {
		errs = append(errs, fmt.Errorf("weights.tfidf and weights.keyword must be non-negative and not both zero"))
	}
	if w.High < 0 || w.Medium < 0 || w.Low < 0 || w.Title < 0 || w.Body < 0 {
		errs = append(errs, fmt.Errorf("tier weights and field multipliers must be non-negative"))
	}
	if w.Saturation <= 0 {
		errs = append(errs, fmt.Errorf("weights.saturation must be positive, got %v", w.Saturation))
	}
	if w.ScoreFloor >= w.ScoreCeiling {
		errs = append(errs, fmt.Errorf("weights.score_floor (%v) must be below weights.score_ceiling (%v)", w.ScoreFloor, w.ScoreCeiling))
	}

	t := p.TFIDF
	if t.NgramMin < 1 || t.NgramMax < t.NgramMin {
		errs = append(errs, fmt.Errorf("tfidf ngram range [%d,%d] is invalid", t.NgramMin, t.NgramMax))
	}
	if t.MaxFeatures < 0 {
		errs = append(errs, fmt.Errorf("tfidf.max_features must be >= 0"))
	}
	if t.MaxDF <= 0 || t.MaxDF > 1 {
		errs = append(errs, fmt.Errorf("tfidf.max_df must be in (0,1], got %v", t.MaxDF))
	}

	for i, r := range p.Rules {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("rules[%d]: name is required", i))
		}
		if len(r.Terms) == 0 {
			errs = append(errs, fmt.Errorf("rule %q: terms must not be empty", r.Name))
		}
		switch r.AppliesTo {
		case "", FieldTitle, FieldBody, FieldBoth, FieldDocument:
		default:
			errs = append(errs, fmt.Errorf("rule %q: applies_to %q must be one of title, body, both, document", r.Name, r.AppliesTo))
		}
		switch r.WhenField {
		case "", WhenJob, WhenPersona, WhenAny:
		default:
			errs = append(errs, fmt.Errorf("rule %q: when_field %q must be one of job, persona, any", r.Name, r.WhenField))
		}
	}
	for i, pr := range p.Personas {
		if strings.TrimSpace(pr.Role) == "" {
			errs = append(errs, fmt.Errorf("personas[%d]: role is required", i))
		}
	}
	return errors.Join(errs...)
}

// DisableRules marks the named rules disabled and returns the names that
// did not match any rule.
func (p *Profile) DisableRules(names ...string) []string {
	var unknown []string
	for _, name := range names {
		found := false
		for i := range p.Rules {
			if p.Rules[i].Name == name {
				p.Rules[i].Disabled = true
				found = true
			}
		}
		if !found {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
