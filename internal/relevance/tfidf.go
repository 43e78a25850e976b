package relevance

import (
	"math"
	"sort"
)

// entry is one non-zero component of a sparse vector.
type entry struct {
	idx int
	w   float64
}

// sparse vectors keep entries sorted by idx so that dot products always
// sum in the same order.
type sparse []entry

// vectorizer is a TF-IDF model fitted on a fixed corpus. Vocabulary
// indices follow lexicographic term order.
type vectorizer struct {
	cfg   TFIDF
	vocab map[string]int
	idf   []float64
}

// fitVectorizer builds the vocabulary and IDF table from the n-grams of
// each corpus document.
func fitVectorizer(docs [][]string, cfg TFIDF) *vectorizer {
	n := len(docs)
	df := make(map[string]int)
	total := make(map[string]int)
	for _, grams := range docs {
		seen := make(map[string]bool, len(grams))
		for _, g := range grams {
			total[g]++
			if !seen[g] {
				seen[g] = true
				df[g]++
			}
		}
	}

	maxDocs := cfg.MaxDF * float64(n)
	terms := make([]string, 0, len(df))
	for term, d := range df {
		if cfg.MaxDF < 1 && float64(d) > maxDocs {
			continue
		}
		terms = append(terms, term)
	}

	if cfg.MaxFeatures > 0 && len(terms) > cfg.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:cfg.MaxFeatures]
	}
	sort.Strings(terms)

	v := &vectorizer{
		cfg:   cfg,
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, term := range terms {
		v.vocab[term] = i
		v.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
	return v
}

// transform returns the L2-normalised sublinear TF-IDF vector of a
// document's n-grams. Out-of-vocabulary n-grams are ignored.
func (v *vectorizer) transform(grams []string) sparse {
	counts := make(map[int]int)
	for _, g := range grams {
		if idx, ok := v.vocab[g]; ok {
			counts[idx]++
		}
	}

	vec := make(sparse, 0, len(counts))
	for idx, c := range counts {
		vec = append(vec, entry{idx: idx, w: (1 + math.Log(float64(c))) * v.idf[idx]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].idx < vec[j].idx })

	var norm float64
	for _, e := range vec {
		norm += e.w * e.w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].w /= norm
	}
	return vec
}

// cosine is the dot product of two normalised vectors.
func cosine(a, b sparse) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].idx == b[j].idx:
			dot += a[i].w * b[j].w
			i++
			j++
		case a[i].idx < b[j].idx:
			i++
		default:
			j++
		}
	}
	return dot
}

// similarities scores every document against the query text. Fewer than
// two documents, an empty vocabulary or a query sharing no terms with the
// corpus all give zeros.
func similarities(query string, docs []string, cfg TFIDF) []float64 {
	sims := make([]float64, len(docs))
	if len(docs) < 2 {
		return sims
	}

	grams := make([][]string, len(docs))
	for i, d := range docs {
		grams[i] = ngrams(tokenize(d), cfg.NgramMin, cfg.NgramMax)
	}
	v := fitVectorizer(grams, cfg)
	if len(v.vocab) == 0 {
		return sims
	}

	q := v.transform(ngrams(tokenize(query), cfg.NgramMin, cfg.NgramMax))
	if len(q) == 0 {
		return sims
	}
	for i := range docs {
		sims[i] = clamp(cosine(q, v.transform(grams[i])), 0, 1)
	}
	return sims
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
