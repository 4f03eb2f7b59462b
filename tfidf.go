package textvec

import (
	"math"
	"sort"

	"github.com/happyhackingspace/textvec/internal/textutil"
)

// normEps keeps L2 normalization defined for all-zero rows.
const normEps = 1e-4

// TfIdf converts text to tf*idf weighted vectors. Term frequency is the raw
// in-text count and idf(term) = ln(N / (df+1)), where df counts the documents
// containing the term. The +1 smoothing means a term present in every
// document gets a slightly negative idf, ln(N/(N+1)); that is the intended
// result of applying the formula uniformly, not a defect.
type TfIdf struct {
	k         int // 0 keeps every corpus term
	normalize bool
	terms     []string
	idf       []float64
	index     map[string]int
	fitted    bool
}

// NewTfIdf creates a TfIdf keeping at most k terms, or every corpus term when
// k is 0. With normalize set, each transformed row is L2-normalized.
func NewTfIdf(k int, normalize bool) *TfIdf {
	if k < 0 {
		k = 0
	}
	return &TfIdf{k: k, normalize: normalize}
}

// Fit computes document frequency per whitespace token, keeps the k highest-df
// terms when k is set (dropped terms get no weight at all), and scores each
// kept term with idf = ln(N / (df+1)). Terms are stored in descending df
// order with lexicographic tie-break.
func (v *TfIdf) Fit(corpus []string) Transformer {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range textutil.Tokenize(doc) {
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.k > 0 && v.k < len(terms) {
		terms = terms[:v.k]
	}

	n := float64(len(corpus))
	v.terms = terms
	v.idf = make([]float64, len(terms))
	v.index = make(map[string]int, len(terms))
	for i, term := range terms {
		v.idf[i] = math.Log(n / float64(df[term]+1))
		v.index[term] = i
	}
	v.fitted = true
	return v
}

// Transform converts texts to tf*idf rows in the stored term order. Returns
// ErrNotFitted before Fit.
func (v *TfIdf) Transform(texts []string) ([][]float32, error) {
	if !v.fitted {
		return nil, ErrNotFitted
	}

	rows := make([][]float32, len(texts))
	for i, text := range texts {
		rows[i] = v.textToTfIdf(text)
	}
	return rows, nil
}

func (v *TfIdf) textToTfIdf(text string) []float32 {
	tf := make([]float64, len(v.terms))
	for _, tok := range textutil.Tokenize(text) {
		if idx, ok := v.index[tok]; ok {
			tf[idx]++
		}
	}

	weights := make([]float64, len(v.terms))
	for i := range weights {
		weights[i] = tf[i] * v.idf[i]
	}

	if v.normalize {
		var sum float64
		for _, w := range weights {
			sum += w * w
		}
		norm := math.Sqrt(sum) + normEps
		for i := range weights {
			weights[i] /= norm
		}
	}

	row := make([]float32, len(weights))
	for i, w := range weights {
		row[i] = float32(w)
	}
	return row
}

// Terms returns the retained terms in vector order, or nil before Fit.
func (v *TfIdf) Terms() []string {
	if !v.fitted {
		return nil
	}
	return v.terms
}

// VocabSize returns the number of retained terms.
func (v *TfIdf) VocabSize() int {
	return len(v.terms)
}
