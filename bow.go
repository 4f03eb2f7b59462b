package textvec

import (
	"sort"

	"github.com/happyhackingspace/textvec/internal/textutil"
)

// BagOfWords converts text to token count vectors over a fixed vocabulary of
// the k most frequent corpus tokens.
type BagOfWords struct {
	k      int
	vocab  []string
	index  map[string]int
	fitted bool
}

// NewBagOfWords creates a BagOfWords keeping at most k vocabulary tokens.
func NewBagOfWords(k int) *BagOfWords {
	if k < 0 {
		k = 0
	}
	return &BagOfWords{k: k}
}

// Fit builds the vocabulary: every document is split on whitespace, token
// occurrences are counted across the whole corpus, and the k most frequent
// tokens are kept in descending count order. Count ties are broken
// lexicographically so fitting is deterministic.
func (b *BagOfWords) Fit(corpus []string) Transformer {
	counts := make(map[string]int)
	for _, doc := range corpus {
		for _, tok := range textutil.Tokenize(doc) {
			counts[tok]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if b.k < len(terms) {
		terms = terms[:b.k]
	}

	b.vocab = terms
	b.index = make(map[string]int, len(terms))
	for i, term := range terms {
		b.index[term] = i
	}
	b.fitted = true
	return b
}

// Transform converts texts to count vectors: entry (i, j) is the number of
// occurrences of vocabulary token j in text i. Tokens outside the vocabulary
// are ignored. Returns ErrNotFitted before Fit.
func (b *BagOfWords) Transform(texts []string) ([][]float32, error) {
	if !b.fitted {
		return nil, ErrNotFitted
	}

	rows := make([][]float32, len(texts))
	for i, text := range texts {
		row := make([]float32, len(b.vocab))
		for _, tok := range textutil.Tokenize(text) {
			if idx, ok := b.index[tok]; ok {
				row[idx]++
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// Vocabulary returns the learned tokens in vector order, or nil before Fit.
func (b *BagOfWords) Vocabulary() []string {
	if !b.fitted {
		return nil
	}
	return b.vocab
}

// VocabSize returns the vocabulary size.
func (b *BagOfWords) VocabSize() int {
	return len(b.vocab)
}
