// Package textvec converts raw text into fixed-width numeric feature vectors.
//
// It provides two fit/transform vectorizers: BagOfWords, which counts
// occurrences of the most frequent corpus tokens, and TfIdf, which weights
// term counts by inverse document frequency.
//
//	bow := textvec.NewBagOfWords(1000)
//	rows, _ := bow.Fit(corpus).Transform(texts)
//	for _, row := range rows {
//	    fmt.Println(row) // one float32 vector per input text
//	}
package textvec

import "errors"

// ErrNotFitted is returned by Transform when the transformer has not been
// fitted to a corpus yet.
var ErrNotFitted = errors.New("textvec: transform called before fit")

// Transformer is the contract shared by all vectorizers: learn state from a
// training corpus once, then map arbitrary texts onto that state.
type Transformer interface {
	// Fit learns vectorization state from the corpus and returns the
	// transformer itself so calls can be chained.
	Fit(corpus []string) Transformer

	// Transform converts texts to feature rows, one float32 row per text.
	// It returns ErrNotFitted when called before Fit.
	Transform(texts []string) ([][]float32, error)
}

// FitTransform fits t on the corpus and transforms that same corpus.
func FitTransform(t Transformer, corpus []string) ([][]float32, error) {
	return t.Fit(corpus).Transform(corpus)
}
