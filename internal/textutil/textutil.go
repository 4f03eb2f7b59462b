// Package textutil provides the text primitives shared by the vectorizers
// and the corpus loader.
package textutil

import (
	"regexp"
	"strings"
)

// Tokenize splits text on whitespace. This is the only tokenization the
// vectorizers perform: no lowercasing, punctuation stripping, or stemming.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// Normalize lowercases text and normalizes whitespace.
func Normalize(text string) string {
	return NormalizeWhitespaces(strings.ToLower(text))
}
