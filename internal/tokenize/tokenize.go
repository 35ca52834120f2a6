// Package tokenize normalizes paper and query text into interned terms.
// Both sides go through the same lowercase-then-stem pipeline so query terms
// land on the same handles as document terms.
package tokenize

import (
	"strings"

	"github.com/blevesearch/go-porterstemmer"

	"github.com/Player01osu/paper-engine/internal/intern"
)

// Normalize lowercases and Porter-stems a single word.
func Normalize(word string) string {
	return porterstemmer.StemString(strings.ToLower(word))
}

// CountTerms splits text on whitespace and returns raw occurrence counts of
// the normalized, interned terms.
func CountTerms(text string, pool *intern.Pool) map[intern.Term]int {
	counts := make(map[intern.Term]int)
	for _, word := range strings.Fields(text) {
		counts[pool.Intern(Normalize(word))]++
	}
	return counts
}

// QueryTerms returns the query's terms in order. Repeated words stay
// repeated: the ranker weighs each occurrence.
func QueryTerms(query string, pool *intern.Pool) []intern.Term {
	words := strings.Fields(query)
	terms := make([]intern.Term, 0, len(words))
	for _, word := range words {
		terms = append(terms, pool.Intern(Normalize(word)))
	}
	return terms
}
