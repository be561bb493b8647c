// Package token provides text tokenization for the limber CLI tool.
//
// Tokenization here is intentionally simple and designed for keyword matching
// against session tags and transcripts: input is lowercased, every character
// outside [a-z0-9] is treated as whitespace, and the result is split into
// word units. There is no stemming, stop-word removal, or multi-language
// handling at this level.
package token

import (
	"regexp"
	"strings"
)

// nonAlnumRegex is compiled once at package initialization; it matches every
// run of characters that is neither an ASCII letter/digit nor whitespace
var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9\s]+`)

// Tokenize breaks text into normalized lowercase alphanumeric tokens.
// Empty or whitespace-only input yields an empty slice, never an error.
// The function is pure and idempotent: tokenizing already-normalized text
// returns the same tokens.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}

	// lowercase first so the regex only needs to handle [a-z0-9]
	text = strings.ToLower(text)

	// replace punctuation and other symbols with spaces, then split on
	// whitespace runs; strings.Fields drops empty tokens for us
	text = nonAlnumRegex.ReplaceAllString(text, " ")
	fields := strings.Fields(text)
	if fields == nil {
		return []string{}
	}
	return fields
}

// Set is a membership set of tokens, used by the scoring engine to test
// whether a query mentions a given word.
type Set map[string]struct{}

// NewSet builds a Set from a token slice. Duplicate tokens collapse.
func NewSet(tokens []string) Set {
	set := make(Set, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// SetOf tokenizes text and returns the resulting token set.
func SetOf(text string) Set {
	return NewSet(Tokenize(text))
}

// Contains reports whether tok is a member of the set.
func (s Set) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}

// ContainsAny reports whether any of the given words is a member of the set.
func (s Set) ContainsAny(words ...string) bool {
	for _, w := range words {
		if _, ok := s[w]; ok {
			return true
		}
	}
	return false
}
