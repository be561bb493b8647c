// Package counter provides text unit counting for the limber CLI tool.
//
// `limber show` truncates transcript excerpts and descriptions to a budget
// expressed in tokens (tiktoken cl100k_base), words, or characters; the
// Counter interface abstracts over those strategies.
package counter

import (
	"strings"
	"unicode/utf8"
)

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units in the given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the available counting strategies.
type CountingMethod int

const (
	// Tokens uses tiktoken with cl100k_base encoding (default)
	Tokens CountingMethod = iota
	// Words counts whitespace-separated words
	Words
	// Characters counts UTF-8 runes including whitespace
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Tokens:
		return "tokens"
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// NewCounter creates a Counter for the given method. Returns an error only
// when the token encoding cannot be initialized.
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Words:
		return WordCounter{}, nil
	case Characters:
		return CharCounter{}, nil
	default:
		return NewTokenCounter()
	}
}

// WordCounter counts words via whitespace splitting.
type WordCounter struct{}

// Count returns the number of whitespace-separated words in text.
func (WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

func (WordCounter) Name() string { return "words" }

// CharCounter counts UTF-8 runes, not bytes.
type CharCounter struct{}

// Count returns the number of runes in text, whitespace included.
func (CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

func (CharCounter) Name() string { return "characters" }
