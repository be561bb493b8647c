// Package snippet extracts "why it matched" sentences from session
// transcripts for the limber CLI tool.
//
// Given a query token set and a transcript, it returns the first few
// sentences that actually mention a query token, skipping filler sentences —
// the greetings, channel plugs, and sign-offs instructional videos open and
// close with. Filler detection uses stemmed-stopword ratio analysis over a
// fixed word list.
package snippet

import (
	"log/slog"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"

	"github.com/chriscorrea/limber/internal/token"
)

// fillerStopwords contains stemmed words common in instructional-video
// intros, outros, and promotion rather than in actual movement instruction
var fillerStopwords = map[string]struct{}{
	// --- Greetings & Sign-offs ---
	"welcom":  {},
	"hello":   {},
	"hi":      {},
	"hey":     {},
	"everyon": {},
	"today":   {},
	"goodby":  {},
	"namast":  {},
	"thank":   {},
	"enjoy":   {},

	// --- Channel & Platform Promotion ---
	"channel":    {},
	"subscrib":   {},
	"like":       {},
	"comment":    {},
	"video":      {},
	"episod":     {},
	"notif":      {},
	"bell":       {},
	"link":       {},
	"download":   {},
	"app":        {},
	"membership": {},
	"premium":    {},

	// --- Meta Talk ---
	"seri":      {},
	"playlist":  {},
	"upload":    {},
	"week":      {},
	"join":      {},
	"communiti": {},
}

// fillerRatioThreshold marks a sentence as filler when at least this share
// of its words are filler stopwords
const fillerRatioThreshold = 0.25

// Find returns up to max transcript sentences that contain a query token,
// in transcript order, with filler sentences skipped.
//
// Sentence segmentation uses prose; tagging and entity extraction are
// disabled since only segmentation is needed. Segmentation failure or an
// empty transcript yields nil, never an error — snippets are decoration on
// top of the ranking, not part of it.
func Find(transcript string, query token.Set, max int) []string {
	if max <= 0 || strings.TrimSpace(transcript) == "" || len(query) == 0 {
		return nil
	}

	doc, err := prose.NewDocument(transcript,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		slog.Debug("Sentence segmentation failed", "error", err)
		return nil
	}

	var found []string
	for _, sent := range doc.Sentences() {
		text := strings.TrimSpace(sent.Text)
		if text == "" {
			continue
		}
		if !mentionsQuery(text, query) {
			continue
		}
		if isFiller(text) {
			slog.Debug("Skipping filler sentence", "sentence", text)
			continue
		}

		found = append(found, text)
		if len(found) == max {
			break
		}
	}

	return found
}

// mentionsQuery reports whether any query token occurs as a substring of the
// sentence, mirroring the transcript boost rule's matching.
func mentionsQuery(sentence string, query token.Set) bool {
	lower := strings.ToLower(sentence)
	for tok := range query {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// isFiller classifies a sentence as intro/outro/promo filler when the share
// of stemmed filler stopwords among its words crosses the threshold.
func isFiller(sentence string) bool {
	words := token.Tokenize(sentence)
	if len(words) == 0 {
		return true
	}

	fillerCount := 0
	for _, w := range words {
		stemmed, err := snowball.Stem(w, "english", true)
		if err != nil {
			// if stemming fails, use the original word
			stemmed = w
		}
		if _, ok := fillerStopwords[stemmed]; ok {
			fillerCount++
		}
	}

	return float64(fillerCount)/float64(len(words)) >= fillerRatioThreshold
}
