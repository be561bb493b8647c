// Package score implements the relevance scoring engine for the limber CLI
// tool.
//
// A session's score against a query is the sum of a fixed set of independent
// additive rules; no rule short-circuits another and all rules see the same
// query token set:
//
//  1. tag matching: query tokens appearing in focuses (+3 each), intents
//     (+2 each), or vibe (+1 each) tags, compared by stem so singular and
//     plural forms match
//  2. keyword-category bonuses: travel +4, desk +3, energy +2, unwind +1
//  3. contraindication penalty: -2 for "acute knee pain" sessions on
//     knee-related queries
//  4. duration preference: triangular bonus around a requested "N min"
//  5. quick/short preference: +2 for sessions of 10 minutes or less
//  6. transcript boost: +1 per distinct query token found in the session's
//     transcript text, capped at 6
//
// Scoring is a pure function of (query token set, session, transcript entry):
// no hidden state, no ordering dependency between sessions, and identical
// inputs always yield identical scores.
package score

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/kljensen/snowball"

	"github.com/chriscorrea/limber/internal/catalog"
	"github.com/chriscorrea/limber/internal/token"
)

// tag list weights for rule 1
const (
	focusWeight  = 3
	intentWeight = 2
	vibeWeight   = 1
)

// kneeContraindication is the exact contraindication tag checked by rule 3.
const kneeContraindication = "acute knee pain"

// transcriptBoostCap limits rule 6's total contribution.
const transcriptBoostCap = 6

// durationRegex captures a 1-2 digit minute request like "15 min" or "3min".
// No trailing boundary: "15 minutes" matches too.
var durationRegex = regexp.MustCompile(`([0-9]{1,2})\s*min`)

// Breakdown records each rule's contribution to a session's score.
// The zero value is a zero score.
type Breakdown struct {
	Tags             int `json:"tags"`
	Categories       int `json:"categories"`
	Contraindication int `json:"contraindication"`
	Duration         int `json:"duration"`
	Quick            int `json:"quick"`
	Transcript       int `json:"transcript"`
}

// Total sums the rule contributions. The result may be negative.
func (b Breakdown) Total() int {
	return b.Tags + b.Categories + b.Contraindication + b.Duration + b.Quick + b.Transcript
}

// Score computes the relevance score for one session against a query.
//
// Parameters:
//   - query: the trimmed query text (used only for the duration pattern)
//   - querySet: the query's token set
//   - s: the catalog session to score
//   - transcript: the session's lowercased transcript text, or "" when the
//     transcript cache has no entry for it
//
// Returns the integer score, which may be negative. Absent tags and fields
// contribute zero; nothing here can fail.
func Score(query string, querySet token.Set, s catalog.Session, transcript string) int {
	return Explain(query, querySet, s, transcript).Total()
}

// Explain computes the per-rule score breakdown for one session against a
// query. Score is Explain's total; callers wanting the explainable view
// (e.g. --explain output) use Explain directly.
func Explain(query string, querySet token.Set, s catalog.Session, transcript string) Breakdown {
	var b Breakdown

	// rule 1: tag matching, weighted per matching token (not per tag);
	// tokens are compared by stem so "knees" in a tag matches "knee" in
	// the query
	queryStems := stemSet(querySet)
	b.Tags += tagMatches(queryStems, s.Focuses) * focusWeight
	b.Tags += tagMatches(queryStems, s.Intents) * intentWeight
	b.Tags += tagMatches(queryStems, s.Vibe) * vibeWeight

	// rule 2: keyword-category bonuses; independent, all may fire at once
	for _, c := range categories {
		if c.matches(querySet) {
			b.Categories += c.bonus
		}
	}

	// rule 3: knee contraindication penalty
	if querySet.ContainsAny(kneeWords...) && s.HasContraindication(kneeContraindication) {
		b.Contraindication = -2
	}

	// rule 4: duration preference
	if requested, ok := requestedMinutes(query); ok {
		b.Duration = durationBonus(s.LengthMin, requested)
	}

	// rule 5: quick/short preference
	if querySet.ContainsAny("quick", "short") && s.LengthMin <= 10 {
		b.Quick = 2
	}

	// rule 6: transcript boost, capped
	if transcript != "" {
		boost := 0
		for tok := range querySet {
			if strings.Contains(transcript, tok) {
				boost++
			}
		}
		if boost > transcriptBoostCap {
			boost = transcriptBoostCap
		}
		b.Transcript = boost
	}

	slog.Debug("Session scored", "id", s.ID, "total", b.Total(),
		"tags", b.Tags, "categories", b.Categories, "contra", b.Contraindication,
		"duration", b.Duration, "quick", b.Quick, "transcript", b.Transcript)
	return b
}

// tagMatches counts how many tokens across the given tags appear in the
// stemmed query set. A tag contributing multiple matching tokens counts
// multiple times.
func tagMatches(queryStems token.Set, tags []string) int {
	matches := 0
	for _, tag := range tags {
		for _, tok := range token.Tokenize(tag) {
			if queryStems.Contains(stem(tok)) {
				matches++
			}
		}
	}
	return matches
}

// stemSet maps every token in the set to its stem.
func stemSet(tokens token.Set) token.Set {
	stems := make(token.Set, len(tokens))
	for tok := range tokens {
		stems[stem(tok)] = struct{}{}
	}
	return stems
}

// stem reduces a token to its snowball stem; a token the stemmer cannot
// handle passes through unchanged.
func stem(tok string) string {
	stemmed, err := snowball.Stem(tok, "english", true)
	if err != nil || stemmed == "" {
		return tok
	}
	return stemmed
}

// requestedMinutes extracts a minute preference from the query text.
// Returns false when the query carries no digit+"min" pattern; that is the
// rule being skipped, never an error.
func requestedMinutes(query string) (int, bool) {
	m := durationRegex.FindStringSubmatch(strings.ToLower(query))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// durationBonus is a triangular bonus: 4 at an exact length match, decaying
// by one per ~5 minutes of difference, 0 from ~20 minutes out. Rounding is
// half up, which breaks exact half-integer ties toward the smaller bonus.
func durationBonus(lengthMin, requested int) int {
	diff := lengthMin - requested
	if diff < 0 {
		diff = -diff
	}
	steps := int(math.Round(float64(diff) / 5.0))
	if steps > 4 {
		steps = 4
	}
	return 4 - steps
}
