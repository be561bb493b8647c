package score

import "github.com/chriscorrea/limber/internal/token"

// category is a fixed keyword-to-bonus heuristic matched against the query
// token set, independent of any session's own tags.
type category struct {
	name  string
	words []string
	bonus int
}

// categories is the static trigger table, fixed at compile time and never
// mutated. Matching is whole-token membership, not substring.
// TODO: expand word lists as real query logs accumulate
var categories = []category{
	{
		name:  "travel",
		words: []string{"flight", "flights", "flying", "flew", "plane", "airplane", "travel", "traveling", "travelling", "airport", "layover", "jetlag", "roadtrip"},
		bonus: 4,
	},
	{
		name:  "desk",
		words: []string{"desk", "sitting", "sit", "chair", "office", "computer", "typing", "slouch", "slouching", "hunched"},
		bonus: 3,
	},
	{
		name:  "energy",
		words: []string{"energy", "energize", "energized", "wake", "morning", "tired", "sluggish", "groggy", "boost"},
		bonus: 2,
	},
	{
		name:  "unwind",
		words: []string{"relax", "relaxing", "relaxed", "calm", "unwind", "stiff", "stiffness", "tight", "tightness", "tension", "sore"},
		bonus: 1,
	},
}

// kneeWords triggers the contraindication penalty rather than a bonus.
var kneeWords = []string{"knee", "knees", "kneecap", "kneeling", "patella"}

// matches reports whether the query token set triggers this category.
// The travel category has one extra trigger: a "trip" mentioned together
// with "back" ("back from a trip") counts even though "trip" alone is too
// ambiguous to sit in the word list.
func (c category) matches(query token.Set) bool {
	if query.ContainsAny(c.words...) {
		return true
	}
	if c.name == "travel" && query.Contains("trip") && query.Contains("back") {
		return true
	}
	return false
}
