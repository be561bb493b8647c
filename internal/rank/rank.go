// Package rank implements the ranking pipeline for the limber CLI tool.
//
// Ranking is a stateless full recomputation over an immutable catalog
// snapshot: score every session against the query, apply the free-text
// filter, and stable-sort by the chosen mode. The pipeline never mutates its
// inputs and caches nothing, so re-invocation with identical inputs yields
// an identical ordering.
package rank

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/chriscorrea/limber/internal/catalog"
	"github.com/chriscorrea/limber/internal/score"
	"github.com/chriscorrea/limber/internal/token"
)

// SortMode selects the ordering of ranked results.
type SortMode int

const (
	// ByScore orders by descending relevance score (default)
	ByScore SortMode = iota
	// ByLength orders by ascending session length in minutes
	ByLength
	// ByLevel orders by ascending lexicographic difficulty label
	ByLevel
)

// String returns the string representation of the sort mode.
func (m SortMode) String() string {
	switch m {
	case ByScore:
		return "score"
	case ByLength:
		return "length"
	case ByLevel:
		return "level"
	default:
		return "unknown"
	}
}

// ParseSortMode maps a sort flag value to a SortMode; unrecognized values
// fall back to ByScore.
func ParseSortMode(s string) SortMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "length":
		return ByLength
	case "level":
		return ByLevel
	default:
		return ByScore
	}
}

// Scored pairs a session with its relevance score for one query. Scored
// values are transient: they are recomputed on every ranking pass and never
// cached across queries.
type Scored struct {
	Session   catalog.Session `json:"session"`
	Score     int             `json:"score"`
	Breakdown score.Breakdown `json:"breakdown"`
}

// Rank scores and orders the catalog for one query.
//
// Parameters:
//   - query: free-text query; when trimmed-empty, every score is 0 and the
//     scoring rules are not evaluated
//   - sessions: immutable catalog snapshot
//   - transcripts: id -> lowercased transcript text; absent entries mean
//     "no transcript" and only skip the transcript boost
//   - filter: case-insensitive substring filter over each session's tag and
//     title surface; empty excludes nothing
//   - mode: sort order; equal keys preserve catalog order (stable sort)
//
// Returns the ordered scored view. An empty catalog yields an empty slice.
func Rank(query string, sessions []catalog.Session, transcripts map[string]string, filter string, mode SortMode) []Scored {
	query = strings.TrimSpace(query)
	querySet := token.SetOf(query)

	scored := make([]Scored, 0, len(sessions))
	for _, s := range sessions {
		entry := Scored{Session: s}
		if query != "" {
			entry.Breakdown = score.Explain(query, querySet, s, transcripts[s.ID])
			entry.Score = entry.Breakdown.Total()
		}
		scored = append(scored, entry)
	}

	scored = applyFilter(scored, filter)
	sortScored(scored, mode)

	slog.Debug("Ranking pass completed", "query", query, "catalogSize", len(sessions),
		"afterFilter", len(scored), "sort", mode.String())
	return scored
}

// Recommendations returns the leading positive-score items, at most n.
// When no session scores positive there is nothing to recommend, even though
// the full ranked list still exists.
func Recommendations(scored []Scored, n int) []Scored {
	if n <= 0 {
		return nil
	}
	var recs []Scored
	for _, sc := range scored {
		if sc.Score <= 0 {
			continue
		}
		recs = append(recs, sc)
		if len(recs) == n {
			break
		}
	}
	return recs
}

// applyFilter drops sessions whose filter surface does not contain the
// filter text (case-insensitive). Order is preserved.
func applyFilter(scored []Scored, filter string) []Scored {
	filter = strings.ToLower(filter)
	if filter == "" {
		return scored
	}

	kept := scored[:0]
	for _, sc := range scored {
		if strings.Contains(strings.ToLower(sc.Session.FilterText()), filter) {
			kept = append(kept, sc)
		}
	}
	return kept
}

// sortScored orders the slice in place. SliceStable keeps the original
// catalog order among equal keys, which keeps ties deterministic across runs.
func sortScored(scored []Scored, mode SortMode) {
	switch mode {
	case ByLength:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Session.LengthMin < scored[j].Session.LengthMin
		})
	case ByLevel:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Session.Level < scored[j].Session.Level
		})
	default:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
	}
}
