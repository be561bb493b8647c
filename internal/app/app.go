// Package app contains the core application logic for the limber CLI tool.
// It wires catalog loading, transcript loading, ranking, and output
// formatting together, separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chriscorrea/limber/internal/catalog"
	"github.com/chriscorrea/limber/internal/counter"
	"github.com/chriscorrea/limber/internal/fetch"
	"github.com/chriscorrea/limber/internal/rank"
	"github.com/chriscorrea/limber/internal/spinner"
	"github.com/chriscorrea/limber/internal/transcript"
)

// OutputFormat defines the output format for results
type OutputFormat int

const (
	// markdown output format (default)
	Markdown OutputFormat = iota
	// plaintext output format
	Text
	// JSON output format
	JSON
)

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	switch f {
	case Markdown:
		return "Markdown"
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Config holds all configuration options for one limber invocation.
type Config struct {
	Catalog            string // catalog source: file path, URL, or "-" for stdin
	TranscriptBase     string // directory or URL prefix for relative transcript refs
	TranscriptSelector string // CSS selector for HTML transcript pages

	Query   string // free-text description of the user's state
	Filter  string // substring filter over tags/level/title
	Sort    rank.SortMode
	TopN    int  // recommendation count
	Explain bool // include per-rule score breakdowns and transcript snippets

	// deep search
	SearchLimit int // max passages to print
	ChunkSize   int // passage size in characters

	// show
	ShowID         string
	MaxUnits       int // output budget for transcript excerpts; 0 = no limit
	CountingMethod counter.CountingMethod

	OutputFormat OutputFormat
	Quiet        bool // suppress progress output
}

// Run executes the ranking pipeline: load the catalog, load transcripts,
// rank against the query, and format the result.
//
// ctx allows for cancellation of catalog and transcript fetches; the ranking
// itself is synchronous and cheap.
func Run(ctx context.Context, cfg Config) (string, error) {
	sessions, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return "", err
	}

	transcripts := loadTranscripts(ctx, sessions, cfg)

	ranked := rank.Rank(cfg.Query, sessions, transcripts, cfg.Filter, cfg.Sort)

	// recommendations always come from the score-ordered view, whatever
	// order the list itself is displayed in
	scoreOrdered := ranked
	if cfg.Sort != rank.ByScore {
		scoreOrdered = rank.Rank(cfg.Query, sessions, transcripts, cfg.Filter, rank.ByScore)
	}
	recs := rank.Recommendations(scoreOrdered, cfg.TopN)

	return formatRanking(ranked, recs, transcripts, cfg)
}

// loadCatalog fetches and parses the catalog source.
func loadCatalog(ctx context.Context, source string) ([]catalog.Session, error) {
	if source == "" {
		return nil, fmt.Errorf("no catalog source provided")
	}

	rc, err := fetch.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer rc.Close()

	sessions, err := catalog.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %q: %w", source, err)
	}
	return sessions, nil
}

// loadTranscripts loads the transcript cache, with a spinner on stderr for
// the wait unless quiet. Failures inside are best-effort by design.
func loadTranscripts(ctx context.Context, sessions []catalog.Session, cfg Config) map[string]string {
	if !hasTranscriptRefs(sessions) {
		return map[string]string{}
	}

	if !cfg.Quiet {
		sp := spinner.New(os.Stderr, "Loading transcripts...")
		sp.Start(ctx)
		defer sp.Stop()
	}

	return transcript.Load(ctx, sessions, transcript.Options{
		BaseDir:  cfg.TranscriptBase,
		Selector: cfg.TranscriptSelector,
	})
}

func hasTranscriptRefs(sessions []catalog.Session) bool {
	for _, s := range sessions {
		if s.TranscriptRef != "" {
			return true
		}
	}
	return false
}

// truncateToUnits cuts text down to maxUnits counted words or characters,
// respecting word boundaries. Token budgets are handled separately by the
// token counter's own Truncate.
func truncateToUnits(text string, maxUnits int, c counter.Counter) string {
	if maxUnits <= 0 || c.Count(text) <= maxUnits {
		return text
	}

	words := strings.Fields(text)
	var b strings.Builder
	for _, w := range words {
		candidate := b.String()
		if candidate != "" {
			candidate += " "
		}
		candidate += w
		if c.Count(candidate) > maxUnits {
			break
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(w)
	}
	return b.String()
}
