package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chriscorrea/limber/internal/rank"
	"github.com/chriscorrea/limber/internal/snippet"
	"github.com/chriscorrea/limber/internal/token"
)

// maxSnippets caps the transcript sentences shown per explained session
const maxSnippets = 2

// formatRanking renders the ranked view in the configured output format.
func formatRanking(ranked, recs []rank.Scored, transcripts map[string]string, cfg Config) (string, error) {
	switch cfg.OutputFormat {
	case JSON:
		return formatRankingJSON(ranked, recs, cfg.Query)
	case Text:
		return formatRankingText(ranked, recs, cfg.Filter), nil
	default:
		return formatRankingMarkdown(ranked, recs, transcripts, cfg), nil
	}
}

// rankingPayload is the JSON output shape.
type rankingPayload struct {
	Query           string        `json:"query,omitempty"`
	Recommendations []rank.Scored `json:"recommendations"`
	Results         []rank.Scored `json:"results"`
}

func formatRankingJSON(ranked, recs []rank.Scored, query string) (string, error) {
	payload := rankingPayload{
		Query:           strings.TrimSpace(query),
		Recommendations: recs,
		Results:         ranked,
	}
	if payload.Recommendations == nil {
		payload.Recommendations = []rank.Scored{}
	}
	if payload.Results == nil {
		payload.Results = []rank.Scored{}
	}
	return marshalJSON(payload)
}

func formatRankingText(ranked, recs []rank.Scored, filter string) string {
	var b strings.Builder

	for i, sc := range recs {
		fmt.Fprintf(&b, "pick %d: %s (%s)\n", i+1, sc.Session.Title, sessionMeta(sc))
	}
	if len(recs) > 0 {
		b.WriteString("\n")
	}

	for _, sc := range ranked {
		fmt.Fprintf(&b, "%3d  %s (%s)\n", sc.Score, sc.Session.Title, sessionMeta(sc))
	}

	if len(ranked) == 0 {
		b.WriteString(emptyRankingMessage(filter) + "\n")
	}
	return b.String()
}

// emptyRankingMessage distinguishes an empty catalog from a filter that
// excluded every session.
func emptyRankingMessage(filter string) string {
	if filter != "" {
		return "no sessions matched the filter"
	}
	return "no sessions in catalog"
}

func formatRankingMarkdown(ranked, recs []rank.Scored, transcripts map[string]string, cfg Config) string {
	var b strings.Builder

	if len(recs) > 0 {
		b.WriteString("## Recommended\n\n")
		for _, sc := range recs {
			fmt.Fprintf(&b, "- **%s** — %s\n", sc.Session.Title, sessionMeta(sc))
			if cfg.Explain {
				writeExplanation(&b, sc, transcripts, cfg.Query)
			}
		}
		b.WriteString("\n")
	} else if strings.TrimSpace(cfg.Query) != "" {
		b.WriteString("_No good match for that — here is the full list._\n\n")
	}

	if len(ranked) == 0 {
		if cfg.Filter != "" {
			b.WriteString("_No sessions matched the filter._\n")
		} else {
			b.WriteString("_No sessions in catalog._\n")
		}
		return b.String()
	}

	b.WriteString("## All sessions\n\n")
	b.WriteString("| Score | Session | Length | Level |\n")
	b.WriteString("|------:|---------|-------:|-------|\n")
	for _, sc := range ranked {
		fmt.Fprintf(&b, "| %d | %s | %d min | %s |\n",
			sc.Score, sc.Session.Title, sc.Session.LengthMin, sc.Session.Level)
	}

	return b.String()
}

// writeExplanation appends the per-rule score breakdown and, when the
// session has a transcript, the sentences that matched.
func writeExplanation(b *strings.Builder, sc rank.Scored, transcripts map[string]string, query string) {
	parts := make([]string, 0, 6)
	add := func(label string, v int) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", label, v))
		}
	}
	add("tags", sc.Breakdown.Tags)
	add("categories", sc.Breakdown.Categories)
	add("contraindication", sc.Breakdown.Contraindication)
	add("duration", sc.Breakdown.Duration)
	add("quick", sc.Breakdown.Quick)
	add("transcript", sc.Breakdown.Transcript)

	if len(parts) > 0 {
		fmt.Fprintf(b, "  - score: %s\n", strings.Join(parts, ", "))
	}

	if tx := transcripts[sc.Session.ID]; tx != "" && sc.Breakdown.Transcript > 0 {
		for _, sent := range snippet.Find(tx, token.SetOf(query), maxSnippets) {
			fmt.Fprintf(b, "  - “%s”\n", sent)
		}
	}
}

// marshalJSON renders any payload as indented JSON with a trailing newline.
func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(data) + "\n", nil
}

// sessionMeta is the short parenthetical shown after a session title.
func sessionMeta(sc rank.Scored) string {
	parts := []string{fmt.Sprintf("%d min", sc.Session.LengthMin)}
	if sc.Session.Level != "" {
		parts = append(parts, sc.Session.Level)
	}
	parts = append(parts, fmt.Sprintf("score %d", sc.Score))
	return strings.Join(parts, ", ")
}
