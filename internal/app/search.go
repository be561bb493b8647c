package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/chriscorrea/bm25md"

	"github.com/chriscorrea/limber/internal/chunk"
)

// passage is one transcript chunk attributed to its session.
type passage struct {
	SessionID    string  `json:"sessionId"`
	SessionTitle string  `json:"sessionTitle"`
	Text         string  `json:"text"`
	Score        float64 `json:"score"`
}

// Search runs deep lexical search over transcript passages: every loaded
// transcript is split into passage-sized chunks and the chunks are ranked
// against the query with BM25md. Sessions without transcripts are skipped;
// this is a best-effort view into the spoken content, separate from the
// deterministic session ranking.
func Search(ctx context.Context, cfg Config) (string, error) {
	query := strings.TrimSpace(cfg.Query)
	if query == "" {
		return "", fmt.Errorf("search requires a query")
	}

	sessions, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return "", err
	}

	transcripts := loadTranscripts(ctx, sessions, cfg)
	if len(transcripts) == 0 {
		return "", fmt.Errorf("no transcripts available to search")
	}

	// split transcripts into passages, keeping session attribution
	var passages []passage
	for _, s := range sessions {
		tx, ok := transcripts[s.ID]
		if !ok {
			continue
		}
		for _, c := range chunk.SplitText(tx, cfg.ChunkSize) {
			passages = append(passages, passage{
				SessionID:    s.ID,
				SessionTitle: s.Title,
				Text:         c,
			})
		}
	}
	if len(passages) == 0 {
		return "", fmt.Errorf("no transcripts available to search")
	}

	scorePassages(passages, query)

	// highest first; SliceStable keeps transcript order among equal scores
	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].Score > passages[j].Score
	})

	limit := cfg.SearchLimit
	if limit <= 0 || limit > len(passages) {
		limit = len(passages)
	}
	return formatPassages(passages[:limit], cfg.OutputFormat)
}

// scorePassages builds a BM25md corpus over the passages and scores each
// against the query.
func scorePassages(passages []passage, query string) {
	corpus := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()

	for i, p := range passages {
		fields := parser.ParseDocument(p.Text)
		corpus.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   fields,
			Original: p.Text,
		})
	}

	for i := range passages {
		passages[i].Score = corpus.Score(query, i)
	}
}

func formatPassages(passages []passage, format OutputFormat) (string, error) {
	switch format {
	case JSON:
		return marshalJSON(passages)
	case Text:
		var b strings.Builder
		for _, p := range passages {
			fmt.Fprintf(&b, "%.2f  [%s] %s\n", p.Score, p.SessionTitle, p.Text)
		}
		return b.String(), nil
	default:
		var b strings.Builder
		b.WriteString("## Passages\n\n")
		for _, p := range passages {
			fmt.Fprintf(&b, "- **%s** (%.2f): %s\n", p.SessionTitle, p.Score, p.Text)
		}
		return b.String(), nil
	}
}
