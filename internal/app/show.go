package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/chriscorrea/limber/internal/catalog"
	"github.com/chriscorrea/limber/internal/counter"
	"github.com/chriscorrea/limber/internal/extract"
	"github.com/chriscorrea/limber/internal/transcript"
)

// Show renders a single session by id: metadata, description, and a
// transcript excerpt limited to the configured unit budget.
func Show(ctx context.Context, cfg Config) (string, error) {
	if cfg.ShowID == "" {
		return "", fmt.Errorf("no session id provided")
	}

	sessions, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return "", err
	}

	s, ok := catalog.FindByID(sessions, cfg.ShowID)
	if !ok {
		return "", fmt.Errorf("session %q not found in catalog", cfg.ShowID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	writeMetadata(&b, s)

	if desc := renderDescription(s.Description); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}

	if s.TranscriptRef != "" {
		// load just this session's transcript
		cache := transcript.Load(ctx, []catalog.Session{s}, transcript.Options{
			BaseDir:  cfg.TranscriptBase,
			Selector: cfg.TranscriptSelector,
		})
		if tx := cache[s.ID]; tx != "" {
			excerpt, err := applyUnitBudget(tx, cfg.MaxUnits, cfg.CountingMethod)
			if err != nil {
				return "", err
			}
			b.WriteString("\n## Transcript\n\n")
			b.WriteString(excerpt)
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

func writeMetadata(b *strings.Builder, s catalog.Session) {
	if s.LengthMin > 0 {
		fmt.Fprintf(b, "- length: %d min\n", s.LengthMin)
	}
	if s.Level != "" {
		fmt.Fprintf(b, "- level: %s\n", s.Level)
	}
	writeTagLine(b, "focuses", s.Focuses)
	writeTagLine(b, "intents", s.Intents)
	writeTagLine(b, "vibe", s.Vibe)
	writeTagLine(b, "equipment", s.Equipment)
	writeTagLine(b, "contraindications", s.Contraindications)
}

func writeTagLine(b *strings.Builder, label string, tags []string) {
	if len(tags) > 0 {
		fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(tags, ", "))
	}
}

// renderDescription converts HTML descriptions to Markdown and passes plain
// text through. Conversion failure degrades to the raw description.
func renderDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	// descriptions are usually HTML fragments; convert when tags are present
	if strings.Contains(desc, "<") && strings.Contains(desc, ">") {
		if md, err := extract.ToMarkdown(desc); err == nil {
			return md
		}
	}
	return desc
}

// applyUnitBudget truncates text to maxUnits of the configured counting
// method; a zero budget means no limit.
func applyUnitBudget(text string, maxUnits int, method counter.CountingMethod) (string, error) {
	if maxUnits <= 0 {
		return text, nil
	}

	if method == counter.Tokens {
		tc, err := counter.NewTokenCounter()
		if err != nil {
			return "", fmt.Errorf("failed to create counter: %w", err)
		}
		return tc.Truncate(text, maxUnits), nil
	}

	c, err := counter.NewCounter(method)
	if err != nil {
		return "", fmt.Errorf("failed to create counter: %w", err)
	}
	return truncateToUnits(text, maxUnits, c), nil
}
