// Package catalog defines the session model and catalog parsing for the
// limber CLI tool.
//
// A catalog is an externally supplied JSON array of sessions. Sessions are
// immutable once loaded; every tag list is optional and an absent list is
// treated as empty everywhere downstream.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
)

// Session is one instructional video session in the catalog.
type Session struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// LengthMin is the session duration in minutes. When the catalog only
	// carries DurationSec, LengthMin is derived as round(sec/60) at parse time.
	LengthMin   int `json:"lengthMin,omitempty"`
	DurationSec int `json:"durationSec,omitempty"`

	// Level is a free-text difficulty label ("beginner", "all levels", ...).
	Level string `json:"level,omitempty"`

	// free-text tag lists; any of these may be absent
	Focuses           []string `json:"focuses,omitempty"`
	Intents           []string `json:"intents,omitempty"`
	Vibe              []string `json:"vibe,omitempty"`
	Equipment         []string `json:"equipment,omitempty"`
	Contraindications []string `json:"contraindications,omitempty"`

	// TranscriptRef optionally points at the session's transcript text
	// (a file path or URL, resolved by the transcript loader).
	TranscriptRef string `json:"transcript,omitempty"`

	// Description optionally carries long-form HTML or plain-text copy
	// shown by `limber show`.
	Description string `json:"description,omitempty"`
}

// FilterText returns the session's searchable surface: focuses, intents,
// vibe, equipment, level, and title, space-joined. The ranking pipeline
// matches its free-text filter against this string (case-insensitively).
func (s Session) FilterText() string {
	parts := make([]string, 0, 8)
	parts = append(parts, s.Focuses...)
	parts = append(parts, s.Intents...)
	parts = append(parts, s.Vibe...)
	parts = append(parts, s.Equipment...)
	if s.Level != "" {
		parts = append(parts, s.Level)
	}
	if s.Title != "" {
		parts = append(parts, s.Title)
	}
	return strings.Join(parts, " ")
}

// HasContraindication reports whether the session carries the exact
// contraindication tag (case-sensitive, whole string).
func (s Session) HasContraindication(tag string) bool {
	for _, c := range s.Contraindications {
		if c == tag {
			return true
		}
	}
	return false
}

// Parse decodes a JSON catalog array from r and normalizes each session.
//
// Normalization is limited to duration derivation: a session without
// LengthMin but with DurationSec gets LengthMin = round(DurationSec/60).
// Missing tags and fields are left as their zero values; they never fail.
func Parse(r io.Reader) ([]Session, error) {
	var sessions []Session
	if err := json.NewDecoder(r).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("failed to decode catalog JSON: %w", err)
	}

	for i := range sessions {
		if sessions[i].LengthMin == 0 && sessions[i].DurationSec > 0 {
			sessions[i].LengthMin = int(math.Round(float64(sessions[i].DurationSec) / 60.0))
		}
	}

	slog.Debug("Catalog parsed", "sessionCount", len(sessions))
	return sessions, nil
}

// FindByID returns the session with the given id, or false when absent.
func FindByID(sessions []Session, id string) (Session, bool) {
	for _, s := range sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}
