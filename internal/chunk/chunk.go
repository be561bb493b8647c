// Package chunk provides transcript passage splitting for the limber CLI
// tool.
//
// Deep search scores passages rather than whole transcripts, so a transcript
// is broken into passage-sized chunks along semantic boundaries before
// ranking: paragraph breaks first, then sentence ends, then single newlines,
// then words as a last resort. Adjacent small pieces are packed back together
// so passages stay close to the target size instead of degenerating into
// one-sentence fragments.
package chunk

import (
	"log/slog"
	"strings"
)

// boundary markers ordered from largest semantic unit to smallest
var boundaries = []struct {
	name string
	seps []string
}{
	{name: "paragraph", seps: []string{"\n\n"}},
	{name: "sentence", seps: []string{". ", "? ", "! "}},
	{name: "line", seps: []string{"\n"}},
	{name: "word", seps: []string{" "}},
}

// SplitText breaks text into passages of at most maxChunkSize characters.
//
// Each boundary level is only applied to pieces still over the limit after
// the previous level, so well-formed transcripts split on paragraphs and
// sentences and only pathological unpunctuated text falls through to words.
// Passages come back in document order. Invalid sizes and empty text yield
// an empty slice.
func SplitText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		return []string{}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	done := splitPiece(text, 0, maxChunkSize)

	slog.Debug("SplitText completed", "textLength", len(text), "passages", len(done))
	return done
}

// splitPiece splits one piece at the given boundary level, recursing into
// the next level for fragments still over the limit. Fragments stay in
// place, so output order matches input order.
func splitPiece(piece string, level, maxChunkSize int) []string {
	if len(piece) <= maxChunkSize {
		return []string{piece}
	}
	// a single token the word pass could not shrink is kept, not dropped
	if level >= len(boundaries) {
		return []string{piece}
	}

	var out []string
	for _, part := range splitAtBoundary(piece, boundaries[level].seps, maxChunkSize) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, splitPiece(part, level+1, maxChunkSize)...)
		}
	}
	return out
}

// splitAtBoundary cuts text at any of the separators, keeping the separator
// with the left piece, then greedily packs pieces up to maxChunkSize.
func splitAtBoundary(text string, seps []string, maxChunkSize int) []string {
	pieces := []string{text}
	for _, sep := range seps {
		var split []string
		for _, p := range pieces {
			split = append(split, splitKeepingSep(p, sep)...)
		}
		pieces = split
	}
	return pack(pieces, maxChunkSize)
}

// splitKeepingSep splits on sep while leaving sep attached to the preceding
// piece, so sentence punctuation and paragraph breaks survive packing.
func splitKeepingSep(text, sep string) []string {
	if !strings.Contains(text, sep) {
		return []string{text}
	}

	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	return out
}

// pack greedily joins consecutive pieces while they fit, keeping related
// content together instead of emitting one piece per boundary.
func pack(pieces []string, maxChunkSize int) []string {
	var out []string
	var current strings.Builder

	for _, piece := range pieces {
		if current.Len() > 0 && current.Len()+len(piece) > maxChunkSize {
			out = append(out, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(piece)
	}
	if current.Len() > 0 {
		out = append(out, strings.TrimSpace(current.String()))
	}
	return out
}
