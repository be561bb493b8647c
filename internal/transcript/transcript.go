// Package transcript loads per-session transcript text into an in-memory
// cache keyed by session id.
//
// Loading is best-effort: each transcript is fetched independently and an
// individual failure only means that session has no cache entry, so it will
// simply score without the transcript boost. A failed fetch never aborts the
// batch and never surfaces as an error to the caller.
package transcript

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/chriscorrea/limber/internal/catalog"
	"github.com/chriscorrea/limber/internal/extract"
	"github.com/chriscorrea/limber/internal/fetch"
)

// Options configures transcript resolution.
type Options struct {
	// BaseDir, when set, is joined in front of relative transcript refs
	// (a directory path or URL prefix).
	BaseDir string

	// Selector is an optional CSS selector isolating the transcript element
	// in HTML transcript pages.
	Selector string

	// MaxConcurrent bounds parallel fetches; <= 0 means a small default.
	MaxConcurrent int
}

const defaultMaxConcurrent = 8

// Load fetches every session's transcript and returns the cache as an
// id -> lowercased text map. Sessions without a transcript ref get no entry.
//
// The returned map is a fresh snapshot owned by the caller; Load keeps no
// state between invocations.
func Load(ctx context.Context, sessions []catalog.Session, opts Options) map[string]string {
	cache := make(map[string]string)

	limit := opts.MaxConcurrent
	if limit <= 0 {
		limit = defaultMaxConcurrent
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, limit)
	)

	for _, s := range sessions {
		if s.TranscriptRef == "" {
			continue
		}

		wg.Add(1)
		go func(id, ref string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			text, err := loadOne(ctx, ref, opts)
			if err != nil {
				// best-effort: warn and move on, the session scores
				// without its transcript
				slog.Warn("Transcript fetch failed", "id", id, "ref", ref, "error", err)
				return
			}

			mu.Lock()
			cache[id] = text
			mu.Unlock()
		}(s.ID, resolveRef(opts.BaseDir, s.TranscriptRef))
	}

	wg.Wait()

	slog.Debug("Transcript cache loaded", "sessions", len(sessions), "loaded", len(cache))
	return cache
}

// loadOne fetches a single transcript, extracts text when the ref points at
// an HTML page, and lowercases the result.
func loadOne(ctx context.Context, ref string, opts Options) (string, error) {
	content, err := fetch.ReadAll(ctx, ref)
	if err != nil {
		return "", err
	}

	if extract.LooksLikeHTML(content) {
		text, err := extract.ToText(strings.NewReader(content), opts.Selector)
		if err != nil {
			return "", err
		}
		content = text
	}

	return strings.ToLower(strings.TrimSpace(content)), nil
}

// resolveRef joins a base dir or URL prefix with a relative ref. Absolute
// refs (URLs or rooted paths) and empty bases pass through untouched.
func resolveRef(base, ref string) string {
	if base == "" || fetch.IsURL(ref) || strings.HasPrefix(ref, "/") {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + ref
}
