package transcript

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriscorrea/limber/internal/catalog"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "Reach UP and over to the LEFT.\n")
	writeFile(t, dir, "b.txt", "sink into a deep lunge")

	sessions := []catalog.Session{
		{ID: "a", TranscriptRef: "a.txt"},
		{ID: "b", TranscriptRef: "b.txt"},
		{ID: "c"}, // no transcript ref
	}

	cache := Load(context.Background(), sessions, Options{BaseDir: dir})

	require.Len(t, cache, 2)
	assert.Equal(t, "reach up and over to the left.", cache["a"], "transcript text is lowercased and trimmed")
	assert.Equal(t, "sink into a deep lunge", cache["b"])
	_, ok := cache["c"]
	assert.False(t, ok, "session without ref gets no cache entry")
}

func TestLoadBestEffort(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.txt", "roll the wrists")

	sessions := []catalog.Session{
		{ID: "good", TranscriptRef: "good.txt"},
		{ID: "bad", TranscriptRef: "missing.txt"},
	}

	// the missing transcript is skipped, not fatal
	cache := Load(context.Background(), sessions, Options{BaseDir: dir})

	require.Len(t, cache, 1)
	assert.Equal(t, "roll the wrists", cache["good"])
}

func TestLoadHTMLTranscript(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.html",
		`<html><body><div class="tx"><p>Drop the SHOULDERS.</p></div><footer>footer junk</footer></body></html>`)

	sessions := []catalog.Session{{ID: "a", TranscriptRef: "a.html"}}

	cache := Load(context.Background(), sessions, Options{BaseDir: dir, Selector: ".tx"})

	require.Contains(t, cache, "a")
	assert.Equal(t, "drop the shoulders.", cache["a"])
	assert.NotContains(t, cache["a"], "footer junk")
}

func TestLoadEmptyCatalog(t *testing.T) {
	cache := Load(context.Background(), nil, Options{})
	assert.Empty(t, cache)
}

func TestResolveRef(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{name: "no base", base: "", ref: "a.txt", want: "a.txt"},
		{name: "dir base", base: "/data", ref: "a.txt", want: "/data/a.txt"},
		{name: "trailing slash base", base: "/data/", ref: "a.txt", want: "/data/a.txt"},
		{name: "url base", base: "https://cdn.example.com/tx", ref: "a.txt", want: "https://cdn.example.com/tx/a.txt"},
		{name: "absolute ref ignores base", base: "/data", ref: "/other/a.txt", want: "/other/a.txt"},
		{name: "url ref ignores base", base: "/data", ref: "https://x.test/a.txt", want: "https://x.test/a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRef(tt.base, tt.ref))
		})
	}
}
