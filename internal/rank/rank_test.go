package rank

import (
	"reflect"
	"testing"

	"github.com/chriscorrea/limber/internal/catalog"
)

func ids(scored []Scored) []string {
	out := make([]string, 0, len(scored))
	for _, sc := range scored {
		out = append(out, sc.Session.ID)
	}
	return out
}

func TestRankEndToEnd(t *testing.T) {
	// pinned scenario: focus match +3, contraindication -2, exact duration +4
	sessions := []catalog.Session{
		{ID: "a", Focuses: []string{"knees"}, LengthMin: 10, Contraindications: []string{"acute knee pain"}},
		{ID: "b", Focuses: []string{"back"}, LengthMin: 10},
	}

	scored := Rank("knee pain 10 min", sessions, nil, "", ByScore)

	if got := ids(scored); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("ranked order = %v, want [a b]", got)
	}
	if scored[0].Score != 5 {
		t.Errorf("session a score = %d, want 5", scored[0].Score)
	}
	if scored[1].Score != 4 {
		t.Errorf("session b score = %d, want 4", scored[1].Score)
	}
}

func TestRankEmptyQuery(t *testing.T) {
	sessions := []catalog.Session{
		{ID: "a", Focuses: []string{"back"}, LengthMin: 20},
		{ID: "b", Focuses: []string{"neck"}, LengthMin: 5},
	}

	scored := Rank("   ", sessions, nil, "", ByScore)

	// scores are all zero and catalog order is preserved
	for _, sc := range scored {
		if sc.Score != 0 {
			t.Errorf("session %s score = %d, want 0 on empty query", sc.Session.ID, sc.Score)
		}
	}
	if got := ids(scored); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("order = %v, want catalog order [a b]", got)
	}

	// sort mode still modulates the degenerate ranking
	byLength := Rank("", sessions, nil, "", ByLength)
	if got := ids(byLength); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("length order = %v, want [b a]", got)
	}
}

func TestRankEmptyCatalog(t *testing.T) {
	scored := Rank("back pain", nil, nil, "", ByScore)
	if len(scored) != 0 {
		t.Errorf("empty catalog ranking length = %d, want 0", len(scored))
	}
}

func TestRankStableOnTies(t *testing.T) {
	// four sessions with identical scores keep their catalog order
	sessions := []catalog.Session{
		{ID: "w", Focuses: []string{"back"}},
		{ID: "x", Focuses: []string{"back"}},
		{ID: "y", Focuses: []string{"back"}},
		{ID: "z", Focuses: []string{"back"}},
	}

	scored := Rank("back", sessions, nil, "", ByScore)
	if got := ids(scored); !reflect.DeepEqual(got, []string{"w", "x", "y", "z"}) {
		t.Errorf("tied order = %v, want catalog order [w x y z]", got)
	}

	// re-running with identical inputs yields the identical output
	again := Rank("back", sessions, nil, "", ByScore)
	if !reflect.DeepEqual(scored, again) {
		t.Error("repeated ranking with identical inputs differed")
	}
}

func TestRankFilter(t *testing.T) {
	sessions := []catalog.Session{
		{ID: "a", Title: "Morning Flow", Focuses: []string{"back"}},
		{ID: "b", Title: "Desk Reset", Equipment: []string{"chair"}},
		{ID: "c", Title: "Evening Wind-Down", Level: "beginner"},
	}

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{name: "empty filter keeps all", filter: "", want: []string{"a", "b", "c"}},
		{name: "title match", filter: "morning", want: []string{"a"}},
		{name: "equipment match", filter: "CHAIR", want: []string{"b"}},
		{name: "level match", filter: "beginner", want: []string{"c"}},
		{name: "substring across title", filter: "wind", want: []string{"c"}},
		{name: "no match excludes everything", filter: "foam roller", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := Rank("", sessions, nil, tt.filter, ByScore)
			if got := ids(scored); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("filter %q order = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestRankSortModes(t *testing.T) {
	sessions := []catalog.Session{
		{ID: "a", LengthMin: 30, Level: "intermediate", Focuses: []string{"back"}},
		{ID: "b", LengthMin: 5, Level: "beginner"},
		{ID: "c", Level: "advanced"}, // missing length sorts as 0
		{ID: "d", LengthMin: 5},      // missing level sorts as ""
	}

	tests := []struct {
		name string
		mode SortMode
		want []string
	}{
		{name: "by length ascending with missing as zero", mode: ByLength, want: []string{"c", "b", "d", "a"}},
		{name: "by level ascending with missing as empty", mode: ByLevel, want: []string{"d", "c", "b", "a"}},
		{name: "by score descending", mode: ByScore, want: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := Rank("back", sessions, nil, "", tt.mode)
			if got := ids(scored); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s order = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestRankUsesTranscripts(t *testing.T) {
	sessions := []catalog.Session{
		{ID: "a"},
		{ID: "b"},
	}
	transcripts := map[string]string{
		"a": "sink into a lunge and twist to the right",
	}

	scored := Rank("lunge twist", sessions, transcripts, "", ByScore)

	if scored[0].Session.ID != "a" || scored[0].Score != 2 {
		t.Errorf("transcript-boosted session = %s score %d, want a with 2", scored[0].Session.ID, scored[0].Score)
	}
	if scored[1].Score != 0 {
		t.Errorf("session without transcript score = %d, want 0", scored[1].Score)
	}

	// with length sorting, transcript boosts do not affect the order of
	// equal-length sessions
	byLength := Rank("lunge twist", sessions, transcripts, "", ByLength)
	if got := ids(byLength); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("length order = %v, want catalog order [a b]", got)
	}
}

func TestRankDoesNotMutateInputs(t *testing.T) {
	sessions := []catalog.Session{
		{ID: "a", Focuses: []string{"back"}, LengthMin: 10},
		{ID: "b", Focuses: []string{"neck"}, LengthMin: 5},
	}
	snapshot := make([]catalog.Session, len(sessions))
	copy(snapshot, sessions)

	transcripts := map[string]string{"a": "text"}

	_ = Rank("back 5 min", sessions, transcripts, "", ByLength)

	if !reflect.DeepEqual(sessions, snapshot) {
		t.Error("Rank mutated the catalog snapshot")
	}
	if len(transcripts) != 1 || transcripts["a"] != "text" {
		t.Error("Rank mutated the transcript cache")
	}
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name   string
		scored []Scored
		n      int
		want   []string
	}{
		{
			name: "top two positive",
			scored: []Scored{
				{Session: catalog.Session{ID: "a"}, Score: 9},
				{Session: catalog.Session{ID: "b"}, Score: 4},
				{Session: catalog.Session{ID: "c"}, Score: 1},
			},
			n:    2,
			want: []string{"a", "b"},
		},
		{
			name: "zero and negative scores never recommended",
			scored: []Scored{
				{Session: catalog.Session{ID: "a"}, Score: 0},
				{Session: catalog.Session{ID: "b"}, Score: -2},
			},
			n:    2,
			want: nil,
		},
		{
			name: "fewer positives than requested",
			scored: []Scored{
				{Session: catalog.Session{ID: "a"}, Score: 3},
				{Session: catalog.Session{ID: "b"}, Score: 0},
			},
			n:    2,
			want: []string{"a"},
		},
		{
			name:   "empty ranking",
			scored: nil,
			n:      2,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Recommendations(tt.scored, tt.n)
			got := ids(recs)
			if len(tt.want) == 0 && len(got) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommendations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in   string
		want SortMode
	}{
		{"score", ByScore},
		{"length", ByLength},
		{"LEVEL", ByLevel},
		{" length ", ByLength},
		{"", ByScore},
		{"garbage", ByScore},
	}

	for _, tt := range tests {
		if got := ParseSortMode(tt.in); got != tt.want {
			t.Errorf("ParseSortMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
