package catalog

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "empty array",
			input:     `[]`,
			wantCount: 0,
			wantErr:   false,
		},
		{
			name:      "single session",
			input:     `[{"id":"a","title":"Morning Flow","lengthMin":10}]`,
			wantCount: 1,
			wantErr:   false,
		},
		{
			name:      "full tag lists",
			input:     `[{"id":"a","focuses":["back","hips"],"intents":["release"],"vibe":["calm"],"equipment":["mat"],"contraindications":["acute knee pain"]}]`,
			wantCount: 1,
			wantErr:   false,
		},
		{
			name:    "malformed JSON",
			input:   `[{"id":`,
			wantErr: true,
		},
		{
			name:    "not an array",
			input:   `{"id":"a"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, err := Parse(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(sessions) != tt.wantCount {
				t.Errorf("Parse() count = %d, want %d", len(sessions), tt.wantCount)
			}
		})
	}
}

func TestParseDerivesLengthMin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "explicit lengthMin wins",
			input: `[{"id":"a","lengthMin":12,"durationSec":300}]`,
			want:  12,
		},
		{
			name:  "derived from durationSec",
			input: `[{"id":"a","durationSec":300}]`,
			want:  5,
		},
		{
			name:  "derivation rounds to nearest minute",
			input: `[{"id":"a","durationSec":155}]`,
			want:  3,
		},
		{
			name:  "half minute rounds up",
			input: `[{"id":"a","durationSec":150}]`,
			want:  3,
		},
		{
			name:  "no duration at all",
			input: `[{"id":"a"}]`,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if sessions[0].LengthMin != tt.want {
				t.Errorf("LengthMin = %d, want %d", sessions[0].LengthMin, tt.want)
			}
		})
	}
}

func TestFilterText(t *testing.T) {
	s := Session{
		ID:        "a",
		Title:     "Desk Reset",
		Level:     "beginner",
		Focuses:   []string{"neck", "shoulders"},
		Intents:   []string{"release tension"},
		Vibe:      []string{"calm"},
		Equipment: []string{"chair"},
	}

	got := s.FilterText()
	want := "neck shoulders release tension calm chair beginner Desk Reset"
	if got != want {
		t.Errorf("FilterText() = %q, want %q", got, want)
	}

	// empty session produces empty string, not an error
	if empty := (Session{}).FilterText(); empty != "" {
		t.Errorf("FilterText() on empty session = %q, want empty", empty)
	}
}

func TestHasContraindication(t *testing.T) {
	s := Session{Contraindications: []string{"acute knee pain", "vertigo"}}

	if !s.HasContraindication("acute knee pain") {
		t.Error("HasContraindication(acute knee pain) = false, want true")
	}
	// match is exact, not substring
	if s.HasContraindication("knee pain") {
		t.Error("HasContraindication(knee pain) = true, want false")
	}
	if (Session{}).HasContraindication("acute knee pain") {
		t.Error("HasContraindication on empty session = true, want false")
	}
}

func TestFindByID(t *testing.T) {
	sessions := []Session{{ID: "a"}, {ID: "b"}}

	if s, ok := FindByID(sessions, "b"); !ok || s.ID != "b" {
		t.Errorf("FindByID(b) = (%v, %v), want session b", s, ok)
	}
	if _, ok := FindByID(sessions, "z"); ok {
		t.Error("FindByID(z) found a session, want none")
	}
	if _, ok := FindByID(nil, "a"); ok {
		t.Error("FindByID on nil catalog found a session, want none")
	}
}
