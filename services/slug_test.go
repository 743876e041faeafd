package services

import (
	"regexp"
	"testing"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugifyExamples(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Νέα Σμύρνη", "nea-smyrni"},
		{"ΑΕΛΛΩ Cinemax 5+1", "aello-cinemax-5-1"},
		{"Θησείον", "thiseion"},
		{"Ψυρρή", "psyrri"},
		{"Le Fabuleux Destin d'Amélie Poulain", "le-fabuleux-destin-d-amelie-poulain"},
		{"Οδός: Αριστοφάνους 12", "odos-aristofanoys-12"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
	}

	for _, tt := range tests {
		got := Slugify(tt.in)
		if got != tt.want {
			t.Errorf("Slugify(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyShape(t *testing.T) {
	inputs := []string{
		"Κυριακή 07 Δεκ. 16:00",
		"ΣΙΝΕ ΦΛΟΙΣΒΟΣ (θερινό)",
		"Village 15 Cinemas @ The Mall!!!",
		"Ωδείο — Μέγαρο & Φίλοι",
	}

	for _, in := range inputs {
		got := Slugify(in)
		if got == "" {
			t.Errorf("Slugify(%q) returned empty slug", in)
			continue
		}
		if !slugShape.MatchString(got) {
			t.Errorf("Slugify(%q) = %q; contains characters outside [a-z0-9-] or stray hyphens", in, got)
		}
	}
}

func TestSlugifyStable(t *testing.T) {
	in := "Δαναός Cinema"
	first := Slugify(in)
	for i := 0; i < 5; i++ {
		if got := Slugify(in); got != first {
			t.Fatalf("Slugify(%q) not deterministic: %q vs %q", in, got, first)
		}
	}
}
