package match

import (
	"strings"
	"testing"
	"unicode"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBase string
		wantYear int
	}{
		{
			name:     "trailing year extracted",
			input:    "Title (2020)",
			wantBase: "title",
			wantYear: 2020,
		},
		{
			name:     "no year",
			input:    "Title",
			wantBase: "title",
			wantYear: 0,
		},
		{
			name:     "punctuation stripped",
			input:    "WALL-E",
			wantBase: "wall e",
			wantYear: 0,
		},
		{
			name:     "ampersand canonicalized",
			input:    "Fast & Furious",
			wantBase: "fast and furious",
			wantYear: 0,
		},
		{
			name:     "spelled and preserved",
			input:    "Fast and Furious",
			wantBase: "fast and furious",
			wantYear: 0,
		},
		{
			name:     "whitespace collapsed",
			input:    "  The   Thing  ",
			wantBase: "the thing",
			wantYear: 0,
		},
		{
			name:     "interior year kept in base",
			input:    "2001: A Space Odyssey",
			wantBase: "2001 a space odyssey",
			wantYear: 0,
		},
		{
			name:     "year with trailing space",
			input:    "Dune (2021) ",
			wantBase: "dune",
			wantYear: 2021,
		},
		{
			name:     "apostrophe removed",
			input:    "Ocean's Eleven",
			wantBase: "ocean s eleven",
			wantYear: 0,
		},
		{
			name:     "accented letters preserved",
			input:    "Amélie (2001)",
			wantBase: "amélie",
			wantYear: 2001,
		},
		{
			name:     "non-latin letters preserved",
			input:    "Léon: The Professional",
			wantBase: "léon the professional",
			wantYear: 0,
		},
		{
			name:     "empty input",
			input:    "",
			wantBase: "",
			wantYear: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got.Base != tt.wantBase {
				t.Errorf("Normalize(%q).Base = %q, want %q", tt.input, got.Base, tt.wantBase)
			}
			if got.Year != tt.wantYear {
				t.Errorf("Normalize(%q).Year = %d, want %d", tt.input, got.Year, tt.wantYear)
			}
		})
	}
}

func TestNormalizeBaseIsClean(t *testing.T) {
	inputs := []string{
		"The Lord of the Rings: The Fellowship of the Ring (2001)",
		"BIRDMAN or (The Unexpected Virtue of Ignorance)",
		"Spider-Man: Into the Spider-Verse",
		"M*A*S*H",
		"Se7en",
		"WALL-E (2008)",
		"Les Misérables (2012)",
	}

	for _, input := range inputs {
		base := Normalize(input).Base
		for _, r := range base {
			if unicode.IsUpper(r) {
				t.Errorf("Normalize(%q).Base = %q contains uppercase", input, base)
				break
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
				t.Errorf("Normalize(%q).Base = %q contains punctuation %q", input, base, r)
				break
			}
		}
		if base != strings.TrimSpace(base) {
			t.Errorf("Normalize(%q).Base = %q has surrounding whitespace", input, base)
		}
	}
}
