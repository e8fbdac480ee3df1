package catalog

import (
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "movies", want: KindMovie},
		{input: "movie", want: KindMovie},
		{input: "Movies", want: KindMovie},
		{input: "tv", want: KindShow},
		{input: "shows", want: KindShow},
		{input: " TV ", want: KindShow},
		{input: "music", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestShowFolderFromEpisode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "season folder with space",
			input:    "/media/TV/Severance (2022)/Season 01/Severance S01E01.mkv",
			expected: "/media/TV/Severance (2022)",
		},
		{
			name:     "season folder without space",
			input:    "/media/TV/Dark/Season1/Dark S01E01.mkv",
			expected: "/media/TV/Dark",
		},
		{
			name:     "short season folder",
			input:    "/media/TV/Archer/S01/Archer S01E01.mkv",
			expected: "/media/TV/Archer",
		},
		{
			name:     "single letter season",
			input:    "/media/TV/Archer/S1/Archer S01E01.mkv",
			expected: "/media/TV/Archer",
		},
		{
			name:     "no season folder",
			input:    "/media/TV/Fleabag/Fleabag S01E01.mkv",
			expected: "/media/TV/Fleabag",
		},
		{
			name:     "show folder starting with S is kept",
			input:    "/media/TV/Severance/Severance S01E01.mkv",
			expected: "/media/TV/Severance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShowFolderFromEpisode(tt.input)
			if result != tt.expected {
				t.Errorf("ShowFolderFromEpisode(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMediaItemRow(t *testing.T) {
	item := MediaItem{
		ID:        "42",
		Title:     "Inception",
		Year:      2010,
		Kind:      KindMovie,
		Paths:     []string{"/media/Movies/Inception (2010)/Inception.mkv"},
		Watched:   true,
		PartCount: 1,
	}
	row := item.Row()
	want := []string{"Inception", "2010", "/media/Movies/Inception (2010)/Inception.mkv", "true", "1"}
	if len(row) != len(RowHeader()) {
		t.Fatalf("Row has %d columns, header has %d", len(row), len(RowHeader()))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("Row[%d] = %q, want %q", i, row[i], want[i])
		}
	}

	// Absent year renders empty, not zero.
	noYear := MediaItem{Title: "Fleabag", Kind: KindShow, PartCount: 1}
	if got := noYear.Row()[1]; got != "" {
		t.Errorf("Row year for absent year = %q, want empty", got)
	}
}
