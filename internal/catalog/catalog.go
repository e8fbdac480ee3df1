// Package catalog defines the common media item model shared by the
// Plex and Jellyfin adapters, plus the capability interface the
// reconciliation commands consume.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the library type an item belongs to.
type Kind string

const (
	KindMovie Kind = "movie"
	KindShow  Kind = "show"
)

// ParseKind converts CLI library arguments into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return KindMovie, nil
	case "tv", "show", "shows", "series":
		return KindShow, nil
	default:
		return "", fmt.Errorf("%w: %q (use 'movies' or 'tv')", ErrUnknownKind, s)
	}
}

// MediaItem is the normalized record both adapters produce. Downstream
// code never branches on backend identity; everything it needs is here.
type MediaItem struct {
	// ID is the backend-native identifier (Plex ratingKey, Jellyfin item
	// ID). Unique per (backend, kind), opaque to the core.
	ID    string
	Title string
	// Year is the release year, 0 when the backend has none.
	Year int
	Kind Kind
	// Paths holds file paths backing the item. For shows this is the
	// show folder derived from the first episode's file location.
	Paths []string
	// Watched for shows is the all-episodes aggregate.
	Watched bool
	// PartCount is the number of distinct media sources/parts backing
	// the item. PartCount > 1 marks a combined/duplicate candidate.
	PartCount int
}

// Row renders the item as a flat record for table and CSV output.
// Columns: Title, Year, Path, Watched, Parts.
func (m MediaItem) Row() []string {
	year := ""
	if m.Year > 0 {
		year = strconv.Itoa(m.Year)
	}
	path := ""
	if len(m.Paths) > 0 {
		path = strings.Join(m.Paths, "; ")
	}
	return []string{m.Title, year, path, strconv.FormatBool(m.Watched), strconv.Itoa(m.PartCount)}
}

// RowHeader matches the column order of Row.
func RowHeader() []string {
	return []string{"Title", "Year", "Path", "Watched", "Parts"}
}

// Catalog is the capability a backend adapter exposes to the core.
type Catalog interface {
	ListItems(ctx context.Context, kind Kind) ([]MediaItem, error)
	GetItem(ctx context.Context, title string, kind Kind) (*MediaItem, error)
	SetWatched(ctx context.Context, id string, watched bool) error
}

var (
	ErrUnknownKind      = errors.New("unknown library kind")
	ErrUnknownServer    = errors.New("unknown server")
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")
	ErrItemNotFound     = errors.New("item not found")
)

// seasonDirPattern matches season-level directories: "Season 01",
// "Season1", "S01", "S1".
var seasonDirPattern = regexp.MustCompile(`(?i)^(season\s?\d+|s\d{1,2})$`)

// ShowFolderFromEpisode returns the show folder for an episode file
// path, skipping over a season subdirectory when present.
func ShowFolderFromEpisode(episodePath string) string {
	parent := filepath.Dir(episodePath)
	if seasonDirPattern.MatchString(filepath.Base(parent)) {
		return filepath.Dir(parent)
	}
	return parent
}
