package plex

import (
	"context"
	"fmt"
	"strings"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

// Adapter exposes a Plex server as a catalog.Catalog.
type Adapter struct {
	client *Client
}

func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

var _ catalog.Catalog = (*Adapter)(nil)

func sectionType(kind catalog.Kind) string {
	if kind == catalog.KindShow {
		return "show"
	}
	return "movie"
}

// sectionKey finds the first library section of the requested type.
func (a *Adapter) sectionKey(ctx context.Context, kind catalog.Kind) (string, error) {
	sections, err := a.client.Sections(ctx)
	if err != nil {
		return "", err
	}

	want := sectionType(kind)
	for _, s := range sections {
		if s.Type == want {
			return s.Key, nil
		}
	}
	return "", fmt.Errorf("no %s library section on server", want)
}

// ListItems returns the section's items normalized into MediaItems at
// this boundary.
func (a *Adapter) ListItems(ctx context.Context, kind catalog.Kind) ([]catalog.MediaItem, error) {
	key, err := a.sectionKey(ctx, kind)
	if err != nil {
		return nil, err
	}

	metadata, err := a.client.SectionItems(ctx, key)
	if err != nil {
		return nil, err
	}

	items := make([]catalog.MediaItem, 0, len(metadata))
	for _, md := range metadata {
		if kind == catalog.KindShow {
			show, err := a.showToMediaItem(ctx, md)
			if err != nil {
				return nil, err
			}
			items = append(items, show)
			continue
		}
		items = append(items, movieToMediaItem(md))
	}
	return items, nil
}

// GetItem looks up a single item by exact title (case-insensitive).
// Fuzzy lookups belong to the matcher, not the adapter.
func (a *Adapter) GetItem(ctx context.Context, title string, kind catalog.Kind) (*catalog.MediaItem, error) {
	items, err := a.ListItems(ctx, kind)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if strings.EqualFold(items[i].Title, title) {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", catalog.ErrItemNotFound, title)
}

// SetWatched marks an item watched or unwatched via scrobble.
func (a *Adapter) SetWatched(ctx context.Context, id string, watched bool) error {
	return a.client.Scrobble(ctx, id, watched)
}

func movieToMediaItem(md Metadata) catalog.MediaItem {
	item := catalog.MediaItem{
		ID:        md.RatingKey,
		Title:     md.Title,
		Year:      md.Year,
		Kind:      catalog.KindMovie,
		Watched:   md.ViewCount > 0,
		PartCount: 1,
	}
	// Each Media entry is one version of the item; several versions
	// mean a combined entry.
	if len(md.Media) > 1 {
		item.PartCount = len(md.Media)
	}
	for _, media := range md.Media {
		for _, part := range media.Part {
			if part.File != "" {
				item.Paths = append(item.Paths, part.File)
			}
		}
	}
	return item
}

func (a *Adapter) showToMediaItem(ctx context.Context, md Metadata) (catalog.MediaItem, error) {
	item := catalog.MediaItem{
		ID:        md.RatingKey,
		Title:     md.Title,
		Year:      md.Year,
		Kind:      catalog.KindShow,
		Watched:   md.LeafCount > 0 && md.ViewedLeafCount >= md.LeafCount,
		PartCount: 1,
	}

	episodes, err := a.client.Episodes(ctx, md.RatingKey)
	if err != nil {
		return catalog.MediaItem{}, fmt.Errorf("episodes for %q: %w", md.Title, err)
	}

	for _, ep := range episodes {
		if len(ep.Media) > item.PartCount {
			item.PartCount = len(ep.Media)
		}
		if len(item.Paths) == 0 {
			for _, media := range ep.Media {
				for _, part := range media.Part {
					if part.File != "" {
						item.Paths = []string{catalog.ShowFolderFromEpisode(part.File)}
						break
					}
				}
				if len(item.Paths) > 0 {
					break
				}
			}
		}
	}

	return item, nil
}
