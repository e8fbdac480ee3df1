package jellyfin

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

// Adapter exposes a Jellyfin server as a catalog.Catalog.
type Adapter struct {
	client *Client
}

func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

var _ catalog.Catalog = (*Adapter)(nil)

// ListItems returns the user's library of the given kind, normalized
// into MediaItems at this boundary.
func (a *Adapter) ListItems(ctx context.Context, kind catalog.Kind) ([]catalog.MediaItem, error) {
	userID, err := a.client.UserID(ctx)
	if err != nil {
		return nil, err
	}

	switch kind {
	case catalog.KindMovie:
		return a.listMovies(ctx, userID)
	case catalog.KindShow:
		return a.listShows(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownKind, kind)
	}
}

func (a *Adapter) listMovies(ctx context.Context, userID string) ([]catalog.MediaItem, error) {
	resp, err := a.queryItems(ctx, userID, url.Values{
		"IncludeItemTypes": {"Movie"},
		"Recursive":        {"true"},
		"Fields":           {"Path,MediaSources"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing movies: %w", err)
	}

	items := make([]catalog.MediaItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, movieToMediaItem(it))
	}
	return items, nil
}

func (a *Adapter) listShows(ctx context.Context, userID string) ([]catalog.MediaItem, error) {
	resp, err := a.queryItems(ctx, userID, url.Values{
		"IncludeItemTypes": {"Series"},
		"Recursive":        {"true"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing shows: %w", err)
	}

	items := make([]catalog.MediaItem, 0, len(resp.Items))
	for _, series := range resp.Items {
		episodes, err := a.episodes(ctx, userID, series.ID)
		if err != nil {
			return nil, fmt.Errorf("listing episodes for %q: %w", series.Name, err)
		}
		items = append(items, showToMediaItem(series, episodes))
	}
	return items, nil
}

// episodes returns all episodes of a series with path and media source
// fields populated.
func (a *Adapter) episodes(ctx context.Context, userID, seriesID string) ([]Item, error) {
	resp, err := a.queryItems(ctx, userID, url.Values{
		"ParentId":         {seriesID},
		"IncludeItemTypes": {"Episode"},
		"Recursive":        {"true"},
		"Fields":           {"Path,MediaSources"},
	})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (a *Adapter) queryItems(ctx context.Context, userID string, query url.Values) (*ItemsResponse, error) {
	var resp ItemsResponse
	endpoint := fmt.Sprintf("/Users/%s/Items?%s", userID, query.Encode())
	if err := a.client.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetItem looks up a single item by exact title (case-insensitive), the
// way the Jellyfin web client resolves names. Fuzzy lookups belong to
// the matcher, not the adapter.
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

// SetWatched marks an item played or unplayed for the configured user.
func (a *Adapter) SetWatched(ctx context.Context, id string, watched bool) error {
	userID, err := a.client.UserID(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("/Users/%s/PlayedItems/%s", userID, id)
	if watched {
		if err := a.client.post(ctx, endpoint, nil); err != nil {
			return fmt.Errorf("marking item %s played: %w", id, err)
		}
		return nil
	}
	if err := a.client.delete(ctx, endpoint); err != nil {
		return fmt.Errorf("marking item %s unplayed: %w", id, err)
	}
	return nil
}

func movieToMediaItem(it Item) catalog.MediaItem {
	item := catalog.MediaItem{
		ID:        it.ID,
		Title:     it.Name,
		Year:      it.ProductionYear,
		Kind:      catalog.KindMovie,
		PartCount: 1,
	}
	if it.Path != "" {
		item.Paths = []string{it.Path}
	}
	if len(it.MediaSources) > 1 {
		item.PartCount = len(it.MediaSources)
	}
	if it.UserData != nil {
		item.Watched = it.UserData.Played
	}
	return item
}

func showToMediaItem(series Item, episodes []Item) catalog.MediaItem {
	item := catalog.MediaItem{
		ID:        series.ID,
		Title:     series.Name,
		Year:      series.ProductionYear,
		Kind:      catalog.KindShow,
		PartCount: 1,
	}

	// Watched is the all-episodes aggregate; an empty series counts as
	// unwatched.
	watched := len(episodes) > 0
	for _, ep := range episodes {
		if ep.UserData == nil || !ep.UserData.Played {
			watched = false
		}
		if len(ep.MediaSources) > item.PartCount {
			item.PartCount = len(ep.MediaSources)
		}
		if len(item.Paths) == 0 && ep.Path != "" {
			item.Paths = []string{catalog.ShowFolderFromEpisode(ep.Path)}
		}
	}
	item.Watched = watched

	return item
}
