package plex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

const sectionsJSON = `{
  "MediaContainer": {
    "Directory": [
      {"key": "1", "type": "movie", "title": "Movies"},
      {"key": "2", "type": "show", "title": "TV Shows"}
    ]
  }
}`

const moviesJSON = `{
  "MediaContainer": {
    "Metadata": [
      {
        "ratingKey": "101",
        "title": "Inception",
        "type": "movie",
        "year": 2010,
        "viewCount": 2,
        "Media": [
          {"id": 1, "Part": [{"file": "/media/Movies/Inception (2010)/Inception.mkv"}]}
        ]
      },
      {
        "ratingKey": "102",
        "title": "Blade Runner",
        "type": "movie",
        "year": 1982,
        "Media": [
          {"id": 2, "Part": [{"file": "/media/Movies/Blade Runner/theatrical.mkv"}]},
          {"id": 3, "Part": [{"file": "/media/Movies/Blade Runner/final-cut.mkv"}]}
        ]
      }
    ]
  }
}`

const showsJSON = `{
  "MediaContainer": {
    "Metadata": [
      {
        "ratingKey": "201",
        "title": "Severance",
        "type": "show",
        "year": 2022,
        "leafCount": 9,
        "viewedLeafCount": 9
      }
    ]
  }
}`

const episodesJSON = `{
  "MediaContainer": {
    "Metadata": [
      {
        "ratingKey": "301",
        "title": "Good News About Hell",
        "type": "episode",
        "index": 1,
        "parentIndex": 1,
        "viewCount": 1,
        "Media": [
          {"id": 4, "Part": [{"file": "/media/TV/Severance (2022)/Season 01/Severance S01E01.mkv"}]}
        ]
      }
    ]
  }
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-token", r.Header.Get("X-Plex-Token"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/library/sections":
			fmt.Fprint(w, sectionsJSON)
		case "/library/sections/1/all":
			fmt.Fprint(w, moviesJSON)
		case "/library/sections/2/all":
			fmt.Fprint(w, showsJSON)
		case "/library/metadata/201/allLeaves":
			fmt.Fprint(w, episodesJSON)
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestAdapter(url string) *Adapter {
	return NewAdapter(NewClient(Config{URL: url, Token: "test-token"}))
}

func TestAdapterListMovies(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	defer server.Close()

	items, err := newTestAdapter(server.URL).ListItems(context.Background(), catalog.KindMovie)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "101", items[0].ID)
	assert.Equal(t, "Inception", items[0].Title)
	assert.Equal(t, 2010, items[0].Year)
	assert.True(t, items[0].Watched)
	assert.Equal(t, 1, items[0].PartCount)
	assert.Equal(t, []string{"/media/Movies/Inception (2010)/Inception.mkv"}, items[0].Paths)

	// Two Media entries: combined versions.
	assert.False(t, items[1].Watched)
	assert.Equal(t, 2, items[1].PartCount)
	assert.Len(t, items[1].Paths, 2)
}

func TestAdapterListShows(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	defer server.Close()

	items, err := newTestAdapter(server.URL).ListItems(context.Background(), catalog.KindShow)
	require.NoError(t, err)
	require.Len(t, items, 1)

	show := items[0]
	assert.Equal(t, "201", show.ID)
	assert.Equal(t, catalog.KindShow, show.Kind)
	// viewedLeafCount == leafCount: fully watched.
	assert.True(t, show.Watched)
	// Season directory stripped from the first episode path.
	assert.Equal(t, []string{"/media/TV/Severance (2022)"}, show.Paths)
	assert.Equal(t, 1, show.PartCount)
}

func TestAdapterGetItem(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	defer server.Close()

	adapter := newTestAdapter(server.URL)

	item, err := adapter.GetItem(context.Background(), "INCEPTION", catalog.KindMovie)
	require.NoError(t, err)
	assert.Equal(t, "101", item.ID)

	_, err = adapter.GetItem(context.Background(), "Missing", catalog.KindMovie)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestAdapterSetWatched(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.Equal(t, "com.plexapp.plugins.library", r.URL.Query().Get("identifier"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)

	require.NoError(t, adapter.SetWatched(context.Background(), "101", true))
	assert.Equal(t, "/:/scrobble", gotPath)
	assert.Equal(t, "101", gotKey)

	require.NoError(t, adapter.SetWatched(context.Background(), "101", false))
	assert.Equal(t, "/:/unscrobble", gotPath)
}

func TestAdapterNoSection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"MediaContainer": {"Directory": [{"key": "1", "type": "movie", "title": "Movies"}]}}`)
	}))
	defer server.Close()

	_, err := newTestAdapter(server.URL).ListItems(context.Background(), catalog.KindShow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no show library section")
}

func TestNewClientLeavesSharedHTTPClientAlone(t *testing.T) {
	t.Parallel()

	shared := &http.Client{}
	client := NewClient(Config{URL: "http://plex.local", Token: "token", HTTPClient: shared})

	assert.Equal(t, time.Duration(0), shared.Timeout)
	assert.NotZero(t, client.httpClient.Timeout)
}
