package jellyfin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

func intPtr(i int) *int { return &i }

// fakeServer wires the /Users lookup plus a custom items handler.
func fakeServer(t *testing.T, itemsHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/Users" {
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode([]User{
				{Name: "other", ID: "u0"},
				{Name: "alice", ID: "u1"},
			}))
			return
		}
		itemsHandler(w, r)
	}))
}

func newTestAdapter(url string) *Adapter {
	return NewAdapter(NewClient(Config{URL: url, APIKey: "key", Username: "Alice"}))
}

func TestAdapterListMovies(t *testing.T) {
	t.Parallel()

	server := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Users/u1/Items", r.URL.Path)
		require.Equal(t, "Movie", r.URL.Query().Get("IncludeItemTypes"))
		require.Equal(t, "true", r.URL.Query().Get("Recursive"))

		response := ItemsResponse{
			Items: []Item{
				{
					ID:             "m1",
					Name:           "Inception",
					Path:           "/media/Movies/Inception (2010)/Inception.mkv",
					ProductionYear: 2010,
					UserData:       &UserData{Played: true},
					MediaSources:   []MediaSource{{ID: "s1"}},
				},
				{
					ID:           "m2",
					Name:         "Blade Runner",
					MediaSources: []MediaSource{{ID: "s1"}, {ID: "s2"}},
				},
			},
			TotalRecordCount: 2,
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	})
	defer server.Close()

	items, err := newTestAdapter(server.URL).ListItems(context.Background(), catalog.KindMovie)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "m1", items[0].ID)
	assert.Equal(t, "Inception", items[0].Title)
	assert.Equal(t, 2010, items[0].Year)
	assert.Equal(t, catalog.KindMovie, items[0].Kind)
	assert.True(t, items[0].Watched)
	assert.Equal(t, 1, items[0].PartCount)
	assert.Equal(t, []string{"/media/Movies/Inception (2010)/Inception.mkv"}, items[0].Paths)

	assert.False(t, items[1].Watched)
	assert.Equal(t, 2, items[1].PartCount)
	assert.Empty(t, items[1].Paths)
}

func TestAdapterListShows(t *testing.T) {
	t.Parallel()

	server := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Users/u1/Items", r.URL.Path)

		var response ItemsResponse
		if r.URL.Query().Get("ParentId") == "" {
			require.Equal(t, "Series", r.URL.Query().Get("IncludeItemTypes"))
			response = ItemsResponse{
				Items: []Item{
					{ID: "s1", Name: "Severance", ProductionYear: 2022},
				},
			}
		} else {
			require.Equal(t, "s1", r.URL.Query().Get("ParentId"))
			require.Equal(t, "Episode", r.URL.Query().Get("IncludeItemTypes"))
			response = ItemsResponse{
				Items: []Item{
					{
						ID:           "e1",
						Name:         "Good News About Hell",
						Path:         "/media/TV/Severance (2022)/Season 01/Severance S01E01.mkv",
						IndexNumber:  intPtr(1),
						SeasonNumber: intPtr(1),
						UserData:     &UserData{Played: true},
						MediaSources: []MediaSource{{ID: "v1"}, {ID: "v2"}},
					},
					{
						ID:           "e2",
						Name:         "Half Loop",
						Path:         "/media/TV/Severance (2022)/Season 01/Severance S01E02.mkv",
						IndexNumber:  intPtr(2),
						SeasonNumber: intPtr(1),
						UserData:     &UserData{Played: false},
						MediaSources: []MediaSource{{ID: "v1"}},
					},
				},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	})
	defer server.Close()

	items, err := newTestAdapter(server.URL).ListItems(context.Background(), catalog.KindShow)
	require.NoError(t, err)
	require.Len(t, items, 1)

	show := items[0]
	assert.Equal(t, "s1", show.ID)
	assert.Equal(t, catalog.KindShow, show.Kind)
	assert.Equal(t, 2022, show.Year)
	// One unplayed episode: aggregate is unwatched.
	assert.False(t, show.Watched)
	// Season directory stripped from the first episode path.
	assert.Equal(t, []string{"/media/TV/Severance (2022)"}, show.Paths)
	// Max part count across episodes.
	assert.Equal(t, 2, show.PartCount)
}

func TestAdapterGetItem(t *testing.T) {
	t.Parallel()

	server := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		response := ItemsResponse{
			Items: []Item{
				{ID: "m1", Name: "Heat", ProductionYear: 1995},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	})
	defer server.Close()

	adapter := newTestAdapter(server.URL)

	item, err := adapter.GetItem(context.Background(), "heat", catalog.KindMovie)
	require.NoError(t, err)
	assert.Equal(t, "m1", item.ID)

	_, err = adapter.GetItem(context.Background(), "Missing", catalog.KindMovie)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestAdapterSetWatched(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	server := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	adapter := newTestAdapter(server.URL)

	require.NoError(t, adapter.SetWatched(context.Background(), "m42", true))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/Users/u1/PlayedItems/m42", gotPath)

	require.NoError(t, adapter.SetWatched(context.Background(), "m42", false))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/Users/u1/PlayedItems/m42", gotPath)
}

func TestUserIDNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]User{{Name: "bob", ID: "u9"}}))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, APIKey: "key", Username: "alice"})
	_, err := client.UserID(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alice")
}

func TestClientErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, APIKey: "bad", Username: "alice"})
	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNewClientLeavesSharedHTTPClientAlone(t *testing.T) {
	t.Parallel()

	shared := &http.Client{}
	client := NewClient(Config{URL: "http://jellyfin.local", APIKey: "key", Username: "alice", HTTPClient: shared})

	assert.Equal(t, time.Duration(0), shared.Timeout)
	assert.NotZero(t, client.httpClient.Timeout)
}
