package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Options{
		BaseURL:     srv.URL + "/3",
		Token:       "test-token",
		Timeout:     2 * time.Second,
		CacheMaxAge: 2 * time.Hour,
	})
	require.NoError(t, err)
	return c
}

func TestListingSendsHeadersAndPage(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":3,"results":[{"id":1012,"poster_path":"/p.jpg","backdrop_path":"/b.jpg","title":"Dune","adult":false}]}`))
	})

	items, err := c.Listing(context.Background(), domain.ListingPopular, 3)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/3/movie/popular", got.URL.Path)
	assert.Equal(t, "3", got.URL.Query().Get("page"))
	assert.Equal(t, "Bearer test-token", got.Header.Get("Authorization"))
	assert.Equal(t, "max-age=7200", got.Header.Get("Cache-Control"))
	assert.Equal(t, []domain.ListingItem{{ID: 1012, PosterPath: "/p.jpg", BackdropPath: "/b.jpg", Title: "Dune"}}, items)
}

func TestListingTrendingPath(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	items, err := c.Listing(context.Background(), domain.ListingTrending, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "/3/trending/movie/day", path)
}

func TestListingUnknownKind(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.Listing(context.Background(), domain.ListingKind("latest"), 1)
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestDetailDefaultsMissingFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/4036", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 4036,
			"title": "errem",
			"genres": [{"id": 18, "name": "Drama"}, null, {"id": 35}],
			"production_companies": null,
			"belongs_to_collection": null,
			"runtime": null,
			"vote_average": 7.5,
			"homepage": "https://example.org",
			"unknown_field": {"nested": true}
		}`))
	})

	d, err := c.Detail(context.Background(), 4036)
	require.NoError(t, err)

	assert.Equal(t, 4036, d.ID)
	assert.Equal(t, "errem", d.Title)
	assert.Equal(t, []string{"Drama", "", ""}, d.Genres)
	assert.Equal(t, []string{}, d.ProductionCompanies)
	assert.Equal(t, domain.CollectionRef{}, d.BelongsToCollection)
	assert.Zero(t, d.Runtime)
	assert.Equal(t, 7.5, d.VoteAverage)
	assert.False(t, d.Favorite)
	assert.Equal(t, "https://example.org", d.HomePage)
}

func TestSearchQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		assert.Equal(t, "blade runner", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "false", r.URL.Query().Get("include_adult"))
		_, _ = w.Write([]byte(`{"results":[{"id":78,"title":"Blade Runner","vote_average":7.9}]}`))
	})

	res, err := c.Search(context.Background(), "blade runner", 2)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, domain.SearchResult{ID: 78, Title: "Blade Runner", VoteAverage: 7.9}, res[0])
}

func TestImagesCreditsGenresCollection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/movie/7/images":
			assert.Equal(t, "en", r.URL.Query().Get("language"))
			_, _ = w.Write([]byte(`{"backdrops":[{"file_path":"/a.jpg"},{"file_path":"/a.jpg"},{}]}`))
		case "/3/movie/7/credits":
			_, _ = w.Write([]byte(`{"cast":[{"id":1,"name":"Ann","character":"Lead","profile_path":"/ann.jpg"},{"id":2,"name":"Bo","known_for_department":"Directing"}]}`))
		case "/3/genre/movie/list":
			_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"}]}`))
		case "/3/collection/10":
			_, _ = w.Write([]byte(`{"name":"Star Wars Collection","parts":[{"id":11,"title":"Star Wars","vote_average":8.2},null]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	images, err := c.Images(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []domain.BackdropImage{{Path: "/a.jpg"}, {Path: "/a.jpg"}, {Path: ""}}, images)

	cast, err := c.Credits(ctx, 7)
	require.NoError(t, err)
	require.Len(t, cast, 2)
	assert.Equal(t, "Acting", cast[0].KnownForDepartment)
	assert.Equal(t, "Directing", cast[1].KnownForDepartment)
	assert.Equal(t, "/ann.jpg", cast[0].ProfilePath)

	genres, err := c.Genres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Genre{{ID: 28, Name: "Action"}}, genres)

	coll, err := c.Collection(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Star Wars Collection", coll.Name)
	require.Len(t, coll.Parts, 2)
	assert.Equal(t, 8.2, coll.Parts[0].VoteAverage)
	assert.Equal(t, domain.CollectionPart{}, coll.Parts[1])
}

func TestProtocolError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`))
	})

	_, err := c.Detail(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocol)
	assert.NotErrorIs(t, err, ErrNetwork)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusUnauthorized, fe.StatusCode)
	assert.Contains(t, fe.Error(), "Invalid API key")
}

func TestTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c, err := New(Options{BaseURL: srv.URL, Token: "t", Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Listing(context.Background(), domain.ListingNowPlaying, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: url, Token: "t", Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Genres(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestMalformedBodyIsUnknownError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	})

	_, err := c.Listing(context.Background(), domain.ListingUpcoming, 1)
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestOneAttemptPerCall(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Listing(context.Background(), domain.ListingTopRated, 1)
	assert.ErrorIs(t, err, ErrProtocol)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(Options{BaseURL: "http://localhost"})
	assert.Error(t, err)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, "network", KindNetwork.String())
}
