package tmdb

import (
	"context"
	"net/http"
	"testing"

	unrollerrors "github.com/lepinkainen/unroll/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverMoviesQuery(t *testing.T) {
	const wantQuery = "include_adult=false&include_video=false&language=pt-BR&watch_region=BR" +
		"&page=1&sort_by=popularity.desc&with_genres=28,12&with_watch_providers=8"

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, wantQuery, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"page":1,"total_pages":3,"total_results":55,"results":[
			{"id":603,"title":"Matrix","original_title":"The Matrix","original_language":"en",
			 "overview":"Neo","poster_path":"/m.jpg","backdrop_path":"/b.jpg",
			 "release_date":"1999-03-30","genre_ids":[28,878]},
			{"title":"No id"}
		]}`)
	}, WithLocale(brazil))

	filter := Filter{
		GenreIDs:    []int{28, 12},
		ProviderIDs: []int{8},
		SortBy:      SortPopularityDesc,
		Page:        1,
	}

	page, err := client.DiscoverMovies(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, *page.TotalPages)
	assert.Equal(t, 55, *page.TotalResults)
	require.Len(t, page.Results, 2)

	matrix := page.Results[0]
	assert.Equal(t, 603, *matrix.ID)
	assert.Equal(t, "Matrix", matrix.DisplayTitle())
	assert.Equal(t, "1999", matrix.ReleaseYear())
	assert.Equal(t, []int{28, 878}, matrix.GenreIDs)
	assert.Nil(t, matrix.Runtime)

	assert.False(t, page.Results[1].HasID())
	assert.Nil(t, page.Results[1].GenreIDs)
}

func TestDiscoverMoviesDecodeFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing page", body: `{"results":[]}`},
		{name: "missing results", body: `{"page":1}`},
		{name: "page is a string", body: `{"page":"one","results":[]}`},
		{name: "truncated", body: `{"page":1,"results":[`},
		{name: "null body", body: `null`},
		{name: "trailing garbage", body: `{"page":1,"results":[]} garbage`},
		{name: "second value", body: `{"page":1,"results":[]}{"page":2,"results":[]}`},
		{name: "null movie", body: `{"page":1,"results":[null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			})

			page, err := client.DiscoverMovies(context.Background(), NewFilter())
			require.Error(t, err)
			assert.Nil(t, page)
			assert.True(t, unrollerrors.IsKind(err, unrollerrors.KindDecode))
		})
	}
}
