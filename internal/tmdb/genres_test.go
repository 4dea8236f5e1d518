package tmdb

import (
	"context"
	"net/http"
	"testing"

	unrollerrors "github.com/lepinkainen/unroll/internal/errors"
	"github.com/lepinkainen/unroll/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchGenres(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		assert.Equal(t, "language=en-US", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"genres":[{"id":28,"name":"Action"},{"id":12,"name":"Adventure"}]}`)
	})

	genres, err := client.FetchGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Genre{{ID: 28, Name: "Action"}, {ID: 12, Name: "Adventure"}}, genres)
	assert.Equal(t, map[int]string{28: "Action", 12: "Adventure"}, GenreNames(genres))
}

func TestFetchGenresUsesContextLocale(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pt-BR", r.URL.Query().Get("language"))
		writeJSON(w, http.StatusOK, `{"genres":[{"id":28,"name":"Ação"}]}`)
	})

	ctx := locale.NewContext(context.Background(), brazil)
	genres, err := client.FetchGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ação", genres[0].Name)
}

func TestFetchGenresFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   unrollerrors.Kind
	}{
		{name: "not json", status: http.StatusOK, body: `<html>`, kind: unrollerrors.KindDecode},
		{name: "wrong shape", status: http.StatusOK, body: `{"genres":"Action"}`, kind: unrollerrors.KindDecode},
		{name: "missing envelope field", status: http.StatusOK, body: `{}`, kind: unrollerrors.KindDecode},
		{name: "null body", status: http.StatusOK, body: `null`, kind: unrollerrors.KindDecode},
		{name: "null genre", status: http.StatusOK, body: `{"genres":[null]}`, kind: unrollerrors.KindDecode},
		{name: "well-formed 404", status: http.StatusNotFound, body: `{"genres":[{"id":1,"name":"x"}]}`, kind: unrollerrors.KindHTTPStatus},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"status_code":7}`, kind: unrollerrors.KindHTTPStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			genres, err := client.FetchGenres(context.Background())
			require.Error(t, err)
			assert.Nil(t, genres)
			assert.Equal(t, tt.kind, unrollerrors.KindOf(err))

			// Compatibility mode collapses every failure to absence.
			got, ok := Optional(client.FetchGenres(context.Background()))
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}
