package tmdb

import (
	"testing"

	"github.com/lepinkainen/unroll/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterEncode(t *testing.T) {
	filter := Filter{
		GenreIDs:    []int{28, 12},
		ProviderIDs: []int{8},
		SortBy:      SortPopularityDesc,
		Page:        1,
	}

	got := filter.Encode(brazil)
	want := []QueryParam{
		{Name: "include_adult", Value: "false"},
		{Name: "include_video", Value: "false"},
		{Name: "language", Value: "pt-BR"},
		{Name: "watch_region", Value: "BR"},
		{Name: "page", Value: "1"},
		{Name: "sort_by", Value: "popularity.desc"},
		{Name: "with_genres", Value: "28,12"},
		{Name: "with_watch_providers", Value: "8"},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, got, filter.Encode(brazil), "encoding must be deterministic")
}

func TestFilterEncodeEmptyCollections(t *testing.T) {
	filter := NewFilter()
	filter.IncludeAdult = true

	query := EncodeQuery(filter.Encode(locale.Default()))
	assert.Equal(t, "include_adult=true&include_video=false&language=en-US&watch_region=US"+
		"&page=1&sort_by=popularity.desc&with_genres=&with_watch_providers=", query)

	filter.OmitEmpty = true
	query = EncodeQuery(filter.Encode(locale.Default()))
	assert.Equal(t, "include_adult=true&include_video=false&language=en-US&watch_region=US"+
		"&page=1&sort_by=popularity.desc", query)
}

func TestFilterEncodeDefaults(t *testing.T) {
	params := Filter{}.Encode(locale.Default())
	require.Len(t, params, 8)
	assert.Equal(t, QueryParam{Name: "page", Value: "1"}, params[4])
	assert.Equal(t, QueryParam{Name: "sort_by", Value: "popularity.desc"}, params[5])
}

func TestFilterSelectionPreservesOrder(t *testing.T) {
	var filter Filter
	filter.AddGenre(35)
	filter.AddGenre(18)
	filter.AddGenre(35)
	filter.ToggleGenre(99)
	filter.ToggleGenre(18)
	assert.Equal(t, []int{35, 99}, filter.GenreIDs)
	assert.Equal(t, "35,99", filter.FormattedGenres())

	filter.AddProvider(337)
	filter.AddProvider(8)
	filter.ToggleProvider(337)
	filter.ToggleProvider(119)
	filter.RemoveProvider(1)
	assert.Equal(t, "8,119", filter.FormattedProviders())
}

func TestEncodeQueryEscapes(t *testing.T) {
	params := []QueryParam{
		{Name: "with_genres", Value: "28,12"},
		{Name: "q", Value: "a b&c"},
	}
	assert.Equal(t, "with_genres=28,12&q=a+b%26c", EncodeQuery(params))
	assert.Equal(t, "", EncodeQuery(nil))
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input   string
		want    SortOrder
		wantErr bool
	}{
		{input: "popularity.desc", want: SortPopularityDesc},
		{input: "popularity-desc", want: SortPopularityDesc},
		{input: "Vote_Average.ASC", want: SortVoteAverageAsc},
		{input: "primary_release_date-desc", want: SortPrimaryReleaseDateDesc},
		{input: "rating", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortOrder(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
