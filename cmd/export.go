package cmd

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/lepinkainen/unroll/internal/cmdutil"
	"github.com/lepinkainen/unroll/internal/locale"
	"github.com/lepinkainen/unroll/internal/tmdb"
	"github.com/lepinkainen/unroll/internal/tui"
)

// movieRecord maps a movie onto the movies table. availableOn is keyed by movie id and may be nil.
func movieRecord(loc locale.Locale, availableOn map[int]string) func(tmdb.Movie) map[string]any {
	return func(movie tmdb.Movie) map[string]any {
		var available any
		if movie.ID != nil {
			if names, ok := availableOn[*movie.ID]; ok {
				available = names
			}
		}
		return cmdutil.StructToMap(movie, cmdutil.StructToMapOptions{
			OmitFields:   map[string]bool{"Genres": true},
			KeyOverrides: map[string]string{"GenreIDs": "genre_ids"},
			JoinSlices:   true,
			Extra: map[string]any{
				"language":     loc.Language.Tag(),
				"region":       loc.Location.RegionCode(),
				"available_on": available,
			},
		})
	}
}

// loadCard fetches details and regional availability concurrently. Availability is optional;
// a details failure is returned.
func loadCard(ctx context.Context, client *tmdb.Client, movie tmdb.Movie, names map[int]string) (tui.Card, error) {
	detailsFuture := client.FetchMovieDetailsAsync(ctx, movie)
	providersFuture := client.FetchWatchProvidersForAsync(ctx, idOf(movie))
	defer providersFuture.Cancel()

	details, err := detailsFuture.Await(ctx)
	if err != nil {
		return tui.Card{}, err
	}

	card := tui.Card{
		Movie:        *details,
		Genres:       strings.Join(details.GenreNames(names), ", "),
		PosterURL:    client.ImageURL(stringValue(details.PosterPath)),
		ForeignTitle: details.ForeignTitle(client.Locale()),
	}
	if providers, ok := tmdb.Optional(providersFuture.Await(ctx)); ok {
		card.AvailableOn = tmdb.FlatrateNames(providers, client.WatchRegion())
	}
	return card, nil
}

func idOf(movie tmdb.Movie) int {
	if movie.ID == nil {
		return 0
	}
	return *movie.ID
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
