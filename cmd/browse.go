package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/unroll/internal/tmdb"
	"github.com/lepinkainen/unroll/internal/tui"
)

var browse = tui.Browse

// BrowseCmd pages through discovery results in the terminal and prints a card for each
// selected movie.
type BrowseCmd struct {
	FilterFlags `embed:""`
}

func (c *BrowseCmd) Run(g *Globals) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	filter, err := c.filter()
	if err != nil {
		return err
	}

	ctx := commandContext()
	genresFuture := client.FetchGenresAsync(ctx)
	defer genresFuture.Cancel()

	var names map[int]string
	genresLoaded := false

	heading := fmt.Sprintf("Discover (%s)", client.Locale())
	for {
		page, err := client.DiscoverMovies(ctx, filter)
		if err != nil {
			return err
		}
		if !genresLoaded {
			// genre labels are decoration; a failed lookup leaves them blank
			genres, _ := tmdb.Optional(genresFuture.Await(ctx))
			names = tmdb.GenreNames(genres)
			genresLoaded = true
		}

		cards := make([]tui.Card, len(page.Results))
		for i, movie := range page.Results {
			cards[i] = tui.Card{
				Movie:        movie,
				Genres:       strings.Join(movie.GenreNames(names), ", "),
				PosterURL:    client.ImageURL(stringValue(movie.PosterPath)),
				ForeignTitle: movie.ForeignTitle(client.Locale()),
			}
		}

		result, err := browse(heading, page, cards)
		if err != nil {
			return err
		}

		switch result.Action {
		case tui.ActionSelected:
			card, err := loadCard(ctx, client, *result.Selection, names)
			if err != nil {
				slog.Warn("Failed to load movie details", "id", idOf(*result.Selection), "error", err)
				continue
			}
			if _, err := fmt.Fprintln(stdout, tui.RenderCard(card, 0)); err != nil {
				return err
			}
		case tui.ActionNextPage:
			filter.Page++
		case tui.ActionPrevPage:
			if filter.Page > 1 {
				filter.Page--
			}
		default:
			return nil
		}
	}
}
