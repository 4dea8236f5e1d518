package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/lepinkainen/unroll/internal/cmdutil"
	"github.com/lepinkainen/unroll/internal/datastore"
	"github.com/lepinkainen/unroll/internal/tmdb"
	"github.com/lepinkainen/unroll/internal/tui"
)

// GenresCmd lists the genres TMDB uses for movies.
type GenresCmd struct{}

func (c *GenresCmd) Run(g *Globals) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	genres, err := client.FetchGenres(commandContext())
	if err != nil {
		return err
	}
	return render(g, genres, func(w io.Writer) error {
		for _, genre := range genres {
			if _, err := fmt.Fprintf(w, "%6d  %s\n", genre.ID, genre.Name); err != nil {
				return err
			}
		}
		return nil
	})
}

// ProvidersCmd lists the watch providers of the active region.
type ProvidersCmd struct{}

func (c *ProvidersCmd) Run(g *Globals) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	providers, err := client.FetchWatchProviders(commandContext())
	if err != nil {
		return err
	}
	return render(g, providers, func(w io.Writer) error {
		for _, provider := range providers {
			id := 0
			if provider.ProviderID != nil {
				id = *provider.ProviderID
			}
			if _, err := fmt.Fprintf(w, "%6d  %s\n", id, provider.Name()); err != nil {
				return err
			}
		}
		return nil
	})
}

// FilterFlags are the discovery options shared by discover and browse.
type FilterFlags struct {
	Genre     []int  `short:"g" help:"Genre IDs to include, in order (repeat or comma-separate)" sep:","`
	Provider  []int  `short:"p" help:"Watch provider IDs to include, in order" sep:","`
	Sort      string `help:"Sort order, e.g. popularity.desc or vote_average-desc" default:"popularity.desc"`
	Page      int    `help:"Result page" default:"1"`
	Adult     bool   `help:"Include adult titles"`
	Video     bool   `help:"Include video releases"`
	OmitEmpty bool   `help:"Leave out empty genre/provider parameters instead of sending them blank"`
}

func (f FilterFlags) filter() (tmdb.Filter, error) {
	filter := tmdb.NewFilter()
	order, err := tmdb.ParseSortOrder(f.Sort)
	if err != nil {
		return filter, err
	}
	if f.Page < 1 {
		return filter, fmt.Errorf("page must be at least 1, got %d", f.Page)
	}

	for _, id := range f.Genre {
		filter.AddGenre(id)
	}
	for _, id := range f.Provider {
		filter.AddProvider(id)
	}
	filter.SortBy = order
	filter.Page = f.Page
	filter.IncludeAdult = f.Adult
	filter.IncludeVideo = f.Video
	filter.OmitEmpty = f.OmitEmpty
	return filter, nil
}

// DiscoverCmd fetches one discovery page.
type DiscoverCmd struct {
	FilterFlags `embed:""`

	Save bool `help:"Export the page to the configured datastore (SQLite or remote Datasette)"`
}

func (c *DiscoverCmd) Run(g *Globals) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	filter, err := c.filter()
	if err != nil {
		return err
	}

	ctx := commandContext()
	pageFuture := client.DiscoverMoviesAsync(ctx, filter)
	genresFuture := client.FetchGenresAsync(ctx)
	defer genresFuture.Cancel()

	page, err := pageFuture.Await(ctx)
	if err != nil {
		return err
	}
	// genre names only decorate text output
	genres, _ := tmdb.Optional(genresFuture.Await(ctx))
	names := tmdb.GenreNames(genres)

	if c.Save {
		viper.Set("datastore.enabled", true)
	}
	loc := client.Locale()
	if err := cmdutil.WriteToDatastore(ctx, page.Results, datastore.MoviesSchema, datastore.MoviesTable,
		"discovered movies", movieRecord(loc, nil)); err != nil {
		return err
	}

	return render(g, page, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "%s for %s\n", pageSummary(page), loc); err != nil {
			return err
		}
		for _, movie := range page.Results {
			line := fmt.Sprintf("%8s  %s", movieID(movie), movieTitle(movie))
			if genreList := strings.Join(movie.GenreNames(names), ", "); genreList != "" {
				line += "  [" + genreList + "]"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

type movieView struct {
	tmdb.Movie   `yaml:",inline"`
	PosterURL    string `json:"poster_url,omitempty" yaml:"poster_url,omitempty"`
	ForeignTitle string `json:"foreign_title,omitempty" yaml:"foreign_title,omitempty"`
	AvailableOn  string `json:"available_on" yaml:"available_on"`
	Region       string `json:"region" yaml:"region"`
}

// DetailsCmd shows a movie card.
type DetailsCmd struct {
	ID int `arg:"" help:"TMDB movie ID"`
}

func (c *DetailsCmd) Run(g *Globals) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	card, err := loadCard(commandContext(), client, tmdb.MovieWithID(c.ID), nil)
	if err != nil {
		return err
	}
	view := movieView{
		Movie:        card.Movie,
		PosterURL:    card.PosterURL,
		ForeignTitle: card.ForeignTitle,
		AvailableOn:  card.AvailableOn,
		Region:       client.WatchRegion().RegionCode(),
	}
	return render(g, view, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, tui.RenderCard(card, 0))
		return err
	})
}

// WhereCmd prints the subscription providers of a movie in the active region.
type WhereCmd struct {
	ID  int  `arg:"" help:"TMDB movie ID"`
	All bool `help:"List every region TMDB reports instead of only the active one"`
}

type whereView struct {
	ID          int               `json:"id" yaml:"id"`
	Region      string            `json:"region" yaml:"region"`
	AvailableOn string            `json:"available_on" yaml:"available_on"`
	Regions     map[string]string `json:"regions,omitempty" yaml:"regions,omitempty"`
}

func (c *WhereCmd) Run(g *Globals) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.FetchWatchProvidersFor(commandContext(), c.ID)
	if err != nil {
		return err
	}

	region := client.WatchRegion()
	view := whereView{
		ID:          c.ID,
		Region:      region.RegionCode(),
		AvailableOn: tmdb.FlatrateNames(resp, region),
	}
	if c.All {
		view.Regions = make(map[string]string, len(resp.Results))
		for code, result := range resp.Results {
			view.Regions[code] = tmdb.JoinProviderNames(result.Flatrate)
		}
	}

	return render(g, view, func(w io.Writer) error {
		if c.All {
			for _, code := range sortedKeys(view.Regions) {
				if _, err := fmt.Fprintf(w, "%s: %s\n", code, view.Regions[code]); err != nil {
					return err
				}
			}
			return nil
		}
		_, err := fmt.Fprintln(w, view.AvailableOn)
		return err
	})
}

func pageSummary(page *tmdb.MoviePage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page %d", page.Page)
	if page.TotalPages != nil {
		fmt.Fprintf(&b, " of %d", *page.TotalPages)
	}
	if page.TotalResults != nil {
		fmt.Fprintf(&b, " (%d results)", *page.TotalResults)
	}
	return b.String()
}

func movieID(movie tmdb.Movie) string {
	if movie.ID == nil {
		return "-"
	}
	return fmt.Sprint(*movie.ID)
}

func movieTitle(movie tmdb.Movie) string {
	title := movie.DisplayTitle()
	if year := movie.ReleaseYear(); year != "" {
		return fmt.Sprintf("%s (%s)", title, year)
	}
	return title
}
