package tmdb

import (
	"context"

	"github.com/lepinkainen/unroll/internal/task"
)

// FetchGenresAsync starts FetchGenres in the background.
func (c *Client) FetchGenresAsync(ctx context.Context) *task.Future[[]Genre] {
	return task.Go(ctx, c.FetchGenres)
}

// FetchWatchProvidersAsync starts FetchWatchProviders in the background.
func (c *Client) FetchWatchProvidersAsync(ctx context.Context) *task.Future[[]WatchProvider] {
	return task.Go(ctx, c.FetchWatchProviders)
}

// FetchWatchProvidersForAsync starts FetchWatchProvidersFor in the background.
func (c *Client) FetchWatchProvidersForAsync(ctx context.Context, movieID int) *task.Future[*WatchProvidersResponse] {
	return task.Go(ctx, func(ctx context.Context) (*WatchProvidersResponse, error) {
		return c.FetchWatchProvidersFor(ctx, movieID)
	})
}

// DiscoverMoviesAsync starts DiscoverMovies in the background.
func (c *Client) DiscoverMoviesAsync(ctx context.Context, filter Filter) *task.Future[*MoviePage] {
	return task.Go(ctx, func(ctx context.Context) (*MoviePage, error) {
		return c.DiscoverMovies(ctx, filter)
	})
}

// FetchMovieDetailsAsync starts FetchMovieDetails in the background.
func (c *Client) FetchMovieDetailsAsync(ctx context.Context, movie Movie) *task.Future[*Movie] {
	return task.Go(ctx, func(ctx context.Context) (*Movie, error) {
		return c.FetchMovieDetails(ctx, movie)
	})
}
