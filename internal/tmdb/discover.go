package tmdb

import (
	"context"
)

// DiscoverMovies returns one page of movies matching filter in the active locale.
func (c *Client) DiscoverMovies(ctx context.Context, filter Filter) (*MoviePage, error) {
	params := filter.Encode(c.localeFor(ctx))

	var response moviesEnvelope
	if err := c.getJSON(ctx, "discover movies", "/discover/movie", params, &response); err != nil {
		return nil, err
	}
	return response.moviePage(), nil
}
