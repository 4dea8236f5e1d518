package tmdb

import (
	"context"
	"fmt"

	unrollerrors "github.com/lepinkainen/unroll/internal/errors"
)

// FetchWatchProviders lists the movie watch providers available in the active region.
func (c *Client) FetchWatchProviders(ctx context.Context) ([]WatchProvider, error) {
	loc := c.localeFor(ctx)
	params := []QueryParam{
		{Name: "language", Value: loc.Language.Tag()},
		{Name: "watch_region", Value: loc.Location.RegionCode()},
	}

	var response watchProvidersEnvelope
	if err := c.getJSON(ctx, "fetch watch providers", "/watch/providers/movie", params, &response); err != nil {
		return nil, err
	}
	return values(*response.Results), nil
}

// FetchWatchProvidersFor returns where movieID can be watched, for every region TMDB knows.
func (c *Client) FetchWatchProvidersFor(ctx context.Context, movieID int) (*WatchProvidersResponse, error) {
	const op = "fetch movie watch providers"
	if movieID <= 0 {
		return nil, unrollerrors.NewInvalidInputError(op, fmt.Sprintf("invalid movie id %d", movieID))
	}

	var response movieProvidersEnvelope
	if err := c.getJSON(ctx, op, fmt.Sprintf("/movie/%d/watch/providers", movieID), nil, &response); err != nil {
		return nil, err
	}
	return response.response(), nil
}
