package tmdb

import (
	"context"
	"fmt"

	unrollerrors "github.com/lepinkainen/unroll/internal/errors"
)

// FetchMovieDetails fetches the full record for movie in the active language.
// A movie without a positive id fails with an invalid input error and no request is made.
func (c *Client) FetchMovieDetails(ctx context.Context, movie Movie) (*Movie, error) {
	const op = "fetch movie details"
	if !movie.HasID() {
		return nil, unrollerrors.NewInvalidInputError(op, "movie has no id")
	}
	if *movie.ID <= 0 {
		return nil, unrollerrors.NewInvalidInputError(op, fmt.Sprintf("invalid movie id %d", *movie.ID))
	}

	loc := c.localeFor(ctx)
	params := []QueryParam{
		{Name: "language", Value: loc.Language.Tag()},
	}

	var details Movie
	if err := c.getJSON(ctx, op, fmt.Sprintf("/movie/%d", *movie.ID), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}
