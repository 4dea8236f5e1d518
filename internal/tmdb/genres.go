package tmdb

import (
	"context"
)

// FetchGenres lists the movie genres in the active language.
func (c *Client) FetchGenres(ctx context.Context) ([]Genre, error) {
	loc := c.localeFor(ctx)
	params := []QueryParam{
		{Name: "language", Value: loc.Language.Tag()},
	}

	var response genresEnvelope
	if err := c.getJSON(ctx, "fetch genres", "/genre/movie/list", params, &response); err != nil {
		return nil, err
	}
	return values(*response.Genres), nil
}

// GenreNames maps genre ids to names.
func GenreNames(genres []Genre) map[int]string {
	result := make(map[int]string, len(genres))
	for _, g := range genres {
		result[g.ID] = g.Name
	}
	return result
}
