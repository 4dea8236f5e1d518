package cmd

import (
	"fmt"

	"github.com/lepinkainen/unroll/internal/config"
	"github.com/lepinkainen/unroll/internal/locale"
	"github.com/lepinkainen/unroll/internal/ratelimit"
	"github.com/lepinkainen/unroll/internal/tmdb"
)

var deviceLocale = locale.NewResolver()

// configuredLocale resolves the configured language ("auto" reads the device) and region.
func configuredLocale() (locale.Locale, error) {
	region, err := locale.ParseLocation(config.Region)
	if err != nil {
		return locale.Locale{}, err
	}
	return locale.Locale{
		Language: deviceLocale.ResolveLanguage(config.Language),
		Location: region,
	}, nil
}

var newClient = func() (*tmdb.Client, error) {
	if config.TMDBToken == "" {
		return nil, fmt.Errorf("TMDB API token is required (set TMDB_API_TOKEN or tmdb.token in config)")
	}
	loc, err := configuredLocale()
	if err != nil {
		return nil, err
	}

	var limiter *ratelimit.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = ratelimit.New("TMDB", config.RequestsPerSecond)
	}

	return tmdb.NewClient(config.TMDBToken,
		tmdb.WithBaseURL(config.TMDBBaseURL),
		tmdb.WithTimeout(config.RequestTimeout),
		tmdb.WithRateLimiter(limiter),
		tmdb.WithLocale(loc),
	), nil
}
