package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	unrollerrors "github.com/lepinkainen/unroll/internal/errors"
	"github.com/lepinkainen/unroll/internal/locale"
	"github.com/lepinkainen/unroll/internal/tmdb"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type movieResponse struct {
	*tmdb.Movie
	PosterURL          string `json:"poster_url,omitempty"`
	ReleaseYear        string `json:"release_year,omitempty"`
	InOriginalLanguage bool   `json:"in_original_language"`
	ForeignTitle       string `json:"foreign_title,omitempty"`
	AvailableOn        string `json:"available_on"`
	Region             string `json:"region"`
}

type pageResponse struct {
	*tmdb.MoviePage
	Locale string `json:"locale"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	ctx, err := s.localeContext(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	genres, err := s.catalog.FetchGenres(ctx)
	if err != nil {
		s.respondCatalogError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, genres)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	ctx, err := s.localeContext(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	providers, err := s.catalog.FetchWatchProviders(ctx)
	if err != nil {
		s.respondCatalogError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, providers)
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	ctx, err := s.localeContext(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	filter, err := buildFilter(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	page, err := s.catalog.DiscoverMovies(ctx, filter)
	if err != nil {
		s.respondCatalogError(w, err)
		return
	}
	loc, _ := locale.FromContext(ctx)
	s.respondJSON(w, http.StatusOK, pageResponse{MoviePage: page, Locale: loc.String()})
}

// handleMovie fetches details and providers concurrently. A provider failure only blanks
// available_on; a details failure fails the request.
func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	ctx, err := s.localeContext(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	id, err := movieIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	loc, _ := locale.FromContext(ctx)

	var (
		details     *tmdb.Movie
		availableOn string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = s.catalog.FetchMovieDetails(gctx, tmdb.MovieWithID(id))
		return err
	})
	g.Go(func() error {
		resp, ok := tmdb.Optional(s.catalog.FetchWatchProvidersFor(gctx, id))
		if ok {
			availableOn = tmdb.FlatrateNames(resp, loc.Location)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.respondCatalogError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, movieResponse{
		Movie:              details,
		PosterURL:          s.catalog.ImageURL(stringValue(details.PosterPath)),
		ReleaseYear:        details.ReleaseYear(),
		InOriginalLanguage: details.InOriginalLanguage(loc),
		ForeignTitle:       details.ForeignTitle(loc),
		AvailableOn:        availableOn,
		Region:             loc.Location.RegionCode(),
	})
}

// handleMovieProviders returns every region's providers. language and region are validated
// like on every other route even though the payload is not filtered by them.
func (s *Server) handleMovieProviders(w http.ResponseWriter, r *http.Request) {
	ctx, err := s.localeContext(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	id, err := movieIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	resp, err := s.catalog.FetchWatchProvidersFor(ctx, id)
	if err != nil {
		s.respondCatalogError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// localeContext attaches the locale selected by the language and region query parameters,
// starting from the catalog's active locale.
func (s *Server) localeContext(r *http.Request) (context.Context, error) {
	loc := s.catalog.Locale()
	query := r.URL.Query()

	if value := strings.TrimSpace(query.Get("language")); value != "" {
		lang, ok := locale.LanguageForTag(locale.ComposeTag(value))
		if !ok {
			return nil, fmt.Errorf("unsupported language %q", value)
		}
		loc.Language = lang
	}
	if value := strings.TrimSpace(query.Get("region")); value != "" {
		region, err := locale.ParseLocation(value)
		if err != nil {
			return nil, err
		}
		loc.Location = region
	}
	return locale.NewContext(r.Context(), loc), nil
}

func buildFilter(query url.Values) (tmdb.Filter, error) {
	filter := tmdb.NewFilter()

	genres, err := parseIDs(query["genre"])
	if err != nil {
		return filter, fmt.Errorf("invalid genre value")
	}
	for _, id := range genres {
		filter.AddGenre(id)
	}
	providers, err := parseIDs(query["provider"])
	if err != nil {
		return filter, fmt.Errorf("invalid provider value")
	}
	for _, id := range providers {
		filter.AddProvider(id)
	}

	if val := strings.TrimSpace(query.Get("sort")); val != "" {
		order, err := tmdb.ParseSortOrder(val)
		if err != nil {
			return filter, err
		}
		filter.SortBy = order
	}
	if val := strings.TrimSpace(query.Get("page")); val != "" {
		page, err := strconv.Atoi(val)
		if err != nil || page < 1 {
			return filter, fmt.Errorf("invalid page value")
		}
		filter.Page = page
	}
	if val := strings.TrimSpace(query.Get("adult")); val != "" {
		adult, err := strconv.ParseBool(val)
		if err != nil {
			return filter, fmt.Errorf("invalid adult value")
		}
		filter.IncludeAdult = adult
	}
	if val := strings.TrimSpace(query.Get("video")); val != "" {
		video, err := strconv.ParseBool(val)
		if err != nil {
			return filter, fmt.Errorf("invalid video value")
		}
		filter.IncludeVideo = video
	}
	return filter, nil
}

// parseIDs accepts repeated parameters and comma-joined lists.
func parseIDs(values []string) ([]int, error) {
	var ids []int
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func movieIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id")
	}
	return id, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("Failed to encode response", "error", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{Code: code, Message: message})
}

func (s *Server) respondCatalogError(w http.ResponseWriter, err error) {
	var rateLimited *unrollerrors.RateLimitError
	switch {
	case unrollerrors.IsKind(err, unrollerrors.KindInvalidInput):
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	case errors.As(err, &rateLimited):
		if rateLimited.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(rateLimited.RetryAfter.Seconds())))
		}
		s.respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Catalog rate limit exceeded")
	case unrollerrors.StatusCode(err) == http.StatusNotFound:
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Not found in catalog")
	default:
		s.logger.Warn("Catalog request failed", "error", err, "kind", unrollerrors.KindOf(err))
		s.respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Catalog request failed")
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
