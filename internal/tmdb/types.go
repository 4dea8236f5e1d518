package tmdb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lepinkainen/unroll/internal/locale"
)

// Genre is a movie genre as listed by TMDB.
type Genre struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Movie is a discovery result or a detail record. TMDB omits fields freely, so every field
// is optional and nothing is defaulted.
type Movie struct {
	ID               *int    `json:"id,omitempty" yaml:"id,omitempty"`
	Title            *string `json:"title,omitempty" yaml:"title,omitempty"`
	OriginalTitle    *string `json:"original_title,omitempty" yaml:"original_title,omitempty"`
	OriginalLanguage *string `json:"original_language,omitempty" yaml:"original_language,omitempty"`
	Overview         *string `json:"overview,omitempty" yaml:"overview,omitempty"`
	PosterPath       *string `json:"poster_path,omitempty" yaml:"poster_path,omitempty"`
	BackdropPath     *string `json:"backdrop_path,omitempty" yaml:"backdrop_path,omitempty"`
	ReleaseDate      *string `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty" yaml:"genre_ids,omitempty"`
	Genres           []Genre `json:"genres,omitempty" yaml:"genres,omitempty"`
	Runtime          *int    `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Tagline          *string `json:"tagline,omitempty" yaml:"tagline,omitempty"`
}

// MovieWithID returns a Movie carrying only an id, suitable for FetchMovieDetails.
func MovieWithID(id int) Movie {
	return Movie{ID: &id}
}

// HasID reports whether the movie carries an id.
func (m Movie) HasID() bool {
	return m.ID != nil
}

// DisplayTitle returns the localized title, falling back to the original title.
func (m Movie) DisplayTitle() string {
	if title := deref(m.Title); title != "" {
		return title
	}
	return deref(m.OriginalTitle)
}

// InOriginalLanguage reports whether the movie was made in the language of loc. A movie
// without an original language counts as being in it.
func (m Movie) InOriginalLanguage(loc locale.Locale) bool {
	lang := deref(m.OriginalLanguage)
	return lang == "" || loc.IsOriginalLanguage(lang)
}

// ForeignTitle returns the original title when it is worth showing next to the title
// localized for loc, and "" otherwise.
func (m Movie) ForeignTitle(loc locale.Locale) string {
	original := deref(m.OriginalTitle)
	if original == "" || m.InOriginalLanguage(loc) || original == m.DisplayTitle() {
		return ""
	}
	return original
}

// ReleaseYear returns the first component of the release date ("1994" for "1994-09-23").
func (m Movie) ReleaseYear() string {
	date := deref(m.ReleaseDate)
	if date == "" {
		return ""
	}
	year, _, _ := strings.Cut(date, "-")
	return year
}

// GenreNames returns the names of the movie's genres. Detail records carry genre objects;
// discovery results only carry ids, which are looked up in names.
func (m Movie) GenreNames(names map[int]string) []string {
	if len(m.Genres) > 0 {
		result := make([]string, len(m.Genres))
		for i, g := range m.Genres {
			result[i] = g.Name
		}
		return result
	}
	result := make([]string, 0, len(m.GenreIDs))
	for _, id := range m.GenreIDs {
		if name, ok := names[id]; ok {
			result = append(result, name)
		}
	}
	return result
}

// MoviePage is one page of discovery results.
type MoviePage struct {
	Page         int     `json:"page" yaml:"page"`
	Results      []Movie `json:"results" yaml:"results"`
	TotalPages   *int    `json:"total_pages,omitempty" yaml:"total_pages,omitempty"`
	TotalResults *int    `json:"total_results,omitempty" yaml:"total_results,omitempty"`
}

// WatchProvider is a streaming/rental service.
type WatchProvider struct {
	ProviderID      *int    `json:"provider_id,omitempty" yaml:"provider_id,omitempty"`
	ProviderName    *string `json:"provider_name,omitempty" yaml:"provider_name,omitempty"`
	LogoPath        *string `json:"logo_path,omitempty" yaml:"logo_path,omitempty"`
	DisplayPriority *int    `json:"display_priority,omitempty" yaml:"display_priority,omitempty"`
}

// Name returns the provider name or "".
func (p WatchProvider) Name() string {
	return deref(p.ProviderName)
}

// WatchProviderResult groups the providers of one region by offering category.
type WatchProviderResult struct {
	Link     *string         `json:"link,omitempty" yaml:"link,omitempty"`
	Flatrate []WatchProvider `json:"flatrate,omitempty" yaml:"flatrate,omitempty"`
	Rent     []WatchProvider `json:"rent,omitempty" yaml:"rent,omitempty"`
	Buy      []WatchProvider `json:"buy,omitempty" yaml:"buy,omitempty"`
	Ads      []WatchProvider `json:"ads,omitempty" yaml:"ads,omitempty"`
	Free     []WatchProvider `json:"free,omitempty" yaml:"free,omitempty"`
}

// WatchProvidersResponse lists where a movie can be watched, keyed by region code ("US", "BR").
type WatchProvidersResponse struct {
	ID      *int                           `json:"id,omitempty" yaml:"id,omitempty"`
	Results map[string]WatchProviderResult `json:"results,omitempty" yaml:"results,omitempty"`
}

type genresEnvelope struct {
	Genres *[]*Genre `json:"genres"`
}

func (e genresEnvelope) validate() error {
	if e.Genres == nil {
		return errors.New("missing genres")
	}
	if hasNil(*e.Genres) {
		return errors.New("null genre in list")
	}
	return nil
}

type moviesEnvelope struct {
	Page         *int      `json:"page"`
	Results      *[]*Movie `json:"results"`
	TotalPages   *int      `json:"total_pages"`
	TotalResults *int      `json:"total_results"`
}

func (e moviesEnvelope) validate() error {
	if e.Page == nil {
		return errors.New("missing page")
	}
	if e.Results == nil {
		return errors.New("missing results")
	}
	if hasNil(*e.Results) {
		return errors.New("null movie in results")
	}
	return nil
}

func (e moviesEnvelope) moviePage() *MoviePage {
	return &MoviePage{
		Page:         *e.Page,
		Results:      values(*e.Results),
		TotalPages:   e.TotalPages,
		TotalResults: e.TotalResults,
	}
}

type watchProvidersEnvelope struct {
	Results *[]*WatchProvider `json:"results"`
}

func (e watchProvidersEnvelope) validate() error {
	if e.Results == nil {
		return errors.New("missing results")
	}
	if hasNil(*e.Results) {
		return errors.New("null provider in results")
	}
	return nil
}

type movieProvidersEnvelope struct {
	ID      *int                            `json:"id"`
	Results map[string]*WatchProviderResult `json:"results"`
}

func (e movieProvidersEnvelope) validate() error {
	for code, result := range e.Results {
		if result == nil {
			return fmt.Errorf("null providers for region %q", code)
		}
	}
	return nil
}

func (e movieProvidersEnvelope) response() *WatchProvidersResponse {
	response := &WatchProvidersResponse{ID: e.ID}
	if e.Results != nil {
		response.Results = make(map[string]WatchProviderResult, len(e.Results))
		for code, result := range e.Results {
			response.Results[code] = *result
		}
	}
	return response
}

func hasNil[T any](items []*T) bool {
	for _, item := range items {
		if item == nil {
			return true
		}
	}
	return false
}

func values[T any](items []*T) []T {
	result := make([]T, len(items))
	for i, item := range items {
		result[i] = *item
	}
	return result
}

func deref[T any](ptr *T) T {
	var zero T
	if ptr == nil {
		return zero
	}
	return *ptr
}
