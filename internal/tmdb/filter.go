package tmdb

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/lepinkainen/unroll/internal/locale"
)

// SortOrder is a discovery sort_by value.
type SortOrder string

// Sort orders accepted by /discover/movie.
const (
	SortPopularityAsc          SortOrder = "popularity.asc"
	SortPopularityDesc         SortOrder = "popularity.desc"
	SortRevenueAsc             SortOrder = "revenue.asc"
	SortRevenueDesc            SortOrder = "revenue.desc"
	SortPrimaryReleaseDateAsc  SortOrder = "primary_release_date.asc"
	SortPrimaryReleaseDateDesc SortOrder = "primary_release_date.desc"
	SortVoteAverageAsc         SortOrder = "vote_average.asc"
	SortVoteAverageDesc        SortOrder = "vote_average.desc"
	SortVoteCountAsc           SortOrder = "vote_count.asc"
	SortVoteCountDesc          SortOrder = "vote_count.desc"
	SortTitleAsc               SortOrder = "title.asc"
	SortTitleDesc              SortOrder = "title.desc"
)

// DefaultSortOrder is used when a Filter leaves SortBy empty.
const DefaultSortOrder = SortPopularityDesc

// SortOrders returns every supported sort order.
func SortOrders() []SortOrder {
	return []SortOrder{
		SortPopularityAsc, SortPopularityDesc,
		SortRevenueAsc, SortRevenueDesc,
		SortPrimaryReleaseDateAsc, SortPrimaryReleaseDateDesc,
		SortVoteAverageAsc, SortVoteAverageDesc,
		SortVoteCountAsc, SortVoteCountDesc,
		SortTitleAsc, SortTitleDesc,
	}
}

// ParseSortOrder accepts "popularity.desc" as well as "popularity-desc".
func ParseSortOrder(value string) (SortOrder, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if i := strings.LastIndexByte(normalized, '-'); i >= 0 {
		normalized = normalized[:i] + "." + normalized[i+1:]
	}
	for _, order := range SortOrders() {
		if string(order) == normalized {
			return order, nil
		}
	}
	return "", fmt.Errorf("unsupported sort order %q", value)
}

// Filter is the caller-owned set of discovery options.
type Filter struct {
	GenreIDs     []int
	ProviderIDs  []int
	SortBy       SortOrder
	Page         int
	IncludeAdult bool
	IncludeVideo bool

	// OmitEmpty drops with_genres/with_watch_providers when nothing is selected.
	// By default they are sent as empty values.
	OmitEmpty bool
}

// NewFilter returns a filter for the first page sorted by popularity.
func NewFilter() Filter {
	return Filter{SortBy: DefaultSortOrder, Page: 1}
}

// AddGenre selects a genre. Selection order is preserved and duplicates are ignored.
func (f *Filter) AddGenre(id int) {
	if !slices.Contains(f.GenreIDs, id) {
		f.GenreIDs = append(f.GenreIDs, id)
	}
}

// RemoveGenre deselects a genre.
func (f *Filter) RemoveGenre(id int) {
	f.GenreIDs = slices.DeleteFunc(f.GenreIDs, func(v int) bool { return v == id })
}

// ToggleGenre flips the selection of a genre.
func (f *Filter) ToggleGenre(id int) {
	if slices.Contains(f.GenreIDs, id) {
		f.RemoveGenre(id)
		return
	}
	f.AddGenre(id)
}

// AddProvider selects a watch provider. Selection order is preserved and duplicates are ignored.
func (f *Filter) AddProvider(id int) {
	if !slices.Contains(f.ProviderIDs, id) {
		f.ProviderIDs = append(f.ProviderIDs, id)
	}
}

// RemoveProvider deselects a watch provider.
func (f *Filter) RemoveProvider(id int) {
	f.ProviderIDs = slices.DeleteFunc(f.ProviderIDs, func(v int) bool { return v == id })
}

// ToggleProvider flips the selection of a watch provider.
func (f *Filter) ToggleProvider(id int) {
	if slices.Contains(f.ProviderIDs, id) {
		f.RemoveProvider(id)
		return
	}
	f.AddProvider(id)
}

// FormattedGenres returns the selected genres comma-joined, e.g. "28,12".
func (f Filter) FormattedGenres() string {
	return joinIDs(f.GenreIDs)
}

// FormattedProviders returns the selected providers comma-joined.
func (f Filter) FormattedProviders() string {
	return joinIDs(f.ProviderIDs)
}

// QueryParam is a single name/value pair in request order.
type QueryParam struct {
	Name  string
	Value string
}

// Encode returns the discovery query parameters for loc. It is a pure function of f and loc.
func (f Filter) Encode(loc locale.Locale) []QueryParam {
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = DefaultSortOrder
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	params := []QueryParam{
		{Name: "include_adult", Value: strconv.FormatBool(f.IncludeAdult)},
		{Name: "include_video", Value: strconv.FormatBool(f.IncludeVideo)},
		{Name: "language", Value: loc.Language.Tag()},
		{Name: "watch_region", Value: loc.Location.RegionCode()},
		{Name: "page", Value: strconv.Itoa(page)},
		{Name: "sort_by", Value: string(sortBy)},
	}
	if genres := f.FormattedGenres(); genres != "" || !f.OmitEmpty {
		params = append(params, QueryParam{Name: "with_genres", Value: genres})
	}
	if providers := f.FormattedProviders(); providers != "" || !f.OmitEmpty {
		params = append(params, QueryParam{Name: "with_watch_providers", Value: providers})
	}
	return params
}

// EncodeQuery renders params as a raw query string in the given order. Commas stay literal.
func EncodeQuery(params []QueryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(queryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(queryEscape(p.Value))
	}
	return b.String()
}

func queryEscape(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "%2C", ",")
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
