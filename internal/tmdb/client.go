// Package tmdb provides a client for TheMovieDB API.
package tmdb

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lepinkainen/unroll/internal/locale"
	"github.com/lepinkainen/unroll/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://api.themoviedb.org/3"
	defaultImageBaseURL  = "https://image.tmdb.org/t/p/original"
	defaultTimeout       = 10 * time.Second
	defaultRatePerSecond = 4 // TMDB allows ~40 requests per 10 seconds
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TMDB API client.
//
// Every operation issues exactly one GET request. Responses are never cached and failed
// requests are never retried.
type Client struct {
	authorization string
	baseURL       string
	imageBaseURL  string
	timeout       time.Duration
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter

	mu     sync.RWMutex
	active locale.Locale
}

// NewClient creates a new TMDB API client. token is the API read access token; a value that
// already starts with "Bearer " is sent as is.
func NewClient(token string, opts ...Option) *Client {
	client := &Client{
		authorization: authorizationHeader(token),
		baseURL:       defaultBaseURL,
		imageBaseURL:  defaultImageBaseURL,
		timeout:       defaultTimeout,
		rateLimiter:   ratelimit.New("TMDB", defaultRatePerSecond),
		active:        locale.Default(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
	}

	return client
}

func authorizationHeader(token string) string {
	token = strings.TrimSpace(token)
	if token == "" || strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. The client's own timeout applies instead of WithTimeout.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.timeout = timeout
		}
	}
}

// WithRateLimiter replaces the request limiter. A nil limiter disables pacing.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithLocale sets the initial active locale.
func WithLocale(loc locale.Locale) Option {
	return func(client *Client) {
		client.active = loc
	}
}

// Locale returns the active locale.
func (c *Client) Locale() locale.Locale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// SetLocale replaces the active locale.
func (c *Client) SetLocale(loc locale.Locale) {
	c.mu.Lock()
	c.active = loc
	c.mu.Unlock()
}

// WatchRegion returns the active watch-provider region.
func (c *Client) WatchRegion() locale.Location {
	return c.Locale().Location
}

// SetWatchRegion changes the active watch-provider region.
func (c *Client) SetWatchRegion(loc locale.Location) {
	c.mu.Lock()
	c.active.Location = loc
	c.mu.Unlock()
}

// Language returns the active display language.
func (c *Client) Language() locale.Language {
	return c.Locale().Language
}

// SetLanguage changes the active display language.
func (c *Client) SetLanguage(lang locale.Language) {
	c.mu.Lock()
	c.active.Language = lang
	c.mu.Unlock()
}

// localeFor returns the locale attached to ctx, falling back to the active one.
func (c *Client) localeFor(ctx context.Context) locale.Locale {
	if loc, ok := locale.FromContext(ctx); ok {
		return loc
	}
	return c.Locale()
}

// ImageURL constructs the full image URL from a poster or backdrop path.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBaseURL + path
}
