package tmdb

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lepinkainen/unroll/internal/locale"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := []Option{
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithRateLimiter(nil),
	}
	return NewClient("test-token", append(base, opts...)...)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

var brazil = locale.Locale{Language: locale.Portuguese, Location: locale.Brazil}
