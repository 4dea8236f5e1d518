package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// CatalogServer is a fake TMDB endpoint serving canned JSON bodies by path.
type CatalogServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewCatalogServer starts a fake catalog. routes maps a URL path ("/genre/movie/list") to the
// JSON body returned with status 200; unknown paths answer 404.
func NewCatalogServer(t *testing.T, routes map[string]string) *CatalogServer {
	t.Helper()

	cs := &CatalogServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.requests = append(cs.requests, r.Clone(r.Context()))
		cs.mu.Unlock()

		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(cs.Close)
	return cs
}

// Requests returns the requests received so far.
func (cs *CatalogServer) Requests() []*http.Request {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]*http.Request(nil), cs.requests...)
}

// RawQueries returns the raw query of every request made to path, in order.
func (cs *CatalogServer) RawQueries(path string) []string {
	var queries []string
	for _, r := range cs.Requests() {
		if r.URL.Path == path {
			queries = append(queries, r.URL.RawQuery)
		}
	}
	return queries
}
