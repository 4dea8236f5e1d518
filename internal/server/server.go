// Package server exposes the catalog client as a small JSON API so a front-end can browse
// without holding the TMDB credential.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lepinkainen/unroll/internal/locale"
	"github.com/lepinkainen/unroll/internal/tmdb"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Catalog is the subset of *tmdb.Client the handlers use.
type Catalog interface {
	Locale() locale.Locale
	ImageURL(path string) string
	FetchGenres(ctx context.Context) ([]tmdb.Genre, error)
	FetchWatchProviders(ctx context.Context) ([]tmdb.WatchProvider, error)
	FetchWatchProvidersFor(ctx context.Context, movieID int) (*tmdb.WatchProvidersResponse, error)
	DiscoverMovies(ctx context.Context, filter tmdb.Filter) (*tmdb.MoviePage, error)
	FetchMovieDetails(ctx context.Context, movie tmdb.Movie) (*tmdb.Movie, error)
}

// Server wires routing, middleware and handlers.
type Server struct {
	addr    string
	catalog Catalog
	logger  *slog.Logger
	router  chi.Router
	httpSrv *http.Server
}

// New constructs the server with base middleware and routes.
func New(addr string, catalog Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:    addr,
		catalog: catalog,
		logger:  logger,
		router:  r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/genres", s.handleGenres)
	s.router.Get("/providers", s.handleProviders)
	s.router.Get("/discover", s.handleDiscover)
	s.router.Get("/movies/{id}", s.handleMovie)
	s.router.Get("/movies/{id}/providers", s.handleMovieProviders)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving catalog API", "addr", s.addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("HTTP request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
