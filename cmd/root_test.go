package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/lepinkainen/unroll/internal/config"
	"github.com/lepinkainen/unroll/internal/server"
	"github.com/lepinkainen/unroll/internal/testutil"
	"github.com/lepinkainen/unroll/internal/tmdb"
	"github.com/lepinkainen/unroll/internal/tui"
)

const (
	genresBody    = `{"genres":[{"id":28,"name":"Action"},{"id":12,"name":"Adventure"}]}`
	providersBody = `{"results":[{"provider_id":8,"provider_name":"Netflix"},{"provider_id":337,"provider_name":"Disney Plus"}]}`
	discoverBody  = `{"page":1,"total_pages":3,"total_results":55,"results":[{"id":550,"title":"Fight Club","release_date":"1999-10-15","genre_ids":[28]},{"id":13,"title":"Forrest Gump","genre_ids":[12,28]}]}`
	detailsBody   = `{"id":550,"title":"Fight Club","release_date":"1999-10-15","poster_path":"/fc.jpg","runtime":139,"genres":[{"id":18,"name":"Drama"}],"tagline":"Mischief. Mayhem. Soap."}`
	whereBody     = `{"id":550,"results":{"US":{"flatrate":[{"provider_name":"Netflix"},{"provider_name":"Hulu"}]},"BR":{"flatrate":[{"provider_name":"Star Plus"}]}}}`
)

func defaultRoutes() map[string]string {
	return map[string]string{
		"/genre/movie/list":          genresBody,
		"/watch/providers/movie":     providersBody,
		"/discover/movie":            discoverBody,
		"/movie/550":                 detailsBody,
		"/movie/550/watch/providers": whereBody,
	}
}

// setupCommand points the client at a fake catalog and captures stdout.
func setupCommand(t *testing.T, routes map[string]string) (*testutil.CatalogServer, *bytes.Buffer) {
	t.Helper()

	catalog := testutil.NewCatalogServer(t, routes)
	testutil.SetTestConfig(t, testutil.WithBaseURL(catalog.URL))

	var out bytes.Buffer
	origStdout := stdout
	stdout = &out
	t.Cleanup(func() { stdout = origStdout })

	return catalog, &out
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	cli := &CLI{}
	parser, err := newParser(cli, kong.Exit(func(code int) {
		t.Fatalf("unexpected Kong exit %d", code)
	}))
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()

	cli, ctx := parseCLI(t, args...)
	updateGlobalConfig(&cli.Globals)
	return ctx.Run(&cli.Globals)
}

func TestUpdateGlobalConfig(t *testing.T) {
	testutil.SetTestConfig(t, testutil.WithLocale("en-US", "US"))

	updateGlobalConfig(&Globals{Language: "pt-BR", Region: "BR"})
	assert.Equal(t, "pt-BR", config.Language)
	assert.Equal(t, "BR", config.Region)

	updateGlobalConfig(&Globals{})
	assert.Equal(t, "pt-BR", config.Language)
	assert.Equal(t, "BR", config.Region)
}

func TestDiscoverCommandParsing(t *testing.T) {
	cli, _ := parseCLI(t, "--format", "yaml", "discover", "-g", "28,12", "-p", "8", "--sort", "vote_average-desc", "--page", "2", "--save")

	assert.Equal(t, "yaml", cli.Format)
	assert.Equal(t, []int{28, 12}, cli.Discover.Genre)
	assert.Equal(t, []int{8}, cli.Discover.Provider)
	assert.True(t, cli.Discover.Save)

	filter, err := cli.Discover.filter()
	require.NoError(t, err)
	assert.Equal(t, tmdb.SortVoteAverageDesc, filter.SortBy)
	assert.Equal(t, 2, filter.Page)
}

func TestFilterFlagsRejectInvalid(t *testing.T) {
	_, err := FilterFlags{Sort: "loudness.desc", Page: 1}.filter()
	assert.Error(t, err)

	_, err = FilterFlags{Sort: "popularity.desc", Page: 0}.filter()
	assert.Error(t, err)
}

func TestGenresCommand(t *testing.T) {
	catalog, out := setupCommand(t, defaultRoutes())

	require.NoError(t, runCLI(t, "--language", "pt-BR", "genres"))

	assert.Equal(t, "    28  Action\n    12  Adventure\n", out.String())
	assert.Equal(t, []string{"language=pt-BR"}, catalog.RawQueries("/genre/movie/list"))
}

func TestProvidersCommandJSON(t *testing.T) {
	catalog, out := setupCommand(t, defaultRoutes())

	require.NoError(t, runCLI(t, "--region", "brazil", "--format", "json", "providers"))

	var providers []tmdb.WatchProvider
	require.NoError(t, json.Unmarshal(out.Bytes(), &providers))
	assert.Equal(t, 2, len(providers))
	assert.Equal(t, "Disney Plus", providers[1].Name())
	assert.Equal(t, []string{"language=en-US&watch_region=BR"}, catalog.RawQueries("/watch/providers/movie"))
}

func TestDiscoverCommand(t *testing.T) {
	catalog, out := setupCommand(t, defaultRoutes())

	require.NoError(t, runCLI(t, "--language", "pt-BR", "--region", "BR", "discover", "-g", "28,12", "-p", "8"))

	assert.Equal(t,
		[]string{"include_adult=false&include_video=false&language=pt-BR&watch_region=BR&page=1&sort_by=popularity.desc&with_genres=28,12&with_watch_providers=8"},
		catalog.RawQueries("/discover/movie"))

	text := out.String()
	assert.Contains(t, text, "Page 1 of 3 (55 results) for pt-BR/BR")
	assert.Contains(t, text, "550  Fight Club (1999)  [Action]")
	assert.Contains(t, text, "13  Forrest Gump  [Adventure, Action]")
}

func TestDiscoverCommandOmitEmpty(t *testing.T) {
	catalog, _ := setupCommand(t, defaultRoutes())

	require.NoError(t, runCLI(t, "discover", "--omit-empty"))

	assert.Equal(t,
		[]string{"include_adult=false&include_video=false&language=en-US&watch_region=US&page=1&sort_by=popularity.desc"},
		catalog.RawQueries("/discover/movie"))
}

func TestDiscoverCommandWithoutGenresStillRenders(t *testing.T) {
	routes := defaultRoutes()
	delete(routes, "/genre/movie/list")
	_, out := setupCommand(t, routes)

	require.NoError(t, runCLI(t, "discover"))
	assert.Contains(t, out.String(), "550  Fight Club (1999)\n")
}

func TestDiscoverCommandSave(t *testing.T) {
	_, _ = setupCommand(t, defaultRoutes())
	env := testutil.NewTestEnv(t)
	dbPath := env.Path("unroll.db")
	testutil.SetViperValue(t, "datastore.dbfile", dbPath)
	testutil.SetViperValue(t, "datastore.enabled", false)

	require.NoError(t, runCLI(t, "--region", "BR", "discover", "--save"))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&count))
	assert.Equal(t, 2, count)

	var genres, region string
	require.NoError(t, db.QueryRow("SELECT genre_ids, region FROM movies WHERE id = 13").Scan(&genres, &region))
	assert.Equal(t, "12,28", genres)
	assert.Equal(t, "BR", region)
}

func TestDetailsCommand(t *testing.T) {
	_, out := setupCommand(t, defaultRoutes())

	require.NoError(t, runCLI(t, "details", "550"))

	text := out.String()
	assert.Contains(t, text, "Fight Club (1999)")
	assert.Contains(t, text, "Drama")
	assert.Contains(t, text, "https://image.tmdb.org/t/p/original/fc.jpg")
	assert.Contains(t, text, "Available on: Netflix - Hulu")
}

func TestDetailsCommandJSON(t *testing.T) {
	_, out := setupCommand(t, defaultRoutes())

	require.NoError(t, runCLI(t, "--format", "json", "--region", "BR", "details", "550"))

	var view struct {
		ID          int    `json:"id"`
		Runtime     int    `json:"runtime"`
		PosterURL   string `json:"poster_url"`
		AvailableOn string `json:"available_on"`
		Region      string `json:"region"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, 550, view.ID)
	assert.Equal(t, 139, view.Runtime)
	assert.Equal(t, "https://image.tmdb.org/t/p/original/fc.jpg", view.PosterURL)
	assert.Equal(t, "Star Plus", view.AvailableOn)
	assert.Equal(t, "BR", view.Region)
}

func TestDetailsCommandYAML(t *testing.T) {
	_, out := setupCommand(t, defaultRoutes())

	require.NoError(t, runCLI(t, "--format", "yaml", "details", "550"))

	text := out.String()
	assert.Contains(t, text, "id: 550\n")
	assert.Contains(t, text, "title: Fight Club\n")
	assert.Contains(t, text, "available_on: Netflix - Hulu\n")
}

func TestDetailsCommandShowsForeignTitle(t *testing.T) {
	routes := defaultRoutes()
	routes["/movie/550"] = `{"id":550,"title":"Clube da Luta","original_title":"Fight Club","original_language":"en"}`
	_, out := setupCommand(t, routes)

	require.NoError(t, runCLI(t, "--language", "pt-BR", "details", "550"))
	assert.Contains(t, out.String(), "Original title: Fight Club")

	out.Reset()
	require.NoError(t, runCLI(t, "--format", "json", "--language", "pt-BR", "details", "550"))
	assert.Contains(t, out.String(), `"foreign_title": "Fight Club"`)

	out.Reset()
	require.NoError(t, runCLI(t, "--language", "en-US", "details", "550"))
	assert.NotContains(t, out.String(), "Original title")
}

func TestDetailsCommandNotFound(t *testing.T) {
	_, _ = setupCommand(t, defaultRoutes())

	err := runCLI(t, "details", "404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestWhereCommand(t *testing.T) {
	_, out := setupCommand(t, defaultRoutes())

	require.NoError(t, runCLI(t, "where", "550"))
	assert.Equal(t, "Netflix - Hulu\n", out.String())

	out.Reset()
	require.NoError(t, runCLI(t, "where", "550", "--all"))
	assert.Equal(t, "BR: Star Plus\nUS: Netflix - Hulu\n", out.String())
}

func TestWhereCommandMissingRegionIsEmpty(t *testing.T) {
	routes := defaultRoutes()
	routes["/movie/550/watch/providers"] = `{"id":550,"results":{"DE":{"flatrate":[{"provider_name":"WOW"}]}}}`
	_, out := setupCommand(t, routes)

	require.NoError(t, runCLI(t, "where", "550"))
	assert.Equal(t, "\n", out.String())
}

func TestOutputFlagWritesFile(t *testing.T) {
	_, out := setupCommand(t, defaultRoutes())
	env := testutil.NewTestEnv(t)

	require.NoError(t, runCLI(t, "--format", "json", "-o", env.Path("out", "genres.json"), "genres"))

	assert.Equal(t, "", out.String())
	assert.Contains(t, env.ReadFileString("out/genres.json"), `"name": "Adventure"`)
}

func TestCommandsRequireToken(t *testing.T) {
	_, _ = setupCommand(t, defaultRoutes())
	config.TMDBToken = ""

	err := runCLI(t, "genres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TMDB API token is required")
}

func TestUnsupportedRegion(t *testing.T) {
	_, _ = setupCommand(t, defaultRoutes())

	err := runCLI(t, "--region", "JP", "genres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported region")
}

func TestBrowseCommand(t *testing.T) {
	catalog, out := setupCommand(t, defaultRoutes())

	var headings []string
	calls := 0
	origBrowse := browse
	browse = func(heading string, page *tmdb.MoviePage, cards []tui.Card) (tui.BrowseResult, error) {
		calls++
		assert.Equal(t, 3, *page.TotalPages)
		headings = append(headings, heading)
		switch calls {
		case 1:
			assert.Equal(t, "Action", cards[0].Genres)
			assert.Equal(t, "Adventure, Action", cards[1].Genres)
			return tui.BrowseResult{Action: tui.ActionNextPage}, nil
		case 2:
			movie := tmdb.MovieWithID(550)
			return tui.BrowseResult{Action: tui.ActionSelected, Selection: &movie}, nil
		default:
			return tui.BrowseResult{Action: tui.ActionQuit}, nil
		}
	}
	t.Cleanup(func() { browse = origBrowse })

	require.NoError(t, runCLI(t, "browse"))

	assert.Equal(t, 3, calls)
	assert.Equal(t, "Discover (en-US/US)", headings[0])
	assert.Contains(t, out.String(), "Available on: Netflix - Hulu")

	queries := catalog.RawQueries("/discover/movie")
	assert.Equal(t, 3, len(queries))
	assert.Contains(t, queries[1], "page=2")
	assert.Equal(t, 1, len(catalog.RawQueries("/genre/movie/list")))
}

func TestServeCommand(t *testing.T) {
	_, _ = setupCommand(t, defaultRoutes())

	called := false
	origStart := startServer
	startServer = func(ctx context.Context, srv *server.Server) error {
		called = true
		assert.NotZero(t, srv)
		return context.Canceled
	}
	t.Cleanup(func() { startServer = origStart })

	require.NoError(t, runCLI(t, "serve", "--addr", "127.0.0.1:0"))
	assert.True(t, called)
}

func TestInitConfigWithoutFile(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)
	env.Chdir(".")
	t.Setenv("TMDB_API_TOKEN", "from-env")

	require.NoError(t, initConfig())

	assert.Equal(t, "from-env", config.TMDBToken)
	assert.Equal(t, "auto", config.Language)
	assert.Equal(t, 4, config.RequestsPerSecond)
	assert.Equal(t, config.DefaultBaseURL, config.TMDBBaseURL)
	assert.Equal(t, ":8080", viper.GetString("server.addr"))
}

func TestInitConfigReadsFile(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)
	env.WriteFileString("config.yaml", "tmdb:\n  token: from-file\n  rate: 0\nlocale:\n  language: pt-BR\n  region: BR\n")
	env.Chdir(".")

	require.NoError(t, initConfig())

	assert.Equal(t, "from-file", config.TMDBToken)
	assert.Equal(t, "pt-BR", config.Language)
	assert.Equal(t, "BR", config.Region)
	assert.Equal(t, 0, config.RequestsPerSecond)
	assert.Equal(t, "./unroll.db", viper.GetString("datastore.dbfile"))
}
