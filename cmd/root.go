package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/unroll/internal/config"
)

var (
	stdout         io.Writer = os.Stdout
	commandContext           = context.Background
)

// Globals are the flags shared by every command.
type Globals struct {
	Language string `help:"Display language: en-US, pt-BR or auto (device locale)" env:"UNROLL_LANGUAGE"`
	Region   string `help:"Watch-provider region: US or BR" env:"UNROLL_REGION"`
	Format   string `help:"Output format" enum:"text,json,yaml" default:"text"`
	Output   string `short:"o" help:"Write output to this file instead of stdout"`
	Verbose  bool   `short:"v" help:"Enable debug logging, including one line per catalog request"`
}

// CLI represents the complete command structure for the unroll application
type CLI struct {
	Globals

	Genres    GenresCmd    `cmd:"" help:"List movie genres"`
	Providers ProvidersCmd `cmd:"" help:"List watch providers for the region"`
	Discover  DiscoverCmd  `cmd:"" help:"Discover movies by genre and provider"`
	Details   DetailsCmd   `cmd:"" help:"Show a movie card with availability"`
	Where     WhereCmd     `cmd:"" help:"Show where a movie streams in the region"`
	Browse    BrowseCmd    `cmd:"" help:"Browse discovery results interactively"`
	Serve     ServeCmd     `cmd:"" help:"Serve the catalog as a JSON API"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("unroll"),
		kong.Description("Browse and filter movies from TheMovieDB by genre, provider and region."),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	initLogging(cli.Verbose)
	if err := initConfig(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	updateGlobalConfig(&cli.Globals)

	if err := ctx.Run(&cli.Globals); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// initConfig reads config.yaml and the environment. Defaults are registered by
// config.InitConfig.
func initConfig() error {
	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("tmdb.token", "TMDB_API_TOKEN"); err != nil {
		return fmt.Errorf("failed to bind environment variable: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		slog.Debug("Config file not found, using defaults and environment")
	}

	config.InitConfig()
	return nil
}

func updateGlobalConfig(g *Globals) {
	config.SetLanguage(g.Language)
	config.SetRegion(g.Region)
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
