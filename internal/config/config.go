// Package config holds the process-wide settings read from viper.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// TMDBToken is the TMDB API read access token sent as a bearer credential
	TMDBToken string
	// TMDBBaseURL overrides the catalog endpoint (tests, proxies)
	TMDBBaseURL string
	// RequestTimeout is the per-request timeout for catalog calls
	RequestTimeout time.Duration
	// RequestsPerSecond paces catalog calls; zero or less disables pacing
	RequestsPerSecond int
	// Language is "auto" (device locale) or a locale tag such as "pt-BR"
	Language string
	// Region is the watch-provider region code or name
	Region string
)

// Defaults applied by InitConfig.
const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultTimeout  = 10 * time.Second
	DefaultRate     = 4
	DefaultLanguage = "auto"
	DefaultRegion   = "US"
)

// SetDefaults registers the viper defaults for every key this package reads.
func SetDefaults() {
	viper.SetDefault("tmdb.baseurl", DefaultBaseURL)
	viper.SetDefault("tmdb.timeout", DefaultTimeout.String())
	viper.SetDefault("tmdb.rate", DefaultRate)
	viper.SetDefault("locale.language", DefaultLanguage)
	viper.SetDefault("locale.region", DefaultRegion)
	viper.SetDefault("datastore.enabled", false)
	viper.SetDefault("datastore.mode", "local")
	viper.SetDefault("datastore.dbfile", "./unroll.db")
	viper.SetDefault("datastore.database", "unroll")
	viper.SetDefault("server.addr", ":8080")
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	TMDBToken = viper.GetString("tmdb.token")
	TMDBBaseURL = viper.GetString("tmdb.baseurl")
	RequestTimeout = viper.GetDuration("tmdb.timeout")
	if RequestTimeout <= 0 {
		RequestTimeout = DefaultTimeout
	}
	RequestsPerSecond = viper.GetInt("tmdb.rate")
	Language = viper.GetString("locale.language")
	Region = viper.GetString("locale.region")
}

// SetLanguage overrides the configured language when value is not empty
func SetLanguage(value string) {
	if value != "" {
		Language = value
	}
}

// SetRegion overrides the configured region when value is not empty
func SetRegion(value string) {
	if value != "" {
		Region = value
	}
}
