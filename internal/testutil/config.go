package testutil

import (
	"testing"
	"time"

	"github.com/lepinkainen/unroll/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	TMDBToken         string
	TMDBBaseURL       string
	RequestTimeout    time.Duration
	RequestsPerSecond int
	Language          string
	Region            string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		TMDBToken:         config.TMDBToken,
		TMDBBaseURL:       config.TMDBBaseURL,
		RequestTimeout:    config.RequestTimeout,
		RequestsPerSecond: config.RequestsPerSecond,
		Language:          config.Language,
		Region:            config.Region,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.TMDBToken = state.TMDBToken
	config.TMDBBaseURL = state.TMDBBaseURL
	config.RequestTimeout = state.RequestTimeout
	config.RequestsPerSecond = state.RequestsPerSecond
	config.Language = state.Language
	config.Region = state.Region
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfigOption configures SetTestConfig.
type SetTestConfigOption func(*ConfigState)

// WithToken sets the TMDB token.
func WithToken(token string) SetTestConfigOption {
	return func(s *ConfigState) { s.TMDBToken = token }
}

// WithBaseURL points the catalog client at a test server.
func WithBaseURL(url string) SetTestConfigOption {
	return func(s *ConfigState) { s.TMDBBaseURL = url }
}

// WithLocale sets the configured language and region.
func WithLocale(language, region string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.Language = language
		s.Region = region
	}
}

// SetTestConfig resets config to test defaults, applies opts and restores
// everything when the test completes. Request pacing is disabled.
func SetTestConfig(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	ResetConfig(t)

	state := ConfigState{
		TMDBToken:      "test-token",
		TMDBBaseURL:    config.DefaultBaseURL,
		RequestTimeout: config.DefaultTimeout,
		Language:       "en-US",
		Region:         config.DefaultRegion,
	}
	for _, opt := range opts {
		opt(&state)
	}
	RestoreConfigState(state)
}

// SetViperValue sets a viper key for the duration of the test.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	previous := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() {
		viper.Set(key, previous)
	})
}

// SetupDatastoreDB enables SQLite export into a file inside env and returns its path.
func SetupDatastoreDB(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("unroll.db")
	SetViperValue(t, "datastore.enabled", true)
	SetViperValue(t, "datastore.dbfile", dbPath)
	return dbPath
}
