package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.Equal(t, "", TMDBToken)
	assert.Equal(t, DefaultBaseURL, TMDBBaseURL)
	assert.Equal(t, 10*time.Second, RequestTimeout)
	assert.Equal(t, 4, RequestsPerSecond)
	assert.Equal(t, "auto", Language)
	assert.Equal(t, "US", Region)
	assert.Equal(t, ":8080", viper.GetString("server.addr"))
}

func TestInitConfigReadsViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("tmdb.token", "secret")
	viper.Set("tmdb.timeout", "3s")
	viper.Set("tmdb.rate", 0)
	viper.Set("locale.language", "pt-BR")
	viper.Set("locale.region", "BR")

	InitConfig()

	assert.Equal(t, "secret", TMDBToken)
	assert.Equal(t, 3*time.Second, RequestTimeout)
	assert.Equal(t, 0, RequestsPerSecond)
	assert.Equal(t, "pt-BR", Language)
	assert.Equal(t, "BR", Region)
}

func TestSetLanguageAndRegion(t *testing.T) {
	origLanguage, origRegion := Language, Region
	t.Cleanup(func() {
		Language, Region = origLanguage, origRegion
	})

	testCases := []struct {
		name     string
		language string
		region   string
		want     [2]string
	}{
		{name: "overrides", language: "pt-BR", region: "BR", want: [2]string{"pt-BR", "BR"}},
		{name: "empty keeps previous", language: "", region: "", want: [2]string{"pt-BR", "BR"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetLanguage(tc.language)
			SetRegion(tc.region)
			assert.Equal(t, tc.want, [2]string{Language, Region})
		})
	}
}
