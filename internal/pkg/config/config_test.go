package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/touristapi/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("touristapi-test")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "en", cfg.Lookup.DefaultLang)
	assert.Equal(t, 8000, cfg.Lookup.DefaultRadius)
	assert.Equal(t, 8, cfg.Lookup.DefaultLimit)
	assert.Equal(t, 15, cfg.Wikipedia.JSONTimeout)
	assert.Equal(t, 20, cfg.Wikipedia.TextTimeout)
	assert.Equal(t, "touristapi-test", cfg.Telemetry.ServiceName)
	assert.False(t, cfg.Gemini.Enabled())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TOURIST_GEMINI_API_KEY", "secret")
	t.Setenv("TOURIST_LOOKUP_DEFAULT_LANG", "de")

	cfg, err := config.Load("touristapi-test")
	require.NoError(t, err)

	assert.True(t, cfg.Gemini.Enabled())
	assert.Equal(t, "de", cfg.Lookup.DefaultLang)
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg, err := config.Load("touristapi-test")
	require.NoError(t, err)

	cfg.Server.Port = 0
	cfg.Lookup.DefaultRadius = 50
	cfg.Lookup.DefaultLimit = 21
	cfg.Wikipedia.RESTURL = "https://en.wikipedia.org/api/rest_v1"

	err = cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"server.port", "lookup.default_radius", "lookup.default_limit", "wikipedia.rest_url"} {
		assert.True(t, strings.Contains(msg, want), "expected %q in %q", want, msg)
	}
}
