package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/repscan/repscan/app"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_GeneratesDefaultFile(t *testing.T) {
	t.Setenv("REPSCAN_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, shouldExit, err := app.LoadConfig(path)

	assert.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.FileExists(t, path)

	// generated file carries an empty key, so a second load still asks the
	// user to fill it in
	cfg, shouldExit, err = app.LoadConfig(path)

	assert.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	t.Setenv("REPSCAN_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "api_key: \"abc\"\n")

	cfg, shouldExit, err := app.LoadConfig(path)

	assert.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "abc", cfg.APIKey)
	assert.Equal(t, "https://www.virustotal.com/api/v3", cfg.ReputationBaseURL)
	assert.Equal(t, "http://ip-api.com", cfg.GeolocationBaseURL)
	assert.Equal(t, 15, cfg.AnalysisDelaySeconds)
	assert.InDelta(t, 1.0, cfg.RateLimit, 1e-9)
	assert.NotNil(t, cfg.Headers)
}

func TestLoadConfig_ExplicitValuesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `api_key: "abc"
reputation_base_url: "http://reputation.test"
geolocation_base_url: "http://geo.test"
headers:
  x-tool: "repscan"
analysis_delay_seconds: 3
rate_limit: 4
`)

	cfg, shouldExit, err := app.LoadConfig(path)

	assert.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "http://reputation.test", cfg.ReputationBaseURL)
	assert.Equal(t, "http://geo.test", cfg.GeolocationBaseURL)
	assert.Equal(t, app.HeaderKV{"x-tool": "repscan"}, cfg.Headers)
	assert.Equal(t, 3, cfg.AnalysisDelaySeconds)
	assert.InDelta(t, 4.0, cfg.RateLimit, 1e-9)
}

func TestLoadConfig_EnvOverridesFileKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "api_key: \"from-file\"\n")
	t.Setenv("REPSCAN_API_KEY", "from-env")

	cfg, shouldExit, err := app.LoadConfig(path)

	assert.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadConfig_EnvSuppliesMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "api_key: \"\"\n")
	t.Setenv("REPSCAN_API_KEY", "from-env")

	cfg, shouldExit, err := app.LoadConfig(path)

	assert.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "api_key: [\n")

	cfg, shouldExit, err := app.LoadConfig(path)

	assert.Error(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
}
