package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var providerKeys = []string{"SHIPPO_API_KEY", "EASYPOST_API_KEY", "SHIPENGINE_API_KEY", "EASYSHIP_API_KEY"}

func clearProviderKeys() {
	for _, k := range providerKeys {
		os.Unsetenv(k)
	}
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("PROVIDER_TIMEOUT")
	clearProviderKeys()

	os.Setenv("SHIPPO_API_KEY", "shippo_test_key")
	defer clearProviderKeys()

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 8*time.Second, cfg.Providers.Timeout())
	assert.Equal(t, float64(5), cfg.Providers.RateLimit)
	assert.Equal(t, "https://api.goshippo.com", cfg.Providers.ShippoURL)
	assert.Equal(t, "91761", cfg.Sender.Zip)
	assert.Equal(t, "PDF", cfg.Labels.DefaultFormat)
	assert.Equal(t, 1000, cfg.Labels.HistoryLimit)
	assert.Equal(t, 300, cfg.Redis.RateCacheTTLSeconds)
	assert.False(t, cfg.Proxy.Enabled)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("EASYPOST_API_KEY", "ep_123")
	os.Setenv("PROVIDER_TIMEOUT", "3")
	os.Setenv("PROXY_ENABLED", "true")
	os.Setenv("PROXY_HOST", "proxy.local")
	os.Setenv("PROXY_PORT", "3128")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("PROVIDER_TIMEOUT")
		os.Unsetenv("PROXY_ENABLED")
		os.Unsetenv("PROXY_HOST")
		os.Unsetenv("PROXY_PORT")
		clearProviderKeys()
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "ep_123", cfg.Providers.EasyPostAPIKey)
	assert.Empty(t, cfg.Providers.ShippoAPIKey)
	assert.Equal(t, 3*time.Second, cfg.Providers.Timeout())
	assert.True(t, cfg.Proxy.Enabled)
	assert.Equal(t, "proxy.local", cfg.Proxy.Host)
	assert.Equal(t, 3128, cfg.Proxy.Port)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	clearProviderKeys()
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
SHIPENGINE_API_KEY=se_staging
HISTORY_FILE=/tmp/labels.json
SENDER_CITY=Fontana
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "se_staging", cfg.Providers.ShipEngineAPIKey)
	assert.Equal(t, "/tmp/labels.json", cfg.Labels.HistoryFile)
	assert.Equal(t, "Fontana", cfg.Sender.City)
}

// TestLoad_NoProviders verifies that a config without any provider key is rejected.
func TestLoad_NoProviders(t *testing.T) {
	clearProviderKeys()

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrNoProviders)
	assert.Contains(t, err.Error(), "missing required configuration")
}

// TestValidateRequired verifies that empty required fields are reported by key.
func TestValidateRequired(t *testing.T) {
	cfg := &AppConfig{
		Sender: SenderConfig{Street: "1 Main St", City: "Ontario", State: "CA"},
		Labels: LabelsConfig{HistoryFile: "labels.json"},
	}

	err := validateRequired(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SENDER_ZIP")

	cfg.Sender.Zip = "91761"
	assert.NoError(t, validateRequired(cfg))
}
