package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_PATH", "/data/dashboard.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/data/dashboard.json", cfg.DataPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "30s", cfg.ReloadInterval.String())
	assert.Equal(t, 1000, cfg.MaxWebSocketConnections)
}

func TestLoad_MissingDataPath(t *testing.T) {
	t.Setenv("DATA_PATH", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_PATH")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_PATH", "/data/dashboard.json")
	t.Setenv("PORT", "9000")
	t.Setenv("RELOAD_INTERVAL", "5m")
	t.Setenv("MAX_WEBSOCKET_CONNECTIONS", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "5m0s", cfg.ReloadInterval.String())
	assert.Equal(t, 50, cfg.MaxWebSocketConnections)
}

func TestLoad_RejectsNonPositiveConnectionLimit(t *testing.T) {
	t.Setenv("DATA_PATH", "/data/dashboard.json")
	t.Setenv("MAX_WEBSOCKET_CONNECTIONS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_WEBSOCKET_CONNECTIONS")
}
