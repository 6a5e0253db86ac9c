package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DB_PATH", "SLOT_KEY", "INITIAL_BALANCE", "PRICE_SOURCE", "PRICE_REFRESH_INTERVAL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/bitfolio.db", cfg.DBPath)
	assert.Equal(t, "portfolio", cfg.SlotKey)
	assert.Equal(t, 10000.0, cfg.InitialBalance)
	assert.Equal(t, "mock", cfg.PriceSource)
	assert.Equal(t, time.Minute, cfg.PriceRefreshInterval)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.NotNil(t, cfg.Logger())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("APP_PORT", "2008")
	t.Setenv("INITIAL_BALANCE", "500")
	t.Setenv("PRICE_SOURCE", "binance")
	t.Setenv("PRICE_REFRESH_INTERVAL", "15s")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2008", cfg.Port)
	assert.Equal(t, 500.0, cfg.InitialBalance)
	assert.Equal(t, "binance", cfg.PriceSource)
	assert.Equal(t, 15*time.Second, cfg.PriceRefreshInterval)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("INITIAL_BALANCE", "-10")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := Config{DBPath: "x.db", SlotKey: "portfolio", PriceRefreshInterval: time.Minute}
	require.NoError(t, valid.Validate())

	noPath := valid
	noPath.DBPath = ""
	assert.ErrorIs(t, noPath.Validate(), ErrInvalidConfig)

	noInterval := valid
	noInterval.PriceRefreshInterval = 0
	assert.ErrorIs(t, noInterval.Validate(), ErrInvalidConfig)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel(" ERROR "))
	assert.Equal(t, slog.LevelInfo, parseLevel("chatty"))
}
