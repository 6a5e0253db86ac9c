package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"bitfolio/internal/ledger"
	"bitfolio/internal/repo"
	"bitfolio/pkg/types/prices"
	"bitfolio/pkg/types/scheduler"
	"bitfolio/pkg/utils"

	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration
type Config struct {
	Port                 string
	DBPath               string
	SlotKey              string
	InitialBalance       float64
	PriceSource          string
	PriceRefreshInterval time.Duration
	LogLevel             slog.Level
}

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	utils.LoadEnv()

	cfg := &Config{
		Port:                 utils.GetEnv("APP_PORT", "8080"),
		DBPath:               utils.GetEnv("DB_PATH", "./data/bitfolio.db"),
		SlotKey:              utils.GetEnv("SLOT_KEY", repo.DefaultSlotKey),
		InitialBalance:       utils.GetEnvFloat("INITIAL_BALANCE", ledger.DefaultInitialBalance),
		PriceSource:          utils.GetEnv("PRICE_SOURCE", prices.SourceMock),
		PriceRefreshInterval: utils.GetEnvDuration("PRICE_REFRESH_INTERVAL", scheduler.DefaultPriceRefresh),
		LogLevel:             parseLevel(utils.GetEnv("LOG_LEVEL", "debug")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.DBPath == "":
		return errors.Wrap(ErrInvalidConfig, "DB_PATH is required")
	case c.SlotKey == "":
		return errors.Wrap(ErrInvalidConfig, "SLOT_KEY is required")
	case c.InitialBalance < 0:
		return errors.Wrapf(ErrInvalidConfig, "INITIAL_BALANCE must not be negative, got %v", c.InitialBalance)
	case c.PriceRefreshInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "PRICE_REFRESH_INTERVAL must be positive, got %s", c.PriceRefreshInterval)
	default:
		return nil
	}
}

// Logger builds the process logger at the configured level.
func (c *Config) Logger() *slog.Logger {
	return c.LoggerTo(os.Stdout)
}

func (c *Config) LoggerTo(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: c.LogLevel,
	}))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo
	}
	return level
}
