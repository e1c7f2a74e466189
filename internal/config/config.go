// Package config loads zaudit settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/zarlcorp/zaudit/internal/breach"
	"github.com/zarlcorp/zaudit/internal/hasher"
)

// environment variables
const (
	EnvBreachURL     = "ZAUDIT_BREACH_URL"
	EnvBreachTimeout = "ZAUDIT_BREACH_TIMEOUT"
	EnvBreachPadding = "ZAUDIT_BREACH_PADDING"
	EnvHashCost      = "ZAUDIT_HASH_COST"
	EnvLogLevel      = "ZAUDIT_LOG_LEVEL"
)

// DefaultRecentEvents is how many log lines the log view shows.
const DefaultRecentEvents = 10

// Config holds every runtime setting.
type Config struct {
	DataDir       string
	BreachURL     string
	BreachTimeout time.Duration
	BreachPadding bool
	HashCost      int
	LogLevel      slog.Level
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataDir:       DataDir(),
		BreachURL:     breach.DefaultBaseURL,
		BreachTimeout: breach.DefaultTimeout,
		HashCost:      hasher.DefaultCost,
		LogLevel:      slog.LevelWarn,
	}
}

// Load reads an optional .env file from the working directory, then the
// environment. Unparsable values keep their defaults and are reported as
// warnings.
func Load() Config {
	// a missing .env is normal
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a config from a lookup function.
func FromEnv(getenv func(string) string) Config {
	cfg := Default()
	cfg.DataDir = dataDir(getenv)

	if v := getenv(EnvBreachURL); v != "" {
		cfg.BreachURL = strings.TrimRight(v, "/")
	}

	if v := getenv(EnvBreachTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("invalid breach timeout, using default", "value", v, "default", cfg.BreachTimeout)
		} else {
			cfg.BreachTimeout = d
		}
	}

	if v := getenv(EnvBreachPadding); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid breach padding flag, using default", "value", v)
		} else {
			cfg.BreachPadding = b
		}
	}

	if v := getenv(EnvHashCost); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid hash cost, using default", "value", v, "default", cfg.HashCost)
		} else {
			cfg.HashCost = n
		}
	}

	if v := getenv(EnvLogLevel); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("invalid log level, using default", "value", v)
		} else {
			cfg.LogLevel = lvl
		}
	}

	return cfg
}

// DataDir returns the default data directory for zaudit.
func DataDir() string {
	return dataDir(os.Getenv)
}

func dataDir(getenv func(string) string) string {
	if d := getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zaudit"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zaudit"
	}
	return home + "/.local/share/zaudit"
}
