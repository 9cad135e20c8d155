package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Settings are process-level options read from WARDEN_* environment
// variables. Keys carry the full WARDEN_ name so unrelated variables such as
// LOG_FILE are never picked up; only Home falls back to HOME.
type Settings struct {
	Home         string        `envconfig:"WARDEN_HOME"`
	GlobalConfig string        `envconfig:"WARDEN_GLOBAL_CONFIG"`
	StateDB      string        `envconfig:"WARDEN_STATE_DB"`
	LogLevel     string        `envconfig:"WARDEN_LOG_LEVEL" default:"warn"`
	LogFile      string        `envconfig:"WARDEN_LOG_FILE"`
	PendingTTL   time.Duration `envconfig:"WARDEN_PENDING_TTL" default:"10m"`
	MaxPending   int           `envconfig:"WARDEN_MAX_PENDING" default:"1024"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:   "warn",
		PendingTTL: 10 * time.Minute,
		MaxPending: 1024,
	}
}

// LoadSettings processes the environment and fills derived defaults. It
// always returns usable settings: when a variable cannot be parsed the
// defaults are returned together with the error. An unresolvable home
// directory leaves Home empty, so ~ expands to "".
func LoadSettings() (*Settings, error) {
	s := DefaultSettings()
	err := envconfig.Process("", &s)
	if err != nil {
		s = DefaultSettings()
		s.Home = os.Getenv("WARDEN_HOME")
		s.GlobalConfig = os.Getenv("WARDEN_GLOBAL_CONFIG")
		s.StateDB = os.Getenv("WARDEN_STATE_DB")
		s.LogFile = os.Getenv("WARDEN_LOG_FILE")
		err = fmt.Errorf("failed to process env vars, using defaults: %w", err)
	}

	if s.Home == "" {
		s.Home = os.Getenv("HOME")
	}
	if s.Home == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			s.Home = home
		}
	}
	if s.GlobalConfig == "" {
		s.GlobalConfig = GlobalConfigPath(s.Home)
	}
	if s.StateDB == "" {
		s.StateDB = filepath.Join(ConfigDir(s.Home), "state.db")
	}
	return &s, err
}

// Level returns the slog level for LogLevel, warn when unrecognized.
func (s *Settings) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return level
}
