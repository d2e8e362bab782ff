package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds process-wide settings for the CLI and the HTTP server.
type Config struct {
	DBPath   string         `toml:"db_path"`
	HTTP     HTTPConfig     `toml:"http"`
	Log      LogConfig      `toml:"log"`
	Schedule ScheduleConfig `toml:"schedule"`
}

type HTTPConfig struct {
	Addr              string `toml:"addr"`
	ReadTimeoutMs     int    `toml:"read_timeout_ms"`
	WriteTimeoutMs    int    `toml:"write_timeout_ms"`
	ShutdownTimeoutMs int    `toml:"shutdown_timeout_ms"`
}

type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // auto, console, json
}

type ScheduleConfig struct {
	// WorkdayHours is the nominal day a resource's booked hours are
	// measured against when computing load.
	WorkdayHours float64 `toml:"workday_hours"`
}

// DefaultConfig returns a Config with sensible defaults. The database lives
// under ~/.prodsched unless overridden.
func DefaultConfig() Config {
	dbPath := "prodsched.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".prodsched", "prodsched.db")
	}
	return Config{
		DBPath: dbPath,
		HTTP: HTTPConfig{
			Addr:              "127.0.0.1:8080",
			ReadTimeoutMs:     10000,
			WriteTimeoutMs:    10000,
			ShutdownTimeoutMs: 5000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Schedule: ScheduleConfig{
			WorkdayHours: 8,
		},
	}
}

// LoadConfig layers defaults, then the TOML file at path (or at
// $PRODSCHED_CONFIG when path is empty), then PRODSCHED_* environment
// variables. A missing file is only an error when it was named explicitly.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("PRODSCHED_CONFIG")
		explicit = path != ""
	}
	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			if !explicit && errors.Is(err, os.ErrNotExist) {
				return cfg, nil
			}
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if c.Schedule.WorkdayHours <= 0 || c.Schedule.WorkdayHours > 24 {
		return fmt.Errorf("config: workday_hours %.2f outside (0, 24]", c.Schedule.WorkdayHours)
	}
	switch strings.ToLower(c.Log.Format) {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	// Decoding onto the defaults leaves unset keys untouched.
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PRODSCHED_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PRODSCHED_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("PRODSCHED_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PRODSCHED_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("PRODSCHED_WORKDAY_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 24 {
			cfg.Schedule.WorkdayHours = f
		}
	}
}
