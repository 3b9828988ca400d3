package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aidmqan/mqan-console/internal/models"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid config")

// EnvPrefix namespaces environment overrides, e.g. MQAN_FEED_INTERVAL.
const EnvPrefix = "MQAN"

// FileName is the config file base name looked up in the search paths.
const FileName = "mqan"

// Config is the resolved console configuration.
type Config struct {
	DBPath   string
	LogLevel string
	LogFile  string
	Feed     Feed
	Server   Server
	Quality  Quality
	System   System

	// File is the config file that was read, empty when none was found.
	File string
}

type Feed struct {
	Interval time.Duration
	Capacity int
	Initial  int
	Seed     uint64
}

type Server struct {
	Addr           string
	AllowedOrigins []string
}

type Quality struct {
	Threshold int
}

type System struct {
	Name           string
	SessionTimeout int
}

// defaults is the single source for viper defaults and `config init`.
func defaults() map[string]any {
	return map[string]any{
		"db_path":   "mqan.db",
		"log_level": "info",
		"log_file":  "mqan.log",
		"feed": map[string]any{
			"interval": "3s",
			"capacity": 20,
			"initial":  10,
			"seed":     0,
		},
		"server": map[string]any{
			"addr":            ":8080",
			"allowed_origins": []string{"*"},
		},
		"quality": map[string]any{
			"threshold": 85,
		},
		"system": map[string]any{
			"name":            "AID-MQAN Network",
			"session_timeout": 60,
		},
	}
}

func setDefaults(v *viper.Viper, prefix string, m map[string]any) {
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := val.(map[string]any); ok {
			setDefaults(v, key, nested)
			continue
		}
		v.SetDefault(key, val)
	}
}

// NewViper returns a viper instance with defaults, the config search paths
// and MQAN_* environment overrides. Callers bind CLI flags onto it.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, "", defaults())

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", FileName))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (file overrides the search paths) and resolves
// every key. A missing file in the search paths is not an error; a missing
// explicit file is.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		DBPath:   v.GetString("db_path"),
		LogLevel: v.GetString("log_level"),
		LogFile:  v.GetString("log_file"),
		Feed: Feed{
			Interval: v.GetDuration("feed.interval"),
			Capacity: v.GetInt("feed.capacity"),
			Initial:  v.GetInt("feed.initial"),
			Seed:     v.GetUint64("feed.seed"),
		},
		Server: Server{
			Addr:           v.GetString("server.addr"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
		},
		Quality: Quality{
			Threshold: v.GetInt("quality.threshold"),
		},
		System: System{
			Name:           v.GetString("system.name"),
			SessionTimeout: v.GetInt("system.session_timeout"),
		},
		File: v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.DBPath == "":
		return fmt.Errorf("%w: db_path is empty", ErrInvalid)
	case c.Feed.Capacity < 1:
		return fmt.Errorf("%w: feed.capacity %d must be at least 1", ErrInvalid, c.Feed.Capacity)
	case c.Feed.Initial < 0 || c.Feed.Initial > c.Feed.Capacity:
		return fmt.Errorf("%w: feed.initial %d outside 0-%d", ErrInvalid, c.Feed.Initial, c.Feed.Capacity)
	case c.Feed.Interval <= 0:
		return fmt.Errorf("%w: feed.interval must be positive", ErrInvalid)
	case c.Quality.Threshold < 0 || c.Quality.Threshold > 100:
		return fmt.Errorf("%w: quality.threshold %d outside 0-100", ErrInvalid, c.Quality.Threshold)
	case c.System.SessionTimeout <= 0:
		return fmt.Errorf("%w: system.session_timeout must be positive", ErrInvalid)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// Settings returns the factory settings with the configured overrides.
func (c *Config) Settings() models.Settings {
	s := models.DefaultSettings()
	s.SystemName = c.System.Name
	s.SessionTimeout = c.System.SessionTimeout
	s.QualityThreshold = c.Quality.Threshold
	return s
}

// WriteDefault writes the default configuration as YAML. An existing file
// is only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := yaml.Marshal(defaults())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
