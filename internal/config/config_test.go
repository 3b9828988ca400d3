package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray mqan.yaml is read
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "mqan.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.Feed.Interval)
	assert.Equal(t, 20, cfg.Feed.Capacity)
	assert.Equal(t, 10, cfg.Feed.Initial)
	assert.Equal(t, uint64(0), cfg.Feed.Seed)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 85, cfg.Quality.Threshold)
	assert.Equal(t, "AID-MQAN Network", cfg.System.Name)
	assert.Empty(t, cfg.File)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)

	yaml := `
db_path: data/qa.db
feed:
  interval: 500ms
  capacity: 5
  initial: 2
  seed: 42
server:
  addr: 127.0.0.1:9000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mqan.yaml"), []byte(yaml), 0644))
	t.Setenv("MQAN_FEED_CAPACITY", "8")
	t.Setenv("MQAN_QUALITY_THRESHOLD", "90")

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "data/qa.db", cfg.DBPath)
	assert.Equal(t, 500*time.Millisecond, cfg.Feed.Interval)
	assert.Equal(t, 8, cfg.Feed.Capacity, "env wins over file")
	assert.Equal(t, 2, cfg.Feed.Initial)
	assert.Equal(t, uint64(42), cfg.Feed.Seed)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 90, cfg.Quality.Threshold)
	assert.Equal(t, "mqan.yaml", filepath.Base(cfg.File))

	s := cfg.Settings()
	assert.Equal(t, 90, s.QualityThreshold)
	assert.Equal(t, "strong", s.PasswordPolicy)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(NewViper(), filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero capacity", mutate: func(c *Config) { c.Feed.Capacity = 0 }},
		{name: "initial over capacity", mutate: func(c *Config) { c.Feed.Initial = 21 }},
		{name: "zero interval", mutate: func(c *Config) { c.Feed.Interval = 0 }},
		{name: "threshold over 100", mutate: func(c *Config) { c.Quality.Threshold = 101 }},
		{name: "negative threshold", mutate: func(c *Config) { c.Quality.Threshold = -1 }},
		{name: "empty db path", mutate: func(c *Config) { c.DBPath = "" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
	}

	isolate(t)
	base, err := Load(NewViper(), "")
	require.NoError(t, err)
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "conf", "mqan.yaml")

	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false), "refuses to overwrite")
	require.NoError(t, WriteDefault(path, true))

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Feed.Interval)
	assert.Equal(t, 20, cfg.Feed.Capacity)
	assert.Equal(t, path, cfg.File)
}
