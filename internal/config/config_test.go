package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	data := []byte(`
engine:
  strategy: locus
  finder: best
  gate_ratio: 0.25
  cache:
    policy: session
    capacity: 5000
bot:
  interval: 5ms
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "locus", cfg.Engine.Strategy)
	assert.Equal(t, "best", cfg.Engine.Finder)
	assert.Equal(t, 0.25, cfg.Engine.GateRatio)
	assert.Equal(t, CacheSession, cfg.Engine.Cache.Policy)
	assert.Equal(t, 5000, cfg.Engine.Cache.Capacity)
	assert.Equal(t, 5*time.Millisecond, cfg.Bot.Interval)

	// Untouched sections keep their defaults.
	assert.Equal(t, []int{0, 3, 4, 4}, cfg.Engine.Trap.Counts)
	assert.Equal(t, 0.10, cfg.Game.Spawn4)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"missing strategy", func(c *Config) { c.Engine.Strategy = "" }},
		{"negative gate", func(c *Config) { c.Engine.GateRatio = -1 }},
		{"unknown pattern", func(c *Config) { c.Engine.Snake.Pattern = "spiral" }},
		{"unknown axis", func(c *Config) { c.Engine.Trap.Axis = "diagonal" }},
		{"short trap", func(c *Config) { c.Engine.Trap.Counts = []int{0, 3} }},
		{"trap count too big", func(c *Config) { c.Engine.Trap.Counts = []int{0, 3, 4, 5} }},
		{"unknown policy", func(c *Config) { c.Engine.Cache.Policy = "forever" }},
		{"negative capacity", func(c *Config) { c.Engine.Cache.Capacity = -1 }},
		{"spawn4 above one", func(c *Config) { c.Game.Spawn4 = 1.5 }},
		{"odd target", func(c *Config) { c.Game.Target = 1000 }},
		{"negative interval", func(c *Config) { c.Bot.Interval = -time.Second }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}
