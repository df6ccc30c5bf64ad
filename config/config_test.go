package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.World.Capacity)
	assert.Equal(t, float32(300), cfg.House.Width)
	assert.Equal(t, 5.0, cfg.Oxygen.RecoveryRatePerSecond)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "world.toml", `
[world]
capacity = 64
character_count = 4
seed = 7

[character]
color = [1, 2, 3]

[oxygen]
recovery_rate_per_second = 2.5

[logging]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.World.Capacity)
	assert.Equal(t, 4, cfg.World.CharacterCount)
	assert.Equal(t, uint64(7), cfg.World.Seed)
	assert.Equal(t, RGB{1, 2, 3}, cfg.Character.Color)
	assert.Equal(t, 2.5, cfg.Oxygen.RecoveryRatePerSecond)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, float32(50), cfg.Character.Width)
	assert.Equal(t, 50.0, cfg.Movement.PixelsPerFoot)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "world.yaml", `
world:
  capacity: 32
house:
  width: 120
  height: 80
window:
  fullscreen: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.World.Capacity)
	assert.Equal(t, float32(120), cfg.House.Width)
	assert.Equal(t, float32(80), cfg.House.Height)
	assert.True(t, cfg.Window.Fullscreen)
	assert.Equal(t, 10, cfg.World.CharacterCount)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeFile(t, "bad.toml", "[world\ncapacity ="))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeFile(t, "small.toml", "[world]\ncapacity = 5\ncharacter_count = 10\n"))
	assert.ErrorContains(t, err, "cannot hold")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero capacity", func(c *Config) { c.World.Capacity = 0 }},
		{"negative characters", func(c *Config) { c.World.CharacterCount = -1 }},
		{"flat character", func(c *Config) { c.Character.Height = 0 }},
		{"no health", func(c *Config) { c.Character.MaxHealth = 0 }},
		{"flat house", func(c *Config) { c.House.Width = -1 }},
		{"negative speed", func(c *Config) { c.Movement.FeetPerSecond = -1 }},
		{"negative recovery", func(c *Config) { c.Oxygen.RecoveryRatePerSecond = -1 }},
		{"no window", func(c *Config) { c.Window.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
