package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	World     WorldConfig     `toml:"world" yaml:"world"`
	Character CharacterConfig `toml:"character" yaml:"character"`
	House     HouseConfig     `toml:"house" yaml:"house"`
	Movement  MovementConfig  `toml:"movement" yaml:"movement"`
	Oxygen    OxygenConfig    `toml:"oxygen" yaml:"oxygen"`
	Window    WindowConfig    `toml:"window" yaml:"window"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
}

type WorldConfig struct {
	Capacity       int    `toml:"capacity" yaml:"capacity"` // max live entities
	CharacterCount int    `toml:"character_count" yaml:"character_count"`
	Seed           uint64 `toml:"seed" yaml:"seed"` // 0 = random per run
}

type CharacterConfig struct {
	Width     float32 `toml:"width" yaml:"width"`
	Height    float32 `toml:"height" yaml:"height"`
	MaxHealth float32 `toml:"max_health" yaml:"max_health"`
	Color     RGB     `toml:"color" yaml:"color"`
}

type HouseConfig struct {
	Width  float32 `toml:"width" yaml:"width"`
	Height float32 `toml:"height" yaml:"height"`
	Color  RGB     `toml:"color" yaml:"color"`
}

type MovementConfig struct {
	PixelsPerFoot float64 `toml:"pixels_per_foot" yaml:"pixels_per_foot"`
	FeetPerSecond float64 `toml:"feet_per_second" yaml:"feet_per_second"`
}

type OxygenConfig struct {
	RecoveryRatePerSecond float64 `toml:"recovery_rate_per_second" yaml:"recovery_rate_per_second"`
}

type WindowConfig struct {
	Title      string `toml:"title" yaml:"title"`
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Fullscreen bool   `toml:"fullscreen" yaml:"fullscreen"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// RGB is an opaque color, written as [r, g, b] in config files.
type RGB [3]uint8

// Load reads a TOML or YAML file (chosen by extension) over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the tuning the game ships with.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Capacity:       1000,
			CharacterCount: 10,
		},
		Character: CharacterConfig{
			Width:     50,
			Height:    50,
			MaxHealth: 100,
			Color:     RGB{255, 255, 0},
		},
		House: HouseConfig{
			Width:  300,
			Height: 300,
			Color:  RGB{100, 100, 100},
		},
		Movement: MovementConfig{
			PixelsPerFoot: 50,
			FeetPerSecond: 10,
		},
		Oxygen: OxygenConfig{
			RecoveryRatePerSecond: 5,
		},
		Window: WindowConfig{
			Title:  "Worlds Below",
			Width:  1280,
			Height: 720,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.World.Capacity <= 0:
		return fmt.Errorf("world.capacity must be positive, got %d", c.World.Capacity)
	case c.World.CharacterCount < 0:
		return fmt.Errorf("world.character_count must not be negative, got %d", c.World.CharacterCount)
	case c.World.CharacterCount+2 > c.World.Capacity:
		// house + characters + player
		return fmt.Errorf("world.capacity %d cannot hold %d characters, a house and a player",
			c.World.Capacity, c.World.CharacterCount)
	case c.Character.Width <= 0 || c.Character.Height <= 0:
		return fmt.Errorf("character size must be positive, got %gx%g", c.Character.Width, c.Character.Height)
	case c.Character.MaxHealth <= 0:
		return fmt.Errorf("character.max_health must be positive, got %g", c.Character.MaxHealth)
	case c.House.Width <= 0 || c.House.Height <= 0:
		return fmt.Errorf("house size must be positive, got %gx%g", c.House.Width, c.House.Height)
	case c.Movement.PixelsPerFoot < 0 || c.Movement.FeetPerSecond < 0:
		return fmt.Errorf("movement speeds must not be negative")
	case c.Oxygen.RecoveryRatePerSecond < 0:
		return fmt.Errorf("oxygen.recovery_rate_per_second must not be negative, got %g", c.Oxygen.RecoveryRatePerSecond)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
