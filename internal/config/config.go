// Package config loads editor settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"SketchBoard/internal/rough"
	"SketchBoard/internal/state"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Style string `toml:"style"`
	Seed  int64  `toml:"seed"`

	Zoom   ZoomConfig   `toml:"zoom"`
	Mirror MirrorConfig `toml:"mirror"`

	// HandleRadius is the selection handle hit radius in screen pixels.
	HandleRadius float64 `toml:"handle_radius"`
	// Grid draws the background grid behind the canvas.
	Grid bool `toml:"grid"`
}

type ZoomConfig struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
	In  float64 `toml:"in"`
	Out float64 `toml:"out"`
}

type MirrorConfig struct {
	Enabled   bool   `toml:"enabled"`
	Port      int    `toml:"port"`
	Advertise bool   `toml:"advertise"`
	Instance  string `toml:"instance"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Style:        "bold",
		HandleRadius: 8,
		Grid:         true,
		Zoom:         ZoomConfig{Min: 0.1, Max: 10, In: 1.1, Out: 0.9},
		Mirror:       MirrorConfig{Port: 8888, Advertise: true, Instance: "SketchBoard"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sketchboard/config.toml, falling back
// to the user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "sketchboard", "config.toml")
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
			log.Printf("[CONFIG] loaded %s", path)
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.Style = getEnv("SKETCHBOARD_STYLE", cfg.Style)
	cfg.Mirror.Enabled = getEnvAsBool("SKETCHBOARD_MIRROR", cfg.Mirror.Enabled)
	cfg.Mirror.Port = getEnvAsInt("SKETCHBOARD_MIRROR_PORT", cfg.Mirror.Port)
	cfg.Zoom.Min = getEnvAsFloat("SKETCHBOARD_MIN_ZOOM", cfg.Zoom.Min)
	cfg.Zoom.Max = getEnvAsFloat("SKETCHBOARD_MAX_ZOOM", cfg.Zoom.Max)
	cfg.Seed = int64(getEnvAsInt("SKETCHBOARD_SEED", int(cfg.Seed)))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if _, err := rough.Preset(c.Style); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Zoom.Min <= 0 || c.Zoom.Max <= 0 {
		return fmt.Errorf("%w: zoom bounds must be positive, got [%g, %g]", ErrInvalid, c.Zoom.Min, c.Zoom.Max)
	}
	if c.Zoom.Min > c.Zoom.Max {
		return fmt.Errorf("%w: min zoom %g exceeds max zoom %g", ErrInvalid, c.Zoom.Min, c.Zoom.Max)
	}
	if c.Zoom.In <= 1 || c.Zoom.Out <= 0 || c.Zoom.Out >= 1 {
		return fmt.Errorf("%w: zoom steps must satisfy in > 1 and 0 < out < 1, got %g/%g", ErrInvalid, c.Zoom.In, c.Zoom.Out)
	}
	if c.HandleRadius <= 0 {
		return fmt.Errorf("%w: handle radius must be positive", ErrInvalid)
	}
	if c.Mirror.Port <= 0 || c.Mirror.Port > 65535 {
		return fmt.Errorf("%w: mirror port %d out of range", ErrInvalid, c.Mirror.Port)
	}
	return nil
}

// StyleRecord resolves the configured preset.
func (c *Config) StyleRecord() rough.Style {
	s, err := rough.Preset(c.Style)
	if err != nil {
		return rough.Bold
	}
	return s
}

// SessionOptions builds the options for a new editing session.
func (c *Config) SessionOptions() state.Options {
	return state.Options{
		Style:        c.StyleRecord(),
		Renderer:     rough.NewSketcher(c.Seed),
		ZoomIn:       c.Zoom.In,
		ZoomOut:      c.Zoom.Out,
		MinZoom:      c.Zoom.Min,
		MaxZoom:      c.Zoom.Max,
		HandleRadius: c.HandleRadius,
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
