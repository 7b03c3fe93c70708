// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/meteor"
	"github.com/litescript/ls-starfield/internal/theme"
)

// Default configuration values.
const (
	DefaultMode   = "dark"
	DefaultPolicy = "angle"
	DefaultFPS    = 30
	MaxFPS        = 120
)

// Environment overrides.
const (
	EnvTheme     = "STARFIELD_THEME"
	EnvThemeFile = "STARFIELD_THEME_FILE"
	EnvPolicy    = "STARFIELD_POLICY"
	EnvFPS       = "STARFIELD_FPS"
)

// Validation errors.
var (
	ErrUnknownPolicy      = errors.New("unknown meteor policy")
	ErrInvalidProbability = errors.New("meteor probability must be within [0, 1]")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrInvalidFPS         = errors.New("fps out of range")
	ErrInvalidCellSize    = errors.New("cell size must be positive")
)

// Config represents the ls-starfield configuration.
type Config struct {
	Theme   ThemeConfig  `toml:"theme" yaml:"theme"`
	Meteors MeteorConfig `toml:"meteors" yaml:"meteors"`
	Render  RenderConfig `toml:"render" yaml:"render"`
}

// ThemeConfig holds the initial theme and an optional watched theme file.
type ThemeConfig struct {
	Mode string `toml:"mode" yaml:"mode"` // dark, light
	File string `toml:"file" yaml:"file"` // file holding "dark" or "light"
}

// MeteorConfig selects a spawn policy and optionally overrides its timing.
// Empty or nil fields keep the policy's value.
type MeteorConfig struct {
	Policy        string   `toml:"policy" yaml:"policy"`                 // angle, offset
	Interval      string   `toml:"interval" yaml:"interval"`             // e.g. "1.5s"
	Probability   *float64 `toml:"probability" yaml:"probability"`       // 0..1
	RemovalBuffer string   `toml:"removal_buffer" yaml:"removal_buffer"` // e.g. "500ms"
}

// RenderConfig holds frame rate and terminal cell geometry.
type RenderConfig struct {
	FPS        int     `toml:"fps" yaml:"fps"`
	CellWidth  float64 `toml:"cell_width" yaml:"cell_width"`
	CellHeight float64 `toml:"cell_height" yaml:"cell_height"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Mode: DefaultMode,
		},
		Meteors: MeteorConfig{
			Policy: DefaultPolicy,
		},
		Render: RenderConfig{
			FPS:        DefaultFPS,
			CellWidth:  canvas.DefaultCellWidth,
			CellHeight: canvas.DefaultCellHeight,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ls-starfield", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist. Files ending in .yaml or
// .yml are parsed as YAML, everything else as TOML.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path, as YAML for .yaml
// and .yml files and TOML otherwise. Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from environment variables read through
// getenv. Unset or empty variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvTheme); v != "" {
		c.Theme.Mode = v
	}
	if v := getenv(EnvThemeFile); v != "" {
		c.Theme.File = v
	}
	if v := getenv(EnvPolicy); v != "" {
		c.Meteors.Policy = v
	}
	if v := getenv(EnvFPS); v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFPS, err)
		}
		c.Render.FPS = fps
	}
	return nil
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := c.ThemeMode(); err != nil {
		return err
	}
	if _, err := c.MeteorPolicy(); err != nil {
		return err
	}
	if c.Render.FPS <= 0 || c.Render.FPS > MaxFPS {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidFPS, c.Render.FPS, MaxFPS)
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidCellSize, c.Render.CellWidth, c.Render.CellHeight)
	}
	return nil
}

// ThemeMode parses the configured initial theme.
func (c *Config) ThemeMode() (theme.Mode, error) {
	if c.Theme.Mode == "" {
		return theme.Dark, nil
	}
	return theme.ParseMode(c.Theme.Mode)
}

// MeteorPolicy resolves the named policy and applies overrides.
func (c *Config) MeteorPolicy() (meteor.Policy, error) {
	p, ok := meteor.PolicyByName(c.Meteors.Policy)
	if !ok {
		return meteor.Policy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, c.Meteors.Policy)
	}

	if c.Meteors.Interval != "" {
		d, err := time.ParseDuration(c.Meteors.Interval)
		if err != nil || d <= 0 {
			return meteor.Policy{}, fmt.Errorf("%w: interval %q", ErrInvalidDuration, c.Meteors.Interval)
		}
		p.Interval = d
	}
	if c.Meteors.Probability != nil {
		prob := *c.Meteors.Probability
		if prob < 0 || prob > 1 {
			return meteor.Policy{}, fmt.Errorf("%w: %v", ErrInvalidProbability, prob)
		}
		p.Probability = prob
	}
	if c.Meteors.RemovalBuffer != "" {
		d, err := time.ParseDuration(c.Meteors.RemovalBuffer)
		if err != nil || d < 0 {
			return meteor.Policy{}, fmt.Errorf("%w: removal_buffer %q", ErrInvalidDuration, c.Meteors.RemovalBuffer)
		}
		p.RemovalBuffer = d
	}

	if err := p.Validate(); err != nil {
		return meteor.Policy{}, err
	}
	return p, nil
}

// FrameInterval is the time between terminal frames.
func (c *Config) FrameInterval() time.Duration {
	fps := c.Render.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
