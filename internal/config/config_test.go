package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starfield/internal/meteor"
	"github.com/litescript/ls-starfield/internal/theme"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "dark", cfg.Theme.Mode)
	assert.Empty(t, cfg.Theme.File)
	assert.Equal(t, "angle", cfg.Meteors.Policy)
	assert.Nil(t, cfg.Meteors.Probability)
	assert.Equal(t, 30, cfg.Render.FPS)
	assert.Equal(t, 8.0, cfg.Render.CellWidth)
	assert.Equal(t, 16.0, cfg.Render.CellHeight)
	require.NoError(t, cfg.Validate())

	p, err := cfg.MeteorPolicy()
	require.NoError(t, err)
	assert.Equal(t, meteor.AnglePolicy, p)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[theme]
mode = "light"
file = "/tmp/theme"

[meteors]
policy = "offset"
interval = "2s"
probability = 0.25
removal_buffer = "750ms"

[render]
fps = 24
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Theme.Mode)
	assert.Equal(t, "/tmp/theme", cfg.Theme.File)
	assert.Equal(t, 24, cfg.Render.FPS)
	assert.Equal(t, 8.0, cfg.Render.CellWidth, "unset keys keep defaults")

	p, err := cfg.MeteorPolicy()
	require.NoError(t, err)
	assert.Equal(t, "offset", p.Name)
	assert.Equal(t, 2*time.Second, p.Interval)
	assert.Equal(t, 0.25, p.Probability)
	assert.Equal(t, 750*time.Millisecond, p.RemovalBuffer)
	assert.Equal(t, meteor.OffsetPolicy.MaxDuration, p.MaxDuration)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
theme:
  mode: light
meteors:
  policy: angle
  probability: 1
render:
  fps: 60
  cell_width: 10
  cell_height: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	mode, err := cfg.ThemeMode()
	require.NoError(t, err)
	assert.Equal(t, theme.Light, mode)
	assert.Equal(t, 60, cfg.Render.FPS)
	assert.Equal(t, 10.0, cfg.Render.CellWidth)

	p, err := cfg.MeteorPolicy()
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Probability)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[theme\nmode = "), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Theme.Mode = "light"
	prob := 0.5
	cfg.Meteors.Probability = &prob

	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.Theme.Mode)
	require.NotNil(t, loaded.Meteors.Probability)
	assert.Equal(t, 0.5, *loaded.Meteors.Probability)
}

func TestSave_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := DefaultConfig()
	cfg.Meteors.Policy = "offset"
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "policy: offset")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "offset", loaded.Meteors.Policy)
}

func TestConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/ls-starfield/config.toml", ConfigPath())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvTheme:     "light",
		EnvThemeFile: "/run/theme",
		EnvPolicy:    "offset",
		EnvFPS:       "15",
	}
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "light", cfg.Theme.Mode)
	assert.Equal(t, "/run/theme", cfg.Theme.File)
	assert.Equal(t, "offset", cfg.Meteors.Policy)
	assert.Equal(t, 15, cfg.Render.FPS)

	// Empty values leave the config alone.
	cfg = DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(string) string { return "" }))
	assert.Equal(t, DefaultConfig(), cfg)

	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvFPS {
			return "fast"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown theme", func(c *Config) { c.Theme.Mode = "sepia" }, theme.ErrUnknownMode},
		{"unknown policy", func(c *Config) { c.Meteors.Policy = "comet" }, ErrUnknownPolicy},
		{"probability high", func(c *Config) { p := 1.2; c.Meteors.Probability = &p }, ErrInvalidProbability},
		{"probability negative", func(c *Config) { p := -0.1; c.Meteors.Probability = &p }, ErrInvalidProbability},
		{"bad interval", func(c *Config) { c.Meteors.Interval = "soon" }, ErrInvalidDuration},
		{"zero interval", func(c *Config) { c.Meteors.Interval = "0s" }, ErrInvalidDuration},
		{"negative buffer", func(c *Config) { c.Meteors.RemovalBuffer = "-1s" }, ErrInvalidDuration},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }, ErrInvalidFPS},
		{"huge fps", func(c *Config) { c.Render.FPS = 1000 }, ErrInvalidFPS},
		{"zero cell", func(c *Config) { c.Render.CellHeight = 0 }, ErrInvalidCellSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.FPS = 25
	assert.Equal(t, 40*time.Millisecond, cfg.FrameInterval())

	cfg.Render.FPS = 0
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
}
