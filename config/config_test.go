package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/motionfield/field"
	"github.com/lixenwraith/motionfield/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motionfield.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 48, cfg.Particles)
	assert.Equal(t, 16*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, field.DefaultTuning(), cfg.FieldTuning())

	style, err := cfg.CircleStyle()
	require.NoError(t, err)
	assert.Equal(t, render.DefaultCircleStyle(), style)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
particles: 96
seed: 1234
frame_interval: 33ms
tuning:
  damping: 0.9
style:
  fill: "#ff0000"
audio:
  enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 96, cfg.Particles)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, 33*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, 0.9, cfg.Tuning.Damping)
	assert.Equal(t, Default().Tuning.PointerGain, cfg.Tuning.PointerGain, "untouched keys keep defaults")
	assert.Equal(t, "#ff0000", cfg.Style.Fill)
	assert.True(t, cfg.Audio.Enabled)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "particles: 96\n")
	t.Setenv("MOTIONFIELD_PARTICLES", "12")
	t.Setenv("MOTIONFIELD_TUNING_POINTER_GAIN", "0.1")
	t.Setenv("MOTIONFIELD_LOG_DEBUG", "true")
	t.Setenv("MOTIONFIELD_FRAME_INTERVAL", "8ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Particles)
	assert.Equal(t, 0.1, cfg.Tuning.PointerGain)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, 8*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, "logs", cfg.Log.Dir)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "particles: [not, a, number]\n"))
	assert.Error(t, err)

	t.Setenv("MOTIONFIELD_PARTICLES", "many")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero particles", func(c *Config) { c.Particles = 0 }},
		{"zero interval", func(c *Config) { c.FrameInterval = 0 }},
		{"empty radius range", func(c *Config) { c.Tuning.RadiusMax = c.Tuning.RadiusMin }},
		{"damping above one", func(c *Config) { c.Tuning.Damping = 1.5 }},
		{"zero pointer decay", func(c *Config) { c.Tuning.PointerDecay = 0 }},
		{"opacity above one", func(c *Config) { c.Style.Opacity = 2 }},
		{"negative initial speed", func(c *Config) { c.Tuning.InitialSpeed = -0.1 }},
		{"negative jitter", func(c *Config) { c.Tuning.Jitter = -0.01 }},
		{"shadow alpha above one", func(c *Config) { c.Style.ShadowAlpha = 1.5 }},
		{"negative shadow alpha", func(c *Config) { c.Style.ShadowAlpha = -0.2 }},
		{"negative shadow blur", func(c *Config) { c.Style.ShadowBlur = -1 }},
		{"negative max tilt", func(c *Config) { c.Tilt.MaxTilt = -8 }},
		{"negative hover scale", func(c *Config) { c.Tilt.HoverScale = -1 }},
		{"negative burst threshold", func(c *Config) { c.Audio.BurstThreshold = -6 }},
		{"negative burst cooldown", func(c *Config) { c.Audio.BurstCooldown = -1 }},
		{"negative frequency", func(c *Config) { c.Audio.Frequency = -440 }},
		{"zero cell", func(c *Config) { c.Cell.Height = 0 }},
		{"bad color mode", func(c *Config) { c.ColorMode = "sepia" }},
		{"bad color", func(c *Config) { c.Style.Background = "#zzz" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDerivedSettings(t *testing.T) {
	cfg := Default()
	cfg.Cell = Cell{Width: 10, Height: 20}
	cfg.Tilt = Tilt{MaxTilt: 10, HoverScale: 1.03}
	cfg.Audio.Frequency = 440

	assert.Equal(t, render.CellMetrics{Width: 10, Height: 20}, cfg.CellMetrics())
	assert.Equal(t, 10.0, cfg.TiltPreset().MaxTilt)
	assert.Equal(t, 440.0, cfg.Chime().Frequency)
}
