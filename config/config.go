// Package config resolves runtime settings from defaults, an optional YAML file
// and MOTIONFIELD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/motionfield/audio"
	"github.com/lixenwraith/motionfield/field"
	"github.com/lixenwraith/motionfield/parameter"
	"github.com/lixenwraith/motionfield/render"
	"github.com/lixenwraith/motionfield/tilt"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full runtime configuration
// No envDefault tags: unset variables leave file or default values in place
type Config struct {
	Particles     int           `yaml:"particles"      env:"MOTIONFIELD_PARTICLES"`
	Seed          int64         `yaml:"seed"           env:"MOTIONFIELD_SEED"`
	FrameInterval time.Duration `yaml:"frame_interval" env:"MOTIONFIELD_FRAME_INTERVAL"`
	ColorMode     string        `yaml:"color_mode"     env:"MOTIONFIELD_COLOR_MODE"`

	Tuning Tuning `yaml:"tuning" envPrefix:"MOTIONFIELD_TUNING_"`
	Style  Style  `yaml:"style"  envPrefix:"MOTIONFIELD_STYLE_"`
	Cell   Cell   `yaml:"cell"   envPrefix:"MOTIONFIELD_CELL_"`
	Tilt   Tilt   `yaml:"tilt"   envPrefix:"MOTIONFIELD_TILT_"`
	Audio  Audio  `yaml:"audio"  envPrefix:"MOTIONFIELD_AUDIO_"`
	Log    Log    `yaml:"log"    envPrefix:"MOTIONFIELD_LOG_"`
}

// Tuning mirrors field.Tuning
type Tuning struct {
	RadiusMin        float64 `yaml:"radius_min"        env:"RADIUS_MIN"`
	RadiusMax        float64 `yaml:"radius_max"        env:"RADIUS_MAX"`
	InitialSpeed     float64 `yaml:"initial_speed"     env:"INITIAL_SPEED"`
	PointerGain      float64 `yaml:"pointer_gain"      env:"POINTER_GAIN"`
	PointerInfluence float64 `yaml:"pointer_influence" env:"POINTER_INFLUENCE"`
	Jitter           float64 `yaml:"jitter"            env:"JITTER"`
	Damping          float64 `yaml:"damping"           env:"DAMPING"`
	PointerDecay     float64 `yaml:"pointer_decay"     env:"POINTER_DECAY"`
}

// Style holds hex colors and dot appearance
type Style struct {
	Background  string  `yaml:"background"   env:"BACKGROUND"`
	Fill        string  `yaml:"fill"         env:"FILL"`
	Opacity     float64 `yaml:"opacity"      env:"OPACITY"`
	Shadow      string  `yaml:"shadow"       env:"SHADOW"`
	ShadowBlur  float64 `yaml:"shadow_blur"  env:"SHADOW_BLUR"`
	ShadowAlpha float64 `yaml:"shadow_alpha" env:"SHADOW_ALPHA"`
}

// Cell is the virtual pixel size of a terminal cell
type Cell struct {
	Width  float64 `yaml:"width"  env:"WIDTH"`
	Height float64 `yaml:"height" env:"HEIGHT"`
}

// Tilt selects the hover preset of the terminal card
type Tilt struct {
	MaxTilt    float64 `yaml:"max_tilt"    env:"MAX"`
	HoverScale float64 `yaml:"hover_scale" env:"SCALE"`
}

// Audio controls the burst chime
type Audio struct {
	Enabled        bool    `yaml:"enabled"         env:"ENABLED"`
	BurstThreshold float64 `yaml:"burst_threshold" env:"BURST_THRESHOLD"`
	BurstCooldown  int     `yaml:"burst_cooldown"  env:"BURST_COOLDOWN"`
	Frequency      float64 `yaml:"frequency"       env:"FREQUENCY"`
}

// Log controls the debug file logger
type Log struct {
	Debug bool   `yaml:"debug" env:"DEBUG"`
	Dir   string `yaml:"dir"   env:"DIR"`
}

// Default returns the built-in configuration
func Default() Config {
	t := field.DefaultTuning()
	return Config{
		Particles:     parameter.FieldDefaultCount,
		FrameInterval: parameter.FrameInterval,
		ColorMode:     "auto",
		Tuning: Tuning{
			RadiusMin:        t.RadiusMin,
			RadiusMax:        t.RadiusMax,
			InitialSpeed:     t.InitialSpeed,
			PointerGain:      t.PointerGain,
			PointerInfluence: t.PointerInfluence,
			Jitter:           t.Jitter,
			Damping:          t.Damping,
			PointerDecay:     t.PointerDecay,
		},
		Style: Style{
			Background:  parameter.BackgroundHex,
			Fill:        parameter.ParticleFillHex,
			Opacity:     parameter.ParticleOpacity,
			Shadow:      parameter.ParticleShadowHex,
			ShadowBlur:  parameter.ParticleShadowBlur,
			ShadowAlpha: parameter.ParticleShadowAlpha,
		},
		Cell: Cell{
			Width:  parameter.CellWidthPx,
			Height: parameter.CellHeightPx,
		},
		Tilt: Tilt{
			MaxTilt:    tilt.Card.MaxTilt,
			HoverScale: tilt.Card.HoverScale,
		},
		Audio: Audio{
			BurstThreshold: parameter.BurstThreshold,
			BurstCooldown:  parameter.BurstCooldownFrames,
			Frequency:      parameter.ChimeFrequency,
		},
		Log: Log{
			Dir: "logs",
		},
	}
}

// Load resolves defaults, then the YAML file at path (skipped when empty), then the environment
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges and colors
func (c Config) Validate() error {
	switch {
	case c.Particles <= 0:
		return fmt.Errorf("%w: particles must be positive, got %d", ErrInvalidConfig, c.Particles)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: frame_interval must be positive, got %v", ErrInvalidConfig, c.FrameInterval)
	case c.Tuning.RadiusMin <= 0 || c.Tuning.RadiusMax <= c.Tuning.RadiusMin:
		return fmt.Errorf("%w: radius range [%v, %v) is empty", ErrInvalidConfig, c.Tuning.RadiusMin, c.Tuning.RadiusMax)
	case c.Tuning.Damping <= 0 || c.Tuning.Damping > 1:
		return fmt.Errorf("%w: damping must be in (0, 1], got %v", ErrInvalidConfig, c.Tuning.Damping)
	case c.Tuning.PointerDecay <= 0 || c.Tuning.PointerDecay > 1:
		return fmt.Errorf("%w: pointer_decay must be in (0, 1], got %v", ErrInvalidConfig, c.Tuning.PointerDecay)
	case c.Tuning.InitialSpeed < 0:
		return fmt.Errorf("%w: initial_speed must not be negative, got %v", ErrInvalidConfig, c.Tuning.InitialSpeed)
	case c.Tuning.Jitter < 0:
		return fmt.Errorf("%w: jitter must not be negative, got %v", ErrInvalidConfig, c.Tuning.Jitter)
	case c.Style.Opacity < 0 || c.Style.Opacity > 1:
		return fmt.Errorf("%w: opacity must be in [0, 1], got %v", ErrInvalidConfig, c.Style.Opacity)
	case c.Style.ShadowAlpha < 0 || c.Style.ShadowAlpha > 1:
		return fmt.Errorf("%w: shadow_alpha must be in [0, 1], got %v", ErrInvalidConfig, c.Style.ShadowAlpha)
	case c.Style.ShadowBlur < 0:
		return fmt.Errorf("%w: shadow_blur must not be negative, got %v", ErrInvalidConfig, c.Style.ShadowBlur)
	case c.Tilt.MaxTilt < 0:
		return fmt.Errorf("%w: tilt max must not be negative, got %v", ErrInvalidConfig, c.Tilt.MaxTilt)
	case c.Tilt.HoverScale <= 0:
		return fmt.Errorf("%w: tilt hover_scale must be positive, got %v", ErrInvalidConfig, c.Tilt.HoverScale)
	// Zero threshold or cooldown selects the built-in default
	case c.Audio.BurstThreshold < 0:
		return fmt.Errorf("%w: burst_threshold must not be negative, got %v", ErrInvalidConfig, c.Audio.BurstThreshold)
	case c.Audio.BurstCooldown < 0:
		return fmt.Errorf("%w: burst_cooldown must not be negative, got %d", ErrInvalidConfig, c.Audio.BurstCooldown)
	case c.Audio.Frequency < 0:
		return fmt.Errorf("%w: frequency must not be negative, got %v", ErrInvalidConfig, c.Audio.Frequency)
	case c.Cell.Width <= 0 || c.Cell.Height <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %vx%v", ErrInvalidConfig, c.Cell.Width, c.Cell.Height)
	}
	switch c.ColorMode {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("%w: color_mode must be auto, truecolor or 256, got %q", ErrInvalidConfig, c.ColorMode)
	}
	if _, err := c.CircleStyle(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// FieldTuning converts to the animator tuning
func (c Config) FieldTuning() field.Tuning {
	return field.Tuning{
		RadiusMin:        c.Tuning.RadiusMin,
		RadiusMax:        c.Tuning.RadiusMax,
		InitialSpeed:     c.Tuning.InitialSpeed,
		PointerGain:      c.Tuning.PointerGain,
		PointerInfluence: c.Tuning.PointerInfluence,
		Jitter:           c.Tuning.Jitter,
		Damping:          c.Tuning.Damping,
		PointerDecay:     c.Tuning.PointerDecay,
	}
}

// CircleStyle parses the style colors
func (c Config) CircleStyle() (render.CircleStyle, error) {
	bg, err := render.ParseHex(c.Style.Background)
	if err != nil {
		return render.CircleStyle{}, err
	}
	fill, err := render.ParseHex(c.Style.Fill)
	if err != nil {
		return render.CircleStyle{}, err
	}
	shadow, err := render.ParseHex(c.Style.Shadow)
	if err != nil {
		return render.CircleStyle{}, err
	}
	return render.CircleStyle{
		Background:  bg,
		Fill:        fill,
		Opacity:     c.Style.Opacity,
		Shadow:      shadow,
		ShadowBlur:  c.Style.ShadowBlur,
		ShadowAlpha: c.Style.ShadowAlpha,
	}, nil
}

// CellMetrics returns the terminal cell size
func (c Config) CellMetrics() render.CellMetrics {
	return render.CellMetrics{Width: c.Cell.Width, Height: c.Cell.Height}
}

// TiltPreset returns the configured hover preset
func (c Config) TiltPreset() tilt.Preset {
	return tilt.Preset{MaxTilt: c.Tilt.MaxTilt, HoverScale: c.Tilt.HoverScale}
}

// Chime returns the burst chime settings
func (c Config) Chime() audio.ChimeConfig {
	chime := audio.DefaultChime()
	if c.Audio.Frequency > 0 {
		chime.Frequency = c.Audio.Frequency
	}
	return chime
}
