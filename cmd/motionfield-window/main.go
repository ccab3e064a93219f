// motionfield-window renders the particle field in a desktop window
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/motionfield/audio"
	"github.com/lixenwraith/motionfield/background"
	"github.com/lixenwraith/motionfield/config"
	"github.com/lixenwraith/motionfield/engine"
	"github.com/lixenwraith/motionfield/field"
	"github.com/lixenwraith/motionfield/logging"
	"github.com/lixenwraith/motionfield/render"
)

// window is the ebiten game, Update and Draw share one goroutine
type window struct {
	cfg    config.Config
	logger *zap.Logger

	loop   *engine.Loop
	events *engine.Dispatcher
	frame  *render.Recorder
	style  render.CircleStyle
	sound  *audio.SoundManager
	bg     *background.Background

	width, height    int
	resized          bool
	cursorX, cursorY int
}

func newWindow(cfg config.Config, logger *zap.Logger, sound *audio.SoundManager) (*window, error) {
	style, err := cfg.CircleStyle()
	if err != nil {
		return nil, err
	}
	return &window{
		cfg:    cfg,
		logger: logger,
		loop:   engine.NewLoop(engine.WithLogger(logger)),
		events: engine.NewDispatcher(),
		frame:  render.NewRecorder(),
		style:  style,
		sound:  sound,
	}, nil
}

// mount retries until the window reports a usable size
func (w *window) mount() {
	seed := w.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tuning := w.cfg.FieldTuning()
	opts := background.Options{
		Width:          float64(w.width),
		Height:         float64(w.height),
		Count:          w.cfg.Particles,
		Scheduler:      w.loop,
		Events:         w.events,
		Surface:        w.frame,
		Rand:           rand.New(rand.NewSource(seed)),
		Tuning:         &tuning,
		Style:          &w.style,
		BurstThreshold: w.cfg.Audio.BurstThreshold,
		BurstCooldown:  w.cfg.Audio.BurstCooldown,
		Logger:         w.logger,
	}
	if w.sound != nil {
		opts.OnBurst = w.sound.PlayChime
	}
	bg, err := background.Mount(opts)
	if err != nil {
		if errors.Is(err, field.ErrInvalidViewport) {
			w.logger.Debug("window not measured yet", zap.Int("width", w.width), zap.Int("height", w.height))
			return
		}
		w.logger.Error("mount failed", zap.Error(err))
		return
	}
	w.bg = bg
	w.logger.Info("background mounted", zap.Stringer("id", bg.ID()), zap.Int("width", w.width), zap.Int("height", w.height))
}

func (w *window) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if w.bg == nil {
		w.mount()
	} else if w.resized {
		w.events.DispatchResize(engine.ResizeEvent{Width: float64(w.width), Height: float64(w.height)})
	}
	w.resized = false

	if x, y := ebiten.CursorPosition(); x != w.cursorX || y != w.cursorY {
		w.cursorX, w.cursorY = x, y
		w.events.DispatchPointer(engine.PointerEvent{X: float64(x), Y: float64(y)})
	}

	w.loop.Step(time.Now())
	return nil
}

// Draw replays the last recorded frame, shadow ring first then the dot
func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(w.frame.Background.NRGBA(1))
	for _, c := range w.frame.Circles {
		x, y := float32(c.X), float32(c.Y)
		if c.ShadowBlur > 0 && c.ShadowAlpha > 0 {
			vector.DrawFilledCircle(screen, x, y, float32(c.Radius+c.ShadowBlur/2), c.Shadow.NRGBA(c.ShadowAlpha*c.Opacity/2), true)
		}
		vector.DrawFilledCircle(screen, x, y, float32(c.Radius), c.Fill.NRGBA(c.Opacity), true)
	}
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.resized = true
	}
	return outsideWidth, outsideHeight
}

func (w *window) dispose() {
	if w.bg != nil {
		w.bg.Dispose()
	}
}

func run(cfg config.Config, logger *zap.Logger, width, height int) error {
	var sound *audio.SoundManager
	if cfg.Audio.Enabled {
		sound = audio.NewSoundManager(cfg.Chime(), logger)
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio initialization failed", zap.Error(err))
			sound = nil
		} else {
			defer sound.Cleanup()
		}
	}

	w, err := newWindow(cfg, logger, sound)
	if err != nil {
		return err
	}
	defer w.dispose()

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("motionfield")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func main() {
	var (
		configPath    string
		debug         bool
		width, height int
	)
	cmd := &cobra.Command{
		Use:          "motionfield-window",
		Short:        "Particle background in a desktop window",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debug") {
				cfg.Log.Debug = debug
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, closeLog, err := logging.Setup(logging.Options{Debug: cfg.Log.Debug, Dir: cfg.Log.Dir})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer closeLog()
			return run(cfg, logger, width, height)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().BoolVar(&debug, "debug", false, "write debug logs to the log directory")
	cmd.Flags().IntVar(&width, "width", 1280, "initial window width")
	cmd.Flags().IntVar(&height, "height", 720, "initial window height")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
