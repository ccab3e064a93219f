package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/motionfield/audio"
	"github.com/lixenwraith/motionfield/background"
	"github.com/lixenwraith/motionfield/config"
	"github.com/lixenwraith/motionfield/core"
	"github.com/lixenwraith/motionfield/engine"
	"github.com/lixenwraith/motionfield/render"
	"github.com/lixenwraith/motionfield/tilt"
	"github.com/lixenwraith/motionfield/vmath"
)

// newRand returns a seeded source, seed 0 picks a time based seed
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// applyColorMode steers tcell's truecolor detection before the screen is created
func applyColorMode(mode string) {
	switch mode {
	case "truecolor":
		os.Setenv("COLORTERM", "truecolor")
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}
}

// runTerminal renders the field on the terminal until q, Esc, Ctrl-C or ctx cancellation
func runTerminal(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	applyColorMode(cfg.ColorMode)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	core.SetCrashScreen(screen)
	defer core.SetCrashScreen(nil)
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	var sound *audio.SoundManager
	if cfg.Audio.Enabled {
		sound = audio.NewSoundManager(cfg.Chime(), logger)
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the field runs silently
			logger.Warn("audio initialization failed", zap.Error(err))
			sound = nil
		} else {
			defer sound.Cleanup()
		}
	}

	loop := engine.NewLoop(engine.WithFrameInterval(cfg.FrameInterval), engine.WithLogger(logger))
	host, err := newTerminalHost(screen, loop, cfg, sound, logger)
	if err != nil {
		return err
	}
	loop.Post(host.start)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer core.Recover()
		err := loop.Run(gctx)
		// Unblocks PollEvent in the poller
		screen.Fini()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer core.Recover()
		host.poll()
		host.shutdown()
		return nil
	})
	return g.Wait()
}

// terminalHost owns the screen side of the animation: canvas, events and the tilt card
// Every method except poll runs on the loop goroutine
type terminalHost struct {
	screen  tcell.Screen
	loop    *engine.Loop
	events  *engine.Dispatcher
	canvas  *render.Canvas
	metrics render.CellMetrics
	style   render.CircleStyle
	cfg     config.Config
	rng     *rand.Rand
	sound   *audio.SoundManager

	bg   *background.Background
	card *tilt.Tracker

	// presentID is requested after the background frame so each present shows the fresh tick
	presentID engine.FrameID

	logger *zap.Logger
}

func newTerminalHost(screen tcell.Screen, loop *engine.Loop, cfg config.Config, sound *audio.SoundManager, logger *zap.Logger) (*terminalHost, error) {
	style, err := cfg.CircleStyle()
	if err != nil {
		return nil, err
	}
	cols, rows := screen.Size()
	metrics := cfg.CellMetrics()
	return &terminalHost{
		screen:  screen,
		loop:    loop,
		events:  engine.NewDispatcher(),
		canvas:  render.NewCanvas(cols, rows, metrics),
		metrics: metrics,
		style:   style,
		cfg:     cfg,
		rng:     newRand(cfg.Seed),
		sound:   sound,
		card:    tilt.NewTracker(tilt.Rect{}, cfg.TiltPreset()),
		logger:  logger,
	}, nil
}

// start mounts the background and the present loop
func (h *terminalHost) start() {
	h.events.OnPointerMove(func(ev engine.PointerEvent) {
		h.card.Track(ev.X, ev.Y)
	})
	h.events.OnResize(func(ev engine.ResizeEvent) {
		h.layoutCard(ev.Width, ev.Height)
		if h.bg == nil && h.mount() {
			// The late mount requested its frame after present, put present back behind it
			h.loop.CancelFrame(h.presentID)
			h.presentID = h.loop.RequestFrame(h.present)
		}
	})
	cols, rows := h.canvas.Size()
	w, hgt := h.metrics.Viewport(cols, rows)
	h.layoutCard(w, hgt)
	h.mount()
	h.presentID = h.loop.RequestFrame(h.present)
}

// mount builds the background for the current viewport
// A zero-size terminal fails construction, the next resize retries
func (h *terminalHost) mount() bool {
	cols, rows := h.canvas.Size()
	w, hgt := h.metrics.Viewport(cols, rows)
	tuning := h.cfg.FieldTuning()

	opts := background.Options{
		Width:          w,
		Height:         hgt,
		Count:          h.cfg.Particles,
		Scheduler:      h.loop,
		Events:         h.events,
		Surface:        h.canvas,
		Rand:           h.rng,
		Tuning:         &tuning,
		Style:          &h.style,
		BurstThreshold: h.cfg.Audio.BurstThreshold,
		BurstCooldown:  h.cfg.Audio.BurstCooldown,
		Logger:         h.logger,
	}
	if h.sound != nil {
		opts.OnBurst = h.sound.PlayChime
	}

	bg, err := background.Mount(opts)
	if err != nil {
		h.logger.Debug("mount deferred until resize", zap.Error(err))
		return false
	}
	h.bg = bg
	h.logger.Info("background mounted", zap.Stringer("id", bg.ID()))
	return true
}

// layoutCard centers the tilt card at 40% x 30% of the viewport
func (h *terminalHost) layoutCard(w, hgt float64) {
	cw, ch := w*0.4, hgt*0.3
	h.card.SetBounds(tilt.Rect{Left: (w - cw) / 2, Top: (hgt - ch) / 2, Width: cw, Height: ch})
}

// present runs after the background tick of the same frame
func (h *terminalHost) present(now time.Time) {
	if h.bg == nil {
		h.canvas.Clear(h.style.Background)
	}
	h.drawCard()
	h.canvas.Present(h.screen)
	h.drawStatus()
	h.screen.Show()
	h.presentID = h.loop.RequestFrame(h.present)
}

// drawCard lights the card like a tilted panel: the edge turned toward the viewer is brighter
func (h *terminalHost) drawCard() {
	b := h.card.Bounds()
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	tf := h.card.Transform()
	maxTilt := h.cfg.Tilt.MaxTilt
	c0, r0 := h.metrics.PixelToCell(b.Left, b.Top)
	c1, r1 := h.metrics.PixelToCell(b.Left+b.Width, b.Top+b.Height)
	cx, cy := b.Center()

	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			x, y := h.metrics.CellCenter(col, row)
			light := 0.85
			if maxTilt > 0 {
				nx := (x - cx) / b.Width
				ny := (y - cy) / b.Height
				light += (nx*tf.RotateY + ny*tf.RotateX) / maxTilt * 0.15
			}
			h.canvas.Blend(col, row, render.RGBWhite, vmath.Clamp(light, 0, 1))
		}
	}
}

func (h *terminalHost) drawStatus() {
	_, rows := h.canvas.Size()
	if rows == 0 {
		return
	}
	status := " q quit | card: " + h.card.Transform().CSS()
	if h.bg != nil {
		p := h.bg.Field().Pointer()
		status = fmt.Sprintf(" particles %d | pointer %+.2f,%+.2f |%s", h.bg.Field().Len(), p.VX, p.VY, status)
	}
	render.DrawText(h.screen, 0, rows-1, status, h.style.Background, h.style.Fill)
}

// poll translates terminal events and posts them to the loop, returns on quit or screen close
func (h *terminalHost) poll() {
	for {
		ev := h.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return
			}
		case *tcell.EventMouse:
			col, row := ev.Position()
			x, y := h.metrics.CellCenter(col, row)
			h.loop.Post(func() {
				h.events.DispatchPointer(engine.PointerEvent{X: x, Y: y})
			})
		case *tcell.EventResize:
			cols, rows := ev.Size()
			h.loop.Post(func() { h.resize(cols, rows) })
		}
	}
}

func (h *terminalHost) resize(cols, rows int) {
	h.screen.Sync()
	h.canvas.Resize(cols, rows)
	w, hgt := h.metrics.Viewport(cols, rows)
	h.events.DispatchResize(engine.ResizeEvent{Width: w, Height: hgt})
}

// dispose tears the background down, used when the host stops
func (h *terminalHost) dispose() {
	if h.bg != nil {
		h.bg.Dispose()
	}
}

// shutdown disposes on the loop goroutine and stops it
// When the loop already exited (signal, ctx cancel) it disposes on the caller's goroutine
func (h *terminalHost) shutdown() {
	ran := make(chan struct{})
	posted := h.loop.Post(func() {
		h.dispose()
		close(ran)
		h.loop.Stop()
	})
	if posted {
		select {
		case <-ran:
			return
		case <-h.loop.Done():
		}
	} else {
		<-h.loop.Done()
	}
	h.dispose()
}
