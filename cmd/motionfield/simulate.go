package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/motionfield/background"
	"github.com/lixenwraith/motionfield/config"
	"github.com/lixenwraith/motionfield/engine"
	"github.com/lixenwraith/motionfield/field"
	"github.com/lixenwraith/motionfield/physics"
	"github.com/lixenwraith/motionfield/render"
)

type simulateOptions struct {
	frames int
	width  float64
	height float64
	sweep  bool
}

// Report summarizes a headless run
type Report struct {
	Frames    uint64  `yaml:"frames"`
	Particles int     `yaml:"particles"`
	Seed      int64   `yaml:"seed"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MeanSpeed float64 `yaml:"mean_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
	PointerVX float64 `yaml:"pointer_vx"`
	PointerVY float64 `yaml:"pointer_vy"`
	InBounds  bool    `yaml:"in_bounds"`
	Bursts    int     `yaml:"bursts"`
	Drawn     int     `yaml:"drawn_last_frame"`
}

func newSimulateCmd(a *app) *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the field headless for a number of frames and print a YAML report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := simulate(cmd.Context(), a.cfg, opts, a.logger)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(report)
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.frames, "frames", 600, "number of frames to simulate")
	f.Float64Var(&opts.width, "width", 1280, "viewport width in pixels")
	f.Float64Var(&opts.height, "height", 720, "viewport height in pixels")
	f.BoolVar(&opts.sweep, "sweep", false, "move the pointer in a circle around the center")
	return cmd
}

// simulate drives a real loop with a synthetic frame source
func simulate(ctx context.Context, cfg config.Config, opts simulateOptions, logger *zap.Logger) (Report, error) {
	if opts.frames < 0 {
		return Report{}, fmt.Errorf("frames must not be negative, got %d", opts.frames)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	style, err := cfg.CircleStyle()
	if err != nil {
		return Report{}, err
	}

	frames := make(chan time.Time)
	loop := engine.NewLoop(engine.WithFrameSource(frames), engine.WithLogger(logger))
	events := engine.NewDispatcher()
	rec := render.NewRecorder()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go loop.Run(runCtx)
	defer func() {
		loop.Stop()
		<-loop.Done()
	}()

	// call runs fn on the loop goroutine and waits for it
	call := func(fn func()) error {
		done := make(chan struct{})
		if !loop.Post(func() { fn(); close(done) }) {
			return fmt.Errorf("loop stopped")
		}
		select {
		case <-done:
			return nil
		case <-loop.Done():
			return fmt.Errorf("loop stopped")
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var (
		bg       *background.Background
		mountErr error
		bursts   int
	)
	tuning := cfg.FieldTuning()
	if err := call(func() {
		bg, mountErr = background.Mount(background.Options{
			Width:          opts.width,
			Height:         opts.height,
			Count:          cfg.Particles,
			Scheduler:      loop,
			Events:         events,
			Surface:        rec,
			Rand:           newRand(cfg.Seed),
			Tuning:         &tuning,
			Style:          &style,
			OnBurst:        func(float64) { bursts++ },
			BurstThreshold: cfg.Audio.BurstThreshold,
			BurstCooldown:  cfg.Audio.BurstCooldown,
			Logger:         logger,
		})
	}); err != nil {
		return Report{}, err
	}
	if mountErr != nil {
		return Report{}, mountErr
	}

	cx, cy := opts.width/2, opts.height/2
	radius := math.Min(opts.width, opts.height) / 3
	for i := 0; i < opts.frames; i++ {
		if opts.sweep {
			angle := float64(i) * 2 * math.Pi / 120
			ev := engine.PointerEvent{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)}
			if err := call(func() { events.DispatchPointer(ev) }); err != nil {
				return Report{}, err
			}
		}
		select {
		case frames <- time.Now():
		case <-loop.Done():
			return Report{}, fmt.Errorf("loop stopped at frame %d", i)
		case <-ctx.Done():
			return Report{}, ctx.Err()
		}
	}

	var report Report
	if err := call(func() {
		report = buildReport(bg.Field(), cfg.Seed)
		report.Bursts = bursts
		report.Drawn = len(rec.Circles)
		bg.Dispose()
	}); err != nil {
		return Report{}, err
	}
	return report, nil
}

func buildReport(f *field.Field, seed int64) Report {
	w, h := f.Bounds()
	r := Report{
		Frames:    f.Frames(),
		Particles: f.Len(),
		Seed:      seed,
		Width:     w,
		Height:    h,
		InBounds:  true,
	}
	var total float64
	for _, p := range f.Particles() {
		s := physics.Speed(&p.Kinetic)
		total += s
		r.MaxSpeed = math.Max(r.MaxSpeed, s)
		if p.X < -p.Radius || p.X > w+p.Radius || p.Y < -p.Radius || p.Y > h+p.Radius {
			r.InBounds = false
		}
	}
	if n := f.Len(); n > 0 {
		r.MeanSpeed = total / float64(n)
	}
	ptr := f.Pointer()
	r.PointerVX, r.PointerVY = ptr.VX, ptr.VY
	return r
}
