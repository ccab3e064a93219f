// Package background mounts a particle field onto a host: it subscribes to
// pointer and resize events, drives one tick per frame and tears everything
// down on Dispose.
package background

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/motionfield/engine"
	"github.com/lixenwraith/motionfield/field"
	"github.com/lixenwraith/motionfield/parameter"
	"github.com/lixenwraith/motionfield/render"
	"github.com/lixenwraith/motionfield/vmath"
)

// FrameScheduler is the request-next-frame primitive provided by the host
type FrameScheduler interface {
	RequestFrame(cb engine.FrameFunc) engine.FrameID
	CancelFrame(id engine.FrameID)
}

// EventSource is the host's pointer and resize dispatch
type EventSource interface {
	OnPointerMove(fn func(engine.PointerEvent)) engine.ListenerID
	OnResize(fn func(engine.ResizeEvent)) engine.ListenerID
	Remove(id engine.ListenerID) bool
}

// Options describes what to mount and where
type Options struct {
	Width, Height float64
	Count         int

	Scheduler FrameScheduler
	Events    EventSource
	Surface   render.Surface

	Rand   *rand.Rand
	Tuning *field.Tuning
	Style  *render.CircleStyle

	// OnBurst fires when the pointer sample speed rises past BurstThreshold
	OnBurst        func(speed float64)
	BurstThreshold float64
	BurstCooldown  int

	Logger *zap.Logger
}

// Background is a mounted particle field
// All methods run on the scheduler's loop goroutine
type Background struct {
	id     uuid.UUID
	field  *field.Field
	sched  FrameScheduler
	events EventSource
	surf   render.Surface

	frameID   engine.FrameID
	listeners []engine.ListenerID

	// generation is the cancellation token carried by every scheduled frame
	generation uint64
	disposed   bool

	onBurst        func(speed float64)
	burstThreshold float64
	burstCooldown  int
	burstArmed     bool
	lastBurst      uint64

	logger *zap.Logger
}

// Mount builds the field and starts the frame loop
// Construction errors are returned as is, the host retries once the viewport is measured
func Mount(opts Options) (*Background, error) {
	if opts.Scheduler == nil {
		return nil, fmt.Errorf("mount background: nil scheduler")
	}

	var fieldOpts []field.Option
	if opts.Rand != nil {
		fieldOpts = append(fieldOpts, field.WithRand(opts.Rand))
	}
	if opts.Tuning != nil {
		fieldOpts = append(fieldOpts, field.WithTuning(*opts.Tuning))
	}
	if opts.Style != nil {
		fieldOpts = append(fieldOpts, field.WithStyle(*opts.Style))
	}

	count := opts.Count
	if count == 0 {
		count = parameter.FieldDefaultCount
	}
	f, err := field.New(opts.Width, opts.Height, count, fieldOpts...)
	if err != nil {
		return nil, fmt.Errorf("mount background: %w", err)
	}

	b := &Background{
		id:             uuid.New(),
		field:          f,
		sched:          opts.Scheduler,
		events:         opts.Events,
		surf:           opts.Surface,
		onBurst:        opts.OnBurst,
		burstThreshold: opts.BurstThreshold,
		burstCooldown:  opts.BurstCooldown,
		burstArmed:     true,
		logger:         opts.Logger,
	}
	if b.burstThreshold <= 0 {
		b.burstThreshold = parameter.BurstThreshold
	}
	if b.burstCooldown <= 0 {
		b.burstCooldown = parameter.BurstCooldownFrames
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	b.logger = b.logger.With(zap.Stringer("background", b.id))

	if b.events != nil {
		b.listeners = append(b.listeners,
			b.events.OnPointerMove(b.handlePointer),
			b.events.OnResize(b.handleResize),
		)
	}
	b.schedule()

	b.logger.Debug("background mounted",
		zap.Float64("width", opts.Width),
		zap.Float64("height", opts.Height),
		zap.Int("count", count),
	)
	return b, nil
}

// schedule requests the next frame under the current generation
func (b *Background) schedule() {
	gen := b.generation
	b.frameID = b.sched.RequestFrame(func(now time.Time) {
		b.frame(gen)
	})
}

func (b *Background) frame(gen uint64) {
	if b.disposed || gen != b.generation {
		return
	}
	b.field.Tick(b.surf)
	b.checkBurst()
	b.schedule()
}

// checkBurst fires OnBurst on the rising edge of the pointer speed
func (b *Background) checkBurst() {
	if b.onBurst == nil {
		return
	}
	p := b.field.Pointer()
	// Decay has already been applied, compare against the pre-decay speed
	speed := vmath.Magnitude(p.VX, p.VY) / b.field.Tuning().PointerDecay
	if speed < b.burstThreshold {
		b.burstArmed = true
		return
	}
	if !b.burstArmed {
		return
	}
	// Any crossing consumes the edge, a crossing inside the cooldown is lost
	b.burstArmed = false
	frames := b.field.Frames()
	if b.lastBurst != 0 && frames-b.lastBurst < uint64(b.burstCooldown) {
		return
	}
	b.lastBurst = frames
	b.onBurst(speed)
}

func (b *Background) handlePointer(ev engine.PointerEvent) {
	if b.disposed {
		return
	}
	b.field.OnPointerMove(ev.X, ev.Y)
}

func (b *Background) handleResize(ev engine.ResizeEvent) {
	if b.disposed {
		return
	}
	if err := b.field.OnResize(ev.Width, ev.Height); err != nil {
		b.logger.Debug("resize ignored", zap.Error(err))
	}
}

// Dispose cancels the pending frame and detaches listeners, safe to call repeatedly
func (b *Background) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.generation++
	b.sched.CancelFrame(b.frameID)
	b.frameID = 0

	for _, id := range b.listeners {
		b.events.Remove(id)
	}
	b.listeners = nil

	b.logger.Debug("background disposed", zap.Uint64("frames", b.field.Frames()))
}

// Disposed reports whether Dispose ran
func (b *Background) Disposed() bool {
	return b.disposed
}

// Field exposes the animated field for inspection
func (b *Background) Field() *field.Field {
	return b.field
}

// ID returns the instance id used in logs
func (b *Background) ID() uuid.UUID {
	return b.id
}
