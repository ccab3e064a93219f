// Package field implements the particle field animator: a fixed set of drifting
// dots nudged by recent pointer velocity, damped every frame and wrapped at the
// viewport edges.
package field

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/motionfield/parameter"
	"github.com/lixenwraith/motionfield/physics"
	"github.com/lixenwraith/motionfield/render"
	"github.com/lixenwraith/motionfield/vmath"
)

var (
	// ErrInvalidViewport is returned for zero or negative viewport dimensions
	ErrInvalidViewport = errors.New("viewport dimensions must be positive")
	// ErrInvalidCount is returned for a zero or negative particle count
	ErrInvalidCount = errors.New("particle count must be positive")
)

// Particle is a single animated dot, Radius never changes after creation
type Particle struct {
	physics.Kinetic
	Radius float64
}

// PointerVelocity is the most recent inferred cursor velocity
type PointerVelocity struct {
	VX, VY float64
}

// Tuning holds the hand-tuned constants of the animation
type Tuning struct {
	RadiusMin        float64
	RadiusMax        float64
	InitialSpeed     float64
	PointerGain      float64
	PointerInfluence float64
	Jitter           float64
	Damping          float64
	PointerDecay     float64
}

// DefaultTuning returns the values the background was tuned with
func DefaultTuning() Tuning {
	return Tuning{
		RadiusMin:        parameter.ParticleRadiusMin,
		RadiusMax:        parameter.ParticleRadiusMax,
		InitialSpeed:     parameter.ParticleInitialSpeed,
		PointerGain:      parameter.PointerGain,
		PointerInfluence: parameter.PointerInfluence,
		Jitter:           parameter.ParticleJitter,
		Damping:          parameter.ParticleDamping,
		PointerDecay:     parameter.PointerDecay,
	}
}

// Option configures a Field at construction
type Option func(*Field)

// WithRand injects the random source used for seeding and per-frame jitter
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) {
		if rng != nil {
			f.rng = rng
		}
	}
}

// WithTuning overrides the default tuning constants
func WithTuning(t Tuning) Option {
	return func(f *Field) {
		f.tuning = t
	}
}

// WithStyle overrides the draw style
func WithStyle(s render.CircleStyle) Option {
	return func(f *Field) {
		f.style = s
	}
}

// Field owns the particles and the pointer velocity sample
// Not safe for concurrent use, all calls are expected on one loop goroutine
type Field struct {
	particles []Particle
	width     float64
	height    float64

	pointer      PointerVelocity
	lastX, lastY float64

	rng    *rand.Rand
	tuning Tuning
	style  render.CircleStyle
	frames uint64
}

// New creates a field of count particles scattered over a width x height viewport
func New(width, height float64, count int, opts ...Option) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("field %vx%v: %w", width, height, ErrInvalidViewport)
	}
	if count <= 0 {
		return nil, fmt.Errorf("field count %d: %w", count, ErrInvalidCount)
	}

	f := &Field{
		width:  width,
		height: height,
		lastX:  width / 2,
		lastY:  height / 2,
		tuning: DefaultTuning(),
		style:  render.DefaultCircleStyle(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f.particles = make([]Particle, count)
	for i := range f.particles {
		f.particles[i] = Particle{
			Kinetic: physics.Kinetic{
				X:    vmath.RandRange(f.rng, 0, width),
				Y:    vmath.RandRange(f.rng, 0, height),
				VelX: vmath.RandSigned(f.rng, f.tuning.InitialSpeed),
				VelY: vmath.RandSigned(f.rng, f.tuning.InitialSpeed),
			},
			Radius: vmath.RandRange(f.rng, f.tuning.RadiusMin, f.tuning.RadiusMax),
		}
	}
	return f, nil
}

// OnPointerMove records the displacement since the previous pointer position
// as the new pointer velocity sample
func (f *Field) OnPointerMove(x, y float64) {
	f.pointer.VX = (x - f.lastX) * f.tuning.PointerGain
	f.pointer.VY = (y - f.lastY) * f.tuning.PointerGain
	f.lastX = x
	f.lastY = y
}

// OnResize updates the wraparound bounds, particles keep their positions and
// drift into the new frame on their own
func (f *Field) OnResize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize %vx%v: %w", width, height, ErrInvalidViewport)
	}
	f.width = width
	f.height = height
	return nil
}

// Tick advances every particle by one frame and emits its draw instruction to s
// A nil surface advances the simulation without drawing
func (f *Field) Tick(s render.Surface) {
	t := &f.tuning
	if s != nil {
		s.Clear(f.style.Background)
	}

	for i := range f.particles {
		p := &f.particles[i]
		physics.ApplyImpulse(&p.Kinetic,
			f.pointer.VX*t.PointerInfluence+vmath.RandSigned(f.rng, t.Jitter),
			f.pointer.VY*t.PointerInfluence+vmath.RandSigned(f.rng, t.Jitter),
		)
		physics.Damp(&p.Kinetic, t.Damping)
		physics.Integrate(&p.Kinetic)
		physics.WrapBounds(&p.Kinetic, p.Radius, f.width, f.height)

		if s != nil {
			s.FillCircle(f.style.CircleAt(p.X, p.Y, p.Radius))
		}
	}

	f.pointer.VX *= t.PointerDecay
	f.pointer.VY *= t.PointerDecay
	f.frames++
}

// Len returns the particle count, constant for the field lifetime
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the particles in field order
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Pointer returns the current pointer velocity sample
func (f *Field) Pointer() PointerVelocity {
	return f.pointer
}

// Bounds returns the viewport used for wraparound
func (f *Field) Bounds() (width, height float64) {
	return f.width, f.height
}

// Frames returns the number of ticks since construction
func (f *Field) Frames() uint64 {
	return f.frames
}

// Tuning returns the active tuning constants
func (f *Field) Tuning() Tuning {
	return f.tuning
}
