package engine

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/motionfield/parameter"
)

// FrameID identifies a requested frame callback, zero is never issued
type FrameID uint64

// FrameFunc runs once on the next frame
type FrameFunc func(now time.Time)

// Loop is a single-goroutine event loop: posted tasks and frame callbacks never
// run concurrently with each other
// RequestFrame and CancelFrame must be called from tasks or frame callbacks
type Loop struct {
	tasks         chan func()
	frameInterval time.Duration
	frameSource   <-chan time.Time

	// Owned by the loop goroutine
	pending map[FrameID]FrameFunc
	current map[FrameID]FrameFunc
	nextID  FrameID

	frameCount atomic.Uint64
	running    atomic.Bool
	stopChan   chan struct{}
	stopOnce   sync.Once
	done       chan struct{}

	logger *zap.Logger
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithFrameInterval sets the ticker interval of the default frame source
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.frameInterval = d
		}
	}
}

// WithFrameSource replaces the ticker with an external frame signal
func WithFrameSource(ch <-chan time.Time) LoopOption {
	return func(l *Loop) {
		l.frameSource = ch
	}
}

// WithLogger attaches a logger
func WithLogger(logger *zap.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoop creates a stopped loop
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		tasks:         make(chan func(), parameter.TaskQueueSize),
		frameInterval: parameter.FrameInterval,
		pending:       make(map[FrameID]FrameFunc),
		current:       make(map[FrameID]FrameFunc),
		stopChan:      make(chan struct{}),
		done:          make(chan struct{}),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues fn to run on the loop goroutine, returns false once the loop stopped
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.stopChan:
		return false
	}
}

// RequestFrame schedules cb for the next frame
// Callbacks requested while a frame runs are deferred to the following frame
func (l *Loop) RequestFrame(cb FrameFunc) FrameID {
	l.nextID++
	l.pending[l.nextID] = cb
	return l.nextID
}

// CancelFrame drops a requested callback, unknown or already run ids are ignored
func (l *Loop) CancelFrame(id FrameID) {
	delete(l.pending, id)
	delete(l.current, id)
}

// PendingFrames returns the number of callbacks waiting for the next frame
func (l *Loop) PendingFrames() int {
	return len(l.pending)
}

// Frames returns the number of frames dispatched so far
func (l *Loop) Frames() uint64 {
	return l.frameCount.Load()
}

// Run processes tasks and frames until ctx is done or Stop is called
// Returns ctx.Err() on context cancellation, nil on Stop
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer close(l.done)

	frames := l.frameSource
	if frames == nil {
		ticker := time.NewTicker(l.frameInterval)
		defer ticker.Stop()
		frames = ticker.C
	}

	l.logger.Debug("loop started", zap.Duration("frame_interval", l.frameInterval))
	defer l.logger.Debug("loop stopped", zap.Uint64("frames", l.frameCount.Load()))

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case fn := <-l.tasks:
			fn()
		case now, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			l.runFrame(now)
		}
	}
}

// Step drains queued tasks and dispatches one frame on the caller's goroutine
// For hosts that own the frame clock, never combine with Run
func (l *Loop) Step(now time.Time) {
drain:
	for {
		select {
		case fn := <-l.tasks:
			fn()
		default:
			break drain
		}
	}
	l.runFrame(now)
}

// runFrame dispatches callbacks in request order
// A frame that arrives late simply runs late, there is no catch-up
func (l *Loop) runFrame(now time.Time) {
	l.frameCount.Add(1)
	if len(l.pending) == 0 {
		return
	}
	l.current, l.pending = l.pending, l.current

	ids := make([]FrameID, 0, len(l.current))
	for id := range l.current {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		// An earlier callback of this frame may have cancelled this one
		cb, ok := l.current[id]
		if !ok {
			continue
		}
		delete(l.current, id)
		cb(now)
	}
}

// Stop halts the loop, pending tasks and frames are dropped
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// Done is closed after Run returns
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
