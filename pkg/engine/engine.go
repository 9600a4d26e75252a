// Package engine hosts widgets headlessly. It coalesces frame requests,
// paints the root widget into a canvas on demand and keeps a trace of recent
// frames.
package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/flipclock/pkg/animation"
	"github.com/go-drift/flipclock/pkg/errors"
	"github.com/go-drift/flipclock/pkg/rendering"
	"github.com/go-drift/flipclock/pkg/widgets"
)

// ErrNoRoot is returned by StepFrame before SetRoot was called.
var ErrNoRoot = stderrors.New("engine: no root widget")

// Frame describes one painted frame.
type Frame struct {
	ID        uint64
	Timestamp time.Time
	Size      rendering.Size
	Duration  time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackground sets the color each frame is cleared to.
func WithBackground(color rendering.Color) Option {
	return func(e *Engine) { e.background.Store(uint32(color)) }
}

// WithPlatformScheduleFrame registers a callback invoked when a frame becomes
// pending, enabling on-demand scheduling instead of continuous polling.
func WithPlatformScheduleFrame(fn func()) Option {
	return func(e *Engine) { e.SetPlatformScheduleFrame(fn) }
}

// WithClock sets the clock used for frame timestamps.
func WithClock(clock animation.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithFrameTrace sets the trace buffer capacity and the duration above which a
// frame counts as dropped.
func WithFrameTrace(capacity int, threshold time.Duration) Option {
	return func(e *Engine) { e.trace = NewFrameTraceBuffer(capacity, threshold) }
}

// Engine drives a single root widget. It implements widgets.FrameScheduler so
// the root can be constructed with the engine as its scheduler.
type Engine struct {
	// frameLock serializes painting and root changes.
	frameLock sync.Mutex
	root      widgets.Widget

	background atomic.Uint32
	pending    atomic.Bool
	notify     atomic.Value // stores func()
	frameID    atomic.Uint64

	dispatchMu    sync.Mutex
	dispatchQueue []func()

	clock animation.Clock
	trace *FrameTraceBuffer
}

var _ widgets.FrameScheduler = (*Engine)(nil)

// New creates an engine with no root widget.
func New(opts ...Option) *Engine {
	e := &Engine{clock: animation.SystemClock{}}
	e.background.Store(uint32(rendering.ColorBlack))
	for _, opt := range opts {
		opt(e)
	}
	if e.trace == nil {
		e.trace = NewFrameTraceBuffer(0, 0)
	}
	return e
}

// SetPlatformScheduleFrame replaces the platform notify callback. Nil is
// ignored.
func (e *Engine) SetPlatformScheduleFrame(fn func()) {
	if fn == nil {
		return
	}
	e.notify.Store(fn)
}

func (e *Engine) notifyPlatform() {
	if fn, ok := e.notify.Load().(func()); ok && fn != nil {
		fn()
	}
}

// Background returns the clear color.
func (e *Engine) Background() rendering.Color {
	return rendering.Color(e.background.Load())
}

// SetRoot installs the widget painted by StepFrame and requests a frame.
func (e *Engine) SetRoot(root widgets.Widget) {
	e.frameLock.Lock()
	e.root = root
	e.frameLock.Unlock()
	e.ScheduleFrame()
}

// ScheduleFrame marks a frame as pending. It is safe to call from any
// goroutine. The platform callback fires only when the engine goes from idle
// to pending, so repeated requests before the next frame coalesce.
func (e *Engine) ScheduleFrame() {
	if e.pending.CompareAndSwap(false, true) {
		e.notifyPlatform()
	}
}

// NeedsFrame reports whether a frame is pending for an installed root.
func (e *Engine) NeedsFrame() bool {
	if !e.pending.Load() {
		return false
	}
	e.frameLock.Lock()
	defer e.frameLock.Unlock()
	return e.root != nil
}

// Dispatch queues callback to run on the frame goroutine at the start of the
// next frame and requests that frame. It is safe to call from any goroutine.
func (e *Engine) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	e.dispatchMu.Lock()
	e.dispatchQueue = append(e.dispatchQueue, callback)
	e.dispatchMu.Unlock()
	e.ScheduleFrame()
}

func (e *Engine) drainDispatchQueue() []func() {
	e.dispatchMu.Lock()
	callbacks := e.dispatchQueue
	e.dispatchQueue = nil
	e.dispatchMu.Unlock()
	return callbacks
}

// StepFrame consumes the pending request, runs dispatched callbacks, clears
// canvas to the background color and paints the root widget. A panic while
// painting is reported and returned as an *errors.PanicError; the canvas save
// stack is left balanced.
func (e *Engine) StepFrame(canvas rendering.Canvas) (frame *Frame, err error) {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()

	if e.root == nil {
		return nil, ErrNoRoot
	}
	e.pending.Store(false)

	start := time.Now()
	frame = &Frame{
		ID:        e.frameID.Add(1),
		Timestamp: e.clock.Now(),
		Size:      canvas.Size(),
	}

	defer func() {
		if r := recover(); r != nil {
			perr := errors.NewPanicError("engine.StepFrame", r)
			errors.ReportPanic(perr)
			frame, err = nil, perr
		}
	}()

	for _, cb := range e.drainDispatchQueue() {
		cb()
	}

	canvas.Clear(e.Background())
	paintRoot(canvas, e.root)

	frame.Duration = time.Since(start)
	e.trace.Add(FrameSample{
		ID:        frame.ID,
		Timestamp: frame.Timestamp.UnixMilli(),
		FrameMs:   durationToMillis(frame.Duration),
		Pending:   e.pending.Load(),
	}, frame.Duration)
	return frame, nil
}

func paintRoot(canvas rendering.Canvas, root widgets.Widget) {
	canvas.Save()
	defer canvas.Restore()
	root.Paint(canvas)
}

// Run paints frames into canvas on every tick of interval while a frame is
// pending, handing each painted frame to sink. Frames that fail are reported
// and skipped. Run returns ctx.Err() when ctx is done.
func (e *Engine) Run(ctx context.Context, interval time.Duration, canvas rendering.Canvas, sink func(*Frame)) error {
	if interval <= 0 {
		return fmt.Errorf("engine: frame interval must be positive, got %v", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !e.NeedsFrame() {
				continue
			}
			frame, err := e.StepFrame(canvas)
			if err != nil {
				continue
			}
			if sink != nil {
				sink(frame)
			}
		}
	}
}

// Timeline returns the recent frame trace.
func (e *Engine) Timeline() FrameTimeline {
	return e.trace.Snapshot()
}
