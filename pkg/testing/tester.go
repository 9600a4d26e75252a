package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/flipclock/pkg/rendering"
	"github.com/go-drift/flipclock/pkg/widgets"
)

const (
	// DefaultTestWidth is the default canvas width for the test surface.
	DefaultTestWidth = 96
	// DefaultTestHeight is the default canvas height for the test surface.
	DefaultTestHeight = 96
	// FrameInterval is the clock step PumpAndSettle takes between frames.
	FrameInterval = 16 * time.Millisecond
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: widget kept requesting frames")

// WidgetTester paints a widget frame by frame into a RecordingCanvas using a
// fake clock and a fake scheduler, the way a host would.
type WidgetTester struct {
	widget    widgets.Widget
	canvas    *RecordingCanvas
	clock     *FakeClock
	scheduler *FakeScheduler
	frames    int
	last      []DisplayOp
}

// NewWidgetTester creates a tester with the default surface size.
func NewWidgetTester() *WidgetTester {
	return &WidgetTester{
		canvas:    NewRecordingCanvas(rendering.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}),
		clock:     NewFakeClock(),
		scheduler: &FakeScheduler{},
	}
}

// NewWidgetTesterWithT creates a tester and fails the test if the widget
// leaves unbalanced Save calls behind.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(func() {
		if depth := tester.canvas.Depth(); depth != 0 {
			t.Errorf("canvas save depth = %d at cleanup, want 0", depth)
		}
	})
	return tester
}

// SetSize sets the canvas size reported to the widget.
func (t *WidgetTester) SetSize(size rendering.Size) {
	t.canvas.SetSize(size)
}

// Clock returns the fake clock for advancing time in tests.
func (t *WidgetTester) Clock() *FakeClock {
	return t.clock
}

// Scheduler returns the fake frame scheduler widgets should be built with.
func (t *WidgetTester) Scheduler() *FakeScheduler {
	return t.scheduler
}

// Canvas returns the recording canvas.
func (t *WidgetTester) Canvas() *RecordingCanvas {
	return t.canvas
}

// Frames returns the number of frames painted.
func (t *WidgetTester) Frames() int {
	return t.frames
}

// LastFrame returns the ops of the most recent frame.
func (t *WidgetTester) LastFrame() []DisplayOp {
	return t.last
}

// PumpWidget sets the widget under test and paints one frame.
func (t *WidgetTester) PumpWidget(widget widgets.Widget) []DisplayOp {
	t.widget = widget
	return t.Pump()
}

// Pump paints one frame regardless of pending requests and returns its ops.
func (t *WidgetTester) Pump() []DisplayOp {
	t.scheduler.Consume()
	t.canvas.Reset()
	if t.widget != nil {
		t.widget.Paint(t.canvas)
	}
	t.frames++
	t.last = append([]DisplayOp(nil), t.canvas.Ops()...)
	return t.last
}

// PumpAndSettle paints frames while the widget keeps requesting them,
// advancing the clock by FrameInterval before each one. It returns
// ErrSettleTimeout if frames are still requested after timeout.
func (t *WidgetTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for t.scheduler.Pending() {
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.clock.Advance(FrameInterval)
		elapsed += FrameInterval
		t.Pump()
	}
	return nil
}
