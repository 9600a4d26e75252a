package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/flipclock/pkg/rendering"
	"github.com/go-drift/flipclock/pkg/widgets"
)

// countdownBox paints a rect and keeps asking for frames until remaining hits zero.
type countdownBox struct {
	remaining int
	scheduler widgets.FrameScheduler
}

func (b *countdownBox) Paint(canvas rendering.Canvas) {
	size := canvas.Size()
	canvas.DrawRect(rendering.RectFromLTWH(0, 0, size.Width, size.Height), rendering.PaintColor(rendering.ColorBlue))
	if b.remaining > 0 {
		b.remaining--
		b.scheduler.ScheduleFrame()
	}
}

func TestWidgetTester_PumpWidget(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.SetSize(rendering.Size{Width: 40, Height: 20})
	box := &countdownBox{scheduler: tester.Scheduler()}

	ops := tester.PumpWidget(box)
	if len(ops) != 1 || ops[0].Op != "drawRect" {
		t.Fatalf("ops = %+v, want one drawRect", ops)
	}
	if tester.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", tester.Frames())
	}
}

func TestWidgetTester_PumpAndSettle(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	box := &countdownBox{remaining: 3, scheduler: tester.Scheduler()}
	tester.PumpWidget(box)

	start := tester.Clock().Now()
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatalf("PumpAndSettle: %v", err)
	}
	if tester.Frames() != 4 {
		t.Errorf("Frames = %d, want 4", tester.Frames())
	}
	if got := tester.Clock().Now().Sub(start); got != 3*FrameInterval {
		t.Errorf("clock advanced %v, want %v", got, 3*FrameInterval)
	}
}

func TestWidgetTester_PumpAndSettleTimeout(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	box := &countdownBox{remaining: 1000, scheduler: tester.Scheduler()}
	tester.PumpWidget(box)

	err := tester.PumpAndSettle(100 * time.Millisecond)
	if !errors.Is(err, ErrSettleTimeout) {
		t.Errorf("err = %v, want ErrSettleTimeout", err)
	}
}
