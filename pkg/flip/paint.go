package flip

import (
	"github.com/go-drift/flipclock/pkg/animation"
	"github.com/go-drift/flipclock/pkg/errors"
	"github.com/go-drift/flipclock/pkg/rendering"
)

// baselineNudge moves the baseline down so digits look optically centered.
const baselineNudge = 2

// Half selects the upper or lower half of a glyph.
type Half int

const (
	HalfUpper Half = iota
	HalfLower
)

func (h Half) String() string {
	if h == HalfUpper {
		return "upper"
	}
	return "lower"
}

// Paint draws the digit for the current frame and advances the transition.
// While a transition is running it requests exactly one more frame.
func (d *Digit) Paint(canvas rendering.Canvas) {
	s := &d.state
	if !s.hasTarget {
		return
	}
	if !s.hasCurrent || s.current == s.target {
		s.settle()
		d.drawValue(canvas, s.current)
		return
	}

	if s.phase != PhaseInFlight {
		s.begin(d.clock.Now())
		d.drawValue(canvas, s.current)
		d.scheduler.ScheduleFrame()
		return
	}

	progress := animation.Progress(d.clock.Now().Sub(s.start), d.duration)
	switch {
	case progress >= 1:
		s.settle()
		d.drawValue(canvas, s.current)
		return
	case progress < 0.5:
		d.drawHalf(canvas, s.current, HalfUpper, 1-2*progress)
		d.drawHalf(canvas, s.current, HalfLower, 1)
	default:
		d.drawHalf(canvas, s.target, HalfUpper, 1)
		d.drawHalf(canvas, s.target, HalfLower, 2*(progress-0.5))
	}
	d.scheduler.ScheduleFrame()
}

// drawValue draws both halves of value unscaled.
func (d *Digit) drawValue(canvas rendering.Canvas, value int) {
	d.drawHalf(canvas, value, HalfLower, 1)
	d.drawHalf(canvas, value, HalfUpper, 1)
}

// drawHalf draws one half of value, clipped to its side of the vertical
// midpoint and scaled vertically around it. Scale is clamped to [0, 1]; a
// zero scale draws nothing. Canvas state is restored even if drawing panics.
func (d *Digit) drawHalf(canvas rendering.Canvas, value int, half Half, scale float64) {
	scale = animation.Clamp01(scale)
	if scale == 0 {
		return
	}
	layout, err := d.layout(value)
	if err != nil {
		errors.Report(&errors.FlipError{Op: "flip.drawHalf", Kind: errors.KindRender, Err: err})
		return
	}

	size := canvas.Size()
	mid := size.Height / 2
	clip := d.style.Padding.Deflate(size)
	color := d.style.TextColor
	if half == HalfUpper {
		clip.Bottom = mid
		color = d.textColorDark
	} else {
		clip.Top = mid
	}

	canvas.Save()
	defer canvas.Restore()
	canvas.ClipRect(clip)
	rendering.ScaleAt(canvas, 1, scale, rendering.Offset{X: 0, Y: mid})

	origin := rendering.Offset{
		X: (size.Width - layout.Size.Width) / 2,
		Y: (size.Height+d.textHeight)/2 - baselineNudge,
	}
	canvas.DrawText(layout, origin, rendering.PaintColor(color))
}
