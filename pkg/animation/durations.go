// Package animation provides the timing primitives used by flipclock widgets:
// an injectable [Clock], the default transition duration and progress math.
//
// Widgets never read the wall clock directly. A host passes a Clock at
// construction, so an offline renderer can step a [ManualClock] one frame at
// a time and get byte-identical output on every run:
//
//	clock := animation.NewManualClock(time.Time{})
//	eng := engine.New(engine.WithClock(clock))
//	th := theme.DefaultFlipTheme()
//	th.Duration = animation.DurationShort
//	digit, _ := flip.New(flip.Config{Theme: th, Clock: clock, Scheduler: eng})
//	eng.SetRoot(digit)
//	digit.SetValue(7)
//	for eng.NeedsFrame() {
//	    eng.StepFrame(canvas)
//	    clock.Advance(time.Second / 60)
//	}
package animation

import "time"

// DurationShort matches the platform "short" animation time used by flip
// transitions when none is configured.
const DurationShort = 200 * time.Millisecond

// Progress returns elapsed/duration. It is not clamped: callers compare the
// raw value against their phase boundaries. A non-positive duration yields 1
// so the animation completes immediately instead of dividing by zero.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return float64(elapsed) / float64(duration)
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	default:
		return 0
	}
}
