// Package flip implements a split-flap style digit widget.
//
// A [Digit] shows one non-negative integer. When the value changes it plays a
// flip transition over a fixed duration: during the first half the upper half
// of the outgoing value folds down toward the vertical midpoint, during the
// second half the lower half of the incoming value unfolds from it. Each half
// is clipped to its side of the midpoint and scaled vertically around it.
//
// The widget owns no goroutines and never sleeps. The host paints it from a
// single render thread and supplies two capabilities at construction: a
// [animation.Clock] to measure transition progress and a
// [widgets.FrameScheduler] the widget uses to request the next frame while a
// transition is running.
//
//	digit, err := flip.New(flip.Config{
//	    Theme:     theme.DefaultFlipTheme(),
//	    Clock:     animation.SystemClock{},
//	    Scheduler: host,
//	})
//	digit.SetValue(5)
//	// host calls digit.Paint(canvas) on each frame it draws
package flip
