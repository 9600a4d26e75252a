package widgets

import "github.com/go-drift/flipclock/pkg/rendering"

// Widget is a drawable element owned by a host. The host constructs it with
// its configuration, then calls Paint on the render thread whenever a frame
// is drawn. Paint must not block.
type Widget interface {
	Paint(canvas rendering.Canvas)
}

// FrameScheduler is the host capability a widget uses to ask for another
// frame. ScheduleFrame must not paint synchronously: it requests one draw on
// the next display refresh, and repeated calls before that frame coalesce.
type FrameScheduler interface {
	ScheduleFrame()
}

// NopScheduler ignores frame requests. Hosts that repaint continuously can
// use it.
type NopScheduler struct{}

// ScheduleFrame does nothing.
func (NopScheduler) ScheduleFrame() {}
