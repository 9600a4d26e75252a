package rendering

// DisplayList is a frozen sequence of canvas calls that can be replayed onto
// any Canvas.
type DisplayList struct {
	steps []func(Canvas)
	size  Size
}

// Paint replays the list onto canvas in recording order.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, step := range d.steps {
		step(canvas)
	}
}

// Size is the canvas size the list was recorded against.
func (d *DisplayList) Size() Size { return d.size }

// Len reports how many calls were recorded.
func (d *DisplayList) Len() int { return len(d.steps) }

// PictureRecorder captures canvas calls into a DisplayList.
type PictureRecorder struct {
	steps  []func(Canvas)
	size   Size
	active bool
}

// BeginRecording discards any previous recording and returns a canvas whose
// calls are captured until EndRecording.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.steps, r.size, r.active = nil, size, true
	return &recorderCanvas{r: r}
}

// EndRecording freezes the captured calls. Without a matching
// BeginRecording it returns an empty list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	list := &DisplayList{size: r.size}
	if r.active {
		list.steps = r.steps
	}
	r.steps, r.active = nil, false
	return list
}

func (r *PictureRecorder) record(step func(Canvas)) {
	if r.active {
		r.steps = append(r.steps, step)
	}
}

type recorderCanvas struct {
	r *PictureRecorder
}

func (c *recorderCanvas) Save()    { c.r.record(Canvas.Save) }
func (c *recorderCanvas) Restore() { c.r.record(Canvas.Restore) }
func (c *recorderCanvas) Size() Size {
	return c.r.size
}

func (c *recorderCanvas) Translate(dx, dy float64) {
	c.r.record(func(dst Canvas) { dst.Translate(dx, dy) })
}

func (c *recorderCanvas) Scale(sx, sy float64) {
	c.r.record(func(dst Canvas) { dst.Scale(sx, sy) })
}

func (c *recorderCanvas) ClipRect(rect Rect) {
	c.r.record(func(dst Canvas) { dst.ClipRect(rect) })
}

func (c *recorderCanvas) Clear(color Color) {
	c.r.record(func(dst Canvas) { dst.Clear(color) })
}

func (c *recorderCanvas) DrawRect(rect Rect, paint Paint) {
	c.r.record(func(dst Canvas) { dst.DrawRect(rect, paint) })
}

func (c *recorderCanvas) DrawText(layout *TextLayout, position Offset, paint Paint) {
	c.r.record(func(dst Canvas) { dst.DrawText(layout, position, paint) })
}
