package rendering

// Canvas is the drawing surface widgets paint onto. Implementations keep a
// stack of transform and clip states.
type Canvas interface {
	// Save pushes a copy of the current state; Restore pops it. An unmatched
	// Restore does nothing.
	Save()
	Restore()

	Translate(dx, dy float64)
	Scale(sx, sy float64)

	// ClipRect intersects the clip with rect, in local coordinates.
	ClipRect(rect Rect)

	// Clear overwrites every pixel with color regardless of clip or transform.
	Clear(color Color)

	DrawRect(rect Rect, paint Paint)

	// DrawText paints layout with its baseline starting at position.
	DrawText(layout *TextLayout, position Offset, paint Paint)

	// Size is the surface extent in pixels.
	Size() Size
}

// ScaleAt applies a (sx, sy) scale that keeps pivot in place.
func ScaleAt(canvas Canvas, sx, sy float64, pivot Offset) {
	canvas.Translate(pivot.X, pivot.Y)
	canvas.Scale(sx, sy)
	canvas.Translate(-pivot.X, -pivot.Y)
}
