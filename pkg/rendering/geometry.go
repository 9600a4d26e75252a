package rendering

import "math"

// Offset is a point or vector in pixels.
type Offset struct {
	X, Y float64
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned box given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromLTWH builds a Rect from its top-left corner and extent.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// IsEmpty reports whether r encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Intersect returns the overlap of r and o, or the zero Rect when they are
// disjoint.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// EdgeInsets is per-side padding.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// Deflate returns the area left inside a box of the given size once the
// insets are removed.
func (e EdgeInsets) Deflate(size Size) Rect {
	return Rect{Left: e.Left, Top: e.Top, Right: size.Width - e.Right, Bottom: size.Height - e.Bottom}
}
