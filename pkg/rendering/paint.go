package rendering

// PaintStyle selects between filling a shape and outlining it.
type PaintStyle uint8

const (
	PaintStyleFill PaintStyle = iota
	PaintStyleStroke
)

// Paint carries the color and style for a draw call. StrokeWidth applies to
// PaintStyleStroke only; a non-positive width draws a one pixel outline.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64
}

// PaintColor is a solid fill in c.
func PaintColor(c Color) Paint {
	return Paint{Color: c}
}
