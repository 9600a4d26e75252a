package rendering

import (
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// glyphPad leaves room for glyphs whose ink extends left of the pen origin.
const glyphPad = 2

// affine is a scale + translate transform: device = s*user + t.
type affine struct {
	sx, sy float64
	tx, ty float64
}

var identity = affine{sx: 1, sy: 1}

func (a affine) apply(x, y float64) (float64, float64) {
	return a.sx*x + a.tx, a.sy*y + a.ty
}

func (a affine) degenerate() bool {
	return a.sx == 0 || a.sy == 0
}

type rasterState struct {
	transform affine
	clip      image.Rectangle
}

// RasterCanvas is a software Canvas that paints into an *image.RGBA.
// Transforms are limited to translate and scale, which is all the widgets in
// this module use. It is not safe for concurrent use.
type RasterCanvas struct {
	img    *image.RGBA
	state  rasterState
	stack  []rasterState
	interp draw.Interpolator
}

// NewRasterCanvas allocates a transparent canvas of the given pixel size.
func NewRasterCanvas(width, height int) *RasterCanvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &RasterCanvas{
		img:    img,
		state:  rasterState{transform: identity, clip: img.Bounds()},
		interp: draw.BiLinear,
	}
}

// Image returns the backing image. It is reused across frames.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

// Reset drops any saved state and restores the identity transform and full clip.
func (c *RasterCanvas) Reset() {
	c.stack = c.stack[:0]
	c.state = rasterState{transform: identity, clip: c.img.Bounds()}
}

// SaveCount returns the depth of the save stack.
func (c *RasterCanvas) SaveCount() int {
	return len(c.stack)
}

func (c *RasterCanvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *RasterCanvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.state = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

func (c *RasterCanvas) Translate(dx, dy float64) {
	t := &c.state.transform
	t.tx += t.sx * dx
	t.ty += t.sy * dy
}

func (c *RasterCanvas) Scale(sx, sy float64) {
	t := &c.state.transform
	t.sx *= sx
	t.sy *= sy
}

func (c *RasterCanvas) ClipRect(rect Rect) {
	c.state.clip = c.state.clip.Intersect(c.deviceRect(rect))
}

func (c *RasterCanvas) Clear(color Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

func (c *RasterCanvas) DrawRect(rect Rect, paint Paint) {
	if c.state.transform.degenerate() {
		return
	}
	src := image.NewUniform(paint.Color.NRGBA())
	if paint.Style == PaintStyleStroke {
		w := paint.StrokeWidth
		if w <= 0 {
			w = 1
		}
		edges := []Rect{
			{Left: rect.Left, Top: rect.Top, Right: rect.Right, Bottom: rect.Top + w},
			{Left: rect.Left, Top: rect.Bottom - w, Right: rect.Right, Bottom: rect.Bottom},
			{Left: rect.Left, Top: rect.Top, Right: rect.Left + w, Bottom: rect.Bottom},
			{Left: rect.Right - w, Top: rect.Top, Right: rect.Right, Bottom: rect.Bottom},
		}
		for _, e := range edges {
			r := c.deviceRect(e).Intersect(c.state.clip)
			draw.Draw(c.img, r, src, image.Point{}, draw.Over)
		}
		return
	}
	r := c.deviceRect(rect).Intersect(c.state.clip)
	draw.Draw(c.img, r, src, image.Point{}, draw.Over)
}

// DrawText rasterizes the layout unscaled, then maps it through the current
// transform with bilinear sampling, so a vertical scale squashes the glyphs
// toward the pivot the way a flipping card does.
func (c *RasterCanvas) DrawText(layout *TextLayout, position Offset, paint Paint) {
	if layout == nil || layout.Face == nil || layout.Text == "" {
		return
	}
	t := c.state.transform
	if t.degenerate() || c.state.clip.Empty() {
		return
	}

	ascent := int(math.Ceil(layout.Ascent))
	height := ascent + int(math.Ceil(layout.Descent))
	width := int(math.Ceil(layout.Size.Width)) + 2*glyphPad
	if width <= 0 || height <= 0 {
		return
	}
	glyphs := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(paint.Color.NRGBA()),
		Face: layout.Face,
		Dot:  fixed.P(glyphPad, ascent),
	}
	drawer.DrawString(layout.Text)

	originX := position.X - glyphPad
	originY := position.Y - float64(ascent)
	aff := f64.Aff3{
		t.sx, 0, t.sx*originX + t.tx,
		0, t.sy, t.sy*originY + t.ty,
	}
	dst, ok := c.img.SubImage(c.state.clip).(*image.RGBA)
	if !ok {
		return
	}
	c.interp.Transform(dst, aff, glyphs, glyphs.Bounds(), draw.Over, nil)
}

func (c *RasterCanvas) Size() Size {
	b := c.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// WritePNG encodes the current canvas contents as PNG.
func (c *RasterCanvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// deviceRect maps a user-space rect through the current transform and snaps
// it to whole pixels.
func (c *RasterCanvas) deviceRect(r Rect) image.Rectangle {
	x0, y0 := c.state.transform.apply(r.Left, r.Top)
	x1, y1 := c.state.transform.apply(r.Right, r.Bottom)
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)),
	)
}
