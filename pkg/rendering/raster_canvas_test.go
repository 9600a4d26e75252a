package rendering

import (
	"bytes"
	"image/png"
	"testing"
)

func alphaAt(c *RasterCanvas, x, y int) uint8 {
	return c.Image().RGBAAt(x, y).A
}

func TestRasterCanvas_ClipRect(t *testing.T) {
	c := NewRasterCanvas(10, 10)
	c.ClipRect(RectFromLTWH(0, 0, 10, 5))
	c.DrawRect(RectFromLTWH(0, 0, 10, 10), PaintColor(ColorRed))

	if got := c.Image().RGBAAt(5, 2); got.R != 255 || got.A != 255 {
		t.Errorf("inside clip = %+v, want opaque red", got)
	}
	if a := alphaAt(c, 5, 7); a != 0 {
		t.Errorf("outside clip alpha = %d, want 0", a)
	}
}

func TestRasterCanvas_ScaleAtPivot(t *testing.T) {
	c := NewRasterCanvas(10, 10)
	ScaleAt(c, 1, 0.5, Offset{X: 0, Y: 5})
	c.DrawRect(RectFromLTWH(0, 0, 10, 10), PaintColor(ColorRed))

	if a := alphaAt(c, 5, 1); a != 0 {
		t.Errorf("row 1 alpha = %d, want 0 after half scale", a)
	}
	if a := alphaAt(c, 5, 5); a != 255 {
		t.Errorf("pivot row alpha = %d, want 255", a)
	}
	if a := alphaAt(c, 5, 9); a != 0 {
		t.Errorf("row 9 alpha = %d, want 0 after half scale", a)
	}
}

func TestRasterCanvas_SaveRestore(t *testing.T) {
	c := NewRasterCanvas(10, 10)
	c.Save()
	c.ClipRect(RectFromLTWH(0, 0, 1, 1))
	c.Scale(0, 0)
	if c.SaveCount() != 1 {
		t.Fatalf("SaveCount = %d, want 1", c.SaveCount())
	}
	c.Restore()
	c.Restore() // unbalanced restore is ignored
	c.DrawRect(RectFromLTWH(0, 0, 10, 10), PaintColor(ColorBlue))
	if a := alphaAt(c, 9, 9); a != 255 {
		t.Errorf("alpha after restore = %d, want 255", a)
	}
}

func TestRasterCanvas_DegenerateScaleDrawsNothing(t *testing.T) {
	c := NewRasterCanvas(4, 4)
	c.Scale(1, 0)
	c.DrawRect(RectFromLTWH(0, 0, 4, 4), PaintColor(ColorRed))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if a := alphaAt(c, x, y); a != 0 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 0", x, y, a)
			}
		}
	}
}

func TestRasterCanvas_StrokeRect(t *testing.T) {
	c := NewRasterCanvas(10, 10)
	c.DrawRect(RectFromLTWH(0, 0, 10, 10), Paint{Color: ColorGreen, Style: PaintStyleStroke, StrokeWidth: 1})
	if a := alphaAt(c, 0, 5); a != 255 {
		t.Errorf("edge alpha = %d, want 255", a)
	}
	if a := alphaAt(c, 5, 5); a != 0 {
		t.Errorf("interior alpha = %d, want 0", a)
	}
}

func TestRasterCanvas_DrawTextRespectsClip(t *testing.T) {
	manager, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	layout, err := LayoutText("0", TextStyle{FontSize: 24, FontWeight: FontWeightBold}, manager)
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}

	c := NewRasterCanvas(32, 32)
	c.Save()
	c.ClipRect(RectFromLTWH(0, 0, 32, 16))
	c.DrawText(layout, Offset{X: 8, Y: 26}, PaintColor(ColorWhite))
	c.Restore()

	var above int
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			a := alphaAt(c, x, y)
			if a == 0 {
				continue
			}
			if y >= 16 {
				t.Fatalf("pixel (%d,%d) painted outside clip", x, y)
			}
			above++
		}
	}
	if above == 0 {
		t.Error("expected glyph ink above the clip edge")
	}
}

func TestRasterCanvas_ClearAndPNG(t *testing.T) {
	c := NewRasterCanvas(3, 2)
	c.Clear(ColorBlack)
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got := c.Size(); got != (Size{Width: 3, Height: 2}) {
		t.Errorf("Size = %+v", got)
	}
}
