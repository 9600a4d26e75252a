package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/flipclock/pkg/rendering"
)

// DisplayOp is one recorded canvas call with its rounded arguments.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Float returns a numeric parameter, or 0 if absent.
func (o DisplayOp) Float(key string) float64 {
	v, _ := o.Params[key].(float64)
	return v
}

// Text returns a string parameter, or "" if absent.
func (o DisplayOp) Text(key string) string {
	v, _ := o.Params[key].(string)
	return v
}

// RecordingCanvas implements rendering.Canvas and records ops as DisplayOp.
type RecordingCanvas struct {
	ops   []DisplayOp
	size  rendering.Size
	depth int

	// OnDrawText, when set, runs before a drawText op is recorded. Tests use
	// it to inject failures mid-paint.
	OnDrawText func(layout *rendering.TextLayout)
}

// NewRecordingCanvas returns an empty canvas reporting the given size.
func NewRecordingCanvas(size rendering.Size) *RecordingCanvas {
	return &RecordingCanvas{size: size}
}

// Ops returns the operations recorded since the last Reset.
func (c *RecordingCanvas) Ops() []DisplayOp {
	return c.ops
}

// Reset drops recorded ops. The save depth is kept so leaks stay visible.
func (c *RecordingCanvas) Reset() {
	c.ops = nil
}

// SetSize changes the size reported to widgets.
func (c *RecordingCanvas) SetSize(size rendering.Size) {
	c.size = size
}

// Depth returns the number of Save calls not yet matched by Restore.
func (c *RecordingCanvas) Depth() int {
	return c.depth
}

func (c *RecordingCanvas) record(op string, kv ...any) {
	var params map[string]any
	if len(kv) > 0 {
		params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			params[kv[i].(string)] = kv[i+1]
		}
	}
	c.ops = append(c.ops, DisplayOp{Op: op, Params: params})
}

func (c *RecordingCanvas) Save() {
	c.depth++
	c.record("save")
}

func (c *RecordingCanvas) Restore() {
	if c.depth > 0 {
		c.depth--
	}
	c.record("restore")
}

func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.record("translate", "dx", round2(dx), "dy", round2(dy))
}

func (c *RecordingCanvas) Scale(sx, sy float64) {
	c.record("scale", "sx", round4(sx), "sy", round4(sy))
}

func (c *RecordingCanvas) ClipRect(rect rendering.Rect) {
	c.record("clipRect", "rect", rectParams(rect))
}

func (c *RecordingCanvas) Clear(color rendering.Color) {
	c.record("clear", "color", colorHex(color))
}

func (c *RecordingCanvas) DrawRect(rect rendering.Rect, paint rendering.Paint) {
	c.record("drawRect", "rect", rectParams(rect), "color", colorHex(paint.Color))
}

func (c *RecordingCanvas) DrawText(layout *rendering.TextLayout, position rendering.Offset, paint rendering.Paint) {
	if c.OnDrawText != nil {
		c.OnDrawText(layout)
	}
	var text string
	if layout != nil {
		text = layout.Text
	}
	c.record("drawText",
		"text", text,
		"x", round2(position.X),
		"y", round2(position.Y),
		"color", colorHex(paint.Color))
}

func (c *RecordingCanvas) Size() rendering.Size { return c.size }

// OpsNamed returns the ops whose name is name, in order.
func OpsNamed(ops []DisplayOp, name string) []DisplayOp {
	var out []DisplayOp
	for _, op := range ops {
		if op.Op == name {
			out = append(out, op)
		}
	}
	return out
}

func rectParams(r rendering.Rect) map[string]any {
	return map[string]any{
		"left":   round2(r.Left),
		"top":    round2(r.Top),
		"right":  round2(r.Right),
		"bottom": round2(r.Bottom),
	}
}

func colorHex(c rendering.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// Positions keep two decimals; scale factors keep four so nearby frames
// stay distinguishable. Negative zero is folded into zero so golden files
// do not depend on the sign of an unused offset.
func round2(f float64) float64 { return roundTo(f, 100) }
func round4(f float64) float64 { return roundTo(f, 1e4) }

func roundTo(f, scale float64) float64 {
	r := math.Round(f*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}
