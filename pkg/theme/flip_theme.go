// Package theme holds the documented defaults a host resolves before
// constructing flip widgets. Widgets never look these up themselves.
package theme

import (
	"fmt"
	"time"

	"github.com/go-drift/flipclock/pkg/animation"
	"github.com/go-drift/flipclock/pkg/rendering"
)

// Documented defaults for flip digits.
const (
	// DefaultTextSize is the glyph size in canvas pixels.
	DefaultTextSize = 48.0
	// DefaultTextColor is the lower-half glyph color. The upper half is drawn
	// with DefaultTextColor.Darker(DarkenFactor).
	DefaultTextColor = rendering.Color(0xFFFFFFFF)
	// DefaultBackground fills the card behind the glyph.
	DefaultBackground = rendering.Color(0xFF202020)
	// DarkenFactor scales each RGB channel of the upper half color.
	DarkenFactor = 0.8
)

// FlipThemeData is the StyleConfig of a flip digit plus the host-side values
// that frame it. It is immutable once handed to a widget.
type FlipThemeData struct {
	// TextColor is the base glyph color. Zero is treated as unset.
	TextColor rendering.Color
	// TextSize is the font size in canvas pixels.
	TextSize float64
	// FontFamily selects a registered family. Empty uses the bundled Go font.
	FontFamily string
	// FontWeight defaults to bold.
	FontWeight rendering.FontWeight
	// Padding insets the clip rectangles of both halves.
	Padding rendering.EdgeInsets
	// Background is painted by the host before the widget.
	Background rendering.Color
	// Duration is the length of one flip transition.
	Duration time.Duration
}

// DefaultFlipTheme returns the documented defaults.
func DefaultFlipTheme() FlipThemeData {
	return FlipThemeData{
		TextColor:  DefaultTextColor,
		TextSize:   DefaultTextSize,
		FontFamily: rendering.DefaultFontFamily,
		FontWeight: rendering.FontWeightBold,
		Background: DefaultBackground,
		Duration:   animation.DurationShort,
	}
}

// TextColorDark returns the upper-half color derived from TextColor.
func (t FlipThemeData) TextColorDark() rendering.Color {
	return t.TextColor.Darker(DarkenFactor)
}

// TextStyle returns the text style glyphs are laid out with.
func (t FlipThemeData) TextStyle() rendering.TextStyle {
	return rendering.TextStyle{
		FontFamily: t.FontFamily,
		FontSize:   t.TextSize,
		FontWeight: t.FontWeight,
	}
}

// Validate reports values no widget can render.
func (t FlipThemeData) Validate() error {
	if t.TextSize <= 0 {
		return fmt.Errorf("text size must be positive, got %v", t.TextSize)
	}
	if t.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %v", t.Duration)
	}
	p := t.Padding
	if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
		return fmt.Errorf("padding must not be negative, got %+v", p)
	}
	return nil
}
