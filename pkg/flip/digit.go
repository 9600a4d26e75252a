package flip

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-drift/flipclock/pkg/animation"
	"github.com/go-drift/flipclock/pkg/errors"
	"github.com/go-drift/flipclock/pkg/rendering"
	"github.com/go-drift/flipclock/pkg/theme"
	"github.com/go-drift/flipclock/pkg/widgets"
)

// measureGlyph is the glyph whose ink height centers every value vertically.
const measureGlyph = "0"

// maxCachedLayouts bounds the per-value text layout cache.
const maxCachedLayouts = 8

// Config configures a Digit. Zero fields take the documented defaults:
// theme.DefaultTextColor, theme.DefaultTextSize, bold weight,
// animation.DurationShort, animation.SystemClock, a no-op scheduler and the
// shared rendering.DefaultFontManager.
//
// Theme.TextColor 0 (#00000000) means unset, so fully transparent text is
// not expressible and becomes theme.DefaultTextColor. A transparent color
// with any other channel set, such as #00FFFFFF, is kept as given.
type Config struct {
	Theme     theme.FlipThemeData
	Clock     animation.Clock
	Scheduler widgets.FrameScheduler
	Fonts     *rendering.FontManager
}

// Digit is the flip digit widget. It is not safe for concurrent use: all
// methods must be called from the host's render thread.
type Digit struct {
	style         theme.FlipThemeData
	textStyle     rendering.TextStyle
	textColorDark rendering.Color
	textHeight    float64

	fonts     *rendering.FontManager
	clock     animation.Clock
	scheduler widgets.FrameScheduler
	duration  time.Duration

	state   displayState
	layouts map[int]*rendering.TextLayout
}

var _ widgets.Widget = (*Digit)(nil)

// New constructs a Digit with nothing to display. The darker upper-half color
// and the glyph height used for vertical centering are computed here once.
func New(cfg Config) (*Digit, error) {
	style := withDefaults(cfg.Theme)
	if err := style.Validate(); err != nil {
		return nil, &errors.FlipError{Op: "flip.New", Kind: errors.KindConfig, Err: err}
	}

	fonts := cfg.Fonts
	if fonts == nil {
		var err error
		fonts, err = rendering.DefaultFontManagerErr()
		if err != nil {
			return nil, &errors.FlipError{Op: "flip.New", Kind: errors.KindInit, Err: err}
		}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = animation.SystemClock{}
	}
	scheduler := cfg.Scheduler
	if scheduler == nil {
		scheduler = widgets.NopScheduler{}
	}

	textStyle := style.TextStyle()
	bounds, err := rendering.GlyphBounds(measureGlyph, textStyle, fonts)
	if err != nil {
		return nil, &errors.FlipError{
			Op:   "flip.New",
			Kind: errors.KindInit,
			Err:  fmt.Errorf("measure %q: %w", measureGlyph, err),
		}
	}

	return &Digit{
		style:         style,
		textStyle:     textStyle,
		textColorDark: style.TextColorDark(),
		textHeight:    bounds.Height(),
		fonts:         fonts,
		clock:         clock,
		scheduler:     scheduler,
		duration:      style.Duration,
		layouts:       make(map[int]*rendering.TextLayout),
	}, nil
}

func withDefaults(t theme.FlipThemeData) theme.FlipThemeData {
	if t.TextColor == 0 {
		t.TextColor = theme.DefaultTextColor
	}
	if t.TextSize == 0 {
		t.TextSize = theme.DefaultTextSize
	}
	if t.FontWeight == 0 {
		t.FontWeight = rendering.FontWeightBold
	}
	if t.Duration == 0 {
		t.Duration = animation.DurationShort
	}
	return t
}

// SetValue sets the value to display and requests a frame. Negative values
// are ignored. The transition clock starts on the next Paint, not here.
//
// Calling SetValue while a transition is running retargets it: the outgoing
// value and the running start time are kept.
func (d *Digit) SetValue(v int) {
	if v < 0 {
		return
	}
	d.state.setTarget(v)
	d.scheduler.ScheduleFrame()
}

// SetDuration overrides the transition duration. A non-positive duration
// completes transitions on the first frame after they start.
func (d *Digit) SetDuration(duration time.Duration) {
	d.duration = duration
}

// Duration returns the transition duration.
func (d *Digit) Duration() time.Duration {
	return d.duration
}

// Value returns the displayed value, and false before the first paint of a
// value.
func (d *Digit) Value() (int, bool) {
	return d.state.current, d.state.hasCurrent
}

// Target returns the most recently set value, and false if none was set.
func (d *Digit) Target() (int, bool) {
	return d.state.target, d.state.hasTarget
}

// Phase returns the transition phase.
func (d *Digit) Phase() Phase {
	return d.state.phase
}

// Animating reports whether the displayed value has not yet reached the target.
func (d *Digit) Animating() bool {
	s := d.state
	return s.hasTarget && s.hasCurrent && s.current != s.target
}

// Progress returns the unclamped progress of the running transition, or 0
// when no transition is in flight.
func (d *Digit) Progress() float64 {
	if d.state.phase != PhaseInFlight {
		return 0
	}
	return animation.Progress(d.clock.Now().Sub(d.state.start), d.duration)
}

// Style returns the resolved style.
func (d *Digit) Style() theme.FlipThemeData {
	return d.style
}

// TextColorDark returns the upper-half color.
func (d *Digit) TextColorDark() rendering.Color {
	return d.textColorDark
}

// TextHeight returns the ink height of "0" used for vertical centering.
func (d *Digit) TextHeight() float64 {
	return d.textHeight
}

func (d *Digit) layout(value int) (*rendering.TextLayout, error) {
	if l, ok := d.layouts[value]; ok {
		return l, nil
	}
	l, err := rendering.LayoutText(strconv.Itoa(value), d.textStyle, d.fonts)
	if err != nil {
		return nil, err
	}
	if len(d.layouts) >= maxCachedLayouts {
		clear(d.layouts)
	}
	d.layouts[value] = l
	return l, nil
}
