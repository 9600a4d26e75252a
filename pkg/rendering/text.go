package rendering

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/go-drift/flipclock/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16

	// DefaultFontFamily is the family name of the bundled Go fonts.
	DefaultFontFamily = "Go"

	// fontDPI keeps one font point equal to one canvas pixel.
	fontDPI = 72
)

// FontWeight represents a numeric font weight.
type FontWeight int

const (
	FontWeightNormal   FontWeight = 400
	FontWeightSemibold FontWeight = 600
	FontWeightBold     FontWeight = 700
)

// String returns the CSS-style name of the weight.
func (w FontWeight) String() string {
	switch w {
	case FontWeightNormal:
		return "normal"
	case FontWeightSemibold:
		return "semibold"
	case FontWeightBold:
		return "bold"
	default:
		return fmt.Sprintf("FontWeight(%d)", int(w))
	}
}

// isBold reports whether the weight selects the bold face of a family.
func (w FontWeight) isBold() bool {
	return w >= FontWeightSemibold
}

// ParseFontWeight accepts "normal", "semibold", "bold" or a numeric weight.
func ParseFontWeight(s string) (FontWeight, error) {
	switch s {
	case "", "bold":
		return FontWeightBold, nil
	case "normal", "regular":
		return FontWeightNormal, nil
	case "semibold":
		return FontWeightSemibold, nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 100 || n > 900 {
		return 0, fmt.Errorf("invalid font weight %q", s)
	}
	return FontWeight(n), nil
}

// TextStyle describes how text should be rendered.
type TextStyle struct {
	FontFamily string
	FontSize   float64
	FontWeight FontWeight
}

// TextLayout contains measured text metrics and a resolved font face.
// Face is shared through the FontManager cache and is not safe for
// concurrent use.
type TextLayout struct {
	Text    string
	Style   TextStyle
	Size    Size
	Ascent  float64
	Descent float64
	Face    font.Face
}

type fontKey struct {
	family string
	bold   bool
}

type faceKey struct {
	fontKey
	size float64
}

// FontManager manages font registration and caches sized faces.
type FontManager struct {
	mu          sync.RWMutex
	fonts       map[fontKey]*opentype.Font
	faces       map[faceKey]font.Face
	defaultName string
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with the bundled Go regular and bold
// faces registered as DefaultFontFamily.
func NewFontManager() (*FontManager, error) {
	manager := &FontManager{
		fonts:       make(map[fontKey]*opentype.Font),
		faces:       make(map[faceKey]font.Face),
		defaultName: DefaultFontFamily,
	}
	if err := manager.RegisterFont(DefaultFontFamily, FontWeightNormal, goregular.TTF); err != nil {
		return nil, err
	}
	if err := manager.RegisterFont(DefaultFontFamily, FontWeightBold, gobold.TTF); err != nil {
		return nil, err
	}
	return manager, nil
}

// DefaultFontManagerErr returns a shared font manager with the bundled fonts.
// It returns both the manager and any error that occurred during initialization.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.FlipError{
				Op:   "rendering.DefaultFontManager",
				Kind: errors.KindInit,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns the shared font manager, or nil on error.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// RegisterFont registers TrueType or OpenType data for a family. Weights at
// or above FontWeightSemibold register the bold face.
func (m *FontManager) RegisterFont(name string, weight FontWeight, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	key := fontKey{family: name, bold: weight.isBold()}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[key] = parsed
	for fk := range m.faces {
		if fk.fontKey == key {
			delete(m.faces, fk)
		}
	}
	return nil
}

// Face resolves a sized font face for the given style. Unknown families
// fall back to the default family; a missing bold face falls back to regular.
func (m *FontManager) Face(style TextStyle) (font.Face, error) {
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	family := style.FontFamily
	if family == "" {
		family = m.defaultName
	}
	key := faceKey{fontKey: fontKey{family: family, bold: style.FontWeight.isBold()}, size: size}

	m.mu.RLock()
	face, ok := m.faces[key]
	m.mu.RUnlock()
	if ok {
		return face, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	parsed := m.lookupLocked(key.fontKey)
	if parsed == nil {
		return nil, fmt.Errorf("no font registered for family %q", family)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %q %.1fpx: %w", family, size, err)
	}
	m.faces[key] = face
	return face, nil
}

func (m *FontManager) lookupLocked(key fontKey) *opentype.Font {
	candidates := []fontKey{
		key,
		{family: key.family},
		{family: m.defaultName, bold: key.bold},
		{family: m.defaultName},
	}
	for _, k := range candidates {
		if f, ok := m.fonts[k]; ok {
			return f
		}
	}
	return nil
}

// LayoutText measures the given text using the provided font manager.
func LayoutText(text string, style TextStyle, manager *FontManager) (*TextLayout, error) {
	if manager == nil {
		return nil, stderrors.New("font manager required")
	}
	face, err := manager.Face(style)
	if err != nil {
		return nil, err
	}
	if style.FontSize <= 0 {
		style.FontSize = defaultFontSize
	}
	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	width := fixedToFloat(font.MeasureString(face, text))
	return &TextLayout{
		Text:    text,
		Style:   style,
		Size:    Size{Width: width, Height: ascent + descent},
		Ascent:  ascent,
		Descent: descent,
		Face:    face,
	}, nil
}

// GlyphBounds returns the pixel-aligned ink bounds of text relative to its
// baseline origin. Top is negative for glyphs rising above the baseline.
func GlyphBounds(text string, style TextStyle, manager *FontManager) (Rect, error) {
	if manager == nil {
		return Rect{}, stderrors.New("font manager required")
	}
	face, err := manager.Face(style)
	if err != nil {
		return Rect{}, err
	}
	bounds, _ := font.BoundString(face, text)
	return Rect{
		Left:   float64(bounds.Min.X.Floor()),
		Top:    float64(bounds.Min.Y.Floor()),
		Right:  float64(bounds.Max.X.Ceil()),
		Bottom: float64(bounds.Max.Y.Ceil()),
	}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
