// Package config loads flipclock.yaml and FLIPCLOCK_* environment overrides
// and resolves them into a theme and canvas settings.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/flipclock/pkg/errors"
	"github.com/go-drift/flipclock/pkg/rendering"
	"github.com/go-drift/flipclock/pkg/theme"
)

const (
	// DefaultFileName is the config file looked up when no path is given.
	DefaultFileName = "flipclock.yaml"
	// DefaultEnvFile is the env file loaded when no path is given.
	DefaultEnvFile = ".env"
	// SchemaVersion is the config schema this build understands. Files with
	// the same major version are accepted.
	SchemaVersion = "v1.0.0"

	DefaultCanvasWidth  = 64
	DefaultCanvasHeight = 64
)

// Environment variables applied on top of the file.
const (
	EnvTextColor  = "FLIPCLOCK_TEXT_COLOR"
	EnvTextSize   = "FLIPCLOCK_TEXT_SIZE"
	EnvDuration   = "FLIPCLOCK_DURATION"
	EnvFontWeight = "FLIPCLOCK_FONT_WEIGHT"
	EnvBackground = "FLIPCLOCK_BACKGROUND"
)

// Config represents the optional flipclock.yaml configuration.
type Config struct {
	Version   string          `yaml:"version,omitempty"`
	Style     StyleConfig     `yaml:"style"`
	Animation AnimationConfig `yaml:"animation"`
	Canvas    CanvasConfig    `yaml:"canvas"`
}

// StyleConfig contains the digit style attributes.
type StyleConfig struct {
	TextColor  string        `yaml:"textColor,omitempty"`
	TextSize   float64       `yaml:"textSize,omitempty"`
	FontFamily string        `yaml:"fontFamily,omitempty"`
	FontWeight string        `yaml:"fontWeight,omitempty"`
	Padding    PaddingConfig `yaml:"padding,omitempty"`
	Background string        `yaml:"background,omitempty"`
}

// PaddingConfig insets both half clip rectangles.
type PaddingConfig struct {
	Left   float64 `yaml:"left,omitempty"`
	Top    float64 `yaml:"top,omitempty"`
	Right  float64 `yaml:"right,omitempty"`
	Bottom float64 `yaml:"bottom,omitempty"`
}

// AnimationConfig contains transition settings.
type AnimationConfig struct {
	// Duration uses Go duration syntax, e.g. "300ms".
	Duration string `yaml:"duration,omitempty"`
}

// CanvasConfig sets the raster size in pixels.
type CanvasConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Theme  theme.FlipThemeData
	Width  int
	Height int
}

// LoadOptional reads the config file at path if present. An empty path reads
// DefaultFileName from the working directory.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. An empty path loads
// DefaultEnvFile if it exists; an explicit path must exist.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with FLIPCLOCK_* variables found by lookup. Each
// value is validated here so a bad one is reported against its variable
// rather than the config key it overrides. Blank variables are ignored.
func ApplyEnv(cfg *Config, env func(string) (string, bool)) error {
	lookup := func(key string) (string, bool) {
		v, ok := env(key)
		return v, ok && strings.TrimSpace(v) != ""
	}
	envErr := func(key, value string, err error) error {
		return &errors.ConfigError{Source: "env", Key: key, Value: value, Err: err}
	}
	if v, ok := lookup(EnvTextColor); ok {
		if _, err := rendering.ParseColor(v); err != nil {
			return envErr(EnvTextColor, v, err)
		}
		cfg.Style.TextColor = v
	}
	if v, ok := lookup(EnvTextSize); ok {
		size, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return envErr(EnvTextSize, v, err)
		}
		cfg.Style.TextSize = size
	}
	if v, ok := lookup(EnvDuration); ok {
		if _, err := time.ParseDuration(strings.TrimSpace(v)); err != nil {
			return envErr(EnvDuration, v, err)
		}
		cfg.Animation.Duration = v
	}
	if v, ok := lookup(EnvFontWeight); ok {
		if _, err := rendering.ParseFontWeight(strings.ToLower(strings.TrimSpace(v))); err != nil {
			return envErr(EnvFontWeight, v, err)
		}
		cfg.Style.FontWeight = v
	}
	if v, ok := lookup(EnvBackground); ok {
		if _, err := rendering.ParseColor(v); err != nil {
			return envErr(EnvBackground, v, err)
		}
		cfg.Style.Background = v
	}
	return nil
}

// Resolve validates cfg and fills unset values with the theme defaults.
func Resolve(cfg *Config) (*Resolved, error) {
	if err := checkVersion(cfg.Version); err != nil {
		return nil, err
	}

	th := theme.DefaultFlipTheme()
	s := cfg.Style

	if s.TextColor != "" {
		c, err := rendering.ParseColor(s.TextColor)
		if err != nil {
			return nil, &errors.ConfigError{Source: "config", Key: "style.textColor", Value: s.TextColor, Err: err}
		}
		// The digit reads a zero color as unset and would draw white.
		if c == rendering.ColorTransparent {
			return nil, &errors.ConfigError{
				Source: "config",
				Key:    "style.textColor",
				Value:  s.TextColor,
				Err:    fmt.Errorf("fully transparent text cannot be drawn"),
			}
		}
		th.TextColor = c
	}
	if s.Background != "" {
		c, err := rendering.ParseColor(s.Background)
		if err != nil {
			return nil, &errors.ConfigError{Source: "config", Key: "style.background", Value: s.Background, Err: err}
		}
		th.Background = c
	}
	if s.TextSize != 0 {
		th.TextSize = s.TextSize
	}
	if f := strings.TrimSpace(s.FontFamily); f != "" {
		th.FontFamily = f
	}
	weight, err := rendering.ParseFontWeight(strings.ToLower(strings.TrimSpace(s.FontWeight)))
	if err != nil {
		return nil, &errors.ConfigError{Source: "config", Key: "style.fontWeight", Value: s.FontWeight, Err: err}
	}
	th.FontWeight = weight
	th.Padding = rendering.EdgeInsets{
		Left:   s.Padding.Left,
		Top:    s.Padding.Top,
		Right:  s.Padding.Right,
		Bottom: s.Padding.Bottom,
	}
	if d := strings.TrimSpace(cfg.Animation.Duration); d != "" {
		dur, err := time.ParseDuration(d)
		if err != nil {
			return nil, &errors.ConfigError{Source: "config", Key: "animation.duration", Value: d, Err: err}
		}
		th.Duration = dur
	}
	if err := th.Validate(); err != nil {
		return nil, fmt.Errorf("invalid style: %w", err)
	}

	width, height := cfg.Canvas.Width, cfg.Canvas.Height
	if width == 0 {
		width = DefaultCanvasWidth
	}
	if height == 0 {
		height = DefaultCanvasHeight
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	return &Resolved{Theme: th, Width: width, Height: height}, nil
}

// Load reads the config file and env file, applies the process environment,
// then override (typically command-line flags, may be nil) and resolves the
// result.
func Load(path, envFile string, override func(*Config)) (*Resolved, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	return Resolve(cfg)
}

func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return &errors.ConfigError{Source: "config", Key: "version", Value: v, Err: fmt.Errorf("not a semantic version")}
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return &errors.ConfigError{
			Source: "config",
			Key:    "version",
			Value:  v,
			Err:    fmt.Errorf("unsupported schema, this build reads %s", semver.Major(SchemaVersion)),
		}
	}
	return nil
}

// File converts r back into the file representation, with every value
// spelled out.
func (r *Resolved) File() *Config {
	th := r.Theme
	return &Config{
		Version: SchemaVersion,
		Style: StyleConfig{
			TextColor:  th.TextColor.Hex(),
			TextSize:   th.TextSize,
			FontFamily: th.FontFamily,
			FontWeight: weightName(th.FontWeight),
			Padding: PaddingConfig{
				Left:   th.Padding.Left,
				Top:    th.Padding.Top,
				Right:  th.Padding.Right,
				Bottom: th.Padding.Bottom,
			},
			Background: th.Background.Hex(),
		},
		Animation: AnimationConfig{Duration: th.Duration.String()},
		Canvas:    CanvasConfig{Width: r.Width, Height: r.Height},
	}
}

// Marshal encodes r as yaml.
func (r *Resolved) Marshal() ([]byte, error) {
	return yaml.Marshal(r.File())
}

func weightName(w rendering.FontWeight) string {
	switch w {
	case rendering.FontWeightNormal, rendering.FontWeightSemibold, rendering.FontWeightBold:
		return w.String()
	}
	return strconv.Itoa(int(w))
}
