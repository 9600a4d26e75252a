package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/flipclock/pkg/errors"
	"github.com/go-drift/flipclock/pkg/rendering"
	"github.com/go-drift/flipclock/pkg/theme"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	r, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Theme != theme.DefaultFlipTheme() {
		t.Errorf("theme = %+v, want defaults", r.Theme)
	}
	if r.Width != DefaultCanvasWidth || r.Height != DefaultCanvasHeight {
		t.Errorf("canvas = %dx%d", r.Width, r.Height)
	}
}

func TestLoadOptionalFile(t *testing.T) {
	path := writeFile(t, "flipclock.yaml", `
version: v1.2.0
style:
  textColor: "#FF8800"
  textSize: 32
  fontWeight: normal
  padding:
    left: 2
    top: 4
  background: "#80102030"
animation:
  duration: 300ms
canvas:
  width: 80
  height: 40
`)
	cfg, err := LoadOptional(path)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	r, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	th := r.Theme
	if th.TextColor != rendering.Color(0xFFFF8800) {
		t.Errorf("TextColor = %v", th.TextColor)
	}
	if th.Background != rendering.Color(0x80102030) {
		t.Errorf("Background = %v", th.Background)
	}
	if th.TextSize != 32 || th.FontWeight != rendering.FontWeightNormal {
		t.Errorf("size/weight = %v/%v", th.TextSize, th.FontWeight)
	}
	if th.Padding != (rendering.EdgeInsets{Left: 2, Top: 4}) {
		t.Errorf("Padding = %+v", th.Padding)
	}
	if th.Duration != 300*time.Millisecond {
		t.Errorf("Duration = %v", th.Duration)
	}
	if r.Width != 80 || r.Height != 40 {
		t.Errorf("canvas = %dx%d", r.Width, r.Height)
	}
}

func TestLoadOptionalInvalidYAML(t *testing.T) {
	path := writeFile(t, "flipclock.yaml", "style: [unclosed")
	if _, err := LoadOptional(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{Style: StyleConfig{TextColor: "#000000", TextSize: 10}}
	err := ApplyEnv(cfg, envMap(map[string]string{
		EnvTextColor:  "#00FF00",
		EnvTextSize:   " 64 ",
		EnvDuration:   "1s",
		EnvFontWeight: "Semibold",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	r, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Theme.TextColor != rendering.Color(0xFF00FF00) || r.Theme.TextSize != 64 {
		t.Errorf("theme = %+v", r.Theme)
	}
	if r.Theme.Duration != time.Second || r.Theme.FontWeight != rendering.FontWeightSemibold {
		t.Errorf("theme = %+v", r.Theme)
	}
}

func TestApplyEnvInvalidSize(t *testing.T) {
	err := ApplyEnv(&Config{}, envMap(map[string]string{EnvTextSize: "huge"}))
	var ce *errors.ConfigError
	if !stderrors.As(err, &ce) || ce.Key != EnvTextSize || ce.Source != "env" {
		t.Fatalf("err = %v, want ConfigError for %s", err, EnvTextSize)
	}
}

func TestApplyEnvReportsVariable(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvTextColor, "green"},
		{EnvBackground, "#12"},
		{EnvFontWeight, "heavy"},
		{EnvDuration, "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := &Config{}
			err := ApplyEnv(cfg, envMap(map[string]string{tt.key: tt.value}))
			var ce *errors.ConfigError
			if !stderrors.As(err, &ce) {
				t.Fatalf("err = %v, want ConfigError", err)
			}
			if ce.Source != "env" || ce.Key != tt.key || ce.Value != tt.value {
				t.Errorf("ConfigError = %+v, want env %s=%q", ce, tt.key, tt.value)
			}
			if *cfg != (Config{}) {
				t.Errorf("rejected value was applied: %+v", cfg)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		key  string
	}{
		{"bad color", Config{Style: StyleConfig{TextColor: "red"}}, "style.textColor"},
		{"transparent text", Config{Style: StyleConfig{TextColor: "#00000000"}}, "style.textColor"},
		{"bad background", Config{Style: StyleConfig{Background: "#12"}}, "style.background"},
		{"bad weight", Config{Style: StyleConfig{FontWeight: "heavy"}}, "style.fontWeight"},
		{"bad duration", Config{Animation: AnimationConfig{Duration: "soon"}}, "animation.duration"},
		{"bad version", Config{Version: "one"}, "version"},
		{"future version", Config{Version: "v2.0.0"}, "version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			_, err := Resolve(&cfg)
			var ce *errors.ConfigError
			if !stderrors.As(err, &ce) || ce.Key != tt.key {
				t.Errorf("err = %v, want ConfigError for %s", err, tt.key)
			}
		})
	}

	negative := &Config{Style: StyleConfig{TextSize: -1}}
	if _, err := Resolve(negative); err == nil {
		t.Error("negative text size should fail validation")
	}
	if _, err := Resolve(&Config{Canvas: CanvasConfig{Width: -5}}); err == nil {
		t.Error("negative canvas width should fail")
	}
}

func TestVersionWithoutPrefix(t *testing.T) {
	if _, err := Resolve(&Config{Version: "1"}); err != nil {
		t.Errorf("Resolve(version 1): %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := writeFile(t, "test.env", "FLIPCLOCK_TEXT_SIZE=20\n")
	t.Setenv(EnvTextSize, "")
	os.Unsetenv(EnvTextSize)

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv(EnvTextSize); got != "20" {
		t.Errorf("%s = %q, want 20", EnvTextSize, got)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("explicit missing env file should fail")
	}
}

func TestLoad(t *testing.T) {
	cfgPath := writeFile(t, "flipclock.yaml", "style:\n  textSize: 30\n")
	envPath := writeFile(t, "test.env", "FLIPCLOCK_DURATION=450ms\n")
	t.Setenv(EnvDuration, "")
	os.Unsetenv(EnvDuration)
	t.Setenv(EnvTextSize, "40")

	r, err := Load(cfgPath, envPath, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The process environment wins over the file.
	if r.Theme.TextSize != 40 {
		t.Errorf("TextSize = %v, want 40", r.Theme.TextSize)
	}
	if r.Theme.Duration != 450*time.Millisecond {
		t.Errorf("Duration = %v, want 450ms", r.Theme.Duration)
	}
}

func TestLoadOverrideWins(t *testing.T) {
	cfgPath := writeFile(t, "flipclock.yaml", "style:\n  textSize: 30\n")
	t.Setenv(EnvTextSize, "40")

	r, err := Load(cfgPath, "", func(cfg *Config) { cfg.Style.TextSize = 50 })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Theme.TextSize != 50 {
		t.Errorf("TextSize = %v, want override 50", r.Theme.TextSize)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	r, err := Resolve(&Config{Style: StyleConfig{FontWeight: "500", TextColor: "#11223344"}})
	if err != nil {
		t.Fatal(err)
	}
	data, err := r.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, data)
	}
	back, err := Resolve(&cfg)
	if err != nil {
		t.Fatalf("Resolve: %v\n%s", err, data)
	}
	if back.Theme != r.Theme || back.Width != r.Width || back.Height != r.Height {
		t.Errorf("round trip = %+v, want %+v", back, r)
	}
}
