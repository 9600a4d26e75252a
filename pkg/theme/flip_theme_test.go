package theme

import (
	"testing"

	"github.com/go-drift/flipclock/pkg/animation"
	"github.com/go-drift/flipclock/pkg/rendering"
)

func TestDefaultFlipTheme(t *testing.T) {
	th := DefaultFlipTheme()
	if th.TextColor != DefaultTextColor {
		t.Errorf("TextColor = %v", th.TextColor)
	}
	if th.FontWeight != rendering.FontWeightBold {
		t.Errorf("FontWeight = %v, want bold", th.FontWeight)
	}
	if th.Duration != animation.DurationShort {
		t.Errorf("Duration = %v, want %v", th.Duration, animation.DurationShort)
	}
	if err := th.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestTextColorDark(t *testing.T) {
	th := DefaultFlipTheme()
	th.TextColor = rendering.RGBA(200, 100, 50, 0x7F)
	if got, want := th.TextColorDark(), rendering.RGBA(160, 80, 40, 0x7F); got != want {
		t.Errorf("TextColorDark = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlipThemeData)
	}{
		{"zero size", func(th *FlipThemeData) { th.TextSize = 0 }},
		{"negative duration", func(th *FlipThemeData) { th.Duration = -1 }},
		{"negative padding", func(th *FlipThemeData) { th.Padding.Top = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultFlipTheme()
			tt.mutate(&th)
			if err := th.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
