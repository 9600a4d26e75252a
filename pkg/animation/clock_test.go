package animation

import (
	"math"
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clk := NewManualClock(start)

	clk.Advance(150 * time.Millisecond)
	if got := clk.Now().Sub(start); got != 150*time.Millisecond {
		t.Errorf("elapsed = %v, want 150ms", got)
	}

	clk.Advance(-50 * time.Millisecond)
	if got := clk.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("elapsed after rewind = %v, want 100ms", got)
	}

	clk.Set(start)
	if !clk.Now().Equal(start) {
		t.Errorf("Set: got %v, want %v", clk.Now(), start)
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	var clk Clock = SystemClock{}
	a := clk.Now()
	b := clk.Now()
	if b.Sub(a) < 0 {
		t.Error("system clock went backwards")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		elapsed  time.Duration
		duration time.Duration
		want     float64
	}{
		{0, 300 * time.Millisecond, 0},
		{150 * time.Millisecond, 300 * time.Millisecond, 0.5},
		{300 * time.Millisecond, 300 * time.Millisecond, 1},
		{-30 * time.Millisecond, 300 * time.Millisecond, -0.1},
		{10 * time.Millisecond, 0, 1},
		{10 * time.Millisecond, -time.Second, 1},
	}
	for _, tt := range tests {
		got := Progress(tt.elapsed, tt.duration)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Progress(%v, %v) = %v, want %v", tt.elapsed, tt.duration, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := map[float64]float64{
		-1:         0,
		0:          0,
		0.25:       0.25,
		1:          1,
		3:          1,
		math.NaN(): 0,
	}
	for in, want := range tests {
		if got := Clamp01(in); got != want {
			t.Errorf("Clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}
