package testing

import (
	"time"

	"github.com/go-drift/flipclock/pkg/animation"
)

// FakeClock provides controllable time for deterministic animation tests.
// All methods are safe for concurrent use.
type FakeClock = animation.ManualClock

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return animation.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}
