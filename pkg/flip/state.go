package flip

import (
	"fmt"
	"time"
)

// Phase is the transition state of a Digit.
type Phase int

const (
	// PhaseIdle means the displayed value equals the target, or nothing is
	// displayed yet.
	PhaseIdle Phase = iota
	// PhaseStarting means a new target is waiting for the next paint to
	// start the transition clock.
	PhaseStarting
	// PhaseInFlight means a transition is running since displayState.start.
	PhaseInFlight
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStarting:
		return "starting"
	case PhaseInFlight:
		return "in-flight"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// displayState is the mutable part of a Digit. start is only meaningful in
// PhaseInFlight.
type displayState struct {
	current    int
	hasCurrent bool
	target     int
	hasTarget  bool
	phase      Phase
	start      time.Time
}

func (s *displayState) setTarget(v int) {
	s.target = v
	s.hasTarget = true
	if s.phase == PhaseIdle && s.hasCurrent && s.current != v {
		s.phase = PhaseStarting
	}
}

// settle makes the target the displayed value and clears transition timing.
func (s *displayState) settle() {
	s.current = s.target
	s.hasCurrent = true
	s.phase = PhaseIdle
	s.start = time.Time{}
}

func (s *displayState) begin(now time.Time) {
	s.phase = PhaseInFlight
	s.start = now
}
