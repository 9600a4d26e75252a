package testing

import "sync"

// FakeScheduler records frame requests instead of scheduling real frames.
type FakeScheduler struct {
	mu       sync.Mutex
	requests int
	pending  bool
}

// ScheduleFrame records a request. Requests made before the next Consume
// coalesce into one pending frame.
func (s *FakeScheduler) ScheduleFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.pending = true
}

// Requests returns the total number of ScheduleFrame calls.
func (s *FakeScheduler) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Pending reports whether a frame has been requested since the last Consume.
func (s *FakeScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Consume clears the pending flag and returns its previous value.
func (s *FakeScheduler) Consume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.pending
	s.pending = false
	return was
}
