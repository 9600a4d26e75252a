package engine

import (
	"sync"
	"time"
)

const (
	defaultTraceCapacity  = 240
	defaultTraceThreshold = 16667 * time.Microsecond
)

// FrameSample records one painted frame.
type FrameSample struct {
	ID        uint64  `json:"id"`
	Timestamp int64   `json:"ts"`
	FrameMs   float64 `json:"frameMs"`
	// Pending is true when painting the frame asked for another one.
	Pending bool `json:"pending,omitempty"`
}

// FrameTimeline summarizes the retained samples, oldest first.
type FrameTimeline struct {
	Samples       []FrameSample `json:"samples"`
	DroppedFrames int           `json:"droppedFrames"`
	ThresholdMs   float64       `json:"thresholdMs"`
	MaxMs         float64       `json:"maxMs"`
	AvgMs         float64       `json:"avgMs"`
}

// FrameTraceBuffer keeps the most recent frame samples. Frames slower than
// the threshold are counted as dropped over the buffer's whole lifetime.
type FrameTraceBuffer struct {
	mu        sync.Mutex
	ring      []FrameSample
	next      int
	full      bool
	dropped   int
	threshold time.Duration
}

// NewFrameTraceBuffer creates a buffer. Non-positive arguments select 240
// samples and a 60 Hz frame budget.
func NewFrameTraceBuffer(capacity int, threshold time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = defaultTraceCapacity
	}
	if threshold <= 0 {
		threshold = defaultTraceThreshold
	}
	return &FrameTraceBuffer{ring: make([]FrameSample, capacity), threshold: threshold}
}

// Capacity returns the number of samples retained.
func (b *FrameTraceBuffer) Capacity() int {
	return len(b.ring)
}

// Add stores sample, overwriting the oldest one when full.
func (b *FrameTraceBuffer) Add(sample FrameSample, took time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ring[b.next] = sample
	b.next++
	if b.next == len(b.ring) {
		b.next, b.full = 0, true
	}
	if took > b.threshold {
		b.dropped++
	}
}

// Snapshot copies the retained samples in chronological order.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.Lock()
	defer b.mu.Unlock()

	tl := FrameTimeline{DroppedFrames: b.dropped, ThresholdMs: durationToMillis(b.threshold)}
	if b.full {
		tl.Samples = append(tl.Samples, b.ring[b.next:]...)
	}
	tl.Samples = append(tl.Samples, b.ring[:b.next]...)
	if len(tl.Samples) == 0 {
		return tl
	}

	var total float64
	for _, s := range tl.Samples {
		total += s.FrameMs
		tl.MaxMs = max(tl.MaxMs, s.FrameMs)
	}
	tl.AvgMs = total / float64(len(tl.Samples))
	return tl
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
