package gesture

import "time"

// HistoryWindow is how far back deltas count towards release velocity.
const HistoryWindow = 150 * time.Millisecond

type sample struct {
	at    time.Time
	delta float64
}

// History keeps recent deltas along one axis to estimate release velocity.
type History struct {
	samples []sample
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{samples: make([]sample, 0, 16)}
}

// Reset drops all samples.
func (h *History) Reset() {
	h.samples = h.samples[:0]
}

// Append trims stale samples relative to at and records delta.
func (h *History) Append(at time.Time, delta float64) {
	h.Trim(at)
	h.samples = append(h.samples, sample{at: at, delta: delta})
}

// Trim drops samples older than HistoryWindow before at.
func (h *History) Trim(at time.Time) {
	threshold := at.Add(-HistoryWindow)
	for i, s := range h.samples {
		if !s.at.Before(threshold) {
			h.samples = append(h.samples[:0], h.samples[i:]...)
			return
		}
	}
	h.samples = h.samples[:0]
}

// Len returns the number of retained samples.
func (h *History) Len() int {
	return len(h.samples)
}

// Velocity returns the average velocity in pixels per millisecond.
// The first sample only anchors the period.
func (h *History) Velocity() float64 {
	if len(h.samples) < 2 {
		return 0
	}
	first := h.samples[0].at
	last := h.samples[len(h.samples)-1].at
	period := float64(last.Sub(first)) / float64(time.Millisecond)
	if period <= 0 {
		return 0
	}
	total := 0.0
	for _, s := range h.samples[1:] {
		total += s.delta
	}
	return total / period
}
