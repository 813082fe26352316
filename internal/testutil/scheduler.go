// Package testutil provides fakes shared by package tests.
package testutil

import (
	"sort"
	"time"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// ManualScheduler is a gesture.Scheduler driven by Advance instead of wall
// time. Callbacks run synchronously inside Advance.
type ManualScheduler struct {
	now    time.Time
	seq    int
	timers []*ManualTimer
}

// Ensure ManualScheduler implements the interface.
var _ gesture.Scheduler = (*ManualScheduler)(nil)

// ManualTimer is a timer created by ManualScheduler.
type ManualTimer struct {
	s       *ManualScheduler
	due     time.Time
	seq     int
	fn      func()
	pending bool
}

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the scheduler clock.
func (s *ManualScheduler) Now() time.Time {
	return s.now
}

// AfterFunc arms fn to run once the clock passes d from now.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) gesture.Timer {
	s.seq++
	t := &ManualTimer{s: s, due: s.now.Add(d), seq: s.seq, fn: fn, pending: true}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer.
func (t *ManualTimer) Stop() bool {
	was := t.pending
	t.pending = false
	return was
}

// Pending returns the number of armed timers.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if t.pending {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in order.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now.Add(d)
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		next.pending = false
		next.fn()
	}
	s.now = target
	s.compact()
}

// nextDue returns the earliest pending timer due at or before limit.
func (s *ManualScheduler) nextDue(limit time.Time) *ManualTimer {
	var due []*ManualTimer
	for _, t := range s.timers {
		if t.pending && !t.due.After(limit) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	return due[0]
}

// compact drops fired and stopped timers.
func (s *ManualScheduler) compact() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.pending {
			kept = append(kept, t)
		}
	}
	s.timers = kept
}
