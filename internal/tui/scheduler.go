package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// timerMsg delivers a fired timer to Update.
type timerMsg struct {
	t *teaTimer
}

// Scheduler delivers gesture timers through the bubbletea update loop.
type Scheduler struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// Ensure Scheduler implements the gesture scheduler.
var _ gesture.Scheduler = (*Scheduler)(nil)

// NewScheduler returns a scheduler with no sender. Timers that fire before
// SetSender are dropped.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// SetSender sets the function used to inject messages, usually Program.Send.
func (s *Scheduler) SetSender(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

// AfterFunc arms a timer whose callback runs inside Update.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) gesture.Timer {
	t := &teaTimer{fn: fn}
	t.t = time.AfterFunc(d, func() {
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		if send != nil {
			send(timerMsg{t: t})
		}
	})
	return t
}

// teaTimer is only touched from Update.
type teaTimer struct {
	t       *time.Timer
	fn      func()
	stopped bool
	fired   bool
}

// Stop prevents the callback from running.
func (t *teaTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.t.Stop()
	return true
}

// fire runs the callback unless the timer was stopped.
func (t *teaTimer) fire() {
	if t.stopped || t.fired {
		return
	}
	t.fired = true
	t.fn()
}
