// Package loop serializes gesture work onto a single goroutine.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// ErrClosed is returned when work is submitted after the loop stopped.
var ErrClosed = errors.New("loop closed")

// DefaultBuffer is the queue depth used when New is given a non-positive size.
const DefaultBuffer = 256

// Loop owns all gesture state. Every callback, including timer callbacks,
// runs on the goroutine executing Run.
type Loop struct {
	queue  chan func()
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// Ensure Loop implements the scheduler interface.
var _ gesture.Scheduler = (*Loop)(nil)

// New returns a loop with the given queue depth.
func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Loop{
		queue:  make(chan func(), buffer),
		done:   make(chan struct{}),
		logger: slog.Default(),
	}
}

// SetLogger overrides the logger used for recovered panics.
func (l *Loop) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Run executes queued work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			l.exec(fn)
		}
	}
}

// Post queues fn without waiting. It reports false when the loop stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// AfterFunc schedules fn on the loop after d. A timer stopped before its
// callback reaches the front of the queue never runs.
func (l *Loop) AfterFunc(d time.Duration, fn func()) gesture.Timer {
	t := &timer{}
	t.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped {
				return
			}
			t.fired = true
			fn()
		})
	})
	return t
}

// exec runs fn and logs a recovered panic instead of killing the loop.
func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop task panicked", "err", fmt.Sprint(r))
		}
	}()
	fn()
}

// timer is only touched on the loop goroutine.
type timer struct {
	t       *time.Timer
	stopped bool
	fired   bool
}

// Stop prevents the callback from running. It reports whether the callback
// was still pending.
func (t *timer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.t.Stop()
	return true
}
