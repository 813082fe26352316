package gesture

import (
	"log/slog"
	"time"
)

const (
	// DefaultScrollMultiplier scales smooth scroll deltas into pixels.
	DefaultScrollMultiplier = 10
	// DefaultScrollDistance is the pixel span of one progress unit for wheel gestures.
	DefaultScrollDistance = 300
	// DefaultScrollQuietPeriod ends a wheel gesture after this much input silence.
	DefaultScrollQuietPeriod = 400 * time.Millisecond
)

// ScrollOptions tunes the wheel adapter.
type ScrollOptions struct {
	Multiplier  float64
	Distance    float64
	QuietPeriod time.Duration
}

// DefaultScrollOptions returns the stock wheel tuning.
func DefaultScrollOptions() ScrollOptions {
	return ScrollOptions{
		Multiplier:  DefaultScrollMultiplier,
		Distance:    DefaultScrollDistance,
		QuietPeriod: DefaultScrollQuietPeriod,
	}
}

// withDefaults fills unset fields.
func (o ScrollOptions) withDefaults() ScrollOptions {
	def := DefaultScrollOptions()
	if o.Multiplier <= 0 {
		o.Multiplier = def.Multiplier
	}
	if o.Distance <= 0 {
		o.Distance = def.Distance
	}
	if o.QuietPeriod <= 0 {
		o.QuietPeriod = def.QuietPeriod
	}
	return o
}

// ScrollAdapter emulates a held gesture from independent wheel impulses.
// It is not safe for concurrent use; all calls and timer callbacks must run
// on the scheduler's loop.
type ScrollAdapter struct {
	sched     Scheduler
	listener  Listener
	opts      ScrollOptions
	logger    *slog.Logger
	enabled   bool
	active    bool
	lastTime  time.Time
	timer     Timer
	detach    func()
	destroyed bool
}

// NewScrollAdapter returns an enabled adapter that reports to listener.
func NewScrollAdapter(sched Scheduler, listener Listener, opts ScrollOptions) *ScrollAdapter {
	return &ScrollAdapter{
		sched:    sched,
		listener: listener,
		opts:     opts.withDefaults(),
		logger:   slog.Default(),
		enabled:  true,
	}
}

// SetLogger overrides the logger used for lifecycle debug output.
func (a *ScrollAdapter) SetLogger(logger *slog.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

// Options returns the effective tuning.
func (a *ScrollAdapter) Options() ScrollOptions {
	return a.opts
}

// Attach subscribes the adapter to src, replacing any previous source.
func (a *ScrollAdapter) Attach(src EventSource) {
	if a.destroyed || src == nil {
		return
	}
	a.detachSource()
	a.detach = src.Subscribe(a.HandleEvent)
}

// CanHandleEvent reports whether ev belongs to the wheel channel.
func (a *ScrollAdapter) CanHandleEvent(ev ScrollEvent) bool {
	if !a.enabled || a.destroyed {
		return false
	}
	if ev.Type != EventScroll || ev.Direction != ScrollSmooth {
		return false
	}
	if ev.Source == ScrollSourceFinger {
		return false
	}
	if ev.Device == DeviceTouchpad || ev.Device == DeviceTouchscreen {
		return false
	}
	return true
}

// HandleEvent folds a qualifying scroll event into the current wheel gesture.
func (a *ScrollAdapter) HandleEvent(ev ScrollEvent) Propagation {
	if !a.CanHandleEvent(ev) {
		return Propagate
	}

	if !a.active {
		a.active = true
		a.logger.Debug("wheel: begin", "x", ev.X, "y", ev.Y)
		a.listener.GestureBegin(Wheel, ev.Time, ev.X, ev.Y)
		// The listener may have disabled or destroyed us from its begin handler.
		if !a.active {
			return Stop
		}
	}

	a.lastTime = ev.Time
	delta := ev.DX*2*a.opts.Multiplier + ev.DY*a.opts.Multiplier
	a.listener.GestureUpdate(Wheel, ev.Time, delta, a.opts.Distance)
	if a.active {
		a.rearm()
	}
	return Stop
}

// rearm replaces the pending end timer.
func (a *ScrollAdapter) rearm() {
	a.stopTimer()
	var timer Timer
	timer = a.sched.AfterFunc(a.opts.QuietPeriod, func() {
		if a.timer != timer {
			return
		}
		a.timer = nil
		a.finish()
	})
	a.timer = timer
}

// finish closes the open gesture and reports its end.
func (a *ScrollAdapter) finish() {
	if !a.active {
		return
	}
	a.stopTimer()
	a.active = false
	a.logger.Debug("wheel: end")
	a.listener.GestureEnd(Wheel, a.lastTime, a.opts.Distance)
}

// stopTimer cancels the pending end timer if any.
func (a *ScrollAdapter) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// SetEnabled toggles the adapter. Disabling closes an open gesture at once.
func (a *ScrollAdapter) SetEnabled(enabled bool) {
	if a.enabled == enabled {
		return
	}
	a.enabled = enabled
	if !enabled {
		a.finish()
	}
}

// Enabled reports whether the adapter accepts events.
func (a *ScrollAdapter) Enabled() bool {
	return a.enabled
}

// Active reports whether a wheel gesture is open.
func (a *ScrollAdapter) Active() bool {
	return a.active
}

// Pending reports whether an end timer is armed.
func (a *ScrollAdapter) Pending() bool {
	return a.timer != nil
}

// Destroy cancels the end timer and detaches from the event source. An open
// gesture is dropped without an end notification.
func (a *ScrollAdapter) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.stopTimer()
	a.active = false
	a.detachSource()
}

// detachSource drops the event source subscription.
func (a *ScrollAdapter) detachSource() {
	if a.detach != nil {
		a.detach()
		a.detach = nil
	}
}
