// Package pager is a page switcher driven by tracker progress.
package pager

import (
	"log/slog"
	"math"
	"time"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// StepDuration is how long a page step outside of a gesture animates.
const StepDuration = 250 * time.Millisecond

// Source is the tracker surface the pager consumes.
type Source interface {
	OnBegin(fn func(gesture.Begin)) func()
	OnUpdate(fn func(float64)) func()
	OnEnd(fn func(gesture.End)) func()
	Confirm(distance float64, snapPoints []float64, currentProgress, cancelProgress float64) error
}

// Ensure the tracker can drive a pager.
var _ Source = (*gesture.Tracker)(nil)

// Snapshot is a read-only view of the pager.
type Snapshot struct {
	Page      int
	Pages     int
	Position  float64
	Gesturing bool
	Animating bool
}

// settle is a running ease-out animation.
type settle struct {
	from  float64
	to    float64
	start time.Time
	dur   time.Duration
}

// Pager holds the current page and animates between pages.
type Pager struct {
	logger   *slog.Logger
	now      func() time.Time
	pages    int
	distance float64
	looping  bool
	rewind   bool

	page      int
	progress  float64
	gesturing bool
	anim      *settle
	unsub     []func()
}

// New returns a pager with pages pages that confirms gestures with distance.
func New(pages int, distance float64) *Pager {
	p := &Pager{
		logger:   slog.Default(),
		now:      time.Now,
		pages:    1,
		distance: distance,
	}
	p.SetPages(pages)
	return p
}

// SetLogger overrides the pager logger.
func (p *Pager) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// SetNowFunc overrides the animation clock.
func (p *Pager) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		p.now = fn
	}
}

// SetPages changes the page count and keeps the current page in range.
func (p *Pager) SetPages(n int) {
	if n < 1 {
		n = 1
	}
	p.pages = n
	if p.page >= n {
		p.page = n - 1
	}
}

// Pages returns the page count.
func (p *Pager) Pages() int {
	return p.pages
}

// SetDistance changes the swipe distance used for new gestures.
func (p *Pager) SetDistance(distance float64) {
	if distance > 0 {
		p.distance = distance
	}
}

// Distance returns the swipe distance in pixels.
func (p *Pager) Distance() float64 {
	return p.distance
}

// SetLooping switches between wrapping and clamped page indices.
func (p *Pager) SetLooping(looping bool) {
	p.looping = looping
}

// SetRewind makes Step jump to the other end when it runs past the first or
// last page. Ignored while looping.
func (p *Pager) SetRewind(rewind bool) {
	p.rewind = rewind
}

// Page returns the committed page index.
func (p *Pager) Page() int {
	return p.page
}

// Attach subscribes the pager to src. A previous source is detached first.
func (p *Pager) Attach(src Source) {
	p.Detach()
	p.unsub = []func(){
		src.OnBegin(func(gesture.Begin) { p.begin(src) }),
		src.OnUpdate(p.update),
		src.OnEnd(p.end),
	}
}

// Detach drops every subscription.
func (p *Pager) Detach() {
	for _, fn := range p.unsub {
		fn()
	}
	p.unsub = nil
}

// Animating reports whether a settle animation is still running.
func (p *Pager) Animating() bool {
	if p.anim == nil {
		return false
	}
	if p.now().Sub(p.anim.start) >= p.anim.dur {
		p.anim = nil
		return false
	}
	return true
}

// Position returns the visible position in page units.
func (p *Pager) Position() float64 {
	if p.Animating() {
		a := p.anim
		x := float64(p.now().Sub(a.start)) / float64(a.dur)
		pos := a.from + (a.to-a.from)*easeOutCubic(x)
		if p.looping {
			return gesture.Wrap(pos, p.pages)
		}
		return pos
	}
	if p.gesturing {
		return p.progress
	}
	return float64(p.page)
}

// Snapshot returns the current state.
func (p *Pager) Snapshot() Snapshot {
	return Snapshot{
		Page:      p.page,
		Pages:     p.pages,
		Position:  p.Position(),
		Gesturing: p.gesturing,
		Animating: p.Animating(),
	}
}

// Step moves delta pages outside of a gesture and animates there. Past
// either end it wraps when looping, jumps to the other end in rewind mode
// and stops otherwise. It reports whether the page changed.
func (p *Pager) Step(delta int) bool {
	if p.gesturing || delta == 0 {
		return false
	}
	from := p.Position()
	target := p.page + delta
	switch {
	case p.looping:
		n := float64(p.pages)
		from += n * math.Round((float64(p.page)-from)/n)
	case target < 0 || target >= p.pages:
		if !p.rewind {
			target = max(0, min(target, p.pages-1))
		} else if target < 0 {
			target = p.pages - 1
		} else {
			target = 0
		}
	}
	if p.index(float64(target)) == p.page {
		return false
	}
	to := float64(target)
	p.page = p.index(to)
	p.anim = &settle{from: from, to: to, start: p.now(), dur: StepDuration}
	p.logger.Debug("step", "from", from, "to", to, "page", p.page)
	return true
}

// begin confirms the gesture unless a settle animation is still running.
func (p *Pager) begin(src Source) {
	if p.Animating() {
		p.logger.Debug("gesture vetoed during settle")
		return
	}
	points := make([]float64, p.pages)
	for i := range points {
		points[i] = float64(i)
	}
	current := float64(p.page)
	if err := src.Confirm(p.distance, points, current, current); err != nil {
		p.logger.Warn("confirm gesture", "err", err)
		return
	}
	p.gesturing = true
	p.progress = current
}

// update follows the live progress.
func (p *Pager) update(progress float64) {
	p.progress = progress
}

// end commits the target page and starts the settle animation.
func (p *Pager) end(e gesture.End) {
	from := p.progress
	to := e.Target
	if p.looping {
		n := float64(p.pages)
		if d := to - from; d > n/2 {
			from += n
		} else if d < -n/2 {
			from -= n
		}
	}
	p.gesturing = false
	p.page = p.index(to)
	p.anim = nil
	if e.Duration > 0 && from != to {
		p.anim = &settle{from: from, to: to, start: p.now(), dur: e.Duration}
	}
	p.logger.Debug("settle", "from", from, "to", to, "duration", e.Duration, "page", p.page)
}

// index converts a target into a valid page index.
func (p *Pager) index(target float64) int {
	i := int(math.Round(target))
	if p.looping {
		i %= p.pages
		if i < 0 {
			i += p.pages
		}
		return i
	}
	return max(0, min(i, p.pages-1))
}

// easeOutCubic maps x in [0,1] onto a decelerating curve.
func easeOutCubic(x float64) float64 {
	x = max(0, min(x, 1))
	inv := 1 - x
	return 1 - inv*inv*inv
}
