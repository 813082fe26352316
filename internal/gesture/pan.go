package gesture

import (
	"math"
	"time"
)

// DefaultDragThreshold is how far a pointer must travel before a press
// becomes a drag.
const DefaultDragThreshold = 16

// DragHandler receives native drag gestures.
type DragHandler interface {
	DragBegin(DragState)
	DragUpdate(DragState)
	DragEnd(DragState)
}

// PanRecognizer turns pointer down/move/up for a single pointer into drag
// gestures with a release velocity.
type PanRecognizer struct {
	handler   DragHandler
	threshold float64
	now       func() time.Time

	pressed bool
	started bool
	pointer int
	pressX  float64
	pressY  float64
	lastX   float64
	lastY   float64
	hx      *History
	hy      *History
}

// NewPanRecognizer returns a recognizer reporting to handler.
func NewPanRecognizer(handler DragHandler) *PanRecognizer {
	return &PanRecognizer{
		handler:   handler,
		threshold: DefaultDragThreshold,
		now:       time.Now,
		hx:        NewHistory(),
		hy:        NewHistory(),
	}
}

// SetNowFunc overrides the clock used for events without a timestamp.
func (p *PanRecognizer) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		p.now = fn
	}
}

// SetThreshold overrides the drag start distance.
func (p *PanRecognizer) SetThreshold(threshold float64) {
	if threshold >= 0 {
		p.threshold = threshold
	}
}

// Dragging reports whether a drag gesture has started.
func (p *PanRecognizer) Dragging() bool {
	return p.started
}

// HandleDown processes a pointer press.
func (p *PanRecognizer) HandleDown(inputEnabled bool, pointerID int, x, y float64, at time.Time) {
	if !inputEnabled || p.pressed {
		return
	}
	at = p.stamp(at)
	p.pressed = true
	p.started = false
	p.pointer = pointerID
	p.pressX, p.pressY = x, y
	p.lastX, p.lastY = x, y
	p.hx.Reset()
	p.hy.Reset()
	p.hx.Append(at, 0)
	p.hy.Append(at, 0)
}

// HandleMove processes pointer motion.
func (p *PanRecognizer) HandleMove(inputEnabled bool, pointerID int, x, y float64, at time.Time) {
	if !inputEnabled {
		p.abort(at)
		return
	}
	if !p.pressed || p.pointer != pointerID {
		return
	}
	at = p.stamp(at)
	p.record(x, y, at)

	if !p.started {
		if math.Hypot(x-p.pressX, y-p.pressY) < p.threshold {
			return
		}
		p.started = true
		p.handler.DragBegin(DragState{Time: at, X: p.pressX, Y: p.pressY})
	}
	p.handler.DragUpdate(p.state(at))
}

// HandleUp processes a pointer release.
func (p *PanRecognizer) HandleUp(inputEnabled bool, pointerID int, x, y float64, at time.Time) {
	if !p.pressed || p.pointer != pointerID {
		return
	}
	if !inputEnabled {
		p.abort(at)
		return
	}
	at = p.stamp(at)
	p.record(x, y, at)

	started := p.started
	p.pressed = false
	p.started = false
	if !started {
		return
	}

	p.hx.Trim(at)
	p.hy.Trim(at)
	s := p.state(at)
	s.VX = p.hx.Velocity()
	s.VY = p.hy.Velocity()
	p.handler.DragEnd(s)
}

// abort ends a started drag with zero velocity so the handler snaps to the
// nearest point.
func (p *PanRecognizer) abort(at time.Time) {
	if !p.pressed {
		return
	}
	started := p.started
	p.pressed = false
	p.started = false
	if started {
		p.handler.DragEnd(p.state(p.stamp(at)))
	}
}

// record appends the movement since the last sample.
func (p *PanRecognizer) record(x, y float64, at time.Time) {
	p.hx.Append(at, x-p.lastX)
	p.hy.Append(at, y-p.lastY)
	p.lastX, p.lastY = x, y
}

// state builds the report for the current pointer position.
func (p *PanRecognizer) state(at time.Time) DragState {
	return DragState{
		Time: at,
		X:    p.pressX,
		Y:    p.pressY,
		DX:   p.lastX - p.pressX,
		DY:   p.lastY - p.pressY,
	}
}

// stamp fills a missing timestamp from the clock.
func (p *PanRecognizer) stamp(at time.Time) time.Time {
	if at.IsZero() {
		return p.now()
	}
	return at
}
