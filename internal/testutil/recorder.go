package testutil

import (
	"time"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// Call records a single gesture notification.
type Call struct {
	Name     string
	Channel  gesture.Channel
	Time     time.Time
	X        float64
	Y        float64
	Delta    float64
	Distance float64
}

// Recorder implements gesture.Listener and records calls for tests.
type Recorder struct {
	Calls []Call
	// OnBegin runs after a begin is recorded, if set.
	OnBegin func()
}

// Ensure Recorder implements the interface.
var _ gesture.Listener = (*Recorder)(nil)

// GestureBegin records a begin.
func (r *Recorder) GestureBegin(ch gesture.Channel, at time.Time, x, y float64) {
	r.Calls = append(r.Calls, Call{Name: "begin", Channel: ch, Time: at, X: x, Y: y})
	if r.OnBegin != nil {
		r.OnBegin()
	}
}

// GestureUpdate records an update.
func (r *Recorder) GestureUpdate(ch gesture.Channel, at time.Time, delta, distance float64) {
	r.Calls = append(r.Calls, Call{Name: "update", Channel: ch, Time: at, Delta: delta, Distance: distance})
}

// GestureEnd records an end.
func (r *Recorder) GestureEnd(ch gesture.Channel, at time.Time, distance float64) {
	r.Calls = append(r.Calls, Call{Name: "end", Channel: ch, Time: at, Distance: distance})
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.Name)
	}
	return out
}

// DragRecorder implements gesture.DragHandler and records reports.
type DragRecorder struct {
	Begins  []gesture.DragState
	Updates []gesture.DragState
	Ends    []gesture.DragState
}

// Ensure DragRecorder implements the interface.
var _ gesture.DragHandler = (*DragRecorder)(nil)

// DragBegin records a drag begin.
func (d *DragRecorder) DragBegin(s gesture.DragState) { d.Begins = append(d.Begins, s) }

// DragUpdate records a drag update.
func (d *DragRecorder) DragUpdate(s gesture.DragState) { d.Updates = append(d.Updates, s) }

// DragEnd records a drag end.
func (d *DragRecorder) DragEnd(s gesture.DragState) { d.Ends = append(d.Ends, s) }
