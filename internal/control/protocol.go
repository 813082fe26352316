// Package control serves the websocket gesture control protocol.
package control

import (
	"math"
	"time"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// Client message types.
const (
	MsgScroll       = "scroll"
	MsgDown         = "down"
	MsgMove         = "move"
	MsgUp           = "up"
	MsgSize         = "size"
	MsgInputEnabled = "inputEnabled"
	MsgCancel       = "cancel"
)

// Server message types.
const (
	EvtBegin  = "begin"
	EvtUpdate = "update"
	EvtEnd    = "end"
	EvtState  = "state"
)

// Message is a control websocket payload sent by the client. Coordinates
// are normalized to the viewport and Time is in milliseconds.
type Message struct {
	T       string  `json:"t"`
	ID      int     `json:"id,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
	Time    float64 `json:"time,omitempty"`
	Source  string  `json:"source,omitempty"`
	Device  string  `json:"device,omitempty"`
	Dir     string  `json:"dir,omitempty"`
	W       int     `json:"w,omitempty"`
	H       int     `json:"h,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// BeginEvent announces a confirmed gesture.
type BeginEvent struct {
	T       string  `json:"t"`
	Channel string  `json:"channel"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// UpdateEvent carries live progress.
type UpdateEvent struct {
	T        string  `json:"t"`
	Progress float64 `json:"progress"`
}

// EndEvent tells the client where to settle and how long to take.
type EndEvent struct {
	T          string  `json:"t"`
	DurationMs int64   `json:"durationMs"`
	Target     float64 `json:"target"`
}

// StateEvent reports the committed page.
type StateEvent struct {
	T            string `json:"t"`
	Page         int    `json:"page"`
	Pages        int    `json:"pages"`
	InputEnabled bool   `json:"inputEnabled"`
}

// maxClientMs is the largest millisecond timestamp that fits in a time.Time
// built from Unix nanoseconds.
const maxClientMs = float64(math.MaxInt64 / int64(time.Millisecond))

// MsToTime converts a client timestamp in milliseconds. Values that are not
// positive or do not fit in Unix nanoseconds yield the zero time.
func MsToTime(ms float64) time.Time {
	if !(ms > 0 && ms < maxClientMs) {
		return time.Time{}
	}
	return time.Unix(0, int64(ms*float64(time.Millisecond)))
}

// ScrollEvent converts a scroll message into an input event. Missing fields
// describe a smooth mouse wheel.
func ScrollEvent(msg Message, x, y float64, at time.Time) gesture.ScrollEvent {
	ev := gesture.ScrollEvent{
		Type:      gesture.EventScroll,
		Source:    gesture.ScrollSourceWheel,
		Device:    gesture.DeviceMouse,
		Direction: gesture.ScrollSmooth,
		Time:      at,
		DX:        msg.DX,
		DY:        msg.DY,
		X:         x,
		Y:         y,
	}
	if msg.Source != "" {
		ev.Source = gesture.ParseScrollSource(msg.Source)
	}
	if msg.Device != "" {
		ev.Device = gesture.ParseDeviceKind(msg.Device)
	}
	if msg.Dir != "" {
		ev.Direction = gesture.ParseScrollDirection(msg.Dir)
	}
	return ev
}
