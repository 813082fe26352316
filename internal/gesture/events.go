package gesture

import (
	"strings"
	"time"
)

// EventType identifies the kind of raw input event.
type EventType int

const (
	// EventNone is an unset event.
	EventNone EventType = iota
	// EventScroll is a wheel or scroll event.
	EventScroll
	// EventButtonPress is a pointer button press.
	EventButtonPress
	// EventButtonRelease is a pointer button release.
	EventButtonRelease
	// EventMotion is a pointer motion.
	EventMotion
)

// ScrollSource is the physical origin of a scroll event.
type ScrollSource int

const (
	// ScrollSourceUnknown is reported by devices that do not classify scrolls.
	ScrollSourceUnknown ScrollSource = iota
	// ScrollSourceWheel is a mouse wheel.
	ScrollSourceWheel
	// ScrollSourceFinger is a touchpad or touchscreen finger scroll.
	ScrollSourceFinger
	// ScrollSourceContinuous is a continuous device such as a trackball.
	ScrollSourceContinuous
)

// DeviceKind is the class of the device that produced an event.
type DeviceKind int

const (
	// DevicePointer is a generic pointer.
	DevicePointer DeviceKind = iota
	// DeviceMouse is a mouse.
	DeviceMouse
	// DeviceTouchpad is a touchpad.
	DeviceTouchpad
	// DeviceTouchscreen is a touchscreen.
	DeviceTouchscreen
)

// ScrollDirection is the direction of a discrete scroll or ScrollSmooth.
type ScrollDirection int

const (
	// ScrollUp is a discrete step up.
	ScrollUp ScrollDirection = iota
	// ScrollDown is a discrete step down.
	ScrollDown
	// ScrollLeft is a discrete step left.
	ScrollLeft
	// ScrollRight is a discrete step right.
	ScrollRight
	// ScrollSmooth carries precise deltas in DX/DY.
	ScrollSmooth
)

// Propagation tells the event source whether to keep delivering an event.
type Propagation bool

const (
	// Propagate lets other handlers see the event.
	Propagate Propagation = false
	// Stop consumes the event.
	Stop Propagation = true
)

// ScrollEvent is a raw input event as delivered by the event source.
type ScrollEvent struct {
	Type      EventType
	Source    ScrollSource
	Device    DeviceKind
	Direction ScrollDirection
	Time      time.Time
	DX        float64
	DY        float64
	X         float64
	Y         float64
}

// EventHandler consumes one event.
type EventHandler func(ScrollEvent) Propagation

// EventSource delivers raw events to subscribers.
type EventSource interface {
	// Subscribe registers fn and returns a func that removes it.
	Subscribe(fn EventHandler) func()
}

// Dispatcher is an EventSource that hands events to subscribers in
// registration order until one stops propagation.
type Dispatcher struct {
	handlers []*EventHandler
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers fn and returns its unsubscribe func.
func (d *Dispatcher) Subscribe(fn EventHandler) func() {
	entry := &fn
	d.handlers = append(d.handlers, entry)
	return func() {
		for i, h := range d.handlers {
			if h == entry {
				d.handlers = append(d.handlers[:i:i], d.handlers[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev and reports whether a handler consumed it.
func (d *Dispatcher) Dispatch(ev ScrollEvent) Propagation {
	handlers := append([]*EventHandler(nil), d.handlers...)
	for _, h := range handlers {
		if (*h)(ev) == Stop {
			return Stop
		}
	}
	return Propagate
}

// Len returns the number of subscribers.
func (d *Dispatcher) Len() int {
	return len(d.handlers)
}

// ParseScrollSource maps a wire value to a ScrollSource.
func ParseScrollSource(value string) ScrollSource {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "wheel":
		return ScrollSourceWheel
	case "finger":
		return ScrollSourceFinger
	case "continuous":
		return ScrollSourceContinuous
	default:
		return ScrollSourceUnknown
	}
}

// ParseDeviceKind maps a wire value to a DeviceKind.
func ParseDeviceKind(value string) DeviceKind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "mouse":
		return DeviceMouse
	case "touchpad":
		return DeviceTouchpad
	case "touchscreen":
		return DeviceTouchscreen
	default:
		return DevicePointer
	}
}

// ParseScrollDirection maps a wire value to a ScrollDirection.
func ParseScrollDirection(value string) ScrollDirection {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "up":
		return ScrollUp
	case "down":
		return ScrollDown
	case "left":
		return ScrollLeft
	case "right":
		return ScrollRight
	default:
		return ScrollSmooth
	}
}
