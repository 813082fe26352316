// Package gesture turns wheel and drag input into navigation progress.
package gesture

import (
	"strings"
	"time"
)

// Channel identifies which input path a gesture arrived on.
type Channel int

const (
	// Wheel is the emulated gesture built from smooth scroll events.
	Wheel Channel = iota
	// NativeDrag is a pan/drag reported by a gesture recognizer.
	NativeDrag
)

// String returns the wire name of the channel.
func (c Channel) String() string {
	switch c {
	case Wheel:
		return "wheel"
	case NativeDrag:
		return "drag"
	default:
		return "unknown"
	}
}

// Orientation is the axis progress is measured along.
type Orientation int

const (
	// Horizontal maps X movement to progress.
	Horizontal Orientation = iota
	// Vertical maps Y movement to progress.
	Vertical
)

// TextDirection is the reading direction of the host UI.
type TextDirection int

const (
	// LeftToRight is the default text direction.
	LeftToRight TextDirection = iota
	// RightToLeft mirrors horizontal gestures.
	RightToLeft
)

// SwitcherStyle is the display mode of the page switcher.
type SwitcherStyle string

const (
	// StyleDefault lays pages out as a bounded strip.
	StyleDefault SwitcherStyle = "default"
	// StyleTimeline shows pages along a continuous timeline.
	StyleTimeline SwitcherStyle = "timeline"
	// StyleCarousel shows pages on a rotating carousel.
	StyleCarousel SwitcherStyle = "carousel"
)

// LoopingMethod controls what happens past the first or last page.
type LoopingMethod string

const (
	// LoopNone stops at the ends.
	LoopNone LoopingMethod = "none"
	// LoopRewind jumps back to the other end without a continuous path.
	LoopRewind LoopingMethod = "rewind"
	// LoopContinuous wraps progress around the page count.
	LoopContinuous LoopingMethod = "continuous"
)

// Preferences are the user settings the tracker reads. They are owned by the
// settings store and replaced wholesale.
type Preferences struct {
	NaturalScrolling      bool
	WheelNaturalScrolling bool
	SwitcherStyle         SwitcherStyle
	LoopingMethod         LoopingMethod
	Orientation           Orientation
	Inverted              bool
	TextDirection         TextDirection
	AllowLongSwipes       bool
}

// DefaultPreferences returns the preferences used before any settings load.
func DefaultPreferences() Preferences {
	return Preferences{
		SwitcherStyle: StyleDefault,
		LoopingMethod: LoopNone,
		Orientation:   Horizontal,
		TextDirection: LeftToRight,
	}
}

// Rewinds reports whether stepping past either end jumps to the other end.
// Continuous looping wraps instead and takes precedence.
func (p Preferences) Rewinds() bool {
	return p.LoopingMethod == LoopRewind && !p.Looping()
}

// Looping reports whether progress wraps modulo the snap point count.
func (p Preferences) Looping() bool {
	if p.LoopingMethod != LoopContinuous {
		return false
	}
	return p.SwitcherStyle == StyleTimeline || p.SwitcherStyle == StyleCarousel
}

// ParseOrientation maps a settings value to an Orientation.
func ParseOrientation(value string) Orientation {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "vertical", "v":
		return Vertical
	default:
		return Horizontal
	}
}

// ParseTextDirection maps a settings value to a TextDirection.
func ParseTextDirection(value string) TextDirection {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "rtl", "right-to-left":
		return RightToLeft
	default:
		return LeftToRight
	}
}

// ParseSwitcherStyle maps a settings value to a SwitcherStyle.
func ParseSwitcherStyle(value string) SwitcherStyle {
	switch SwitcherStyle(strings.ToLower(strings.TrimSpace(value))) {
	case StyleTimeline:
		return StyleTimeline
	case StyleCarousel:
		return StyleCarousel
	default:
		return StyleDefault
	}
}

// ParseLoopingMethod maps a settings value to a LoopingMethod.
func ParseLoopingMethod(value string) LoopingMethod {
	switch LoopingMethod(strings.ToLower(strings.TrimSpace(value))) {
	case LoopRewind:
		return LoopRewind
	case LoopContinuous:
		return LoopContinuous
	default:
		return LoopNone
	}
}

// Listener receives the normalized lifecycle of a gesture.
type Listener interface {
	GestureBegin(ch Channel, at time.Time, x, y float64)
	GestureUpdate(ch Channel, at time.Time, delta, distance float64)
	GestureEnd(ch Channel, at time.Time, distance float64)
}

// Timer is a pending deferred callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// timer was still pending.
	Stop() bool
}

// Scheduler runs fn on the owning event loop after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}
