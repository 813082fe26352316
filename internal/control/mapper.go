package control

import (
	"math"

	"github.com/frudas24/deskswipe/internal/session"
)

// DefaultViewport is used until the client reports its size.
var DefaultViewport = session.Viewport{W: 1280, H: 720}

// NormToView maps normalized coordinates to viewport pixels.
func NormToView(xn, yn float64, v session.Viewport) (float64, float64) {
	if v.W <= 0 || v.H <= 0 {
		v = DefaultViewport
	}
	xn = clamp01(xn)
	yn = clamp01(yn)
	return normToPixels(xn, v.W), normToPixels(yn, v.H)
}

// normToPixels scales a normalized value across span pixels.
func normToPixels(norm float64, span int) float64 {
	if span <= 1 {
		return 0
	}
	return math.Round(norm * float64(span-1))
}

// clamp01 bounds a float to the [0..1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
