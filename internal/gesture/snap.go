package gesture

import (
	"math"
	"sort"
	"time"
)

const (
	// VelocityThresholdTouch is the release speed (px/ms) below which a
	// touch drag snaps to the nearest point.
	VelocityThresholdTouch = 0.3
	// VelocityThresholdTouchpad is the same threshold for touchpad-class input.
	VelocityThresholdTouchpad = 0.6
	// DecelerationTouch is the per-millisecond velocity retention for touch.
	DecelerationTouch = 0.998
	// DecelerationTouchpad is the per-millisecond velocity retention for touchpads.
	DecelerationTouchpad = 0.997
	// VelocityCurveThreshold is where projection switches to the parabola.
	VelocityCurveThreshold = 2
	// DecelerationParabolaMultiplier shapes the parabola above the threshold.
	DecelerationParabolaMultiplier = 0.35

	boundEpsilon = 0.005

	minSettleDuration     = 100 * time.Millisecond
	maxSettleDuration     = 400 * time.Millisecond
	settleBaseVelocity    = 0.002
	settleDurationScaling = 3
)

// ProjectDistance returns how far a release at velocity carries, before
// snapping, in the same units as velocity. The sign follows velocity.
func ProjectDistance(velocity float64, touchpad bool) float64 {
	decel := DecelerationTouch
	if touchpad {
		decel = DecelerationTouchpad
	}
	slope := decel / (1 - decel) / 1000

	speed := math.Abs(velocity)
	var pos float64
	if speed > VelocityCurveThreshold {
		c := slope / (2 * DecelerationParabolaMultiplier)
		x := speed - VelocityCurveThreshold + c
		pos = slope*VelocityCurveThreshold +
			DecelerationParabolaMultiplier*x*x -
			DecelerationParabolaMultiplier*c*c
	} else {
		pos = speed * slope
	}
	return pos * sign(velocity)
}

// velocityThreshold returns the snap-to-nearest threshold for the input class.
func velocityThreshold(touchpad bool) float64 {
	if touchpad {
		return VelocityThresholdTouchpad
	}
	return VelocityThresholdTouch
}

// ClosestPoint returns the index of the point nearest to pos. Ties go to the
// lower index.
func ClosestPoint(points []float64, pos float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, p := range points {
		if d := math.Abs(p - pos); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// NextPoint returns the index of the first point >= pos, or -1.
func NextPoint(points []float64, pos float64) int {
	for i, p := range points {
		if p >= pos {
			return i
		}
	}
	return -1
}

// PreviousPoint returns the index of the last point <= pos, or -1.
func PreviousPoint(points []float64, pos float64) int {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i] <= pos {
			return i
		}
	}
	return -1
}

// ProjectPoint picks the landing point for a projected position pos moving
// with velocity, for a gesture that started nearest to initial. When the
// point behind pos is still the starting point, the gesture lands on the
// point ahead; otherwise on the nearest point.
func ProjectPoint(points []float64, initial, pos, velocity float64) int {
	start := ClosestPoint(points, initial)
	prev := PreviousPoint(points, pos)
	next := NextPoint(points, pos)

	behind, ahead := next, prev
	if velocity > 0 {
		behind, ahead = prev, next
	}
	if behind == start && ahead >= 0 {
		return ahead
	}
	return ClosestPoint(points, pos)
}

// Bounds returns the progress interval a gesture starting at initial may
// travel: one snap point of overshoot past the points around it.
func Bounds(points []float64, initial float64, longSwipes bool) (float64, float64) {
	n := len(points)
	if n == 0 {
		return initial, initial
	}
	if longSwipes {
		return points[0], points[n-1]
	}

	var prev, next int
	closest := ClosestPoint(points, initial)
	if math.Abs(points[closest]-initial) < boundEpsilon {
		prev, next = closest, closest
	} else {
		prev = PreviousPoint(points, initial)
		next = NextPoint(points, initial)
	}
	if prev < 0 {
		prev = 0
	}
	if next < 0 {
		next = n - 1
	}
	lower := max(prev-1, 0)
	upper := min(next+1, n-1)
	return points[lower], points[upper]
}

// Wrap maps pos into [0, n).
func Wrap(pos float64, n int) float64 {
	if n <= 0 {
		return pos
	}
	span := float64(n)
	w := math.Mod(pos, span)
	if w < 0 {
		w += span
	}
	if w >= span {
		w = 0
	}
	return w
}

// lattice repeats points every n units so that it covers [lo, hi] with at
// least one period of margin on each side.
func lattice(points []float64, lo, hi float64) []float64 {
	n := len(points)
	span := float64(n)
	kmin := int(math.Floor((lo-points[0])/span)) - 1
	kmax := int(math.Ceil((hi-points[0])/span)) + 1
	out := make([]float64, 0, (kmax-kmin+1)*n)
	for k := kmin; k <= kmax; k++ {
		for _, p := range points {
			out = append(out, p+float64(k)*span)
		}
	}
	sort.Float64s(out)
	return out
}

// SettleDuration returns how long the consumer should take to animate from
// progress to target given the release velocity in progress units per ms.
func SettleDuration(progress, target, velocity float64) time.Duration {
	travel := target - progress
	if travel*velocity <= 0 {
		velocity = settleBaseVelocity
	}
	points := math.Max(1, math.Ceil(math.Abs(travel)))
	limit := float64(maxSettleDuration) * math.Log2(1+points)
	d := math.Abs(travel/velocity*settleDurationScaling) * float64(time.Millisecond)
	if d > 0 {
		d = math.Min(math.Max(d, float64(minSettleDuration)), limit)
	}
	return time.Duration(d)
}

// sign returns -1, 0 or 1.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
